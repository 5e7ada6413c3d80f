package watcher

import (
	"reflect"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/comfig"
	"gitlab.com/distributed_lab/kit/kv"
)

type Config struct {
	Interval time.Duration `fig:"interval"`
	// Params limits fetching to the listed ids. Empty means the whole config.
	Params []int32 `fig:"params"`
	// Persist stores every new snapshot in the database.
	Persist bool `fig:"persist"`
}

func (c Config) Validate() error {
	return validation.Errors{
		"interval": validation.Validate(c.Interval, validation.Required, validation.Min(time.Second)),
	}.Filter()
}

type Watcherer interface {
	WatcherConfig() Config
}

type watcherer struct {
	once   comfig.Once
	getter kv.Getter
}

func NewWatcherer(getter kv.Getter) Watcherer {
	return &watcherer{getter: getter}
}

func (w *watcherer) WatcherConfig() Config {
	return w.once.Do(func() interface{} {
		cfg := Config{Interval: 30 * time.Second, Persist: true}

		if err := figure.
			Out(&cfg).
			With(figure.BaseHooks, paramsHook).
			From(kv.MustGetStringMap(w.getter, "watcher")).
			Please(); err != nil {
			panic(errors.Wrap(err, "failed to figure out watcher config"))
		}

		if err := cfg.Validate(); err != nil {
			panic(errors.Wrap(err, "invalid watcher config"))
		}

		return cfg
	}).(Config)
}

var paramsHook = figure.Hooks{
	"[]int32": func(value interface{}) (reflect.Value, error) {
		raw, err := cast.ToSliceE(value)
		if err != nil {
			return reflect.Value{}, errors.Wrap(err, "expected a list of param ids")
		}

		ids := make([]int32, 0, len(raw))
		for _, v := range raw {
			id, err := cast.ToInt32E(v)
			if err != nil {
				return reflect.Value{}, errors.Wrapf(err, "invalid param id %v", v)
			}
			ids = append(ids, id)
		}

		return reflect.ValueOf(ids), nil
	},
}
