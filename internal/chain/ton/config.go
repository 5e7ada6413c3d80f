package ton

import (
	"reflect"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/address"
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/comfig"
	"gitlab.com/distributed_lab/kit/kv"
)

const (
	mainnetGlobalID int32 = -239
	testnetGlobalID int32 = -3
)

type RPC struct {
	IsTestnet       bool          `fig:"is_testnet"`
	Timeout         time.Duration `fig:"timeout"`
	GlobalConfigUrl string        `fig:"global_config_url,required"`
	// Wallet is the address used by the transfer helpers to look up seqno.
	Wallet *address.Address `fig:"wallet"`
}

func (r RPC) Validate() error {
	return validation.Errors{
		"global_config_url": validation.Validate(r.GlobalConfigUrl, validation.Required),
		"timeout":           validation.Validate(r.Timeout, validation.Required, validation.Min(time.Second)),
	}.Filter()
}

// NetworkGlobalID is the global_id of the configured network.
func (r RPC) NetworkGlobalID() int32 {
	if r.IsTestnet {
		return testnetGlobalID
	}

	return mainnetGlobalID
}

type Tonner interface {
	TonRPC() RPC
}

type tonner struct {
	once   comfig.Once
	getter kv.Getter
}

func NewTonner(getter kv.Getter) Tonner {
	return &tonner{getter: getter}
}

func (t *tonner) TonRPC() RPC {
	return t.once.Do(func() interface{} {
		cfg := RPC{Timeout: 10 * time.Second}

		if err := figure.
			Out(&cfg).
			With(figure.BaseHooks, addrHook()).
			From(kv.MustGetStringMap(t.getter, "ton")).
			Please(); err != nil {
			panic(errors.Wrap(err, "failed to figure out ton rpc"))
		}

		if err := cfg.Validate(); err != nil {
			panic(errors.Wrap(err, "invalid ton rpc config"))
		}

		return cfg
	}).(RPC)
}

func addrHook() figure.Hooks {
	return figure.Hooks{
		"*address.Address": func(value interface{}) (reflect.Value, error) {
			switch v := value.(type) {
			case string:
				addr, err := address.ParseAddr(v)
				if err != nil {
					return reflect.Value{}, errors.Wrap(err, "failed to decode address")
				}

				return reflect.ValueOf(addr), nil
			default:
				return reflect.Value{}, errors.Errorf("unsupported conversion from %T", value)
			}
		},
	}
}
