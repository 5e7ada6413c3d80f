package ctx

import (
	"context"

	"github.com/Bridgeless-Project/ton-kit/internal/api/health"
	"github.com/Bridgeless-Project/ton-kit/internal/db"
	"github.com/Bridgeless-Project/ton-kit/internal/watcher"
	"gitlab.com/distributed_lab/logan/v3"
)

type ctxKey int

const (
	dbKey ctxKey = iota
	loggerKey
	configKey
	healthCheckerKey
	networkKey
)

// ConfigSource serves the latest decoded blockchain config.
type ConfigSource interface {
	Current() (*watcher.State, error)
	Param(id int32) (interface{}, error)
}

func DBProvider(q db.ConfigParamsQ) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		return context.WithValue(ctx, dbKey, q)
	}
}

// DB always returns unique connection. It is nil when snapshots are not persisted.
func DB(ctx context.Context) db.ConfigParamsQ {
	q, _ := ctx.Value(dbKey).(db.ConfigParamsQ)
	if q == nil {
		return nil
	}

	return q.New()
}

func LoggerProvider(logger *logan.Entry) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		return context.WithValue(ctx, loggerKey, logger)
	}
}

func Logger(ctx context.Context) *logan.Entry {
	return ctx.Value(loggerKey).(*logan.Entry)
}

func ConfigProvider(source ConfigSource) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		return context.WithValue(ctx, configKey, source)
	}
}

func Config(ctx context.Context) ConfigSource {
	return ctx.Value(configKey).(ConfigSource)
}

func HealthCheckerProvider(checker *health.Checker) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		return context.WithValue(ctx, healthCheckerKey, checker)
	}
}

func HealthChecker(ctx context.Context) *health.Checker {
	return ctx.Value(healthCheckerKey).(*health.Checker)
}

func NetworkGlobalIDProvider(id int32) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		return context.WithValue(ctx, networkKey, id)
	}
}

func NetworkGlobalID(ctx context.Context) int32 {
	return ctx.Value(networkKey).(int32)
}
