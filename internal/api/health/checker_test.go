package health

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type checkFunc func(ctx context.Context) error

func (f checkFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

func TestChecker_Check(t *testing.T) {
	ok := checkFunc(func(context.Context) error { return nil })
	failing := checkFunc(func(context.Context) error { return errors.New("unreachable") })

	for name, tc := range map[string]struct {
		components map[string]Checkable
		ok         bool
		failed     []string
	}{
		"no components": {
			components: map[string]Checkable{},
			ok:         true,
		},
		"all healthy": {
			components: map[string]Checkable{"watcher": ok, "lite_servers": ok},
			ok:         true,
		},
		"one failing": {
			components: map[string]Checkable{"watcher": ok, "lite_servers": failing},
			failed:     []string{"lite_servers"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			res := NewChecker(tc.components).Check(context.Background())

			require.Equal(t, tc.ok, res.Ok)
			require.Len(t, res.Statuses, len(tc.components))
			for _, f := range tc.failed {
				require.False(t, res.Statuses[f].Ok)
				require.Equal(t, "unreachable", res.Statuses[f].Error)
			}
		})
	}
}
