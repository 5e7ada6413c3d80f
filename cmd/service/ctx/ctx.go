package ctx

import (
	"context"

	"github.com/Bridgeless-Project/ton-kit/internal/config"
	"github.com/spf13/cobra"
)

type ctxKey int

const (
	cfgKey ctxKey = iota
)

func WithConfig(cmd *cobra.Command, cfg config.Config) *cobra.Command {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cfgKey, cfg))

	return cmd
}

func Config(cmd *cobra.Command) config.Config {
	return cmd.Context().Value(cfgKey).(config.Config)
}
