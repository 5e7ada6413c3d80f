package migrate

import (
	servicectx "github.com/Bridgeless-Project/ton-kit/cmd/service/ctx"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Drops the config snapshot tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(servicectx.Config(cmd), migrate.Down)
	},
}
