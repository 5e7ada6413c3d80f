package service

import (
	"github.com/Bridgeless-Project/ton-kit/cmd/service/ctx"
	"github.com/Bridgeless-Project/ton-kit/cmd/service/migrate"
	"github.com/Bridgeless-Project/ton-kit/cmd/service/run"
	"github.com/Bridgeless-Project/ton-kit/cmd/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	registerServiceCommands(Cmd)
	utils.RegisterConfigFlag(Cmd)
}

func registerServiceCommands(cmd *cobra.Command) {
	cmd.AddCommand(migrate.Cmd)
	cmd.AddCommand(run.Cmd)
}

var Cmd = &cobra.Command{
	Use:   "service",
	Short: "Command for running service operations",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := utils.ConfigFromFlags(cmd)
		if err != nil {
			return errors.Wrap(err, "failed to get config from flags")
		}

		ctx.WithConfig(cmd, cfg)

		return nil
	},
}
