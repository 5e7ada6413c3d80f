package helpers

import (
	"github.com/Bridgeless-Project/ton-kit/cmd/helpers/actions"
	"github.com/Bridgeless-Project/ton-kit/cmd/helpers/config"
	"github.com/Bridgeless-Project/ton-kit/cmd/helpers/generate"
	"github.com/Bridgeless-Project/ton-kit/cmd/helpers/vault"
	"github.com/Bridgeless-Project/ton-kit/cmd/helpers/wallet"
	"github.com/Bridgeless-Project/ton-kit/cmd/helpers/walletid"
	"github.com/spf13/cobra"
)

func init() {
	registerHelpersCommands(Cmd)
}

var Cmd = &cobra.Command{
	Use:   "helpers",
	Short: "Command for running helper operations",
}

func registerHelpersCommands(cmd *cobra.Command) {
	cmd.AddCommand(
		config.Cmd,
		actions.Cmd,
		walletid.Cmd,
		wallet.Cmd,
		generate.Cmd,
		vault.Cmd,
	)
}
