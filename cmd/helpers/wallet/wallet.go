package wallet

import "github.com/spf13/cobra"

func init() {
	registerWalletCommands(Cmd)
}

var Cmd = &cobra.Command{
	Use:   "wallet",
	Short: "Command for building and parsing wallet requests",
}

func registerWalletCommands(cmd *cobra.Command) {
	cmd.AddCommand(transferCmd, parseCmd)
}
