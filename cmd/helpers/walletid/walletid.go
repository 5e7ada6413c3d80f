package walletid

import (
	"github.com/Bridgeless-Project/ton-kit/internal/api/resources"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv5r1"
	"github.com/spf13/cobra"
)

const (
	generationFlag = "generation"
	networkFlag    = "network"
	workchainFlag  = "workchain"
	subwalletFlag  = "subwallet"
	customFlag     = "custom"
)

func init() {
	registerWalletIDCommands(Cmd)

	Cmd.PersistentFlags().StringP(generationFlag, "g", string(resources.GenerationV5R1), "Wallet generation: v5beta or v5r1")
	Cmd.PersistentFlags().Int32P(networkFlag, "n", walletv5r1.MainnetGlobalID, "Network global id, -239 for mainnet and -3 for testnet")
}

var Cmd = &cobra.Command{
	Use:   "wallet-id",
	Short: "Command for encoding and decoding v5 wallet ids",
}

func registerWalletIDCommands(cmd *cobra.Command) {
	cmd.AddCommand(encodeCmd, decodeCmd)
}
