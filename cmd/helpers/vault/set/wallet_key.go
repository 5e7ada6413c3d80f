package set

import (
	"github.com/Bridgeless-Project/ton-kit/cmd/utils"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var walletKeyCmd = &cobra.Command{
	Use:   "wallet-key [0x-seed]",
	Short: "Stores the ed25519 wallet seed in Vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, err := hexutil.Decode(args[0])
		if err != nil {
			return errors.Wrap(err, "failed to decode seed")
		}

		config, err := utils.ConfigFromFlags(cmd)
		if err != nil {
			return errors.Wrap(err, "failed to get config from flags")
		}

		if err = config.SecretsStorage().SaveWalletSeed(cmd.Context(), seed); err != nil {
			return errors.Wrap(err, "failed to save wallet seed to vault")
		}

		return nil
	},
}
