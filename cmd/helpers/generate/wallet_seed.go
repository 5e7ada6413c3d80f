package generate

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/Bridgeless-Project/ton-kit/cmd/utils"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	targetFlag = "target"

	targetConsole = "console"
	targetVault   = "vault"
)

func init() {
	utils.RegisterConfigFlag(walletSeedCmd)
	walletSeedCmd.Flags().String(targetFlag, targetConsole, "Where to put the seed: console or vault")
}

var walletSeedCmd = &cobra.Command{
	Use:   "wallet-seed",
	Short: "Generates an ed25519 wallet seed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := cmd.Flags().GetString(targetFlag)
		if err != nil {
			return errors.Wrap(err, "failed to get target flag")
		}
		if target != targetConsole && target != targetVault {
			return errors.Errorf("invalid target %q", target)
		}

		seed := make([]byte, ed25519.SeedSize)
		if _, err = rand.Read(seed); err != nil {
			return errors.Wrap(err, "failed to generate seed")
		}

		signer, err := wallet.NewKeySignerFromSeed(seed)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Public key:", hexutil.Encode(signer.PublicKey()))

		if target == targetConsole {
			fmt.Fprintln(cmd.OutOrStdout(), "Seed:", hexutil.Encode(seed))
			return nil
		}

		config, err := utils.ConfigFromFlags(cmd)
		if err != nil {
			return errors.Wrap(err, "failed to get config from flags")
		}
		if err = config.SecretsStorage().SaveWalletSeed(cmd.Context(), seed); err != nil {
			return errors.Wrap(err, "failed to save wallet seed to vault")
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Seed saved to vault")

		return nil
	},
}
