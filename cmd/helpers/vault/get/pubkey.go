package get

import (
	"fmt"

	"github.com/Bridgeless-Project/ton-kit/cmd/utils"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var pubkeyCmd = &cobra.Command{
	Use:   "pubkey",
	Short: "Get the wallet public key from the vault",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := utils.ConfigFromFlags(cmd)
		if err != nil {
			return errors.Wrap(err, "failed to get config from flags")
		}

		signer, err := config.SecretsStorage().GetWalletSigner(cmd.Context())
		if err != nil {
			return errors.Wrap(err, "failed to get wallet key from vault")
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Public key:", hexutil.Encode(signer.PublicKey()))

		return nil
	},
}
