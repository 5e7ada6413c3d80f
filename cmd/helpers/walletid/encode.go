package walletid

import (
	"fmt"

	"github.com/Bridgeless-Project/ton-kit/internal/api/resources"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv5beta"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv5r1"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	encodeCmd.Flags().Int8P(workchainFlag, "w", 0, "Workchain of the wallet")
	encodeCmd.Flags().Uint32P(subwalletFlag, "s", 0, "Subwallet number")
	encodeCmd.Flags().Int64(customFlag, -1, "Custom v5r1 context, replaces workchain and subwallet when set")
}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encodes a wallet id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, network, err := commonFlags(cmd)
		if err != nil {
			return err
		}

		workchain, _ := cmd.Flags().GetInt8(workchainFlag)
		subwallet, _ := cmd.Flags().GetUint32(subwalletFlag)
		custom, _ := cmd.Flags().GetInt64(customFlag)

		switch gen {
		case resources.GenerationV5R1:
			id := walletv5r1.WalletID{NetworkGlobalID: network}
			if custom >= 0 {
				id.Context = walletv5r1.CustomContext(uint32(custom))
			} else {
				if subwallet > walletv5r1.MaxSubwalletNumber {
					return errors.Errorf("subwallet number %d exceeds %d", subwallet, walletv5r1.MaxSubwalletNumber)
				}
				id.Context = walletv5r1.ClientContext{
					Workchain:       workchain,
					Version:         walletv5r1.VersionV5R1,
					SubwalletNumber: uint16(subwallet),
				}
			}

			value, err := id.Encode()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		case resources.GenerationV5Beta:
			raw, err := walletv5beta.WalletID{
				NetworkGlobalID: network,
				Workchain:       workchain,
				Version:         walletv5beta.VersionV5,
				SubwalletNumber: subwallet,
			}.Encode()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(raw))
			return err
		default:
			return errors.Errorf("wallet ids are not defined for %s", gen)
		}
	},
}

func commonFlags(cmd *cobra.Command) (resources.Generation, int32, error) {
	rawGen, err := cmd.Flags().GetString(generationFlag)
	if err != nil {
		return "", 0, errors.Wrap(err, "failed to get generation flag")
	}
	gen, err := resources.ParseGeneration(rawGen)
	if err != nil {
		return "", 0, err
	}

	network, err := cmd.Flags().GetInt32(networkFlag)
	if err != nil {
		return "", 0, errors.Wrap(err, "failed to get network flag")
	}

	return gen, network, nil
}
