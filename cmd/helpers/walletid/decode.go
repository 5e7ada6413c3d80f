package walletid

import (
	"strconv"

	"github.com/Bridgeless-Project/ton-kit/cmd/utils"
	"github.com/Bridgeless-Project/ton-kit/internal/api/resources"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv5beta"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv5r1"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	utils.RegisterOutputFlag(decodeCmd)
}

var decodeCmd = &cobra.Command{
	Use:   "decode [wallet-id]",
	Short: "Decodes a wallet id, a signed integer for v5r1 or 0x-prefixed hex for v5beta",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, network, err := commonFlags(cmd)
		if err != nil {
			return err
		}

		switch gen {
		case resources.GenerationV5R1:
			value, err := strconv.ParseInt(args[0], 10, 32)
			if err != nil {
				return errors.Wrap(err, "failed to parse wallet id")
			}

			id, err := walletv5r1.DecodeWalletID(int32(value), network)
			if err != nil {
				return err
			}

			return utils.Print(cmd, resources.FromWalletID(int32(value), id))
		case resources.GenerationV5Beta:
			raw, err := hexutil.Decode(args[0])
			if err != nil {
				return errors.Wrap(err, "failed to parse wallet id")
			}

			id, err := walletv5beta.DecodeWalletID(raw)
			if err != nil {
				return err
			}

			return utils.Print(cmd, id)
		default:
			return errors.Errorf("wallet ids are not defined for %s", gen)
		}
	},
}
