package wallet

import (
	"github.com/Bridgeless-Project/ton-kit/cmd/utils"
	"github.com/Bridgeless-Project/ton-kit/internal/api/resources"
	"github.com/Bridgeless-Project/ton-kit/pkg/encoding"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv1"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv2"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv3"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv4"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv5r1"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	utils.RegisterOutputFlag(parseCmd)
	utils.RegisterEncodingFlag(parseCmd)
	parseCmd.Flags().StringP(generationFlag, "g", string(resources.GenerationV5R1), "Wallet generation: v1, v2, v3, v4 or v5r1")
	parseCmd.Flags().Int32P(networkFlag, "n", walletv5r1.MainnetGlobalID, "Network global id")
}

type parsedRequest struct {
	Generation resources.Generation `json:"generation"`
	Header     interface{}          `json:"header"`
	Signature  string               `json:"signature,omitempty"`
	Actions    []resources.Action   `json:"actions"`
}

var parseCmd = &cobra.Command{
	Use:   "parse [boc]",
	Short: "Parses a wallet request body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawGen, _ := cmd.Flags().GetString(generationFlag)
		gen, err := resources.ParseGeneration(rawGen)
		if err != nil {
			return err
		}
		network, _ := cmd.Flags().GetInt32(networkFlag)

		enc, err := utils.EncodingFromFlags(cmd)
		if err != nil {
			return err
		}
		body, err := encoding.DecodeBOC(args[0], enc)
		if err != nil {
			return errors.Wrap(err, "failed to decode boc")
		}

		res := parsedRequest{Generation: gen}
		switch gen {
		case resources.GenerationV1:
			req, err := walletv1.ParseRequest(body)
			if err != nil {
				return errors.Wrap(err, "failed to parse request")
			}
			res.Header, res.Signature = req, hexutil.Encode(req.Signature)
			res.Actions = []resources.Action{resources.FromBatch(req.Transfer)}
		case resources.GenerationV2:
			req, err := walletv2.ParseRequest(body)
			if err != nil {
				return errors.Wrap(err, "failed to parse request")
			}
			res.Header, res.Signature = req, hexutil.Encode(req.Signature)
			res.Actions = []resources.Action{resources.FromBatch(req.Transfer)}
		case resources.GenerationV3:
			req, err := walletv3.ParseRequest(body)
			if err != nil {
				return errors.Wrap(err, "failed to parse request")
			}
			res.Header, res.Signature = req, hexutil.Encode(req.Signature)
			res.Actions = []resources.Action{resources.FromBatch(req.Transfer)}
		case resources.GenerationV4:
			req, err := walletv4.ParseRequest(body)
			if err != nil {
				return errors.Wrap(err, "failed to parse request")
			}
			action, err := resources.FromV4Action(req.Action)
			if err != nil {
				return err
			}
			res.Header, res.Signature = req, hexutil.Encode(req.Signature)
			res.Actions = []resources.Action{action}
		case resources.GenerationV5R1:
			req, err := walletv5r1.ParseRequest(body, network)
			if err != nil {
				return errors.Wrap(err, "failed to parse request")
			}
			res.Header = req
			if len(req.Signature) > 0 {
				res.Signature = hexutil.Encode(req.Signature)
			}
			res.Actions = resources.FromActions(req.Actions)
		default:
			return errors.Errorf("request parsing is not supported for %s", gen)
		}

		return utils.Print(cmd, res)
	},
}
