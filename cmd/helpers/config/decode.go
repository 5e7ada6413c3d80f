package config

import (
	"github.com/Bridgeless-Project/ton-kit/cmd/utils"
	"github.com/Bridgeless-Project/ton-kit/pkg/encoding"
	"github.com/Bridgeless-Project/ton-kit/pkg/tonconfig"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const valueFlag = "value"

func init() {
	utils.RegisterOutputFlag(decodeCmd)
	utils.RegisterEncodingFlag(decodeCmd)
	decodeCmd.Flags().Int32Slice(paramFlag, nil, "Parameter ids to decode, all known parameters if empty")
	decodeCmd.Flags().Bool(valueFlag, false, "Treat the BOC as a single parameter value instead of the config root")
}

var decodeCmd = &cobra.Command{
	Use:   "decode [boc]",
	Short: "Decodes a serialized config root or parameter value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		enc, err := utils.EncodingFromFlags(cmd)
		if err != nil {
			return err
		}

		ids, err := cmd.Flags().GetInt32Slice(paramFlag)
		if err != nil {
			return errors.Wrap(err, "failed to get param flag")
		}
		single, err := cmd.Flags().GetBool(valueFlag)
		if err != nil {
			return errors.Wrap(err, "failed to get value flag")
		}

		root, err := encoding.DecodeBOC(args[0], enc)
		if err != nil {
			return errors.Wrap(err, "failed to decode boc")
		}

		var params tonconfig.Params
		if single {
			if len(ids) != 1 {
				return errors.New("exactly one --param is required with --value")
			}
			params = tonconfig.Params{ids[0]: root}
		} else if params, err = tonconfig.LoadParams(root); err != nil {
			return errors.Wrap(err, "failed to load config root")
		}

		res, err := decodeParams(params, ids)
		if err != nil {
			return err
		}

		return utils.Print(cmd, res)
	},
}
