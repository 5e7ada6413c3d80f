package config

import (
	"github.com/Bridgeless-Project/ton-kit/pkg/tonconfig"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const paramFlag = "param"

func init() {
	registerConfigCommands(Cmd)
}

var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Command for decoding blockchain config parameters",
}

func registerConfigCommands(cmd *cobra.Command) {
	cmd.AddCommand(decodeCmd, fetchCmd)
}

// decodeParams decodes the requested ids, or the whole config when ids is empty.
func decodeParams(params tonconfig.Params, ids []int32) (interface{}, error) {
	if len(ids) == 0 {
		return tonconfig.ParseFull(params)
	}

	res := make(map[int32]interface{}, len(ids))
	for _, id := range ids {
		v, err := tonconfig.ParseParam(id, params.Slice(id))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode param %d", id)
		}
		res[id] = v
	}

	return res, nil
}
