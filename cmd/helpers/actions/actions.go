package actions

import (
	"github.com/Bridgeless-Project/ton-kit/cmd/utils"
	"github.com/Bridgeless-Project/ton-kit/internal/api/resources"
	"github.com/Bridgeless-Project/ton-kit/pkg/encoding"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const generationFlag = "generation"

func init() {
	registerActionsCommands(Cmd)

	utils.RegisterOutputFlag(decodeCmd)
	utils.RegisterEncodingFlag(decodeCmd)
	decodeCmd.Flags().StringP(generationFlag, "g", string(resources.GenerationV5R1), "Wallet generation: v1, v2, v3, v4, v5beta or v5r1")
}

var Cmd = &cobra.Command{
	Use:   "actions",
	Short: "Command for working with wallet action lists",
}

func registerActionsCommands(cmd *cobra.Command) {
	cmd.AddCommand(decodeCmd)
}

var decodeCmd = &cobra.Command{
	Use:   "decode [boc]",
	Short: "Decodes a serialized wallet action list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawGen, err := cmd.Flags().GetString(generationFlag)
		if err != nil {
			return errors.Wrap(err, "failed to get generation flag")
		}
		gen, err := resources.ParseGeneration(rawGen)
		if err != nil {
			return err
		}

		enc, err := utils.EncodingFromFlags(cmd)
		if err != nil {
			return err
		}

		c, err := encoding.DecodeBOC(args[0], enc)
		if err != nil {
			return errors.Wrap(err, "failed to decode boc")
		}

		list, err := resources.DecodeActions(gen, c)
		if err != nil {
			return errors.Wrap(err, "failed to decode actions")
		}

		return utils.Print(cmd, resources.Actions{Generation: gen, Actions: list})
	},
}
