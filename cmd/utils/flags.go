package utils

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Bridgeless-Project/ton-kit/internal/config"
	"github.com/Bridgeless-Project/ton-kit/pkg/encoding"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gitlab.com/distributed_lab/kit/kv"
)

const (
	configFlag   = "config"
	outputFlag   = "output"
	encodingFlag = "encoding"

	OutputJSON = "json"
	OutputDump = "dump"
)

func RegisterConfigFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(configFlag, "c", "config.yaml", "Path to the config file")
}

func RegisterOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(outputFlag, "o", OutputJSON, "Output format: json or dump")
}

func RegisterEncodingFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(encodingFlag, "e", "hex", "BOC encoding: hex, base58, base64 or base64url")
}

func ConfigFromFlags(cmd *cobra.Command) (config.Config, error) {
	configPath, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get config flag")
	}

	// ensure that the viper is loaded
	viper := kv.NewViperFile(configPath)
	if _, err = viper.GetStringMap("ping"); err != nil {
		return nil, errors.Wrap(err, "failed to ping viper")
	}

	return config.New(viper), nil
}

func EncodingFromFlags(cmd *cobra.Command) (encoding.Type, error) {
	name, err := cmd.Flags().GetString(encodingFlag)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get encoding flag")
	}

	return encoding.ParseType(name)
}

// Print renders v in the format selected by the output flag.
func Print(cmd *cobra.Command, v interface{}) error {
	output, err := cmd.Flags().GetString(outputFlag)
	if err != nil {
		return errors.Wrap(err, "failed to get output flag")
	}

	return Render(cmd.OutOrStdout(), output, v)
}

func Render(w io.Writer, output string, v interface{}) error {
	switch output {
	case OutputJSON:
		raw, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal output")
		}
		_, err = fmt.Fprintln(w, string(raw))
		return err
	case OutputDump:
		spew.Fdump(w, v)
		return nil
	default:
		return errors.Errorf("unknown output format %q", output)
	}
}
