package cmd

import (
	"os"

	"github.com/Bridgeless-Project/ton-kit/cmd/helpers"
	"github.com/Bridgeless-Project/ton-kit/cmd/service"
	"github.com/spf13/cobra"
)

func Execute() {
	root := &cobra.Command{
		Use:   "ton-kit",
		Short: "TON config and wallet message toolkit",
	}

	root.AddCommand(service.Cmd, helpers.Cmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
