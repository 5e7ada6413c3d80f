package config

import (
	"github.com/Bridgeless-Project/ton-kit/cmd/utils"
	"github.com/Bridgeless-Project/ton-kit/internal/chain/ton"
	"github.com/Bridgeless-Project/ton-kit/internal/db"
	pg "github.com/Bridgeless-Project/ton-kit/internal/db/postgres"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gitlab.com/distributed_lab/logan/v3"
)

const saveFlag = "save"

func init() {
	utils.RegisterConfigFlag(fetchCmd)
	utils.RegisterOutputFlag(fetchCmd)
	fetchCmd.Flags().Int32Slice(paramFlag, nil, "Parameter ids to fetch, the whole config if empty")
	fetchCmd.Flags().Bool(saveFlag, false, "Store the fetched snapshot in the database")
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetches and decodes the current blockchain config from lite servers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := utils.ConfigFromFlags(cmd)
		if err != nil {
			return errors.Wrap(err, "failed to get config from flags")
		}

		ids, err := cmd.Flags().GetInt32Slice(paramFlag)
		if err != nil {
			return errors.Wrap(err, "failed to get param flag")
		}
		save, err := cmd.Flags().GetBool(saveFlag)
		if err != nil {
			return errors.Wrap(err, "failed to get save flag")
		}

		logger := cfg.Log()
		client, err := ton.NewClient(cmd.Context(), cfg.TonRPC(), logger.WithField("component", "ton_client"))
		if err != nil {
			return errors.Wrap(err, "failed to create ton client")
		}

		snapshot, err := client.FetchConfig(cmd.Context(), ids...)
		if err != nil {
			return err
		}

		if save {
			q := pg.NewConfigParamsQ(cfg.DB())
			if err = q.Insert(snapshot.Seqno, db.FromParams(snapshot.Seqno, snapshot.Params)); err != nil {
				return errors.Wrap(err, "failed to store snapshot")
			}
			logger.WithFields(logan.F{"seqno": snapshot.Seqno}).Info("snapshot stored")
		}

		res, err := decodeParams(snapshot.Params, ids)
		if err != nil {
			return err
		}

		return utils.Print(cmd, res)
	},
}
