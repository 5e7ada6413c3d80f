package migrate

import (
	"github.com/Bridgeless-Project/ton-kit/internal/assets"
	"github.com/Bridgeless-Project/ton-kit/internal/config"
	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
)

func init() {
	registerMigrateCommands(Cmd)
}

var Cmd = &cobra.Command{
	Use:   "migrate",
	Short: "Command for running database migrations",
}

func registerMigrateCommands(cmd *cobra.Command) {
	cmd.AddCommand(upCmd, downCmd)
}

var migrations = &migrate.EmbedFileSystemMigrationSource{
	FileSystem: assets.Migrations,
	Root:       "migrations",
}

func execute(cfg config.Config, direction migrate.MigrationDirection) error {
	log := cfg.Log()

	applied, err := migrate.Exec(cfg.DB().RawDB(), "postgres", migrations, direction)
	if err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	log.WithField("applied", applied).Info("migrations applied")

	return nil
}
