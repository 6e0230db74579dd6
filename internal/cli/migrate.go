package cli

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sandeepkv93/daybook/internal/storage"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the database schema",
	}
	cmd.AddCommand(
		migrateStep("up", "Apply all pending migrations", storage.MigrateUp),
		migrateStep("down", "Roll back every migration (drops all data)", storage.MigrateDown),
	)
	return cmd
}

func migrateStep(name, short string, step func(*sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			db, err := storage.OpenDB(app.Config.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := step(db); err != nil {
				return err
			}
			app.Logger.Info("migrations applied", zap.String("direction", name), zap.String("path", app.Config.DBPath))
			fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: ok\n", name)
			return nil
		},
	}
}
