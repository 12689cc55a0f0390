package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"meetingsManagement/internal/db"
)

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the local SQLite backend schema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Apply pending migrations and list applied versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := db.Open(a.cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer d.Close()
			versions, err := db.Applied(d)
			if err != nil {
				return err
			}
			for _, v := range versions {
				fmt.Fprintf(cmd.OutOrStdout(), "%04d\n", v)
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rollback",
		Short: "Roll back the most recently applied migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := db.Open(a.cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer d.Close()
			v, err := db.RollbackLast(d)
			if err != nil {
				return err
			}
			if v == 0 {
				a.logger.Info("nothing to roll back")
				return nil
			}
			a.logger.Info("rolled back migration", zap.Int("version", v))
			return nil
		},
	})
	return cmd
}
