package main

import (
	"github.com/spf13/cobra"

	"meetingsManagement/internal/inspect"
)

func newColumnsCmd(a *app) *cobra.Command {
	var table string
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Print the column names of one row of a backend table",
		RunE: func(cmd *cobra.Command, args []string) error {
			be, closeBackend, err := openBackend(a.cfg)
			if err != nil {
				return err
			}
			defer closeBackend()
			return inspect.Columns(cmd.Context(), be, table, cmd.OutOrStdout(), a.logger)
		},
	}
	cmd.Flags().StringVar(&table, "table", inspect.DefaultTable, "table to inspect")
	return cmd
}
