package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"meetingsManagement/internal/config"
	"meetingsManagement/internal/logging"
)

// app carries what every subcommand needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	strict bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "server",
		Short:         "Meetings application shell and tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			load := config.LoadWithDefaults
			if a.strict {
				load = config.Load
			}
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVar(&a.strict, "strict", false, "require JWT_SECRET instead of using the development default")
	root.AddCommand(newServeCmd(a), newColumnsCmd(a), newMigrateCmd(a))
	return root
}
