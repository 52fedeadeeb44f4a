package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stoneriver/portal/cmd/batch"
	"github.com/stoneriver/portal/cmd/worker"
)

var (
	cfgPath string
	rootCmd = &cobra.Command{
		Use:   "portal",
		Short: "Stone River Portal policy administration CLI",
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(batch.NewBatchCmd())
	rootCmd.AddCommand(worker.NewWorkerCmd())
}
