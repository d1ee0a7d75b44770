package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"statistik/internal/cli"
)

func main() {
	cli.LoadEnvFile()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "statistik",
		Short:         "Monthly income and expense statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "Category catalog file (TOML, YAML or JSON); overrides CATALOG_FILE")
	root.PersistentFlags().StringVar(&a.backendType, "backend", "", "Data backend (memory, sqlite, sheets, api); overrides DATA_BACKEND")

	root.AddCommand(
		newServeCmd(a),
		newReportCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newYearsCmd(a),
	)
	return root
}
