package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"statistik/internal/log"
	"statistik/internal/services"
	"statistik/internal/source"
)

func newImportCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load transactions from a JSON file into the configured store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()

			txs, err := source.DecodeTransactions(f)
			if err != nil {
				return fmt.Errorf("decode %s: %w", file, err)
			}

			b, err := a.openBackend(ctx)
			if err != nil {
				return err
			}
			defer a.cleanup(b)
			if b.Writer == nil {
				return fmt.Errorf("backend %q is read-only", a.cfg.DataBackend)
			}

			amqpClient, err := a.openAMQP()
			if err != nil {
				// The import still goes through; consumers just miss the event.
				a.logger.Warn("AMQP unavailable, importing without notification", log.FieldError, err)
			}
			var publisher services.ChangePublisher
			if amqpClient != nil {
				defer amqpClient.Close()
				publisher = amqpClient
			}

			n, err := a.newStatsService(b).Import(ctx, b.Writer, txs, publisher)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d transactions into %s\n", n, a.cfg.DataBackend)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON file with transactions")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every transaction of the configured source as JSON",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()

			b, err := a.openBackend(ctx)
			if err != nil {
				return err
			}
			defer a.cleanup(b)

			txs, err := a.newStatsService(b).Transactions(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if file != "" {
				f, ferr := os.Create(file)
				if ferr != nil {
					return fmt.Errorf("create export file: %w", ferr)
				}
				defer func() {
					if cerr := f.Close(); cerr != nil && err == nil {
						err = fmt.Errorf("close export file: %w", cerr)
					}
				}()
				out = f
			}
			if err := source.EncodeTransactions(out, txs); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Output file (default: stdout)")
	return cmd
}
