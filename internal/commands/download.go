package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mikeseventeen/coverflex-downloader/internal/config"
	"github.com/mikeseventeen/coverflex-downloader/internal/coverflex"
	"github.com/mikeseventeen/coverflex-downloader/internal/export"
	"github.com/mikeseventeen/coverflex-downloader/internal/token"
)

const (
	formatGeneric      = "generic"
	formatBudgetBakers = "budgetbakers"
)

type downloadOptions struct {
	from            string
	to              string
	year            int
	format          string
	includeTopups   bool
	includeRejected bool
	out             string
}

func newDownloadCommand(configPath *string, verbose *bool) *cobra.Command {
	var opts downloadOptions

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Fetch transactions for a date range and write them as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}

			// Flags override config; unset flags take the configured defaults.
			if !cmd.Flags().Changed("include-topups") {
				opts.includeTopups = cfg.Export.IncludeTopups
			}
			if !cmd.Flags().Changed("include-rejected") {
				opts.includeRejected = cfg.Export.IncludeRejected
			}

			return runDownload(cmd.Context(), cfg, opts, newLogger(*verbose))
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.year, "year", 0, "shortcut for a full calendar year")
	cmd.Flags().StringVar(&opts.format, "format", formatGeneric, "output dialect: generic or budgetbakers")
	cmd.Flags().BoolVar(&opts.includeTopups, "include-topups", false, "keep topup records")
	cmd.Flags().BoolVar(&opts.includeRejected, "include-rejected", false, "keep rejected records")
	cmd.Flags().StringVar(&opts.out, "out", "", "output file (default derived from the range, \"-\" for stdout)")

	return cmd
}

func resolveRange(opts downloadOptions) (coverflex.DateRange, error) {
	switch {
	case opts.year != 0:
		if opts.from != "" || opts.to != "" {
			return coverflex.DateRange{}, fmt.Errorf("--year cannot be combined with --from/--to")
		}
		return coverflex.YearRange(opts.year, time.Local), nil
	case opts.from != "" && opts.to != "":
		return coverflex.ParseRange(opts.from, opts.to, time.Local)
	default:
		return coverflex.DateRange{}, fmt.Errorf("either --year or both --from and --to are required")
	}
}

func runDownload(ctx context.Context, cfg *config.Config, opts downloadOptions, log zerolog.Logger) error {
	r, err := resolveRange(opts)
	if err != nil {
		return err
	}

	store := token.NewFileStore(cfg.Token.Path, log)
	client := coverflex.New(store,
		coverflex.WithBaseURL(cfg.API.BaseURL),
		coverflex.WithLogger(log),
	)

	txs, err := client.FetchOperations(ctx, r)
	if err != nil {
		return err
	}

	txs = export.Filter(txs, export.FilterOptions{
		IncludeTopups:   opts.includeTopups,
		IncludeRejected: opts.includeRejected,
	})
	if len(txs) == 0 {
		return fmt.Errorf("no transactions found for this period")
	}

	var csvText, filename string
	switch opts.format {
	case formatGeneric:
		csvText = export.ToGenericCSV(txs)
		filename = export.GenericFilename(r)
	case formatBudgetBakers:
		csvText = export.ToBudgetBakersCSV(txs)
		filename = export.BudgetBakersFilename(r)
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", opts.format, formatGeneric, formatBudgetBakers)
	}

	if csvText == "" {
		return fmt.Errorf("no transactions found for this period")
	}

	if opts.out != "" {
		filename = opts.out
	}
	if filename == "-" {
		fmt.Println(csvText)
		return nil
	}

	if err := os.WriteFile(filename, []byte(csvText+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	fmt.Printf("Wrote %d transactions to %s\n", len(txs), filename)
	return nil
}
