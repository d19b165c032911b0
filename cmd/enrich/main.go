package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"population-dashboard-go/internal/dataset"
	"population-dashboard-go/internal/enrich"
	"population-dashboard-go/internal/store"
	"population-dashboard-go/pkg/config"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cfg := config.LoadEnv()

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Derive dependency ratios and country metadata for the population table",
		Long: `Enrich reads the raw population table (.csv or .xlsx), adds the working-age share,
youth, old-age and total dependency ratios, ISO alpha-3 code and continent, and writes
the enriched CSV the dashboard loads.

Example:
  enrich --in population.csv --out cleanednewglobal1.csv
  enrich --in population.xlsx --out cleanednewglobal1.csv --publish --driver postgres --dsn postgres://...`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			out, _ := cmd.Flags().GetString("out")
			publish, _ := cmd.Flags().GetBool("publish")
			driver, _ := cmd.Flags().GetString("driver")
			dsn, _ := cmd.Flags().GetString("dsn")

			if in == "" {
				return fmt.Errorf("--in flag is required")
			}

			report, err := enrich.NewEnricher(nil).RunFile(in, out)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), out, report)

			if publish {
				return publishFile(cmd.Context(), out, driver, dsn, cmd.OutOrStdout())
			}
			return nil
		},
	}

	cmd.Flags().String("in", "", "raw table (.csv or .xlsx)")
	cmd.Flags().String("out", cfg.DataFile, "enriched CSV to write")
	cmd.Flags().Bool("publish", false, "also store the enriched rows in the database")
	cmd.PersistentFlags().String("driver", cfg.DatabaseDriver, "database driver (postgres or sqlite)")
	cmd.PersistentFlags().String("dsn", cfg.DatabaseURL, "database connection string")

	cmd.AddCommand(publishCmd(cfg))
	return cmd
}

func publishCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "publish [enriched.csv]",
		Short: "Store an already enriched table in the database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.DataFile
			if len(args) > 0 {
				path = args[0]
			}
			driver, _ := cmd.Flags().GetString("driver")
			dsn, _ := cmd.Flags().GetString("dsn")
			return publishFile(cmd.Context(), path, driver, dsn, cmd.OutOrStdout())
		},
	}
}

// publishFile validates the enriched file the same way the dashboard does, then replaces the table
func publishFile(ctx context.Context, path, driver, dsn string, w io.Writer) error {
	if dsn == "" {
		return fmt.Errorf("--dsn (or DATABASE_URL) is required to publish")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	table, err := dataset.LoadFile(path)
	if err != nil {
		return err
	}

	s, err := store.Open(driver, dsn)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if err := s.Migrate(ctx); err != nil {
		return err
	}
	if err := s.Publish(ctx, table.Rows()); err != nil {
		return err
	}
	fmt.Fprintf(w, "Published %d countries to %s\n", table.Len(), driver)
	return nil
}

func printReport(w io.Writer, out string, report enrich.Report) {
	fmt.Fprintf(w, "Enriched %d countries into %s\n", report.Rows, out)
	if len(report.Unresolved) == 0 {
		fmt.Fprintln(w, "Every country resolved to an ISO code and continent.")
		return
	}

	fmt.Fprintf(w, "%d countries have no ISO code or continent and will not appear on the map:\n", len(report.Unresolved))
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Country"})
	for i, name := range report.Unresolved {
		table.Append([]string{strconv.Itoa(i + 1), name})
	}
	table.Render()
}
