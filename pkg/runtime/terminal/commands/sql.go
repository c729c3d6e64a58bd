package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb/sales"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ResultReporter renders the outcome of an ad-hoc query
type ResultReporter interface {
	HandleResultSet(rs *store.ResultSet) error
}

type SQLCmd struct {
	timeout  time.Duration
	source   Source
	reporter ResultReporter
}

func NewSQLCmd(source Source, reporter ResultReporter) *cobra.Command {
	sc := &SQLCmd{source: source, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "sql QUERY",
		Short: "Run a SQL query against the dataset loaded into an in-memory DuckDB",
		Long: `Loads the generated dataset into an in-memory DuckDB database and runs
QUERY against it. Tables: daily_sales(day, amount, category),
daily_customers(day, new_customers, satisfaction),
product_stats(product, total_sales, rating, category).`,
		Args: cobra.MinimumNArgs(1),
		RunE: sc.run,
	}

	cmd.Flags().DurationVar(&sc.timeout, "timeout", 60*time.Second, "Time limit for loading and querying")

	return cmd
}

func (sc *SQLCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(contextOrBackground(cmd.Context()), sc.timeout)
	defer cancel()
	logger := zerolog.Ctx(ctx)

	db, err := duckdb.NewDB(duckdb.Settings{})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	salesStore, err := sales.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create sales store: %w", err)
	}

	start := time.Now()
	if err := salesStore.Load(ctx, sc.source.Dashboard().Dataset()); err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	logger.Debug().Dur("duration", time.Since(start)).Msg("dataset loaded")

	rs, err := salesStore.Query(ctx, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("failed to run query: %w", err)
	}

	return sc.reporter.HandleResultSet(rs)
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
