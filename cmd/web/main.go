package main

import (
	"fmt"
	"os"

	"github.com/de-tools/sales-atlas/pkg/server"
	"github.com/de-tools/sales-atlas/pkg/services/charts"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/datagen"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	seed    int64
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Sales Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML configuration file (defaults and SALES_ATLAS_* variables apply otherwise)")
	rootCmd.Flags().Int64Var(&seed, "seed", datagen.DefaultSeed, "Seed for the synthetic dataset (overrides dashboard.seed)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	logger = logger.Level(level)

	datasetSeed := cfg.Dashboard.Seed
	if cmd.Flags().Changed("seed") {
		datasetSeed = seed
	}

	dataset := datagen.New(datasetSeed).Generate()
	logger.Info().
		Int64("seed", datasetSeed).
		Int("sales", len(dataset.Sales)).
		Int("customers", len(dataset.Customers)).
		Int("products", len(dataset.Products)).
		Msg("dataset generated")

	service := dashboard.NewService(dataset, dashboard.Options{
		Title:    cfg.Dashboard.Title,
		Currency: cfg.Dashboard.Currency,
	})

	webAPI := server.NewWebAPI(server.Config{
		Addr:               cfg.Server.Addr(),
		ShutdownTimeout:    cfg.Server.ShutdownTimeout,
		CORSAllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimitRequests:  cfg.Server.RateLimit.Requests,
		RateLimitWindow:    cfg.Server.RateLimit.Window,
		Dependencies: server.Dependencies{
			Dashboard: service,
			Charts:    charts.DefaultRegistry(),
			Logger:    logger,
		},
	})

	return webAPI.Start()
}
