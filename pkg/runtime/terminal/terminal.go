package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/datagen"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	logger  zerolog.Logger
	rootCmd *cobra.Command

	cfgPath string
	seed    int64

	service *dashboard.Service
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	Logger *zerolog.Logger
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{logger: zerolog.Nop()}
	if opts.Logger != nil {
		cli.logger = *opts.Logger
	}

	cli.rootCmd = cli.newRootCmd(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides the arguments the CLI parses, os.Args[1:] by default.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

// Dashboard returns the service built by the root pre-run hook.
func (cli *CLI) Dashboard() *dashboard.Service {
	return cli.service
}

func (cli *CLI) newRootCmd(output io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "sales-atlas",
		Short:             "Synthetic sales dashboard in the terminal",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}
	cmd.SetOut(output)

	cmd.PersistentFlags().StringVarP(&cli.cfgPath, "config", "c", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().Int64Var(&cli.seed, "seed", datagen.DefaultSeed,
		"Seed for the synthetic dataset (overrides dashboard.seed)")

	textReporter := NewReporter(output)
	tableReporter := export.NewReporter(output)

	cmd.AddCommand(commands.NewReportCmd(cli, map[string]commands.Reporter{
		"text":  textReporter,
		"table": tableReporter,
	}))
	cmd.AddCommand(commands.NewSQLCmd(cli, tableReporter))
	cmd.AddCommand(commands.NewCategoriesCmd(cli))

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(cli.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		cli.logger = cli.logger.Level(level)
	}

	seed := cfg.Dashboard.Seed
	if cmd.Flags().Changed("seed") {
		seed = cli.seed
	}

	cli.logger.Debug().Int64("seed", seed).Msg("generating dataset")
	cli.service = dashboard.NewService(datagen.New(seed).Generate(), dashboard.Options{
		Title:    cfg.Dashboard.Title,
		Currency: cfg.Dashboard.Currency,
	})

	cmd.SetContext(cli.logger.WithContext(cmd.Context()))
	return nil
}
