package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"expensetracker/internal/backend"
	"expensetracker/internal/cli"
	"expensetracker/internal/config"
	"expensetracker/internal/console"
	applog "expensetracker/internal/log"
	"expensetracker/internal/screen"
	"expensetracker/internal/services"
)

type options struct {
	backend  string
	budget   string
	theme    string
	chart    string
	logLevel string
	noColor  bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "expensetracker-cli",
		Short:         "Track expenses against a budget from the terminal",
		Long:          "An interactive session for recording expenses, watching the remaining budget and charting spending by category. Nothing is kept after exit.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.backend, "backend", "memory", fmt.Sprintf("expense store %v", backend.GetBackendTypeStrings()))
	f.StringVar(&opts.budget, "budget", "", "initial monthly budget")
	f.StringVar(&opts.theme, "theme", "light", "light or dark")
	f.StringVar(&opts.chart, "chart", "pie", "pie or bar")
	f.StringVar(&opts.logLevel, "log-level", "error", "log level written to stderr")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	return cmd
}

func run(ctx context.Context, opts *options) error {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(&config.Config{LogLevel: opts.logLevel, LogFormat: "text"}, os.Stderr)

	backendCfg, err := backend.ParseConfig(opts.backend)
	if err != nil {
		return err
	}
	theme, err := screen.ParseTheme(opts.theme)
	if err != nil {
		return err
	}
	kind, err := screen.ParseChartKind(opts.chart)
	if err != nil {
		return err
	}

	ctx, stop := cli.GracefulShutdown(ctx, logger)
	defer stop()

	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return fmt.Errorf("create backend: %w", err)
	}
	defer result.Close()

	scr := screen.New(services.NewExpenseService(result.Store, nil, logger), screen.Options{Theme: theme, Chart: kind})
	if opts.budget != "" {
		scr.SetBudget(opts.budget)
	}

	logger.Debug("Starting session", applog.FieldOperation, applog.OpStartup, "backend", opts.backend)
	defer logger.Debug("Session ended", applog.FieldOperation, applog.OpShutdown)

	out := os.Stdout
	session := console.NewSession(scr, console.NewRenderer(out, !opts.noColor), out)
	return session.Run(ctx, os.Stdin)
}
