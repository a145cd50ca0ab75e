package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gnud-gnaoh/github-most-starred/internal/config"
	"github.com/gnud-gnaoh/github-most-starred/internal/domain"
	"github.com/gnud-gnaoh/github-most-starred/internal/gateway"
	"github.com/gnud-gnaoh/github-most-starred/internal/usecase"
)

// newSearcher is replaced in tests.
var newSearcher = gateway.NewSearcher

func runMostStarred(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadEnv(); err != nil {
		return err
	}

	cfg := config.Config{Token: config.TokenFromEnv()}
	cfg.Verbose, _ = cmd.Flags().GetBool("verbose")
	cfg.Start, _ = cmd.Flags().GetString("start")
	cfg.End, _ = cmd.Flags().GetString("end")
	cfg.API, _ = cmd.Flags().GetString("api")
	cfg.PerPage, _ = cmd.Flags().GetInt("per-page")
	cfg.JSON, _ = cmd.Flags().GetBool("json")

	created, err := cfg.DateRange()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Verbose, cmd.ErrOrStderr())
	defer logger.Sync() //nolint:errcheck

	// Inject dependencies and run the main business logic.
	searcher, err := newSearcher(cfg.API, cfg.Token, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub searcher: %w", err)
	}
	return run(ctx, cfg, created, searcher, logger, cmd.OutOrStdout())
}

// run searches for the most starred repository and prints the result to out.
func run(ctx context.Context, cfg config.Config, created domain.DateRange, searcher gateway.Searcher, logger *zap.Logger, out io.Writer) error {
	opts := []usecase.Option{usecase.WithPerPage(cfg.PerPage)}
	if !cfg.JSON {
		opts = append(opts, usecase.WithProgress(out))
	}
	finder := usecase.NewFinder(searcher, logger, opts...)

	report, err := finder.Find(ctx, created)
	if err != nil {
		return err
	}
	if cfg.JSON {
		return printJSON(out, report)
	}
	printText(out, report)
	return nil
}

func printText(out io.Writer, report *domain.Report) {
	if !report.Found() {
		fmt.Fprintln(out, "No repository found.")
		return
	}
	repo := report.Repository
	fmt.Fprintln(out, "Most starred repository:")
	fmt.Fprintf(out, "  Name: %s\n", repo.Name)
	fmt.Fprintf(out, "  URL: %s\n", repo.URL)
	fmt.Fprintf(out, "  Number of stars: %d\n", repo.StarCount)
}

func printJSON(out io.Writer, report *domain.Report) error {
	// Marshal the result into a pretty-printed JSON string.
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result to JSON: %w", err)
	}
	fmt.Fprintln(out, string(jsonData))
	return nil
}

// newLogger writes human-readable logs to w. Only warnings and errors are shown unless verbose.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(zapcore.AddSync(w)), level)
	opts := []zap.Option{zap.ErrorOutput(zapcore.Lock(zapcore.AddSync(w)))}
	if verbose {
		opts = append(opts, zap.AddCaller())
	}
	return zap.New(core, opts...)
}
