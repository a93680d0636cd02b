// Package main is the entry point for the l10nify command.
//
// Usage:
//
//	l10nify [flags] <root>
//
// Every .dart file under root has its double-quoted literals compared with
// the values of root/l10n/app_en.arb; matches are rewritten in place as
// AppLocalizations.of(context)!.<key>.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"l10nify.io/l10nify/internal/app"
	"l10nify.io/l10nify/internal/config"
	apperrors "l10nify.io/l10nify/internal/pkg/errors"
	"l10nify.io/l10nify/internal/pkg/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting l10nify",
		zap.String("root", cfg.Root),
		zap.String("extension", cfg.Extension),
		zap.Int("workers", cfg.Worker.PoolSize),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.Bootstrap(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer application.Shutdown()

	summary, err := application.Run(ctx)
	if apperrors.HasCode(err, apperrors.CodeUnlocalizedLiterals) {
		fmt.Fprintln(stdout, "FAIL: hardcoded strings duplicate localization values")
		for _, v := range summary.Violations() {
			fmt.Fprintf(stdout, " - %s\n", v)
		}
		return err
	}
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if cfg.Check {
		fmt.Fprintln(stdout, app.CheckPassedMessage)
		return nil
	}
	fmt.Fprintln(stdout, app.CompletionMessage)
	return nil
}
