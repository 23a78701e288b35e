package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexanderramin/dilsehat/internal/assistant"
	"github.com/alexanderramin/dilsehat/internal/cli"
	"github.com/alexanderramin/dilsehat/internal/config"
	"github.com/alexanderramin/dilsehat/internal/predict"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal; anything else is worth reporting.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	interactive := func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	logger, closeLog, err := newLogger(cfg, interactive())
	if err != nil {
		return err
	}
	defer closeLog()

	var observer predict.Observer = predict.NoopObserver{}
	if cfg.LogCalls {
		observer = predict.NewLogObserver(logger)
	}
	client := predict.NewClient(predict.Config{
		Endpoint: cfg.PredictURL,
		Timeout:  cfg.PredictTimeout(),
	}, observer)

	app := &cli.App{
		Config:        cfg,
		Predictor:     client,
		Health:        client,
		Observer:      observer,
		Logger:        logger,
		IsInteractive: interactive,
	}

	// The wizard works without the assistant, so a broken store only
	// disables the chat.
	if cfg.KnowledgeDB != "" {
		kb, err := cli.LoadKnowledge(context.Background(), cfg.KnowledgeDB)
		if err != nil {
			logger.Warn("knowledge store unavailable", "path", cfg.KnowledgeDB, "error", err)
			app.KnowledgeErr = err
		} else {
			app.Knowledge = kb
			app.KnowledgeSource = cfg.KnowledgeDB
		}
	} else {
		app.Knowledge = assistant.Builtin()
		app.KnowledgeSource = "built-in table"
	}

	return cli.NewRootCmd(app).Execute()
}

// newLogger writes to the log file while the TUI owns the terminal and to
// stderr otherwise.
func newLogger(cfg config.Config, interactive bool) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	if !interactive || cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, opts)), func() { f.Close() }, nil
}
