package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"climate-bulk-download/config"
	"climate-bulk-download/downloader"
)

var (
	osArgs = os.Args
	osExit = os.Exit
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitConfigError = 2
)

func main() {
	osExit(run(context.Background(), osArgs[1:], os.Stdout, os.Stderr))
}

// run executes one bulk download and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.LoadConfig(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return exitConfigError
	}

	logger, err := newLogger(cfg.LogLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create logger: %v\n", err)
		return exitFailure
	}
	defer logger.Sync()

	bf := downloader.NewBulkFetcher(cfg,
		downloader.WithLogger(logger),
		downloader.WithReporter(downloader.NewBarReporter(cfg.TotalTargets(), stderr)),
		downloader.WithConsole(stdout),
	)

	result, err := bf.Run(ctx)
	if err != nil {
		logger.Error("bulk download failed", zap.Error(err))
		fmt.Fprintf(stderr, "Fatal: %v\n", err)
		return exitFailure
	}

	if result.Status == downloader.RunAborted {
		fmt.Fprintf(stderr, "Aborted: %v\n", result.Reason)
		return exitFailure
	}

	fmt.Fprintln(stdout, "Done.")
	return exitOK
}

// newLogger builds a console logger at the configured level
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		lvl,
	)

	return zap.New(core), nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "DEBUG":
		return zapcore.DebugLevel, nil
	case "INFO", "":
		return zapcore.InfoLevel, nil
	case "WARN":
		return zapcore.WarnLevel, nil
	case "ERROR":
		return zapcore.ErrorLevel, nil
	case "FATAL":
		return zapcore.FatalLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}
