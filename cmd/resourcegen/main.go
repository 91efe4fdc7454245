// resourcegen embeds the DDS codec test fixtures into a C++ header.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xaphier/Eternal-Lands/internal/config"
	"github.com/xaphier/Eternal-Lands/internal/logger"
)

var errUsage = errors.New("usage error")

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, config.Args(), os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "%v\n\n", err)
			printUsage(os.Stderr)
		} else {
			logger.Error("resourcegen failed", zap.Error(err))
		}
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	command := "embed"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "embed":
		return cmdEmbed(cfg, stdout)
	case "check":
		return cmdCheck(cfg, args, stdout)
	case "info":
		return cmdInfo(cfg, stdout)
	case "watch":
		return cmdWatch(ctx, cfg, stdout)
	case "config":
		return cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `resourcegen - embed DDS test fixtures into resourcedata.hpp

Usage:
  resourcegen [flags] [command]

Commands:
  embed            Write the header (default)
  check <header>   Verify an existing header against the fixtures
  info             Show size, digest and DDS format of every fixture
  watch            Rewrite the header whenever a fixture changes (needs -o)
  config <file>    Write the effective configuration as YAML

Flags:
  -config <file>   Config file (default ./resourcegen.yaml)
  -dir <dir>       Directory holding test0.dds ... test14.dds
  -o <file>        Output file (default stdout)
  -log-file <file> Also log to this file
  -debug           Enable debug logging

Examples:
  resourcegen > resourcedata.hpp
  resourcegen -dir images -o engine/resourcedata.hpp
  resourcegen -dir images check engine/resourcedata.hpp`)
}
