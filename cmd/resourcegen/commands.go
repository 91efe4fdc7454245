package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"

	"github.com/xaphier/Eternal-Lands/internal/config"
	"github.com/xaphier/Eternal-Lands/internal/logger"
	"github.com/xaphier/Eternal-Lands/internal/watch"
	"github.com/xaphier/Eternal-Lands/pkg/dds"
	"github.com/xaphier/Eternal-Lands/pkg/resource"
)

func cmdEmbed(cfg *config.Config, stdout io.Writer) error {
	set, err := resource.LoadFixtures(cfg.Input.Dir)
	if err != nil {
		return err
	}

	for _, f := range set.Fixtures() {
		logger.Debug("loaded fixture",
			zap.String("name", f.Name),
			zap.Int("bytes", len(f.Data)),
			zap.Int("rows", len(resource.Rows(f.Data))))
	}

	// Render fully before touching the output so a failure leaves nothing behind.
	out, err := resource.Render(set, cfg.Header.Options())
	if err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	if cfg.Output.Path == "" {
		_, err := stdout.Write(out)
		return err
	}
	return writeOutput(cfg.Output.Path, out)
}

// writeOutput replaces path with data, leaving it untouched when the content
// is already current.
func writeOutput(path string, data []byte) (err error) {
	if current, err := os.ReadFile(path); err == nil && bytes.Equal(current, data) {
		logger.Info("header unchanged", zap.String("path", path))
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	logger.Info("header written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

func cmdCheck(cfg *config.Config, args []string, stdout io.Writer) error {
	path := cfg.Output.Path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("%w: check needs a header path", errUsage)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening header: %w", err)
	}
	defer file.Close()

	parsed, err := resource.ParseHeader(file)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	set, err := resource.LoadFixtures(cfg.Input.Dir)
	if err != nil {
		return err
	}

	if err := parsed.Verify(set); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintf(stdout, "%s: up to date\n", path)
	return nil
}

func cmdInfo(cfg *config.Config, stdout io.Writer) error {
	set, err := resource.LoadFixtures(cfg.Input.Dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Fixtures: %s\n\n", set.Dir())

	paths := set.Paths()
	total := 0
	for i, f := range set.Fixtures() {
		total += len(f.Data)

		digest := sha3.Sum256(f.Data)
		summary := "-"
		if len(f.Data) > 0 {
			if d, err := dds.Parse(f.Data); err != nil {
				summary = fmt.Sprintf("not DDS (%v)", err)
			} else {
				summary = d.String()
				if want := d.ExpectedDataSize(); want > 0 && want != d.DataSize {
					summary += fmt.Sprintf(" [data %d bytes, expected %d]", d.DataSize, want)
				}
			}
		}

		fmt.Fprintf(stdout, "  %-12s %-24s %7d bytes %4d rows  sha3:%s  %s\n",
			f.Symbol(), paths[i], len(f.Data), len(resource.Rows(f.Data)),
			hex.EncodeToString(digest[:6]), summary)
	}

	fmt.Fprintf(stdout, "\nTotal:   %d bytes\n", total)
	return nil
}

func cmdWatch(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	if cfg.Output.Path == "" {
		return fmt.Errorf("%w: watch needs an output file (-o)", errUsage)
	}

	w, err := watch.New(cfg.Input.Dir, cfg.Watch.Debounce, logger.Log)
	if err != nil {
		return err
	}
	defer w.Close()

	regenerate := func() error {
		return cmdEmbed(cfg, stdout)
	}

	if err := regenerate(); err != nil {
		logger.Error("initial generation failed", zap.Error(err))
	}

	logger.Info("watching fixtures", zap.String("dir", cfg.Input.Dir), zap.String("output", cfg.Output.Path))

	err = w.Run(ctx, regenerate)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: config needs a file path", errUsage)
	}
	if err := cfg.SaveTo(args[0]); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	logger.Info("config written", zap.String("path", args[0]))
	return nil
}
