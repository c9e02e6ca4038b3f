// Command texprobe probes a GLES2 driver and exercises texture uploads,
// writes and destroys described by a TOML file.
//
// Usage:
//
//	texprobe -config texprobe.toml [-driver egl|fake] [-watch] [-log-level debug]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/gogpu/glestex"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("texprobe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "TOML configuration file")
		driverName = fs.String("driver", "", "driver name, overrides the config")
		watch      = fs.Bool("watch", false, "re-upload images when they change")
		level      = fs.String("log-level", "", "log level, overrides the config")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			fmt.Fprintln(stderr, "texprobe:", err)
			return 1
		}
	}
	if *driverName != "" {
		cfg.Driver = *driverName
	}
	if *watch {
		cfg.Watch = true
	}
	if *level != "" {
		cfg.Log.Level = *level
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "texprobe:", err)
		return 1
	}

	logger := newLogger(stderr, cfg.Log)
	glestex.SetLogger(logger)
	defer glestex.SetLogger(nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := probe(ctx, cfg, logger, stdout); err != nil {
		logger.Error("probe failed", "err", err)
		return 1
	}
	return 0
}

// newLogger installs a charmbracelet logger as the slog handler.
func newLogger(w io.Writer, cfg LogConfig) *slog.Logger {
	lvl, err := log.ParseLevel(cfg.Level)
	if err != nil {
		lvl = log.InfoLevel
	}
	l := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: cfg.Timestamps,
		TimeFormat:      time.RFC3339,
		Prefix:          "texprobe",
	})
	return slog.New(l)
}

func probe(ctx context.Context, cfg *Config, logger *slog.Logger, out io.Writer) error {
	reg := drivers()
	if !reg.Has(cfg.Driver) {
		return errors.Newf("unknown driver %q (available: %v)", cfg.Driver, reg.Available())
	}
	drv, release, err := reg.Get(cfg.Driver)()
	if err != nil {
		return errors.Wrapf(err, "open driver %q", cfg.Driver)
	}
	defer release()

	r, err := glestex.NewRenderer(drv, glestex.WithDebugMarkers(cfg.Renderer.DebugMarkers))
	if err != nil {
		return err
	}
	return newProber(cfg, r, logger, out).run(ctx)
}
