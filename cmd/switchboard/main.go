package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/switchboard/pkg/config"
	"github.com/platinummonkey/switchboard/pkg/observability"
	"github.com/platinummonkey/switchboard/pkg/plugins"
	_ "github.com/platinummonkey/switchboard/pkg/plugins/builtin"
	"github.com/platinummonkey/switchboard/pkg/status"
)

// flags override the configuration file and environment when set
type flags struct {
	ConfigFile string
	Root       string
	LogLevel   string
	StatusAddr string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	cfg, err := config.Load(f.ConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "switchboard: %v\n", err)
		return 1
	}
	applyFlags(cfg, f)

	logger := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat, os.Stderr)

	registry := prometheus.NewRegistry()
	opts := []plugins.Option{
		plugins.WithReporter(observability.NewReporter(logger)),
	}
	if cfg.Observability.MetricsEnabled {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts = append(opts, plugins.WithMetrics(observability.NewLoaderMetrics(registry)))
	}

	loader := plugins.NewLoader(cfg.Plugins.Root, logger, opts...)
	regs, err := loader.Initialize()
	if err != nil {
		// The loader has already reported the fatal diagnostic.
		return 1
	}

	if cfg.Status.Addr == "" {
		return 0
	}

	return serveStatus(cfg, regs, registry, logger)
}

func parseFlags() *flags {
	f := &flags{}

	flag.StringVar(&f.ConfigFile, "config", os.Getenv("SWITCHBOARD_CONFIG_FILE"), "Path to a YAML configuration file")
	flag.StringVar(&f.Root, "root", "", "Plugin root directory (overrides config)")
	flag.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&f.StatusAddr, "status-addr", "", "Serve the status API on this address after loading")

	flag.Parse()

	return f
}

func applyFlags(cfg *config.Config, f *flags) {
	if f.Root != "" {
		cfg.Plugins.Root = f.Root
	}
	if f.LogLevel != "" {
		cfg.Observability.LogLevel = f.LogLevel
	}
	if f.StatusAddr != "" {
		cfg.Status.Addr = f.StatusAddr
	}
}

func serveStatus(cfg *config.Config, regs *plugins.Registries, registry *prometheus.Registry, logger *logrus.Logger) int {
	var opts []status.Option
	if cfg.Observability.MetricsEnabled {
		opts = append(opts,
			status.WithGatherer(registry),
			status.WithHTTPMetrics(observability.NewHTTPMetrics(registry)),
		)
	}

	srv := status.NewServer(regs, logger, opts...).
		HTTPServer(cfg.Status.Addr, cfg.Status.ReadTimeout, cfg.Status.WriteTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := observability.ServeUntilDone(ctx, srv, cfg.Status.ShutdownTimeout, logger); err != nil {
		logger.WithError(err).Error("Status server stopped with error")
		return 1
	}
	return 0
}
