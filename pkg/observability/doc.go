// Package observability provides logging, diagnostics reporting, Prometheus
// metrics and graceful shutdown for switchboard.
//
// # Logging
//
// Loggers are logrus loggers configured from a level and a format:
//
//	log := observability.NewLogger("debug", observability.FormatJSON, os.Stderr)
//	log.WithField("root", root).Info("Scanning plugins")
//
// # Reporting
//
// Reporter implements the diagnostics facility the plugin loader writes its
// progress and fatal notices to. Every notice carries a "tag" field:
//
//	reporter := observability.NewReporter(log)
//	loader := plugins.NewLoader(root, log, plugins.WithReporter(reporter))
//
// # Prometheus Metrics
//
// LoaderMetrics satisfies plugins.Metrics:
//
//	registry := prometheus.NewRegistry()
//	loader := plugins.NewLoader(root, log,
//		plugins.WithMetrics(observability.NewLoaderMetrics(registry)))
//
// HTTPMetrics and HTTPMetricsMiddleware instrument the status API, and
// MetricsHandler exposes a registry at /metrics.
//
// # Shutdown
//
// ServeUntilDone runs an HTTP server until its context is cancelled:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	err := observability.ServeUntilDone(ctx, srv, 10*time.Second, log)
//
// # Related Packages
//
//   - pkg/config: Observability configuration
//   - pkg/status: Status API served with these metrics
package observability
