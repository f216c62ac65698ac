// Package config loads switchboard's configuration.
//
// # Overview
//
// Configuration starts from built-in defaults, is overlaid by an optional
// YAML file, and finally by SWITCHBOARD_* environment variables.
//
// # Environment
//
// Plugin loading:
//
//	SWITCHBOARD_PLUGIN_ROOT="./commands"
//
// Status API (disabled while SWITCHBOARD_STATUS_ADDR is empty):
//
//	SWITCHBOARD_STATUS_ADDR="127.0.0.1:9090"
//	SWITCHBOARD_STATUS_READ_TIMEOUT="15s"
//	SWITCHBOARD_STATUS_WRITE_TIMEOUT="15s"
//	SWITCHBOARD_SHUTDOWN_TIMEOUT="30s"
//
// Observability:
//
//	SWITCHBOARD_LOG_LEVEL="info"  # debug, info, warn, error
//	SWITCHBOARD_LOG_FORMAT="text" # text, json
//	SWITCHBOARD_METRICS_ENABLED="true"
//
// The YAML file is named by SWITCHBOARD_CONFIG_FILE:
//
//	plugins:
//	  root: ./commands
//	status:
//	  addr: 127.0.0.1:9090
//	observability:
//	  log_format: json
//
// # Usage Example
//
//	cfg, err := config.Load(os.Getenv("SWITCHBOARD_CONFIG_FILE"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	loader := plugins.NewLoader(cfg.Plugins.Root, logger)
//
// # Related Packages
//
//   - pkg/plugins: Uses the plugin root
//   - pkg/observability: Uses observability configuration
package config
