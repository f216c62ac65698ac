// Package plugins discovers command and middleware plugins at startup.
//
// # Overview
//
// A plugin root holds one directory per plugin. The directory name selects
// the kind and the name the plugin is registered under:
//
//	commands/
//	  cmd.ping/           command "ping"
//	    entrypoint.yaml
//	    command.json
//	  mid.auth/           middleware "auth"
//	    entrypoint.yaml
//	    middleware.json
//	  notes/              ignored
//
// Any other name, or a name with more than one ".", is ignored.
//
// # Entry Points
//
// entrypoint.yaml names a factory compiled into the binary:
//
//	factory: ping
//
// Factories are registered in a Catalog, usually from an init function:
//
//	func init() {
//		plugins.RegisterFactory("ping", NewPing)
//	}
//
// A plugin whose factory is unknown, panics, or returns nil is skipped.
//
// # Manifests
//
// command.json must be an object with object-valued "settings" and
// "localizations" members. middleware.json must be an object; all of it
// becomes the middleware's settings. Both are checked against embedded
// JSON schemas before decoding.
//
// # Loading
//
//	loader := plugins.NewLoader("./commands", log,
//		plugins.WithMetrics(observability.NewLoaderMetrics(registry)))
//	regs, err := loader.Initialize()
//	if err != nil {
//		os.Exit(1) // the fatal diagnostic was already reported
//	}
//	ping, ok := regs.Commands.Get("ping")
//
// Malformed plugins never fail Initialize. Only an unreadable plugin root
// does, with a *StartupError matching ErrEnumerate.
//
// # Related Packages
//
//   - pkg/plugins/builtin: Built-in factories
//   - pkg/observability: Reporter and metrics implementations
//   - pkg/status: HTTP view of a loaded snapshot
package plugins
