package plugins

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Directory naming convention: <marker>.<name>
const (
	CommandMarker    = "cmd"
	MiddlewareMarker = "mid"
	NameSeparator    = "."
)

// Fixed file names inside a plugin directory
const (
	EntryPointFile         = "entrypoint.yaml"
	CommandManifestFile    = "command.json"
	MiddlewareManifestFile = "middleware.json"
)

// DefaultPluginRoot is the conventional plugin root, relative to the working directory
const DefaultPluginRoot = "./commands"

// Kind identifies which registry a plugin directory belongs to
type Kind string

const (
	KindCommand    Kind = "command"
	KindMiddleware Kind = "middleware"
)

// Executor is the capability every plugin entry point must provide
type Executor interface {
	Execute(ctx context.Context, inv *Invocation) error
}

// ExecutorFunc adapts a plain function to the Executor interface
type ExecutorFunc func(ctx context.Context, inv *Invocation) error

// Execute calls f(ctx, inv)
func (f ExecutorFunc) Execute(ctx context.Context, inv *Invocation) error {
	return f(ctx, inv)
}

// Factory is the zero-argument constructor an entry point is bound to
type Factory func() Executor

// Invocation is the input handed to an Executor by the dispatcher
type Invocation struct {
	Command   string
	Args      []string
	Sender    string
	Settings  map[string]any
	Strings   map[string]any
	Metadata  map[string]string
	Responses []string
}

// Reply appends a response line for the caller
func (inv *Invocation) Reply(msg string) {
	inv.Responses = append(inv.Responses, msg)
}

// String returns a localized string by key, or fallback when the key is
// absent or not a string
func (inv *Invocation) String(key, fallback string) string {
	if s, ok := inv.Strings[key].(string); ok {
		return s
	}
	return fallback
}

// CommandFrame is a validated command plugin
type CommandFrame struct {
	Name             string         `json:"name"`
	Dir              string         `json:"-"`
	EntryPointPath   string         `json:"entry_point"`
	Settings         map[string]any `json:"settings"`
	LocalizedStrings map[string]any `json:"localizations"`
	Factory          Factory        `json:"-"`
}

// New mints a fresh executor for the command. A factory that panics or
// returns nil yields an error instead.
func (f *CommandFrame) New() (Executor, error) {
	return instantiate(f.Factory)
}

// MiddlewareFrame is a validated middleware plugin
type MiddlewareFrame struct {
	Name           string         `json:"name"`
	Dir            string         `json:"-"`
	EntryPointPath string         `json:"entry_point"`
	Settings       map[string]any `json:"settings"`
	Factory        Factory        `json:"-"`
}

// New mints a fresh executor for the middleware
func (f *MiddlewareFrame) New() (Executor, error) {
	return instantiate(f.Factory)
}

// Registries is the immutable result of one Initialize call
type Registries struct {
	ID          uuid.UUID
	LoadedAt    time.Time
	Root        string
	Commands    *CommandRegistry
	Middlewares *MiddlewareRegistry
}

// Reporter is the diagnostics facility the loader reports progress and
// fatal conditions to
type Reporter interface {
	Log(message, tag string)
	Print(message, tag string, fatal bool, detail error)
}

// Metrics receives loader measurements. A nil Metrics disables recording.
type Metrics interface {
	ObserveScan(d time.Duration)
	ScanFailed()
	SetLoaded(kind string, n int)
	Skipped(kind, reason string)
	Collision(kind string)
}
