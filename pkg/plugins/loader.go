package plugins

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/switchboard/pkg/observability"
)

// Report tags used for loader diagnostics
const (
	TagCommands = "COMMANDS"
	TagCritical = "COMMANDS CRITICAL"
)

// Loader discovers command and middleware plugins in a plugin root
type Loader struct {
	root     string
	fsys     fs.FS
	resolver EntryPointResolver
	reporter Reporter
	metrics  Metrics
	log      *logrus.Logger
}

// Option configures a Loader
type Option func(*Loader)

// WithFS scans fsys instead of the operating system directory at root.
// root is then only used to label entry point paths.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) {
		l.fsys = fsys
	}
}

// WithResolver sets the entry point resolver
func WithResolver(resolver EntryPointResolver) Option {
	return func(l *Loader) {
		l.resolver = resolver
	}
}

// WithReporter sets the diagnostics facility
func WithReporter(reporter Reporter) Option {
	return func(l *Loader) {
		l.reporter = reporter
	}
}

// WithMetrics enables loader metrics
func WithMetrics(metrics Metrics) Option {
	return func(l *Loader) {
		l.metrics = metrics
	}
}

// NewLoader creates a loader for the plugin root. An empty root means
// DefaultPluginRoot.
func NewLoader(root string, log *logrus.Logger, opts ...Option) *Loader {
	if root == "" {
		root = DefaultPluginRoot
	}
	if log == nil {
		log = logrus.New()
	}

	l := &Loader{
		root: root,
		log:  log,
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.fsys == nil {
		l.fsys = os.DirFS(root)
	}
	if l.resolver == nil {
		l.resolver = NewCatalogResolver(nil)
	}
	if l.reporter == nil {
		l.reporter = observability.NewReporter(log)
	}

	return l
}

// Root returns the plugin root the loader scans
func (l *Loader) Root() string {
	return l.root
}

// ParseDirName classifies a plugin root entry. ok is false for names that
// do not split into exactly two parts, carry an unknown marker, or have an
// empty plugin name.
func ParseDirName(dir string) (kind Kind, name string, ok bool) {
	parts := strings.Split(dir, NameSeparator)
	if len(parts) != 2 || parts[1] == "" {
		return "", "", false
	}

	switch parts[0] {
	case CommandMarker:
		return KindCommand, parts[1], true
	case MiddlewareMarker:
		return KindMiddleware, parts[1], true
	default:
		return "", "", false
	}
}

// Initialize scans the plugin root and builds the command and middleware
// registries. Malformed plugins are skipped. If the root cannot be listed a
// fatal diagnostic is reported and a *StartupError is returned; the caller
// is expected to abort.
func (l *Loader) Initialize() (*Registries, error) {
	start := time.Now()

	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		if l.metrics != nil {
			l.metrics.ScanFailed()
		}
		l.reporter.Print("Indexing plugins failed. The process will now exit.", TagCritical, true, err)
		return nil, &StartupError{Root: l.root, Err: err}
	}

	b := newRegistryBuilder()

	for _, entry := range entries {
		if !l.isDir(entry) {
			continue
		}

		kind, name, ok := ParseDirName(entry.Name())
		if !ok {
			continue
		}

		switch kind {
		case KindCommand:
			frame, err := l.LoadCommand(entry.Name())
			if err != nil {
				l.skip(err)
				continue
			}
			if prev, dup := b.putCommand(name, frame); dup {
				l.collision(kind, name, prev.EntryPointPath, frame.EntryPointPath)
			}
			l.reporter.Log(fmt.Sprintf("Command (%s) loaded.", name), TagCommands)

		case KindMiddleware:
			frame, err := l.LoadMiddleware(entry.Name())
			if err != nil {
				l.skip(err)
				continue
			}
			if prev, dup := b.putMiddleware(name, frame); dup {
				l.collision(kind, name, prev.EntryPointPath, frame.EntryPointPath)
			}
			l.reporter.Log(fmt.Sprintf("Middleware (%s) loaded.", name), TagCommands)
		}
	}

	commands, middlewares := b.freeze()

	l.reporter.Print(fmt.Sprintf("%d commands loaded.", commands.Len()), TagCommands, false, nil)
	l.reporter.Print(fmt.Sprintf("%d middlewares loaded.", middlewares.Len()), TagCommands, false, nil)

	if l.metrics != nil {
		l.metrics.SetLoaded(string(KindCommand), commands.Len())
		l.metrics.SetLoaded(string(KindMiddleware), middlewares.Len())
		l.metrics.ObserveScan(time.Since(start))
	}

	regs := &Registries{
		ID:          uuid.New(),
		LoadedAt:    time.Now(),
		Root:        l.root,
		Commands:    commands,
		Middlewares: middlewares,
	}

	l.log.WithFields(logrus.Fields{
		"snapshot":    regs.ID.String(),
		"root":        l.root,
		"commands":    commands.Len(),
		"middlewares": middlewares.Len(),
		"duration":    time.Since(start).String(),
	}).Debug("Plugin scan complete")

	return regs, nil
}

// LoadCommand validates the command plugin in dir (a direct child of the
// plugin root) and returns its frame
func (l *Loader) LoadCommand(dir string) (*CommandFrame, error) {
	manifestPath := path.Join(dir, CommandManifestFile)

	factory, err := l.loadEntryPoint(KindCommand, dir, manifestPath)
	if err != nil {
		return nil, err
	}

	manifest, err := LoadCommandManifest(l.fsys, manifestPath)
	if err != nil {
		return nil, &InvalidPluginError{Kind: KindCommand, Dir: dir, Reason: ReasonManifest, Err: err}
	}

	_, name, _ := ParseDirName(dir)
	return &CommandFrame{
		Name:             name,
		Dir:              dir,
		EntryPointPath:   l.entryPointPath(dir),
		Settings:         manifest.Settings,
		LocalizedStrings: manifest.Localizations,
		Factory:          factory,
	}, nil
}

// LoadMiddleware validates the middleware plugin in dir and returns its frame
func (l *Loader) LoadMiddleware(dir string) (*MiddlewareFrame, error) {
	manifestPath := path.Join(dir, MiddlewareManifestFile)

	factory, err := l.loadEntryPoint(KindMiddleware, dir, manifestPath)
	if err != nil {
		return nil, err
	}

	settings, err := LoadMiddlewareManifest(l.fsys, manifestPath)
	if err != nil {
		return nil, &InvalidPluginError{Kind: KindMiddleware, Dir: dir, Reason: ReasonManifest, Err: err}
	}

	_, name, _ := ParseDirName(dir)
	return &MiddlewareFrame{
		Name:           name,
		Dir:            dir,
		EntryPointPath: l.entryPointPath(dir),
		Settings:       settings,
		Factory:        factory,
	}, nil
}

// loadEntryPoint runs the checks shared by both plugin kinds: both files
// exist, and the entry point resolves to a factory yielding an executor
func (l *Loader) loadEntryPoint(kind Kind, dir, manifestPath string) (Factory, error) {
	entryPath := path.Join(dir, EntryPointFile)

	for _, p := range []string{entryPath, manifestPath} {
		if _, err := fs.Stat(l.fsys, p); err != nil {
			return nil, &InvalidPluginError{Kind: kind, Dir: dir, Reason: ReasonMissingFile, Err: err}
		}
	}

	factory, err := l.resolver.Resolve(l.fsys, entryPath)
	if err != nil {
		return nil, &InvalidPluginError{Kind: kind, Dir: dir, Reason: ReasonEntryPoint, Err: err}
	}

	if _, err := instantiate(factory); err != nil {
		return nil, &InvalidPluginError{Kind: kind, Dir: dir, Reason: ReasonEntryPoint, Err: err}
	}

	return factory, nil
}

func (l *Loader) entryPointPath(dir string) string {
	return filepath.Join(l.root, dir, EntryPointFile)
}

// isDir reports whether entry is a directory, following symlinks
func (l *Loader) isDir(entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := fs.Stat(l.fsys, entry.Name())
	return err == nil && info.IsDir()
}

func (l *Loader) skip(err error) {
	var invalid *InvalidPluginError
	if !errors.As(err, &invalid) {
		l.log.WithError(err).Warn("Skipping plugin directory")
		return
	}

	l.log.WithFields(logrus.Fields{
		"dir":    invalid.Dir,
		"kind":   invalid.Kind,
		"reason": invalid.Reason,
	}).WithError(invalid.Err).Debug("Skipping plugin directory")

	if l.metrics != nil {
		l.metrics.Skipped(string(invalid.Kind), string(invalid.Reason))
	}
}

func (l *Loader) collision(kind Kind, name, previous, current string) {
	l.log.WithFields(logrus.Fields{
		"kind":     kind,
		"name":     name,
		"replaced": previous,
		"winner":   current,
	}).Warn("Duplicate plugin name, keeping the later entry")

	if l.metrics != nil {
		l.metrics.Collision(string(kind))
	}
}
