package plugins

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/switchboard/pkg/observability"
)

// EntryPoint is the descriptor stored in entrypoint.yaml. It binds a plugin
// directory to a factory compiled into the host.
type EntryPoint struct {
	Factory     string `yaml:"factory"`
	Description string `yaml:"description,omitempty"`
}

// EntryPointResolver turns an entry point file into a factory
type EntryPointResolver interface {
	Resolve(fsys fs.FS, path string) (Factory, error)
}

// CatalogResolver resolves entry point descriptors against a Catalog
type CatalogResolver struct {
	catalog *Catalog
}

// NewCatalogResolver creates a resolver backed by catalog. A nil catalog
// means the default catalog.
func NewCatalogResolver(catalog *Catalog) *CatalogResolver {
	if catalog == nil {
		catalog = defaultCatalog
	}
	return &CatalogResolver{catalog: catalog}
}

// Resolve reads the descriptor at path and looks its factory up
func (r *CatalogResolver) Resolve(fsys fs.FS, path string) (Factory, error) {
	ep, err := LoadEntryPoint(fsys, path)
	if err != nil {
		return nil, err
	}
	return r.catalog.Lookup(ep.Factory)
}

// LoadEntryPoint parses an entry point descriptor. Unknown fields are rejected.
func LoadEntryPoint(fsys fs.FS, path string) (*EntryPoint, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry point: %w", err)
	}

	var ep EntryPoint
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ep); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("entry point %s is empty", path)
		}
		return nil, fmt.Errorf("failed to parse entry point: %w", err)
	}

	if ep.Factory == "" {
		return nil, fmt.Errorf("entry point %s: factory is required", path)
	}

	return &ep, nil
}

// instantiate invokes the factory once and checks it yields an executor.
// A panicking factory, or one returning a nil value of any nillable type, is
// reported as an error.
func instantiate(factory Factory) (exec Executor, err error) {
	defer func() {
		if perr := observability.MustRecover(recover()); perr != nil {
			exec = nil
			err = fmt.Errorf("factory %w", perr)
		}
	}()

	exec = factory()
	if isNilExecutor(exec) {
		return nil, fmt.Errorf("factory returned nil executor")
	}
	return exec, nil
}

// isNilExecutor reports whether exec is nil or wraps a nil pointer, func,
// map, chan, slice or interface
func isNilExecutor(exec Executor) bool {
	if exec == nil {
		return true
	}
	v := reflect.ValueOf(exec)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
