package plugins

import (
	"fmt"
	"sort"
	"sync"
)

// Catalog maps factory names to compiled factories. Entry point descriptors
// refer to factories by name.
type Catalog struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{factories: make(map[string]Factory)}
}

// defaultCatalog is populated by RegisterFactory from package init functions
var defaultCatalog = NewCatalog()

// DefaultCatalog returns the process-wide catalog
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// RegisterFactory adds a factory to the default catalog. It panics on a nil
// factory or a duplicate name, mirroring database/sql.Register.
func RegisterFactory(name string, factory Factory) {
	if err := defaultCatalog.Register(name, factory); err != nil {
		panic(err)
	}
}

// Register adds a factory under name
func (c *Catalog) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("factory name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("cannot register nil factory: %s", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.factories[name]; exists {
		return fmt.Errorf("factory already registered: %s", name)
	}

	c.factories[name] = factory
	return nil
}

// Lookup returns the factory registered under name
func (c *Catalog) Lookup(name string) (Factory, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	factory, exists := c.factories[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFactory, name)
	}

	return factory, nil
}

// Has checks if a factory is registered
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, exists := c.factories[name]
	return exists
}

// Names returns the registered factory names, sorted
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.factories))
	for name := range c.factories {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
