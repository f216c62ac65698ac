package plugins

import (
	"sort"
)

// CommandRegistry is a read-only, name-keyed set of command frames
type CommandRegistry struct {
	frames map[string]*CommandFrame
}

// Get returns a copy of the command frame registered under name. Changes to
// the copy never reach the registry.
func (r *CommandRegistry) Get(name string) (*CommandFrame, bool) {
	if r == nil {
		return nil, false
	}
	frame, exists := r.frames[name]
	if !exists {
		return nil, false
	}
	return frame.clone(), true
}

// Has checks if a command is registered
func (r *CommandRegistry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, exists := r.frames[name]
	return exists
}

// Len returns the number of commands
func (r *CommandRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.frames)
}

// Names returns the command names, sorted
func (r *CommandRegistry) Names() []string {
	if r == nil {
		return nil
	}
	return sortedKeys(r.frames)
}

// Each calls fn with a copy of every frame, in name order
func (r *CommandRegistry) Each(fn func(name string, frame *CommandFrame)) {
	for _, name := range r.Names() {
		fn(name, r.frames[name].clone())
	}
}

// MiddlewareRegistry is a read-only, name-keyed set of middleware frames
type MiddlewareRegistry struct {
	frames map[string]*MiddlewareFrame
}

// Get returns a copy of the middleware frame registered under name
func (r *MiddlewareRegistry) Get(name string) (*MiddlewareFrame, bool) {
	if r == nil {
		return nil, false
	}
	frame, exists := r.frames[name]
	if !exists {
		return nil, false
	}
	return frame.clone(), true
}

// Has checks if a middleware is registered
func (r *MiddlewareRegistry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, exists := r.frames[name]
	return exists
}

// Len returns the number of middlewares
func (r *MiddlewareRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.frames)
}

// Names returns the middleware names, sorted
func (r *MiddlewareRegistry) Names() []string {
	if r == nil {
		return nil
	}
	return sortedKeys(r.frames)
}

// Each calls fn with a copy of every frame, in name order
func (r *MiddlewareRegistry) Each(fn func(name string, frame *MiddlewareFrame)) {
	for _, name := range r.Names() {
		fn(name, r.frames[name].clone())
	}
}

// registryBuilder accumulates frames during a scan. Only Initialize owns one,
// and it is frozen into the read-only registries when the scan completes.
type registryBuilder struct {
	commands    map[string]*CommandFrame
	middlewares map[string]*MiddlewareFrame
}

func newRegistryBuilder() *registryBuilder {
	return &registryBuilder{
		commands:    make(map[string]*CommandFrame),
		middlewares: make(map[string]*MiddlewareFrame),
	}
}

// putCommand stores frame under name. Later frames replace earlier ones; the
// replaced frame is returned so the caller can report the collision.
func (b *registryBuilder) putCommand(name string, frame *CommandFrame) (*CommandFrame, bool) {
	prev, exists := b.commands[name]
	b.commands[name] = frame
	return prev, exists
}

// putMiddleware stores frame under name with the same replacement rule as putCommand
func (b *registryBuilder) putMiddleware(name string, frame *MiddlewareFrame) (*MiddlewareFrame, bool) {
	prev, exists := b.middlewares[name]
	b.middlewares[name] = frame
	return prev, exists
}

// freeze hands the accumulated frames to new registries. Each frame is
// copied so later writes through the builder's pointers are not visible.
func (b *registryBuilder) freeze() (*CommandRegistry, *MiddlewareRegistry) {
	commands := make(map[string]*CommandFrame, len(b.commands))
	for name, frame := range b.commands {
		commands[name] = frame.clone()
	}

	middlewares := make(map[string]*MiddlewareFrame, len(b.middlewares))
	for name, frame := range b.middlewares {
		middlewares[name] = frame.clone()
	}

	return &CommandRegistry{frames: commands}, &MiddlewareRegistry{frames: middlewares}
}

func (f *CommandFrame) clone() *CommandFrame {
	c := *f
	c.Settings = cloneObject(f.Settings)
	c.LocalizedStrings = cloneObject(f.LocalizedStrings)
	return &c
}

func (f *MiddlewareFrame) clone() *MiddlewareFrame {
	c := *f
	c.Settings = cloneObject(f.Settings)
	return &c
}

// cloneObject deep-copies a decoded JSON object. Nested objects and arrays
// are copied; scalars are immutable and shared.
func cloneObject(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneObject(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
