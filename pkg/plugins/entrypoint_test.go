package plugins

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEntryPoint(t *testing.T) {
	fsys := fstest.MapFS{
		"good.yaml":   &fstest.MapFile{Data: []byte("factory: ping\ndescription: Replies with pong\n")},
		"empty.yaml":  &fstest.MapFile{Data: []byte("")},
		"nofac.yaml":  &fstest.MapFile{Data: []byte("description: x\n")},
		"extra.yaml":  &fstest.MapFile{Data: []byte("factory: ping\nscript: index.js\n")},
		"broken.yaml": &fstest.MapFile{Data: []byte("factory: [unterminated\n")},
		"scalar.yaml": &fstest.MapFile{Data: []byte("ping\n")},
	}

	ep, err := LoadEntryPoint(fsys, "good.yaml")
	require.NoError(t, err)
	assert.Equal(t, "ping", ep.Factory)
	assert.Equal(t, "Replies with pong", ep.Description)

	for _, name := range []string{"empty.yaml", "nofac.yaml", "extra.yaml", "broken.yaml", "scalar.yaml", "missing.yaml"} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadEntryPoint(fsys, name)
			assert.Error(t, err)
		})
	}
}

func TestCatalogResolver_Resolve(t *testing.T) {
	fsys := fstest.MapFS{
		"known.yaml":   &fstest.MapFile{Data: []byte("factory: ok\n")},
		"unknown.yaml": &fstest.MapFile{Data: []byte("factory: ghost\n")},
	}
	resolver := NewCatalogResolver(testCatalog(t))

	factory, err := resolver.Resolve(fsys, "known.yaml")
	require.NoError(t, err)
	assert.NotNil(t, factory())

	_, err = resolver.Resolve(fsys, "unknown.yaml")
	assert.ErrorIs(t, err, ErrUnknownFactory)
}

func TestNewCatalogResolver_DefaultsToDefaultCatalog(t *testing.T) {
	resolver := NewCatalogResolver(nil)
	assert.Same(t, DefaultCatalog(), resolver.catalog)
}

func TestInstantiate(t *testing.T) {
	exec, err := instantiate(okExecutor)
	require.NoError(t, err)
	assert.NotNil(t, exec)

	_, err = instantiate(func() Executor { return nil })
	assert.ErrorContains(t, err, "nil executor")

	_, err = instantiate(func() Executor {
		var exec *pointerExecutor
		return exec
	})
	assert.ErrorContains(t, err, "nil executor")

	_, err = instantiate(func() Executor {
		var fn ExecutorFunc
		return fn
	})
	assert.ErrorContains(t, err, "nil executor")

	_, err = instantiate(func() Executor { panic("boom") })
	assert.ErrorContains(t, err, "factory panic: boom")
}
