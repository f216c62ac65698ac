package plugins

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type reportEntry struct {
	Message string
	Tag     string
	Fatal   bool
	Detail  error
}

// recordingReporter captures every diagnostic the loader emits
type recordingReporter struct {
	logs   []reportEntry
	prints []reportEntry
}

func (r *recordingReporter) Log(message, tag string) {
	r.logs = append(r.logs, reportEntry{Message: message, Tag: tag})
}

func (r *recordingReporter) Print(message, tag string, fatal bool, detail error) {
	r.prints = append(r.prints, reportEntry{Message: message, Tag: tag, Fatal: fatal, Detail: detail})
}

func (r *recordingReporter) fatals() []reportEntry {
	var out []reportEntry
	for _, p := range r.prints {
		if p.Fatal {
			out = append(out, p)
		}
	}
	return out
}

func okExecutor() Executor {
	return ExecutorFunc(func(ctx context.Context, inv *Invocation) error {
		inv.Reply("ok")
		return nil
	})
}

// pointerExecutor dereferences its receiver, so a nil one panics on Execute
type pointerExecutor struct {
	reply string
}

func (p *pointerExecutor) Execute(ctx context.Context, inv *Invocation) error {
	inv.Reply(p.reply)
	return nil
}

// testCatalog holds one well-behaved factory and three broken ones
func testCatalog(t *testing.T) *Catalog {
	t.Helper()

	c := NewCatalog()
	require.NoError(t, c.Register("ok", okExecutor))
	require.NoError(t, c.Register("nil", func() Executor { return nil }))
	require.NoError(t, c.Register("panic", func() Executor { panic("factory exploded") }))
	require.NoError(t, c.Register("typednil", func() Executor {
		var exec *pointerExecutor
		return exec
	}))
	return c
}

func newNullLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}

func newTestLoader(t *testing.T, fsys fstest.MapFS) (*Loader, *recordingReporter, *test.Hook) {
	t.Helper()

	log, hook := newNullLogger()
	reporter := &recordingReporter{}

	loader := NewLoader("plugins", log,
		WithFS(fsys),
		WithResolver(NewCatalogResolver(testCatalog(t))),
		WithReporter(reporter),
	)
	return loader, reporter, hook
}

const (
	validEntryPoint      = "factory: ok\n"
	validCommandManifest = `{"settings":{"cooldown":5,"aliases":["p"]},"localizations":{"pong":"pong!"}}`
	validMiddleware      = `{"allow":["alice"],"strict":true}`
)

func commandFiles(dir, entry, manifest string) fstest.MapFS {
	return fstest.MapFS{
		dir + "/" + EntryPointFile:      &fstest.MapFile{Data: []byte(entry)},
		dir + "/" + CommandManifestFile: &fstest.MapFile{Data: []byte(manifest)},
	}
}

func middlewareFiles(dir, entry, manifest string) fstest.MapFS {
	return fstest.MapFS{
		dir + "/" + EntryPointFile:         &fstest.MapFile{Data: []byte(entry)},
		dir + "/" + MiddlewareManifestFile: &fstest.MapFile{Data: []byte(manifest)},
	}
}

func merge(trees ...fstest.MapFS) fstest.MapFS {
	out := fstest.MapFS{}
	for _, tree := range trees {
		for k, v := range tree {
			out[k] = v
		}
	}
	return out
}
