package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBuilder_LastWriteWins(t *testing.T) {
	b := newRegistryBuilder()

	first := &CommandFrame{Name: "x", EntryPointPath: "a/entrypoint.yaml"}
	second := &CommandFrame{Name: "x", EntryPointPath: "b/entrypoint.yaml"}

	prev, dup := b.putCommand("x", first)
	assert.False(t, dup)
	assert.Nil(t, prev)

	prev, dup = b.putCommand("x", second)
	assert.True(t, dup)
	assert.Same(t, first, prev)

	commands, middlewares := b.freeze()
	assert.Equal(t, 1, commands.Len())
	assert.Equal(t, 0, middlewares.Len())

	got, ok := commands.Get("x")
	require.True(t, ok)
	assert.Equal(t, "b/entrypoint.yaml", got.EntryPointPath)
}

func TestRegistryBuilder_MiddlewareCollision(t *testing.T) {
	b := newRegistryBuilder()

	_, dup := b.putMiddleware("auth", &MiddlewareFrame{EntryPointPath: "a"})
	assert.False(t, dup)
	prev, dup := b.putMiddleware("auth", &MiddlewareFrame{EntryPointPath: "b"})
	assert.True(t, dup)
	assert.Equal(t, "a", prev.EntryPointPath)

	_, middlewares := b.freeze()
	assert.Equal(t, []string{"auth"}, middlewares.Names())
}

func TestRegistries_KindsAreSeparate(t *testing.T) {
	b := newRegistryBuilder()
	b.putCommand("auth", &CommandFrame{EntryPointPath: "cmd"})
	b.putMiddleware("auth", &MiddlewareFrame{EntryPointPath: "mid"})

	commands, middlewares := b.freeze()

	cmd, _ := commands.Get("auth")
	mid, _ := middlewares.Get("auth")
	assert.Equal(t, "cmd", cmd.EntryPointPath)
	assert.Equal(t, "mid", mid.EntryPointPath)
}

func TestCommandRegistry_NamesAndEach(t *testing.T) {
	b := newRegistryBuilder()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		b.putCommand(name, &CommandFrame{Name: name})
	}
	commands, _ := b.freeze()

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, commands.Names())
	assert.True(t, commands.Has("mid"))
	assert.False(t, commands.Has("missing"))

	var visited []string
	commands.Each(func(name string, frame *CommandFrame) {
		assert.Equal(t, name, frame.Name)
		visited = append(visited, name)
	})
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, visited)
}

func TestRegistries_NilSafe(t *testing.T) {
	var commands *CommandRegistry
	var middlewares *MiddlewareRegistry

	assert.Equal(t, 0, commands.Len())
	assert.Nil(t, commands.Names())
	assert.False(t, commands.Has("x"))
	assert.Equal(t, 0, middlewares.Len())
	_, ok := middlewares.Get("x")
	assert.False(t, ok)

	commands.Each(func(string, *CommandFrame) { t.Fatal("unexpected frame") })
	middlewares.Each(func(string, *MiddlewareFrame) { t.Fatal("unexpected frame") })
}

func TestRegistries_ReturnCopies(t *testing.T) {
	b := newRegistryBuilder()
	b.putCommand("ping", &CommandFrame{
		Name:             "ping",
		Settings:         map[string]any{"cooldown": float64(5), "aliases": []any{"p"}},
		LocalizedStrings: map[string]any{"topics": map[string]any{"ping": "pong"}},
	})
	b.putMiddleware("auth", &MiddlewareFrame{
		Name:     "auth",
		Settings: map[string]any{"allow": []any{"alice"}},
	})
	commands, middlewares := b.freeze()

	cmd, ok := commands.Get("ping")
	require.True(t, ok)
	cmd.Settings["cooldown"] = "changed"
	cmd.Settings["aliases"].([]any)[0] = "changed"
	cmd.LocalizedStrings["topics"].(map[string]any)["ping"] = "changed"
	cmd.Name = "changed"

	again, _ := commands.Get("ping")
	assert.Equal(t, "ping", again.Name)
	assert.Equal(t, float64(5), again.Settings["cooldown"])
	assert.Equal(t, []any{"p"}, again.Settings["aliases"])
	assert.Equal(t, map[string]any{"ping": "pong"}, again.LocalizedStrings["topics"])

	commands.Each(func(_ string, frame *CommandFrame) {
		frame.Settings["cooldown"] = "changed"
	})
	again, _ = commands.Get("ping")
	assert.Equal(t, float64(5), again.Settings["cooldown"])

	mid, _ := middlewares.Get("auth")
	mid.Settings["allow"] = []any{"mallory"}
	middlewares.Each(func(_ string, frame *MiddlewareFrame) {
		frame.Settings["extra"] = true
	})

	mid, _ = middlewares.Get("auth")
	assert.Equal(t, map[string]any{"allow": []any{"alice"}}, mid.Settings)
}

func TestRegistryBuilder_FreezeDetachesFrames(t *testing.T) {
	b := newRegistryBuilder()
	frame := &CommandFrame{Name: "ping", Settings: map[string]any{"cooldown": float64(5)}}
	b.putCommand("ping", frame)
	commands, _ := b.freeze()

	frame.Settings["cooldown"] = float64(0)

	got, _ := commands.Get("ping")
	assert.Equal(t, float64(5), got.Settings["cooldown"])
}
