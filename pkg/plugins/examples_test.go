package plugins_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/switchboard/pkg/plugins"
	_ "github.com/platinummonkey/switchboard/pkg/plugins/builtin"
)

func TestLoader_SampleTree(t *testing.T) {
	log, _ := test.NewNullLogger()

	loader := plugins.NewLoader("../../examples/commands", log)
	regs, err := loader.Initialize()
	require.NoError(t, err)

	assert.Equal(t, []string{"echo", "help", "ping"}, regs.Commands.Names())
	assert.Equal(t, []string{"audit", "auth"}, regs.Middlewares.Names())
	assert.False(t, regs.Commands.Has("notes"))

	ping, ok := regs.Commands.Get("ping")
	require.True(t, ok)
	assert.Equal(t, float64(5), ping.Settings["cooldown_seconds"])

	exec, err := ping.New()
	require.NoError(t, err)

	inv := &plugins.Invocation{Command: "ping", Strings: ping.LocalizedStrings}
	require.NoError(t, exec.Execute(context.Background(), inv))
	assert.Equal(t, []string{"pong!"}, inv.Responses)
}

func TestLoader_SampleTreePipeline(t *testing.T) {
	log, _ := test.NewNullLogger()

	regs, err := plugins.NewLoader("../../examples/commands", log).Initialize()
	require.NoError(t, err)

	help, ok := regs.Commands.Get("help")
	require.True(t, ok)

	inv := &plugins.Invocation{
		Command:  "help",
		Sender:   "alice",
		Settings: help.Settings,
		Strings:  help.LocalizedStrings,
	}

	ctx := context.Background()
	regs.Middlewares.Each(func(name string, frame *plugins.MiddlewareFrame) {
		exec, err := frame.New()
		require.NoError(t, err, name)

		inv.Settings = frame.Settings
		require.NoError(t, exec.Execute(ctx, inv), name)
	})

	exec, err := help.New()
	require.NoError(t, err)
	require.NoError(t, exec.Execute(ctx, inv))

	assert.Equal(t, "alice ran help", inv.Metadata["audit"])
	assert.Equal(t, []string{
		"echo: repeat what you said",
		"ping: check the bot is alive",
	}, inv.Responses)
}
