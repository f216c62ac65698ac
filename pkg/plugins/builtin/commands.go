package builtin

import (
	"context"
	"sort"
	"strings"

	"github.com/platinummonkey/switchboard/pkg/plugins"
)

// NewPing returns a command that replies with the "pong" string
func NewPing() plugins.Executor {
	return plugins.ExecutorFunc(func(ctx context.Context, inv *plugins.Invocation) error {
		inv.Reply(inv.String("pong", "pong"))
		return nil
	})
}

// NewEcho returns a command that repeats its arguments
func NewEcho() plugins.Executor {
	return plugins.ExecutorFunc(func(ctx context.Context, inv *plugins.Invocation) error {
		if len(inv.Args) == 0 {
			inv.Reply(inv.String("usage", "usage: echo <text>"))
			return nil
		}
		inv.Reply(strings.Join(inv.Args, " "))
		return nil
	})
}

// NewHelp returns a command that prints the localized "topics" it was
// configured with, one per line, in key order
func NewHelp() plugins.Executor {
	return plugins.ExecutorFunc(func(ctx context.Context, inv *plugins.Invocation) error {
		topics, _ := inv.Strings["topics"].(map[string]any)
		if len(topics) == 0 {
			inv.Reply(inv.String("empty", "no help available"))
			return nil
		}

		keys := make([]string, 0, len(topics))
		for k := range topics {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if text, ok := topics[k].(string); ok {
				inv.Reply(k + ": " + text)
			}
		}
		return nil
	})
}
