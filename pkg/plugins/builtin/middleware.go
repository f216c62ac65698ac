package builtin

import (
	"context"
	"errors"
	"fmt"

	"github.com/platinummonkey/switchboard/pkg/plugins"
)

// ErrNotAllowed is returned by the auth middleware for unlisted senders
var ErrNotAllowed = errors.New("sender not allowed")

// NewAuth returns a middleware that rejects senders missing from the
// "allow" setting. An absent or empty list allows everyone.
func NewAuth() plugins.Executor {
	return plugins.ExecutorFunc(func(ctx context.Context, inv *plugins.Invocation) error {
		allow, _ := inv.Settings["allow"].([]any)
		if len(allow) == 0 {
			return nil
		}

		for _, entry := range allow {
			if s, ok := entry.(string); ok && s == inv.Sender {
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrNotAllowed, inv.Sender)
	})
}

// NewAudit returns a middleware that tags the invocation for later auditing
func NewAudit() plugins.Executor {
	return plugins.ExecutorFunc(func(ctx context.Context, inv *plugins.Invocation) error {
		if inv.Metadata == nil {
			inv.Metadata = make(map[string]string)
		}
		label, _ := inv.Settings["label"].(string)
		if label == "" {
			label = "audit"
		}
		inv.Metadata[label] = fmt.Sprintf("%s ran %s", inv.Sender, inv.Command)
		return nil
	})
}
