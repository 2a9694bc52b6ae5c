// Package middleware wraps native commands with cross-cutting behavior.
package middleware

import (
	"botloft/internal/listener"
)

type Middleware func(listener.Command) listener.Command

type wrappedCommand struct {
	listener.Command
	run func(ctx *listener.Context, inv *listener.Invocation) error
}

func (w *wrappedCommand) Run(ctx *listener.Context, inv *listener.Invocation) error {
	if w.run != nil {
		return w.run(ctx, inv)
	}
	return w.Command.Run(ctx, inv)
}

// Wrap returns a command running run instead of c.Run, delegating identity to c.
func Wrap(c listener.Command, run func(ctx *listener.Context, inv *listener.Invocation) error) listener.Command {
	return &wrappedCommand{Command: c, run: run}
}

// Apply chains middlewares around cmd, first listed innermost.
func Apply(cmd listener.Command, mws ...Middleware) listener.Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}
