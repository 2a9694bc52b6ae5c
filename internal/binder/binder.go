// Package binder subscribes registered event listeners to the client.
package binder

import (
	"botloft/internal/bot"
	"botloft/internal/listener"
	"botloft/internal/registry"
)

// Bind attaches every event descriptor in reg to the client's channel of the
// same name. The listener context is passed explicitly; duplicate listeners
// on one event all fire, no de-duplication.
func Bind(client bot.Client, reg *registry.Registry, ctx *listener.Context) {
	for name, fns := range reg.Events() {
		for _, fn := range fns {
			fn := fn
			client.Subscribe(name, func(payload map[string]any) {
				fn(ctx, payload)
			})
		}
	}
}
