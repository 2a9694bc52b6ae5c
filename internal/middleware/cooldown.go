package middleware

import (
	"log"
	"time"

	"golang.org/x/time/rate"

	"botloft/internal/listener"
)

// WithCooldown drops invocations beyond the allowed rate. Dropped calls are
// logged and end silently, same as any other swallowed dispatch outcome.
func WithCooldown(every time.Duration, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Every(every), burst)
	return func(c listener.Command) listener.Command {
		return Wrap(c, func(ctx *listener.Context, inv *listener.Invocation) error {
			if !limiter.Allow() {
				log.Printf("[WARN] Command %s on cooldown, dropped", c.Name())
				return nil
			}
			return c.Run(ctx, inv)
		})
	}
}
