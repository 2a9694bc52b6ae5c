package middleware

import (
	"log"
	"time"

	"botloft/internal/listener"
	"botloft/internal/storage"
)

// WithUsageLog records each successful invocation to the context's storage.
func WithUsageLog() Middleware {
	return func(c listener.Command) listener.Command {
		return Wrap(c, func(ctx *listener.Context, inv *listener.Invocation) error {
			err := c.Run(ctx, inv)
			if err != nil || ctx.Store == nil || inv.Message == nil {
				return err
			}

			rec := storage.UsageRecord{
				ChannelID: inv.Message.ChannelID,
				UserID:    inv.Message.AuthorID,
				Username:  inv.Message.AuthorName,
				Command:   c.Name(),
				Datetime:  time.Now(),
			}
			if e := ctx.Store.AddUsage(inv.Message.GuildID, rec); e != nil {
				log.Printf("[WARN] Failed to log command %s: %v", c.Name(), e)
			}
			return nil
		})
	}
}
