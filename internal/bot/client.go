package bot

import "context"

// EventHandler receives the payload of a single client event.
type EventHandler func(payload map[string]any)

// Client is the capability handle the rest of the bot talks through.
// Connection, authentication transport and raw event delivery live behind it;
// adapters (Discord, test fakes) implement it.
type Client interface {
	// Auth authenticates and connects the client with the given token.
	Auth(ctx context.Context, token string) error
	// Subscribe attaches fn to the named event channel. Multiple handlers
	// for the same event are all retained and all fire.
	Subscribe(event string, fn EventHandler)
	// Send posts a plain text message to a channel.
	Send(channelID, content string) error
	Close() error
}
