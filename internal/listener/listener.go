// Package listener defines the plugin contracts: what a command or event
// listener looks like, the context it runs with, and the error kinds the
// loader and dispatcher report.
package listener

import (
	"botloft/internal/bot"
	"botloft/internal/storage"
)

// Message is an inbound chat message, consumed read-only.
type Message struct {
	Content    string
	ChannelID  string
	GuildID    string
	AuthorID   string
	AuthorName string
}

// Invocation carries everything a command callback gets about the message
// that triggered it.
type Invocation struct {
	Command string
	Args    []string
	Prefix  string
	Message *Message
}

// Runtime is the slice of the handler facade listeners are allowed to see.
type Runtime interface {
	Prefix() string
	Commands() []CommandInfo
}

// Context is passed explicitly to every invoked listener. No implicit
// binding: callbacks receive it as their first parameter.
type Context struct {
	Client  bot.Client
	Handler Runtime
	Store   *storage.Storage
}

// CommandFunc is a bound command callback.
type CommandFunc func(ctx *Context, inv *Invocation) error

// EventFunc is a bound event callback.
type EventFunc func(ctx *Context, payload map[string]any)

// CommandInfo identifies a registered command entry. Aliases are lowercase
// and kept in registration shape, not flattened into lookup keys.
type CommandInfo struct {
	Name        string
	Description string
	Aliases     []string
}

// CommandDescriptor is the in-memory record produced from a loaded command
// listener, native or script.
type CommandDescriptor struct {
	Info     CommandInfo
	Listener CommandFunc
}

// EventDescriptor is the in-memory record produced from a loaded event
// listener.
type EventDescriptor struct {
	Event    string
	Listener EventFunc
}

// Command is the contract a native command plugin implements.
type Command interface {
	Name() string
	Description() string
	Aliases() []string
	Run(ctx *Context, inv *Invocation) error
}

// Event is the contract a native event plugin implements.
type Event interface {
	Event() string
	Handle(ctx *Context, payload map[string]any)
}
