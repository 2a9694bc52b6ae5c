package core

import (
	"errors"

	"botloft/internal/listener"
	"botloft/internal/middleware"
	"botloft/internal/registry"
)

type PingCommand struct{}

func (c *PingCommand) Name() string        { return "ping" }
func (c *PingCommand) Description() string { return "Check that the bot is alive" }
func (c *PingCommand) Aliases() []string   { return []string{"p"} }

func (c *PingCommand) Run(ctx *listener.Context, inv *listener.Invocation) error {
	if ctx.Client == nil || inv.Message == nil {
		return errors.New("no client to reply with")
	}
	return ctx.Client.Send(inv.Message.ChannelID, "Pong!")
}

func init() {
	registry.RegisterCommand(middleware.Apply(
		&PingCommand{},
		middleware.WithUsageLog(),
	))
}
