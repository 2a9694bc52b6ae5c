package core

import (
	"errors"
	"fmt"
	"strings"

	"botloft/internal/listener"
	"botloft/internal/middleware"
	"botloft/internal/registry"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "List available commands" }
func (c *HelpCommand) Aliases() []string   { return []string{"h", "commands"} }

func (c *HelpCommand) Run(ctx *listener.Context, inv *listener.Invocation) error {
	if ctx.Client == nil || inv.Message == nil {
		return errors.New("no client to reply with")
	}
	if ctx.Handler == nil {
		return errors.New("no handler in context")
	}

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, info := range ctx.Handler.Commands() {
		b.WriteString(fmt.Sprintf("`%s%s`", ctx.Handler.Prefix(), info.Name))
		if len(info.Aliases) > 1 {
			b.WriteString(fmt.Sprintf(" (%s)", strings.Join(info.Aliases[1:], ", ")))
		}
		if info.Description != "" {
			b.WriteString(" — " + info.Description)
		}
		b.WriteString("\n")
	}
	return ctx.Client.Send(inv.Message.ChannelID, b.String())
}

func init() {
	registry.RegisterCommand(middleware.Apply(
		&HelpCommand{},
		middleware.WithUsageLog(),
	))
}
