package core

import (
	"errors"
	"fmt"
	"time"

	"botloft/internal/listener"
	"botloft/internal/middleware"
	"botloft/internal/registry"
	"botloft/internal/version"
)

var started = time.Now()

type UptimeCommand struct{}

func (c *UptimeCommand) Name() string        { return "uptime" }
func (c *UptimeCommand) Description() string { return "Show how long the bot has been running" }
func (c *UptimeCommand) Aliases() []string   { return nil }

func (c *UptimeCommand) Run(ctx *listener.Context, inv *listener.Invocation) error {
	if ctx.Client == nil || inv.Message == nil {
		return errors.New("no client to reply with")
	}
	up := time.Since(started).Round(time.Second)
	return ctx.Client.Send(inv.Message.ChannelID,
		fmt.Sprintf("%s %s, up %s", version.AppName, version.Version, up))
}

func init() {
	registry.RegisterCommand(middleware.Apply(
		&UptimeCommand{},
		middleware.WithUsageLog(),
		middleware.WithCooldown(2*time.Second, 3),
	))
}
