package events

import (
	"log"

	"botloft/internal/listener"
	"botloft/internal/registry"
	"botloft/internal/version"
)

type ReadyEvent struct{}

func (e *ReadyEvent) Event() string { return "ready" }

func (e *ReadyEvent) Handle(ctx *listener.Context, payload map[string]any) {
	username, _ := payload["username"].(string)
	log.Printf("[INFO] ✅ %s is running as %s", version.AppName, username)
}

type GuildJoinEvent struct{}

func (e *GuildJoinEvent) Event() string { return "guildCreate" }

func (e *GuildJoinEvent) Handle(ctx *listener.Context, payload map[string]any) {
	name, _ := payload["name"].(string)
	id, _ := payload["id"].(string)
	log.Printf("[INFO] Bot added to guild: %s (%s)", id, name)
}

func init() {
	registry.RegisterEvent(&ReadyEvent{})
	registry.RegisterEvent(&GuildJoinEvent{})
}
