// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "botloft/internal/plugins/core"
	_ "botloft/internal/plugins/events"

	"botloft/internal/config"
	"botloft/internal/discord"
	"botloft/internal/handler"
	"botloft/internal/listener"
	"botloft/internal/storage"
	v "botloft/internal/version"
)

func main() {
	log.Printf("[INFO] Starting %v %v...", v.AppName, v.Version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DiscordToken == "" {
		log.Fatal("DISCORD_TOKEN is not set")
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	client := discord.New()
	h := handler.New(handler.Options{
		Client:         client,
		Token:          cfg.DiscordToken,
		Prefix:         cfg.CommandPrefix,
		Verbose:        cfg.Verbose,
		EventsFolder:   cfg.EventsFolder,
		CommandsFolder: cfg.CommandsFolder,
		Store:          store,
	})
	client.OnMessage(func(m *listener.Message) {
		h.HandleMessage(cfg.CommandPrefix, m)
	})

	h.Run(handler.Callbacks{
		OnEventsLoaded: func(*listener.Context) {
			log.Println("[INFO] Event listeners loaded")
		},
		OnCommandsLoaded: func(ctx *listener.Context) {
			log.Printf("[INFO] Command listeners loaded (%d registered)", len(ctx.Handler.Commands()))
		},
	})

	if err := h.Login(ctx); err != nil {
		log.Fatalf("[ERR] %v", err)
	}
	defer client.Close()

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
}
