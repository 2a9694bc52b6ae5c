// /internal/config/config.go
package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken   string `env:"DISCORD_TOKEN"`
	CommandPrefix  string `env:"COMMAND_PREFIX" envDefault:"!"`
	Verbose        bool   `env:"VERBOSE" envDefault:"false"`
	EventsFolder   string `env:"EVENTS_FOLDER"`
	CommandsFolder string `env:"COMMANDS_FOLDER"`
	StoragePath    string `env:"STORAGE_PATH" envDefault:"datastore.json"`
}

func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
