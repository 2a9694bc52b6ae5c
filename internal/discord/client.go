// Package discord adapts a discordgo session to the bot.Client capability.
package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"

	"botloft/internal/bot"
	"botloft/internal/listener"
)

// Client fans gateway events out to named-channel subscribers and hands
// inbound messages to the OnMessage hook for command dispatch.
type Client struct {
	dg        *discordgo.Session
	mu        sync.RWMutex
	subs      map[string][]bot.EventHandler
	onMessage func(*listener.Message)
}

func New() *Client {
	return &Client{subs: make(map[string][]bot.EventHandler)}
}

// OnMessage sets the hook invoked for every inbound message not authored by
// the bot itself. Set it before Auth.
func (c *Client) OnMessage(fn func(*listener.Message)) {
	c.onMessage = fn
}

// Auth creates and opens the Discord session.
func (c *Client) Auth(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	c.dg = dg
	c.configureIntents()

	dg.AddHandler(c.onReady)
	dg.AddHandler(c.onMessageCreate)
	dg.AddHandler(c.onGuildCreate)
	dg.AddHandler(c.onMessageReactionAdd)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	return nil
}

func (c *Client) configureIntents() {
	c.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentMessageContent
}

func (c *Client) Subscribe(event string, fn bot.EventHandler) {
	c.mu.Lock()
	c.subs[event] = append(c.subs[event], fn)
	c.mu.Unlock()
}

func (c *Client) Send(channelID, content string) error {
	if c.dg == nil {
		return errors.New("session not open")
	}
	_, err := c.dg.ChannelMessageSend(channelID, content)
	return err
}

func (c *Client) Close() error {
	if c.dg == nil {
		return nil
	}
	return c.dg.Close()
}

func (c *Client) emit(event string, payload map[string]any) {
	c.mu.RLock()
	fns := append([]bot.EventHandler(nil), c.subs[event]...)
	c.mu.RUnlock()
	for _, fn := range fns {
		fn(payload)
	}
}

func (c *Client) onReady(s *discordgo.Session, r *discordgo.Ready) {
	c.emit("ready", map[string]any{
		"username": r.User.Username,
		"guilds":   len(r.Guilds),
	})
}

func (c *Client) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	msg := &listener.Message{
		Content:    m.Content,
		ChannelID:  m.ChannelID,
		GuildID:    m.GuildID,
		AuthorID:   m.Author.ID,
		AuthorName: m.Author.Username,
	}
	if c.onMessage != nil {
		c.onMessage(msg)
	}

	c.emit("messageCreate", map[string]any{
		"content":    msg.Content,
		"channelId":  msg.ChannelID,
		"guildId":    msg.GuildID,
		"authorId":   msg.AuthorID,
		"authorName": msg.AuthorName,
	})
}

func (c *Client) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	c.emit("guildCreate", map[string]any{
		"id":   g.Guild.ID,
		"name": g.Guild.Name,
	})
}

func (c *Client) onMessageReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	c.emit("messageReactionAdd", map[string]any{
		"channelId": r.ChannelID,
		"guildId":   r.GuildID,
		"userId":    r.UserID,
		"messageId": r.MessageID,
		"emoji":     r.Emoji.Name,
	})
}
