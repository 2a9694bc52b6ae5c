package handler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botloft/internal/bot"
	"botloft/internal/listener"
	"botloft/internal/registry"
)

type fakeClient struct {
	mu      sync.Mutex
	sent    []string
	subs    map[string][]bot.EventHandler
	authErr error
	authed  bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{subs: make(map[string][]bot.EventHandler)}
}

func (f *fakeClient) Auth(ctx context.Context, token string) error {
	if f.authErr != nil {
		return f.authErr
	}
	f.authed = true
	return nil
}

func (f *fakeClient) Subscribe(event string, fn bot.EventHandler) {
	f.mu.Lock()
	f.subs[event] = append(f.subs[event], fn)
	f.mu.Unlock()
}

func (f *fakeClient) Send(channelID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, content)
	return nil
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) fire(event string, payload map[string]any) {
	f.mu.Lock()
	fns := append([]bot.EventHandler(nil), f.subs[event]...)
	f.mu.Unlock()
	for _, fn := range fns {
		fn(payload)
	}
}

func writeScript(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
}

func TestRunWithoutFoldersInvokesNoCallbacks(t *testing.T) {
	h := New(Options{Client: newFakeClient(), Registry: registry.New()})

	eventsLoaded, commandsLoaded := false, false
	h.Run(Callbacks{
		OnEventsLoaded:   func(*listener.Context) { eventsLoaded = true },
		OnCommandsLoaded: func(*listener.Context) { commandsLoaded = true },
	})

	assert.False(t, eventsLoaded)
	assert.False(t, commandsLoaded)
}

func TestRunLoadsCommandsAndDispatches(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "ping.js",
		`aliases = ["ping", "p"]; listener = function (inv) { inv.reply("Pong!"); };`)

	client := newFakeClient()
	h := New(Options{
		Client:         client,
		Prefix:         "!",
		CommandsFolder: dir,
		Registry:       registry.New(),
	})

	var loadedCtx *listener.Context
	h.Run(Callbacks{OnCommandsLoaded: func(ctx *listener.Context) { loadedCtx = ctx }})

	require.NotNil(t, loadedCtx)
	require.Len(t, loadedCtx.Handler.Commands(), 1)

	h.HandleMessage("!", &listener.Message{Content: "!ping", ChannelID: "c1"})
	assert.Equal(t, []string{"Pong!"}, client.sent)

	h.HandleMessage("!", &listener.Message{Content: "hello", ChannelID: "c1"})
	assert.Len(t, client.sent, 1, "non-prefixed message must trigger nothing")
}

func TestRunBindsEventListeners(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "ready.js",
		`event = "ready"; listener = function (payload, bot) { bot.send("log", "up"); };`)

	client := newFakeClient()
	h := New(Options{Client: client, EventsFolder: dir, Registry: registry.New()})

	eventsLoaded := false
	h.Run(Callbacks{OnEventsLoaded: func(*listener.Context) { eventsLoaded = true }})
	require.True(t, eventsLoaded)

	client.fire("ready", map[string]any{"username": "domme"})
	assert.Equal(t, []string{"up"}, client.sent)
}

func TestRunScanFailureSkipsCallback(t *testing.T) {
	dir := t.TempDir()
	notADir := filepath.Join(dir, "plain.js")
	require.NoError(t, os.WriteFile(notADir, []byte("aliases='x'; listener=function(){};"), 0o644))

	h := New(Options{Client: newFakeClient(), CommandsFolder: notADir, Registry: registry.New()})

	commandsLoaded := false
	h.Run(Callbacks{OnCommandsLoaded: func(*listener.Context) { commandsLoaded = true }})

	assert.False(t, commandsLoaded)
	assert.Empty(t, h.Commands())
}

func TestHandleMessageBeforeRunIsDropped(t *testing.T) {
	reg := registry.New()
	calls := 0
	require.NoError(t, reg.AddCommand(listener.CommandDescriptor{
		Info: listener.CommandInfo{Name: "ping", Aliases: []string{"ping"}},
		Listener: func(ctx *listener.Context, inv *listener.Invocation) error {
			calls++
			return nil
		},
	}))

	h := New(Options{Client: newFakeClient(), Prefix: "!", Registry: reg})

	h.HandleMessage("!", &listener.Message{Content: "!ping"})
	assert.Zero(t, calls, "dispatch must not read an unfrozen registry")

	h.Run(Callbacks{})
	h.HandleMessage("!", &listener.Message{Content: "!ping"})
	assert.Equal(t, 1, calls)
}

func TestLoginReturnsAuthError(t *testing.T) {
	cause := errors.New("401: invalid token")
	client := newFakeClient()
	client.authErr = cause

	h := New(Options{Client: client, Token: "bad-token", Registry: registry.New()})
	err := h.Login(context.Background())

	var authErr *listener.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.ErrorIs(t, err, cause)
	assert.False(t, client.authed)
}

func TestLoginWithoutToken(t *testing.T) {
	h := New(Options{Client: newFakeClient(), Registry: registry.New()})

	var authErr *listener.AuthError
	assert.ErrorAs(t, h.Login(context.Background()), &authErr)
}

func TestLoginSuccess(t *testing.T) {
	client := newFakeClient()
	h := New(Options{Client: client, Token: "token", Registry: registry.New()})

	require.NoError(t, h.Login(context.Background()))
	assert.True(t, client.authed)
}
