// Package handler is the facade composing scanning, registration, binding
// and dispatch: configure it with a client and folders, call Login and Run,
// then feed it inbound messages.
package handler

import (
	"context"
	"errors"
	"log"

	"botloft/internal/binder"
	"botloft/internal/bot"
	"botloft/internal/dispatch"
	"botloft/internal/listener"
	"botloft/internal/registry"
	"botloft/internal/scanner"
	"botloft/internal/storage"
)

type Options struct {
	Client         bot.Client
	Token          string
	Prefix         string
	Verbose        bool
	EventsFolder   string // optional; empty skips the events scan
	CommandsFolder string // optional; empty skips the commands scan
	Registry       *registry.Registry // nil uses registry.Default
	Store          *storage.Storage   // optional
}

// Callbacks fire after the corresponding folder finished loading.
type Callbacks struct {
	OnEventsLoaded   func(ctx *listener.Context)
	OnCommandsLoaded func(ctx *listener.Context)
}

type Handler struct {
	opts Options
	reg  *registry.Registry
	disp *dispatch.Dispatcher
	ctx  *listener.Context
}

func New(opts Options) *Handler {
	reg := opts.Registry
	if reg == nil {
		reg = registry.Default
	}
	h := &Handler{opts: opts, reg: reg, disp: dispatch.New(reg)}
	h.ctx = &listener.Context{Client: opts.Client, Handler: h, Store: opts.Store}
	return h
}

func (h *Handler) Prefix() string { return h.opts.Prefix }

// Commands lists the registered command entries in registration order.
func (h *Handler) Commands() []listener.CommandInfo { return h.reg.Commands() }

// Login authenticates the client with the configured token. Failure comes
// back as an AuthError wrapping the cause.
func (h *Handler) Login(ctx context.Context) error {
	if h.opts.Client == nil {
		return &listener.AuthError{Err: errors.New("no client configured")}
	}
	if h.opts.Token == "" {
		return &listener.AuthError{Err: errors.New("no token configured")}
	}
	if err := h.opts.Client.Auth(ctx, h.opts.Token); err != nil {
		return &listener.AuthError{Err: err}
	}
	return nil
}

// Run scans the configured folders, events first then commands, each fully
// and sequentially. After a folder loads, its callback fires with the
// listener context. Scan errors are logged here and skip that folder's
// callback; they never crash the caller. Once both folders are done the
// registry is frozen and event listeners are bound to the client, so
// dispatch only ever observes a finalized registry.
func (h *Handler) Run(cb Callbacks) {
	sc := scanner.New(h.reg, h.opts.Verbose)

	if h.opts.EventsFolder != "" {
		if err := sc.Scan(h.opts.EventsFolder, scanner.KindEvents); err != nil {
			log.Printf("[ERR] Events scan failed: %v", err)
		} else if cb.OnEventsLoaded != nil {
			cb.OnEventsLoaded(h.ctx)
		}
	}

	if h.opts.CommandsFolder != "" {
		if err := sc.Scan(h.opts.CommandsFolder, scanner.KindCommands); err != nil {
			log.Printf("[ERR] Commands scan failed: %v", err)
		} else if cb.OnCommandsLoaded != nil {
			cb.OnCommandsLoaded(h.ctx)
		}
	}

	h.reg.Freeze()
	if h.opts.Client != nil {
		binder.Bind(h.opts.Client, h.reg, h.ctx)
	}
}

// HandleMessage is the per-message entry point. Messages delivered before
// Run finished are dropped: dispatch never reads a half-built registry.
func (h *Handler) HandleMessage(prefix string, msg *listener.Message) {
	if !h.reg.Frozen() {
		return
	}
	h.disp.Dispatch(h.ctx, prefix, msg)
}
