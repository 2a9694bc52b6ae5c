// Package registry holds the loaded listener descriptors: an event-name to
// callback multimap and an ordered list of command entries. The registry is
// populated during the load phase and frozen before dispatch begins, so
// dispatch only ever reads a finalized state.
package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"botloft/internal/listener"
)

// ErrFrozen is returned when registering against a finalized registry.
var ErrFrozen = errors.New("listener registry is frozen")

type commandEntry struct {
	info listener.CommandInfo
	fn   listener.CommandFunc
}

type Registry struct {
	mu       sync.RWMutex
	events   map[string][]listener.EventFunc
	commands []commandEntry
	frozen   bool
}

// Default is the global registry native plugins register into from init().
var Default = New()

func New() *Registry {
	return &Registry{events: make(map[string][]listener.EventFunc)}
}

// AddEvent appends an event descriptor. Multiple listeners per event are
// legal and all fire.
func (r *Registry) AddEvent(d listener.EventDescriptor) error {
	if d.Event == "" {
		return errors.New("event descriptor has no event name")
	}
	if d.Listener == nil {
		return errors.New("event descriptor has no listener")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrFrozen
	}
	r.events[d.Event] = append(r.events[d.Event], d.Listener)
	return nil
}

// AddCommand appends a command descriptor. The alias set is lowered and kept
// as given; overlapping aliases across entries are not rejected, the earlier
// registration simply wins lookup.
func (r *Registry) AddCommand(d listener.CommandDescriptor) error {
	if len(d.Info.Aliases) == 0 {
		return errors.New("command descriptor has no aliases")
	}
	if d.Listener == nil {
		return errors.New("command descriptor has no listener")
	}

	aliases := make([]string, len(d.Info.Aliases))
	for i, a := range d.Info.Aliases {
		aliases[i] = strings.ToLower(a)
	}
	d.Info.Aliases = aliases

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrFrozen
	}
	r.commands = append(r.commands, commandEntry{info: d.Info, fn: d.Listener})
	return nil
}

// Match returns the callback of the first entry, in registration order,
// whose alias set contains name. name must already be lowercase.
func (r *Registry) Match(name string) (listener.CommandFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.commands {
		for _, a := range e.info.Aliases {
			if a == name {
				return e.fn, true
			}
		}
	}
	return nil, false
}

// Events returns a copy of the event multimap for binding.
func (r *Registry) Events() map[string][]listener.EventFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]listener.EventFunc, len(r.events))
	for name, fns := range r.events {
		out[name] = append([]listener.EventFunc(nil), fns...)
	}
	return out
}

// Commands returns the registered command infos in registration order.
func (r *Registry) Commands() []listener.CommandInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]listener.CommandInfo, len(r.commands))
	for i, e := range r.commands {
		out[i] = e.info
	}
	return out
}

// Size reports the number of bound event callbacks and command entries.
func (r *Registry) Size() (events, commands int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, fns := range r.events {
		events += len(fns)
	}
	return events, len(r.commands)
}

// Freeze finalizes the registry. Further registration fails with ErrFrozen.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// RegisterCommand adds a native command plugin to the Default registry.
// Called from plugin init(); a bad plugin is a programming error, so it panics.
func RegisterCommand(c listener.Command) {
	aliases := append([]string{c.Name()}, c.Aliases()...)
	err := Default.AddCommand(listener.CommandDescriptor{
		Info: listener.CommandInfo{
			Name:        c.Name(),
			Description: c.Description(),
			Aliases:     aliases,
		},
		Listener: c.Run,
	})
	if err != nil {
		panic(fmt.Sprintf("register command %s: %v", c.Name(), err))
	}
}

// RegisterEvent adds a native event plugin to the Default registry.
func RegisterEvent(e listener.Event) {
	err := Default.AddEvent(listener.EventDescriptor{
		Event:    e.Event(),
		Listener: e.Handle,
	})
	if err != nil {
		panic(fmt.Sprintf("register event %s: %v", e.Event(), err))
	}
}
