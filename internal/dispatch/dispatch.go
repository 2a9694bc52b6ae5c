// Package dispatch routes an inbound message to at most one registered
// command listener.
package dispatch

import (
	"fmt"
	"log"
	"strings"

	"botloft/internal/listener"
	"botloft/internal/registry"
)

type Dispatcher struct {
	reg *registry.Registry
}

func New(reg *registry.Registry) *Dispatcher {
	return &Dispatcher{reg: reg}
}

// Dispatch parses msg against prefix and invokes the first matching command
// callback. The prefix check is exact and case-sensitive; the command token
// is lowered before lookup. A callback error or panic is logged and
// swallowed; no match is a silent no-op.
func (d *Dispatcher) Dispatch(ctx *listener.Context, prefix string, msg *listener.Message) {
	if msg == nil || prefix == "" {
		return
	}
	if !strings.HasPrefix(msg.Content, prefix) {
		return
	}

	tokens := strings.Split(msg.Content, " ")
	name := strings.ToLower(strings.TrimPrefix(tokens[0], prefix))
	if name == "" {
		return
	}
	args := tokens[1:]

	fn, ok := d.reg.Match(name)
	if !ok {
		return
	}

	inv := &listener.Invocation{
		Command: name,
		Args:    args,
		Prefix:  prefix,
		Message: msg,
	}
	d.invoke(ctx, fn, inv)
}

func (d *Dispatcher) invoke(ctx *listener.Context, fn listener.CommandFunc, inv *listener.Invocation) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERR] %v", &listener.DispatchError{
				Command: inv.Command,
				Err:     panicError{r},
			})
		}
	}()

	if err := fn(ctx, inv); err != nil {
		log.Printf("[ERR] %v", &listener.DispatchError{Command: inv.Command, Err: err})
	}
}

type panicError struct {
	value any
}

func (p panicError) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}
