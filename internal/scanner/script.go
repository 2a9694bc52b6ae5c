package scanner

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/dop251/goja"

	"botloft/internal/listener"
)

// loadFile evaluates one script and registers the listener it exports.
// A script either assigns module.exports (an object, or a zero-argument
// constructible function that is instantiated) or declares plain globals.
// The resolved object must expose a callable "listener" plus "event" or
// "aliases" depending on kind. A file exporting no "listener" at all is
// ignored silently; a malformed one returns an error for the caller to log.
func (s *Scanner) loadFile(path string, kind Kind) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	vm := goja.New()
	module := vm.NewObject()
	exports := vm.NewObject()
	_ = module.Set("exports", exports)
	_ = vm.Set("module", module)
	_ = vm.Set("exports", exports)

	if _, err := vm.RunScript(path, string(src)); err != nil {
		return err
	}

	obj, err := resolveExport(vm, module)
	if err != nil {
		return err
	}

	lv := obj.Get("listener")
	if lv == nil || goja.IsUndefined(lv) || goja.IsNull(lv) {
		// Not a plugin; leave the file alone.
		return nil
	}
	fn, ok := goja.AssertFunction(lv)
	if !ok {
		return fmt.Errorf("%q field is not callable", "listener")
	}

	p := &scriptPlugin{vm: vm, fn: fn}

	switch kind {
	case KindEvents:
		ev := obj.Get("event")
		if ev == nil || goja.IsUndefined(ev) || goja.IsNull(ev) {
			return errMissingField("event")
		}
		name, ok := ev.Export().(string)
		if !ok || name == "" {
			return fmt.Errorf("%q field must be a non-empty string", "event")
		}
		if err := s.reg.AddEvent(listener.EventDescriptor{Event: name, Listener: p.handleEvent}); err != nil {
			return err
		}
		s.notice(kind, name, path)

	case KindCommands:
		av := obj.Get("aliases")
		if av == nil || goja.IsUndefined(av) || goja.IsNull(av) {
			return errMissingField("aliases")
		}
		aliases, err := exportAliases(av)
		if err != nil {
			return err
		}
		d := listener.CommandDescriptor{
			Info:     listener.CommandInfo{Name: aliases[0], Aliases: aliases},
			Listener: p.runCommand,
		}
		if err := s.reg.AddCommand(d); err != nil {
			return err
		}
		s.notice(kind, aliases[0], path)
	}
	return nil
}

// resolveExport picks the object listener fields are read from: an assigned
// module.exports (instantiated first when it is constructible), falling back
// to the script's globals when nothing was exported.
func resolveExport(vm *goja.Runtime, module *goja.Object) (*goja.Object, error) {
	exp := module.Get("exports")
	if exp != nil && !goja.IsUndefined(exp) && !goja.IsNull(exp) {
		if _, callable := goja.AssertFunction(exp); callable {
			inst, err := vm.New(exp)
			if err != nil {
				return nil, fmt.Errorf("instantiate export: %w", err)
			}
			return inst, nil
		}
		obj := exp.ToObject(vm)
		if len(obj.Keys()) > 0 {
			return obj, nil
		}
	}
	return vm.GlobalObject(), nil
}

// exportAliases accepts a single string or an array of strings, lowered and
// de-duplicated, preserving order.
func exportAliases(v goja.Value) ([]string, error) {
	var raw []string
	switch ex := v.Export().(type) {
	case string:
		raw = []string{ex}
	case []any:
		for _, item := range ex {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%q entries must be strings", "aliases")
			}
			raw = append(raw, s)
		}
	default:
		return nil, fmt.Errorf("%q field must be a string or an array of strings", "aliases")
	}

	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, a := range raw {
		a = strings.ToLower(a)
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%q field is empty", "aliases")
	}
	return out, nil
}

// scriptPlugin wraps a goja callable. A goja runtime is not safe for
// concurrent use, so invocations of the same script are serialized.
type scriptPlugin struct {
	vm *goja.Runtime
	fn goja.Callable
	mu sync.Mutex
}

func (p *scriptPlugin) runCommand(ctx *listener.Context, inv *listener.Invocation) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	args := inv.Args
	if args == nil {
		args = []string{}
	}

	arg := p.vm.NewObject()
	_ = arg.Set("command", inv.Command)
	_ = arg.Set("args", args)
	_ = arg.Set("prefix", inv.Prefix)

	msg := p.vm.NewObject()
	if inv.Message != nil {
		_ = msg.Set("content", inv.Message.Content)
		_ = msg.Set("channelId", inv.Message.ChannelID)
		_ = msg.Set("guildId", inv.Message.GuildID)
		_ = msg.Set("authorId", inv.Message.AuthorID)
		_ = msg.Set("authorName", inv.Message.AuthorName)
	}
	_ = arg.Set("message", msg)
	_ = arg.Set("reply", func(text string) {
		if ctx.Client == nil || inv.Message == nil {
			return
		}
		if err := ctx.Client.Send(inv.Message.ChannelID, text); err != nil {
			log.Printf("[WARN] Script reply failed: %v", err)
		}
	})

	_, err := p.fn(goja.Undefined(), arg)
	return err
}

func (p *scriptPlugin) handleEvent(ctx *listener.Context, payload map[string]any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	botObj := p.vm.NewObject()
	_ = botObj.Set("send", func(channelID, text string) {
		if ctx.Client == nil {
			return
		}
		if err := ctx.Client.Send(channelID, text); err != nil {
			log.Printf("[WARN] Script send failed: %v", err)
		}
	})

	if _, err := p.fn(goja.Undefined(), p.vm.ToValue(payload), botObj); err != nil {
		log.Printf("[WARN] Event script error: %v", err)
	}
}
