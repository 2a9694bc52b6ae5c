// Package scanner walks listener folders and loads every recognized script
// file as a plugin. Traversal is an iterative work list, depth-first and
// strictly sequential; "skip this entry" and "abandon this directory" are
// two distinct branches: a file that fails to load is logged and skipped,
// and only a failed directory listing abandons that directory.
package scanner

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"botloft/internal/listener"
	"botloft/internal/registry"
)

// Kind classifies a scan: the folder holds event listeners or command
// listeners. The kind applies to the whole subtree.
type Kind int

const (
	KindEvents Kind = iota
	KindCommands
)

func (k Kind) String() string {
	if k == KindEvents {
		return "event"
	}
	return "command"
}

// Recognized script suffixes. Anything else is skipped without a log entry.
var scriptExts = map[string]bool{
	".js":  true,
	".cjs": true,
}

type Scanner struct {
	reg     *registry.Registry
	verbose bool
}

func New(reg *registry.Registry, verbose bool) *Scanner {
	return &Scanner{reg: reg, verbose: verbose}
}

// Scan loads every recognized script under root as a listener of the given
// kind, registering each one as it is found. root must be a directory;
// anything else fails with a ConfigurationError before any loading happens.
func (s *Scanner) Scan(root string, kind Kind) error {
	info, err := os.Stat(root)
	if err != nil {
		return &listener.ConfigurationError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return &listener.ConfigurationError{Path: root}
	}

	dirs := []string{root}
	for len(dirs) > 0 {
		dir := dirs[0]
		dirs = dirs[1:]

		entries, err := os.ReadDir(dir)
		if err != nil {
			// Abandon this directory only; siblings queued earlier still run.
			log.Printf("[WARN] Failed to list %s: %v", dir, err)
			continue
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				dirs = append(dirs, path)
				continue
			}
			if !scriptExts[filepath.Ext(entry.Name())] {
				continue
			}
			if err := s.loadFile(path, kind); err != nil {
				log.Printf("[WARN] %v", &listener.LoadError{Path: path, Err: err})
				continue
			}
		}
	}
	return nil
}

func (s *Scanner) notice(kind Kind, name, path string) {
	if s.verbose {
		log.Printf("[INFO] Registered %s listener %q from %s", kind, name, path)
	}
}

func errMissingField(field string) error {
	return fmt.Errorf("missing required %q field", field)
}
