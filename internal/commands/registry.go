package commands

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry holds registered commands.
type Registry struct {
	mu   sync.RWMutex
	cmds map[string]Command // name and aliases map to command
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		cmds: make(map[string]Command),
	}
}

// Register adds a command to the registry.
// Returns an error if the name or any alias is already registered.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{c.Name()}, c.Aliases()...)
	for _, name := range names {
		if _, exists := r.cmds[name]; exists {
			return fmt.Errorf("command already registered: %s", name)
		}
	}
	for _, name := range names {
		r.cmds[name] = c
	}
	return nil
}

// Find looks up a command by exact name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// Lookup finds a command by name, alias or unambiguous prefix of a primary
// name ("sta" for "stats").
func (r *Registry) Lookup(name string) (Command, error) {
	if cmd, ok := r.Find(name); ok {
		return cmd, nil
	}
	if name == "" {
		return nil, fmt.Errorf("unknown command: %s", name)
	}

	var matches []Command
	for _, cmd := range r.All() {
		if strings.HasPrefix(cmd.Name(), name) {
			matches = append(matches, cmd)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("unknown command: %s", name)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, cmd := range matches {
			names[i] = cmd.Name()
		}
		return nil, fmt.Errorf("ambiguous command: %s (%s)", name, strings.Join(names, ", "))
	}
}

// All returns all unique commands sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]Command)
	for _, cmd := range r.cmds {
		seen[cmd.Name()] = cmd
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]Command, len(names))
	for i, name := range names {
		result[i] = seen[name]
	}
	return result
}

// DefaultRegistry is the global command registry.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
