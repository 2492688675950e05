package cmdregistry

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/pflag"

	"github.com/dpranke-dev/pyjson5/cli/run/internal/config"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/runner"
)

// Context carries the pre-parsed data and handles that command handlers
// need. It is built once by the dispatcher; handlers treat it as
// read-only.
type Context struct {
	Exec runner.Opts
	// Flags is the command's own flag set, already parsed.
	Flags *pflag.FlagSet
	// Args are the positional arguments left after flag parsing.
	Args   []string
	Cfg    config.Config
	Root   string
	Stdout io.Writer
	Stderr io.Writer
}

// Handler executes a command given the shared context.
type Handler func(*Context) error

// Spec describes one subcommand: its name, help text, argument schema,
// and handler. The flag set is built fresh per dispatch so specs stay
// immutable.
type Spec struct {
	Name        string
	Description string
	// Flags returns the command's argument schema; nil means the command
	// takes no flags of its own.
	Flags func() *pflag.FlagSet
	Run   Handler
}

// NewFlags returns a freshly built flag set for the command, or an empty
// one when the command declares no flags.
func (s *Spec) NewFlags() *pflag.FlagSet {
	if s.Flags == nil {
		return pflag.NewFlagSet(s.Name, pflag.ContinueOnError)
	}
	return s.Flags()
}

// Usage renders the command's usage text. Both `<cmd> --help` and
// `help <cmd>` go through here, so the two are always identical.
func (s *Spec) Usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: run [global flags] %s", s.Name)
	fs := s.NewFlags()
	if fs.HasFlags() {
		fmt.Fprint(w, " [flags]")
	}
	fmt.Fprintf(w, "\n\n  %s\n", s.Description)
	if fs.HasFlags() {
		fmt.Fprintf(w, "\nFlags:\n%s", fs.FlagUsages())
	}
}

// Registry maps command names to specs. It is built once at startup and
// immutable afterwards.
type Registry struct {
	commands map[string]*Spec
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{commands: make(map[string]*Spec)}
}

// Register adds a spec. It panics on a duplicate or empty name; that is a
// programming error, not a runtime condition.
func (r *Registry) Register(s *Spec) {
	if s.Name == "" {
		panic("command with empty name")
	}
	if _, exists := r.commands[s.Name]; exists {
		panic(fmt.Sprintf("command %s already registered", s.Name))
	}
	r.commands[s.Name] = s
}

// Lookup returns the spec and whether it exists.
func (r *Registry) Lookup(name string) (*Spec, bool) {
	s, ok := r.commands[name]
	return s, ok
}

// Names returns all registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for n := range r.commands {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
