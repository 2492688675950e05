// Package dispatch parses global flags, resolves the execution context
// once, and routes to exactly one command handler. It is the only place
// errors become process exit codes, so the whole CLI can run in-process
// for tests.
package dispatch

import (
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/dpranke-dev/pyjson5/cli/run/internal/cmdregistry"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/commands/buildcmd"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/commands/checkcmd"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/commands/installcmd"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/commands/presubmitcmd"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/commands/publishcmd"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/commands/regencmd"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/commands/testcmd"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/config"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/execx"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/paths"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/pyenv"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/runner"
)

func newRegistry() *cmdregistry.Registry {
	r := cmdregistry.New()
	buildcmd.Register(r)
	checkcmd.Register(r)
	testcmd.Register(r)
	installcmd.Register(r)
	publishcmd.Register(r)
	regencmd.Register(r)
	presubmitcmd.Register(r)
	return r
}

func globalFlags() (*pflag.FlagSet, *bool, *bool, *bool) {
	gf := pflag.NewFlagSet("run", pflag.ContinueOnError)
	gf.SetInterspersed(false)
	gf.SetOutput(io.Discard)
	gf.Usage = func() {}
	dry := gf.BoolP("no-execute", "n", false, "echo commands without executing them")
	verbose := gf.BoolP("verbose", "v", false, "echo every command before running it")
	quiet := gf.BoolP("quiet", "q", false, "reduce tool output")
	return gf, dry, verbose, quiet
}

// Run dispatches argv and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	reg := newRegistry()
	gf, dry, verbose, quiet := globalFlags()
	if err := gf.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			topUsage(stdout, reg, gf)
			return 0
		}
		fmt.Fprintln(stderr, "run: "+err.Error())
		topUsage(stderr, reg, gf)
		return 2
	}
	rest := gf.Args()
	if len(rest) == 0 {
		topUsage(stderr, reg, gf)
		return 2
	}
	initLogging(stderr, *verbose, *quiet)

	name, cmdArgs := rest[0], rest[1:]
	if name == "help" {
		return help(reg, gf, cmdArgs, stdout, stderr)
	}
	spec, ok := reg.Lookup(name)
	if !ok {
		fmt.Fprintf(stderr, "run: unknown command %q\n", name)
		topUsage(stderr, reg, gf)
		return 2
	}

	fs := spec.NewFlags()
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	if err := fs.Parse(cmdArgs); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			spec.Usage(stdout)
			return 0
		}
		fmt.Fprintf(stderr, "run: %s: %s\n", name, err.Error())
		spec.Usage(stderr)
		return 2
	}

	root, err := paths.FindRoot()
	if err != nil {
		fmt.Fprintln(stderr, "run: "+err.Error())
		return 1
	}
	cfg, err := config.Load(root)
	if err != nil {
		fmt.Fprintln(stderr, "run: "+err.Error())
		return 2
	}
	prefix, err := pyenv.Resolve(*quiet)
	if err != nil {
		return exitCode(err, stderr)
	}
	log.Debugf("project root %s", root)
	log.Debugf("runner prefix %q", strings.Join(prefix, " "))

	ctx := &cmdregistry.Context{
		Exec: runner.Opts{
			DryRun:  *dry,
			Verbose: *verbose,
			Quiet:   *quiet,
			Prefix:  prefix,
			Echo:    stderr,
		},
		Flags:  fs,
		Args:   fs.Args(),
		Cfg:    cfg,
		Root:   root,
		Stdout: stdout,
		Stderr: stderr,
	}
	if err := spec.Run(ctx); err != nil {
		return exitCode(err, stderr)
	}
	return 0
}

// help renders top-level usage, or a specific command's usage. The latter
// goes through the same Spec.Usage renderer as `<cmd> --help`, so the two
// outputs are identical.
func help(reg *cmdregistry.Registry, gf *pflag.FlagSet, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		topUsage(stdout, reg, gf)
		return 0
	}
	spec, ok := reg.Lookup(args[0])
	if !ok {
		fmt.Fprintf(stderr, "run: unknown command %q\n", args[0])
		topUsage(stderr, reg, gf)
		return 2
	}
	spec.Usage(stdout)
	return 0
}

func topUsage(w io.Writer, reg *cmdregistry.Registry, gf *pflag.FlagSet) {
	fmt.Fprintln(w, "run — pyjson5 development workflows")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: run [global flags] <command> [command flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	names := reg.Names()
	width := 0
	for _, n := range names {
		if len(n) > width {
			width = len(n)
		}
	}
	for _, n := range names {
		spec, _ := reg.Lookup(n)
		fmt.Fprintf(w, "  %-*s  %s\n", width, n, spec.Description)
	}
	fmt.Fprintf(w, "  %-*s  %s\n", width, "help", "show this message, or a command's usage")
	fmt.Fprintf(w, "\nGlobal flags:\n%s", gf.FlagUsages())
}

func initLogging(w io.Writer, verbose, quiet bool) {
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	switch {
	case quiet:
		log.SetLevel(log.WarnLevel)
	case verbose:
		log.SetLevel(log.DebugLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// exitCode translates a handler error into the process exit code,
// propagating a child's code unchanged.
func exitCode(err error, stderr io.Writer) int {
	var ee *execx.ExitError
	if errors.As(err, &ee) {
		if ee.Msg != "" {
			fmt.Fprintln(stderr, "run: "+ee.Msg)
		}
		return ee.Code
	}
	fmt.Fprintln(stderr, "run: "+err.Error())
	return 1
}
