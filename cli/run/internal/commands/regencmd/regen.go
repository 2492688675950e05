// Package regencmd implements the parser-regeneration workflow: generate
// a candidate parser from the grammar, compare it against the checked-in
// one, and either report up-to-date, promote the candidate, or (in check
// mode) flag staleness without touching the tree.
package regencmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dpranke-dev/pyjson5/cli/run/internal/cmdregistry"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/execx"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/runner"
)

// Outcome is the result of comparing the candidate against the
// checked-in parser.
type Outcome int

const (
	UpToDate Outcome = iota
	Regenerated
	Stale
)

// Register adds the regen command.
func Register(r *cmdregistry.Registry) {
	r.Register(&cmdregistry.Spec{
		Name:        "regen",
		Description: "regenerate the parser from the grammar",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("regen", pflag.ContinueOnError)
			fs.Bool("check", false, "verify the checked-in parser is current without rewriting it")
			return fs
		},
		Run: func(ctx *cmdregistry.Context) error {
			check, _ := ctx.Flags.GetBool("check")
			return Regen(ctx, check)
		},
	})
}

// Regen runs the full workflow. Comparison is exact byte equality after
// the formatting pass: yapf is deterministic, so any meaningful change
// always produces a textual difference.
func Regen(ctx *cmdregistry.Context, check bool) error {
	compiler := filepath.Join(ctx.Root, ctx.Cfg.Compiler)
	grammar := filepath.Join(ctx.Root, ctx.Cfg.Grammar)
	parser := filepath.Join(ctx.Root, ctx.Cfg.Parser)
	staged := parser + ".new"

	var old []byte
	if !ctx.Exec.DryRun {
		if _, err := os.Stat(compiler); err != nil {
			return &execx.ExitError{
				Code: 2,
				Msg:  fmt.Sprintf("grammar compiler not found at %s; clone glop next to this repository", compiler),
			}
		}
		var err error
		old, err = os.ReadFile(parser)
		if err != nil {
			return err
		}
	}

	if err := runner.Tool(ctx.Exec, compiler, "-o", staged, grammar); err != nil {
		return err
	}
	if !ctx.Exec.DryRun {
		if err := normalizeProvenance(staged, ctx.Root, ctx.Cfg.Compiler, ctx.Cfg.Grammar, ctx.Cfg.Parser); err != nil {
			return err
		}
	}
	if err := runner.Tool(ctx.Exec, "-m", "yapf", "--in-place", staged); err != nil {
		return err
	}
	if ctx.Exec.DryRun {
		// Deliberate preview short-circuit: comparing files is not itself
		// a subprocess, so suggest the comparison instead of doing it.
		fmt.Fprintf(ctx.Stdout, "dry run: would compare %s against %s (diff %s %s)\n",
			staged, parser, parser, staged)
		return nil
	}

	outcome, err := decide(old, parser, staged, check)
	if err != nil {
		return err
	}
	switch outcome {
	case UpToDate:
		fmt.Fprintf(ctx.Stdout, "%s is up to date\n", ctx.Cfg.Parser)
		return nil
	case Regenerated:
		fmt.Fprintf(ctx.Stdout, "regenerated %s\n", ctx.Cfg.Parser)
		return nil
	default:
		return &execx.ExitError{
			Code: 1,
			Msg:  fmt.Sprintf("%s is out of date; run `run regen`", ctx.Cfg.Parser),
		}
	}
}

// decide compares OLD against the staged candidate and settles the
// outcome. In check mode the staged file is removed regardless of the
// result; otherwise a differing candidate is promoted with a single
// rename so an interrupted run never leaves a half-written parser.
func decide(old []byte, parser, staged string, check bool) (Outcome, error) {
	candidate, err := os.ReadFile(staged)
	if err != nil {
		return Stale, err
	}
	same := bytes.Equal(old, candidate)
	if check {
		if err := os.Remove(staged); err != nil {
			return Stale, err
		}
		if same {
			return UpToDate, nil
		}
		return Stale, nil
	}
	if same {
		return UpToDate, nil
	}
	if err := os.Rename(staged, parser); err != nil {
		return Stale, err
	}
	return Regenerated, nil
}

// normalizeProvenance rewrites the compiler's self-referential command
// line inside the generated file so the provenance comment names the
// parser's final installed location rather than the staging path or any
// absolute paths from this machine.
func normalizeProvenance(staged, root, compilerRel, grammarRel, parserRel string) error {
	data, err := os.ReadFile(staged)
	if err != nil {
		return err
	}
	repl := strings.NewReplacer(
		filepath.Join(root, parserRel)+".new", parserRel,
		filepath.Join(root, compilerRel), compilerRel,
		filepath.Join(root, grammarRel), grammarRel,
	)
	out := repl.Replace(string(data))
	return writeFileSameMode(staged, []byte(out))
}

func writeFileSameMode(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode()
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
