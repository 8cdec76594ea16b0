// internal/tablegen/tablegen.go
package tablegen

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"sqmcombine/internal/project"

	"github.com/viant/afs"
)

// Default generator executables, resolved on PATH. Overridable for
// installations that keep the SqueezeMeta utils elsewhere.
const (
	DefaultCommand      = "sqm2tables.py"
	DefaultReadsCommand = "sqmreads2tables.py"
)

// Runner executes an external command and waits for it to exit.
// It exists so the generation precondition can be stubbed in tests
// without spawning a real process.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner is the production Runner: a blocking subprocess sharing
// the tool's stdout/stderr. No timeout; a hang in the generator hangs
// the run, which is acceptable for an offline batch tool.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

// RunError reports a table-generation subprocess that exited with an
// error, rather than deferring to a confusing downstream file-not-found.
type RunError struct {
	Project string
	Command string
	Err     error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("generating tables for project %q: %s: %v", e.Project, e.Command, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// Options select the generator variant and the flags forwarded to it.
type Options struct {
	ReadsMode          bool
	TrustedFunctions   bool
	IgnoreUnclassified bool // ignored in reads mode
	Command            string
}

func (o Options) command() string {
	if o.Command != "" {
		return o.Command
	}
	if o.ReadsMode {
		return DefaultReadsCommand
	}
	return DefaultCommand
}

// Args returns the generator invocation for p, mirroring the upstream
// table-generation contract.
func Args(p *project.Project, o Options) (string, []string) {
	args := []string{p.Path, p.TableDir()}
	if !o.ReadsMode && o.IgnoreUnclassified {
		args = append(args, "--ignore_unclassified")
	}
	if o.TrustedFunctions {
		args = append(args, "--trusted-functions")
	}
	args = append(args, "--force-overwrite")
	return o.command(), args
}

// Ensure materializes a project's table directory when it is absent,
// invoking the external generator. Presence is probed via the COG
// abundance table, the file the upstream generators always emit.
// The generator's exit status is checked: a failed run aborts with a
// RunError instead of surfacing later as an opaque read failure.
func Ensure(ctx context.Context, fs afs.Service, r Runner, p *project.Project, o Options, logf func(format string, a ...any)) error {
	ok, err := fs.Exists(ctx, p.TablePath("COG.abund"))
	if err != nil {
		return fmt.Errorf("check tables of project %q: %w", p.Name, err)
	}
	if ok {
		logf("The %q directory is already present. Skipping...", p.TableDir())
		return nil
	}
	if o.ReadsMode {
		if resOK, err := fs.Exists(ctx, p.ResultsDir()); err != nil {
			return fmt.Errorf("check results dir of project %q: %w", p.Name, err)
		} else if !resOK {
			if err := fs.Create(ctx, p.ResultsDir(), os.FileMode(0o755), true); err != nil {
				return fmt.Errorf("create results dir of project %q: %w", p.Name, err)
			}
		}
	}
	logf("Creating tables for project %s", p.Name)
	name, args := Args(p, o)
	if err := r.Run(ctx, name, args...); err != nil {
		return &RunError{Project: p.Name, Command: name, Err: err}
	}
	return nil
}
