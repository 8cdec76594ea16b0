package tablegen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sqmcombine/internal/project"

	"github.com/viant/afs"
)

type stubRunner struct {
	calls [][]string
	err   error
}

func (r *stubRunner) Run(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, append([]string{name}, args...))
	return r.err
}

func discardf(string, ...any) {}

func TestArgsStandardMode(t *testing.T) {
	p := project.New("/data/proj1")
	name, args := Args(p, Options{TrustedFunctions: true, IgnoreUnclassified: true})
	if name != DefaultCommand {
		t.Fatalf("command = %q", name)
	}
	want := []string{"/data/proj1", p.TableDir(), "--ignore_unclassified", "--trusted-functions", "--force-overwrite"}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestArgsReadsModeDropsIgnoreUnclassified(t *testing.T) {
	p := project.New("/data/proj1")
	name, args := Args(p, Options{ReadsMode: true, IgnoreUnclassified: true})
	if name != DefaultReadsCommand {
		t.Fatalf("command = %q", name)
	}
	for _, a := range args {
		if a == "--ignore_unclassified" {
			t.Fatal("--ignore_unclassified must not be forwarded in reads mode")
		}
	}
}

func TestEnsureSkipsWhenTablesPresent(t *testing.T) {
	p := project.New(filepath.Join(t.TempDir(), "proj1"))
	if err := os.MkdirAll(p.TableDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p.TablePath("COG.abund"), []byte("\tS1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := &stubRunner{}
	if err := Ensure(context.Background(), afs.New(), r, p, Options{}, discardf); err != nil {
		t.Fatal(err)
	}
	if len(r.calls) != 0 {
		t.Fatalf("generator invoked although tables are present: %v", r.calls)
	}
}

func TestEnsureInvokesGenerator(t *testing.T) {
	p := project.New(filepath.Join(t.TempDir(), "proj1"))
	if err := os.MkdirAll(p.Path, 0o755); err != nil {
		t.Fatal(err)
	}

	r := &stubRunner{}
	if err := Ensure(context.Background(), afs.New(), r, p, Options{}, discardf); err != nil {
		t.Fatal(err)
	}
	if len(r.calls) != 1 || r.calls[0][0] != DefaultCommand {
		t.Fatalf("unexpected calls: %v", r.calls)
	}
}

func TestEnsurePropagatesRunError(t *testing.T) {
	p := project.New(filepath.Join(t.TempDir(), "proj1"))
	if err := os.MkdirAll(p.Path, 0o755); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("exit status 1")
	err := Ensure(context.Background(), afs.New(), &stubRunner{err: boom}, p, Options{}, discardf)
	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("expected RunError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatal("RunError must wrap the subprocess error")
	}
}

func TestEnsureReadsModeCreatesResultsDir(t *testing.T) {
	p := project.New(filepath.Join(t.TempDir(), "proj1"))
	if err := os.MkdirAll(p.Path, 0o755); err != nil {
		t.Fatal(err)
	}

	r := &stubRunner{}
	if err := Ensure(context.Background(), afs.New(), r, p, Options{ReadsMode: true}, discardf); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(p.ResultsDir()); err != nil || !fi.IsDir() {
		t.Fatalf("results dir not created: %v", err)
	}
	if len(r.calls) != 1 || r.calls[0][0] != DefaultReadsCommand {
		t.Fatalf("unexpected calls: %v", r.calls)
	}
}
