package cliutil

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestSplitFlagsAndPositionals(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	var q bool
	var out string
	fs.BoolVar(&q, "quiet", false, "")
	fs.StringVar(&out, "output-dir", "", "")

	flagArgs, posArgs := SplitFlagsAndPositionals(fs,
		[]string{"proj1", "--quiet", "-output-dir", "combined", "proj2", "--", "proj3"})
	if len(flagArgs) != 3 {
		t.Fatalf("flagArgs = %v", flagArgs)
	}
	want := []string{"proj1", "proj2", "proj3"}
	if len(posArgs) != len(want) {
		t.Fatalf("posArgs = %v", posArgs)
	}
	for i := range want {
		if posArgs[i] != want[i] {
			t.Fatalf("posArgs[%d] = %q, want %q", i, posArgs[i], want[i])
		}
	}
}

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"proj1", "proj2"} {
		if err := os.MkdirAll(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	got, err := ExpandPositionals([]string{filepath.Join(dir, "proj*")})
	if err != nil || len(got) != 2 {
		t.Fatalf("expand: err=%v got=%v", err, got)
	}
}

func TestExpandPositionalsNoMatch(t *testing.T) {
	if _, err := ExpandPositionals([]string{filepath.Join(t.TempDir(), "nope*")}); err == nil {
		t.Fatal("expected error for unmatched glob")
	}
}
