// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"sqmcombine/internal/cli"
	"sqmcombine/internal/cmdutil"
	"sqmcombine/internal/manifest"
	"sqmcombine/internal/project"
	"sqmcombine/internal/tablegen"
	"sqmcombine/internal/tables"
	"sqmcombine/internal/version"
	"sqmcombine/internal/writers"

	"github.com/viant/afs"
)

// Exit codes: 0 ok, 1 run failure, 2 usage/configuration error,
// 3 output flush failure.

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("sqm-combine")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		return usageExit(fs, outw, stderr, 0)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return usageExit(fs, outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return usageExit(fs, outw, stderr, 2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "sqm-combine version %s\n", version.Version)
		return flushExit(outw, stderr, 0)
	}
	if opts.Doc {
		_, _ = fmt.Fprintln(outw, cli.Doc)
		return flushExit(outw, stderr, 0)
	}

	svc := afs.New()

	paths, outDir, prefix, code := resolveInputs(parent, svc, &opts, stderr)
	if code != 0 {
		return code
	}

	if err := prepareOutputDir(parent, svc, outDir, opts.ForceOverwrite); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	logf := func(format string, a ...any) {
		cmdutil.Notef(stderr, opts.Quiet, format, a...)
	}
	session := tables.NewSession(svc, opts.SQMReads, logf)
	genOpts := tablegen.Options{
		ReadsMode:          opts.SQMReads,
		TrustedFunctions:   opts.TrustedFunctions,
		IgnoreUnclassified: opts.IgnoreUnclassified,
	}
	runner := tablegen.ExecRunner{Stdout: stderr, Stderr: stderr}

	for _, path := range paths {
		p := project.New(path)
		if err := p.Validate(parent, svc, opts.SQMReads); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 1
		}
		if err := tablegen.Ensure(parent, svc, runner, p, genOpts, logf); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 1
		}
		if err := session.AddProject(parent, p); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 1
		}
	}

	if err := writers.WriteSession(parent, svc, session, outDir, prefix); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// resolveInputs decides the project list and output settings from the
// positionals, --paths-file, or --manifest. Manifest output settings
// only apply where the matching flag wasn't set explicitly.
func resolveInputs(ctx context.Context, svc afs.Service, opts *cli.Options, stderr io.Writer) (paths []string, outDir, prefix string, code int) {
	outDir, prefix = opts.OutputDir, opts.OutputPrefix

	switch {
	case opts.ManifestFile != "":
		m, err := manifest.Load(ctx, svc, opts.ManifestFile)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return nil, "", "", 2
		}
		if len(opts.ProjectPaths) > 0 {
			cmdutil.Warnf(stderr, opts.Quiet, "project paths were provided both as arguments and in a manifest; using the manifest %q", opts.ManifestFile)
		}
		paths = m.Projects
		if m.OutputDir != "" && !opts.IsExplicit("output-dir", "o") {
			outDir = m.OutputDir
		}
		if m.OutputPrefix != "" && !opts.IsExplicit("output-prefix", "p") {
			prefix = m.OutputPrefix
		}
	case opts.PathsFile != "":
		var err error
		paths, err = manifest.ReadPathsFile(ctx, svc, opts.PathsFile)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return nil, "", "", 2
		}
		if len(opts.ProjectPaths) > 0 {
			cmdutil.Warnf(stderr, opts.Quiet, "project paths were provided both as arguments and in a file; using the paths in %q", opts.PathsFile)
		}
	default:
		paths = opts.ProjectPaths
	}

	if len(paths) == 0 {
		_, _ = fmt.Fprintln(stderr, "project paths were not provided")
		return nil, "", "", 2
	}
	return paths, outDir, prefix, 0
}

func prepareOutputDir(ctx context.Context, svc afs.Service, dir string, force bool) error {
	ok, err := svc.Exists(ctx, dir)
	if err != nil {
		return fmt.Errorf("check output dir: %w", err)
	}
	if ok {
		if !force {
			return fmt.Errorf("the directory %q already exists; remove it, use a different output name, or pass --force-overwrite", dir)
		}
		return nil
	}
	if err := svc.Create(ctx, dir, os.FileMode(0o755), true); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

func usageExit(fs *flag.FlagSet, outw *bufio.Writer, stderr io.Writer, code int) int {
	cli.Usage(fs, "sqm-combine")
	fs.SetOutput(outw)
	fs.Usage()
	if c := flushExit(outw, stderr, code); c != code {
		return c
	}
	return code
}

func flushExit(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); cmdutil.IsBrokenPipe(err) {
		return code
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return code
}
