// internal/cli/options.go
package cli

import (
	"errors"
	"flag"

	"sqmcombine/internal/cliutil"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Project inputs
	ProjectPaths []string // positional, glob-expanded
	PathsFile    string
	ManifestFile string

	// Output
	OutputDir    string
	OutputPrefix string

	// Forwarded to the table generator
	TrustedFunctions   bool
	IgnoreUnclassified bool

	// Modes
	SQMReads       bool
	ForceOverwrite bool

	// Misc
	Doc     bool
	Quiet   bool
	Version bool

	// Explicit records which flags were set on the command line, so
	// manifest values only fill in defaults the user didn't touch.
	Explicit map[string]bool
}

// NewFlagSet returns a clean FlagSet with ContinueOnError; usage is
// installed separately by Usage().
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
// Positional arguments are project paths and may appear before, between
// or after flags.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	opt := Options{Explicit: map[string]bool{}}
	var help bool

	fs.StringVar(&opt.PathsFile, "paths-file", "", "file with one project path per line")
	fs.StringVar(&opt.PathsFile, "f", "", "alias of --paths-file")
	fs.StringVar(&opt.ManifestFile, "manifest", "", "YAML manifest with projects and output settings")

	fs.StringVar(&opt.OutputDir, "output-dir", "combined", "output directory [combined]")
	fs.StringVar(&opt.OutputDir, "o", "combined", "alias of --output-dir")
	fs.StringVar(&opt.OutputPrefix, "output-prefix", "combined", "prefix for output files [combined]")
	fs.StringVar(&opt.OutputPrefix, "p", "combined", "alias of --output-prefix")

	fs.BoolVar(&opt.TrustedFunctions, "trusted-functions", false, "only ORFs with highly trusted KEGG/COG assignments [false]")
	fs.BoolVar(&opt.IgnoreUnclassified, "ignore-unclassified", false, "ignore unannotated ORFs in TPM calculation (no effect with --sqm-reads) [false]")
	fs.BoolVar(&opt.SQMReads, "sqm-reads", false, "projects were generated by the reads-based pipeline [false]")
	fs.BoolVar(&opt.ForceOverwrite, "force-overwrite", false, "write results even if the output directory exists [false]")

	fs.BoolVar(&opt.Doc, "doc", false, "print documentation and exit [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress progress notes and warnings [false]")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	fs.Visit(func(f *flag.Flag) { opt.Explicit[f.Name] = true })
	if opt.Doc || opt.Version {
		return opt, nil
	}

	paths, err := cliutil.ExpandPositionals(posArgs)
	if err != nil {
		return opt, err
	}
	opt.ProjectPaths = paths

	return opt, validate(&opt)
}

// IsExplicit reports whether the flag or any of its aliases was set on
// the command line.
func (o *Options) IsExplicit(names ...string) bool {
	for _, n := range names {
		if o.Explicit[n] {
			return true
		}
	}
	return false
}

func validate(o *Options) error {
	if o.PathsFile != "" && o.ManifestFile != "" {
		return errors.New("--paths-file conflicts with --manifest")
	}
	if o.OutputDir == "" {
		return errors.New("--output-dir must not be empty")
	}
	if o.OutputPrefix == "" {
		return errors.New("--output-prefix must not be empty")
	}
	return nil
}
