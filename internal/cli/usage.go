// internal/cli/usage.go
package cli

import (
	"flag"
	"fmt"

	"sqmcombine/internal/version"
)

// Usage installs the grouped help text on fs.
func Usage(fs *flag.FlagSet, name string) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – combine tabular outputs from multiple SqueezeMeta projects\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		fmt.Fprintf(out, "Usage: %s [flags] PROJECT_PATH...\n", name)

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  PROJECT_PATH...             Base paths of the projects to combine (globs ok)")
		fmt.Fprintln(out, "  -f, --paths-file file       File with one project path per line")
		fmt.Fprintln(out, "      --manifest file         YAML manifest with projects and output settings")

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output-dir dir        Output directory [%s]\n", def("output-dir"))
		fmt.Fprintf(out, "  -p, --output-prefix string  Prefix for output files [%s]\n", def("output-prefix"))
		fmt.Fprintf(out, "      --force-overwrite       Write results even if the output directory exists [%s]\n", def("force-overwrite"))

		fmt.Fprintln(out, "\nTable generation:")
		fmt.Fprintf(out, "      --trusted-functions     Only ORFs with highly trusted KEGG/COG assignments [%s]\n", def("trusted-functions"))
		fmt.Fprintf(out, "      --ignore-unclassified   Ignore unannotated ORFs in TPM calculation [%s]\n", def("ignore-unclassified"))
		fmt.Fprintf(out, "      --sqm-reads             Projects come from the reads-based pipeline [%s]\n", def("sqm-reads"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintln(out, "      --doc                   Print documentation and exit")
		fmt.Fprintln(out, "  -q, --quiet                 Suppress progress notes and warnings")
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}
