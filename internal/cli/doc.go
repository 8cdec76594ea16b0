// internal/cli/doc.go
package cli

// Doc is the embedded documentation printed by --doc.
const Doc = `Combine tabular outputs (as generated by sqm2tables.py or
sqmreads2tables.py) from different SqueezeMeta or SQM-reads projects.

sqm-combine merges the per-sample tables of N projects into one combined
table per annotation category: rows are features (taxa or functional
IDs), columns are the union of all samples across all projects in
first-encounter order, and absent feature/sample cells are zero-filled.
It can combine samples run in sequential mode as well as separate
coassembly or merged runs.

For each project, sqm-combine expects a results/tables directory laid
out by the upstream table generators. If it is missing, the matching
generator (sqm2tables.py, or sqmreads2tables.py with --sqm-reads) is
invoked to create it first.

USAGE:
  sqm-combine [flags] PROJECT_PATH...

OPTIONS:
  -f/--paths-file     File containing the base paths of the projects to
                      combine (one per line)
  --manifest          YAML manifest with a "projects:" list and optional
                      output-dir / output-prefix settings
  -o/--output-dir     Name of the output directory (default: "combined")
  -p/--output-prefix  Prefix for the output files (default: "combined")
  --trusted-functions Include only ORFs with highly trusted KEGG and COG
                      assignments in aggregated functional tables
  --ignore-unclassified
                      Ignore ORFs without assigned functions in TPM
                      calculation. Ignored if --sqm-reads is provided
  --sqm-reads         Projects were generated using the reads-based
                      pipeline
  --force-overwrite   Write results even if the output directory already
                      exists
  --doc               Show this documentation

EXAMPLES:
  # Combine projects /path/to/proj1 and /path/to/proj2,
  #  store results in "output_dir"
  sqm-combine /path/to/proj1 /path/to/proj2 -o output_dir

  # Combine a list of projects contained in a file, use default output dir.
  sqm-combine -f project_list.txt`
