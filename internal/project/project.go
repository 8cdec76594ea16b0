// internal/project/project.go
package project

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/viant/afs"
)

// Fixed table-naming axes of the upstream pipeline.
var (
	Ranks   = []string{"superkingdom", "phylum", "class", "order", "family", "genus", "species"}
	Filters = []string{"allfilter", "prokfilter", "nofilter"}
)

const (
	MetricAbund      = "abund"
	MetricCopyNumber = "copyNumber"
	MetricTPM        = "tpm"
)

// Project is one SqueezeMeta or SQM-reads output directory. Name is the
// directory basename and prefixes every table file inside it.
type Project struct {
	Path string
	Name string
}

func New(path string) *Project {
	return &Project{Path: path, Name: filepath.Base(filepath.Clean(path))}
}

// ResultsDir is the per-project results root; TableDir holds the
// per-category TSVs.
func (p *Project) ResultsDir() string { return filepath.Join(p.Path, "results") }
func (p *Project) TableDir() string   { return filepath.Join(p.ResultsDir(), "tables") }

// TablePath returns the path of the {project}.{category}.tsv table,
// where category is a dotted name such as "superkingdom.allfilter.abund",
// "KO.abund" or "COG.names".
func (p *Project) TablePath(category string) string {
	return filepath.Join(p.TableDir(), p.Name+"."+category+".tsv")
}

// InvalidProjectError reports a path that is not a recognizable project
// for the active mode. Fatal: a project without its validity marker
// cannot be trusted, so no downstream processing is attempted.
type InvalidProjectError struct {
	Path string
}

func (e *InvalidProjectError) Error() string {
	return fmt.Sprintf("path %q does not exist, or does not contain a valid SQM project", e.Path)
}

// Validate checks the mode's validity marker: SqueezeMeta_conf.pl for
// standard projects, {name}.out.mappingstat for reads-based ones.
func (p *Project) Validate(ctx context.Context, fs afs.Service, readsMode bool) error {
	marker := filepath.Join(p.Path, "SqueezeMeta_conf.pl")
	if readsMode {
		marker = filepath.Join(p.Path, p.Name+".out.mappingstat")
	}
	ok, err := fs.Exists(ctx, marker)
	if err != nil {
		return fmt.Errorf("check project %q: %w", p.Path, err)
	}
	if !ok {
		return &InvalidProjectError{Path: p.Path}
	}
	return nil
}
