// internal/writers/session.go
package writers

import (
	"context"
	"path/filepath"

	"sqmcombine/internal/project"
	"sqmcombine/internal/tables"

	"github.com/viant/afs"
)

// WriteSession emits every combined table accumulated in s under dir,
// each file named {prefix}.{category}.tsv. Standard categories use the
// global sample registry as column order; custom methods use the
// registry restricted to the samples that carry them.
func WriteSession(ctx context.Context, fs afs.Service, s *tables.Session, dir, prefix string) error {
	out := func(category string) string {
		return filepath.Join(dir, prefix+"."+category+".tsv")
	}

	for _, rank := range project.Ranks {
		for _, filter := range project.Filters {
			key := tables.TaxaKey(rank, filter)
			if err := UploadTable(ctx, fs, out(key+"."+project.MetricAbund), s.Samples, s.Taxa[key]); err != nil {
				return err
			}
		}
	}

	funMethods := []struct {
		method string
		has    bool
	}{
		{tables.MethodKO, s.HasKEGG},
		{tables.MethodCOG, s.HasCOG},
		{tables.MethodPFAM, !s.ReadsMode && s.HasPFAM},
	}
	for _, fm := range funMethods {
		if !fm.has {
			continue
		}
		for _, metric := range s.FunMetrics() {
			if err := UploadTable(ctx, fs, out(fm.method+"."+metric), s.Samples, s.Fun[fm.method][metric]); err != nil {
				return err
			}
		}
	}

	for _, method := range s.CustomMethods() {
		for _, metric := range sortedMetricOrder(s.Custom[method]) {
			t := s.Custom[method][metric]
			if err := UploadTable(ctx, fs, out(method+"."+metric), s.FilterSamples(t), t); err != nil {
				return err
			}
		}
	}

	for _, method := range s.NameMethods() {
		info := s.Names[method]
		if info == nil {
			continue
		}
		if err := UploadNames(ctx, fs, out(method+".names"), info); err != nil {
			return err
		}
	}
	return nil
}

func sortedMetricOrder(m map[string]tables.Table) []string {
	order := []string{project.MetricAbund, project.MetricCopyNumber, project.MetricTPM}
	var out []string
	for _, metric := range order {
		if _, ok := m[metric]; ok {
			out = append(out, metric)
		}
	}
	return out
}
