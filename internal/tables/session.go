// internal/tables/session.go
package tables

import (
	"context"
	"sort"

	"sqmcombine/internal/project"

	"github.com/viant/afs"
)

// Functional methods with fixed table names and a hierarchy column in
// their names tables.
const (
	MethodKO   = "KO"
	MethodCOG  = "COG"
	MethodPFAM = "PFAM"
)

// Hierarchical reports whether a method's names table carries a Path
// column in addition to Name.
func Hierarchical(method string) bool {
	return method == MethodKO || method == MethodCOG
}

// Session owns all accumulation state of one combination run: the
// global sample registry, one sparse Table per (category, metric), the
// custom-method registry, the name registries and the per-method
// presence flags. It is mutated by a strictly sequential project loop;
// the registry append order and duplicate detection depend on it.
type Session struct {
	fs   afs.Service
	logf func(format string, a ...any)

	ReadsMode bool

	// Samples is the authoritative column order for every standard
	// table: sample names in first-encounter order across projects.
	Samples []string

	// Taxa is keyed by "{rank}.{filter}", e.g. "phylum.prokfilter".
	Taxa map[string]Table

	// Fun holds the fixed functional methods, method → metric → table.
	Fun map[string]map[string]Table

	// Custom holds dynamically discovered methods, method → metric →
	// table. A method seen only in later projects simply has no entries
	// for earlier samples.
	Custom map[string]map[string]Table

	Names map[string]*NameInfo

	// Presence flags: cleared permanently the first time a project
	// lacks the method's abundance table. Once cleared the method is
	// excluded from all output, even if other projects had it; mixed
	// presence would make a zero ambiguous between "absent" and
	// "not measured".
	HasKEGG bool
	HasCOG  bool
	HasPFAM bool
}

func NewSession(fs afs.Service, readsMode bool, logf func(format string, a ...any)) *Session {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	s := &Session{
		fs:        fs,
		logf:      logf,
		ReadsMode: readsMode,
		Taxa:      map[string]Table{},
		Fun:       map[string]map[string]Table{},
		Custom:    map[string]map[string]Table{},
		Names:     map[string]*NameInfo{},
		HasKEGG:   true,
		HasCOG:    true,
		HasPFAM:   !readsMode,
	}
	for _, rank := range project.Ranks {
		for _, filter := range project.Filters {
			s.Taxa[TaxaKey(rank, filter)] = Table{}
		}
	}
	for _, method := range []string{MethodKO, MethodCOG, MethodPFAM} {
		s.Fun[method] = map[string]Table{}
		for _, metric := range s.FunMetrics() {
			s.Fun[method][metric] = Table{}
		}
	}
	return s
}

func TaxaKey(rank, filter string) string { return rank + "." + filter }

// FunMetrics returns the metrics accumulated for the fixed functional
// methods: abund always, copyNumber and tpm only in standard mode.
func (s *Session) FunMetrics() []string {
	if s.ReadsMode {
		return []string{project.MetricAbund}
	}
	return []string{project.MetricAbund, project.MetricCopyNumber, project.MetricTPM}
}

// AddProject accumulates every relevant table of one project. The
// project must already be validated and its tables generated.
func (s *Session) AddProject(ctx context.Context, p *project.Project) error {
	if err := s.addTaxa(ctx, p); err != nil {
		return err
	}
	if err := s.addFunctional(ctx, p); err != nil {
		return err
	}
	custom, err := project.DiscoverCustom(ctx, s.fs, p)
	if err != nil {
		return err
	}
	if err := s.addCustom(ctx, p, custom); err != nil {
		return err
	}
	return s.addNames(ctx, p, custom)
}

// addTaxa parses the 21-table taxonomy grid. Only the
// superkingdom/allfilter header extends the global sample registry;
// every other table of the project repeats the same columns.
func (s *Session) addTaxa(ctx context.Context, p *project.Project) error {
	for _, rank := range project.Ranks {
		for _, filter := range project.Filters {
			key := TaxaKey(rank, filter)
			samples, err := MergeFile(ctx, s.fs, p.TablePath(key+"."+project.MetricAbund), s.Taxa[key])
			if err != nil {
				return err
			}
			if key == TaxaKey("superkingdom", "allfilter") {
				s.Samples = append(s.Samples, samples...)
			}
		}
	}
	return nil
}

func (s *Session) addFunctional(ctx context.Context, p *project.Project) error {
	type funSpec struct {
		method string
		has    *bool
		label  string
	}
	specs := []funSpec{
		{MethodKO, &s.HasKEGG, "KEGG"},
		{MethodCOG, &s.HasCOG, "COG"},
	}
	if !s.ReadsMode {
		specs = append(specs, funSpec{MethodPFAM, &s.HasPFAM, "PFAM"})
	}
	for _, fn := range specs {
		ok, err := s.fs.Exists(ctx, p.TablePath(fn.method+"."+project.MetricAbund))
		if err != nil {
			return err
		}
		if !ok {
			s.logf("Project at %s is missing %s annotations, so they will be not included in the combined tables", p.Path, fn.label)
			*fn.has = false
			continue
		}
		for _, metric := range s.FunMetrics() {
			if _, err := MergeFile(ctx, s.fs, p.TablePath(fn.method+"."+metric), s.Fun[fn.method][metric]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) addCustom(ctx context.Context, p *project.Project, custom map[string]map[string]string) error {
	for _, method := range sortedKeys(custom) {
		if s.Custom[method] == nil {
			s.Custom[method] = map[string]Table{}
		}
		for _, metric := range sortedKeys(custom[method]) {
			if s.Custom[method][metric] == nil {
				s.Custom[method][metric] = Table{}
			}
			URL := p.TableDir() + "/" + custom[method][metric]
			if _, err := MergeFile(ctx, s.fs, URL, s.Custom[method][metric]); err != nil {
				return err
			}
		}
	}
	return nil
}

// addNames merges the name/hierarchy tables of the methods this project
// actually carries: KO/COG while their presence flags hold, plus the
// custom methods discovered in this very project. Restricting custom
// methods to the current project keeps a method discovered elsewhere
// from forcing a read of a names table this project never wrote.
func (s *Session) addNames(ctx context.Context, p *project.Project, custom map[string]map[string]string) error {
	var methods []string
	if s.HasKEGG {
		methods = append(methods, MethodKO)
	}
	if s.HasCOG {
		methods = append(methods, MethodCOG)
	}
	methods = append(methods, sortedKeys(custom)...)
	for _, method := range methods {
		info := s.Names[method]
		if info == nil {
			info = NewNameInfo(Hierarchical(method))
			s.Names[method] = info
		}
		if err := MergeNamesFile(ctx, s.fs, p.TablePath(method+".names"), info); err != nil {
			return err
		}
	}
	return nil
}

// NameMethods returns the methods whose combined names tables should be
// emitted: KO/COG while present, plus every discovered custom method.
func (s *Session) NameMethods() []string {
	var methods []string
	if s.HasKEGG {
		methods = append(methods, MethodKO)
	}
	if s.HasCOG {
		methods = append(methods, MethodCOG)
	}
	return append(methods, s.CustomMethods()...)
}

// CustomMethods returns the discovered method names, sorted.
func (s *Session) CustomMethods() []string {
	return sortedKeys(s.Custom)
}

// FilterSamples restricts the global sample registry to samples present
// in t, preserving registry order. Custom-method tables use this as
// their column order since not every project applies every method.
func (s *Session) FilterSamples(t Table) []string {
	var out []string
	for _, sample := range s.Samples {
		if _, ok := t[sample]; ok {
			out = append(out, sample)
		}
	}
	return out
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
