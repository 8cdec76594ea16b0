// internal/project/discover.go
package project

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
)

// Table names reserved by the standard categories; anything else seen
// in a table directory with a recognized metric suffix is a custom
// annotation method.
var reservedMethods = map[string]bool{
	"KO":         true,
	"COG":        true,
	"PFAM":       true,
	"allfilter":  true,
	"prokfilter": true,
	"nofilter":   true,
	"orf":        true,
	"contig":     true,
}

var customMetrics = map[string]bool{
	MetricAbund:      true,
	MetricTPM:        true,
	MetricCopyNumber: true,
}

// DiscoverCustom lists the project's table directory and returns the
// custom annotation methods found there, as method → metric → filename.
// A filename decomposes as {...}.{method}.{metric}.tsv; files with too
// few dot-separated fields are ignored.
func DiscoverCustom(ctx context.Context, fs afs.Service, p *Project) (map[string]map[string]string, error) {
	objects, err := fs.List(ctx, p.TableDir())
	if err != nil {
		return nil, fmt.Errorf("list tables of project %q: %w", p.Name, err)
	}
	found := map[string]map[string]string{}
	for _, obj := range objects {
		if obj.IsDir() {
			continue
		}
		fields := strings.Split(obj.Name(), ".")
		if len(fields) < 3 {
			continue
		}
		method := fields[len(fields)-3]
		metric := fields[len(fields)-2]
		if !customMetrics[metric] || reservedMethods[method] {
			continue
		}
		if found[method] == nil {
			found[method] = map[string]string{}
		}
		found[method][metric] = obj.Name()
	}
	return found, nil
}
