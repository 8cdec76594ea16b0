// internal/tables/table.go
package tables

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
)

// Table is a sparse feature map: sample name → feature ID → value.
// A (sample, feature) pair absent from the map means "not observed";
// emission materializes it as zero. Values keep the exact text parsed
// from the source table so re-emission never fabricates precision.
type Table map[string]map[string]string

// DuplicateSampleError reports a sample name that appears in more than
// one source table for the same category. Silently continuing would let
// one project's values overwrite another's, so this is always fatal.
type DuplicateSampleError struct {
	Path   string
	Sample string
}

func (e *DuplicateSampleError) Error() string {
	return fmt.Sprintf("parsing table %q: sample %q appears more than once in the input tables", e.Path, e.Sample)
}

// MergeFile parses the TSV at URL into dst and returns the sample names
// found in its header, in column order.
func MergeFile(ctx context.Context, fs afs.Service, URL string, dst Table) ([]string, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return Merge(URL, data, dst)
}

// Merge parses one per-project table into dst. The header row holds
// tab-separated sample names (empty first column label); each data row
// is a feature ID followed by values aligned positionally with the
// header. Rows shorter than the header leave the tail cells unobserved.
func Merge(path string, data []byte, dst Table) ([]string, error) {
	lines := strings.Split(string(data), "\n")
	header := strings.TrimSpace(lines[0])
	if header == "" {
		return nil, fmt.Errorf("table %q has no header row", path)
	}
	samples := strings.Split(header, "\t")
	for _, s := range samples {
		if _, dup := dst[s]; dup {
			return nil, &DuplicateSampleError{Path: path, Sample: s}
		}
		dst[s] = map[string]string{}
	}
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		feature := fields[0]
		for i, s := range samples {
			if i+1 >= len(fields) {
				break
			}
			dst[s][feature] = fields[i+1]
		}
	}
	return samples, nil
}

// Features returns the union of feature IDs over every sample in t.
// Order is unspecified; emission sorts.
func (t Table) Features() []string {
	seen := map[string]bool{}
	var out []string
	for _, sub := range t {
		for f := range sub {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}
