// internal/tables/names.go
package tables

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
)

// NameInfo holds the display names of a method's feature IDs and, for
// hierarchical methods (KO, COG), their hierarchy paths. Repeated IDs
// are last-write-wins: names are assumed stable per ID across projects.
type NameInfo struct {
	Name map[string]string
	Path map[string]string // nil unless the method is hierarchical
}

func NewNameInfo(hierarchical bool) *NameInfo {
	n := &NameInfo{Name: map[string]string{}}
	if hierarchical {
		n.Path = map[string]string{}
	}
	return n
}

// MergeNamesFile parses a names table (columns: ID, Name[, Path];
// header row discarded) at URL into info.
func MergeNamesFile(ctx context.Context, fs afs.Service, URL string, info *NameInfo) error {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return fmt.Errorf("read names table: %w", err)
	}
	return MergeNames(URL, data, info)
}

// MergeNames parses names-table bytes into info. Lines are stripped of
// the trailing newline only, so empty tab-separated fields survive.
func MergeNames(path string, data []byte, info *NameInfo) error {
	lines := strings.Split(string(data), "\n")
	if len(lines) < 2 {
		return nil // header only, nothing to merge
	}
	for _, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return fmt.Errorf("names table %q: row %q has fewer than two columns", path, line)
		}
		info.Name[fields[0]] = fields[1]
		if info.Path != nil {
			if len(fields) < 3 {
				return fmt.Errorf("names table %q: row %q is missing the hierarchy column", path, line)
			}
			info.Path[fields[0]] = fields[2]
		}
	}
	return nil
}
