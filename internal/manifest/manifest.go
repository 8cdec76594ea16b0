// internal/manifest/manifest.go
package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Manifest is the YAML project-list format: the projects to combine
// plus optional output settings. Explicit CLI flags take precedence
// over manifest values.
//
//	projects:
//	  - /data/proj1
//	  - /data/proj2
//	output-dir: combined
//	output-prefix: combined
type Manifest struct {
	Projects     []string `yaml:"projects"`
	OutputDir    string   `yaml:"output-dir"`
	OutputPrefix string   `yaml:"output-prefix"`
}

// Load reads and decodes a YAML manifest. Unknown keys are rejected to
// catch misspelled settings early.
func Load(ctx context.Context, fs afs.Service, URL string) (*Manifest, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest %q: %w", URL, err)
	}
	if len(m.Projects) == 0 {
		return nil, fmt.Errorf("manifest %q lists no projects", URL)
	}
	return &m, nil
}

// ReadPathsFile reads a newline-delimited project list, skipping blank
// lines.
func ReadPathsFile(ctx context.Context, fs afs.Service, URL string) ([]string, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("read paths file: %w", err)
	}
	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	return paths, nil
}
