// internal/writers/table.go
package writers

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"sort"

	"sqmcombine/internal/tables"

	"github.com/viant/afs"
)

// WriteTable materializes a sparse feature map as a dense TSV. Rows are
// the union of feature IDs sorted bytewise ascending; columns follow
// order exactly as given. Cells absent from the map are written as 0;
// present cells are re-emitted verbatim. The header's first cell is the
// empty feature-ID column label.
func WriteTable(w io.Writer, order []string, t tables.Table) error {
	features := t.Features()
	sort.Strings(features)

	bw := bufio.NewWriter(w)
	for _, sample := range order {
		bw.WriteByte('\t')
		bw.WriteString(sample)
	}
	bw.WriteByte('\n')
	for _, feature := range features {
		bw.WriteString(feature)
		for _, sample := range order {
			value, ok := t[sample][feature]
			if !ok {
				value = "0"
			}
			bw.WriteByte('\t')
			bw.WriteString(value)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// UploadTable writes the dense table to URL through the storage service.
func UploadTable(ctx context.Context, fs afs.Service, URL string, order []string, t tables.Table) error {
	var buf bytes.Buffer
	if err := WriteTable(&buf, order, t); err != nil {
		return err
	}
	return fs.Upload(ctx, URL, os.FileMode(0o644), &buf)
}

// WriteNames emits a combined name/hierarchy lookup table using the
// dense-table writer with the fixed column set {Name} or {Name, Path}.
func WriteNames(w io.Writer, info *tables.NameInfo) error {
	t := tables.Table{"Name": info.Name}
	order := []string{"Name"}
	if info.Path != nil {
		t["Path"] = info.Path
		order = append(order, "Path")
	}
	return WriteTable(w, order, t)
}

func UploadNames(ctx context.Context, fs afs.Service, URL string, info *tables.NameInfo) error {
	var buf bytes.Buffer
	if err := WriteNames(&buf, info); err != nil {
		return err
	}
	return fs.Upload(ctx, URL, os.FileMode(0o644), &buf)
}
