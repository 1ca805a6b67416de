// Package writer implements the file-per-slice JSON writer external
// collaborator (spec §1, §4.9, §6): given a relative path and a slice of
// projected records, create parent directories as needed and write one
// UTF-8 JSON array file.
package writer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jmeta/jmeta"
)

// FileWriter writes export slices under Root, implementing
// export.Writer.
type FileWriter struct {
	Root   string
	Pretty bool
}

// Write creates Root/relPath's parent directories and writes records as
// a JSON array.
func (w FileWriter) Write(_ context.Context, relPath string, records []map[string]any) error {
	full := filepath.Join(w.Root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return &jmeta.Error{Kind: jmeta.ErrIo, Op: "writer.Write", Inner: err}
	}

	var b []byte
	var err error
	if w.Pretty {
		b, err = json.MarshalIndent(records, "", "  ")
	} else {
		b, err = json.Marshal(records)
	}
	if err != nil {
		return &jmeta.Error{Kind: jmeta.ErrIo, Op: "writer.Write", Inner: err}
	}
	if records == nil {
		b = []byte("[]")
	}
	if err := os.WriteFile(full, b, 0o644); err != nil {
		return &jmeta.Error{Kind: jmeta.ErrIo, Op: "writer.Write", Inner: err}
	}
	return nil
}
