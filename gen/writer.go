package gen

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/tools/imports"
)

// Writer emits a FileSet under a target directory. Writes are sequential
// and in sorted path order so regeneration is deterministic. Files named
// in the set are overwritten; anything else already present in the target
// directory is left alone.
type Writer struct {
	outDir string
	format bool
	logger zerolog.Logger
}

// NewWriter creates a Writer for the given target directory.
func NewWriter(outDir string, opts ...WriterOption) (*Writer, error) {
	if outDir == "" {
		return nil, &EmitError{Path: outDir, Cause: errors.New("empty target directory")}
	}
	w := &Writer{
		outDir: outDir,
		format: true,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Emit writes every file of the set, creating the target directory and any
// intermediate directories as needed. The first failure is returned as an
// *EmitError naming the path; files written before it stay on disk.
func (w *Writer) Emit(fs FileSet) error {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return &EmitError{Path: w.outDir, Cause: err}
	}
	for _, rel := range fs.Paths() {
		content := fs[rel]
		full := filepath.Join(w.outDir, rel)
		if w.format && filepath.Ext(rel) == ".go" {
			formatted, err := imports.Process(full, content, nil)
			if err != nil {
				// Generated code that does not parse is an engine bug,
				// not an IO failure.
				return &GenerationError{File: rel, Message: "format generated source", Cause: err}
			}
			content = formatted
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return &EmitError{Path: rel, Cause: err}
		}
		if err := os.WriteFile(full, content, 0o644); err != nil {
			return &EmitError{Path: rel, Cause: err}
		}
		w.logger.Debug().Str("path", rel).Int("bytes", len(content)).Msg("file written")
	}
	return nil
}
