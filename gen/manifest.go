package gen

import (
	"golang.org/x/mod/modfile"
)

// Modules the generated projects may depend on, pinned so regeneration is
// reproducible. A module appears in a manifest only when the emitted source
// actually imports it.
const (
	zerologModule  = "github.com/rs/zerolog"
	zerologVersion = "v1.32.0"
	chiModule      = "github.com/go-chi/chi/v5"
	chiVersion     = "v5.0.12"
)

// requirement is one require directive of a generated manifest.
type requirement struct {
	Path    string
	Version string
}

// buildManifest renders the go.mod of a generated project. The module path
// is the project name and the require set is exactly what the generated
// source imports.
func buildManifest(name string, reqs []requirement) ([]byte, error) {
	f := new(modfile.File)
	if err := f.AddModuleStmt(name); err != nil {
		return nil, &GenerationError{File: "go.mod", Message: "add module statement", Cause: err}
	}
	if err := f.AddGoStmt(goVersion); err != nil {
		return nil, &GenerationError{File: "go.mod", Message: "add go directive", Cause: err}
	}
	for _, r := range reqs {
		if err := f.AddRequire(r.Path, r.Version); err != nil {
			return nil, &GenerationError{File: "go.mod", Message: "add require " + r.Path, Cause: err}
		}
	}
	out, err := f.Format()
	if err != nil {
		return nil, &GenerationError{File: "go.mod", Message: "format manifest", Cause: err}
	}
	return out, nil
}
