package gen

import (
	"fmt"
	"slices"
)

// FileSet maps relative output paths to the literal file contents to be
// written there. Paths are unique by construction; iteration order is
// irrelevant, emission sorts them.
type FileSet map[string][]byte

// Add records a file, rejecting duplicate paths.
func (fs FileSet) Add(path string, content []byte) error {
	if _, ok := fs[path]; ok {
		return &GenerationError{File: path, Message: "duplicate output path"}
	}
	fs[path] = content
	return nil
}

// AddString is Add for string contents.
func (fs FileSet) AddString(path, content string) error {
	return fs.Add(path, []byte(content))
}

// Paths returns the file paths in sorted order.
func (fs FileSet) Paths() []string {
	paths := make([]string, 0, len(fs))
	for p := range fs {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

func (fs FileSet) String() string {
	return fmt.Sprintf("FileSet%v", fs.Paths())
}
