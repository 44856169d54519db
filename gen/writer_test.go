package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSet(t *testing.T) {
	t.Run("duplicate path rejected", func(t *testing.T) {
		fs := FileSet{}
		require.NoError(t, fs.AddString("main.go", "package main"))
		err := fs.AddString("main.go", "package main")
		require.Error(t, err)
		assert.True(t, IsGenerationError(err))
	})

	t.Run("paths are sorted", func(t *testing.T) {
		fs := FileSet{}
		require.NoError(t, fs.AddString("main.go", ""))
		require.NoError(t, fs.AddString("README.md", ""))
		require.NoError(t, fs.AddString("go.mod", ""))
		assert.Equal(t, []string{"README.md", "go.mod", "main.go"}, fs.Paths())
	})
}

func TestNewWriter(t *testing.T) {
	_, err := NewWriter("")
	require.Error(t, err)
	assert.True(t, IsEmitError(err))
}

func TestWriterEmit(t *testing.T) {
	cfg := validEcho()

	t.Run("writes the full set", func(t *testing.T) {
		dir := t.TempDir()
		fs, err := Generate(cfg)
		require.NoError(t, err)

		w, err := NewWriter(filepath.Join(dir, "t1"))
		require.NoError(t, err)
		require.NoError(t, w.Emit(fs))

		for _, rel := range fs.Paths() {
			_, err := os.Stat(filepath.Join(dir, "t1", rel))
			assert.NoError(t, err, rel)
		}
	})

	t.Run("creates nested directories", func(t *testing.T) {
		dir := t.TempDir()
		ci := validEcho()
		ci.GitHubActions = true
		fs, err := Generate(ci)
		require.NoError(t, err)

		w, err := NewWriter(dir)
		require.NoError(t, err)
		require.NoError(t, w.Emit(fs))

		_, err = os.Stat(filepath.Join(dir, ".github", "workflows", "ci.yml"))
		assert.NoError(t, err)
	})

	t.Run("regeneration is byte-identical", func(t *testing.T) {
		dir := t.TempDir()
		w, err := NewWriter(dir)
		require.NoError(t, err)

		fs, err := Generate(cfg)
		require.NoError(t, err)
		require.NoError(t, w.Emit(fs))
		first, err := os.ReadFile(filepath.Join(dir, "main.go"))
		require.NoError(t, err)

		fs, err = Generate(cfg)
		require.NoError(t, err)
		require.NoError(t, w.Emit(fs))
		second, err := os.ReadFile(filepath.Join(dir, "main.go"))
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("unrelated files are left alone", func(t *testing.T) {
		dir := t.TempDir()
		keep := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(keep, []byte("mine"), 0o644))

		fs, err := Generate(cfg)
		require.NoError(t, err)
		w, err := NewWriter(dir)
		require.NoError(t, err)
		require.NoError(t, w.Emit(fs))

		content, err := os.ReadFile(keep)
		require.NoError(t, err)
		assert.Equal(t, "mine", string(content))
	})

	t.Run("emitted source is formatted", func(t *testing.T) {
		dir := t.TempDir()
		fs := FileSet{}
		require.NoError(t, fs.AddString("main.go", "package main\nfunc   main( ) {  }\n"))

		w, err := NewWriter(dir)
		require.NoError(t, err)
		require.NoError(t, w.Emit(fs))

		content, err := os.ReadFile(filepath.Join(dir, "main.go"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "func main() {}")
	})

	t.Run("unparsable source is a generation error", func(t *testing.T) {
		dir := t.TempDir()
		fs := FileSet{}
		require.NoError(t, fs.AddString("main.go", "package main\nfunc {"))

		w, err := NewWriter(dir)
		require.NoError(t, err)
		err = w.Emit(fs)
		require.Error(t, err)
		assert.True(t, IsGenerationError(err))
	})

	t.Run("formatting can be disabled", func(t *testing.T) {
		dir := t.TempDir()
		raw := "package main\nfunc {"
		fs := FileSet{}
		require.NoError(t, fs.AddString("main.go", raw))

		w, err := NewWriter(dir, WithFormatting(false))
		require.NoError(t, err)
		require.NoError(t, w.Emit(fs))

		content, err := os.ReadFile(filepath.Join(dir, "main.go"))
		require.NoError(t, err)
		assert.Equal(t, raw, string(content))
	})
}

func TestRun(t *testing.T) {
	t.Run("full pipeline", func(t *testing.T) {
		dir := t.TempDir()
		cfg := validWorker()
		cfg.OutDir = filepath.Join(dir, "t2")
		require.NoError(t, Run(cfg))

		_, err := os.Stat(filepath.Join(dir, "t2", "go.mod"))
		assert.NoError(t, err)
	})

	t.Run("invalid config writes nothing", func(t *testing.T) {
		dir := t.TempDir()
		cfg := validWorker()
		cfg.OutDir = filepath.Join(dir, "t2")
		cfg.Workers = 0

		err := Run(cfg)
		require.Error(t, err)
		assert.True(t, IsValidationError(err))

		_, err = os.Stat(filepath.Join(dir, "t2"))
		assert.True(t, os.IsNotExist(err), "target directory must not be created")
	})
}
