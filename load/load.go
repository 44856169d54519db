// Package load reads archetype configuration files into the gen model.
// Files are YAML; the read_mode block is a tagged union selected by its
// "type" key, matching the variants of gen.ReadMode. Loading is purely
// structural, semantic validation happens in gen.Validate.
package load

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/netforge/netforge/gen"
)

// project holds the fields shared by all archetype config files.
type project struct {
	ProjectName   string `yaml:"project_name"`
	Port          int    `yaml:"port"`
	Tracing       bool   `yaml:"tracing"`
	OutDir        string `yaml:"out_dir"`
	GitHubActions bool   `yaml:"github_actions"`
}

func (p project) config() gen.ProjectConfig {
	return gen.ProjectConfig{
		Name:          p.ProjectName,
		Port:          p.Port,
		Tracing:       p.Tracing,
		OutDir:        p.OutDir,
		GitHubActions: p.GitHubActions,
	}
}

// readMode decodes the read_mode tagged union.
type readMode struct {
	mode gen.ReadMode
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *readMode) UnmarshalYAML(node *yaml.Node) error {
	var probe struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&probe); err != nil {
		return err
	}
	switch probe.Type {
	case "lines":
		var v struct {
			MaxLineLen *int `yaml:"max_line_len"`
		}
		if err := node.Decode(&v); err != nil {
			return err
		}
		m.mode = gen.Lines{MaxLineLen: v.MaxLineLen}
	case "fixed_size":
		var v struct {
			FrameSize int `yaml:"frame_size"`
		}
		if err := node.Decode(&v); err != nil {
			return err
		}
		m.mode = gen.FixedSize{FrameSize: v.FrameSize}
	case "delimited":
		var v struct {
			Delim  int  `yaml:"delim"`
			MaxLen *int `yaml:"max_len"`
		}
		if err := node.Decode(&v); err != nil {
			return err
		}
		if v.Delim < 0 || v.Delim > 255 {
			return fmt.Errorf("read_mode.delim must be a byte value 0-255, got %d", v.Delim)
		}
		m.mode = gen.Delimited{Delim: byte(v.Delim), MaxLen: v.MaxLen}
	case "length_prefixed":
		var v struct {
			LenBytes  int  `yaml:"len_bytes"`
			BigEndian bool `yaml:"big_endian"`
			MaxLen    *int `yaml:"max_len"`
		}
		if err := node.Decode(&v); err != nil {
			return err
		}
		m.mode = gen.LengthPrefixed{LenBytes: v.LenBytes, BigEndian: v.BigEndian, MaxLen: v.MaxLen}
	case "":
		return fmt.Errorf("read_mode.type is required")
	default:
		return fmt.Errorf("unknown read_mode type %q", probe.Type)
	}
	return nil
}

type echoFile struct {
	project  `yaml:",inline"`
	ReadMode readMode `yaml:"read_mode"`
}

type workerFile struct {
	project     `yaml:",inline"`
	ReadMode    readMode `yaml:"read_mode"`
	Workers     *int     `yaml:"workers"`
	EventBuffer *int     `yaml:"event_buffer"`
}

type routeFile struct {
	Path     string `yaml:"path"`
	Method   string `yaml:"method"`
	Handler  string `yaml:"handler"`
	Response string `yaml:"response"`
}

type databaseFile struct {
	Enabled        bool   `yaml:"enabled"`
	Kind           string `yaml:"kind"`
	URLEnv         string `yaml:"url_env"`
	MaxConnections *int   `yaml:"max_connections"`
}

type httpFile struct {
	project  `yaml:",inline"`
	Routes   []routeFile   `yaml:"routes"`
	Database *databaseFile `yaml:"database"`
}

// Defaults for omitted optional database fields.
const (
	defaultDatabaseKind   = gen.Postgres
	defaultMaxConnections = 10
)

// TCPEcho loads a TCP echo server config.
func TCPEcho(path string) (*gen.EchoConfig, error) {
	var f echoFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	return &gen.EchoConfig{
		ProjectConfig: f.config(),
		ReadMode:      f.ReadMode.mode,
	}, nil
}

// TCPWorker loads a TCP worker-pool server config. Omitted pool settings
// fall back to the gen defaults.
func TCPWorker(path string) (*gen.WorkerConfig, error) {
	var f workerFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	cfg := gen.NewWorkerConfig(f.config(), f.ReadMode.mode)
	if f.Workers != nil {
		cfg.Workers = *f.Workers
	}
	if f.EventBuffer != nil {
		cfg.EventBuffer = *f.EventBuffer
	}
	return cfg, nil
}

// HTTPService loads an HTTP service config.
func HTTPService(path string) (*gen.HTTPConfig, error) {
	var f httpFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	cfg := &gen.HTTPConfig{
		ProjectConfig: f.config(),
		Routes:        make([]gen.Route, 0, len(f.Routes)),
	}
	for _, r := range f.Routes {
		cfg.Routes = append(cfg.Routes, gen.Route{
			Path:     r.Path,
			Method:   gen.Method(r.Method),
			Handler:  r.Handler,
			Response: r.Response,
		})
	}
	if db := f.Database; db != nil && db.Enabled {
		cfg.Database = gen.DatabaseConfig{
			Enabled:        true,
			Kind:           defaultDatabaseKind,
			URLEnv:         db.URLEnv,
			MaxConnections: defaultMaxConnections,
		}
		if db.Kind != "" {
			cfg.Database.Kind = gen.DatabaseKind(db.Kind)
		}
		if db.MaxConnections != nil {
			cfg.Database.MaxConnections = *db.MaxConnections
		}
	}
	return cfg, nil
}

// ResolveOutDir picks the target directory: an explicit CLI flag wins, then
// the config file's out_dir, then the project name.
func ResolveOutDir(cliOutDir, cfgOutDir, projectName string) string {
	switch {
	case cliOutDir != "":
		return cliOutDir
	case cfgOutDir != "":
		return cfgOutDir
	default:
		return projectName
	}
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
