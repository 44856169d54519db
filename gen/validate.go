package gen

import (
	"fmt"
	"go/token"

	"github.com/go-playground/validator/v10"
	"golang.org/x/mod/module"
)

// scalarRules validates single scalar fields. Rules run one field at a
// time through Var so the check order below stays deterministic.
var scalarRules = validator.New()

// Validate checks a configuration for well-formedness and semantic
// consistency. It is pure, runs its rules in a fixed order and stops at
// the first violated rule, returning a *ValidationError naming the field
// and the constraint. A config that passes is safe to hand to Generate.
func Validate(cfg Config) error {
	if cfg == nil {
		return NewValidationError("config", nil, "no configuration given")
	}
	if err := validateProject(cfg.Project()); err != nil {
		return err
	}
	switch c := cfg.(type) {
	case *EchoConfig:
		return validateReadMode(c.ReadMode)
	case *WorkerConfig:
		if err := validateReadMode(c.ReadMode); err != nil {
			return err
		}
		return validatePool(c)
	case *HTTPConfig:
		if err := validateRoutes(c.Routes); err != nil {
			return err
		}
		return validateDatabase(&c.Database)
	default:
		return NewValidationError("config", cfg.Archetype(), "unknown archetype")
	}
}

func validateProject(p *ProjectConfig) error {
	if p.Name == "" {
		return NewValidationError("project_name", nil, "must not be empty")
	}
	if err := module.CheckImportPath(p.Name); err != nil {
		return NewValidationError("project_name", p.Name, "must be a valid module path")
	}
	if err := scalarRules.Var(p.Port, "min=1,max=65535"); err != nil {
		return NewValidationError("port", p.Port, "must be in range [1, 65535]")
	}
	return nil
}

func validateReadMode(mode ReadMode) error {
	switch m := mode.(type) {
	case Lines:
		if m.MaxLineLen != nil && *m.MaxLineLen <= 0 {
			return NewValidationError("read_mode.max_line_len", *m.MaxLineLen, "must be positive when set")
		}
	case FixedSize:
		if m.FrameSize <= 0 {
			return NewValidationError("read_mode.frame_size", m.FrameSize, "must be positive")
		}
	case Delimited:
		// Delim is a byte, so the 0-255 bound holds by construction.
		if m.MaxLen != nil && *m.MaxLen <= 0 {
			return NewValidationError("read_mode.max_len", *m.MaxLen, "must be positive when set")
		}
	case LengthPrefixed:
		switch m.LenBytes {
		case 1, 2, 4:
		default:
			return NewValidationError("read_mode.len_bytes", m.LenBytes, "must be 1, 2 or 4")
		}
		if m.MaxLen != nil {
			if *m.MaxLen <= 0 {
				return NewValidationError("read_mode.max_len", *m.MaxLen, "must be positive when set")
			}
			if limit := m.MaxPrefixValue(); uint64(*m.MaxLen) > limit {
				return NewValidationError("read_mode.max_len", *m.MaxLen,
					fmt.Sprintf("must be representable in a %d-byte prefix (at most %d)", m.LenBytes, limit))
			}
		}
	case nil:
		return NewValidationError("read_mode", nil, "exactly one read mode must be set")
	default:
		return NewValidationError("read_mode", mode.Name(), "unknown read mode variant")
	}
	return nil
}

func validatePool(c *WorkerConfig) error {
	if err := scalarRules.Var(c.Workers, "gt=0"); err != nil {
		return NewValidationError("workers", c.Workers, "must be positive")
	}
	if err := scalarRules.Var(c.EventBuffer, "gt=0"); err != nil {
		return NewValidationError("event_buffer", c.EventBuffer, "must be positive")
	}
	return nil
}

func validateRoutes(routes []Route) error {
	if len(routes) == 0 {
		return NewValidationError("routes", nil, "at least one route is required")
	}
	handlers := make(map[string]int, len(routes))
	bindings := make(map[string]int, len(routes))
	for i, r := range routes {
		if err := scalarRules.Var(r.Path, "required,startswith=/"); err != nil {
			return NewValidationError(fmt.Sprintf("routes[%d].path", i), r.Path, "must start with /")
		}
		if !r.Method.Valid() {
			return NewValidationError(fmt.Sprintf("routes[%d].method", i), string(r.Method), "must be a recognized HTTP verb")
		}
		if !token.IsIdentifier(r.Handler) {
			return NewValidationError(fmt.Sprintf("routes[%d].handler", i), r.Handler, "must be a valid identifier")
		}
		if prev, ok := handlers[r.Handler]; ok {
			return NewValidationError(fmt.Sprintf("routes[%d].handler", i), r.Handler,
				fmt.Sprintf("handler name already used by routes[%d]", prev))
		}
		handlers[r.Handler] = i
		binding := string(r.Method) + " " + r.Path
		if prev, ok := bindings[binding]; ok {
			return NewValidationError(fmt.Sprintf("routes[%d]", i), binding,
				fmt.Sprintf("method and path already bound by routes[%d]", prev))
		}
		bindings[binding] = i
	}
	return nil
}

func validateDatabase(db *DatabaseConfig) error {
	if !db.Enabled {
		return nil
	}
	if !db.Kind.Valid() {
		return NewValidationError("database.kind", string(db.Kind), "must be one of postgres, mysql or sqlite")
	}
	if db.URLEnv == "" {
		return NewValidationError("database.url_env", nil, "must not be empty when database is enabled")
	}
	if err := scalarRules.Var(db.MaxConnections, "gt=0"); err != nil {
		return NewValidationError("database.max_connections", db.MaxConnections, "must be positive")
	}
	return nil
}
