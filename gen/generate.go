package gen

// Generate validates cfg and composes the archetype's complete file set in
// memory. Nothing touches the filesystem here; Emit writes the result. A
// config that fails validation produces no files at all.
func Generate(cfg Config) (FileSet, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	switch c := cfg.(type) {
	case *EchoConfig:
		return generateTCPEcho(c)
	case *WorkerConfig:
		return generateTCPWorker(c)
	case *HTTPConfig:
		return generateHTTPService(c)
	default:
		// Validate rejects unknown archetypes, so this is unreachable.
		return nil, &GenerationError{Archetype: cfg.Archetype(), Message: "unknown archetype"}
	}
}

// Run is the full pipeline for one generation run: validate, generate and
// emit into the config's target directory. Runs are independent; callers
// may execute several concurrently as long as their target directories do
// not overlap.
func Run(cfg Config, opts ...WriterOption) error {
	fs, err := Generate(cfg)
	if err != nil {
		return err
	}
	w, err := NewWriter(cfg.Project().OutDir, opts...)
	if err != nil {
		return err
	}
	return w.Emit(fs)
}
