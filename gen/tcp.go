package gen

import (
	"slices"
)

// tcpContext is the template context shared by both TCP archetypes. The
// ReadFrame fragment comes from the synthesizer, so two archetypes that
// share a read mode splice in identical framing code.
type tcpContext struct {
	Name        string
	Port        int
	Tracing     bool
	ModeName    string
	ReadFrame   string
	StdImports  []string
	ExtImports  []string
	Workers     int
	EventBuffer int
}

func newTCPContext(p *ProjectConfig, mode ReadMode, fragment string) tcpContext {
	std := append(readFrameImports(mode), "net")
	var ext []string
	if p.Tracing {
		std = append(std, "os")
		ext = []string{zerologModule}
	} else {
		std = append(std, "log")
	}
	slices.Sort(std)
	return tcpContext{
		Name:       p.Name,
		Port:       p.Port,
		Tracing:    p.Tracing,
		ModeName:   mode.Name(),
		ReadFrame:  fragment,
		StdImports: std,
		ExtImports: ext,
	}
}

// tracingRequirements returns the manifest requirements of a TCP archetype.
// Without tracing the generated server is dependency-free.
func tracingRequirements(tracing bool) []requirement {
	if !tracing {
		return nil
	}
	return []requirement{{Path: zerologModule, Version: zerologVersion}}
}

func generateTCPEcho(cfg *EchoConfig) (FileSet, error) {
	fragment, err := SynthesizeReadFrame(cfg.ReadMode)
	if err != nil {
		return nil, err
	}
	manifest, err := buildManifest(cfg.Name, tracingRequirements(cfg.Tracing))
	if err != nil {
		return nil, err
	}
	src, err := render("tcp_echo_main.tmpl", newTCPContext(&cfg.ProjectConfig, cfg.ReadMode, fragment))
	if err != nil {
		return nil, err
	}
	fs := FileSet{}
	if err := fs.Add("go.mod", manifest); err != nil {
		return nil, err
	}
	if err := fs.Add("main.go", src); err != nil {
		return nil, err
	}
	if err := addCommonFiles(fs, &cfg.ProjectConfig, "A TCP echo server: every frame read from a connection is written straight back to it."); err != nil {
		return nil, err
	}
	return fs, nil
}

func generateTCPWorker(cfg *WorkerConfig) (FileSet, error) {
	fragment, err := SynthesizeReadFrame(cfg.ReadMode)
	if err != nil {
		return nil, err
	}
	ctx := newTCPContext(&cfg.ProjectConfig, cfg.ReadMode, fragment)
	ctx.Workers = cfg.Workers
	ctx.EventBuffer = cfg.EventBuffer
	manifest, err := buildManifest(cfg.Name, tracingRequirements(cfg.Tracing))
	if err != nil {
		return nil, err
	}
	src, err := render("tcp_worker_main.tmpl", ctx)
	if err != nil {
		return nil, err
	}
	fs := FileSet{}
	if err := fs.Add("go.mod", manifest); err != nil {
		return nil, err
	}
	if err := fs.Add("main.go", src); err != nil {
		return nil, err
	}
	if err := addCommonFiles(fs, &cfg.ProjectConfig, "A TCP server that decodes frames on the accept path and hands them to a fixed pool of workers over a bounded queue."); err != nil {
		return nil, err
	}
	return fs, nil
}
