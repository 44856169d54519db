package gen

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"
)

// generateHTTPService builds the HTTP archetype with jennifer so imports of
// the generated source track the route and database wiring automatically.
func generateHTTPService(cfg *HTTPConfig) (FileSet, error) {
	fs := FileSet{}

	reqs := []requirement{{Path: chiModule, Version: chiVersion}}
	if cfg.Database.Enabled {
		drv := databaseDrivers[cfg.Database.Kind]
		reqs = append(reqs, requirement{Path: drv.module, Version: drv.version})
	}
	if cfg.Tracing {
		reqs = append(reqs, requirement{Path: zerologModule, Version: zerologVersion})
	}
	manifest, err := buildManifest(cfg.Name, reqs)
	if err != nil {
		return nil, err
	}
	if err := fs.Add("go.mod", manifest); err != nil {
		return nil, err
	}

	main, err := renderJen(httpMain(cfg), "main.go")
	if err != nil {
		return nil, err
	}
	if err := fs.Add("main.go", main); err != nil {
		return nil, err
	}

	// Handlers move to their own file only when they need shared state,
	// which today means database wiring.
	if cfg.Database.Enabled {
		handlers, err := renderJen(httpHandlers(cfg), "handlers.go")
		if err != nil {
			return nil, err
		}
		if err := fs.Add("handlers.go", handlers); err != nil {
			return nil, err
		}
	}

	if err := addCommonFiles(fs, &cfg.ProjectConfig, "An HTTP service with statically configured routes."); err != nil {
		return nil, err
	}
	return fs, nil
}

func renderJen(f *jen.File, name string) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, &GenerationError{Archetype: "http", File: name, Message: "render source", Cause: err}
	}
	return buf.Bytes(), nil
}

func newHTTPFile(cfg *HTTPConfig) *jen.File {
	f := jen.NewFile("main")
	f.ImportName(chiModule, "chi")
	if cfg.Tracing {
		f.ImportName(zerologModule, "zerolog")
	}
	return f
}

// httpMain emits main.go: named handlers (unless the database moves them to
// handlers.go), router construction and route registration in declaration
// order, and the listen call.
func httpMain(cfg *HTTPConfig) *jen.File {
	f := newHTTPFile(cfg)
	f.PackageComment(fmt.Sprintf("Command %s is an HTTP service generated by netforge.", cfg.Name))

	if !cfg.Database.Enabled {
		for _, r := range cfg.Routes {
			f.Comment(fmt.Sprintf("%s handles %s %s.", r.Handler, r.Method, r.Path))
			f.Func().Id(r.Handler).Params(
				jen.Id("w").Qual("net/http", "ResponseWriter"),
				jen.Id("r").Op("*").Qual("net/http", "Request"),
			).Block(
				jen.Id("w").Dot("WriteHeader").Call(jen.Qual("net/http", "StatusOK")),
				jen.Id("w").Dot("Write").Call(jen.Index().Byte().Parens(jen.Lit(r.Response))),
			)
			f.Line()
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	var body []jen.Code
	if cfg.Tracing {
		body = append(body,
			jen.Id("logger").Op(":=").Qual(zerologModule, "New").Call(jen.Qual("os", "Stderr")).
				Dot("With").Call().Dot("Timestamp").Call().Dot("Logger").Call(),
		)
	}
	if cfg.Database.Enabled {
		body = append(body,
			jen.List(jen.Id("db"), jen.Err()).Op(":=").Id("openDB").Call(),
			jen.If(jen.Err().Op("!=").Nil()).Block(fatal(cfg, "open database")),
			jen.Defer().Id("db").Dot("Close").Call(),
			jen.Id("app").Op(":=").Op("&").Id("application").Values(jen.Dict{
				jen.Id("db"): jen.Id("db"),
			}),
		)
	}
	body = append(body, jen.Id("r").Op(":=").Qual(chiModule, "NewRouter").Call())
	if cfg.Tracing {
		body = append(body, requestLogMiddleware())
	}
	for _, r := range cfg.Routes {
		handler := jen.Id(r.Handler)
		if cfg.Database.Enabled {
			handler = jen.Id("app").Dot(r.Handler)
		}
		body = append(body, jen.Id("r").Dot(methods[r.Method]).Call(jen.Lit(r.Path), handler))
	}
	if cfg.Tracing {
		body = append(body,
			jen.Id("logger").Dot("Info").Call().Dot("Int").Call(jen.Lit("port"), jen.Lit(cfg.Port)).
				Dot("Msg").Call(jen.Lit("http service listening")),
			jen.If(
				jen.Err().Op(":=").Qual("net/http", "ListenAndServe").Call(jen.Lit(addr), jen.Id("r")),
				jen.Err().Op("!=").Nil(),
			).Block(fatal(cfg, "server failed")),
		)
	} else {
		body = append(body,
			jen.Qual("log", "Printf").Call(jen.Lit("http service listening on "+addr)),
			jen.If(
				jen.Err().Op(":=").Qual("net/http", "ListenAndServe").Call(jen.Lit(addr), jen.Id("r")),
				jen.Err().Op("!=").Nil(),
			).Block(fatal(cfg, "server failed")),
		)
	}
	f.Func().Id("main").Params().Block(body...)
	return f
}

// fatal emits the archetype's fatal-error statement, zerolog or stdlib log
// depending on tracing.
func fatal(cfg *HTTPConfig, msg string) jen.Code {
	if cfg.Tracing {
		return jen.Id("logger").Dot("Fatal").Call().Dot("Err").Call(jen.Err()).Dot("Msg").Call(jen.Lit(msg))
	}
	return jen.Qual("log", "Fatalf").Call(jen.Lit(msg+": %v"), jen.Err())
}

func requestLogMiddleware() jen.Code {
	return jen.Id("r").Dot("Use").Call(
		jen.Func().Params(jen.Id("next").Qual("net/http", "Handler")).Qual("net/http", "Handler").Block(
			jen.Return(jen.Qual("net/http", "HandlerFunc").Call(
				jen.Func().Params(
					jen.Id("w").Qual("net/http", "ResponseWriter"),
					jen.Id("req").Op("*").Qual("net/http", "Request"),
				).Block(
					jen.Id("logger").Dot("Info").Call().
						Dot("Str").Call(jen.Lit("method"), jen.Id("req").Dot("Method")).
						Dot("Str").Call(jen.Lit("path"), jen.Id("req").Dot("URL").Dot("Path")).
						Dot("Msg").Call(jen.Lit("request")),
					jen.Id("next").Dot("ServeHTTP").Call(jen.Id("w"), jen.Id("req")),
				),
			)),
		),
	)
}

// httpHandlers emits handlers.go: the shared application state, the pool
// constructor reading the connection string from the configured environment
// variable, and one handler method per route.
func httpHandlers(cfg *HTTPConfig) *jen.File {
	f := newHTTPFile(cfg)
	drv := databaseDrivers[cfg.Database.Kind]
	f.Anon(drv.module)

	f.Comment("application holds the dependencies shared by all handlers.")
	f.Type().Id("application").Struct(
		jen.Id("db").Op("*").Qual("database/sql", "DB"),
	)
	f.Line()

	f.Comment(fmt.Sprintf("openDB builds the connection pool from the %s environment variable.", cfg.Database.URLEnv))
	f.Func().Id("openDB").Params().Params(jen.Op("*").Qual("database/sql", "DB"), jen.Error()).Block(
		jen.List(jen.Id("db"), jen.Err()).Op(":=").Qual("database/sql", "Open").Call(
			jen.Lit(drv.driver),
			jen.Qual("os", "Getenv").Call(jen.Lit(cfg.Database.URLEnv)),
		),
		jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err())),
		jen.Id("db").Dot("SetMaxOpenConns").Call(jen.Lit(cfg.Database.MaxConnections)),
		jen.If(
			jen.Err().Op(":=").Id("db").Dot("Ping").Call(),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Return(jen.Nil(), jen.Err())),
		jen.Return(jen.Id("db"), jen.Nil()),
	)
	f.Line()

	for _, r := range cfg.Routes {
		f.Comment(fmt.Sprintf("%s handles %s %s.", r.Handler, r.Method, r.Path))
		f.Func().Params(jen.Id("app").Op("*").Id("application")).Id(r.Handler).Params(
			jen.Id("w").Qual("net/http", "ResponseWriter"),
			jen.Id("r").Op("*").Qual("net/http", "Request"),
		).Block(
			jen.Id("w").Dot("WriteHeader").Call(jen.Qual("net/http", "StatusOK")),
			jen.Id("w").Dot("Write").Call(jen.Index().Byte().Parens(jen.Lit(r.Response))),
		)
		f.Line()
	}
	return f
}
