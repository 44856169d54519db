package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTCPEcho(t *testing.T) {
	cfg := &EchoConfig{
		ProjectConfig: ProjectConfig{Name: "t1", Port: 4000},
		ReadMode:      Lines{MaxLineLen: intp(8192)},
	}
	fs, err := Generate(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "go.mod", "main.go"}, fs.Paths())

	mod := string(fs["go.mod"])
	assert.Contains(t, mod, "module t1")
	assert.Contains(t, mod, "go 1.24")
	assert.NotContains(t, mod, "require", "echo without tracing is dependency-free")

	main := string(fs["main.go"])
	assert.Contains(t, main, "package main")
	assert.Contains(t, main, "func readFrame(r *bufio.Reader) ([]byte, error)")
	assert.Contains(t, main, "if len(frame) == 8192 {")
	assert.Contains(t, main, `net.Listen("tcp", ":4000")`)
	assert.Contains(t, main, "conn.Write(frame)")

	// Nothing from the worker-pool archetype leaks in.
	assert.NotContains(t, main, "frameEvent")
	assert.NotContains(t, main, "make(chan")
	assert.NotContains(t, main, "zerolog")
}

func TestGenerateTCPWorker(t *testing.T) {
	cfg := &WorkerConfig{
		ProjectConfig: ProjectConfig{Name: "t2", Port: 5000},
		ReadMode:      FixedSize{FrameSize: 1024},
		Workers:       4,
		EventBuffer:   1024,
	}
	fs, err := Generate(cfg)
	require.NoError(t, err)

	main := string(fs["main.go"])
	assert.Contains(t, main, "frame := make([]byte, 1024)")
	assert.Contains(t, main, "events := make(chan frameEvent, 1024)")
	assert.Contains(t, main, "for i := 0; i < 4; i++")
	assert.Contains(t, main, `net.Listen("tcp", ":5000")`)
	// Backpressure, not shedding.
	assert.Contains(t, main, "frames are never dropped")
	// Without tracing there is nowhere to report a failed write, so the
	// worker discards the result explicitly instead of faking a branch.
	assert.Contains(t, main, "_, _ = ev.conn.Write(ev.frame)")
}

func TestTCPArchetypesShareFragment(t *testing.T) {
	// Two archetypes configured with the same read mode splice in
	// byte-identical framing code.
	mode := LengthPrefixed{LenBytes: 2, BigEndian: true, MaxLen: intp(4096)}
	fragment, err := SynthesizeReadFrame(mode)
	require.NoError(t, err)

	echo := validEcho()
	echo.ReadMode = mode
	worker := validWorker()
	worker.ReadMode = mode

	efs, err := Generate(echo)
	require.NoError(t, err)
	wfs, err := Generate(worker)
	require.NoError(t, err)

	assert.Contains(t, string(efs["main.go"]), fragment)
	assert.Contains(t, string(wfs["main.go"]), fragment)
}

func TestGenerateTCPTracing(t *testing.T) {
	cfg := validEcho()
	cfg.Tracing = true
	fs, err := Generate(cfg)
	require.NoError(t, err)

	assert.Contains(t, string(fs["go.mod"]), "github.com/rs/zerolog v1.32.0")
	main := string(fs["main.go"])
	assert.Contains(t, main, `"github.com/rs/zerolog"`)
	assert.Contains(t, main, "zerolog.New(os.Stderr)")
	assert.NotContains(t, main, `"log"`)
}

func TestGenerateHTTPService(t *testing.T) {
	cfg := &HTTPConfig{
		ProjectConfig: ProjectConfig{Name: "svc", Port: 8080},
		Routes: []Route{
			{Path: "/health", Method: MethodGet, Handler: "health", Response: "OK"},
		},
	}
	fs, err := Generate(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "go.mod", "main.go"}, fs.Paths())

	assert.Contains(t, string(fs["go.mod"]), "github.com/go-chi/chi/v5 v5.0.12")

	main := string(fs["main.go"])
	assert.Contains(t, main, "func health(w http.ResponseWriter, r *http.Request)")
	assert.Contains(t, main, `[]byte("OK")`)
	assert.Contains(t, main, "chi.NewRouter()")
	assert.Contains(t, main, `r.Get("/health", health)`)
	assert.Contains(t, main, `http.ListenAndServe(":8080", r)`)
	assert.NotContains(t, main, "database/sql")
}

func TestGenerateHTTPRouteOrder(t *testing.T) {
	cfg := &HTTPConfig{
		ProjectConfig: ProjectConfig{Name: "svc", Port: 8080},
		Routes: []Route{
			{Path: "/c", Method: MethodPost, Handler: "createC", Response: "c"},
			{Path: "/a", Method: MethodGet, Handler: "getA", Response: "a"},
			{Path: "/b", Method: MethodDelete, Handler: "deleteB", Response: "b"},
		},
	}
	fs, err := Generate(cfg)
	require.NoError(t, err)

	main := string(fs["main.go"])
	first := strings.Index(main, `r.Post("/c", createC)`)
	second := strings.Index(main, `r.Get("/a", getA)`)
	third := strings.Index(main, `r.Delete("/b", deleteB)`)
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	require.NotEqual(t, -1, third)
	// Registration follows declaration order, not method or path order.
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestGenerateHTTPDatabase(t *testing.T) {
	cfg := &HTTPConfig{
		ProjectConfig: ProjectConfig{Name: "svc", Port: 8080},
		Routes: []Route{
			{Path: "/health", Method: MethodGet, Handler: "health", Response: "OK"},
		},
		Database: DatabaseConfig{
			Enabled:        true,
			Kind:           Postgres,
			URLEnv:         "DATABASE_URL",
			MaxConnections: 20,
		},
	}
	fs, err := Generate(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "go.mod", "handlers.go", "main.go"}, fs.Paths())

	assert.Contains(t, string(fs["go.mod"]), "github.com/lib/pq v1.10.9")

	handlers := string(fs["handlers.go"])
	assert.Contains(t, handlers, `_ "github.com/lib/pq"`)
	assert.Contains(t, handlers, "db *sql.DB")
	assert.Contains(t, handlers, `sql.Open("postgres", os.Getenv("DATABASE_URL"))`)
	assert.Contains(t, handlers, "db.SetMaxOpenConns(20)")
	assert.Contains(t, handlers, "func (app *application) health(w http.ResponseWriter, r *http.Request)")

	// Handlers live in handlers.go; main wires them through the app value.
	main := string(fs["main.go"])
	assert.Contains(t, main, "openDB()")
	assert.Contains(t, main, `r.Get("/health", app.health)`)
	assert.NotContains(t, main, "func health(")
}

func TestGenerateHTTPDrivers(t *testing.T) {
	for kind, want := range map[DatabaseKind]string{
		MySQL:  "github.com/go-sql-driver/mysql v1.9.3",
		SQLite: "modernc.org/sqlite v1.37.1",
	} {
		cfg := validHTTP()
		cfg.Database = DatabaseConfig{Enabled: true, Kind: kind, URLEnv: "DB_URL", MaxConnections: 5}
		fs, err := Generate(cfg)
		require.NoError(t, err)
		assert.Contains(t, string(fs["go.mod"]), want)
	}
}

func TestGenerateCommonFiles(t *testing.T) {
	t.Run("readme", func(t *testing.T) {
		cfg := validEcho()
		cfg.Name = "frame-relay"
		fs, err := Generate(cfg)
		require.NoError(t, err)
		readme := string(fs["README.md"])
		assert.Contains(t, readme, "# Frame Relay")
		assert.Contains(t, readme, "4000")
		assert.Contains(t, readme, "netforge")
		assert.NotContains(t, readme, "https://", "generated projects must not ship URLs")
	})

	t.Run("github actions workflow", func(t *testing.T) {
		cfg := validEcho()
		cfg.GitHubActions = true
		fs, err := Generate(cfg)
		require.NoError(t, err)
		ci, ok := fs[".github/workflows/ci.yml"]
		require.True(t, ok)
		assert.Contains(t, string(ci), "go test ./...")
	})
}

func TestGenerateInvalidConfig(t *testing.T) {
	cfg := validEcho()
	cfg.Port = 0
	fs, err := Generate(cfg)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Nil(t, fs, "a failing config must produce no files")
}
