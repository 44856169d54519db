package gen

// Defaults for optional worker-pool settings. Omitted values are filled in
// by the constructors below, never by mutable package state, so concurrent
// generation runs stay independent.
const (
	DefaultWorkers     = 4
	DefaultEventBuffer = 256
)

// goVersion is the Go directive written into every generated manifest.
const goVersion = "1.24"

// Config is implemented by the three archetype configurations.
type Config interface {
	// Project returns the settings shared by all archetypes.
	Project() *ProjectConfig
	// Archetype returns the archetype name: "tcp-echo", "tcp-worker" or "http".
	Archetype() string
}

// ProjectConfig holds the settings shared by all archetypes. It is owned by
// exactly one generation run and treated as immutable once validated.
type ProjectConfig struct {
	// Name is the project name. It becomes the module path of the generated
	// manifest, so it must be import-path safe.
	Name string
	// Port the generated server listens on.
	Port int
	// Tracing enables structured log statements in the generated code.
	Tracing bool
	// OutDir is the target directory. Only the emission layer writes to it.
	OutDir string
	// GitHubActions adds a CI workflow to the generated project.
	GitHubActions bool
}

// Project implements Config.
func (c *ProjectConfig) Project() *ProjectConfig { return c }

// EchoConfig configures a TCP echo server project.
type EchoConfig struct {
	ProjectConfig
	// ReadMode selects how the connection byte stream is framed.
	ReadMode ReadMode
}

// Archetype implements Config.
func (*EchoConfig) Archetype() string { return "tcp-echo" }

// WorkerConfig configures a TCP worker-pool server project.
type WorkerConfig struct {
	ProjectConfig
	ReadMode ReadMode
	// Workers is the number of long-lived worker goroutines.
	Workers int
	// EventBuffer is the capacity of the bounded event channel shared by
	// the accept loop and the workers.
	EventBuffer int
}

// Archetype implements Config.
func (*WorkerConfig) Archetype() string { return "tcp-worker" }

// NewWorkerConfig returns a WorkerConfig with pool defaults applied.
func NewWorkerConfig(project ProjectConfig, mode ReadMode) *WorkerConfig {
	return &WorkerConfig{
		ProjectConfig: project,
		ReadMode:      mode,
		Workers:       DefaultWorkers,
		EventBuffer:   DefaultEventBuffer,
	}
}

// Method is an HTTP verb supported by generated routes.
type Method string

// Supported HTTP verbs.
const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// methods holds the closed set of recognized verbs, mapped to the
// corresponding chi router method name.
var methods = map[Method]string{
	MethodGet:    "Get",
	MethodPost:   "Post",
	MethodPut:    "Put",
	MethodPatch:  "Patch",
	MethodDelete: "Delete",
}

// Valid reports whether m is a recognized verb.
func (m Method) Valid() bool {
	_, ok := methods[m]
	return ok
}

// Route describes one generated HTTP route with a static response body.
type Route struct {
	Path     string
	Method   Method
	Handler  string // handler function name, unique per config
	Response string // literal body returned with a 200 status
}

// DatabaseKind is a supported database backend for the HTTP archetype.
type DatabaseKind string

// Supported database kinds.
const (
	Postgres DatabaseKind = "postgres"
	MySQL    DatabaseKind = "mysql"
	SQLite   DatabaseKind = "sqlite"
)

// databaseDrivers maps each kind to the database/sql driver name and the
// module providing it. The module is what the generated manifest requires.
var databaseDrivers = map[DatabaseKind]struct {
	driver  string
	module  string
	version string
}{
	Postgres: {driver: "postgres", module: "github.com/lib/pq", version: "v1.10.9"},
	MySQL:    {driver: "mysql", module: "github.com/go-sql-driver/mysql", version: "v1.9.3"},
	SQLite:   {driver: "sqlite", module: "modernc.org/sqlite", version: "v1.37.1"},
}

// Valid reports whether k is a supported database kind.
func (k DatabaseKind) Valid() bool {
	_, ok := databaseDrivers[k]
	return ok
}

// DatabaseConfig describes optional database wiring for the HTTP archetype.
type DatabaseConfig struct {
	Enabled bool
	Kind    DatabaseKind
	// URLEnv is the environment variable the generated code reads the
	// connection string from at process start.
	URLEnv string
	// MaxConnections is the pool size passed to SetMaxOpenConns.
	MaxConnections int
}

// HTTPConfig configures an HTTP service project.
type HTTPConfig struct {
	ProjectConfig
	// Routes are registered in declaration order.
	Routes   []Route
	Database DatabaseConfig
}

// Archetype implements Config.
func (*HTTPConfig) Archetype() string { return "http" }
