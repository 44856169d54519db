package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/netforge/netforge/gen"
	"github.com/netforge/netforge/load"
)

var (
	// Persistent flags shared by all generate commands.
	outDirFlag  string
	watchFlag   bool
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "netforge",
	Short: "netforge generates network service projects",
	Long: `netforge turns a small YAML config into a complete, buildable Go project
for one of three service archetypes: a TCP echo server, a TCP worker-pool
server, or an HTTP service with static routes and optional database wiring.

Generation is deterministic: the same config always produces the same
files, and regeneration overwrites only the files netforge itself writes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&outDirFlag, "out-dir", "", "override the target directory")
	rootCmd.PersistentFlags().BoolVar(&watchFlag, "watch", false, "keep running and regenerate whenever the config file changes")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log per-file emission events")
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verboseFlag {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// runOne executes a single generation run: resolve the target directory,
// then validate, generate and emit. Each run gets its own id so batch and
// watch output stays attributable.
func runOne(log zerolog.Logger, cfg gen.Config, cliOutDir string) error {
	p := cfg.Project()
	p.OutDir = load.ResolveOutDir(cliOutDir, p.OutDir, p.Name)
	runLog := log.With().
		Str("run_id", uuid.NewString()).
		Str("archetype", cfg.Archetype()).
		Str("project", p.Name).
		Logger()
	if err := gen.Run(cfg, gen.WithLogger(runLog)); err != nil {
		return err
	}
	runLog.Info().Str("out_dir", p.OutDir).Msg("project generated")
	return nil
}

// generate runs build+runOne once, or in a watch loop when --watch is set
// and the config comes from a file.
func generate(log zerolog.Logger, build func() (gen.Config, error), configPath string) error {
	run := func() error {
		cfg, err := build()
		if err != nil {
			return err
		}
		return runOne(log, cfg, outDirFlag)
	}
	if watchFlag {
		if configPath == "" {
			return fmt.Errorf("--watch requires --config")
		}
		return watchConfig(log, configPath, run)
	}
	return run()
}
