package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/netforge/netforge/gen"
	"github.com/netforge/netforge/load"
)

var (
	batchEcho   []string
	batchWorker []string
	batchHTTP   []string
)

// batchCmd generates several projects in one invocation. Runs are
// independent, so they execute in parallel; each config must name its own
// out_dir (or fall back to its project name) and the directories must not
// overlap.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate several projects in parallel",
	RunE: func(cmd *cobra.Command, args []string) error {
		if outDirFlag != "" {
			return fmt.Errorf("--out-dir does not apply to batch; set out_dir per config")
		}
		if watchFlag {
			return fmt.Errorf("--watch does not apply to batch")
		}
		log := newLogger()

		type job struct {
			path string
			load func(string) (gen.Config, error)
		}
		var jobs []job
		for _, p := range batchEcho {
			jobs = append(jobs, job{p, func(p string) (gen.Config, error) { return load.TCPEcho(p) }})
		}
		for _, p := range batchWorker {
			jobs = append(jobs, job{p, func(p string) (gen.Config, error) { return load.TCPWorker(p) }})
		}
		for _, p := range batchHTTP {
			jobs = append(jobs, job{p, func(p string) (gen.Config, error) { return load.HTTPService(p) }})
		}
		if len(jobs) == 0 {
			return fmt.Errorf("no configs given; use --tcp-echo, --tcp-worker or --http")
		}

		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for _, j := range jobs {
			j := j
			g.Go(func() error {
				cfg, err := j.load(j.path)
				if err != nil {
					return fmt.Errorf("%s: %w", j.path, err)
				}
				if err := runOne(log, cfg, ""); err != nil {
					return fmt.Errorf("%s: %w", j.path, err)
				}
				return nil
			})
		}
		return g.Wait()
	},
}

func init() {
	batchCmd.Flags().StringArrayVar(&batchEcho, "tcp-echo", nil, "TCP echo config file (repeatable)")
	batchCmd.Flags().StringArrayVar(&batchWorker, "tcp-worker", nil, "TCP worker-pool config file (repeatable)")
	batchCmd.Flags().StringArrayVar(&batchHTTP, "http", nil, "HTTP service config file (repeatable)")
	rootCmd.AddCommand(batchCmd)
}
