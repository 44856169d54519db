package main

import (
	"github.com/spf13/cobra"

	"github.com/netforge/netforge/gen"
	"github.com/netforge/netforge/load"
)

var workerConfigPath string

var tcpWorkerCmd = &cobra.Command{
	Use:   "tcp-worker",
	Short: "Generate a TCP worker-pool server project",
	RunE: func(cmd *cobra.Command, args []string) error {
		build := func() (gen.Config, error) {
			return load.TCPWorker(workerConfigPath)
		}
		return generate(newLogger(), build, workerConfigPath)
	},
}

func init() {
	tcpWorkerCmd.Flags().StringVar(&workerConfigPath, "config", "", "path to a YAML config")
	_ = tcpWorkerCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(tcpWorkerCmd)
}
