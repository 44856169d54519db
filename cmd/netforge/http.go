package main

import (
	"github.com/spf13/cobra"

	"github.com/netforge/netforge/gen"
	"github.com/netforge/netforge/load"
)

var httpConfigPath string

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Generate an HTTP service project",
	RunE: func(cmd *cobra.Command, args []string) error {
		build := func() (gen.Config, error) {
			return load.HTTPService(httpConfigPath)
		}
		return generate(newLogger(), build, httpConfigPath)
	},
}

func init() {
	httpCmd.Flags().StringVar(&httpConfigPath, "config", "", "path to a YAML config")
	_ = httpCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(httpCmd)
}
