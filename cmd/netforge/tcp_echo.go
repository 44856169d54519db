package main

import (
	"github.com/spf13/cobra"

	"github.com/netforge/netforge/gen"
	"github.com/netforge/netforge/load"
)

var (
	echoConfigPath string
	echoName       string
	echoPort       int
	echoTracing    bool
	echoActions    bool
	echoMaxLineLen int
)

// tcpEchoCmd generates a TCP echo server. It works from a config file, or
// from flags alone for the common line-framed case.
var tcpEchoCmd = &cobra.Command{
	Use:   "tcp-echo",
	Short: "Generate a TCP echo server project",
	RunE: func(cmd *cobra.Command, args []string) error {
		build := func() (gen.Config, error) {
			if echoConfigPath != "" {
				return load.TCPEcho(echoConfigPath)
			}
			var mode gen.ReadMode = gen.Lines{}
			if echoMaxLineLen > 0 {
				limit := echoMaxLineLen
				mode = gen.Lines{MaxLineLen: &limit}
			}
			return &gen.EchoConfig{
				ProjectConfig: gen.ProjectConfig{
					Name:          echoName,
					Port:          echoPort,
					Tracing:       echoTracing,
					GitHubActions: echoActions,
				},
				ReadMode: mode,
			}, nil
		}
		return generate(newLogger(), build, echoConfigPath)
	},
}

func init() {
	tcpEchoCmd.Flags().StringVar(&echoConfigPath, "config", "", "path to a YAML config")
	tcpEchoCmd.Flags().StringVarP(&echoName, "name", "n", "tcp-echo-server", "project name (flag mode)")
	tcpEchoCmd.Flags().IntVarP(&echoPort, "port", "p", 4000, "listen port (flag mode)")
	tcpEchoCmd.Flags().BoolVar(&echoTracing, "tracing", false, "instrument the generated server with structured logs")
	tcpEchoCmd.Flags().BoolVar(&echoActions, "github-actions", false, "add a CI workflow to the generated project")
	tcpEchoCmd.Flags().IntVar(&echoMaxLineLen, "max-line-len", 0, "line length limit in bytes (flag mode, 0 = unbounded)")
	rootCmd.AddCommand(tcpEchoCmd)
}
