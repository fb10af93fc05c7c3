package main

import (
	"github.com/spf13/cobra"

	"github.com/aristath/taskrank/internal/mcpserver"
	"github.com/aristath/taskrank/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task analysis HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return server.New(a.analyzer(), a.logger).Run(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve analysis tools to an MCP client over stdio",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return mcpserver.Serve(a.analyzer())
		},
	}
}
