// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to run dial-steered retrieval via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/dialrag/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs dialrag as an MCP (Model Context Protocol) server, exposing
dial-steered retrieval, index rebuilding, and steering vector learning
over stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  dialrag mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "dialrag": {
  #       "command": "dialrag",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	engine, _, err := setupEngine()
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer(
		"Dialrag Retrieval Engine",
		"0.1.0",
	)
	mcp.RegisterTools(server, engine)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Dialrag MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
