// ABOUTME: Main entry point for the dialrag MCP server with stdio transport
// ABOUTME: Initializes config, embedder, and engine with all tools registered
package main

import (
	"log"
	"os"

	"github.com/harper/dialrag/internal/config"
	"github.com/harper/dialrag/internal/core"
	"github.com/harper/dialrag/internal/llm"
	"github.com/harper/dialrag/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Fatal("OPENAI_API_KEY not set - embeddings are required for retrieval")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	clientCfg := llm.DefaultConfig(cfg.OpenAIKey)
	clientCfg.Timeout = cfg.Timeout
	clientCfg.MaxRetries = cfg.MaxRetries
	clientCfg.RetryDelay = cfg.RetryDelay
	client, err := llm.NewOpenAIClientWithConfig(clientCfg)
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}

	engine := core.NewEngine(client, cfg)
	if err := engine.LoadPersisted(); err != nil {
		log.Fatalf("Failed to load persisted data: %v", err)
	}

	server := mcpserver.NewMCPServer(
		"Dialrag Retrieval Engine",
		"0.1.0",
	)
	mcp.RegisterTools(server, engine)

	log.Println("Dialrag MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
