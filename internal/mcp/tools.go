// ABOUTME: MCP tool definitions and registration for the dialrag server
// ABOUTME: Defines JSON schemas for the retrieval, indexing, and learning tools
package mcp

import (
	"github.com/harper/dialrag/internal/core"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, engine *core.Engine) *Handlers {
	handlers := &Handlers{engine: engine}

	// 1. retrieve_passages - dial-steered passage retrieval
	server.AddTool(mcp.Tool{
		Name:        "retrieve_passages",
		Description: "Retrieve passages relevant to a query, steered and reranked by emotional dial settings (love, commitment, trust, belonging, growth; each 0.0-1.0).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query for passage retrieval",
				},
				"dials": map[string]interface{}{
					"type":        "object",
					"description": "Dial settings per dimension, 0.0-1.0 (0.5 is neutral). Unset dimensions default to neutral.",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Number of passages to return (default: 5)",
					"default":     5,
				},
				"use_reranking": map[string]interface{}{
					"type":        "boolean",
					"description": "Blend dial alignment into the ranking (default: true)",
					"default":     true,
				},
				"use_steering": map[string]interface{}{
					"type":        "boolean",
					"description": "Steer the query embedding with learned vectors (default: false)",
					"default":     false,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.RetrievePassages)

	// 2. rebuild_index - re-chunk and re-embed the article directory
	server.AddTool(mcp.Tool{
		Name:        "rebuild_index",
		Description: "Rebuild the passage index from the configured articles directory. The previous index stays live until the rebuild completes.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.RebuildIndex)

	// 3. learn_steering_vectors - learn dial directions from contrastive pairs
	server.AddTool(mcp.Tool{
		Name:        "learn_steering_vectors",
		Description: "Learn steering vectors from a CSV file of contrastive text pairs. Replaces any previously learned vectors.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"pairs_file": map[string]interface{}{
					"type":        "string",
					"description": "Path to the contrastive pairs CSV file",
				},
				"dimensions": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Dimension names to learn, primary first (default: the five canonical dimensions)",
				},
			},
			Required: []string{"pairs_file"},
		},
	}, handlers.LearnSteeringVectors)

	// 4. get_engine_stats - current index and vector generations
	server.AddTool(mcp.Tool{
		Name:        "get_engine_stats",
		Description: "Get statistics for the current passage index and learned steering vectors.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetEngineStats)

	return handlers
}
