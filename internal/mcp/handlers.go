// ABOUTME: MCP tool handler implementations for the dialrag server
// ABOUTME: Thin argument-parsing layer over the retrieval engine
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/dialrag/internal/core"
	"github.com/harper/dialrag/internal/models"
	"github.com/harper/dialrag/internal/pairs"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	engine *core.Engine
}

// RetrievePassages handles the retrieve_passages tool
func (h *Handlers) RetrievePassages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	req := core.RetrieveRequest{
		Query:        query,
		Dials:        dialsFromRequest(request),
		TopK:         request.GetInt("top_k", core.DefaultTopK),
		UseReranking: request.GetBool("use_reranking", true),
		UseSteering:  request.GetBool("use_steering", false),
	}

	resp, err := h.engine.Retrieve(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("retrieval failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(resp)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// RebuildIndex handles the rebuild_index tool
func (h *Handlers) RebuildIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.engine.RebuildIndex(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("index rebuild failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(stats)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// LearnSteeringVectors handles the learn_steering_vectors tool
func (h *Handlers) LearnSteeringVectors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pairsFile, err := request.RequireString("pairs_file")
	if err != nil {
		return mcp.NewToolResultError("pairs_file argument is required and must be a string"), nil
	}

	set, err := pairs.LoadFile(pairsFile)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading pairs: %v", err)), nil
	}

	coll, err := h.engine.LearnVectors(ctx, set, dimensionsFromRequest(request))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("learning failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"pairs_used":         set.Len(),
		"learned_dimensions": coll.Dimensions(),
		"vectors":            coll.Vectors(),
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetEngineStats handles the get_engine_stats tool
func (h *Handlers) GetEngineStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(h.engine.Stats())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// dialsFromRequest extracts the dials object from request arguments.
// Non-numeric values are skipped; the engine clamps out-of-range ones.
func dialsFromRequest(request mcp.CallToolRequest) models.DialVector {
	dials := models.DialVector{}

	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return dials
	}
	raw, ok := args["dials"].(map[string]any)
	if !ok {
		return dials
	}

	for dim, val := range raw {
		if f, ok := val.(float64); ok {
			dials[dim] = f
		}
	}
	return dials
}

// dimensionsFromRequest extracts the optional dimensions array.
func dimensionsFromRequest(request mcp.CallToolRequest) []string {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := args["dimensions"].([]interface{})
	if !ok {
		return nil
	}

	dims := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			dims = append(dims, s)
		}
	}
	return dims
}
