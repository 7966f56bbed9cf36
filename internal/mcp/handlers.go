package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Abdul234Malik/NELFUND/internal/agent"
	"github.com/Abdul234Malik/NELFUND/internal/vectordb"
)

// handleAsk runs the full question answering pipeline.
func (s *Server) handleAsk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	result := s.pipeline.Handle(ctx, question)
	return mcp.NewToolResultText(formatAnswer(result)), nil
}

// handleSearchDocuments performs semantic search over the policy documents.
func (s *Server) handleSearchDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", agent.DefaultTopK)
	if limit <= 0 {
		limit = agent.DefaultTopK
	}

	var filter *vectordb.SearchFilter
	if source := request.GetString("source", ""); source != "" {
		filter = &vectordb.SearchFilter{Source: &source}
	}

	results, err := s.store.Search(ctx, query, limit, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No results found. The policy documents may not be indexed yet. Run `nelfund ingest` to index them."), nil
	}

	return mcp.NewToolResultText(vectordb.FormatResults(results)), nil
}

// formatAnswer renders a pipeline result with its citations.
func formatAnswer(result agent.Result) string {
	if len(result.Sources) == 0 {
		return result.Answer
	}

	var sb strings.Builder
	sb.WriteString(result.Answer)
	sb.WriteString("\n\nSources:\n")
	for _, src := range result.Sources {
		sb.WriteString("- ")
		sb.WriteString(src)
		sb.WriteString("\n")
	}
	return sb.String()
}
