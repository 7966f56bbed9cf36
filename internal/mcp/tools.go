package mcp

import "github.com/mark3labs/mcp-go/mcp"

// askTool defines the ask_nelfund MCP tool.
var askTool = mcp.NewTool("ask_nelfund",
	mcp.WithDescription("Ask a question about the Nigerian student loan scheme. Answers are grounded in official NELFUND policy documents and include source citations."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("Natural language question about eligibility, application, repayment, or covered institutions"),
	),
)

// searchDocumentsTool defines the search_documents MCP tool.
var searchDocumentsTool = mcp.NewTool("search_documents",
	mcp.WithDescription("Search the indexed NELFUND policy documents semantically and return the matching passages."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of passages to return (default 4)"),
	),
	mcp.WithString("source",
		mcp.Description("Restrict results to a single document, e.g. NELFUND_FAQs.pdf"),
	),
)
