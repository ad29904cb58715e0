/*
Package tools declares the five Velixar memory tools and dispatches their
invocations to the remote memory API. Each tool maps to exactly one HTTP
call, and every outcome – success or failure – is rendered as a text result
rather than a protocol-level fault.
*/
package tools

import "github.com/mark3labs/mcp-go/mcp"

// Tool names, the closed set the dispatcher switches over.
const (
	ToolStoreMemory    = "store_memory"
	ToolSearchMemories = "search_memories"
	ToolListMemories   = "list_memories"
	ToolUpdateMemory   = "update_memory"
	ToolDeleteMemory   = "delete_memory"
)

// ---------------------------------------------------------------------------
// Tool builders (schema only, advisory – dispatch re-validates what it needs)
// ---------------------------------------------------------------------------

func buildStoreMemoryTool() mcp.Tool {
	return mcp.NewTool(
		ToolStoreMemory,
		mcp.WithDescription("Stores a memory in Velixar and returns its identifier."),
		mcp.WithString("content",
			mcp.Description("Textual content to remember"),
			mcp.Required(),
		),
		mcp.WithNumber("tier",
			mcp.Description("Retention tier: 0=pinned, 1=session, 2=long-term (default), 3=organization-shared"),
			mcp.Min(0),
			mcp.Max(3),
		),
		mcp.WithArray("tags",
			mcp.Description("Tags to attach to the memory"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

func buildSearchMemoriesTool() mcp.Tool {
	return mcp.NewTool(
		ToolSearchMemories,
		mcp.WithDescription("Performs a semantic search across the stored memories and returns the best matches with relevance scores."),
		mcp.WithString("query",
			mcp.Description("Natural-language search query"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of matches to return"),
		),
	)
}

func buildListMemoriesTool() mcp.Tool {
	return mcp.NewTool(
		ToolListMemories,
		mcp.WithDescription("Lists stored memories, newest first, with cursor-based pagination."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of memories per page"),
		),
		mcp.WithString("cursor",
			mcp.Description("Opaque cursor from a previous list_memories call"),
		),
	)
}

func buildUpdateMemoryTool() mcp.Tool {
	return mcp.NewTool(
		ToolUpdateMemory,
		mcp.WithDescription("Updates the content and/or tags of an existing memory. Omitted fields are left unchanged."),
		mcp.WithString("id",
			mcp.Description("Identifier of the memory to update"),
			mcp.Required(),
		),
		mcp.WithString("content",
			mcp.Description("Replacement content"),
		),
		mcp.WithArray("tags",
			mcp.Description("Replacement tags"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

func buildDeleteMemoryTool() mcp.Tool {
	return mcp.NewTool(
		ToolDeleteMemory,
		mcp.WithDescription("Deletes a memory permanently."),
		mcp.WithString("id",
			mcp.Description("Identifier of the memory to delete"),
			mcp.Required(),
		),
	)
}
