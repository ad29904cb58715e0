package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cohesivestack/valgo"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/theapemachine/velixar-mcp/pkg/velixar"
)

// noMemoriesMessage is the fixed placeholder for empty result sets.
const noMemoriesMessage = "No memories found."

// listContentLimit caps how much of each memory's content the list rendering
// shows before truncating.
const listContentLimit = 120

/*
MemoryService is the slice of the velixar client the handlers depend on.
*/
type MemoryService interface {
	CreateMemory(ctx context.Context, req velixar.CreateMemoryRequest) (string, error)
	SearchMemories(ctx context.Context, query, userID string, limit int) ([]velixar.Memory, error)
	ListMemories(ctx context.Context, userID string, limit int, cursor string) (*velixar.ListMemoriesResponse, error)
	UpdateMemory(ctx context.Context, id string, req velixar.UpdateMemoryRequest) error
	DeleteMemory(ctx context.Context, id string) error
}

/*
MemoryTools dispatches tool invocations against the memory service for a
single configured user scope.
*/
type MemoryTools struct {
	svc    MemoryService
	userID string
}

func NewMemoryTools(svc MemoryService, userID string) *MemoryTools {
	return &MemoryTools{
		svc:    svc,
		userID: userID,
	}
}

// Register attaches the five memory tools to the supplied MCP server.
func (t *MemoryTools) Register(srv *server.MCPServer) {
	srv.AddTool(buildStoreMemoryTool(), t.handler(ToolStoreMemory))
	srv.AddTool(buildSearchMemoriesTool(), t.handler(ToolSearchMemories))
	srv.AddTool(buildListMemoriesTool(), t.handler(ToolListMemories))
	srv.AddTool(buildUpdateMemoryTool(), t.handler(ToolUpdateMemory))
	srv.AddTool(buildDeleteMemoryTool(), t.handler(ToolDeleteMemory))
}

func (t *MemoryTools) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return t.Dispatch(ctx, name, req), nil
	}
}

/*
Dispatch routes one invocation to its backend call and renders the outcome.
Errors never escape this boundary: every failure becomes a flagged text
result so the protocol layer always sees one response per request.
*/
func (t *MemoryTools) Dispatch(ctx context.Context, name string, req mcp.CallToolRequest) *mcp.CallToolResult {
	call := uuid.NewString()[:8]

	text, err := t.dispatch(ctx, name, req)

	if err != nil {
		msg := err.Error()

		if strings.Contains(msg, "tool") || strings.Contains(msg, "not found") {
			msg += "\n\nNote: memory tools may be unavailable outside a primary invocation context."
		}

		log.Error("tool call failed", "tool", name, "call", call, "error", err)
		return mcp.NewToolResultError("Error: " + msg)
	}

	log.Debug("tool call complete", "tool", name, "call", call)
	return mcp.NewToolResultText(text)
}

func (t *MemoryTools) dispatch(ctx context.Context, name string, req mcp.CallToolRequest) (string, error) {
	switch name {
	case ToolStoreMemory:
		return t.store(ctx, req)
	case ToolSearchMemories:
		return t.search(ctx, req)
	case ToolListMemories:
		return t.list(ctx, req)
	case ToolUpdateMemory:
		return t.update(ctx, req)
	case ToolDeleteMemory:
		return t.delete(ctx, req)
	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

// ---------------------------------------------------------------------------
// Typed argument records, one per operation
// ---------------------------------------------------------------------------

type storeArgs struct {
	Content string   `json:"content"`
	Tier    *int     `json:"tier"`
	Tags    []string `json:"tags"`
}

type searchArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type listArgs struct {
	Limit  int    `json:"limit"`
	Cursor string `json:"cursor"`
}

type updateArgs struct {
	ID      string    `json:"id"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

type deleteArgs struct {
	ID string `json:"id"`
}

// ---------------------------------------------------------------------------
// Operation handlers
// ---------------------------------------------------------------------------

func (t *MemoryTools) store(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	var args storeArgs

	if err := req.BindArguments(&args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	// Tier 0 is a valid explicit value; only apply the default when the
	// argument was absent entirely.
	tier := velixar.TierLongTerm

	if args.Tier != nil {
		tier = *args.Tier
	}

	val := valgo.Is(valgo.String(args.Content, "content").Not().Blank()).
		Is(valgo.Number(tier, "tier").Between(0, 3))

	if !val.Valid() {
		return "", val.Error()
	}

	tags := args.Tags

	if tags == nil {
		tags = []string{}
	}

	id, err := t.svc.CreateMemory(ctx, velixar.CreateMemoryRequest{
		Content: args.Content,
		UserID:  t.userID,
		Tier:    tier,
		Tags:    tags,
	})

	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Memory stored with ID: %s", id), nil
}

func (t *MemoryTools) search(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	var args searchArgs

	if err := req.BindArguments(&args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	val := valgo.Is(valgo.String(args.Query, "query").Not().Blank())

	if !val.Valid() {
		return "", val.Error()
	}

	memories, err := t.svc.SearchMemories(ctx, args.Query, t.userID, args.Limit)

	if err != nil {
		return "", err
	}

	if len(memories) == 0 {
		return noMemoriesMessage, nil
	}

	builder := &strings.Builder{}
	fmt.Fprintf(builder, "Found %d memories:\n", len(memories))

	for _, memory := range memories {
		builder.WriteString("\n- ")
		builder.WriteString(memory.Content)

		if memory.Score != nil {
			fmt.Fprintf(builder, " (relevance: %.2f)", *memory.Score)
		}
	}

	return builder.String(), nil
}

func (t *MemoryTools) list(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	var args listArgs

	if err := req.BindArguments(&args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	page, err := t.svc.ListMemories(ctx, t.userID, args.Limit, args.Cursor)

	if err != nil {
		return "", err
	}

	if len(page.Memories) == 0 {
		return noMemoriesMessage, nil
	}

	builder := &strings.Builder{}
	fmt.Fprintf(builder, "%d memories:\n", len(page.Memories))

	for _, memory := range page.Memories {
		fmt.Fprintf(builder, "\n- %s: %s [%s]",
			memory.ID,
			truncate(memory.Content, listContentLimit),
			strings.Join(memory.Tags, ", "),
		)
	}

	if page.Cursor != "" {
		fmt.Fprintf(builder, "\n\nNext cursor: %s", page.Cursor)
	}

	return builder.String(), nil
}

func (t *MemoryTools) update(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	var args updateArgs

	if err := req.BindArguments(&args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	val := valgo.Is(valgo.String(args.ID, "id").Not().Blank())

	if !val.Valid() {
		return "", val.Error()
	}

	err := t.svc.UpdateMemory(ctx, args.ID, velixar.UpdateMemoryRequest{
		UserID:  t.userID,
		Content: args.Content,
		Tags:    args.Tags,
	})

	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Memory %s updated.", args.ID), nil
}

func (t *MemoryTools) delete(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	var args deleteArgs

	if err := req.BindArguments(&args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	val := valgo.Is(valgo.String(args.ID, "id").Not().Blank())

	if !val.Valid() {
		return "", val.Error()
	}

	if err := t.svc.DeleteMemory(ctx, args.ID); err != nil {
		return "", err
	}

	return fmt.Sprintf("Memory %s deleted.", args.ID), nil
}

// truncate shortens s to at most limit runes, marking the cut with an
// ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)

	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit]) + "..."
}
