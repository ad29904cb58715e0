/*
Package resources exposes the recalled memories as a readable MCP resource.
*/
package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/theapemachine/velixar-mcp/pkg/recall"
)

// RecentMemoriesURI identifies the single synthetic resource this server
// advertises.
const RecentMemoriesURI = "velixar://memories/recent"

// noMemoriesMessage mirrors the placeholder the tools render for empty
// result sets.
const noMemoriesMessage = "No memories found."

/*
RecentMemories renders the prefetched snapshot. The snapshot cell and the
recaller that writes it are both injected at construction; the provider
itself never mutates the slot.
*/
type RecentMemories struct {
	rec  *recall.Recaller
	snap *recall.Snapshot
}

func NewRecentMemories(rec *recall.Recaller, snap *recall.Snapshot) *RecentMemories {
	return &RecentMemories{
		rec:  rec,
		snap: snap,
	}
}

// Resource returns the MCP descriptor for the recent-memories resource.
func (r *RecentMemories) Resource() mcp.Resource {
	return mcp.NewResource(
		RecentMemoriesURI,
		"Recent Memories",
		mcp.WithResourceDescription("The most recently stored memories for the configured user"),
		mcp.WithMIMEType("text/plain"),
	)
}

/*
Read serves a resource read. A read arriving before the startup prefetch has
resolved triggers an on-demand fetch first, so the caller never observes the
unfetched state.
*/
func (r *RecentMemories) Read(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if req.Params.URI != RecentMemoriesURI {
		return nil, fmt.Errorf("unknown resource: %s", req.Params.URI)
	}

	r.rec.Ensure(ctx)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      RecentMemoriesURI,
			MIMEType: "text/plain",
			Text:     r.render(),
		},
	}, nil
}

func (r *RecentMemories) render() string {
	memories := r.snap.Memories()

	if len(memories) == 0 {
		return noMemoriesMessage
	}

	entries := make([]string, 0, len(memories))

	for _, memory := range memories {
		entries = append(entries, fmt.Sprintf(
			"%s [%s] (tier %d)",
			memory.Content,
			strings.Join(memory.Tags, ", "),
			memory.Tier,
		))
	}

	return strings.Join(entries, "\n---\n")
}
