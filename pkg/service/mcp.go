/*
Package service assembles the MCP server: tool registration, the startup
recall, the recent-memories resource, and the stdio transport.
*/
package service

import (
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/theapemachine/velixar-mcp/pkg/recall"
	"github.com/theapemachine/velixar-mcp/pkg/resources"
	"github.com/theapemachine/velixar-mcp/pkg/tools"
	"github.com/theapemachine/velixar-mcp/pkg/velixar"
)

/*
Config carries the environment-derived settings for one server process.
*/
type Config struct {
	APIKey      string
	APIURL      string
	UserID      string
	AutoRecall  bool
	RecallLimit int
}

/*
MemoryServer is the Velixar MCP server: five memory tools plus, when auto
recall is on, the recent-memories resource.
*/
type MemoryServer struct {
	cfg      Config
	mcp      *server.MCPServer
	rec      *recall.Recaller
	provider *resources.RecentMemories
}

func NewMemoryServer(cfg Config) *MemoryServer {
	client := velixar.NewClient(cfg.APIURL, cfg.APIKey)

	mcpSrv := server.NewMCPServer(
		"velixar-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
	)

	tools.NewMemoryTools(client, cfg.UserID).Register(mcpSrv)

	srv := &MemoryServer{
		cfg: cfg,
		mcp: mcpSrv,
	}

	if cfg.AutoRecall {
		snap := recall.NewSnapshot()
		srv.rec = recall.New(client, cfg.UserID, cfg.RecallLimit, snap)
		srv.provider = resources.NewRecentMemories(srv.rec, snap)
	}

	return srv
}

/*
Start kicks off the background recall (when enabled) and serves MCP over
stdio until the stream closes. The recall is fire-and-forget: serving begins
without waiting for it.
*/
func (s *MemoryServer) Start() error {
	s.startRecall()

	log.Info("serving velixar memory tools over stdio",
		"user", s.cfg.UserID,
		"auto_recall", s.cfg.AutoRecall,
	)

	return server.ServeStdio(s.mcp)
}

/*
startRecall launches the background prefetch and advertises the
recent-memories resource once the snapshot resolves non-empty. An empty or
failed prefetch leaves the resource unadvertised.
*/
func (s *MemoryServer) startRecall() {
	if s.rec == nil {
		return
	}

	s.rec.Start()

	go func() {
		<-s.rec.Done()
		s.advertiseRecall()
	}()
}

func (s *MemoryServer) advertiseRecall() {
	if s.rec.Snapshot().State() != recall.StatePopulated {
		return
	}

	s.mcp.AddResource(s.provider.Resource(), s.provider.Read)
}
