// Package mcpserver exposes the ROI engine over the Model Context
// Protocol so agents can establish baselines, calculate ROI, and read
// trends without shelling out to the CLI.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quallaa/quallaa-cli/internal/store"
	"github.com/quallaa/quallaa-cli/pkg/config"
)

// Server wraps the MCP server and registers the ROI tools.
type Server struct {
	server *mcp.Server
	cfg    *config.Config
	port   store.Port
}

// NewServer creates an MCP server backed by the given record store.
func NewServer(version string, cfg *config.Config, port store.Port) *Server {
	if version == "" {
		version = "dev"
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "quallaa",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server, cfg: cfg, port: port}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "establish_baseline",
		Description: "Record the pre-automation baseline for ROI measurement: development cost, " +
			"replaced SaaS spend, team size, manual processing hours, and optional quality metrics. " +
			"Overwrites any existing baseline.",
	}, s.handleEstablishBaseline)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "get_baseline",
		Description: "Return the stored baseline along with a completeness health score and " +
			"recommendations for missing measurements.",
	}, s.handleGetBaseline)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "calculate_roi",
		Description: "Calculate ROI from current operational metrics against the stored baseline: " +
			"financial, productivity, and quality metrics with a Monte Carlo confidence interval. " +
			"Optionally persists the result as a snapshot for trend analysis.",
	}, s.handleCalculateROI)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "analyze_trends",
		Description: "Fit linear trends over the stored ROI snapshots of a project. Requires at " +
			"least two snapshots. Defaults to all known metric paths when none are given.",
	}, s.handleAnalyzeTrends)
}
