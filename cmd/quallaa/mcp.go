package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/quallaa/quallaa-cli/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes the ROI engine
as tools LLMs can invoke against the project's stored records.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "quallaa": {
        "command": "quallaa",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - establish_baseline  Record the pre-automation baseline
  - get_baseline        Read the baseline and its health score
  - calculate_roi       Calculate ROI, optionally saving a snapshot
  - analyze_trends      Fit linear trends over snapshot history`,
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	fs, err := openStore(cfg)
	if err != nil {
		return err
	}

	server := mcpserver.NewServer(version, cfg, fs)
	return server.Run(context.Background())
}
