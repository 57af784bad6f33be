// ABOUTME: MCP resource implementations for fitday.
// ABOUTME: Provides fitday://today and fitday://progress resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI    = "fitday://today"
	progressURI = "fitday://progress"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Workout",
		Description: "The workout planned for today and whether it is done",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         progressURI,
		Name:        "Progress Summary",
		Description: "Monthly completion, weekly goal progress, and streak",
		MIMEType:    "application/json",
	}, s.handleProgressResource)
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	w := s.tracker.TodayWorkout()
	return jsonResource(todayURI, map[string]any{
		"workout":   w,
		"minutes":   w.Minutes(),
		"completed": s.tracker.IsCompletedToday(),
	})
}

func (s *Server) handleProgressResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(progressURI, s.tracker.Summary())
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
