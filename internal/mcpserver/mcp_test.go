package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quallaa/quallaa-cli/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer("test", nil, store.NewMemStore())
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func establish(t *testing.T, s *Server) {
	t.Helper()
	res, _, err := s.handleEstablishBaseline(context.Background(), nil, EstablishBaselineInput{
		DevelopmentCost:        12000,
		CurrentSaaSSpend:       1500,
		TeamSize:               4,
		CurrentProcessingHours: 120,
	})
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
}

func TestEstablishBaselineTool(t *testing.T) {
	s := newTestServer(t)
	establish(t, s)

	res, _, err := s.handleGetBaseline(context.Background(), nil, GetBaselineInput{})
	require.NoError(t, err)
	require.False(t, res.IsError)

	out := resultText(t, res)
	assert.Contains(t, out, "development_cost")
	assert.Contains(t, out, "health")
}

func TestEstablishBaselineToolValidation(t *testing.T) {
	s := newTestServer(t)
	res, _, err := s.handleEstablishBaseline(context.Background(), nil, EstablishBaselineInput{
		DevelopmentCost: -5,
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "developmentCost")
}

func TestGetBaselineToolMissing(t *testing.T) {
	s := newTestServer(t)
	res, _, err := s.handleGetBaseline(context.Background(), nil, GetBaselineInput{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "no baseline")
}

func TestCalculateROIToolRequiresBaseline(t *testing.T) {
	s := newTestServer(t)
	res, _, err := s.handleCalculateROI(context.Background(), nil, CalculateROIInput{MonthsInOperation: 6})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "baseline required")
}

func TestCalculateROITool(t *testing.T) {
	s := newTestServer(t)
	establish(t, s)

	res, _, err := s.handleCalculateROI(context.Background(), nil, CalculateROIInput{
		MonthsInOperation:      6,
		CurrentSaaSSpend:       200,
		CurrentProcessingHours: 30,
		EmployeeAdoptionRate:   0.9,
	})
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	out := resultText(t, res)
	assert.Contains(t, out, "financial")
	assert.Contains(t, out, "confidence_interval")
}

func TestCalculateROIToolSnapshotAndTrends(t *testing.T) {
	s := newTestServer(t)
	establish(t, s)

	for _, hours := range []float64{60, 40, 20} {
		res, _, err := s.handleCalculateROI(context.Background(), nil, CalculateROIInput{
			ProjectID:              "recon",
			MonthsInOperation:      6,
			CurrentProcessingHours: hours,
			Snapshot:               true,
		})
		require.NoError(t, err)
		require.False(t, res.IsError, resultText(t, res))
	}

	res, _, err := s.handleAnalyzeTrends(context.Background(), nil, AnalyzeTrendsInput{
		ProjectID:   "recon",
		MetricPaths: []string{"productivity.timeSavedHours"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	out := resultText(t, res)
	assert.Contains(t, out, "productivity.timeSavedHours")
	assert.Contains(t, out, "improving")
}

func TestAnalyzeTrendsToolInsufficientSnapshots(t *testing.T) {
	s := newTestServer(t)
	establish(t, s)

	res, _, err := s.handleAnalyzeTrends(context.Background(), nil, AnalyzeTrendsInput{ProjectID: "empty"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "At least 2 snapshots")
}

func TestAnalyzeTrendsToolDefaultsToKnownPaths(t *testing.T) {
	s := newTestServer(t)
	establish(t, s)

	for range [2]struct{}{} {
		res, _, err := s.handleCalculateROI(context.Background(), nil, CalculateROIInput{
			MonthsInOperation: 6,
			Snapshot:          true,
		})
		require.NoError(t, err)
		require.False(t, res.IsError, resultText(t, res))
	}

	res, _, err := s.handleAnalyzeTrends(context.Background(), nil, AnalyzeTrendsInput{})
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	out := resultText(t, res)
	assert.Contains(t, out, "financial.currentROI")
	assert.Contains(t, out, "quality.defectReduction")
}

func TestToolErrorShape(t *testing.T) {
	res, _, err := toolError("boom")
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.True(t, strings.HasPrefix(resultText(t, res), "Error: "))
}
