package functional_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/policyatlas/internal/apiclient"
	"github.com/rpggio/policyatlas/internal/mcp"
	"github.com/rpggio/policyatlas/internal/metrics"
	"github.com/rpggio/policyatlas/internal/testserver"
	"github.com/rpggio/policyatlas/internal/transport"
	"github.com/stretchr/testify/require"
)

// stack is the record service plus an MCP browsing server reading it over
// REST, both on httptest servers.
type stack struct {
	records *testserver.TestServer
	mcpURL  string
}

func newStack(t *testing.T) *stack {
	t.Helper()

	records := testserver.New(t)
	client, err := apiclient.New(records.URL(), 5*time.Second)
	require.NoError(t, err)

	m := metrics.New()
	server := mcp.NewServer(mcp.Config{
		Summaries: client,
		Details:   client,
		Metrics:   m,
		Version:   "test",
	})
	httpServer := httptest.NewServer(transport.NewMCPRouter(server.HTTPHandler(), m, nil))
	t.Cleanup(func() {
		httpServer.Close()
		server.Close()
	})

	return &stack{records: records, mcpURL: httpServer.URL + "/mcp"}
}

func (s *stack) connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{Endpoint: s.mcpURL}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

// callTool calls name and decodes its JSON text content into out.
func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any, out any) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "tools/call %s", name)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "expected text content from %s", name)
	require.False(t, result.IsError, "tool %s failed: %s", name, text.Text)
	require.NoError(t, json.Unmarshal([]byte(text.Text), out))
}

func TestMCP_ListTools(t *testing.T) {
	s := newStack(t)
	session := s.connect(t)

	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{
		"browse_case_studies",
		"search_case_studies",
		"toggle_region",
		"toggle_quality",
		"set_sort",
		"apply_filters",
		"reset_filters",
		"set_page",
		"next_page",
		"prev_page",
		"select_case_study",
		"clear_selection",
		"get_selection",
		"get_stats",
		"list_filters",
	} {
		require.True(t, names[want], "missing tool %s", want)
	}
}

func TestMCP_BrowseOverRecordService(t *testing.T) {
	s := newStack(t)
	session := s.connect(t)

	var view mcp.ViewResponse
	callTool(t, session, "browse_case_studies", nil, &view)
	require.Equal(t, 8, view.TotalMatches)
	require.Equal(t, 2, view.TotalPages)
	require.Len(t, view.Items, 6)

	callTool(t, session, "toggle_region", map[string]any{"region": "Asia Pacific"}, &view)
	require.Equal(t, 2, view.TotalMatches)
	require.False(t, view.ShowPager)

	callTool(t, session, "search_case_studies", map[string]any{"keyword": "no such policy"}, &view)
	require.True(t, view.Empty)
	require.Empty(t, view.Items)
	require.Equal(t, 1, view.Page)
}

func TestMCP_SelectFetchesDetail(t *testing.T) {
	s := newStack(t)
	session := s.connect(t)

	var sel mcp.SelectionResponse
	callTool(t, session, "select_case_study", map[string]any{"id": "eu-ai-act"}, &sel)
	require.True(t, sel.Applied)
	require.NotNil(t, sel.State.Detail)
	require.Equal(t, "EU", sel.State.Detail.Country)
	require.NotEmpty(t, sel.State.Detail.Outcomes)

	callTool(t, session, "select_case_study", map[string]any{"id": "missing"}, &sel)
	require.False(t, sel.Applied)
	require.NotNil(t, sel.Error)
	require.Equal(t, "CASE_STUDY_NOT_FOUND", sel.Error.Code)
	require.Equal(t, "eu-ai-act", sel.State.ID)
}

func TestMCP_HTTPSessionsKeepSeparateCriteria(t *testing.T) {
	s := newStack(t)
	first := s.connect(t)
	second := s.connect(t)

	var view mcp.ViewResponse
	callTool(t, first, "toggle_quality", map[string]any{"quality": "high"}, &view)
	require.Equal(t, 2, view.TotalMatches)

	callTool(t, second, "browse_case_studies", nil, &view)
	require.Equal(t, 8, view.TotalMatches)

	callTool(t, first, "next_page", nil, &view)
	require.Equal(t, 2, view.TotalMatches)
	require.Equal(t, 1, view.Page)
}

func TestMCP_MetaSessionIDCannotReachOtherConnection(t *testing.T) {
	s := newStack(t)
	victim := s.connect(t)
	other := s.connect(t)
	require.NotEmpty(t, victim.ID())

	var view mcp.ViewResponse
	callTool(t, victim, "toggle_region", map[string]any{"region": "Africa"}, &view)
	require.Equal(t, 2, view.TotalMatches)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	result, err := other.CallTool(ctx, &sdkmcp.CallToolParams{
		Meta: sdkmcp.Meta{"session_id": victim.ID()},
		Name: "reset_filters",
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	callTool(t, victim, "browse_case_studies", nil, &view)
	require.Equal(t, 2, view.TotalMatches, "another connection reset this session's filters")
}

func TestMCP_StatsIgnoreFilters(t *testing.T) {
	s := newStack(t)
	session := s.connect(t)

	var view mcp.ViewResponse
	callTool(t, session, "toggle_region", map[string]any{"region": "Africa"}, &view)

	var stats mcp.StatsResponse
	callTool(t, session, "get_stats", nil, &stats)
	require.Equal(t, 8, stats.TotalStudies)
	require.Equal(t, 5, stats.Regions)
	require.Empty(t, stats.LoadError)
}
