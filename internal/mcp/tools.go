package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/policyatlas/internal/browse"
	"github.com/rpggio/policyatlas/internal/domain/casestudy"
)

// sessionHandler is a tool body that operates on the caller's browse session.
type sessionHandler[In any] func(ctx context.Context, sess *browse.Session, in In) (any, error)

// addTool registers a tool whose output is returned as structured JSON.
// Tool outputs carry no schema; they are described in the docs resources.
func addTool[In any](s *Server, name, description string, h sessionHandler[In]) {
	sdkmcp.AddTool(s.mcp, &sdkmcp.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		out, err := h(ctx, s.session(ctx, req), in)
		s.cfg.Metrics.IncrementToolCall(name, err)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, out, nil
	})
}

func viewResult(v browse.View) (any, error) {
	return newViewResponse(v), nil
}

func registerTools(s *Server) {
	// Browsing
	addTool(s, "browse_case_studies", "Show the current page of case studies under the active filters",
		func(_ context.Context, sess *browse.Session, _ NoParams) (any, error) {
			return viewResult(sess.View())
		})
	addTool(s, "search_case_studies", "Set the keyword filter and return page 1",
		func(_ context.Context, sess *browse.Session, in SearchParams) (any, error) {
			return viewResult(sess.SetKeyword(in.Keyword))
		})
	addTool(s, "toggle_region", "Add a region to the region filter, or remove it if already selected",
		func(_ context.Context, sess *browse.Session, in ToggleRegionParams) (any, error) {
			return viewResult(sess.ToggleRegion(browse.Region(in.Region)))
		})
	addTool(s, "toggle_quality", "Add a data quality tier to the filter, or remove it if already selected",
		func(_ context.Context, sess *browse.Session, in ToggleQualityParams) (any, error) {
			q, err := casestudy.ParseDataQuality(in.Quality)
			if err != nil {
				return nil, err
			}
			return viewResult(sess.ToggleQuality(q))
		})
	addTool(s, "set_sort", "Choose the result ordering",
		func(_ context.Context, sess *browse.Session, in SetSortParams) (any, error) {
			return viewResult(sess.SetSort(browse.SortKey(in.Sort)))
		})
	addTool(s, "apply_filters", "Replace keyword, regions, qualities and sort in one call",
		func(_ context.Context, sess *browse.Session, in ApplyFiltersParams) (any, error) {
			regions := make([]browse.Region, 0, len(in.Regions))
			for _, r := range in.Regions {
				regions = append(regions, browse.Region(r))
			}
			qualities := make([]casestudy.DataQuality, 0, len(in.Qualities))
			for _, raw := range in.Qualities {
				q, err := casestudy.ParseDataQuality(raw)
				if err != nil {
					return nil, err
				}
				qualities = append(qualities, q)
			}
			return viewResult(sess.ApplyFilters(in.Keyword, regions, qualities, browse.SortKey(in.Sort)))
		})
	addTool(s, "reset_filters", "Clear every filter and return to the date-sorted first page",
		func(_ context.Context, sess *browse.Session, _ NoParams) (any, error) {
			return viewResult(sess.ResetFilters())
		})

	// Paging
	addTool(s, "set_page", "Jump to a page",
		func(_ context.Context, sess *browse.Session, in SetPageParams) (any, error) {
			return viewResult(sess.SetPage(in.Page))
		})
	addTool(s, "next_page", "Advance one page; stays put on the last page",
		func(_ context.Context, sess *browse.Session, _ NoParams) (any, error) {
			return viewResult(sess.NextPage())
		})
	addTool(s, "prev_page", "Go back one page; stays put on page 1",
		func(_ context.Context, sess *browse.Session, _ NoParams) (any, error) {
			return viewResult(sess.PrevPage())
		})

	// Detail
	addTool(s, "select_case_study", "Load the full case study and make it the displayed detail",
		func(ctx context.Context, sess *browse.Session, in SelectParams) (any, error) {
			var out browse.Outcome
			select {
			case out = <-sess.Select(ctx, in.ID):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			resp := SelectionResponse{
				Applied:   out.Applied,
				Discarded: out.Discarded,
				State:     sess.Detail(),
			}
			if out.Err != nil && !out.Discarded {
				resp.Error = toolError(out.Err)
			}
			return resp, nil
		})
	addTool(s, "clear_selection", "Dismiss the displayed case study",
		func(_ context.Context, sess *browse.Session, _ NoParams) (any, error) {
			sess.ClearSelection()
			return sess.Detail(), nil
		})
	addTool(s, "get_selection", "Show the displayed case study, if any",
		func(_ context.Context, sess *browse.Session, _ NoParams) (any, error) {
			return sess.Detail(), nil
		})

	// Reference
	addTool(s, "get_stats", "Aggregate counts over every case study, ignoring filters",
		func(_ context.Context, sess *browse.Session, _ NoParams) (any, error) {
			resp := StatsResponse{Stats: sess.Stats()}
			if err := s.store.LoadErr(); err != nil {
				resp.LoadError = err.Error()
			}
			return resp, nil
		})
	addTool(s, "list_filters", "List region labels, quality tiers and sort keys",
		func(_ context.Context, _ *browse.Session, _ NoParams) (any, error) {
			return newFiltersResponse(), nil
		})
}
