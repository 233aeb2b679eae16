package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/policyatlas/internal/browse"
	"github.com/rpggio/policyatlas/internal/domain/casestudy"
)

const serverInstructions = `policyatlas browses a catalogue of AI-regulation case studies from different countries.

Core concepts:
- Summary: lightweight list record (id, country, policy name, type, data quality, enacted date, tags).
- Detail: full case study (policy, outcomes, comparability metadata), loaded on demand.
- Criteria: keyword + regions + data qualities + sort + page. Each tool call that changes a filter or the sort returns page 1.
- Your browsing state (criteria and selected case study) is kept per MCP session.

Workflow:
1) Orient: list_filters for accepted region labels, quality tiers and sort keys; get_stats for totals.
2) Narrow: search_case_studies, toggle_region, toggle_quality, set_sort (or apply_filters for all at once).
3) Page: next_page / prev_page / set_page. Pages hold 6 items.
4) Drill in: select_case_study(id) loads the full record; get_selection re-reads it; clear_selection dismisses it.
5) Start over: reset_filters.

Docs:
- policyatlas://docs/index
- policyatlas://docs/filtering
- policyatlas://docs/regions
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "policyatlas://docs/index",
		Name:        "docs_index",
		Title:       "policyatlas docs index",
		Description: "Entry point for agent-facing docs.",
		Content: `# policyatlas: Agent Docs Index

## Quick start

1. ` + "`list_filters`" + ` to learn the accepted filter values.
2. ` + "`browse_case_studies`" + ` to see the first page, newest first.
3. Narrow with ` + "`search_case_studies`" + `, ` + "`toggle_region`" + `, ` + "`toggle_quality`" + `.
4. ` + "`select_case_study`" + ` with an ` + "`id`" + ` from a result to read the full record.

## Docs

- ` + "`policyatlas://docs/filtering`" + ` - how filters, sorting and paging combine.
- ` + "`policyatlas://docs/regions`" + ` - which countries each region label covers.

## Result shapes

- Browsing tools return ` + "`{items, page, total_pages, total_matches, empty, show_pager, criteria}`" + `.
- ` + "`select_case_study`" + ` returns ` + "`{applied, discarded, error?, state}`" + ` where ` + "`state.status`" + ` is none, loading or loaded.
`,
	},
	{
		URI:         "policyatlas://docs/filtering",
		Name:        "docs_filtering",
		Title:       "Filtering, sorting and paging",
		Description: "How the browsing criteria combine into a page of results.",
		Content: `# Filtering, sorting and paging

Filters are applied in order and all must pass:

1. **Keyword**: case-insensitive. A record matches when the whole keyword appears in its policy name,
   country or a tag, or when every word of the keyword appears in one of those fields.
   "eu act" matches "EU AI Act".
2. **Regions**: the record's country must belong to one of the selected regions.
   An unknown region label matches nothing.
3. **Data quality**: the record's tier must be one of the selected tiers.

An empty filter allows everything.

Sorting happens after filtering and is stable:

- ` + "`by_date`" + `: most recently enacted first; records without a usable date go last.
- ` + "`by_country`" + ` / ` + "`by_name`" + `: alphabetical, ignoring case.

Pages hold 6 items. Changing any filter or the sort returns you to page 1.
Page numbers outside the available range are clamped.

A failed detail load leaves the previous selection in place and reports the error in ` + "`state.error`" + `.
If you select again before a load finishes, only the latest selection is kept.
`,
	},
	{
		URI:         "policyatlas://docs/regions",
		Name:        "docs_regions",
		Title:       "Region table",
		Description: "Countries covered by each region label.",
		Content:     regionsDoc(),
	},
}

func regionsDoc() string {
	var b strings.Builder
	b.WriteString("# Region table\n\n| Region | Countries |\n|---|---|\n")
	for _, r := range browse.Regions() {
		fmt.Fprintf(&b, "| %s | %s |\n", r, strings.Join(r.Countries(), ", "))
	}
	b.WriteString("\n# Data quality tiers\n\n| Value | Label |\n|---|---|\n")
	for _, q := range casestudy.Qualities() {
		fmt.Fprintf(&b, "| %s | %s |\n", q, q.Label())
	}
	return b.String()
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
