package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dgallion1/citeshield/internal/sections"
)

// ToolInfo describes one registered tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Tools lists the tools every brief server registers, in registration order.
var Tools = []ToolInfo{
	{
		Name: "list_brief_sections",
		Description: "List the sections of the brief one page at a time. Each row gives the " +
			"section index, its line range and a short preview. Pages are 0-based.",
	},
	{
		Name: "get_brief_section",
		Description: "Return the full text of one section by index. Every line carries its " +
			"original line number so it can be cited exactly.",
	},
	{
		Name: "search_brief_sections",
		Description: "Rank sections by keyword relevance to a query and return the best " +
			"matches with line ranges, scores and matching lines.",
	},
}

// ListSectionsInput is the input schema for list_brief_sections.
type ListSectionsInput struct {
	Page     int `json:"page,omitempty" jsonschema:"0-based page number (default 0)"`
	PageSize int `json:"page_size,omitempty" jsonschema:"sections per page (default 5)"`
}

// ListSectionsOutput is the output schema for list_brief_sections.
type ListSectionsOutput struct {
	Page     int                `json:"page"`
	Total    int                `json:"total"`
	Sections []sections.Summary `json:"sections"`
}

// GetSectionInput is the input schema for get_brief_section.
type GetSectionInput struct {
	SectionIndex int `json:"section_index" jsonschema:"0-based index of the section to return"`
}

// GetSectionOutput is the output schema for get_brief_section.
type GetSectionOutput struct {
	Index     int    `json:"index"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Text      string `json:"text"`
}

// SearchSectionsInput is the input schema for search_brief_sections.
type SearchSectionsInput struct {
	Query      string `json:"query" jsonschema:"keywords to look for"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of sections to return (default 3)"`
}

// SearchSectionsOutput is the output schema for search_brief_sections.
type SearchSectionsOutput struct {
	Query   string            `json:"query"`
	Results []sections.Result `json:"results"`
	Count   int               `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{Name: Tools[0].Name, Description: Tools[0].Description}, s.handleListSections)
	mcp.AddTool(s.server, &mcp.Tool{Name: Tools[1].Name, Description: Tools[1].Description}, s.handleGetSection)
	mcp.AddTool(s.server, &mcp.Tool{Name: Tools[2].Name, Description: Tools[2].Description}, s.handleSearchSections)
}

func (s *Server) handleListSections(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListSectionsInput,
) (*mcp.CallToolResult, ListSectionsOutput, error) {
	defer s.ports.Stats.Time("list")()

	rows, err := s.ports.Store.List(input.Page, input.PageSize)
	if err != nil {
		s.log.Debug("list sections rejected", "error", err)
		return nil, ListSectionsOutput{}, err
	}

	output := ListSectionsOutput{
		Page:     input.Page,
		Total:    s.ports.Store.Len(),
		Sections: rows,
	}
	return textResult(sections.FormatSummaries(rows)), output, nil
}

func (s *Server) handleGetSection(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetSectionInput,
) (*mcp.CallToolResult, GetSectionOutput, error) {
	defer s.ports.Stats.Time("get")()

	c, err := s.ports.Store.Get(input.SectionIndex)
	if err != nil {
		s.log.Debug("get section rejected", "index", input.SectionIndex, "error", err)
		return nil, GetSectionOutput{}, err
	}

	output := GetSectionOutput{
		Index:     c.Index,
		StartLine: c.StartLine,
		EndLine:   c.EndLine,
		Text:      c.Text,
	}
	return textResult(sections.FormatSection(c)), output, nil
}

func (s *Server) handleSearchSections(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SearchSectionsInput,
) (*mcp.CallToolResult, SearchSectionsOutput, error) {
	defer s.ports.Stats.Time("search")()

	results, err := s.ports.Store.Search(input.Query, input.MaxResults)
	if err != nil {
		s.log.Debug("search rejected", "query", input.Query, "error", err)
		return nil, SearchSectionsOutput{}, err
	}

	output := SearchSectionsOutput{
		Query:   input.Query,
		Results: results,
		Count:   len(results),
	}
	return textResult(sections.FormatResults(results)), output, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
