package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	overviewURI  = "brief://overview"
	annotatedURI = "brief://annotated"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         overviewURI,
		Name:        "overview",
		Description: "Section count and line ranges of the brief",
		MIMEType:    "text/plain",
	}, s.handleOverviewResource)

	s.server.AddResource(&mcp.Resource{
		URI:         annotatedURI,
		Name:        "annotated",
		Description: "The whole brief with every line numbered",
		MIMEType:    "text/plain",
	}, s.handleAnnotatedResource)
}

func (s *Server) handleOverviewResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if req.Params.URI != overviewURI {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return textResource(req.Params.URI, s.ports.Store.Overview()), nil
}

func (s *Server) handleAnnotatedResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if req.Params.URI != annotatedURI {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return textResource(req.Params.URI, s.ports.Store.Annotated()), nil
}

func textResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "text/plain",
				Text:     text,
			},
		},
	}
}
