package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

// NormalizeTitleInput is the input schema for the normalize_title tool.
type NormalizeTitleInput struct {
	Titles   []string `json:"titles" jsonschema:"class titles to normalise"`
	Category bool     `json:"category,omitempty" jsonschema:"also classify each title"`
	Detailed bool     `json:"detailed,omitempty" jsonschema:"use the detailed category taxonomy"`
}

// NormalizeTitleOutput is the output schema for the normalize_title tool.
type NormalizeTitleOutput struct {
	Titles []TitleOutput `json:"titles"`
}

// TitleOutput is one normalised title.
type TitleOutput struct {
	Original   string `json:"original"`
	Normalized string `json:"normalized"`
	Category   string `json:"category,omitempty"`
}

// ConvertInput is the input schema for the convert_submission tool.
// Exactly one of Path and Text is used; Text wins when both are set.
type ConvertInput struct {
	Path string `json:"path,omitempty" jsonschema:"path of a submission text file"`
	Text string `json:"text,omitempty" jsonschema:"raw submission text"`
}

// ConvertOutput is the output schema for the convert_submission tool.
type ConvertOutput struct {
	AccessionNumber string              `json:"accession_number"`
	Header          map[string]string   `json:"header"`
	Body            []domain.BodyField  `json:"body"`
	Holdings        []map[string]string `json:"holdings"`
	Skipped         []string            `json:"skipped,omitempty"`
}

// ListFilingsInput is the input schema for the list_filings tool.
type ListFilingsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of filings to return (default 50)"`
}

// ListFilingsOutput is the output schema for the list_filings tool.
type ListFilingsOutput struct {
	Filings []domain.StoredFiling `json:"filings"`
	Count   int                   `json:"count"`
}

// FindCUSIPInput is the input schema for the find_cusip tool.
type FindCUSIPInput struct {
	CUSIP string `json:"cusip" jsonschema:"the nine-character CUSIP to look up"`
}

// FindCUSIPOutput is the output schema for the find_cusip tool.
type FindCUSIPOutput struct {
	Matches []domain.HoldingMatch `json:"matches"`
	Count   int                   `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "normalize_title",
		Description: "Normalise 13F security class titles (warrant expiry notation) and optionally classify them",
	}, s.handleNormalizeTitle)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "convert_submission",
		Description: "Parse a 13F-HR submission into header, body and holdings records",
	}, s.handleConvert)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_filings",
		Description: "List filings recorded in the catalog, newest period first",
	}, s.handleListFilings)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_cusip",
		Description: "Find every catalogued holding of one security by CUSIP",
	}, s.handleFindCUSIP)
}

func (s *Server) handleNormalizeTitle(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input NormalizeTitleInput,
) (*mcp.CallToolResult, NormalizeTitleOutput, error) {
	normalized := s.ports.Titles.NormalizeAll(input.Titles)

	output := NormalizeTitleOutput{Titles: make([]TitleOutput, len(input.Titles))}
	for i, title := range input.Titles {
		output.Titles[i] = TitleOutput{Original: title, Normalized: normalized[i]}
		if input.Category {
			output.Titles[i].Category = s.ports.Titles.Classify(title, input.Detailed)
		}
	}
	return nil, output, nil
}

func (s *Server) handleConvert(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConvertInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	if s.ports.Conversion == nil {
		return nil, ConvertOutput{}, ErrServiceUnavailable
	}

	var conv *domain.Conversion
	var err error
	switch {
	case input.Text != "":
		conv, err = s.ports.Conversion.Convert(ctx, input.Text)
	case input.Path != "":
		conv, err = s.ports.Conversion.ConvertFile(ctx, input.Path)
	default:
		return nil, ConvertOutput{}, errors.New("either path or text is required")
	}
	if err != nil {
		return nil, ConvertOutput{}, err
	}

	output := ConvertOutput{
		AccessionNumber: conv.AccessionNumber(),
		Body:            conv.BodyFields,
		Holdings:        conv.Holdings.Records(),
	}
	if records := conv.Header.Records(); len(records) > 0 {
		output.Header = records[0]
	}
	for _, d := range conv.Diagnostics {
		output.Skipped = append(output.Skipped, d.String())
	}
	return nil, output, nil
}

func (s *Server) handleListFilings(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListFilingsInput,
) (*mcp.CallToolResult, ListFilingsOutput, error) {
	if s.ports.Catalog == nil {
		return nil, ListFilingsOutput{}, ErrServiceUnavailable
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}

	filings, err := s.ports.Catalog.ListFilings(ctx)
	if err != nil {
		return nil, ListFilingsOutput{}, err
	}
	if len(filings) > limit {
		filings = filings[:limit]
	}
	return nil, ListFilingsOutput{Filings: filings, Count: len(filings)}, nil
}

func (s *Server) handleFindCUSIP(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindCUSIPInput,
) (*mcp.CallToolResult, FindCUSIPOutput, error) {
	if s.ports.Catalog == nil {
		return nil, FindCUSIPOutput{}, ErrServiceUnavailable
	}

	matches, err := s.ports.Catalog.FindByCUSIP(ctx, input.CUSIP)
	if err != nil {
		return nil, FindCUSIPOutput{}, err
	}
	return nil, FindCUSIPOutput{Matches: matches, Count: len(matches)}, nil
}
