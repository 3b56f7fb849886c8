// Package header parses the submission header into a HeaderRecord.
package header

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.SectionParser = (*Parser)(nil)

// blockBusinessAddress is the heading whose lines form the business address.
const blockBusinessAddress = "BUSINESS ADDRESS"

// labelFields maps normalised header labels to singular header fields.
var labelFields = map[string]domain.HeaderField{
	"ACCESSION NUMBER":                   domain.HeaderAccessionNumber,
	"CONFORMED SUBMISSION TYPE":          domain.HeaderSubmissionType,
	"CONFORMED PERIOD OF REPORT":         domain.HeaderPeriodOfReport,
	"FILED AS OF DATE":                   domain.HeaderFiledDate,
	"COMPANY CONFORMED NAME":             domain.HeaderFilerName,
	"CENTRAL INDEX KEY":                  domain.HeaderCIK,
	"STANDARD INDUSTRIAL CLASSIFICATION": domain.HeaderClassificationCode,
	"IRS NUMBER":                         domain.HeaderIRSNumber,
	"STATE OF INCORPORATION":             domain.HeaderStateOfIncorporation,
	"FISCAL YEAR END":                    domain.HeaderFiscalYearEnd,
	"BUSINESS PHONE":                     domain.HeaderBusinessPhone,
	"SEC FILE NUMBER":                    domain.HeaderFileNumber,
	"FILM NUMBER":                        domain.HeaderFilmNumber,
}

// Former name labels accumulate as pairs.
const (
	labelFormerName     = "FORMER CONFORMED NAME"
	labelNameChangeDate = "DATE OF NAME CHANGE"
)

// addressParts lists the business address labels in join order.
var addressParts = []string{"STREET 1", "STREET 2", "CITY", "STATE", "ZIP"}

// Pre-compiled patterns.
var (
	secHeaderBlock = regexp.MustCompile(`(?is)<SEC-HEADER>(.*?)</SEC-HEADER>`)
	bracketedCode  = regexp.MustCompile(`\[(\d+)\]`)
)

// Parser reads LABEL: value lines. Block headings are tracked by
// indentation so address lines are attributed to the right block.
type Parser struct{}

// New creates a new header parser.
func New() *Parser {
	return &Parser{}
}

// Kind returns the section kind this parser handles.
func (p *Parser) Kind() domain.SectionKind {
	return domain.SectionHeader
}

// Parse extracts the header record. Unrecognised lines are ignored and
// missing fields stay empty, so parsing never fails.
func (p *Parser) Parse(_ context.Context, section domain.Section) (*driven.SectionResult, error) {
	return &driven.SectionResult{
		Kind:   domain.SectionHeader,
		Header: ParseText(section.Content),
	}, nil
}

type block struct {
	indent int
	name   string
}

// ParseText parses header text. When the text contains a closed
// <SEC-HEADER> block only the block's contents are read.
func ParseText(text string) *domain.HeaderRecord {
	if m := secHeaderBlock.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	h := domain.NewHeaderRecord()
	var stack []block
	var address map[string]string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		content := strings.TrimLeft(line, " \t")
		label, value, ok := splitLabel(content)
		if !ok {
			continue
		}

		indent := indentLevel(line[:len(line)-len(content)])

		// A heading closes blocks at its own level; a field line only
		// closes deeper ones, so flat headers keep their block.
		if value == "" {
			stack = popTo(stack, indent-1)
			stack = append(stack, block{indent: indent, name: label})
			if label == blockBusinessAddress {
				address = make(map[string]string, len(addressParts))
				h.Set(domain.HeaderBusinessAddress, "")
			}
			continue
		}

		stack = popTo(stack, indent)
		if inBlock(stack, blockBusinessAddress) && isAddressPart(label) {
			address[label] = value
			h.Set(domain.HeaderBusinessAddress, joinAddress(address))
			continue
		}

		switch label {
		case labelFormerName:
			h.AddFormerName(value)
		case labelNameChangeDate:
			h.SetFormerNameChangeDate(value)
		case "STANDARD INDUSTRIAL CLASSIFICATION":
			h.Set(domain.HeaderClassificationCode, classificationCode(value))
		default:
			if field, ok := labelFields[label]; ok {
				h.Set(field, value)
			}
		}
	}
	return h
}

// splitLabel splits "LABEL: value" at the first colon. The label is
// upper-cased with inner whitespace collapsed.
func splitLabel(content string) (label, value string, ok bool) {
	if strings.HasPrefix(content, "<") {
		return "", "", false
	}
	idx := strings.IndexByte(content, ':')
	if idx <= 0 {
		return "", "", false
	}
	label = strings.ToUpper(strings.Join(strings.Fields(content[:idx]), " "))
	if label == "" {
		return "", "", false
	}
	return label, strings.TrimSpace(content[idx+1:]), true
}

// indentLevel counts a tab or two spaces as one level.
func indentLevel(ws string) int {
	return strings.Count(ws, "\t") + strings.Count(ws, " ")/2
}

// popTo drops blocks indented deeper than indent.
func popTo(stack []block, indent int) []block {
	for len(stack) > 0 && stack[len(stack)-1].indent > indent {
		stack = stack[:len(stack)-1]
	}
	return stack
}

func inBlock(stack []block, name string) bool {
	for _, b := range stack {
		if b.name == name {
			return true
		}
	}
	return false
}

func isAddressPart(label string) bool {
	for _, p := range addressParts {
		if p == label {
			return true
		}
	}
	return false
}

func joinAddress(address map[string]string) string {
	parts := make([]string, 0, len(addressParts))
	for _, p := range addressParts {
		if v := address[p]; v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

// classificationCode returns the bracketed numeric code, or the whole
// value when there is none.
func classificationCode(value string) string {
	if m := bracketedCode.FindStringSubmatch(value); m != nil {
		return m[1]
	}
	return value
}
