// Package holdings parses information table sections into holding records.
package holdings

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.SectionParser = (*Parser)(nil)

// Information table element names.
const (
	tagInfoTable            = "infoTable"
	tagNameOfIssuer         = "nameOfIssuer"
	tagTitleOfClass         = "titleOfClass"
	tagCUSIP                = "cusip"
	tagValue                = "value"
	tagSharesOrPrincipal    = "sshPrnamt"
	tagSharesType           = "sshPrnamtType"
	tagPutCall              = "putCall"
	tagInvestmentDiscretion = "investmentDiscretion"
	tagOtherManager         = "otherManager"
	tagVotingAuthority      = "votingAuthority"
	tagVoteSole             = "Sole"
	tagVoteShared           = "Shared"
	tagVoteNone             = "None"
)

// Pre-compiled element patterns, one per tag.
var (
	infoTableOpen  = openingTag(tagInfoTable)
	infoTableClose = closingTag(tagInfoTable)
	votingChunk    = element(tagVotingAuthority)
	digits         = regexp.MustCompile(`\d+`)

	fieldPatterns = map[string]*regexp.Regexp{
		tagNameOfIssuer:         element(tagNameOfIssuer),
		tagTitleOfClass:         element(tagTitleOfClass),
		tagCUSIP:                element(tagCUSIP),
		tagValue:                element(tagValue),
		tagSharesOrPrincipal:    element(tagSharesOrPrincipal),
		tagSharesType:           element(tagSharesType),
		tagPutCall:              element(tagPutCall),
		tagInvestmentDiscretion: element(tagInvestmentDiscretion),
		tagOtherManager:         element(tagOtherManager),
		tagVoteSole:             element(tagVoteSole),
		tagVoteShared:           element(tagVoteShared),
		tagVoteNone:             element(tagVoteNone),
	}
)

// element matches <tag>...</tag> with an optional namespace prefix and attributes.
func element(tag string) *regexp.Regexp {
	name := regexp.QuoteMeta(tag)
	return regexp.MustCompile(`(?is)<(?:[\w.-]+:)?` + name + `(?:\s[^<>]*)?>(.*?)</(?:[\w.-]+:)?` + name + `\s*>`)
}

func openingTag(tag string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)<(?:[\w.-]+:)?` + regexp.QuoteMeta(tag) + `(?:\s[^<>]*)?>`)
}

func closingTag(tag string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)</(?:[\w.-]+:)?` + regexp.QuoteMeta(tag) + `\s*>`)
}

// entries splits content into one chunk per opening infoTable tag. A chunk
// ends at its closing tag, or at the next opening tag or the end of the
// content when the closing tag is missing, so an unclosed entry never
// absorbs the one after it.
func entries(content string) []string {
	opens := infoTableOpen.FindAllStringIndex(content, -1)
	chunks := make([]string, 0, len(opens))
	for i, loc := range opens {
		end := len(content)
		if i+1 < len(opens) {
			end = opens[i+1][0]
		}
		chunk := content[loc[1]:end]
		if c := infoTableClose.FindStringIndex(chunk); c != nil {
			chunk = chunk[:c[0]]
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

// Parser extracts holding entries from information table sections.
type Parser struct{}

// New creates a new holdings parser.
func New() *Parser {
	return &Parser{}
}

// Kind returns the section kind this parser handles.
func (p *Parser) Kind() domain.SectionKind {
	return domain.SectionHoldings
}

// Parse extracts every entry. Entries missing a CUSIP or issuer name are
// left out and reported as diagnostics; the rest of the table is kept.
// An entry without its closing tag is read up to the next entry.
func (p *Parser) Parse(_ context.Context, section domain.Section) (*driven.SectionResult, error) {
	chunks := entries(section.Content)

	result := &driven.SectionResult{
		Kind:     domain.SectionHoldings,
		Holdings: make([]domain.HoldingRecord, 0, len(chunks)),
		Entries:  len(chunks),
	}

	for i, chunk := range chunks {
		position := i + 1
		record := parseEntry(chunk)

		if missing := missingField(record); missing != "" {
			result.Diagnostics = append(result.Diagnostics, domain.Diagnostic{
				Kind:     domain.DiagnosticMissingRequiredField,
				Section:  section.Type,
				Position: position,
				Field:    missing,
				Message:  fmt.Sprintf("%s is missing", missing),
			})
			continue
		}
		result.Holdings = append(result.Holdings, record)
	}
	return result, nil
}

func parseEntry(chunk string) domain.HoldingRecord {
	record := domain.HoldingRecord{
		IssuerName:           text(chunk, tagNameOfIssuer),
		ClassTitle:           text(chunk, tagTitleOfClass),
		CUSIP:                text(chunk, tagCUSIP),
		Value:                number(text(chunk, tagValue)),
		Amount:               number(text(chunk, tagSharesOrPrincipal)),
		AmountType:           text(chunk, tagSharesType),
		PutCall:              text(chunk, tagPutCall),
		InvestmentDiscretion: text(chunk, tagInvestmentDiscretion),
		OtherManager:         text(chunk, tagOtherManager),
	}

	if m := votingChunk.FindStringSubmatch(chunk); m != nil {
		record.Voting = domain.VotingAuthority{
			Sole:   number(text(m[1], tagVoteSole)),
			Shared: number(text(m[1], tagVoteShared)),
			None:   number(text(m[1], tagVoteNone)),
		}
	}
	return record
}

func missingField(record domain.HoldingRecord) string {
	switch {
	case record.CUSIP == "":
		return domain.HoldingColumnCUSIP
	case record.IssuerName == "":
		return domain.HoldingColumnIssuerName
	default:
		return ""
	}
}

// text returns the trimmed, entity-decoded content of the first tag element.
func text(chunk, tag string) string {
	m := fieldPatterns[tag].FindStringSubmatch(chunk)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(m[1]))
}

// number reads the digits of s, ignoring separators. Absent or
// digit-free values are zero.
func number(s string) int64 {
	d := strings.Join(digits.FindAllString(s, -1), "")
	if d == "" {
		return 0
	}
	n, err := strconv.ParseInt(d, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
