// Package body parses the filing-type body into ordered key/value pairs.
//
// The body is read line by line. Inline elements become pairs keyed by
// their local name; standalone tags are structure only and are dropped.
// Plain text lines are kept as labelled values, checkbox answers or
// free text under the "_text" key.
package body

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.SectionParser = (*Parser)(nil)

// Keys used for lines that carry no label of their own.
const (
	TextKey     = "_text"
	CheckboxKey = "_checkbox"
)

// Checkbox answers.
const (
	checked   = "Yes"
	unchecked = "No"
)

// Pre-compiled regular expressions for line classification.
var (
	wholeElement  = regexp.MustCompile(`^<((?:[\w.-]+:)?[\w.-]+)(?:\s[^<>]*)?>(.*)</((?:[\w.-]+:)?[\w.-]+)\s*>$`)
	leafElement   = regexp.MustCompile(`<((?:[\w.-]+:)?[\w.-]+)(?:\s[^<>]*)?>([^<]*)</((?:[\w.-]+:)?[\w.-]+)\s*>`)
	openElement   = regexp.MustCompile(`^<((?:[\w.-]+:)?[\w.-]+)(?:\s[^<>]*)?>(.+)$`)
	standaloneTag = regexp.MustCompile(`^<[^<>]*>$`)
	anyTag        = regexp.MustCompile(`<[^<>]*>`)
	checkbox      = regexp.MustCompile(`^(.*?)\[\s*([xX]?)\s*\]`)
)

// Parser extracts key/value pairs from body sections.
type Parser struct {
	policy *bluemonday.Policy
}

// New creates a new body parser.
func New() *Parser {
	return &Parser{policy: bluemonday.StrictPolicy()}
}

// Kind returns the section kind this parser handles.
func (p *Parser) Kind() domain.SectionKind {
	return domain.SectionBody
}

// Parse extracts the body pairs in order of appearance. An empty body
// yields no pairs.
func (p *Parser) Parse(_ context.Context, section domain.Section) (*driven.SectionResult, error) {
	return &driven.SectionResult{
		Kind: domain.SectionBody,
		Body: p.ParseText(section.Content),
	}, nil
}

// ParseText parses body text into pairs.
func (p *Parser) ParseText(text string) []domain.BodyField {
	fields := []domain.BodyField{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "<") {
			if pairs, ok := p.parseMarkup(line); ok {
				fields = append(fields, pairs...)
				continue
			}
			line = strings.TrimSpace(anyTag.ReplaceAllString(line, " "))
			if line == "" {
				continue
			}
		}
		fields = append(fields, parseText(line))
	}
	return fields
}

// parseMarkup handles a line that starts with a tag. It returns false
// when the line is not markup the body understands.
func (p *Parser) parseMarkup(line string) ([]domain.BodyField, bool) {
	if m := wholeElement.FindStringSubmatch(line); m != nil {
		open, inner, closing := m[1], m[2], m[3]
		if localName(open) == localName(closing) && !isContainer(inner) && !strings.Contains(inner, "</"+open) {
			return []domain.BodyField{{Key: localName(open), Value: p.clean(inner)}}, true
		}
	}

	if leaves := leafElement.FindAllStringSubmatch(line, -1); len(leaves) > 0 {
		var pairs []domain.BodyField
		for _, m := range leaves {
			if localName(m[1]) != localName(m[3]) {
				continue
			}
			pairs = append(pairs, domain.BodyField{Key: localName(m[1]), Value: p.clean(m[2])})
		}
		if len(pairs) > 0 {
			return pairs, true
		}
	}

	if standaloneTag.MatchString(line) {
		return nil, true
	}

	if m := openElement.FindStringSubmatch(line); m != nil {
		return []domain.BodyField{{Key: localName(m[1]), Value: p.clean(m[2])}}, true
	}
	return nil, false
}

// isContainer reports whether inner holds only child elements. Text
// mixed in with sub-tags makes the outer element a value of its own.
func isContainer(inner string) bool {
	if !strings.Contains(inner, "<") {
		return false
	}
	return strings.TrimSpace(leafElement.ReplaceAllString(inner, "")) == ""
}

// parseText handles a plain text line.
func parseText(line string) domain.BodyField {
	if m := checkbox.FindStringSubmatch(line); m != nil {
		key := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m[1]), ":"))
		if key == "" {
			key = CheckboxKey
		}
		value := unchecked
		if m[2] != "" {
			value = checked
		}
		return domain.BodyField{Key: key, Value: value}
	}

	if idx := strings.IndexByte(line, ':'); idx >= 0 {
		return domain.BodyField{
			Key:   strings.TrimSpace(line[:idx]),
			Value: strings.TrimSpace(line[idx+1:]),
		}
	}
	return domain.BodyField{Key: TextKey, Value: line}
}

// clean strips nested markup and decodes entities.
func (p *Parser) clean(value string) string {
	return strings.TrimSpace(html.UnescapeString(p.policy.Sanitize(value)))
}

// localName drops a namespace prefix.
func localName(name string) string {
	if idx := strings.LastIndexByte(name, ':'); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
