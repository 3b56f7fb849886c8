package edgar

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
)

// Ensure PageParser implements the interface.
var _ driven.FilingPageParser = (*PageParser)(nil)

// periodLookahead is how many text nodes after the label are tried as the value.
const periodLookahead = 5

var (
	periodLabel     = regexp.MustCompile(`(?i)period\s+of\s+report`)
	submissionLabel = regexp.MustCompile(`(?i)complete\s+submission\s+text\s+file`)

	// periodAfterLabel is the plain-text fallback when the DOM walk finds nothing.
	periodAfterLabel = regexp.MustCompile(`(?i)period\s*of\s*report\s*[:\-]?\s*([^\n]{1,40})`)

	numericDate = regexp.MustCompile(`(\d{4})[-/]?(\d{2})[-/]?(\d{2})`)
	monthDate   = regexp.MustCompile(`(\d{2})[-/ ]([A-Za-z]{3})[-/ ](\d{4})`)
)

// PageParser reads EDGAR filing index pages.
type PageParser struct {
	baseURL string
	strip   *bluemonday.Policy
}

// NewPageParser creates a parser that resolves root-relative links against baseURL.
func NewPageParser(baseURL string) *PageParser {
	if baseURL == "" {
		baseURL = domain.DefaultSettings().Scrape.BaseURL
	}
	return &PageParser{
		baseURL: strings.TrimRight(baseURL, "/"),
		strip:   bluemonday.StrictPolicy(),
	}
}

// ParseFilingPage extracts the period of report and the complete submission
// text file link.
func (p *PageParser) ParseFilingPage(body []byte, pageURL string) (*driven.FilingPage, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse filing page: %w", err)
	}

	href := findSubmissionHref(doc)
	if href == "" {
		return nil, fmt.Errorf("%s: %w", pageURL, domain.ErrNoSubmissionLink)
	}
	link, err := p.resolve(href, pageURL)
	if err != nil {
		return nil, err
	}

	period := findPeriod(doc)
	if period == "" {
		period = p.periodFromText(body)
	}

	return &driven.FilingPage{Period: period, SubmissionURL: link}, nil
}

func (p *PageParser) resolve(href, pageURL string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("%w: submission link %q", domain.ErrInvalidInput, href)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	if strings.HasPrefix(ref.Path, "/") || pageURL == "" {
		return p.baseURL + "/" + strings.TrimLeft(ref.String(), "/"), nil
	}
	page, err := url.Parse(pageURL)
	if err != nil || !page.IsAbs() {
		return p.baseURL + "/" + ref.String(), nil
	}
	return page.ResolveReference(ref).String(), nil
}

// periodFromText strips the markup and looks for a date right after the label.
func (p *PageParser) periodFromText(body []byte) string {
	text := p.strip.SanitizeBytes(body)
	m := periodAfterLabel.FindSubmatch(text)
	if m == nil {
		return ""
	}
	return NormalizePeriod(string(m[1]))
}

// NormalizePeriod converts YYYY-MM-DD, YYYYMMDD, YYYY/MM/DD or DD-Mon-YYYY
// to YYYYMMDD. Returns "" when s holds no recognisable date.
func NormalizePeriod(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if m := numericDate.FindStringSubmatch(s); m != nil {
		return m[1] + m[2] + m[3]
	}
	if m := monthDate.FindStringSubmatch(s); m != nil {
		t, err := time.Parse("02-Jan-2006", m[1]+"-"+titleCase(m[2])+"-"+m[3])
		if err == nil {
			return t.Format("20060102")
		}
	}
	return ""
}

func titleCase(mon string) string {
	mon = strings.ToLower(mon)
	return strings.ToUpper(mon[:1]) + mon[1:]
}

// findPeriod locates the label text node and tries the text nodes after it.
func findPeriod(doc *html.Node) string {
	texts := textNodes(doc)
	for i, t := range texts {
		if !periodLabel.MatchString(t) {
			continue
		}
		tried := 0
		for _, cand := range texts[i+1:] {
			if tried == periodLookahead {
				break
			}
			if periodLabel.MatchString(cand) {
				continue
			}
			tried++
			if period := NormalizePeriod(cand); period != "" {
				return period
			}
		}
	}
	return ""
}

// findSubmissionHref prefers the link labelled as the complete submission
// text file, either by its own text or by its table row, then the first
// link to a .txt file.
func findSubmissionHref(doc *html.Node) string {
	var first string
	var labelled string
	var walk func(n *html.Node, row *html.Node)
	walk = func(n *html.Node, row *html.Node) {
		if labelled != "" {
			return
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style:
				return
			case atom.Tr:
				row = n
			case atom.A:
				href := attr(n, "href")
				if href != "" {
					if submissionLabel.MatchString(collectText(n)) ||
						(row != nil && submissionLabel.MatchString(collectText(row))) {
						labelled = href
						return
					}
					if first == "" && isTextFile(href) {
						first = href
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, row)
		}
	}
	walk(doc, nil)
	if labelled != "" {
		return labelled
	}
	return first
}

func isTextFile(href string) bool {
	if u, err := url.Parse(href); err == nil {
		href = u.Path
	}
	return strings.HasSuffix(strings.ToLower(href), ".txt")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textNodes returns the non-empty text nodes of the document in order.
func textNodes(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				out = append(out, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func collectText(n *html.Node) string {
	return strings.Join(textNodes(n), " ")
}
