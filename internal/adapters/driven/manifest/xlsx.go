package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
	"github.com/custodia-labs/holdings-cli/internal/logger"
)

// Ensure XLSXReader implements the interface.
var _ driven.ManifestReader = (*XLSXReader)(nil)

// Header names tried in order for each column.
var (
	urlColumns    = []string{"filings url", "filing url", "url", "link", "href"}
	formColumns   = []string{"form type", "form", "type"}
	periodColumns = []string{"period of report", "period"}
)

// XLSXReader reads Excel manifests.
type XLSXReader struct{}

// NewXLSXReader creates a new Excel manifest reader.
func NewXLSXReader() *XLSXReader {
	return &XLSXReader{}
}

// Extensions returns the accepted file extensions.
func (r *XLSXReader) Extensions() []string {
	return []string{".xlsx"}
}

// Read collects links from every sheet that has both a form type and a URL
// column. Sheets without them are skipped.
func (r *XLSXReader) Read(ctx context.Context, path string) (*domain.Manifest, error) {
	if !hasExtension(path, r.Extensions()) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	m := &domain.Manifest{Name: nameFromPath(path), Path: path}
	for _, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		links, err := readSheet(f, sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		m.Links = append(m.Links, links...)
	}
	return m, nil
}

func readSheet(f *excelize.File, sheet string) ([]domain.FilingLink, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	urlCol := findColumn(header, urlColumns)
	formCol := findColumn(header, formColumns)
	if urlCol < 0 || formCol < 0 {
		logger.Debug("manifest sheet %q has no form type or url column", sheet)
		return nil, nil
	}
	periodCol := findColumn(header, periodColumns)

	var links []domain.FilingLink
	for i, row := range rows[1:] {
		link := domain.FilingLink{
			FormType: strings.TrimSpace(cell(row, formCol)),
			URL:      strings.TrimSpace(cell(row, urlCol)),
			Period:   strings.TrimSpace(cell(row, periodCol)),
		}
		if !strings.Contains(link.URL, "://") {
			// Display text over a hyperlink.
			if target := hyperlink(f, sheet, urlCol, i+1); target != "" {
				link.URL = target
			}
		}
		if link.URL == "" {
			continue
		}
		links = append(links, link)
	}
	return links, nil
}

// findColumn returns the index of the first header matching a candidate, or -1.
func findColumn(header []string, candidates []string) int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}
	for _, c := range candidates {
		if i, ok := index[c]; ok {
			return i
		}
	}
	return -1
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// hyperlink returns the link target of the cell at a zero-based column and row.
func hyperlink(f *excelize.File, sheet string, col, row int) string {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return ""
	}
	ok, target, err := f.GetCellHyperLink(sheet, name)
	if err != nil || !ok {
		return ""
	}
	return strings.TrimSpace(target)
}
