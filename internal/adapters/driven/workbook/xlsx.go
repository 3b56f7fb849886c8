package workbook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/overwrite"
	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
)

// Ensure XLSXWriter implements the interface.
var _ driven.WorkbookWriter = (*XLSXWriter)(nil)

// numericColumns are written as numbers when their value parses.
var numericColumns = map[string]bool{
	domain.HoldingColumnValue:      true,
	domain.HoldingColumnAmount:     true,
	domain.HoldingColumnVoteSole:   true,
	domain.HoldingColumnVoteShared: true,
	domain.HoldingColumnVoteNone:   true,
}

// XLSXWriter writes a single workbook.
type XLSXWriter struct {
	resolver *overwrite.Resolver
}

// NewXLSXWriter creates a workbook writer.
func NewXLSXWriter(policy domain.OverwritePolicy) *XLSXWriter {
	return &XLSXWriter{resolver: overwrite.NewResolver(policy)}
}

// Format returns OutputXLSX.
func (w *XLSXWriter) Format() domain.OutputFormat {
	return domain.OutputXLSX
}

// Write stores the record sets in <dir>/<base>.xlsx.
func (w *XLSXWriter) Write(ctx context.Context, conv *domain.Conversion, dir, base string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	path, err := w.resolver.Resolve(filepath.Join(dir, base+".xlsx"))
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, rs := range conv.RecordSets() {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), rs.Name); err != nil {
				return nil, fmt.Errorf("name sheet %s: %w", rs.Name, err)
			}
		} else if _, err := f.NewSheet(rs.Name); err != nil {
			return nil, fmt.Errorf("add sheet %s: %w", rs.Name, err)
		}
		if err := writeSheet(f, rs); err != nil {
			return nil, fmt.Errorf("write sheet %s: %w", rs.Name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("save workbook: %w", err)
	}
	return []string{path}, nil
}

func writeSheet(f *excelize.File, rs *domain.RecordSet) error {
	sw, err := f.NewStreamWriter(rs.Name)
	if err != nil {
		return err
	}

	header := make([]any, len(rs.Columns))
	for i, c := range rs.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for r, row := range rs.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = cellValue(rs.Columns[i], v)
		}
		axis, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(axis, cells); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func cellValue(column, v string) any {
	if !numericColumns[column] {
		return v
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	return v
}
