package workbook

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/overwrite"
	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
)

// Ensure CSVWriter implements the interface.
var _ driven.WorkbookWriter = (*CSVWriter)(nil)

// csvSuffixes maps record set names to file name suffixes.
var csvSuffixes = map[string]string{
	domain.RecordSetHoldings: "_infotable",
	domain.RecordSetHeader:   "_filing_data",
	domain.RecordSetBody:     "_13fhr",
}

// CSVWriter writes one csv file per record set.
type CSVWriter struct {
	resolver *overwrite.Resolver
}

// NewCSVWriter creates a csv writer.
func NewCSVWriter(policy domain.OverwritePolicy) *CSVWriter {
	return &CSVWriter{resolver: overwrite.NewResolver(policy)}
}

// Format returns OutputCSV.
func (w *CSVWriter) Format() domain.OutputFormat {
	return domain.OutputCSV
}

// Write stores <base>_infotable.csv, <base>_filing_data.csv and <base>_13fhr.csv.
func (w *CSVWriter) Write(ctx context.Context, conv *domain.Conversion, dir, base string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	sets := conv.RecordSets()
	paths := make([]string, len(sets))
	for i, rs := range sets {
		paths[i] = filepath.Join(dir, base+suffixFor(rs.Name)+".csv")
	}

	paths, err := w.resolver.ResolveAll(paths)
	if err != nil {
		return nil, err
	}
	if paths == nil {
		return nil, nil
	}

	for i, rs := range sets {
		if err := writeCSV(paths[i], rs); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func suffixFor(name string) string {
	if s, ok := csvSuffixes[name]; ok {
		return s
	}
	return "_" + name
}

func writeCSV(path string, rs *domain.RecordSet) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	cw := csv.NewWriter(f)
	if err := cw.Write(rs.Columns); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := cw.WriteAll(rs.Rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
