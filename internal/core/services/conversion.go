package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driving"
	"github.com/custodia-labs/holdings-cli/internal/logger"
)

// Ensure ConversionService implements the interface.
var _ driving.ConversionService = (*ConversionService)(nil)

// ConversionService turns submissions into the header, body and holdings
// record sets, and writes and catalogues the result.
type ConversionService struct {
	splitter driven.SectionSplitter
	registry driven.SectionParserRegistry
	pipeline driven.RecordProcessorPipeline
	reader   driven.SubmissionReader
	writers  map[domain.OutputFormat]driven.WorkbookWriter
	store    driven.FilingStore
	settings driving.SettingsService

	now func() time.Time
}

// NewConversionService creates a new conversion service.
// The pipeline, reader, writers, store and settings are optional: Convert
// needs only the splitter and registry. Without a store nothing is catalogued.
func NewConversionService(
	splitter driven.SectionSplitter,
	registry driven.SectionParserRegistry,
	pipeline driven.RecordProcessorPipeline,
	reader driven.SubmissionReader,
	writers []driven.WorkbookWriter,
	store driven.FilingStore,
	settings driving.SettingsService,
) *ConversionService {
	byFormat := make(map[domain.OutputFormat]driven.WorkbookWriter, len(writers))
	for _, w := range writers {
		byFormat[w.Format()] = w
	}
	return &ConversionService{
		splitter: splitter,
		registry: registry,
		pipeline: pipeline,
		reader:   reader,
		writers:  byFormat,
		store:    store,
		settings: settings,
		now:      time.Now,
	}
}

// Convert parses raw submission text into record sets.
func (s *ConversionService) Convert(ctx context.Context, raw string) (*domain.Conversion, error) {
	doc, err := s.splitter.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("split submission: %w", err)
	}
	logger.Debug("Found %d sections", len(doc.Sections))

	results, err := s.parseSections(ctx, doc.Sections)
	if err != nil {
		return nil, err
	}

	conv, err := assemble(doc, results)
	if err != nil {
		return nil, fmt.Errorf("assemble records: %w", err)
	}

	if s.pipeline != nil {
		if err := s.pipeline.Process(ctx, conv); err != nil {
			return nil, fmt.Errorf("process records: %w", err)
		}
	}

	for _, d := range conv.Diagnostics {
		logger.Warn("%s", d)
	}
	logger.Info("Converted %d holdings (%d skipped), %d body fields",
		conv.Holdings.Len(), len(conv.Diagnostics), conv.Body.Len())

	return conv, nil
}

// ConvertFile reads and parses the submission at path.
func (s *ConversionService) ConvertFile(ctx context.Context, path string) (*domain.Conversion, error) {
	if s.reader == nil {
		return nil, fmt.Errorf("read submission: no reader configured: %w", domain.ErrNotImplemented)
	}

	logger.Section("Convert " + filepath.Base(path))

	raw, err := s.reader.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read submission: %w", err)
	}

	conv, err := s.Convert(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	conv.SourcePath = path
	return conv, nil
}

// Extract converts the submission at path, writes its workbook under
// <output dir>/<issuer>/<period> and records it in the filing catalog.
func (s *ConversionService) Extract(
	ctx context.Context, path string, opts driving.ExtractOptions,
) (*driving.ExtractResult, error) {
	settings := domain.DefaultSettings()
	if s.settings != nil {
		loaded, err := s.settings.Get()
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		settings = *loaded
	}

	conv, err := s.ConvertFile(ctx, path)
	if err != nil {
		return nil, err
	}

	result := &driving.ExtractResult{
		Conversion: conv,
		Issuer:     IssuerFromPath(path, settings.Paths.RawDir),
		Period:     ResolvePeriod(conv, s.now()),
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = settings.Paths.OutputDir
	}
	format := opts.Format
	if format == "" {
		format = settings.Output.Format
	}

	dir := filepath.Join(outputDir, result.Issuer)
	result.Paths, err = s.write(ctx, conv, format, dir, result.Period)
	if err != nil {
		return nil, err
	}

	if settings.Output.Catalog && !opts.SkipCatalog && s.store != nil {
		filing, err := s.catalog(ctx, conv, result)
		if err != nil {
			return nil, err
		}
		result.Filing = filing
	}

	return result, nil
}

// write uses the writer for format, falling back to CSV when the
// workbook cannot be written.
func (s *ConversionService) write(
	ctx context.Context, conv *domain.Conversion, format domain.OutputFormat, dir, base string,
) ([]string, error) {
	writer, ok := s.writers[format]
	if !ok {
		return nil, fmt.Errorf("output format %q: %w", format, domain.ErrUnsupportedType)
	}

	paths, err := writer.Write(ctx, conv, dir, base)
	if err == nil {
		return paths, nil
	}

	fallback, ok := s.writers[domain.OutputCSV]
	if format == domain.OutputCSV || !ok {
		return nil, fmt.Errorf("write %s: %w", format, err)
	}

	logger.Warn("Writing %s failed (%v), falling back to csv", format, err)
	paths, csvErr := fallback.Write(ctx, conv, dir, base)
	if csvErr != nil {
		return nil, fmt.Errorf("write %s: %w", format, errors.Join(err, csvErr))
	}
	return paths, nil
}

func (s *ConversionService) catalog(
	ctx context.Context, conv *domain.Conversion, result *driving.ExtractResult,
) (*domain.StoredFiling, error) {
	accession := conv.AccessionNumber()
	if accession == "" {
		logger.Warn("No accession number in %s, not catalogued", conv.SourcePath)
		return nil, nil
	}

	filing := &domain.StoredFiling{
		AccessionNumber: accession,
		SubmissionType:  conv.HeaderRecord.Get(domain.HeaderSubmissionType),
		Period:          result.Period,
		FilerName:       conv.HeaderRecord.Get(domain.HeaderFilerName),
		CIK:             conv.HeaderRecord.Get(domain.HeaderCIK),
		SourcePath:      conv.SourcePath,
		HoldingCount:    len(conv.HoldingRecords),
		SkippedCount:    len(conv.Diagnostics),
		ConvertedAt:     s.now().UTC(),
	}
	if len(result.Paths) > 0 {
		filing.OutputPath = result.Paths[0]
	}
	for _, h := range conv.HoldingRecords {
		filing.TotalValue += h.Value
	}

	if err := s.store.SaveFiling(ctx, filing, conv.HoldingRecords); err != nil {
		return nil, fmt.Errorf("catalog filing: %w", err)
	}
	logger.Debug("Catalogued %s as %s", accession, filing.ID)
	return filing, nil
}

// parseSections parses every known section concurrently. Results keep
// the sections' order; unknown sections have no result.
func (s *ConversionService) parseSections(
	ctx context.Context, sections []domain.Section,
) ([]*driven.SectionResult, error) {
	results := make([]*driven.SectionResult, len(sections))
	errs := make([]error, len(sections))

	var wg sync.WaitGroup
	for i, section := range sections {
		if section.Kind == domain.SectionUnknown {
			logger.Debug("Skipping %q section", section.Type)
			continue
		}
		wg.Add(1)
		go func(i int, section domain.Section) {
			defer wg.Done()
			result, err := s.registry.Parse(ctx, section)
			if err != nil {
				errs[i] = fmt.Errorf("parse %s section: %w", section.Kind, err)
				return
			}
			results[i] = result
		}(i, section)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}

// assemble builds the record sets from section results in document order.
// Holdings diagnostics are renumbered to positions within the whole document.
func assemble(doc *domain.SubmissionDocument, results []*driven.SectionResult) (*domain.Conversion, error) {
	conv := &domain.Conversion{
		Sections:     doc.Sections,
		HeaderRecord: domain.NewHeaderRecord(),
		BodyFields:   []domain.BodyField{},
	}

	seenHeader := false
	entries := 0
	for _, r := range results {
		if r == nil {
			continue
		}
		switch r.Kind {
		case domain.SectionHeader:
			if r.Header != nil && !seenHeader {
				conv.HeaderRecord = r.Header
				seenHeader = true
			}
		case domain.SectionBody:
			conv.BodyFields = append(conv.BodyFields, r.Body...)
		case domain.SectionHoldings:
			conv.HoldingRecords = append(conv.HoldingRecords, r.Holdings...)
			for _, d := range r.Diagnostics {
				d.Position += entries
				conv.Diagnostics = append(conv.Diagnostics, d)
			}
			entries += r.Entries
		}
	}

	header := domain.NewRecordSet(domain.RecordSetHeader, headerColumns()...)
	if err := header.Append(conv.HeaderRecord.Row()); err != nil {
		return nil, err
	}

	body := domain.NewRecordSet(domain.RecordSetBody, domain.BodyColumnField, domain.BodyColumnValue)
	for _, f := range conv.BodyFields {
		if err := body.Append([]string{f.Key, f.Value}); err != nil {
			return nil, err
		}
	}

	holdings := domain.NewRecordSet(domain.RecordSetHoldings, domain.HoldingColumns()...)
	for _, h := range conv.HoldingRecords {
		if err := holdings.Append(h.Row()); err != nil {
			return nil, err
		}
	}

	conv.Header = *header
	conv.Body = *body
	conv.Holdings = *holdings
	return conv, nil
}

func headerColumns() []string {
	fields := domain.HeaderFields()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.String()
	}
	return cols
}
