// Package titlenorm provides the class title normalisation processor.
package titlenorm

import (
	"context"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
	"github.com/custodia-labs/holdings-cli/internal/titles"
)

// Ensure Processor implements the interface.
var _ driven.RecordProcessor = (*Processor)(nil)

// Name is the registry name of the processor.
const Name = "titlenorm"

// Processor rewrites warrant class titles in the holdings record set and
// in the typed holding records.
// It implements the RecordProcessor interface.
type Processor struct {
	column string
	output string
}

// Option configures the processor.
type Option func(*Processor)

// WithColumn sets the column to read.
func WithColumn(column string) Option {
	return func(p *Processor) {
		if column != "" {
			p.column = column
		}
	}
}

// WithOutput writes normalised titles to a separate column.
func WithOutput(column string) Option {
	return func(p *Processor) {
		p.output = column
	}
}

// New creates a new title normalisation processor.
func New(opts ...Option) *Processor {
	p := &Processor{column: titles.ColumnClass}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process normalises the configured holdings column.
func (p *Processor) Process(_ context.Context, conv *domain.Conversion) error {
	target := titles.InPlace()
	if p.output != "" && p.output != p.column {
		target = titles.Into(p.output)
	}
	if err := titles.NormalizeColumn(&conv.Holdings, p.column, target); err != nil {
		return err
	}

	if p.column == titles.ColumnClass && target == titles.InPlace() {
		for i := range conv.HoldingRecords {
			conv.HoldingRecords[i].ClassTitle = titles.NormalizeTitle(conv.HoldingRecords[i].ClassTitle)
		}
	}
	return nil
}
