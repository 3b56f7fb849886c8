// Package category provides the class title categorisation processor.
package category

import (
	"context"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
	"github.com/custodia-labs/holdings-cli/internal/titles"
)

// Ensure Processor implements the interface.
var _ driven.RecordProcessor = (*Processor)(nil)

// Name is the registry name of the processor.
const Name = "category"

// Processor adds a category column derived from the class title.
// It implements the RecordProcessor interface.
type Processor struct {
	detailed bool
	output   string
}

// Option configures the processor.
type Option func(*Processor)

// WithDetailed selects the detailed taxonomy.
func WithDetailed() Option {
	return func(p *Processor) {
		p.detailed = true
	}
}

// WithOutput sets the column to write.
func WithOutput(column string) Option {
	return func(p *Processor) {
		if column != "" {
			p.output = column
		}
	}
}

// New creates a new categorisation processor.
func New(opts ...Option) *Processor {
	p := &Processor{output: titles.ColumnCategory}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process writes the category of each holding's class title.
func (p *Processor) Process(_ context.Context, conv *domain.Conversion) error {
	return titles.ClassifyColumn(&conv.Holdings, titles.ColumnClass, titles.Into(p.output), p.detailed)
}
