// Package postprocessors provides record set processing implementations.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.RecordProcessorPipeline = (*Pipeline)(nil)

// Pipeline chains multiple RecordProcessors and runs them in order.
// It implements the RecordProcessorPipeline interface.
type Pipeline struct {
	processors []driven.RecordProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.RecordProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs the conversion through all processors in order.
// Each processor sees the record sets as left by the one before it.
func (p *Pipeline) Process(ctx context.Context, conv *domain.Conversion) error {
	if conv == nil {
		return fmt.Errorf("conversion is nil")
	}

	for _, processor := range p.processors {
		if err := processor.Process(ctx, conv); err != nil {
			return fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	return nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.RecordProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Names returns the processor names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.processors))
	for i, processor := range p.processors {
		names[i] = processor.Name()
	}
	return names
}
