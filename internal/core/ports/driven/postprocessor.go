package driven

import (
	"context"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

// RecordProcessor transforms assembled record sets.
// RecordProcessors are chained in a pipeline (e.g., title normalisation, categorisation).
type RecordProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process modifies the conversion's record sets in place.
	Process(ctx context.Context, conv *domain.Conversion) error
}

// RecordProcessorPipeline chains multiple RecordProcessors.
type RecordProcessorPipeline interface {
	// Process runs the conversion through all processors in order.
	Process(ctx context.Context, conv *domain.Conversion) error
}
