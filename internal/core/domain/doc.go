// Package domain defines the core business entities for holdings-cli.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SubmissionDocument: Raw submission text split into typed sections
//   - HeaderRecord: The fixed set of filing header fields
//   - BodyField: One key/value pair from the filing-type body
//   - HoldingRecord: One reported security position
//   - RecordSet: A named table with a fixed column order
//   - Conversion: The three record sets produced from one submission
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
