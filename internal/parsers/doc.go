// Package parsers provides the section parsers that turn a submission's
// sections into records, and the registry that dispatches each section
// to the parser for its kind.
//
// Each section kind has exactly one parsing strategy:
//
//   - header: LABEL: value lines with indentation-tracked blocks
//   - body: inline tag/value pairs and labelled text lines
//   - holdings: information table entries
//
// Unknown sections have no parser and are skipped by the assembler.
//
// # Import Rules
//
//   - Can Import: domain, ports/driven, parser subpackages
//   - Cannot Import: services, adapters
package parsers
