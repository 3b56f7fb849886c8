// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SectionSplitter: Splits raw submission text into typed sections
//   - SectionParser: Parses one section kind into records
//   - SectionParserRegistry: Dispatches a section to its parser
//   - SubmissionReader: Reads submission text from disk
//   - WorkbookWriter: Writes the three record sets to an output file
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RecordProcessorPipeline: Post-assembly record processing. Without it, titles are left raw.
//   - FilingStore: Catalog of converted filings. Without it, filings commands are disabled.
//   - Fetcher, ManifestReader, Router, SubmissionArchive: Only needed for scraping.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, parser, or processor package
package driven
