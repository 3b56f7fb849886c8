package domain

// OverwritePolicy decides what happens when an output file already exists.
type OverwritePolicy string

// Available overwrite policies.
const (
	// OverwriteReplace replaces the existing file.
	OverwriteReplace OverwritePolicy = "overwrite"

	// OverwriteSkip keeps the existing file and writes nothing.
	OverwriteSkip OverwritePolicy = "skip"

	// OverwriteTimestamp writes next to the existing file with a
	// Unix-timestamp suffix.
	OverwriteTimestamp OverwritePolicy = "timestamp"
)

// IsValid returns true if the policy is recognised.
func (p OverwritePolicy) IsValid() bool {
	switch p {
	case OverwriteReplace, OverwriteSkip, OverwriteTimestamp:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p OverwritePolicy) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p OverwritePolicy) Description() string {
	switch p {
	case OverwriteReplace:
		return "Replace existing files"
	case OverwriteSkip:
		return "Keep existing files"
	case OverwriteTimestamp:
		return "Write alongside with a timestamp suffix"
	default:
		return unknownDescription
	}
}

// AllOverwritePolicies returns every policy.
func AllOverwritePolicies() []OverwritePolicy {
	return []OverwritePolicy{OverwriteReplace, OverwriteSkip, OverwriteTimestamp}
}

// OutputFormat selects the workbook writer.
type OutputFormat string

// Available output formats.
const (
	// OutputXLSX writes one workbook with three sheets.
	OutputXLSX OutputFormat = "xlsx"

	// OutputCSV writes three CSV files.
	OutputCSV OutputFormat = "csv"
)

// IsValid returns true if the format is recognised.
func (f OutputFormat) IsValid() bool {
	return f == OutputXLSX || f == OutputCSV
}
