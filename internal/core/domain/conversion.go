package domain

// Conversion is the result of converting one submission: the three record
// sets plus the skip diagnostics for rejected holdings entries.
type Conversion struct {
	// SourcePath is the submission file, when converted from disk.
	SourcePath string

	// Sections lists the kinds and types found, in document order.
	Sections []Section

	// Header is the single header row.
	Header RecordSet

	// Body holds one row per extracted body key/value pair.
	Body RecordSet

	// Holdings holds one row per accepted holdings entry.
	Holdings RecordSet

	// HeaderRecord is the typed header the Header set was built from.
	HeaderRecord *HeaderRecord

	// BodyFields are the typed body pairs.
	BodyFields []BodyField

	// HoldingRecords are the typed holdings the Holdings set was built from.
	// Processors that rewrite class titles in place keep ClassTitle here
	// in step with the Holdings set.
	HoldingRecords []HoldingRecord

	// Diagnostics lists the skipped holdings entries.
	Diagnostics []Diagnostic
}

// RecordSets returns the three record sets in output order.
func (c *Conversion) RecordSets() []*RecordSet {
	return []*RecordSet{&c.Holdings, &c.Header, &c.Body}
}

// RecordSet returns a record set by name.
func (c *Conversion) RecordSet(name string) (*RecordSet, bool) {
	for _, rs := range c.RecordSets() {
		if rs.Name == name {
			return rs, true
		}
	}
	return nil, false
}

// AccessionNumber is a shortcut for the header's accession number.
func (c *Conversion) AccessionNumber() string {
	if c.HeaderRecord == nil {
		return ""
	}
	return c.HeaderRecord.Get(HeaderAccessionNumber)
}
