package domain

import "strings"

// HeaderField is one of the fixed, enumerated filing header columns.
type HeaderField string

// Header fields in output column order.
const (
	HeaderAccessionNumber      HeaderField = "Accession_Number"
	HeaderSubmissionType       HeaderField = "Submission_Type"
	HeaderPeriodOfReport       HeaderField = "Period_of_Report"
	HeaderFiledDate            HeaderField = "Filed_Date"
	HeaderFilerName            HeaderField = "Filer_Name"
	HeaderCIK                  HeaderField = "CIK"
	HeaderClassificationCode   HeaderField = "Classification_Code"
	HeaderIRSNumber            HeaderField = "IRS_Number"
	HeaderStateOfIncorporation HeaderField = "State_of_Incorporation"
	HeaderFiscalYearEnd        HeaderField = "Fiscal_Year_End"
	HeaderBusinessAddress      HeaderField = "Business_Address"
	HeaderBusinessPhone        HeaderField = "Business_Phone"
	HeaderFileNumber           HeaderField = "File_Number"
	HeaderFilmNumber           HeaderField = "Film_Number"
	HeaderFormerName           HeaderField = "Former_Name"
	HeaderFormerNameChangeDate HeaderField = "Former_Name_Change_Date"
)

// HeaderFields returns every header field in column order.
func HeaderFields() []HeaderField {
	return []HeaderField{
		HeaderAccessionNumber,
		HeaderSubmissionType,
		HeaderPeriodOfReport,
		HeaderFiledDate,
		HeaderFilerName,
		HeaderCIK,
		HeaderClassificationCode,
		HeaderIRSNumber,
		HeaderStateOfIncorporation,
		HeaderFiscalYearEnd,
		HeaderBusinessAddress,
		HeaderBusinessPhone,
		HeaderFileNumber,
		HeaderFilmNumber,
		HeaderFormerName,
		HeaderFormerNameChangeDate,
	}
}

// String returns the column name.
func (f HeaderField) String() string {
	return string(f)
}

// FormerNameSeparator joins repeated former names and change dates.
const FormerNameSeparator = "; "

// FormerName is one former-name entry paired with its change date.
type FormerName struct {
	Name       string
	ChangeDate string
}

// HeaderRecord holds the filing header. Every enumerated field is always
// present; a field missing from the submission reads as "".
type HeaderRecord struct {
	values      map[HeaderField]string
	formerNames []FormerName
}

// NewHeaderRecord creates a header record with every field empty.
func NewHeaderRecord() *HeaderRecord {
	values := make(map[HeaderField]string, len(HeaderFields()))
	for _, f := range HeaderFields() {
		values[f] = ""
	}
	return &HeaderRecord{values: values}
}

// Get returns the value of a field. Former name fields are rendered from
// the paired list.
func (h *HeaderRecord) Get(field HeaderField) string {
	switch field {
	case HeaderFormerName:
		return h.joinFormer(func(f FormerName) string { return f.Name })
	case HeaderFormerNameChangeDate:
		return h.joinFormer(func(f FormerName) string { return f.ChangeDate })
	}
	if h.values == nil {
		return ""
	}
	return h.values[field]
}

// Set stores a singular field; the last value set wins.
// Former name fields are managed through AddFormerName and SetFormerNameChangeDate.
func (h *HeaderRecord) Set(field HeaderField, value string) {
	if field == HeaderFormerName {
		h.AddFormerName(value)
		return
	}
	if field == HeaderFormerNameChangeDate {
		h.SetFormerNameChangeDate(value)
		return
	}
	if h.values == nil {
		h.values = make(map[HeaderField]string)
	}
	h.values[field] = value
}

// AddFormerName starts a new former-name pair.
func (h *HeaderRecord) AddFormerName(name string) {
	h.formerNames = append(h.formerNames, FormerName{Name: name})
}

// SetFormerNameChangeDate fills the date of the most recent pair that has
// none yet, or starts a nameless pair when every pair is complete.
func (h *HeaderRecord) SetFormerNameChangeDate(date string) {
	if n := len(h.formerNames); n > 0 && h.formerNames[n-1].ChangeDate == "" {
		h.formerNames[n-1].ChangeDate = date
		return
	}
	h.formerNames = append(h.formerNames, FormerName{ChangeDate: date})
}

// FormerNames returns a copy of the paired former-name list.
func (h *HeaderRecord) FormerNames() []FormerName {
	out := make([]FormerName, len(h.formerNames))
	copy(out, h.formerNames)
	return out
}

// Row returns the header values in column order.
func (h *HeaderRecord) Row() []string {
	fields := HeaderFields()
	row := make([]string, len(fields))
	for i, f := range fields {
		row[i] = h.Get(f)
	}
	return row
}

// Map returns every field keyed by column name.
func (h *HeaderRecord) Map() map[string]string {
	out := make(map[string]string, len(HeaderFields()))
	for _, f := range HeaderFields() {
		out[f.String()] = h.Get(f)
	}
	return out
}

func (h *HeaderRecord) joinFormer(pick func(FormerName) string) string {
	if len(h.formerNames) == 0 {
		return ""
	}
	parts := make([]string, len(h.formerNames))
	for i, f := range h.formerNames {
		parts[i] = pick(f)
	}
	return strings.Join(parts, FormerNameSeparator)
}
