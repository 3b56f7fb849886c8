package domain

// BodyField is one key/value pair extracted from the filing-type body.
// Keys are not unique; order of appearance is preserved by the caller.
type BodyField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Body column names.
const (
	BodyColumnField = "Field"
	BodyColumnValue = "Value"
)
