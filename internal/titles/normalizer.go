package titles

import (
	"fmt"
	"regexp"
	"time"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

// ColumnClass is the default column holding class titles.
const ColumnClass = domain.HoldingColumnClassTitle

// Display forms for warrant titles.
const (
	warrantExpires = "Warrant (expires %s)"
	warrantUnknown = "Warrant (expiry unknown)"
	unknownExpiry  = "99/99/9999"
)

// warrantTitle matches the whole title, tolerating surrounding whitespace.
var warrantTitle = regexp.MustCompile(`(?i)^\s*\*W\s*EXP\s*(\d{2}/\d{2}/\d{4})\s*$`)

// NormalizeTitle returns the display form of a class title. Warrant
// notation with a real calendar date or the unknown-expiry placeholder is
// rewritten; anything else, including impossible dates, is returned as is.
func NormalizeTitle(title string) string {
	m := warrantTitle.FindStringSubmatch(title)
	if m == nil {
		return title
	}
	if m[1] == unknownExpiry {
		return warrantUnknown
	}
	expiry, err := time.Parse("01/02/2006", m[1])
	if err != nil {
		return title
	}
	return fmt.Sprintf(warrantExpires, expiry.Format(time.DateOnly))
}

// NormalizeTitles normalises each title. The result has the same length
// and order as the input.
func NormalizeTitles(titles []string) []string {
	out := make([]string, len(titles))
	for i, t := range titles {
		out[i] = NormalizeTitle(t)
	}
	return out
}

// ColumnTarget says where NormalizeColumn writes its output. The zero
// value names no target and is rejected.
type ColumnTarget struct {
	name    string
	inPlace bool
}

// InPlace overwrites the source column.
func InPlace() ColumnTarget {
	return ColumnTarget{inPlace: true}
}

// Into writes to the named column, adding it when absent.
func Into(name string) ColumnTarget {
	return ColumnTarget{name: name}
}

// NormalizeColumn normalises every value of column in rs and writes the
// result to target. Returns ErrNotFound when the column does not exist
// and ErrInvalidInput when target names no column.
func NormalizeColumn(rs *domain.RecordSet, column string, target ColumnTarget) error {
	return mapColumn(rs, column, target, NormalizeTitle)
}

func mapColumn(rs *domain.RecordSet, column string, target ColumnTarget, fn func(string) string) error {
	out := column
	if !target.inPlace {
		if target.name == "" {
			return fmt.Errorf("output column is required: %w", domain.ErrInvalidInput)
		}
		out = target.name
	}

	values, err := rs.Column(column)
	if err != nil {
		return err
	}
	for i, v := range values {
		values[i] = fn(v)
	}

	if err := rs.SetColumn(out, values); err != nil {
		return fmt.Errorf("writing column %s: %w", out, err)
	}
	return nil
}
