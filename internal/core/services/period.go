package services

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

// Period layouts.
const (
	periodLayout   = "20060102"
	bodyDateLayout = "01-02-2006"
)

// Body keys that carry the period of report, in order of preference.
var bodyPeriodKeys = []string{"periodOfReport", "reportCalendarOrQuarter"}

// Period patterns in raw submission text.
var (
	headerPeriod = regexp.MustCompile(`(?i)CONFORMED\s+PERIOD\s+OF\s+REPORT:\s*(\d{8})`)
	bodyPeriod   = regexp.MustCompile(`(?i)<(?:[\w.-]+:)?periodOfReport>([^<]+)</`)
)

// UnknownIssuer is the issuer name used when none can be derived from a path.
const UnknownIssuer = "unknown_issuer"

// ResolvePeriod returns the period of report as YYYYMMDD. It prefers the
// header's period, then the body's period fields, then the filed date, and
// finally falls back to the date of now.
func ResolvePeriod(conv *domain.Conversion, now time.Time) string {
	if conv != nil && conv.HeaderRecord != nil {
		if p, ok := compactDate(conv.HeaderRecord.Get(domain.HeaderPeriodOfReport)); ok {
			return p
		}
	}

	if conv != nil {
		for _, key := range bodyPeriodKeys {
			for _, f := range conv.BodyFields {
				if !strings.EqualFold(f.Key, key) {
					continue
				}
				if p, ok := bodyDate(f.Value); ok {
					return p
				}
			}
		}
	}

	if conv != nil && conv.HeaderRecord != nil {
		if p, ok := compactDate(conv.HeaderRecord.Get(domain.HeaderFiledDate)); ok {
			return p
		}
	}

	return now.Format(periodLayout)
}

func compactDate(v string) (string, bool) {
	v = strings.TrimSpace(v)
	t, err := time.Parse(periodLayout, v)
	if err != nil {
		return "", false
	}
	return t.Format(periodLayout), true
}

func bodyDate(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(bodyDateLayout, v); err == nil {
		return t.Format(periodLayout), true
	}
	return compactDate(v)
}

// IssuerFromPath derives the issuer directory name for a submission path.
// For <...>/<rawDir>/<issuer>/<file> it is the directory after the raw
// directory; otherwise the file's parent directory name.
func IssuerFromPath(path, rawDir string) string {
	parts := strings.Split(filepath.ToSlash(filepath.Clean(path)), "/")

	if rawBase := filepath.Base(filepath.Clean(rawDir)); rawDir != "" && rawBase != "." && rawBase != "/" {
		for i := len(parts) - 3; i >= 0; i-- {
			if parts[i] == rawBase && parts[i+1] != "" {
				return parts[i+1]
			}
		}
	}

	if len(parts) >= 2 {
		if parent := parts[len(parts)-2]; parent != "" && parent != "." && parent != ".." {
			return parent
		}
	}
	return UnknownIssuer
}

// PeriodFromSubmission finds the period of report in raw submission text
// without parsing it, as YYYYMMDD. Returns "" when there is none.
func PeriodFromSubmission(text string) string {
	if m := headerPeriod.FindStringSubmatch(text); m != nil {
		if p, ok := compactDate(m[1]); ok {
			return p
		}
	}
	if m := bodyPeriod.FindStringSubmatch(text); m != nil {
		if p, ok := bodyDate(m[1]); ok {
			return p
		}
	}
	return ""
}
