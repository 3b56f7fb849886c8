// Package titles normalises and classifies security class titles.
//
// Filings write warrants as "*W EXP MM/DD/YYYY", with "99/99/9999" when the
// expiry is undisclosed. NormalizeTitle rewrites those to a readable form
// and returns every other title unchanged, so normalisation is idempotent.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, parser, or service package
package titles
