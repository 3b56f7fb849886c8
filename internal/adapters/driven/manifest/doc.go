// Package manifest reads filing-link manifests.
//
// A manifest lists EDGAR filing index pages to download. The manifest's file
// stem is its name; the scrape service routes on that name to pick the
// directory submissions are saved under.
//
// Two formats are supported:
//
//   - YAML (.yaml, .yml): a list of links, or a mapping with a "links" key.
//   - Excel workbooks (.xlsx): every sheet is scanned for a form type column
//     and a filing URL column, matched case-insensitively by header name.
package manifest
