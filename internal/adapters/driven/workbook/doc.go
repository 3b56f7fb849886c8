// Package workbook writes conversion record sets to disk.
//
// The xlsx writer produces one workbook with a sheet per record set, in the
// order InfoTable, FilingData, 13F-HR. The csv writer produces one file per
// record set. Both honour the configured overwrite policy; a group of csv
// files is always resolved together so its members stay paired.
package workbook
