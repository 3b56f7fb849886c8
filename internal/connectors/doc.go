// Package connectors holds sources that feed submissions into conversion
// without going through EDGAR. The filesystem connector watches the raw
// submissions directory for files written by other tools.
package connectors
