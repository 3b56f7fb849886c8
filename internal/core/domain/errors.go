package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown section kind, manifest or output format.
	ErrUnsupportedType = errors.New("unsupported type")

	// Conversion Errors.

	// ErrMalformedDocument indicates the submission has no recognisable section
	// structure. It is fatal for the whole conversion; no record sets are produced.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrMissingRequiredField indicates a holdings entry lacks its CUSIP or issuer name.
	// The entry is skipped and reported as a Diagnostic; conversion continues.
	ErrMissingRequiredField = errors.New("missing required field")

	// Scrape Errors.

	// ErrFetchFailed indicates a remote page or submission could not be retrieved.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrNoSubmissionLink indicates a filing page has no submission text link.
	ErrNoSubmissionLink = errors.New("no submission text link")

	// ErrMissingPeriod indicates the period of report could not be determined.
	ErrMissingPeriod = errors.New("missing period of report")

	// ErrNoRoute indicates no routing rule matched a manifest name.
	ErrNoRoute = errors.New("no route")
)
