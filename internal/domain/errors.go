package domain

import "errors"

// Error taxonomy (sentinels).
//
// The extraction boundary is the only place a resume analysis can fail:
// ErrUnsupportedFormat, ErrEmptyExtraction and ErrExtractionFailure are
// raised by the text extractor before or during decoding. Every stage
// after plain text is a total function that degrades to empty/zero
// values instead of returning an error.
var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrEmptyExtraction   = errors.New("no usable text extracted")
	ErrExtractionFailure = errors.New("document extraction failed")

	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrRateLimited     = errors.New("rate limited")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrInternal        = errors.New("internal error")
)
