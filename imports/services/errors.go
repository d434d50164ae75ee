package services

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when neither the filename extension nor
// the declared content type identifies a parseable format.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ParseError reports a file whose bytes do not decode under its detected
// format. A corrupt file yields no usable data, so parsing aborts the
// whole request rather than continuing with zero records.
type ParseError struct {
	Format FileFormat
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s format: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
