package memory

import (
	"errors"

	"github.com/ezrec/rvi/translate"
)

var f = translate.From

var (
	// Store errors
	ErrAllocation = errors.New(f("bucket allocation failed"))

	// Image errors
	ErrImageAddress = errors.New(f("image address invalid"))
	ErrImageValue   = errors.New(f("image byte invalid"))
)

// ErrImageSyntax reports the line of a memory image that could not be parsed.
type ErrImageSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrImageSyntax) Error() string {
	return f("image line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrImageSyntax) Unwrap() error {
	return err.Err
}
