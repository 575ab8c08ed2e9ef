package escpos

import (
	"errors"
	"fmt"
)

var ErrRange = errors.New("value out of range")

// Returned when a number doesn't fit in the protocol field reserved for it, or
// when a field width outside 1-4 bytes is requested. Values are never
// truncated, a wrapped length would corrupt the rest of the stream.
type RangeError struct {
	Field string
	Value uint64
	// Largest value the field can hold. Zero when the byte count itself was invalid.
	Max uint64
	// Field width in bytes
	Bytes int
}

func (e *RangeError) Error() string {
	if e.Bytes < minFieldBytes || e.Bytes > maxFieldBytes {
		return fmt.Sprintf("%v: %s can only be encoded in %d-%d bytes, not %d",
			ErrRange, e.Field, minFieldBytes, maxFieldBytes, e.Bytes)
	}
	return fmt.Sprintf("%v: %s is %d, can only output up to %d in %d bytes",
		ErrRange, e.Field, e.Value, e.Max, e.Bytes)
}

func (e *RangeError) Unwrap() error {
	return ErrRange
}
