package bitmap

import (
	"errors"
	"fmt"
)

var ErrUnsupportedImage = errors.New("unsupported image")

// Returned when an input image can't be reduced to a monochrome bitmap, e.g.
// because it has no pixels.
type UnsupportedImageError struct {
	Reason string
}

func (e *UnsupportedImageError) Error() string {
	return fmt.Sprintf("%v: %v", ErrUnsupportedImage, e.Reason)
}

func (e *UnsupportedImageError) Unwrap() error {
	return ErrUnsupportedImage
}
