package vtcore

import "errors"

// ErrOutOfBounds is returned when a cell or row index falls outside the
// buffer's current dimensions.
var ErrOutOfBounds = errors.New("vtcore: index out of bounds")

// ErrLengthMismatch is returned by SetRow when the supplied row's length
// does not equal the buffer's column count.
var ErrLengthMismatch = errors.New("vtcore: row length mismatch")
