package addressing

import "errors"

// ErrInvalidInput is returned for keys too short to address.
var ErrInvalidInput = errors.New("invalid input")
