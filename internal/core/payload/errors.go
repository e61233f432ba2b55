package payload

import "errors"

// ErrMissingField is the cause of every structural validation failure.
var ErrMissingField = errors.New("required field missing")
