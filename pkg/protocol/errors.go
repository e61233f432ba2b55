package protocol

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

var (
	// ErrMalformed is returned for bytes that are not a valid message.
	ErrMalformed = errors.New("malformed message")
	// ErrUnknownAction is returned when encoding an action the codec does not know.
	ErrUnknownAction = errors.New("unknown action")
)

func wrapMalformed(message string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrMalformed, message, err)
}

func wireTypeError(num protowire.Number, want, got protowire.Type) error {
	return fmt.Errorf("field %d: wire type %d, want %d", num, got, want)
}
