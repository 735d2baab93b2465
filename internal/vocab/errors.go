package vocab

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable is returned when vocabulary cannot be fetched and
	// no cached copy exists.
	ErrDataUnavailable = errors.New("vocabulary data unavailable")

	// ErrUnknownLevel is returned for level ids outside the supported set.
	ErrUnknownLevel = errors.New("unknown level")
)

// SchemaError indicates a vocabulary payload that does not match the
// lesson file schema.
type SchemaError struct {
	Source string
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid vocabulary data from %s: %v", e.Source, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }
