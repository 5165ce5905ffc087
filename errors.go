package bananas

import (
	"errors"
	"fmt"
)

var (
	// Store errors.
	ErrStore        = errors.New("bananas: store operation failed")
	ErrClientClosed = errors.New("bananas: client closed")

	// Decoding errors. Distinct from not-found: the record exists but its
	// bytes do not match the expected encoding.
	ErrDeserialize = errors.New("bananas: cannot decode stored record")

	// Validation errors. Raised before any store round trip.
	ErrInvalidJob    = errors.New("bananas: invalid job")
	ErrInvalidResult = errors.New("bananas: invalid result")
	ErrInvalidID     = errors.New("bananas: invalid id")

	ErrScheduleRequired = fmt.Errorf("%w: scheduled_for is required", ErrInvalidJob)
)
