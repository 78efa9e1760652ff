package regression

import (
	"errors"
	"fmt"
)

var (
	ErrLengthMismatch      = errors.New("size of the rasters differs")
	ErrInsufficientSamples = errors.New("at least two samples are required")
	// ErrNoSignificantModel is attached to the warning logged when no
	// candidate reaches the significance level. It is never returned.
	ErrNoSignificantModel = errors.New("no regression model reached statistical significance")
)

// InputError rejects a sample pair before any fit runs.
type InputError struct {
	Err  error
	LenX int
	LenY int
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid samples (x=%d, y=%d): %v", e.LenX, e.LenY, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// IsInputError reports whether err, or anything it wraps, is an *InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

func validate(x, y []float64) error {
	switch {
	case len(x) != len(y):
		return &InputError{Err: ErrLengthMismatch, LenX: len(x), LenY: len(y)}
	case len(x) < 2:
		return &InputError{Err: ErrInsufficientSamples, LenX: len(x), LenY: len(y)}
	}
	return nil
}
