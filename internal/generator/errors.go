package generator

import (
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/passgen/internal/charset"
)

var (
	// ErrInvalidLength is returned when the requested length is not positive.
	ErrInvalidLength = errors.New("password length must be positive")
	// ErrUnknownClass is returned when a request names a class the registry lacks.
	ErrUnknownClass = errors.New("unknown character class")
	// ErrInsufficientAlphabet is returned when the active classes hold fewer
	// characters than the requested length.
	ErrInsufficientAlphabet = errors.New("password length too big for available characters variations")
	// ErrTooManyClasses is returned when more classes are active than there
	// are positions to pin them to.
	ErrTooManyClasses = errors.New("password length too small to use current amount of sets")
	// ErrUniquenessTimeout is returned when no unissued candidate was found
	// before the deadline.
	ErrUniquenessTimeout = errors.New("timeout while trying to generate a unique password")
	// ErrPoolExhausted is returned by a pool that has no characters left for a class.
	ErrPoolExhausted = errors.New("character pool exhausted")
	// ErrAllPoolsExhausted signals a broken invariant: a position could not be
	// filled from any active class. Validation makes it unreachable.
	ErrAllPoolsExhausted = errors.New("unexpected end of available sets")
)

// GenerationError describes a failed Generate call. It unwraps to one of the
// sentinel errors above, or to the fingerprint store error that aborted it.
type GenerationError struct {
	Err       error
	Length    int
	Classes   []charset.Class
	Available int
	Attempts  int
	Elapsed   time.Duration
}

func (e *GenerationError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInsufficientAlphabet):
		return fmt.Sprintf("password length (%d) too big for available characters variations (%d)",
			e.Length, e.Available)
	case errors.Is(e.Err, ErrTooManyClasses):
		return fmt.Sprintf("password length (%d) too small to use current amount of sets (%d)",
			e.Length, len(e.Classes))
	case errors.Is(e.Err, ErrUniquenessTimeout):
		return fmt.Sprintf("%v: %d attempts in %s (length %d, classes %v)",
			e.Err, e.Attempts, e.Elapsed.Round(time.Millisecond), e.Length, e.Classes)
	default:
		return fmt.Sprintf("%v (length %d, classes %v)", e.Err, e.Length, e.Classes)
	}
}

func (e *GenerationError) Unwrap() error { return e.Err }
