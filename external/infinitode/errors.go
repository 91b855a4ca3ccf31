package infinitode

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var (
	// ErrBadArgument is returned before any request is sent when a map name, player id,
	// mode, difficulty or date is rejected.
	ErrBadArgument = crerr.New("bad argument")
	// ErrAPI covers every failure after a request was attempted.
	ErrAPI = crerr.New("infinitode api error")
)

func badArgument(field string, value any) error {
	return fmt.Errorf("invalid %s %q: %w", field, fmt.Sprint(value), ErrBadArgument)
}

func apiErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAPI, fmt.Sprintf(format, args...))
}
