package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDays is returned when a layout has no rations.
	ErrNoDays = errors.New("layout has no days")
	// ErrNoProducts is returned when no meal of the layout contains a product.
	ErrNoProducts = errors.New("layout has no products")
	// ErrInvalidEntry is returned for a product entry with a blank name or a negative or non-finite weight.
	ErrInvalidEntry = errors.New("invalid product entry")
)

func invalidEntry(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidEntry, fmt.Sprintf(format, args...))
}
