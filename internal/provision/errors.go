package provision

import (
	"fmt"

	"github.com/Dmkdok/meal-planner/internal/ration"
)

// ErrInvalidParameter is returned when a calculation input is outside its domain.
var ErrInvalidParameter = ration.ErrInvalidParameter

// ProductError reports a product whose weight or usage is negative or not a finite number.
// It unwraps to ErrInvalidParameter.
type ProductError struct {
	Product string
	Reason  string
}

func (e *ProductError) Error() string {
	return fmt.Sprintf("product %q: %s", e.Product, e.Reason)
}

func (e *ProductError) Unwrap() error {
	return ErrInvalidParameter
}
