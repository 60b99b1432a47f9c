package provision

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Dmkdok/meal-planner/internal/ration"
)

// Aggregate projects every product onto the ration repetitions of a trip.
// Results keep the input order and include products that are never eaten.
func Aggregate(products []Product, repetitions []int, peopleCount int) ([]ProductResult, Total, error) {
	if peopleCount < 1 {
		return nil, Total{}, ration.InvalidParameter("peopleCount", peopleCount)
	}
	if err := validateProducts(products); err != nil {
		return nil, Total{}, err
	}

	people := decimal.NewFromInt(int64(peopleCount))
	results := make([]ProductResult, 0, len(products))
	grandTotal := decimal.Zero

	for _, p := range products {
		perMeal := decimal.NewFromFloat(p.WeightPerMeal)
		perMealForGroup := perMeal.Mul(people)

		usage := make([]int, len(repetitions))
		occurrences := 0
		for i, reps := range repetitions {
			usage[i] = p.UsageByRation[i] * reps
			occurrences += usage[i]
		}

		total := perMealForGroup.Mul(decimal.NewFromInt(int64(occurrences)))
		grandTotal = grandTotal.Add(total)

		groupWeight, ok1 := finite(perMealForGroup)
		totalWeight, ok2 := finite(total)
		if !ok1 || !ok2 {
			return nil, Total{}, &ProductError{Product: p.Name, Reason: "total weight is out of range"}
		}

		results = append(results, ProductResult{
			Name:                  p.Name,
			WeightPerMeal:         p.WeightPerMeal,
			WeightPerMealForGroup: groupWeight,
			UsageByRation:         usage,
			TotalOccurrences:      occurrences,
			TotalWeight:           totalWeight,
			MissingWeight:         p.WeightPerMeal == 0,
		})
	}

	sum, ok := finite(grandTotal)
	if !ok {
		return nil, Total{}, fmt.Errorf("%w: trip total weight is out of range", ErrInvalidParameter)
	}
	return results, Total{
		ProductCount: len(results),
		TotalWeight:  sum,
	}, nil
}

// finite converts d to a float64, reporting false when it does not fit.
func finite(d decimal.Decimal) (float64, bool) {
	f := d.InexactFloat64()
	return f, !math.IsInf(f, 0) && !math.IsNaN(f)
}

func validateProducts(products []Product) error {
	for _, p := range products {
		if math.IsNaN(p.WeightPerMeal) || math.IsInf(p.WeightPerMeal, 0) {
			return &ProductError{Product: p.Name, Reason: fmt.Sprintf("weight per meal must be a finite number, got %g", p.WeightPerMeal)}
		}
		if p.WeightPerMeal < 0 {
			return &ProductError{Product: p.Name, Reason: fmt.Sprintf("weight per meal must not be negative, got %g", p.WeightPerMeal)}
		}
		for idx, count := range p.UsageByRation {
			if count < 0 {
				return &ProductError{Product: p.Name, Reason: fmt.Sprintf("usage of ration %d must not be negative, got %d", idx, count)}
			}
		}
	}
	return nil
}
