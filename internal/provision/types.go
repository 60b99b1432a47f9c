package provision

import "github.com/Dmkdok/meal-planner/internal/weight"

// Product is one purchasable item of a layout.
type Product struct {
	Name string
	// WeightPerMeal is the grams of one serving for one person; zero when unknown.
	WeightPerMeal float64
	// UsageByRation maps a ration index to the number of servings inside that ration.
	// Missing indexes count as zero.
	UsageByRation map[int]int
}

// Request carries everything a calculation needs.
type Request struct {
	LayoutDaysCount int
	TripDays        int
	PeopleCount     int
	Products        []Product
}

// ProductResult is the purchase projection for one product.
type ProductResult struct {
	Name                  string
	WeightPerMeal         float64
	WeightPerMealForGroup float64
	// UsageByRation[i] is the number of servings coming from ration i over the whole trip.
	UsageByRation    []int
	TotalOccurrences int
	TotalWeight      float64
	// MissingWeight reports a product without a serving weight; it contributes nothing to totals.
	MissingWeight bool
}

// WeightPerMealForGroupText is the display form of WeightPerMealForGroup.
func (r ProductResult) WeightPerMealForGroupText() string {
	return weight.Format(r.WeightPerMealForGroup)
}

// TotalWeightText is the display form of TotalWeight.
func (r ProductResult) TotalWeightText() string {
	return weight.Format(r.TotalWeight)
}

// Total aggregates all products of a calculation.
type Total struct {
	ProductCount int
	TotalWeight  float64
}

// Summary describes the trip and how the layout maps onto it.
type Summary struct {
	TripDays          int
	PeopleCount       int
	LayoutDaysCount   int
	LayoutRepetitions int
	ActualDaysUsed    int
	CyclesStarted     int
	LayoutDaysPlanned int
	ProductCount      int
	TotalWeight       float64
}

// TotalWeightText is the display form of TotalWeight.
func (s Summary) TotalWeightText() string {
	return weight.Format(s.TotalWeight)
}

// Result holds the per-product rows and the trip summary of one calculation.
type Result struct {
	Products    []ProductResult
	Summary     Summary
	Repetitions []int
}

// Calculator describes the behaviour required from a provisioning calculator.
type Calculator interface {
	Calculate(req Request) (Result, error)
}
