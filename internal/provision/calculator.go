package provision

import (
	"github.com/Dmkdok/meal-planner/internal/ration"
)

type layoutCalculator struct{}

// New creates a Calculator that expands a cyclic layout over a trip.
func New() Calculator {
	return &layoutCalculator{}
}

// Calculate rejects the request as a whole when any trip parameter is invalid.
// The scheduler and the aggregator each run exactly once.
func (c *layoutCalculator) Calculate(req Request) (Result, error) {
	if err := validateRequest(req); err != nil {
		return Result{}, err
	}

	schedule, err := ration.NewSchedule(req.TripDays, req.LayoutDaysCount)
	if err != nil {
		return Result{}, err
	}

	products, total, err := Aggregate(req.Products, schedule.Repetitions, req.PeopleCount)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Products:    products,
		Repetitions: schedule.Repetitions,
		Summary: Summary{
			TripDays:          req.TripDays,
			PeopleCount:       req.PeopleCount,
			LayoutDaysCount:   req.LayoutDaysCount,
			LayoutRepetitions: schedule.LayoutRepetitions(),
			ActualDaysUsed:    schedule.ActualDaysUsed(),
			CyclesStarted:     schedule.CyclesStarted(),
			LayoutDaysPlanned: schedule.LayoutDaysPlanned(),
			ProductCount:      total.ProductCount,
			TotalWeight:       total.TotalWeight,
		},
	}, nil
}

func validateRequest(req Request) error {
	if req.TripDays < 1 {
		return ration.InvalidParameter("tripDays", req.TripDays)
	}
	if req.PeopleCount < 1 {
		return ration.InvalidParameter("peopleCount", req.PeopleCount)
	}
	if req.LayoutDaysCount < 1 {
		return ration.InvalidParameter("layoutDaysCount", req.LayoutDaysCount)
	}
	return validateProducts(req.Products)
}
