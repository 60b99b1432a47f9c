package api

import (
	"time"

	"github.com/Dmkdok/meal-planner/internal/layout"
	"github.com/Dmkdok/meal-planner/internal/provision"
)

const backupVersion = 1

type layoutPayload struct {
	Name string       `json:"name"`
	Days []layout.Day `json:"days"`
}

type productPayload struct {
	Name          string      `json:"name"`
	WeightPerMeal float64     `json:"weightPerMeal"`
	UsageByRation map[int]int `json:"usageByRation"`
}

type calculateRequest struct {
	LayoutID        string           `json:"layoutId"`
	LayoutDaysCount int              `json:"layoutDaysCount"`
	Products        []productPayload `json:"products"`
	TripDays        int              `json:"tripDays"`
	PeopleCount     int              `json:"peopleCount"`
}

func (r calculateRequest) toProvision() provision.Request {
	products := make([]provision.Product, 0, len(r.Products))
	for _, p := range r.Products {
		products = append(products, provision.Product{
			Name:          p.Name,
			WeightPerMeal: p.WeightPerMeal,
			UsageByRation: p.UsageByRation,
		})
	}
	return provision.Request{
		LayoutDaysCount: r.LayoutDaysCount,
		TripDays:        r.TripDays,
		PeopleCount:     r.PeopleCount,
		Products:        products,
	}
}

type productResultResponse struct {
	Name                      string  `json:"name"`
	WeightPerMeal             float64 `json:"weightPerMeal"`
	WeightPerMealForGroup     float64 `json:"weightPerMealForGroup"`
	WeightPerMealForGroupText string  `json:"weightPerMealForGroupText"`
	UsageByRation             []int   `json:"usageByRation"`
	TotalOccurrences          int     `json:"totalOccurrences"`
	TotalWeight               float64 `json:"totalWeight"`
	TotalWeightText           string  `json:"totalWeightText"`
	MissingWeight             bool    `json:"missingWeight,omitempty"`
}

type summaryResponse struct {
	TripDays          int     `json:"tripDays"`
	PeopleCount       int     `json:"peopleCount"`
	LayoutDaysCount   int     `json:"layoutDaysCount"`
	LayoutRepetitions int     `json:"layoutRepetitions"`
	ActualDaysUsed    int     `json:"actualDaysUsed"`
	CyclesStarted     int     `json:"cyclesStarted"`
	LayoutDaysPlanned int     `json:"layoutDaysPlanned"`
	ProductCount      int     `json:"productCount"`
	TotalWeight       float64 `json:"totalWeight"`
	TotalWeightText   string  `json:"totalWeightText"`
}

type calculateResponse struct {
	LayoutID          string                  `json:"layoutId,omitempty"`
	Products          []productResultResponse `json:"products"`
	Summary           summaryResponse         `json:"summary"`
	Repetitions       []int                   `json:"repetitions"`
	MealTypesByDay    [][]string              `json:"mealTypesByDay,omitempty"`
	CalculationTimeMs int64                   `json:"calculationTimeMs"`
}

func newCalculateResponse(result provision.Result) calculateResponse {
	products := make([]productResultResponse, 0, len(result.Products))
	for _, p := range result.Products {
		products = append(products, productResultResponse{
			Name:                      p.Name,
			WeightPerMeal:             p.WeightPerMeal,
			WeightPerMealForGroup:     p.WeightPerMealForGroup,
			WeightPerMealForGroupText: p.WeightPerMealForGroupText(),
			UsageByRation:             p.UsageByRation,
			TotalOccurrences:          p.TotalOccurrences,
			TotalWeight:               p.TotalWeight,
			TotalWeightText:           p.TotalWeightText(),
			MissingWeight:             p.MissingWeight,
		})
	}

	s := result.Summary
	return calculateResponse{
		Products:    products,
		Repetitions: result.Repetitions,
		Summary: summaryResponse{
			TripDays:          s.TripDays,
			PeopleCount:       s.PeopleCount,
			LayoutDaysCount:   s.LayoutDaysCount,
			LayoutRepetitions: s.LayoutRepetitions,
			ActualDaysUsed:    s.ActualDaysUsed,
			CyclesStarted:     s.CyclesStarted,
			LayoutDaysPlanned: s.LayoutDaysPlanned,
			ProductCount:      s.ProductCount,
			TotalWeight:       s.TotalWeight,
			TotalWeightText:   s.TotalWeightText(),
		},
	}
}

type layoutsResponse struct {
	Layouts []layout.Layout `json:"layouts"`
}

type backupPayload struct {
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exportedAt"`
	Layouts    []layout.Layout `json:"layouts"`
}

type importResponse struct {
	Imported int    `json:"imported"`
	Replaced bool   `json:"replaced"`
	Message  string `json:"message"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}
