package layout

import (
	"math"
	"strings"
	"time"

	"github.com/Dmkdok/meal-planner/internal/provision"
)

// DefaultMealTypes are the meals of a freshly created layout day.
var DefaultMealTypes = []string{"Завтрак", "Обед/Перекус", "Ужин"}

// Entry is one product served in a meal; Weight is grams for one person.
type Entry struct {
	Name   string  `json:"name" yaml:"name"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Meal groups the entries eaten together.
type Meal struct {
	Type     string  `json:"type" yaml:"type"`
	Products []Entry `json:"products" yaml:"products"`
}

// Day is one ration of the layout.
type Day struct {
	Meals []Meal `json:"meals" yaml:"meals"`
}

// Layout is a cyclic sequence of rations.
type Layout struct {
	ID        string    `json:"id" yaml:"id,omitempty"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"-"`
	Days      []Day     `json:"days" yaml:"days"`
}

// Default returns a one-day layout with the default meals and no products.
func Default(name string) Layout {
	meals := make([]Meal, 0, len(DefaultMealTypes))
	for _, mealType := range DefaultMealTypes {
		meals = append(meals, Meal{Type: mealType, Products: []Entry{}})
	}
	return Layout{
		Name: name,
		Days: []Day{{Meals: meals}},
	}
}

// DaysCount is the number of rations in the layout.
func (l Layout) DaysCount() int {
	return len(l.Days)
}

// Validate checks that the layout can be used for a calculation.
func (l Layout) Validate() error {
	if len(l.Days) == 0 {
		return ErrNoDays
	}
	entries := 0
	for _, day := range l.Days {
		for _, meal := range day.Meals {
			for _, entry := range meal.Products {
				if strings.TrimSpace(entry.Name) == "" {
					return invalidEntry("product name must not be blank")
				}
				if math.IsNaN(entry.Weight) || math.IsInf(entry.Weight, 0) {
					return invalidEntry("weight of %q must be a finite number", entry.Name)
				}
				if entry.Weight < 0 {
					return invalidEntry("weight of %q must not be negative", entry.Name)
				}
				entries++
			}
		}
	}
	if entries == 0 {
		return ErrNoProducts
	}
	return nil
}

// Products folds the layout into calculator input, one product per distinct name in order of
// first appearance. The weight per meal is the average entry weight of that name and usage
// counts the entries of that name on each day.
func (l Layout) Products() []provision.Product {
	type tally struct {
		weight      float64
		occurrences int
		usage       map[int]int
	}

	order := make([]string, 0)
	tallies := make(map[string]*tally)

	for dayIndex, day := range l.Days {
		for _, meal := range day.Meals {
			for _, entry := range meal.Products {
				t, ok := tallies[entry.Name]
				if !ok {
					t = &tally{usage: make(map[int]int)}
					tallies[entry.Name] = t
					order = append(order, entry.Name)
				}
				t.weight += entry.Weight
				t.occurrences++
				t.usage[dayIndex]++
			}
		}
	}

	products := make([]provision.Product, 0, len(order))
	for _, name := range order {
		t := tallies[name]
		products = append(products, provision.Product{
			Name:          name,
			WeightPerMeal: t.weight / float64(t.occurrences),
			UsageByRation: t.usage,
		})
	}
	return products
}

// MealTypesByDay lists, per day, the meal types that contain at least one product.
func (l Layout) MealTypesByDay() [][]string {
	out := make([][]string, 0, len(l.Days))
	for _, day := range l.Days {
		types := make([]string, 0, len(day.Meals))
		for _, meal := range day.Meals {
			if len(meal.Products) > 0 {
				types = append(types, meal.Type)
			}
		}
		out = append(out, types)
	}
	return out
}

// Request builds a calculation request for a trip of tripDays days and peopleCount people.
func (l Layout) Request(tripDays, peopleCount int) provision.Request {
	return provision.Request{
		LayoutDaysCount: l.DaysCount(),
		TripDays:        tripDays,
		PeopleCount:     peopleCount,
		Products:        l.Products(),
	}
}

// Clone returns a deep copy of the layout.
func (l Layout) Clone() Layout {
	out := l
	if l.Days == nil {
		return out
	}
	out.Days = make([]Day, len(l.Days))
	for i, day := range l.Days {
		meals := make([]Meal, len(day.Meals))
		for j, meal := range day.Meals {
			meals[j] = Meal{Type: meal.Type, Products: append([]Entry{}, meal.Products...)}
		}
		out.Days[i] = Day{Meals: meals}
	}
	return out
}
