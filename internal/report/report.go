// Package report renders a provisioning result as a purchase table.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Dmkdok/meal-planner/internal/provision"
)

const totalLabel = "ИТОГО"

// Header returns the column titles of the purchase table.
func Header(peopleCount, layoutDays int, mealTypesByDay [][]string) []string {
	header := []string{
		"Продукт",
		fmt.Sprintf("1 прием пищи на %d чел.", peopleCount),
	}
	for i := 0; i < layoutDays; i++ {
		var types []string
		if i < len(mealTypesByDay) {
			types = mealTypesByDay[i]
		}
		label := fmt.Sprintf("Рацион %d", i+1)
		if len(types) > 0 {
			label += " (" + strings.Join(types, ", ") + ")"
		}
		header = append(header, label)
	}
	return append(header, "Количество повторений", "Общий вес для покупки")
}

// Rows returns one row per product followed by the total row.
// Rations that contribute nothing to a product are left blank.
func Rows(result provision.Result) [][]string {
	layoutDays := result.Summary.LayoutDaysCount
	rows := make([][]string, 0, len(result.Products)+1)

	for _, p := range result.Products {
		row := make([]string, 0, layoutDays+4)
		row = append(row, p.Name, p.WeightPerMealForGroupText())
		for i := 0; i < layoutDays; i++ {
			cell := ""
			if i < len(p.UsageByRation) && p.UsageByRation[i] > 0 {
				cell = strconv.Itoa(p.UsageByRation[i])
			}
			row = append(row, cell)
		}
		row = append(row, strconv.Itoa(p.TotalOccurrences), p.TotalWeightText())
		rows = append(rows, row)
	}

	total := make([]string, layoutDays+4)
	total[0] = totalLabel
	total[len(total)-1] = result.Summary.TotalWeightText()
	return append(rows, total)
}

// WriteCSV writes the purchase table of result to w.
func WriteCSV(w io.Writer, result provision.Result, mealTypesByDay [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(result.Summary.PeopleCount, result.Summary.LayoutDaysCount, mealTypesByDay)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(Rows(result)); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// Table is the JSON form of the purchase table with the trip figures it was computed from.
type Table struct {
	Header            []string   `json:"header"`
	Rows              [][]string `json:"rows"`
	TripDays          int        `json:"tripDays"`
	PeopleCount       int        `json:"peopleCount"`
	LayoutDaysCount   int        `json:"layoutDaysCount"`
	LayoutRepetitions int        `json:"layoutRepetitions"`
	CyclesStarted     int        `json:"cyclesStarted"`
	TotalWeight       float64    `json:"totalWeight"`
	TotalWeightText   string     `json:"totalWeightText"`
}

// NewTable builds the purchase table of result.
func NewTable(result provision.Result, mealTypesByDay [][]string) Table {
	s := result.Summary
	return Table{
		Header:            Header(s.PeopleCount, s.LayoutDaysCount, mealTypesByDay),
		Rows:              Rows(result),
		TripDays:          s.TripDays,
		PeopleCount:       s.PeopleCount,
		LayoutDaysCount:   s.LayoutDaysCount,
		LayoutRepetitions: s.LayoutRepetitions,
		CyclesStarted:     s.CyclesStarted,
		TotalWeight:       s.TotalWeight,
		TotalWeightText:   s.TotalWeightText(),
	}
}

// WriteJSON writes the purchase table of result to w as indented JSON.
func WriteJSON(w io.Writer, result provision.Result, mealTypesByDay [][]string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewTable(result, mealTypesByDay)); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}
