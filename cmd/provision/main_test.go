package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Dmkdok/meal-planner/internal/layout"
	"github.com/Dmkdok/meal-planner/internal/provision"
	"github.com/Dmkdok/meal-planner/internal/report"
)

const plansYAML = `layouts:
  - name: Weekend
    days:
      - meals:
          - type: Завтрак
            products:
              - name: Овсянка
                weight: 80
          - type: Ужин
            products:
              - name: Гречка
                weight: 100
      - meals:
          - type: Завтрак
            products:
              - name: Овсянка
                weight: 80
  - name: Empty
    days:
      - meals: []
`

func writePlans(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(plansYAML), 0o600))
	return path
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"--layout", "plan.yaml", "--days", "7", "--people", "4"})
	require.NoError(t, err)
	assert.Equal(t, options{
		layoutFile:  "plan.yaml",
		tripDays:    7,
		peopleCount: 4,
		format:      formatCSV,
		logLevel:    "warn",
	}, opts)

	_, err = parseFlags([]string{"--days", "7", "--people", "4"})
	assert.Error(t, err, "layout is required")

	_, err = parseFlags([]string{"-l", "plan.yaml", "-d", "7", "-p", "4", "--format", "xlsx"})
	assert.Error(t, err, "unknown format")
}

func TestRunWritesCSV(t *testing.T) {
	var out bytes.Buffer
	err := run(options{
		layoutFile:  writePlans(t),
		tripDays:    3,
		peopleCount: 2,
		format:      formatCSV,
	}, &out, zaptest.NewLogger(t))
	require.NoError(t, err)

	records, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "Рацион 1 (Завтрак, Ужин)", records[0][2])
	// Овсянка 80 g x 2 people x 3 servings, Гречка 100 g x 2 people x 2 servings
	assert.Equal(t, []string{"Овсянка", "160 г", "2", "1", "3", "480 г"}, records[1])
	assert.Equal(t, []string{"Гречка", "200 г", "2", "", "2", "400 г"}, records[2])
	assert.Equal(t, "880 г", records[3][5])
}

func TestRunWritesJSON(t *testing.T) {
	var out bytes.Buffer
	err := run(options{
		layoutFile:  writePlans(t),
		name:        "weekend",
		tripDays:    3,
		peopleCount: 2,
		format:      formatJSON,
	}, &out, zaptest.NewLogger(t))
	require.NoError(t, err)

	var table report.Table
	require.NoError(t, json.Unmarshal(out.Bytes(), &table))
	assert.Equal(t, 880.0, table.TotalWeight)
	assert.Equal(t, 2, table.CyclesStarted)
}

func TestRunErrors(t *testing.T) {
	path := writePlans(t)
	logger := zaptest.NewLogger(t)

	err := run(options{layoutFile: path, name: "Empty", tripDays: 3, peopleCount: 2}, &bytes.Buffer{}, logger)
	assert.True(t, errors.Is(err, layout.ErrNoProducts), "got %v", err)

	err = run(options{layoutFile: path, name: "Missing", tripDays: 3, peopleCount: 2}, &bytes.Buffer{}, logger)
	assert.Error(t, err)

	err = run(options{layoutFile: path, tripDays: 0, peopleCount: 2}, &bytes.Buffer{}, logger)
	assert.True(t, errors.Is(err, provision.ErrInvalidParameter), "got %v", err)

	err = run(options{layoutFile: filepath.Join(t.TempDir(), "none.yaml"), tripDays: 1, peopleCount: 1}, &bytes.Buffer{}, logger)
	assert.Error(t, err)
}

func TestPickLayout(t *testing.T) {
	layouts := []layout.Layout{{Name: "First"}, {Name: "Second"}}

	got, err := pickLayout(layouts, "")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Name)

	got, err = pickLayout(layouts, " second ")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Name)

	_, err = pickLayout(nil, "")
	assert.Error(t, err)
}

func TestRunRejectsNonFiniteWeights(t *testing.T) {
	for _, raw := range []string{".nan", ".inf"} {
		path := filepath.Join(t.TempDir(), "plan.yaml")
		doc := "name: broken\ndays:\n  - meals:\n      - type: Ужин\n        products:\n          - name: Соль\n            weight: " + raw + "\n"
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		err := run(options{layoutFile: path, tripDays: 3, peopleCount: 2}, &bytes.Buffer{}, zaptest.NewLogger(t))
		assert.ErrorIs(t, err, layout.ErrInvalidEntry, raw)
	}
}
