package ration

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepetitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		tripDays   int
		layoutDays int
		want       []int
	}{
		{name: "LayoutShorterThanTrip", tripDays: 7, layoutDays: 3, want: []int{3, 2, 2}},
		{name: "LayoutLongerThanTrip", tripDays: 3, layoutDays: 5, want: []int{1, 1, 1, 0, 0}},
		{name: "ExactMultiple", tripDays: 6, layoutDays: 3, want: []int{2, 2, 2}},
		{name: "SingleDayLayout", tripDays: 10, layoutDays: 1, want: []int{10}},
		{name: "SingleDayTrip", tripDays: 1, layoutDays: 4, want: []int{1, 0, 0, 0}},
		{name: "EqualLengths", tripDays: 4, layoutDays: 4, want: []int{1, 1, 1, 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Repetitions(tc.tripDays, tc.layoutDays)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRepetitionsSumToTripDays(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 40; n++ {
		for l := 1; l <= 15; l++ {
			reps, err := Repetitions(n, l)
			require.NoError(t, err)
			require.Len(t, reps, l)

			sum := 0
			for _, r := range reps {
				sum += r
			}
			assert.Equal(t, n, sum, "N=%d L=%d", n, l)
		}
	}
}

func TestRepetitionsFairDistribution(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 40; n++ {
		for l := 1; l <= 15; l++ {
			reps, err := Repetitions(n, l)
			require.NoError(t, err)

			for i, r := range reps {
				switch {
				case l > n && i >= n:
					assert.Zero(t, r, "N=%d L=%d i=%d", n, l, i)
				case l <= n:
					assert.Contains(t, []int{n / l, n/l + 1}, r, "N=%d L=%d i=%d", n, l, i)
				default:
					assert.Equal(t, 1, r, "N=%d L=%d i=%d", n, l, i)
				}
			}
		}
	}
}

func TestRepetitionsRejectsInvalidParameters(t *testing.T) {
	t.Parallel()

	cases := []struct {
		tripDays, layoutDays int
		param                string
	}{
		{0, 3, "tripDays"},
		{-2, 3, "tripDays"},
		{7, 0, "layoutDaysCount"},
		{7, -1, "layoutDaysCount"},
		{0, 0, "tripDays"},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("N=%d,L=%d", tc.tripDays, tc.layoutDays), func(t *testing.T) {
			t.Parallel()

			reps, err := Repetitions(tc.tripDays, tc.layoutDays)
			require.ErrorIs(t, err, ErrInvalidParameter)
			assert.Nil(t, reps)

			var perr *ParameterError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tc.param, perr.Name)
		})
	}
}

func TestScheduleSummary(t *testing.T) {
	t.Parallel()

	s, err := NewSchedule(7, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, s.LayoutRepetitions())
	assert.Equal(t, 7, s.ActualDaysUsed())
	assert.Equal(t, 3, s.CyclesStarted())
	assert.Equal(t, 9, s.LayoutDaysPlanned())
	assert.Equal(t, 3, s.Count(0))
	assert.Zero(t, s.Count(3))
	assert.Zero(t, s.Count(-1))

	short, err := NewSchedule(3, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, short.LayoutRepetitions())
	assert.Equal(t, 3, short.ActualDaysUsed())
	assert.Equal(t, 1, short.CyclesStarted())
	assert.Equal(t, 5, short.LayoutDaysPlanned())
}

func TestNewScheduleRejectsInvalidParameters(t *testing.T) {
	t.Parallel()

	_, err := NewSchedule(0, 1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.EqualError(t, err, "tripDays must be a positive integer, got 0")
}
