package ration

// Schedule is the projection of a layout of LayoutDays rations onto a trip of TripDays days.
type Schedule struct {
	TripDays   int
	LayoutDays int
	// Repetitions[i] is the number of trip days on which ration i is eaten.
	Repetitions []int
}

// NewSchedule validates the parameters and computes the repetitions of every ration.
func NewSchedule(tripDays, layoutDays int) (Schedule, error) {
	reps, err := Repetitions(tripDays, layoutDays)
	if err != nil {
		return Schedule{}, err
	}
	return Schedule{
		TripDays:    tripDays,
		LayoutDays:  layoutDays,
		Repetitions: reps,
	}, nil
}

// Repetitions returns, for each ration index in [0, layoutDays), how many trip days realize it.
// The counts always sum to tripDays.
func Repetitions(tripDays, layoutDays int) ([]int, error) {
	if tripDays < 1 {
		return nil, InvalidParameter("tripDays", tripDays)
	}
	if layoutDays < 1 {
		return nil, InvalidParameter("layoutDaysCount", layoutDays)
	}

	reps := make([]int, layoutDays)
	for i := range reps {
		if i >= tripDays {
			break
		}
		reps[i] = (tripDays-i-1)/layoutDays + 1
	}
	return reps, nil
}

// LayoutRepetitions is the number of complete passes over the layout.
func (s Schedule) LayoutRepetitions() int {
	if s.LayoutDays < 1 {
		return 0
	}
	return s.TripDays / s.LayoutDays
}

// ActualDaysUsed is the number of trip days realized by some ration.
func (s Schedule) ActualDaysUsed() int {
	used := min(s.TripDays, s.LayoutDays)
	return used + (s.TripDays - used)
}

// CyclesStarted counts layout passes including a trailing partial one.
func (s Schedule) CyclesStarted() int {
	if s.LayoutDays < 1 {
		return 0
	}
	return (s.TripDays + s.LayoutDays - 1) / s.LayoutDays
}

// LayoutDaysPlanned is the number of ration days covered when every started pass is completed.
func (s Schedule) LayoutDaysPlanned() int {
	return s.CyclesStarted() * s.LayoutDays
}

// Count returns the repetitions of ration i, or 0 when i is outside the layout.
func (s Schedule) Count(i int) int {
	if i < 0 || i >= len(s.Repetitions) {
		return 0
	}
	return s.Repetitions[i]
}
