package sequence

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrEntryNotFound    = errors.New("sequence entry not found")
	ErrUnknownReference = errors.New("unknown user or exercise")
	ErrReorderMismatch  = errors.New("entry ids must be exactly the entries of that day")
	ErrSortOrderClash   = errors.New("concurrent change to the same day, try again")
)

// Entry is one exercise scheduled on a plan day.
type Entry struct {
	ID               int    `json:"id"`
	UserID           int    `json:"user_id"`
	ExerciseID       int    `json:"exercise_id"`
	DayNumber        int    `json:"day_number"`
	SortOrder        int    `json:"sort_order"`
	ExerciseName     string `json:"exercise_name,omitempty"`
	ExerciseCategory string `json:"exercise_category,omitempty"`
}

type Day struct {
	DayNumber int     `json:"day_number"`
	Entries   []Entry `json:"entries"`
}

// GroupByDay groups entries by day number, days ascending and entries by sort order.
func GroupByDay(entries []Entry) []Day {
	byDay := make(map[int][]Entry)
	for _, e := range entries {
		byDay[e.DayNumber] = append(byDay[e.DayNumber], e)
	}

	days := make([]Day, 0, len(byDay))
	for dayNumber, dayEntries := range byDay {
		sort.SliceStable(dayEntries, func(i, j int) bool {
			return dayEntries[i].SortOrder < dayEntries[j].SortOrder
		})
		days = append(days, Day{DayNumber: dayNumber, Entries: dayEntries})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].DayNumber < days[j].DayNumber
	})

	return days
}

// CheckPermutation verifies that ids is a permutation of current.
func CheckPermutation(current, ids []int) error {
	if len(current) != len(ids) {
		return fmt.Errorf("%w: got %d ids, day has %d entries", ErrReorderMismatch, len(ids), len(current))
	}

	remaining := make(map[int]int, len(current))
	for _, id := range current {
		remaining[id]++
	}
	for _, id := range ids {
		if remaining[id] == 0 {
			return fmt.Errorf("%w: unexpected or repeated id %d", ErrReorderMismatch, id)
		}
		remaining[id]--
	}

	return nil
}
