package main

import (
	"time"
)

// weekdays is the fixed plan order; index 0 is Monday.
var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// dayPlan is one day's selection, one meal per slot plus an optional snack.
type dayPlan struct {
	Day       string `json:"day"`
	Breakfast meal   `json:"breakfast"`
	Lunch     meal   `json:"lunch"`
	Dinner    meal   `json:"dinner"`
	Snack     *meal  `json:"snack,omitempty"`
}

// mealFor returns the day's meal for s.
func (d dayPlan) mealFor(s slot) (meal, bool) {
	switch s {
	case slotBreakfast:
		return d.Breakfast, true
	case slotLunch:
		return d.Lunch, true
	case slotDinner:
		return d.Dinner, true
	case slotSnack:
		if d.Snack != nil {
			return *d.Snack, true
		}
	}
	return meal{}, false
}

// weekPlan is seven dayPlans, Monday first.
type weekPlan []dayPlan

// day looks up a day by its lower-case weekday name.
func (w weekPlan) day(name string) (dayPlan, bool) {
	for _, d := range w {
		if d.Day == name {
			return d, true
		}
	}
	return dayPlan{}, false
}

// needsSnack reports whether the profile gets the daily snack: muscle gain, or
// an active or very active lifestyle.
func needsSnack(g goal, level activityLevel) bool {
	return g == goalMuscleGain || level == activityActive || level == activityVeryActive
}

// pickRotating returns a copy of meals[i mod len]. An empty slot yields the
// zero meal; filterCatalog rejects empty slots before assembly.
func pickRotating(meals []meal, i int) meal {
	if len(meals) == 0 {
		return meal{}
	}
	return meals[i%len(meals)].clone()
}

// assembleWeeklyPlan rotates each slot's filtered meals across Monday..Sunday
// independently. The same catalog always yields the same week. The catalog's
// snack, if it survived filtering, is added to every day when needsSnack.
func assembleWeeklyPlan(c mealCatalog, g goal, level activityLevel) weekPlan {
	withSnack := c.Snack != nil && needsSnack(g, level)
	week := make(weekPlan, len(weekdays))
	for i, name := range weekdays {
		day := dayPlan{
			Day:       name,
			Breakfast: pickRotating(c.Breakfast, i),
			Lunch:     pickRotating(c.Lunch, i),
			Dinner:    pickRotating(c.Dinner, i),
		}
		if withSnack {
			snack := c.Snack.clone()
			day.Snack = &snack
		}
		week[i] = day
	}
	return week
}

// weekdayIndex returns t's position in weekdays. Sunday is treated as day 7,
// so Monday=0..Sunday=6.
func weekdayIndex(t time.Time) int {
	weekday := int(t.Weekday()) // 0=Sun
	if weekday == 0 {
		weekday = 7
	}
	return weekday - 1
}
