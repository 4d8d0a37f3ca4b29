package main

import (
	"math"
)

// goalAdjustment scales a meal's display values. Fat is never scaled.
type goalAdjustment struct {
	calories float64
	protein  float64
	carbs    float64
}

// goalAdjustments lists the goals that change portions; every other goal
// passes the plan through unchanged.
var goalAdjustments = map[goal]goalAdjustment{
	goalWeightLoss: {calories: 0.85, protein: 1, carbs: 0.80},
	goalMuscleGain: {calories: 1.15, protein: 1.30, carbs: 1},
}

func scaleRounded(v int, factor float64) int {
	return int(math.Round(float64(v) * factor))
}

// apply returns a scaled copy of m. Scaled macros are not reconciled against
// scaled calories.
func (a goalAdjustment) apply(m meal) meal {
	out := m.clone()
	out.Calories = scaleRounded(m.Calories, a.calories)
	out.Protein = scaleRounded(m.Protein, a.protein)
	out.Carbs = scaleRounded(m.Carbs, a.carbs)
	return out
}

// adjustForGoal returns a copy of week with every meal, snack included,
// scaled for the goal. The input week and the catalog are left untouched.
func adjustForGoal(week weekPlan, g goal) weekPlan {
	adj, ok := goalAdjustments[g]
	if !ok {
		adj = goalAdjustment{calories: 1, protein: 1, carbs: 1}
	}
	out := make(weekPlan, len(week))
	for i, d := range week {
		day := dayPlan{
			Day:       d.Day,
			Breakfast: adj.apply(d.Breakfast),
			Lunch:     adj.apply(d.Lunch),
			Dinner:    adj.apply(d.Dinner),
		}
		if d.Snack != nil {
			snack := adj.apply(*d.Snack)
			day.Snack = &snack
		}
		out[i] = day
	}
	return out
}
