package main

import (
	"reflect"
	"testing"
)

// chickenSaladWeek is a one-day week whose lunch is the 420 kcal / 25 g carb
// Grilled Chicken Salad.
func chickenSaladWeek(withSnack bool) weekPlan {
	c := defaultCatalog()
	d := dayPlan{Day: "monday", Breakfast: c.Breakfast[0], Lunch: c.Lunch[1], Dinner: c.Dinner[0]}
	if withSnack {
		d.Snack = c.Snack
	}
	return weekPlan{d}
}

func TestAdjustForGoal_WeightLoss(t *testing.T) {
	got := adjustForGoal(chickenSaladWeek(false), goalWeightLoss)[0].Lunch

	if got.Calories != 357 {
		t.Errorf("expected 357 kcal, got %d", got.Calories)
	}
	if got.Carbs != 20 {
		t.Errorf("expected 20 g carbs, got %d", got.Carbs)
	}
	if got.Protein != 35 || got.Fat != 20 {
		t.Errorf("expected protein/fat unchanged (35/20), got %d/%d", got.Protein, got.Fat)
	}
}

func TestAdjustForGoal_MuscleGain(t *testing.T) {
	got := adjustForGoal(chickenSaladWeek(true), goalMuscleGain)[0]

	// 420*1.15 = 483, 35*1.3 = 45.5 -> 46
	if got.Lunch.Calories != 483 || got.Lunch.Protein != 46 {
		t.Errorf("expected 483 kcal / 46 g protein, got %d / %d", got.Lunch.Calories, got.Lunch.Protein)
	}
	if got.Lunch.Carbs != 25 || got.Lunch.Fat != 20 {
		t.Errorf("expected carbs/fat unchanged, got %d/%d", got.Lunch.Carbs, got.Lunch.Fat)
	}
	// The snack is scaled like any other meal: 150*1.15 = 172.5 -> 173.
	if got.Snack == nil || got.Snack.Calories != 173 || got.Snack.Protein != 20 {
		t.Errorf("unexpected snack %+v", got.Snack)
	}
}

func TestAdjustForGoal_PassThrough(t *testing.T) {
	for _, g := range []goal{goalMaintenance, goalWeightGain, goalHealthImprovement} {
		in := chickenSaladWeek(true)
		got := adjustForGoal(in, g)
		if !reflect.DeepEqual(got, in) {
			t.Errorf("%s: expected plan unchanged", g)
		}
	}
}

// TestAdjustForGoal_DoesNotMutate checks neither the input week nor the
// catalog sees scaled values.
func TestAdjustForGoal_DoesNotMutate(t *testing.T) {
	in := chickenSaladWeek(true)
	before := in[0].Lunch.Calories
	beforeSnack := in[0].Snack.Calories

	out := adjustForGoal(in, goalWeightLoss)
	out[0].Lunch.Ingredients[0] = "changed"

	if in[0].Lunch.Calories != before || in[0].Snack.Calories != beforeSnack {
		t.Error("adjustForGoal mutated its input")
	}
	if in[0].Lunch.Ingredients[0] == "changed" {
		t.Error("adjusted meal shares ingredients with its input")
	}
	if defaultCatalog().Lunch[1].Calories != 420 || defaultCatalog().Snack.Calories != 150 {
		t.Error("adjustForGoal mutated the catalog")
	}
}
