package main

import (
	"fmt"
)

// planRestrictions echoes the restrictions a plan was generated under.
type planRestrictions struct {
	DislikedFoods []string `json:"disliked_foods"`
	Allergies     []string `json:"allergies"`
	DietType      string   `json:"diet_type"`
}

// nutritionPlan is the generated artifact. A new assessment replaces it
// wholesale; it is never patched in place.
type nutritionPlan struct {
	TargetCalories    int              `json:"target_calories"`
	Macros            macroGrams       `json:"macros"`
	WaterTargetLiters float64          `json:"water_target_liters"`
	MealPlan          map[slot][]meal  `json:"meal_plan"`
	Week              weekPlan         `json:"week"`
	Restrictions      planRestrictions `json:"restrictions"`
	Goal              goal             `json:"goal"`
}

// generatePlan runs the whole pipeline for one profile: energy targets,
// restriction filter, weekly rotation and goal adjustment. It is a pure
// function of its inputs, so identical calls return identical plans.
func generatePlan(p userProfile, catalog mealCatalog) (nutritionPlan, error) {
	targets, err := computeEnergyTargets(p)
	if err != nil {
		return nutritionPlan{}, err
	}

	filtered, err := filterCatalog(catalog, p.DislikedFoods, p.Allergies)
	if err != nil {
		return nutritionPlan{}, fmt.Errorf("filter catalog: %w", err)
	}

	week := adjustForGoal(assembleWeeklyPlan(filtered, p.Goal, p.ActivityLevel), p.Goal)

	return nutritionPlan{
		TargetCalories:    targets.TargetCalories,
		Macros:            targets.Macros,
		WaterTargetLiters: waterTargetLiters(p.WeightKG),
		MealPlan:          mealPlanBySlot(week),
		Week:              week,
		Restrictions: planRestrictions{
			DislikedFoods: append([]string{}, p.DislikedFoods...),
			Allergies:     append([]string{}, p.Allergies...),
			DietType:      p.DietType,
		},
		Goal: p.Goal,
	}, nil
}

// mealPlanBySlot regroups the week by slot: slot -> meals Monday..Sunday.
// The snack slot is present only when the week carries snacks.
func mealPlanBySlot(week weekPlan) map[slot][]meal {
	bySlot := make(map[slot][]meal, len(mealSlots)+1)
	for _, s := range append(mealSlots[:len(mealSlots):len(mealSlots)], slotSnack) {
		for _, d := range week {
			if m, ok := d.mealFor(s); ok {
				bySlot[s] = append(bySlot[s], m.clone())
			}
		}
	}
	return bySlot
}
