package main

import (
	"fmt"
	"math"
)

// activityMultipliers maps activity levels to their TDEE multiplier. Levels not
// listed here fall back to the sedentary multiplier.
var activityMultipliers = map[activityLevel]float64{
	activitySedentary:  1.2,
	activityLight:      1.375,
	activityModerate:   1.55,
	activityActive:     1.725,
	activityVeryActive: 1.9,
}

// goalCalorieOffsets is the kcal adjustment applied to TDEE per goal.
// Goals not listed eat at maintenance.
var goalCalorieOffsets = map[goal]float64{
	goalWeightLoss: -400,
	goalWeightGain: 300,
	goalMuscleGain: 300,
}

// Macro split as shares of target calories, and kcal per gram.
const (
	proteinShare = 0.25
	carbsShare   = 0.45
	fatShare     = 0.30

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

const (
	minWaterLiters   = 2.5
	waterLitersPerKg = 0.035
)

// macroGrams is a daily macronutrient target in whole grams.
type macroGrams struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// energyTargets is the calculator output for one profile.
type energyTargets struct {
	BMR            float64    `json:"bmr"`
	TDEE           int        `json:"tdee"`
	TargetCalories int        `json:"target_calories"`
	Macros         macroGrams `json:"macros"`
}

func activityMultiplier(level activityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return activityMultipliers[activitySedentary]
}

// basalMetabolicRate uses the revised Harris-Benedict equations. Any sex other
// than male takes the female constants.
func basalMetabolicRate(p userProfile) float64 {
	if p.Sex == sexMale {
		return 88.362 + 13.397*p.WeightKG + 4.799*p.HeightCM - 5.677*float64(p.Age)
	}
	return 447.593 + 9.247*p.WeightKG + 3.098*p.HeightCM - 4.330*float64(p.Age)
}

// computeEnergyTargets computes BMR, TDEE, the goal-adjusted calorie target and
// the macro split. Non-positive body metrics fail with errInvalidProfile.
func computeEnergyTargets(p userProfile) (energyTargets, error) {
	if err := checkBodyMetrics(p); err != nil {
		return energyTargets{}, err
	}

	bmr := basalMetabolicRate(p)
	tdee := bmr * activityMultiplier(p.ActivityLevel)

	// math.Round rounds half away from zero, which is half-up for positive kcal.
	target := int(math.Round(tdee + goalCalorieOffsets[p.Goal]))
	if target <= 0 {
		return energyTargets{}, &profileError{Fields: []fieldError{{
			Field:   "target_calories",
			Message: "profile yields a non-positive calorie target",
		}}}
	}

	return energyTargets{
		BMR:            bmr,
		TDEE:           int(math.Round(tdee)),
		TargetCalories: target,
		Macros:         macrosFor(target),
	}, nil
}

// Upper bounds for body metrics, shared with the assessment validator tags.
const (
	maxHeightCM = 300
	maxWeightKG = 500
)

// checkBodyMetrics guards the calculator against profiles built without
// normalizeProfile.
func checkBodyMetrics(p userProfile) error {
	perr := &profileError{}
	if p.Age <= 0 {
		perr.Fields = append(perr.Fields, fieldError{Field: "age", Message: "age must be greater than 0"})
	}
	switch {
	case p.HeightCM <= 0:
		perr.Fields = append(perr.Fields, fieldError{Field: "height_cm", Message: "height_cm must be greater than 0"})
	case p.HeightCM > maxHeightCM:
		perr.Fields = append(perr.Fields, fieldError{Field: "height_cm", Message: fmt.Sprintf("height_cm must be at most %d", maxHeightCM)})
	}
	switch {
	case p.WeightKG <= 0:
		perr.Fields = append(perr.Fields, fieldError{Field: "weight_kg", Message: "weight_kg must be greater than 0"})
	case p.WeightKG > maxWeightKG:
		perr.Fields = append(perr.Fields, fieldError{Field: "weight_kg", Message: fmt.Sprintf("weight_kg must be at most %d", maxWeightKG)})
	}
	if len(perr.Fields) > 0 {
		return perr
	}
	return nil
}

// macrosFor splits target calories 25/45/30 into protein/carbs/fat grams.
func macrosFor(targetCalories int) macroGrams {
	kcal := float64(targetCalories)
	return macroGrams{
		Protein: int(math.Round(kcal * proteinShare / kcalPerGramProtein)),
		Carbs:   int(math.Round(kcal * carbsShare / kcalPerGramCarbs)),
		Fat:     int(math.Round(kcal * fatShare / kcalPerGramFat)),
	}
}

// waterTargetLiters is 35 ml per kg of body weight, never below 2.5 L,
// rounded to one decimal.
func waterTargetLiters(weightKG float64) float64 {
	liters := math.Max(minWaterLiters, weightKG*waterLitersPerKg)
	return math.Round(liters*10) / 10
}
