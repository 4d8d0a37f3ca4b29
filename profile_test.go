package main

import (
	"errors"
	"reflect"
	"testing"
)

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

// validInput returns a complete assessment body for the reference profile.
func validInput() assessmentInput {
	return assessmentInput{
		Age:           intPtr(30),
		Sex:           "male",
		HeightCM:      floatPtr(180),
		WeightKG:      floatPtr(80),
		ActivityLevel: "moderate",
		Goal:          "maintenance",
	}
}

func TestNormalizeProfile_Valid(t *testing.T) {
	in := validInput()
	in.Sex = " Male "
	in.Goal = "Weight-Loss"
	in.DislikedFoods = []string{" Egg", "egg", "", "Mushrooms"}
	in.Allergies = []string{"PEANUTS"}
	in.DietType = " vegetarian "

	p, err := normalizeProfile(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := userProfile{
		Age:           30,
		Sex:           sexMale,
		HeightCM:      180,
		WeightKG:      80,
		ActivityLevel: activityModerate,
		Goal:          goalWeightLoss,
		DislikedFoods: []string{"egg", "mushrooms"},
		Allergies:     []string{"peanuts"},
		DietType:      "vegetarian",
	}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("expected %+v, got %+v", want, p)
	}
}

func TestNormalizeProfile_Defaults(t *testing.T) {
	in := validInput()
	in.ActivityLevel = ""
	in.Goal = ""

	p, err := normalizeProfile(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ActivityLevel != activitySedentary {
		t.Errorf("expected sedentary, got %q", p.ActivityLevel)
	}
	if p.Goal != goalMaintenance {
		t.Errorf("expected maintenance, got %q", p.Goal)
	}
	if p.DislikedFoods == nil || p.Allergies == nil {
		t.Error("expected non-nil restriction lists")
	}
}

// TestNormalizeProfile_InvalidFields checks every bad field is reported at
// once, keyed by its JSON name.
func TestNormalizeProfile_InvalidFields(t *testing.T) {
	cases := []struct {
		name   string
		mutFn  func(in *assessmentInput)
		fields []string
	}{
		{"missing age", func(in *assessmentInput) { in.Age = nil }, []string{"age"}},
		{"zero age", func(in *assessmentInput) { in.Age = intPtr(0) }, []string{"age"}},
		{"implausible age", func(in *assessmentInput) { in.Age = intPtr(200) }, []string{"age"}},
		{"unknown sex", func(in *assessmentInput) { in.Sex = "other" }, []string{"sex"}},
		{"negative height", func(in *assessmentInput) { in.HeightCM = floatPtr(-5) }, []string{"height_cm"}},
		{"missing weight", func(in *assessmentInput) { in.WeightKG = nil }, []string{"weight_kg"}},
		{"implausible weight", func(in *assessmentInput) { in.WeightKG = floatPtr(1e300) }, []string{"weight_kg"}},
		{"implausible height", func(in *assessmentInput) { in.HeightCM = floatPtr(1e16) }, []string{"height_cm"}},
		{"unknown goal", func(in *assessmentInput) { in.Goal = "bulk" }, []string{"goal"}},
		{"several", func(in *assessmentInput) {
			in.Age = nil
			in.HeightCM = floatPtr(0)
			in.WeightKG = floatPtr(0)
		}, []string{"age", "height_cm", "weight_kg"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutFn(&in)
			_, err := normalizeProfile(in)
			if !errors.Is(err, errInvalidProfile) {
				t.Fatalf("expected errInvalidProfile, got %v", err)
			}
			var perr *profileError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *profileError, got %T", err)
			}
			fields := perr.fieldMap()
			if len(fields) != len(tc.fields) {
				t.Errorf("expected fields %v, got %v", tc.fields, fields)
			}
			for _, f := range tc.fields {
				if fields[f] == "" {
					t.Errorf("expected a message for %q, got %v", f, fields)
				}
			}
		})
	}
}

func TestParseActivityLevel(t *testing.T) {
	cases := map[string]activityLevel{
		"sedentary":   activitySedentary,
		"Light":       activityLight,
		"moderate":    activityModerate,
		"ACTIVE":      activityActive,
		"veryActive":  activityVeryActive,
		"very_active": activityVeryActive,
		"very active": activityVeryActive,
		"high":        activityVeryActive,
		"":            activitySedentary,
		"extreme":     activitySedentary,
	}
	for in, want := range cases {
		if got := parseActivityLevel(in); got != want {
			t.Errorf("parseActivityLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeTerms(t *testing.T) {
	got := normalizeTerms([]string{"  Shrimp", "shrimp", "", "  ", "Dairy"})
	want := []string{"shrimp", "dairy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := normalizeTerms(nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}
