package main

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type sex string

const (
	sexMale   sex = "male"
	sexFemale sex = "female"
)

type activityLevel string

const (
	activitySedentary  activityLevel = "sedentary"
	activityLight      activityLevel = "light"
	activityModerate   activityLevel = "moderate"
	activityActive     activityLevel = "active"
	activityVeryActive activityLevel = "veryActive"
)

type goal string

const (
	goalWeightLoss        goal = "weight-loss"
	goalWeightGain        goal = "weight-gain"
	goalMuscleGain        goal = "muscle-gain"
	goalMaintenance       goal = "maintenance"
	goalHealthImprovement goal = "health-improvement"
)

// errInvalidProfile is matched by every profile validation failure. Callers
// must not assemble a plan once they see it.
var errInvalidProfile = errors.New("invalid profile")

/* ─── Assessment input ───────────────────────────────────────────────── */

// assessmentInput is the request body for POST /api/assessment. Numbers are
// pointers so a missing field is distinguishable from zero; enums are free
// strings normalized by normalizeProfile.
type assessmentInput struct {
	Age           *int     `json:"age"            validate:"required,gt=0,lte=130"`
	Sex           string   `json:"sex"            validate:"required,oneof=male female"`
	HeightCM      *float64 `json:"height_cm"      validate:"required,gt=0,lte=300"`
	WeightKG      *float64 `json:"weight_kg"      validate:"required,gt=0,lte=500"`
	ActivityLevel string   `json:"activity_level"`
	Goal          string   `json:"goal"           validate:"omitempty,oneof=weight-loss weight-gain muscle-gain maintenance health-improvement"`
	DislikedFoods []string `json:"disliked_foods"`
	Allergies     []string `json:"allergies"`
	DietType      string   `json:"diet_type"`
}

// userProfile is the validated snapshot consumed by the plan pipeline.
// A reassessment produces a new value; nothing mutates an existing one.
type userProfile struct {
	Age           int           `json:"age"`
	Sex           sex           `json:"sex"`
	HeightCM      float64       `json:"height_cm"`
	WeightKG      float64       `json:"weight_kg"`
	ActivityLevel activityLevel `json:"activity_level"`
	Goal          goal          `json:"goal"`
	DislikedFoods []string      `json:"disliked_foods"`
	Allergies     []string      `json:"allergies"`
	DietType      string        `json:"diet_type,omitempty"`
}

/* ─── Validation errors ──────────────────────────────────────────────── */

// fieldError is one user-facing validation message, keyed by JSON field name.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// profileError lists every invalid field of an assessment, in struct order.
type profileError struct {
	Fields []fieldError
}

func (e *profileError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return errInvalidProfile.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *profileError) Is(target error) bool {
	return target == errInvalidProfile
}

// fieldMap returns field -> message for JSON error responses.
func (e *profileError) fieldMap() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		m[f.Field] = f.Message
	}
	return m
}

// profileValidate reports field names using their json tags so messages match
// what the client sent.
var profileValidate = newProfileValidator()

func newProfileValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessage renders one validator failure as a sentence.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fe.Field() + " is invalid"
	}
}

/* ─── Normalizer ─────────────────────────────────────────────────────── */

// normalizeProfile validates raw assessment input and returns the typed
// profile. All invalid fields are reported together in a *profileError.
func normalizeProfile(in assessmentInput) (userProfile, error) {
	in.Sex = strings.ToLower(strings.TrimSpace(in.Sex))
	in.Goal = strings.ToLower(strings.TrimSpace(in.Goal))

	if err := profileValidate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return userProfile{}, fmt.Errorf("validate assessment: %w", err)
		}
		perr := &profileError{}
		for _, fe := range verrs {
			perr.Fields = append(perr.Fields, fieldError{Field: fe.Field(), Message: validationMessage(fe)})
		}
		return userProfile{}, perr
	}

	g := goal(in.Goal)
	if g == "" {
		g = goalMaintenance
	}

	return userProfile{
		Age:           *in.Age,
		Sex:           sex(in.Sex),
		HeightCM:      *in.HeightCM,
		WeightKG:      *in.WeightKG,
		ActivityLevel: parseActivityLevel(in.ActivityLevel),
		Goal:          g,
		DislikedFoods: normalizeTerms(in.DislikedFoods),
		Allergies:     normalizeTerms(in.Allergies),
		DietType:      strings.TrimSpace(in.DietType),
	}, nil
}

// parseActivityLevel accepts the client's spellings (veryActive, very_active,
// "high", any case). Anything unrecognised, including empty, is sedentary.
func parseActivityLevel(s string) activityLevel {
	key := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case "light":
		return activityLight
	case "moderate":
		return activityModerate
	case "active":
		return activityActive
	case "veryactive", "high":
		return activityVeryActive
	default:
		return activitySedentary
	}
}

// normalizeTerms trims and lower-cases restriction terms, dropping empties
// and duplicates while keeping first-seen order. Never returns nil.
func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
