package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns into DateOnly. NULL zeroes the time.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// progressEntry maps to progress_entries: one row per user per day.
// WeightKG and Mood are optional on days the user didn't record them.
type progressEntry struct {
	ID              int        `json:"id"               db:"id"`
	UserID          int        `json:"user_id"          db:"user_id"`
	Date            DateOnly   `json:"date"             db:"date"`
	WeightKG        *float64   `json:"weight_kg"        db:"weight_kg"`
	Calories        int        `json:"calories"         db:"calories"`
	ProteinG        float64    `json:"protein_g"        db:"protein_g"`
	WaterLiters     float64    `json:"water_liters"     db:"water_liters"`
	ExerciseMinutes int        `json:"exercise_minutes" db:"exercise_minutes"`
	Mood            *int       `json:"mood"             db:"mood"`
	Notes           string     `json:"notes"            db:"notes"`
	CreatedAt       *time.Time `json:"created_at"       db:"created_at"`
}

// activityEntry maps to activity_entries.
type activityEntry struct {
	ID              int        `json:"id"               db:"id"`
	UserID          int        `json:"user_id"          db:"user_id"`
	Date            DateOnly   `json:"date"             db:"date"`
	ExerciseType    string     `json:"exercise_type"    db:"exercise_type"`
	DurationMinutes int        `json:"duration_minutes" db:"duration_minutes"`
	Intensity       int        `json:"intensity"        db:"intensity"`
	Steps           int        `json:"steps"            db:"steps"`
	WaterLiters     float64    `json:"water_liters"     db:"water_liters"`
	SleepHours      float64    `json:"sleep_hours"      db:"sleep_hours"`
	Mood            string     `json:"mood"             db:"mood"`
	Notes           string     `json:"notes"            db:"notes"`
	CreatedAt       *time.Time `json:"created_at"       db:"created_at"`
}

// consultation maps to consultations. Amount is in paise; payment itself
// happens outside this service.
type consultation struct {
	ID          string     `json:"id"           db:"id"`
	UserID      int        `json:"user_id"      db:"user_id"`
	ExpertID    string     `json:"expert_id"    db:"expert_id"`
	TimeSlot    string     `json:"time_slot"    db:"time_slot"`
	AmountPaise int        `json:"amount_paise" db:"amount_paise"`
	Currency    string     `json:"currency"     db:"currency"`
	Receipt     string     `json:"receipt"      db:"receipt"`
	MeetingLink string     `json:"meeting_link" db:"meeting_link"`
	Status      string     `json:"status"       db:"status"`
	CreatedAt   *time.Time `json:"created_at"   db:"created_at"`
}

// pantryItem maps to pantry_items. Expiry is optional.
type pantryItem struct {
	ID        int        `json:"id"         db:"id"`
	UserID    int        `json:"user_id"    db:"user_id"`
	Name      string     `json:"name"       db:"name"`
	Quantity  string     `json:"quantity"   db:"quantity"`
	Category  string     `json:"category"   db:"category"`
	Expiry    *DateOnly  `json:"expiry"     db:"expiry"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

/* ─── Request bodies ─────────────────────────────────────────────────── */

// upsertProgressRequest is the request body for POST /api/progress.
type upsertProgressRequest struct {
	Date            string   `json:"date"`
	WeightKG        *float64 `json:"weight_kg"`
	Calories        int      `json:"calories"`
	ProteinG        float64  `json:"protein_g"`
	WaterLiters     float64  `json:"water_liters"`
	ExerciseMinutes int      `json:"exercise_minutes"`
	Mood            *int     `json:"mood"`
	Notes           string   `json:"notes"`
}

// createActivityRequest is the request body for POST /api/activities.
// Zero-valued optional fields take the defaults in applyActivityDefaults.
type createActivityRequest struct {
	Date            string   `json:"date"`
	ExerciseType    string   `json:"exercise_type"`
	DurationMinutes int      `json:"duration_minutes"`
	Intensity       int      `json:"intensity"`
	Steps           int      `json:"steps"`
	WaterLiters     *float64 `json:"water_liters"`
	SleepHours      *float64 `json:"sleep_hours"`
	Mood            string   `json:"mood"`
	Notes           string   `json:"notes"`
}

// bookConsultationRequest is the request body for POST /api/consultations.
type bookConsultationRequest struct {
	ExpertID string `json:"expert_id"`
	TimeSlot string `json:"time_slot"`
}

// createPantryItemRequest is the request body for POST /api/pantry.
type createPantryItemRequest struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Category string `json:"category"`
	Expiry   string `json:"expiry"`
}
