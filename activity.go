package main

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

const (
	defaultIntensity   = 5
	defaultWaterLiters = 2.0
	defaultSleepHours  = 7.0
	defaultMood        = "good"
)

// Suggestion thresholds over the recent-activity averages.
const (
	suggestWaterBelow     = 2.5
	suggestSleepBelow     = 7.0
	suggestStepsBelow     = 8000
	suggestIntensityBelow = 4
)

// activitySuggestion is one rule-based hint shown beside the activity log.
type activitySuggestion struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// applyActivityDefaults fills optional fields and validates the rest.
// Returns "" when the request is acceptable.
func applyActivityDefaults(req *createActivityRequest, today time.Time) string {
	req.ExerciseType = strings.TrimSpace(req.ExerciseType)
	if req.ExerciseType == "" {
		return "exercise_type is required"
	}
	if req.DurationMinutes <= 0 {
		return "duration_minutes must be greater than 0"
	}
	if req.Date == "" {
		req.Date = today.Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return "invalid date, expected YYYY-MM-DD"
	}
	if req.Intensity == 0 {
		req.Intensity = defaultIntensity
	}
	if req.Intensity < 1 || req.Intensity > 10 {
		return "intensity must be between 1 and 10"
	}
	if req.Steps < 0 {
		return "steps must not be negative"
	}
	if req.WaterLiters == nil {
		w := defaultWaterLiters
		req.WaterLiters = &w
	}
	if req.SleepHours == nil {
		s := defaultSleepHours
		req.SleepHours = &s
	}
	if *req.WaterLiters < 0 || *req.SleepHours < 0 || *req.SleepHours > 24 {
		return "water_liters and sleep_hours must be within range"
	}
	if req.Mood == "" {
		req.Mood = defaultMood
	}
	return ""
}

// activitySuggestions averages the seven most recent entries and returns a
// hint for each metric under its threshold. Nothing is suggested without data.
func activitySuggestions(entries []activityEntry) []activitySuggestion {
	out := []activitySuggestion{}
	if len(entries) == 0 {
		return out
	}

	sorted := make([]activityEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date.Time) })
	recent := sorted[:min(averageWindow, len(sorted))]

	var water, sleep, steps, intensity float64
	for _, e := range recent {
		water += e.WaterLiters
		sleep += e.SleepHours
		steps += float64(e.Steps)
		intensity += float64(e.Intensity)
	}
	n := float64(len(recent))
	water, sleep, steps, intensity = water/n, sleep/n, steps/n, intensity/n

	if water < suggestWaterBelow {
		out = append(out, activitySuggestion{
			Type:     "hydration",
			Title:    "Increase Water Intake",
			Message:  "Your average water intake is below the recommended 2.5L daily. Try setting hourly reminders.",
			Priority: "high",
		})
	}
	if sleep < suggestSleepBelow {
		out = append(out, activitySuggestion{
			Type:     "sleep",
			Title:    "Improve Sleep Quality",
			Message:  "You're averaging less than 7 hours of sleep. Consider a consistent bedtime routine.",
			Priority: "high",
		})
	}
	if steps < suggestStepsBelow {
		out = append(out, activitySuggestion{
			Type:     "activity",
			Title:    "Increase Daily Steps",
			Message:  "Aim for at least 8,000 steps daily. Try taking short walks after meals.",
			Priority: "medium",
		})
	}
	if intensity < suggestIntensityBelow {
		out = append(out, activitySuggestion{
			Type:     "exercise",
			Title:    "Boost Exercise Intensity",
			Message:  "Consider adding some higher-intensity intervals to your workouts for better results.",
			Priority: "medium",
		})
	}
	return out
}

// getActivities returns the user's recent activity entries (newest first)
// plus suggestions derived from them.
// GET /api/activities (latest 30).
func (h *Handler) getActivities(c *gin.Context) {
	userID := c.GetInt("user_id")

	entries, err := queryMany[activityEntry](c, h.db,
		`SELECT * FROM activity_entries
		 WHERE user_id = @userID
		 ORDER BY date DESC, created_at DESC
		 LIMIT 30`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch activities")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities":  entries,
		"suggestions": activitySuggestions(entries),
	})
}

// createActivity logs an activity entry.
// POST /api/activities. exercise_type and duration_minutes are required.
func (h *Handler) createActivity(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createActivityRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := applyActivityDefaults(&body, time.Now()); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	entry, err := queryOne[activityEntry](c, h.db,
		`INSERT INTO activity_entries
			(user_id, date, exercise_type, duration_minutes, intensity, steps, water_liters, sleep_hours, mood, notes)
		 VALUES (@userID, @date, @exerciseType, @duration, @intensity, @steps, @water, @sleep, @mood, @notes)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":       userID,
			"date":         body.Date,
			"exerciseType": body.ExerciseType,
			"duration":     body.DurationMinutes,
			"intensity":    body.Intensity,
			"steps":        body.Steps,
			"water":        *body.WaterLiters,
			"sleep":        *body.SleepHours,
			"mood":         body.Mood,
			"notes":        body.Notes,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create activity")
		return
	}

	c.JSON(http.StatusCreated, entry)
}
