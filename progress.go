package main

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

const (
	defaultCalorieGoal = 1800
	defaultWaterGoal   = 2.5

	// Fractions of the daily targets a day needs to count toward the streak.
	streakCalorieShare = 0.9
	streakWaterShare   = 0.8

	averageWindow = 7

	// Goal weights relative to the first recorded weight.
	weightLossGoalKG = 10.0
	weightGainGoalKG = 5.0
)

// progressAverages are means over the most recent entries.
type progressAverages struct {
	Calories        float64 `json:"calories"`
	ProteinG        float64 `json:"protein_g"`
	WaterLiters     float64 `json:"water_liters"`
	ExerciseMinutes float64 `json:"exercise_minutes"`
	Mood            float64 `json:"mood"`
}

// progressSummary is the response for GET /api/progress/summary.
type progressSummary struct {
	Entries       int              `json:"entries"`
	Streak        int              `json:"streak"`
	Averages      progressAverages `json:"averages"`
	StartWeightKG *float64         `json:"start_weight_kg"`
	CurrentKG     *float64         `json:"current_weight_kg"`
	GoalWeightKG  *float64         `json:"goal_weight_kg"`
	GoalProgress  float64          `json:"goal_progress"`
	CalorieGoal   int              `json:"calorie_goal"`
	WaterGoal     float64          `json:"water_goal"`
}

// summarizeProgress computes streak, averages and weight-goal progress.
// entries may be in any order; plan may be nil.
func summarizeProgress(entries []progressEntry, plan *nutritionPlan) progressSummary {
	s := progressSummary{
		Entries:     len(entries),
		CalorieGoal: defaultCalorieGoal,
		WaterGoal:   defaultWaterGoal,
	}
	g := goalMaintenance
	if plan != nil {
		s.CalorieGoal = plan.TargetCalories
		s.WaterGoal = plan.WaterTargetLiters
		g = plan.Goal
	}
	if len(entries) == 0 {
		return s
	}

	// Newest first.
	sorted := make([]progressEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date.Time) })

	for _, e := range sorted {
		if float64(e.Calories) < streakCalorieShare*float64(s.CalorieGoal) ||
			e.WaterLiters < streakWaterShare*s.WaterGoal {
			break
		}
		s.Streak++
	}

	recent := sorted[:min(averageWindow, len(sorted))]
	var moods int
	for _, e := range recent {
		s.Averages.Calories += float64(e.Calories)
		s.Averages.ProteinG += e.ProteinG
		s.Averages.WaterLiters += e.WaterLiters
		s.Averages.ExerciseMinutes += float64(e.ExerciseMinutes)
		if e.Mood != nil {
			s.Averages.Mood += float64(*e.Mood)
			moods++
		}
	}
	n := float64(len(recent))
	s.Averages.Calories = roundTo(s.Averages.Calories/n, 1)
	s.Averages.ProteinG = roundTo(s.Averages.ProteinG/n, 1)
	s.Averages.WaterLiters = roundTo(s.Averages.WaterLiters/n, 1)
	s.Averages.ExerciseMinutes = roundTo(s.Averages.ExerciseMinutes/n, 1)
	if moods > 0 {
		s.Averages.Mood = roundTo(s.Averages.Mood/float64(moods), 1)
	}

	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].WeightKG != nil {
			s.StartWeightKG = sorted[i].WeightKG
			break
		}
	}
	for _, e := range sorted {
		if e.WeightKG != nil {
			s.CurrentKG = e.WeightKG
			break
		}
	}
	if s.StartWeightKG == nil {
		return s
	}

	// Every goal other than weight loss aims to gain, maintenance included,
	// so holding steady reads as 0% progress.
	start := *s.StartWeightKG
	target := start + weightGainGoalKG
	if g == goalWeightLoss {
		target = start - weightLossGoalKG
	}
	s.GoalWeightKG = &target
	s.GoalProgress = goalProgress(start, *s.CurrentKG, target)
	return s
}

// goalProgress is the percentage of the distance from start to target covered
// by current, clamped to [0, 100]. Moving away from the target counts as 0.
func goalProgress(start, current, target float64) float64 {
	total := target - start
	if total == 0 {
		return 100
	}
	pct := (current - start) / total * 100
	return roundTo(math.Max(0, math.Min(100, pct)), 1)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// getProgress returns progress entries within [start, end].
// GET /api/progress?start=YYYY-MM-DD&end=YYYY-MM-DD. Without params, the last
// 30 days up to today.
func (h *Handler) getProgress(c *gin.Context) {
	userID := c.GetInt("user_id")
	today := time.Now()
	start := c.DefaultQuery("start", today.AddDate(0, 0, -30).Format("2006-01-02"))
	end := c.DefaultQuery("end", today.Format("2006-01-02"))

	if _, err := time.Parse("2006-01-02", start); err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}
	if start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return
	}

	entries, err := queryMany[progressEntry](c, h.db,
		`SELECT * FROM progress_entries
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 ORDER BY date ASC`,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch progress")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// validateProgress checks an upsert body; returns "" when it is acceptable.
func validateProgress(body upsertProgressRequest) string {
	if body.Date == "" {
		return "date is required"
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		return "invalid date, expected YYYY-MM-DD"
	}
	if body.WeightKG != nil && (*body.WeightKG <= 0 || *body.WeightKG > maxWeightKG) {
		return fmt.Sprintf("weight_kg must be between 0 and %d", maxWeightKG)
	}
	if body.Calories < 0 || body.ProteinG < 0 || body.WaterLiters < 0 || body.ExerciseMinutes < 0 {
		return "calories, protein_g, water_liters and exercise_minutes must not be negative"
	}
	if body.Mood != nil && (*body.Mood < 1 || *body.Mood > 10) {
		return "mood must be between 1 and 10"
	}
	return ""
}

// upsertProgressEntry creates or replaces the entry for the given date.
// POST /api/progress. UNIQUE(user_id, date) makes a repeated date an update.
func (h *Handler) upsertProgressEntry(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body upsertProgressRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateProgress(body); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	entry, err := queryOne[progressEntry](c, h.db,
		`INSERT INTO progress_entries
			(user_id, date, weight_kg, calories, protein_g, water_liters, exercise_minutes, mood, notes)
		 VALUES (@userID, @date, @weightKG, @calories, @proteinG, @waterLiters, @exerciseMinutes, @mood, @notes)
		 ON CONFLICT (user_id, date) DO UPDATE SET
			weight_kg        = EXCLUDED.weight_kg,
			calories         = EXCLUDED.calories,
			protein_g        = EXCLUDED.protein_g,
			water_liters     = EXCLUDED.water_liters,
			exercise_minutes = EXCLUDED.exercise_minutes,
			mood             = EXCLUDED.mood,
			notes            = EXCLUDED.notes
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":          userID,
			"date":            body.Date,
			"weightKG":        body.WeightKG,
			"calories":        body.Calories,
			"proteinG":        body.ProteinG,
			"waterLiters":     body.WaterLiters,
			"exerciseMinutes": body.ExerciseMinutes,
			"mood":            body.Mood,
			"notes":           body.Notes,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save progress entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// deleteProgressEntry removes an entry by ID.
// DELETE /api/progress/:id. Returns 204 on success, 404 if not found.
func (h *Handler) deleteProgressEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM progress_entries WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete progress entry")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "progress entry not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// getProgressSummary summarizes every entry against the stored plan's targets.
// GET /api/progress/summary.
func (h *Handler) getProgressSummary(c *gin.Context) {
	userID := c.GetInt("user_id")

	entries, err := queryMany[progressEntry](c, h.db,
		"SELECT * FROM progress_entries WHERE user_id = @userID ORDER BY date ASC",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch progress")
		return
	}

	var plan *nutritionPlan
	rec, err := loadRecord[planRecord](c, h.records, planKey(userID))
	switch {
	case err == nil:
		plan = &rec.Plan
	case !errors.Is(err, errRecordNotFound):
		log.Printf("[getProgressSummary] user %d: %v", userID, err)
	}

	c.JSON(http.StatusOK, summarizeProgress(entries, plan))
}
