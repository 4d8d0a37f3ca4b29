package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// assessmentRecord is stored under assessment_<userID>: the raw submission and
// the profile it normalized to.
type assessmentRecord struct {
	UserID      int             `json:"user_id"`
	Input       assessmentInput `json:"input"`
	Profile     userProfile     `json:"profile"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// planRecord is stored under nutrition_plan_<userID>.
type planRecord struct {
	UserID      int           `json:"user_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Plan        nutritionPlan `json:"plan"`
}

// runAssessment normalizes the input, generates the plan from the built-in
// catalog and replaces both stored records in a single write. On any error
// the previous pair is left as it was.
func runAssessment(ctx context.Context, store recordStore, userID int, in assessmentInput, now time.Time) (planRecord, error) {
	profile, err := normalizeProfile(in)
	if err != nil {
		return planRecord{}, err
	}
	plan, err := generatePlan(profile, defaultCatalog())
	if err != nil {
		return planRecord{}, err
	}

	rec := planRecord{UserID: userID, GeneratedAt: now, Plan: plan}
	err = saveRecords(ctx, store, map[string]any{
		assessmentKey(userID): assessmentRecord{UserID: userID, Input: in, Profile: profile, SubmittedAt: now},
		planKey(userID):       rec,
	})
	if err != nil {
		return planRecord{}, err
	}
	return rec, nil
}

// submitAssessment validates an assessment and replaces the user's plan.
// POST /api/assessment. 400 lists each invalid field; 422 names the meal slot
// the user's restrictions emptied.
func (h *Handler) submitAssessment(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body assessmentInput
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := runAssessment(c, h.records, userID, body, time.Now().UTC())
	if err != nil {
		var perr *profileError
		var serr *emptySlotError
		switch {
		case errors.As(err, &perr):
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidProfile.Error(), "fields": perr.fieldMap()})
		case errors.As(err, &serr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "your restrictions exclude every " + string(serr.Slot) + " option",
				"slot":  serr.Slot,
			})
		default:
			log.Printf("[submitAssessment] user %d: %v", userID, err)
			apiError(c, http.StatusInternalServerError, "failed to save nutrition plan")
		}
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// getAssessment returns the user's latest assessment.
// GET /api/assessment.
func (h *Handler) getAssessment(c *gin.Context) {
	userID := c.GetInt("user_id")
	rec, err := loadRecord[assessmentRecord](c, h.records, assessmentKey(userID))
	if err != nil {
		h.recordError(c, "getAssessment", userID, err, "assessment not found")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// getNutritionPlan returns the user's current plan.
// GET /api/nutrition-plan.
func (h *Handler) getNutritionPlan(c *gin.Context) {
	userID := c.GetInt("user_id")
	rec, err := loadRecord[planRecord](c, h.records, planKey(userID))
	if err != nil {
		h.recordError(c, "getNutritionPlan", userID, err, "nutrition plan not found")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// getTodayPlan returns the plan day matching today's weekday. The clock only
// picks which day to show; it never affects generation.
// GET /api/nutrition-plan/today.
func (h *Handler) getTodayPlan(c *gin.Context) {
	userID := c.GetInt("user_id")
	rec, err := loadRecord[planRecord](c, h.records, planKey(userID))
	if err != nil {
		h.recordError(c, "getTodayPlan", userID, err, "nutrition plan not found")
		return
	}

	day, ok := rec.Plan.Week.day(weekdays[weekdayIndex(time.Now())])
	if !ok {
		apiError(c, http.StatusNotFound, "no plan for today")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"day":             day,
		"target_calories": rec.Plan.TargetCalories,
		"macros":          rec.Plan.Macros,
	})
}

// getCatalog lists the built-in meals per slot and the optional snack.
// GET /api/catalog (public).
func (h *Handler) getCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, defaultCatalog())
}

// recordError maps a record store failure to 404 or 500.
func (h *Handler) recordError(c *gin.Context, fn string, userID int, err error, notFound string) {
	if errors.Is(err, errRecordNotFound) {
		apiError(c, http.StatusNotFound, notFound)
		return
	}
	log.Printf("[%s] user %d: %v", fn, userID, err)
	apiError(c, http.StatusInternalServerError, "failed to load record")
}
