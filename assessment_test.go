package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// setupAssessmentTest wires the record-backed routes to an in-memory store.
// Auth is replaced by a middleware that sets user_id = 1; no DB needed.
func setupAssessmentTest() (*gin.Engine, *memRecordStore) {
	gin.SetMode(gin.TestMode)
	store := newMemRecordStore()
	h := Handler{records: store}

	router := gin.New()
	router.GET("/api/catalog", h.getCatalog)
	api := router.Group("/api", func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Next()
	})
	api.POST("/assessment", h.submitAssessment)
	api.GET("/assessment", h.getAssessment)
	api.GET("/nutrition-plan", h.getNutritionPlan)
	api.GET("/nutrition-plan/today", h.getTodayPlan)
	return router, store
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const referenceAssessment = `{"age":30,"sex":"male","height_cm":180,"weight_kg":80,"activity_level":"moderate","goal":"maintenance","disliked_foods":["Egg"]}`

func TestSubmitAssessment_Success(t *testing.T) {
	router, store := setupAssessmentTest()

	w := doRequest(router, "POST", "/api/assessment", referenceAssessment)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp planRecord
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.UserID != 1 || resp.Plan.TargetCalories != 2873 {
		t.Errorf("unexpected plan record: user %d, %d kcal", resp.UserID, resp.Plan.TargetCalories)
	}
	if len(resp.Plan.Week) != 7 {
		t.Errorf("expected 7 days, got %d", len(resp.Plan.Week))
	}

	if _, ok := store.records["assessment_1"]; !ok {
		t.Error("expected assessment_1 to be stored")
	}
	if _, ok := store.records["nutrition_plan_1"]; !ok {
		t.Error("expected nutrition_plan_1 to be stored")
	}
}

func TestSubmitAssessment_InvalidProfile(t *testing.T) {
	router, store := setupAssessmentTest()

	w := doRequest(router, "POST", "/api/assessment", `{"sex":"robot","height_cm":-1,"weight_kg":70}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Error != "invalid profile" {
		t.Errorf("expected 'invalid profile', got %q", resp.Error)
	}
	for _, f := range []string{"age", "sex", "height_cm"} {
		if resp.Fields[f] == "" {
			t.Errorf("expected a message for %s, got %v", f, resp.Fields)
		}
	}
	if len(store.records) != 0 {
		t.Errorf("expected nothing stored, got %d records", len(store.records))
	}
}

func TestSubmitAssessment_EmptySlot(t *testing.T) {
	router, store := setupAssessmentTest()

	body := `{"age":30,"sex":"female","height_cm":165,"weight_kg":60,"allergies":["chicken","turkey","salmon","lentil"]}`
	w := doRequest(router, "POST", "/api/assessment", body)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["slot"] != "dinner" {
		t.Errorf("expected slot 'dinner', got %q", resp["slot"])
	}
	if len(store.records) != 0 {
		t.Errorf("expected nothing stored, got %d records", len(store.records))
	}
}

func TestSubmitAssessment_MalformedJSON(t *testing.T) {
	router, _ := setupAssessmentTest()
	w := doRequest(router, "POST", "/api/assessment", `{"age":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSubmitAssessment_StoreFailure(t *testing.T) {
	router, store := setupAssessmentTest()
	store.failSet = errors.New("connection reset")

	w := doRequest(router, "POST", "/api/assessment", referenceAssessment)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
}

// TestSubmitAssessment_PlanWriteFailureKeepsPreviousPair: when the plan
// write fails, the stored assessment still matches the stored plan.
func TestSubmitAssessment_PlanWriteFailureKeepsPreviousPair(t *testing.T) {
	router, store := setupAssessmentTest()
	if w := doRequest(router, "POST", "/api/assessment", referenceAssessment); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	store.failSet = errors.New("connection reset")
	store.failPrefix = "nutrition_plan_"
	second := strings.Replace(referenceAssessment, `"goal":"maintenance"`, `"goal":"weight-loss"`, 1)
	if w := doRequest(router, "POST", "/api/assessment", second); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
	store.failSet = nil

	var a assessmentRecord
	json.Unmarshal(doRequest(router, "GET", "/api/assessment", "").Body.Bytes(), &a)
	var p planRecord
	json.Unmarshal(doRequest(router, "GET", "/api/nutrition-plan", "").Body.Bytes(), &p)
	if a.Profile.Goal != goalMaintenance || p.Plan.Goal != goalMaintenance {
		t.Errorf("expected the maintenance pair kept, got assessment %s / plan %s", a.Profile.Goal, p.Plan.Goal)
	}
}

// TestSubmitAssessment_Replaces checks a second submission supersedes the
// first plan wholesale.
func TestSubmitAssessment_Replaces(t *testing.T) {
	router, _ := setupAssessmentTest()

	doRequest(router, "POST", "/api/assessment", referenceAssessment)
	second := strings.Replace(referenceAssessment, `"goal":"maintenance"`, `"goal":"weight-loss"`, 1)
	if w := doRequest(router, "POST", "/api/assessment", second); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w := doRequest(router, "GET", "/api/nutrition-plan", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp planRecord
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Plan.Goal != goalWeightLoss || resp.Plan.TargetCalories != 2473 {
		t.Errorf("expected the weight-loss plan, got %s / %d", resp.Plan.Goal, resp.Plan.TargetCalories)
	}
}

func TestGetAssessment(t *testing.T) {
	router, _ := setupAssessmentTest()

	if w := doRequest(router, "GET", "/api/assessment", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before submission, got %d", w.Code)
	}

	doRequest(router, "POST", "/api/assessment", referenceAssessment)
	w := doRequest(router, "GET", "/api/assessment", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp assessmentRecord
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Profile.ActivityLevel != activityModerate || len(resp.Profile.DislikedFoods) != 1 || resp.Profile.DislikedFoods[0] != "egg" {
		t.Errorf("unexpected profile %+v", resp.Profile)
	}
}

func TestGetNutritionPlan_StoreError(t *testing.T) {
	router, store := setupAssessmentTest()
	store.failGet = errors.New("timeout")

	if w := doRequest(router, "GET", "/api/nutrition-plan", ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestGetTodayPlan(t *testing.T) {
	router, _ := setupAssessmentTest()

	if w := doRequest(router, "GET", "/api/nutrition-plan/today", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before submission, got %d", w.Code)
	}

	doRequest(router, "POST", "/api/assessment", referenceAssessment)
	w := doRequest(router, "GET", "/api/nutrition-plan/today", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Day            dayPlan `json:"day"`
		TargetCalories int     `json:"target_calories"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if want := weekdays[weekdayIndex(time.Now())]; resp.Day.Day != want {
		t.Errorf("expected %s, got %s", want, resp.Day.Day)
	}
	if resp.TargetCalories != 2873 {
		t.Errorf("expected 2873 kcal, got %d", resp.TargetCalories)
	}
}

func TestGetCatalog(t *testing.T) {
	router, _ := setupAssessmentTest()

	w := doRequest(router, "GET", "/api/catalog", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp mealCatalog
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Breakfast) != 5 || len(resp.Lunch) != 5 || len(resp.Dinner) != 5 || resp.Snack == nil {
		t.Errorf("unexpected catalog sizes %d/%d/%d, snack=%v", len(resp.Breakfast), len(resp.Lunch), len(resp.Dinner), resp.Snack)
	}
}

func TestRunAssessment_Timestamps(t *testing.T) {
	store := newMemRecordStore()
	in := validInput()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	rec, err := runAssessment(context.Background(), store, 7, in, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rec.GeneratedAt.Equal(now) {
		t.Errorf("expected generated_at %v, got %v", now, rec.GeneratedAt)
	}
	saved, err := loadRecord[assessmentRecord](context.Background(), store, assessmentKey(7))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !saved.SubmittedAt.Equal(now) || saved.UserID != 7 {
		t.Errorf("unexpected assessment record %+v", saved)
	}
}
