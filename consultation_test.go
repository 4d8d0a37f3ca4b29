package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestValidateBooking(t *testing.T) {
	cases := []struct {
		name    string
		req     bookConsultationRequest
		wantErr error
	}{
		{"ok", bookConsultationRequest{ExpertID: "2", TimeSlot: "1:00 PM"}, nil},
		{"trimmed", bookConsultationRequest{ExpertID: " 3 ", TimeSlot: " 6:00 PM "}, nil},
		{"unknown expert", bookConsultationRequest{ExpertID: "9", TimeSlot: "1:00 PM"}, errUnknownExpert},
		{"other expert's slot", bookConsultationRequest{ExpertID: "1", TimeSlot: "1:00 PM"}, errSlotUnavailable},
		{"empty", bookConsultationRequest{}, errUnknownExpert},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validateBooking(tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNewConsultation(t *testing.T) {
	e, err := validateBooking(bookConsultationRequest{ExpertID: "1", TimeSlot: "10:00 AM"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := newConsultation(5, e, "10:00 AM")

	if b.AmountPaise != 250000 || b.Currency != "INR" {
		t.Errorf("expected 250000 INR paise, got %d %s", b.AmountPaise, b.Currency)
	}
	if b.Status != "pending_payment" || b.UserID != 5 || b.ExpertID != "1" {
		t.Errorf("unexpected booking %+v", b)
	}
	if b.Receipt != "receipt_"+b.ID || !strings.HasPrefix(b.MeetingLink, "https://meet.google.com/appointment-") {
		t.Errorf("unexpected receipt/link %q / %q", b.Receipt, b.MeetingLink)
	}
	if other := newConsultation(5, e, "10:00 AM"); other.ID == b.ID {
		t.Error("expected unique booking ids")
	}
}

func TestGetExperts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := Handler{}
	router := gin.New()
	router.GET("/api/experts", h.getExperts)

	w := doRequest(router, "GET", "/api/experts", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp []expert
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp) != 3 || resp[2].PriceINR != 3000 || len(resp[0].AvailableSlots) != 3 {
		t.Errorf("unexpected experts %+v", resp)
	}
}

// TestBookConsultation_Invalid is rejected before any DB access, so the
// handler runs without a pool.
func TestBookConsultation_Invalid(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := Handler{}
	router := gin.New()
	router.POST("/api/consultations", func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Next()
	}, h.bookConsultation)

	w := doRequest(router, "POST", "/api/consultations", `{"expert_id":"1","time_slot":"9:00 PM"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != errSlotUnavailable.Error() {
		t.Errorf("unexpected error %q", resp["error"])
	}
}
