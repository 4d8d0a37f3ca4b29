package main

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	errUnknownExpert   = errors.New("unknown expert")
	errSlotUnavailable = errors.New("time slot not available for this expert")
)

// expert is a bookable nutritionist. PriceINR is per session.
type expert struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Credentials    string   `json:"credentials"`
	Specialization string   `json:"specialization"`
	Rating         float64  `json:"rating"`
	Experience     string   `json:"experience"`
	PriceINR       int      `json:"price_inr"`
	AvailableSlots []string `json:"available_slots"`
}

var experts = []expert{
	{
		ID:             "1",
		Name:           "Dr. Sarah Johnson",
		Credentials:    "MD, Registered Dietitian",
		Specialization: "Weight Management & Metabolic Health",
		Rating:         4.9,
		Experience:     "15+ years",
		PriceINR:       2500,
		AvailableSlots: []string{"10:00 AM", "2:00 PM", "4:00 PM"},
	},
	{
		ID:             "2",
		Name:           "Dr. Michael Chen",
		Credentials:    "PhD Nutrition Science, RD",
		Specialization: "Sports Nutrition & Performance",
		Rating:         4.8,
		Experience:     "12+ years",
		PriceINR:       2000,
		AvailableSlots: []string{"9:00 AM", "1:00 PM", "5:00 PM"},
	},
	{
		ID:             "3",
		Name:           "Dr. Emily Rodriguez",
		Credentials:    "MD, Clinical Nutritionist",
		Specialization: "Chronic Disease Management",
		Rating:         4.9,
		Experience:     "18+ years",
		PriceINR:       3000,
		AvailableSlots: []string{"11:00 AM", "3:00 PM", "6:00 PM"},
	},
}

const (
	bookingCurrency  = "INR"
	bookingPending   = "pending_payment"
	meetingURLPrefix = "https://meet.google.com/appointment-"
)

// validateBooking resolves the expert and checks the requested slot.
func validateBooking(req bookConsultationRequest) (expert, error) {
	i := slices.IndexFunc(experts, func(e expert) bool { return e.ID == strings.TrimSpace(req.ExpertID) })
	if i < 0 {
		return expert{}, errUnknownExpert
	}
	e := experts[i]
	if !slices.Contains(e.AvailableSlots, strings.TrimSpace(req.TimeSlot)) {
		return expert{}, errSlotUnavailable
	}
	return e, nil
}

// newConsultation builds the pending booking row for e. Payment is captured
// elsewhere against Receipt.
func newConsultation(userID int, e expert, slot string) consultation {
	id := uuid.New().String()
	return consultation{
		ID:          id,
		UserID:      userID,
		ExpertID:    e.ID,
		TimeSlot:    slot,
		AmountPaise: e.PriceINR * 100,
		Currency:    bookingCurrency,
		Receipt:     "receipt_" + id,
		MeetingLink: meetingURLPrefix + id,
		Status:      bookingPending,
	}
}

// getExperts lists bookable experts.
// GET /api/experts (public).
func (h *Handler) getExperts(c *gin.Context) {
	c.JSON(http.StatusOK, experts)
}

// bookConsultation reserves a slot with an expert.
// POST /api/consultations. Body: { "expert_id": "1", "time_slot": "10:00 AM" }.
func (h *Handler) bookConsultation(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body bookConsultationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	e, err := validateBooking(body)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	b := newConsultation(userID, e, strings.TrimSpace(body.TimeSlot))
	saved, err := queryOne[consultation](c, h.db,
		`INSERT INTO consultations
			(id, user_id, expert_id, time_slot, amount_paise, currency, receipt, meeting_link, status)
		 VALUES (@id, @userID, @expertID, @timeSlot, @amount, @currency, @receipt, @meetingLink, @status)
		 RETURNING *`,
		pgx.NamedArgs{
			"id":          b.ID,
			"userID":      b.UserID,
			"expertID":    b.ExpertID,
			"timeSlot":    b.TimeSlot,
			"amount":      b.AmountPaise,
			"currency":    b.Currency,
			"receipt":     b.Receipt,
			"meetingLink": b.MeetingLink,
			"status":      b.Status,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to book consultation")
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// getConsultations lists the user's bookings, newest first.
// GET /api/consultations.
func (h *Handler) getConsultations(c *gin.Context) {
	userID := c.GetInt("user_id")

	bookings, err := queryMany[consultation](c, h.db,
		"SELECT * FROM consultations WHERE user_id = @userID ORDER BY created_at DESC",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch consultations")
		return
	}

	c.JSON(http.StatusOK, bookings)
}
