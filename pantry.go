package main

import (
	"math"
	"net/http"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// expiringWithinDays is how close an expiry must be to count as expiring.
const expiringWithinDays = 3

const maxPantrySuggestions = 3

var pantryCategories = []string{"protein", "vegetable", "grain", "dairy", "oil", "canned", "other"}

// pantryItemView is a stored item with its freshness relative to today.
// DaysLeft is nil for items without an expiry date.
type pantryItemView struct {
	pantryItem
	Status   string `json:"status"`
	DaysLeft *int   `json:"days_left"`
}

// pantryMealMatch is a catalog meal ranked by how many of its ingredients are
// in the pantry.
type pantryMealMatch struct {
	Meal      string   `json:"meal"`
	Slot      slot     `json:"slot"`
	Available int      `json:"available"`
	Total     int      `json:"total"`
	Missing   []string `json:"missing"`
}

// validatePantryItem trims the body and defaults the category to "other";
// returns "" when it is acceptable.
func validatePantryItem(req *createPantryItemRequest) string {
	req.Name = strings.TrimSpace(req.Name)
	req.Quantity = strings.TrimSpace(req.Quantity)
	req.Category = strings.ToLower(strings.TrimSpace(req.Category))
	req.Expiry = strings.TrimSpace(req.Expiry)

	if req.Name == "" || req.Quantity == "" {
		return "name and quantity are required"
	}
	if req.Category == "" {
		req.Category = "other"
	}
	if !slices.Contains(pantryCategories, req.Category) {
		return "category must be one of: " + strings.Join(pantryCategories, ", ")
	}
	if req.Expiry != "" {
		if _, err := time.Parse("2006-01-02", req.Expiry); err != nil {
			return "invalid expiry, expected YYYY-MM-DD"
		}
	}
	return ""
}

// expiryStatus classifies an item as expired, expiring (0 to 3 days left) or
// fresh. Items without an expiry are fresh.
func expiryStatus(expiry *DateOnly, today time.Time) (string, *int) {
	if expiry == nil || expiry.IsZero() {
		return "fresh", nil
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	exp := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	days := int(math.Round(exp.Sub(day).Hours() / 24))

	switch {
	case days < 0:
		return "expired", &days
	case days <= expiringWithinDays:
		return "expiring", &days
	}
	return "fresh", &days
}

// describePantry annotates every item and returns the expiring subset
// separately, soonest first.
func describePantry(items []pantryItem, today time.Time) (views, expiring []pantryItemView) {
	views = make([]pantryItemView, 0, len(items))
	expiring = []pantryItemView{}
	for _, it := range items {
		status, days := expiryStatus(it.Expiry, today)
		v := pantryItemView{pantryItem: it, Status: status, DaysLeft: days}
		views = append(views, v)
		if status == "expiring" {
			expiring = append(expiring, v)
		}
	}
	sort.SliceStable(expiring, func(i, j int) bool { return *expiring[i].DaysLeft < *expiring[j].DaysLeft })
	return views, expiring
}

// inPantry reports whether ingredient is covered by any usable item name.
// Names and ingredients match when either contains the other.
func inPantry(ingredient string, names []string) bool {
	ing := strings.ToLower(ingredient)
	for _, n := range names {
		if strings.Contains(ing, n) || strings.Contains(n, ing) {
			return true
		}
	}
	return false
}

// pantryMealSuggestions ranks catalog meals by ingredients on hand, most
// available first and then fewest missing. Expired items are ignored. Meals
// with nothing on hand are left out.
func pantryMealSuggestions(items []pantryItem, c mealCatalog, today time.Time) []pantryMealMatch {
	var names []string
	for _, it := range items {
		if status, _ := expiryStatus(it.Expiry, today); status == "expired" {
			continue
		}
		if n := strings.ToLower(strings.TrimSpace(it.Name)); n != "" {
			names = append(names, n)
		}
	}

	matches := []pantryMealMatch{}
	consider := func(s slot, m meal) {
		match := pantryMealMatch{Meal: m.Name, Slot: s, Total: len(m.Ingredients), Missing: []string{}}
		for _, ing := range m.Ingredients {
			if inPantry(ing, names) {
				match.Available++
			} else {
				match.Missing = append(match.Missing, ing)
			}
		}
		if match.Available > 0 {
			matches = append(matches, match)
		}
	}
	for _, s := range mealSlots {
		for _, m := range c.meals(s) {
			consider(s, m)
		}
	}
	if c.Snack != nil {
		consider(slotSnack, *c.Snack)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Available != matches[j].Available {
			return matches[i].Available > matches[j].Available
		}
		return len(matches[i].Missing) < len(matches[j].Missing)
	})
	return matches[:min(maxPantrySuggestions, len(matches))]
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// getPantry returns the user's pantry with freshness, the expiring items and
// catalog meals that can be made from it.
// GET /api/pantry.
func (h *Handler) getPantry(c *gin.Context) {
	userID := c.GetInt("user_id")

	items, err := queryMany[pantryItem](c, h.db,
		`SELECT * FROM pantry_items
		 WHERE user_id = @userID
		 ORDER BY expiry ASC NULLS LAST, id ASC`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch pantry")
		return
	}

	today := time.Now()
	views, expiring := describePantry(items, today)
	c.JSON(http.StatusOK, gin.H{
		"items":       views,
		"expiring":    expiring,
		"suggestions": pantryMealSuggestions(items, defaultCatalog(), today),
	})
}

// createPantryItem adds an item to the pantry.
// POST /api/pantry. name and quantity are required.
func (h *Handler) createPantryItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createPantryItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validatePantryItem(&body); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	var expiry any
	if body.Expiry != "" {
		expiry = body.Expiry
	}
	item, err := queryOne[pantryItem](c, h.db,
		`INSERT INTO pantry_items (user_id, name, quantity, category, expiry)
		 VALUES (@userID, @name, @quantity, @category, @expiry)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":   userID,
			"name":     body.Name,
			"quantity": body.Quantity,
			"category": body.Category,
			"expiry":   expiry,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to add pantry item")
		return
	}

	status, days := expiryStatus(item.Expiry, time.Now())
	c.JSON(http.StatusCreated, pantryItemView{pantryItem: item, Status: status, DaysLeft: days})
}

// deletePantryItem removes an item by ID.
// DELETE /api/pantry/:id. Returns 204 on success, 404 if not found.
func (h *Handler) deletePantryItem(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM pantry_items WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete pantry item")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "pantry item not found")
		return
	}

	c.Status(http.StatusNoContent)
}
