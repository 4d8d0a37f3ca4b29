package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func recipeNames(rs []recipe) []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name
	}
	return names
}

func TestSearchRecipes(t *testing.T) {
	cases := []struct {
		name     string
		query    string
		category string
		want     []string
	}{
		{"everything", "", "", []string{"Mediterranean Quinoa Bowl", "Grilled Salmon with Asparagus", "Chickpea Curry"}},
		{"all category", "", "All", []string{"Mediterranean Quinoa Bowl", "Grilled Salmon with Asparagus", "Chickpea Curry"}},
		{"by name", "salmon", "", []string{"Grilled Salmon with Asparagus"}},
		{"by tag", "HIGH PROTEIN", "", []string{"Mediterranean Quinoa Bowl", "Grilled Salmon with Asparagus"}},
		{"by ingredient", "feta", "", []string{"Mediterranean Quinoa Bowl"}},
		{"by category", "", "vegan", []string{"Chickpea Curry"}},
		{"query and category", "high protein", "keto", []string{"Grilled Salmon with Asparagus"}},
		{"no match", "tofu", "", []string{}},
		{"empty category", "", "paleo", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := searchRecipes(tc.query, tc.category)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == nil {
				t.Fatal("expected a non-nil slice")
			}
			names := recipeNames(got)
			if len(names) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, names)
			}
			for i := range names {
				if names[i] != tc.want[i] {
					t.Errorf("expected %v, got %v", tc.want, names)
				}
			}
		})
	}
}

func TestSearchRecipes_UnknownCategory(t *testing.T) {
	if _, err := searchRecipes("", "carnivore"); !errors.Is(err, errUnknownRecipeCategory) {
		t.Fatalf("expected errUnknownRecipeCategory, got %v", err)
	}
}

func TestSearchRecipes_ReturnsCopies(t *testing.T) {
	got, _ := searchRecipes("chickpea", "")
	got[0].Ingredients[0] = "changed"
	got[0].Tags[0] = "changed"

	again, _ := searchRecipes("chickpea", "")
	if again[0].Ingredients[0] != "2 cans chickpeas, drained" || again[0].Tags[0] != "Vegan" {
		t.Errorf("recipe list was mutated: %+v", again[0])
	}
}

func TestGetRecipes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := Handler{}
	router := gin.New()
	router.GET("/api/recipes", h.getRecipes)

	w := doRequest(router, "GET", "/api/recipes?q=curry&category=vegan", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp []recipe
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp) != 1 || resp[0].Nutrition.FiberG != 10 {
		t.Errorf("unexpected recipes %+v", resp)
	}

	if w := doRequest(router, "GET", "/api/recipes?category=carnivore", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown category, got %d", w.Code)
	}
}
