package main

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

var errUnknownRecipeCategory = errors.New("unknown recipe category")

type recipeNutrition struct {
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
	FiberG   int `json:"fiber_g"`
}

// recipe is a browsable recipe, separate from the plan catalog.
type recipe struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Calories     int             `json:"calories"`
	Time         string          `json:"time"`
	Servings     int             `json:"servings"`
	Difficulty   string          `json:"difficulty"`
	Tags         []string        `json:"tags"`
	Ingredients  []string        `json:"ingredients"`
	Instructions []string        `json:"instructions"`
	Nutrition    recipeNutrition `json:"nutrition"`
}

// recipeCategories are the accepted ?category values besides "all".
var recipeCategories = []string{"vegetarian", "vegan", "keto", "paleo", "gluten-free"}

var recipes = []recipe{
	{
		ID: 1, Name: "Mediterranean Quinoa Bowl", Category: "vegetarian",
		Calories: 420, Time: "25 min", Servings: 2, Difficulty: "Easy",
		Tags: []string{"High Protein", "Gluten Free", "Heart Healthy"},
		Ingredients: []string{
			"1 cup quinoa", "1 cucumber, diced", "1 cup cherry tomatoes", "1/2 red onion, sliced",
			"1/4 cup olives", "2 tbsp olive oil", "2 tbsp lemon juice", "1/4 cup feta cheese",
		},
		Instructions: []string{
			"Cook quinoa according to package instructions",
			"Dice cucumber and halve cherry tomatoes",
			"Combine vegetables in a large bowl",
			"Whisk olive oil and lemon juice for dressing",
			"Add cooked quinoa and toss with dressing",
			"Top with feta cheese and serve",
		},
		Nutrition: recipeNutrition{ProteinG: 15, CarbsG: 58, FatG: 12, FiberG: 6},
	},
	{
		ID: 2, Name: "Grilled Salmon with Asparagus", Category: "keto",
		Calories: 380, Time: "20 min", Servings: 1, Difficulty: "Medium",
		Tags: []string{"Keto", "High Protein", "Omega-3"},
		Ingredients: []string{
			"6 oz salmon fillet", "1 bunch asparagus", "2 tbsp olive oil", "1 lemon, sliced",
			"2 cloves garlic, minced", "Salt and pepper to taste", "Fresh dill",
		},
		Instructions: []string{
			"Preheat grill to medium-high heat",
			"Season salmon with salt, pepper, and garlic",
			"Trim asparagus ends and drizzle with olive oil",
			"Grill salmon for 4-5 minutes per side",
			"Grill asparagus for 3-4 minutes",
			"Serve with lemon slices and fresh dill",
		},
		Nutrition: recipeNutrition{ProteinG: 35, CarbsG: 8, FatG: 22, FiberG: 4},
	},
	{
		ID: 3, Name: "Chickpea Curry", Category: "vegan",
		Calories: 320, Time: "30 min", Servings: 4, Difficulty: "Easy",
		Tags: []string{"Vegan", "High Fiber", "Plant-Based"},
		Ingredients: []string{
			"2 cans chickpeas, drained", "1 can coconut milk", "1 onion, diced", "3 cloves garlic, minced",
			"1 tbsp curry powder", "1 tsp turmeric", "1 can diced tomatoes", "2 cups spinach",
		},
		Instructions: []string{
			"Sauté onion and garlic until fragrant",
			"Add curry powder and turmeric, cook 1 minute",
			"Add tomatoes and coconut milk",
			"Add chickpeas and simmer 15 minutes",
			"Stir in spinach until wilted",
			"Season with salt and pepper",
		},
		Nutrition: recipeNutrition{ProteinG: 12, CarbsG: 45, FatG: 8, FiberG: 10},
	},
}

// recipeMatches reports whether term (lower-case) occurs in the recipe's
// name, a tag or an ingredient. An empty term matches everything.
func recipeMatches(r recipe, term string) bool {
	if term == "" {
		return true
	}
	as := meal{Name: r.Name, Ingredients: append(slices.Clone(r.Tags), r.Ingredients...)}
	return mealMatchesAny(as, []string{term})
}

// searchRecipes filters the recipe list by free-text query and category.
// Category "" or "all" keeps every category. Results are copies.
func searchRecipes(query, category string) ([]recipe, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "all" {
		category = ""
	}
	if category != "" && !slices.Contains(recipeCategories, category) {
		return nil, errUnknownRecipeCategory
	}

	out := []recipe{}
	for _, r := range recipes {
		if category != "" && r.Category != category {
			continue
		}
		if !recipeMatches(r, query) {
			continue
		}
		r.Tags = slices.Clone(r.Tags)
		r.Ingredients = slices.Clone(r.Ingredients)
		r.Instructions = slices.Clone(r.Instructions)
		out = append(out, r)
	}
	return out, nil
}

// getRecipes lists recipes matching ?q= (name, tag or ingredient) and
// ?category=. GET /api/recipes (public).
func (h *Handler) getRecipes(c *gin.Context) {
	found, err := searchRecipes(c.Query("q"), c.Query("category"))
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, found)
}
