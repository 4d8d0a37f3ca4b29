package main

import (
	"slices"
)

// slot is a meal-time category.
type slot string

const (
	slotBreakfast slot = "breakfast"
	slotLunch     slot = "lunch"
	slotDinner    slot = "dinner"
	slotSnack     slot = "snack"
)

// mealSlots are the rotated catalog slots in display order. The snack is a
// single optional catalog entry the assembler adds to every day.
var mealSlots = []slot{slotBreakfast, slotLunch, slotDinner}

// meal is one authored catalog entry. Catalog values are never mutated; the
// goal adjuster works on clones.
type meal struct {
	Name         string   `json:"name"`
	Calories     int      `json:"calories"`
	Protein      int      `json:"protein"`
	Carbs        int      `json:"carbs"`
	Fat          int      `json:"fat"`
	PrepTime     string   `json:"prep_time"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Category     string   `json:"category"`
}

// clone returns a copy that shares no backing array with m.
func (m meal) clone() meal {
	m.Ingredients = slices.Clone(m.Ingredients)
	return m
}

func cloneMeals(meals []meal) []meal {
	out := make([]meal, len(meals))
	for i, m := range meals {
		out[i] = m.clone()
	}
	return out
}

// mealCatalog holds the candidate meals per slot, in authored order, plus the
// optional snack the assembler injects for high-energy profiles.
type mealCatalog struct {
	Breakfast []meal `json:"breakfast"`
	Lunch     []meal `json:"lunch"`
	Dinner    []meal `json:"dinner"`
	Snack     *meal  `json:"snack,omitempty"`
}

// meals returns the candidates for s, or nil for a non-catalog slot.
func (c mealCatalog) meals(s slot) []meal {
	switch s {
	case slotBreakfast:
		return c.Breakfast
	case slotLunch:
		return c.Lunch
	case slotDinner:
		return c.Dinner
	}
	return nil
}

// withMeals returns a copy of c with slot s replaced.
func (c mealCatalog) withMeals(s slot, meals []meal) mealCatalog {
	switch s {
	case slotBreakfast:
		c.Breakfast = meals
	case slotLunch:
		c.Lunch = meals
	case slotDinner:
		c.Dinner = meals
	}
	return c
}

func (c mealCatalog) clone() mealCatalog {
	out := mealCatalog{
		Breakfast: cloneMeals(c.Breakfast),
		Lunch:     cloneMeals(c.Lunch),
		Dinner:    cloneMeals(c.Dinner),
	}
	if c.Snack != nil {
		snack := c.Snack.clone()
		out.Snack = &snack
	}
	return out
}

// defaultCatalog returns a deep copy of the built-in meal tables.
func defaultCatalog() mealCatalog {
	return builtinCatalog.clone()
}

/* ─── Authored data ──────────────────────────────────────────────────── */

var proteinSnack = meal{
	Name:         "Protein Snack",
	Calories:     150,
	Protein:      15,
	Carbs:        10,
	Fat:          6,
	PrepTime:     "5 min",
	Ingredients:  []string{"Greek yogurt", "Nuts", "Berries"},
	Instructions: "Mix yogurt with nuts and berries",
	Category:     "snack",
}

var builtinCatalog = mealCatalog{
	Snack: &proteinSnack,
	Breakfast: []meal{
		{
			Name: "Protein Oatmeal Bowl", Calories: 350, Protein: 25, Carbs: 45, Fat: 8,
			PrepTime:     "15 min",
			Ingredients:  []string{"Rolled oats", "Protein powder", "Banana", "Almonds", "Cinnamon"},
			Instructions: "1. Cook oats with water\n2. Mix in protein powder\n3. Top with sliced banana and almonds\n4. Sprinkle cinnamon",
			Category:     "protein-rich",
		},
		{
			Name: "Veggie Scrambled Eggs", Calories: 320, Protein: 24, Carbs: 12, Fat: 20,
			PrepTime:     "12 min",
			Ingredients:  []string{"Eggs", "Spinach", "Tomatoes", "Bell peppers", "Olive oil"},
			Instructions: "1. Heat oil in pan\n2. Sauté vegetables\n3. Add beaten eggs\n4. Scramble until cooked",
			Category:     "low-carb",
		},
		{
			Name: "Greek Yogurt Parfait", Calories: 280, Protein: 20, Carbs: 35, Fat: 8,
			PrepTime:     "5 min",
			Ingredients:  []string{"Greek yogurt", "Mixed berries", "Granola", "Honey", "Chia seeds"},
			Instructions: "1. Layer yogurt in bowl\n2. Add berries and granola\n3. Drizzle honey\n4. Top with chia seeds",
			Category:     "quick",
		},
		{
			Name: "Avocado Toast Supreme", Calories: 380, Protein: 18, Carbs: 42, Fat: 18,
			PrepTime:     "8 min",
			Ingredients:  []string{"Whole grain bread", "Avocado", "Eggs", "Feta cheese", "Cherry tomatoes"},
			Instructions: "1. Toast bread\n2. Mash avocado with seasoning\n3. Top with poached egg\n4. Add feta and tomatoes",
			Category:     "trendy",
		},
		{
			Name: "Protein Smoothie Bowl", Calories: 340, Protein: 28, Carbs: 38, Fat: 12,
			PrepTime:     "10 min",
			Ingredients:  []string{"Protein powder", "Frozen berries", "Banana", "Coconut flakes", "Nuts"},
			Instructions: "1. Blend protein, berries, banana\n2. Pour into bowl\n3. Top with coconut flakes\n4. Add mixed nuts",
			Category:     "fitness",
		},
	},
	Lunch: []meal{
		{
			Name: "Quinoa Buddha Bowl", Calories: 480, Protein: 22, Carbs: 65, Fat: 15,
			PrepTime:     "20 min",
			Ingredients:  []string{"Quinoa", "Chickpeas", "Avocado", "Spinach", "Tahini dressing"},
			Instructions: "1. Cook quinoa\n2. Roast chickpeas with spices\n3. Assemble bowl with greens\n4. Drizzle tahini dressing",
			Category:     "vegetarian",
		},
		{
			Name: "Grilled Chicken Salad", Calories: 420, Protein: 35, Carbs: 25, Fat: 20,
			PrepTime:     "15 min",
			Ingredients:  []string{"Chicken breast", "Mixed greens", "Cucumber", "Feta", "Olive oil vinaigrette"},
			Instructions: "1. Season and grill chicken\n2. Prepare salad base\n3. Slice chicken on top\n4. Add dressing",
			Category:     "protein-focused",
		},
		{
			Name: "Sweet Potato & Black Bean Bowl", Calories: 450, Protein: 18, Carbs: 72, Fat: 12,
			PrepTime:     "25 min",
			Ingredients:  []string{"Sweet potato", "Black beans", "Corn", "Cilantro", "Lime dressing"},
			Instructions: "1. Roast cubed sweet potato\n2. Heat black beans\n3. Combine with corn\n4. Top with cilantro and lime",
			Category:     "plant-based",
		},
		{
			Name: "Mediterranean Wrap", Calories: 390, Protein: 24, Carbs: 45, Fat: 16,
			PrepTime:     "10 min",
			Ingredients:  []string{"Whole wheat tortilla", "Hummus", "Grilled vegetables", "Feta", "Olives"},
			Instructions: "1. Spread hummus on tortilla\n2. Add grilled vegetables\n3. Sprinkle feta and olives\n4. Roll tightly",
			Category:     "mediterranean",
		},
		{
			Name: "Asian Lettuce Wraps", Calories: 320, Protein: 28, Carbs: 18, Fat: 14,
			PrepTime:     "18 min",
			Ingredients:  []string{"Ground turkey", "Lettuce cups", "Water chestnuts", "Ginger", "Soy sauce"},
			Instructions: "1. Cook turkey with ginger\n2. Add water chestnuts\n3. Season with soy sauce\n4. Serve in lettuce cups",
			Category:     "asian-fusion",
		},
	},
	Dinner: []meal{
		{
			Name: "Grilled Salmon with Vegetables", Calories: 420, Protein: 35, Carbs: 25, Fat: 20,
			PrepTime:     "25 min",
			Ingredients:  []string{"Salmon fillet", "Broccoli", "Sweet potato", "Olive oil", "Herbs"},
			Instructions: "1. Season salmon with herbs\n2. Grill for 6-8 minutes per side\n3. Steam broccoli\n4. Roast sweet potato",
			Category:     "omega-rich",
		},
		{
			Name: "Lentil Curry with Rice", Calories: 380, Protein: 20, Carbs: 58, Fat: 10,
			PrepTime:     "30 min",
			Ingredients:  []string{"Red lentils", "Brown rice", "Coconut milk", "Curry spices", "Vegetables"},
			Instructions: "1. Cook lentils with spices\n2. Add coconut milk\n3. Simmer with vegetables\n4. Serve over rice",
			Category:     "comfort-food",
		},
		{
			Name: "Stuffed Bell Peppers", Calories: 350, Protein: 25, Carbs: 35, Fat: 12,
			PrepTime:     "35 min",
			Ingredients:  []string{"Bell peppers", "Ground turkey", "Quinoa", "Tomato sauce", "Cheese"},
			Instructions: "1. Hollow out peppers\n2. Mix turkey and quinoa\n3. Stuff peppers\n4. Bake with cheese on top",
			Category:     "family-friendly",
		},
		{
			Name: "Zucchini Noodle Carbonara", Calories: 290, Protein: 22, Carbs: 15, Fat: 18,
			PrepTime:     "20 min",
			Ingredients:  []string{"Zucchini", "Eggs", "Parmesan", "Turkey bacon", "Garlic"},
			Instructions: "1. Spiralize zucchini\n2. Cook turkey bacon\n3. Make carbonara sauce\n4. Toss together",
			Category:     "low-carb",
		},
		{
			Name: "Moroccan Chicken Tagine", Calories: 400, Protein: 32, Carbs: 28, Fat: 18,
			PrepTime:     "40 min",
			Ingredients:  []string{"Chicken thighs", "Apricots", "Chickpeas", "Moroccan spices", "Couscous"},
			Instructions: "1. Brown chicken pieces\n2. Add spices and apricots\n3. Simmer with chickpeas\n4. Serve over couscous",
			Category:     "exotic",
		},
	},
}
