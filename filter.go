package main

import (
	"errors"
	"fmt"
	"strings"
)

// errEmptyFilteredCatalog means restrictions removed every candidate for a
// slot. Plans are never assembled from the unfiltered catalog instead.
var errEmptyFilteredCatalog = errors.New("no meals left after applying restrictions")

// emptySlotError names the slot that filtering emptied.
type emptySlotError struct {
	Slot slot
}

func (e *emptySlotError) Error() string {
	return fmt.Sprintf("%s: %v", e.Slot, errEmptyFilteredCatalog)
}

func (e *emptySlotError) Unwrap() error {
	return errEmptyFilteredCatalog
}

// mealMatchesAny reports whether any term is a case-insensitive substring of
// the meal name or one of its ingredients. Terms must already be lower-case.
// Matching ignores word boundaries: "egg" matches "Veggie Scrambled Eggs".
func mealMatchesAny(m meal, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	haystack := make([]string, 0, len(m.Ingredients)+1)
	haystack = append(haystack, strings.ToLower(m.Name))
	for _, ing := range m.Ingredients {
		haystack = append(haystack, strings.ToLower(ing))
	}
	for _, term := range terms {
		for _, h := range haystack {
			if strings.Contains(h, term) {
				return true
			}
		}
	}
	return false
}

// restrictionTerms merges dislikes and allergies into one lower-case list,
// skipping blanks so an empty term can never exclude everything.
func restrictionTerms(dislikedFoods, allergies []string) []string {
	terms := make([]string, 0, len(dislikedFoods)+len(allergies))
	for _, list := range [][]string{dislikedFoods, allergies} {
		for _, t := range list {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				terms = append(terms, t)
			}
		}
	}
	return terms
}

// filterMeals drops every meal matching a disliked food or allergy, keeping
// the relative order of the rest.
func filterMeals(meals []meal, dislikedFoods, allergies []string) []meal {
	terms := restrictionTerms(dislikedFoods, allergies)
	kept := make([]meal, 0, len(meals))
	for _, m := range meals {
		if !mealMatchesAny(m, terms) {
			kept = append(kept, m.clone())
		}
	}
	return kept
}

// filterCatalog applies filterMeals to each catalog slot. It fails with an
// *emptySlotError for the first slot left without candidates. A restricted
// snack is dropped rather than failing the plan.
func filterCatalog(c mealCatalog, dislikedFoods, allergies []string) (mealCatalog, error) {
	var filtered mealCatalog
	for _, s := range mealSlots {
		kept := filterMeals(c.meals(s), dislikedFoods, allergies)
		if len(kept) == 0 {
			return mealCatalog{}, &emptySlotError{Slot: s}
		}
		filtered = filtered.withMeals(s, kept)
	}
	if c.Snack != nil {
		if kept := filterMeals([]meal{*c.Snack}, dislikedFoods, allergies); len(kept) == 1 {
			filtered.Snack = &kept[0]
		}
	}
	return filtered, nil
}
