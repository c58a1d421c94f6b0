// Package diet classifies the free text of a post by dietary keywords. The matching is a plain
// case-insensitive substring search; there is no structured tag schema behind it.
package diet

import "strings"

// Text combines the description and dietary specification of a post into the lower case text all
// classifiers operate on.
func Text(description, dietarySpecification string) string {
	return strings.ToLower(description + " " + dietarySpecification)
}

func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// ContainsGluten reports whether text mentions gluten without declaring itself gluten free.
func ContainsGluten(text string) bool {
	if containsAny(text, "gluten-free", "no gluten") {
		return false
	}
	return containsAny(text, "gluten")
}

// ContainsDairy reports whether text mentions dairy products without declaring itself dairy free.
// Vegan food is dairy free.
func ContainsDairy(text string) bool {
	if containsAny(text, "dairy-free", "no dairy", "vegan") {
		return false
	}
	return containsAny(text, "dairy", "cheese", "milk")
}

// ContainsNuts reports whether text mentions nuts without declaring itself nut free.
func ContainsNuts(text string) bool {
	if containsAny(text, "nut-free", "no nuts") {
		return false
	}
	return containsAny(text, "nuts")
}

func IsVegan(text string) bool {
	return containsAny(text, "vegan")
}

func IsVegetarian(text string) bool {
	return containsAny(text, "vegetarian")
}

func IsGlutenFree(text string) bool {
	return containsAny(text, "gluten-free", "gluten free")
}

func IsNutFree(text string) bool {
	return containsAny(text, "nut-free", "nut free")
}
