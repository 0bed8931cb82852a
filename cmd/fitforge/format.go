// ABOUTME: Small text helpers for CLI tables.
// ABOUTME: Truncation, padding, and nutrition formatting.
package main

import (
	"fmt"
	"strings"

	"github.com/harperreed/fitforge/internal/models"
)

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func formatNutrition(n models.Nutrition) string {
	return fmt.Sprintf("%4.0f kcal  P %5.1fg  C %5.1fg  F %5.1fg", n.Calories, n.Protein, n.Carbs, n.Fats)
}
