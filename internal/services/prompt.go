package services

import (
	"fmt"

	"github.com/foodlens/recipe-chat/internal/ai"
)

// promptFormatClause is the shared formatting instruction appended to every
// recipe prompt. The generated output is HTML-ish text rendered as-is by the
// view layer; there is deliberately no structured recipe schema.
const promptFormatClause = "Format each recipe as HTML with: <h3>Recipe Name</h3>, " +
	"<ul><li>Ingredients...</li></ul>, <b>Steps:</b>, <b>Estimated Time</b>, " +
	"<b>Nutrition Tag</b> (weight/protein/fibre), <b>Who should avoid</b>."

// buildPrompt constructs exactly one of three prompt templates depending on
// which inputs are present: name+image, image-only, or name-only. The caller
// guarantees at least one input is set.
func buildPrompt(foodName string, hasImage bool, category ai.Category) string {
	switch {
	case hasImage && foodName != "":
		return fmt.Sprintf(
			"Suggest 2-3 very easy, quick, home-made recipes using both the uploaded image (which is '%s') and the food name '%s'. %s",
			category, foodName, promptFormatClause)
	case hasImage:
		return fmt.Sprintf(
			"Suggest 2-3 very easy, quick, home-made recipes for the uploaded image (which is '%s'). %s",
			category, promptFormatClause)
	default:
		return fmt.Sprintf(
			"Suggest 2-3 very easy, quick, home-made recipes for '%s'. %s",
			foodName, promptFormatClause)
	}
}
