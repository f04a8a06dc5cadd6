package recipe

import (
	"encoding/json"
	"fmt"
	"strings"
)

const generationPromptTemplate = `You are the recipe recommendation engine for a fridge-tracking app focused on reducing food waste.

Your primary goal is NOT creativity or variety.
Your primary goal is to recommend practical recipes that USE FOOD BEFORE IT EXPIRES.

MODE: %s
%s

TIME PREFERENCE: %s
TARGET SERVINGS: %d

USER'S INVENTORY:
%s

Generate EXACTLY %d recipes. You MUST return exactly %d recipes, no more, no less.

RANKING PRIORITY:
1. Waste reduction impact (recipes using most expiring items rank higher)
2. Convenience (fewer additional ingredients needed)

RULES (NON-NEGOTIABLE):
- Assume basic pantry staples are available (salt, pepper, oil, butter, garlic, onion, common spices)
- Do NOT ask follow-up questions
- Prioritize ingredients closest to expiration
- Prefer recipes that use MULTIPLE expiring items together
- Keep additional required ingredients minimal
- If time preference is "quick", recipes should be under 30 minutes
- If time preference is "normal", recipes should be 30-60 minutes
- All recipes must serve approximately %d portions

OUTPUT FORMAT - Return a JSON object with this exact structure:
{
  "recipes": [
    {
      "title": "Recipe Name",
      "description": "1-2 sentence appetizing description",
      "cooking_time_minutes": 30,
      "servings": %d,
      "difficulty": "easy|medium|hard",
      "recommendation_reason": "Uses 3 items expiring in the next 2 days",
      "ingredients": [
        {
          "name": "ingredient name",
          "quantity": "2 cups",
          "from_inventory": true,
          "is_expiring_soon": true,
          "days_until_expiry": 2
        }
      ],
      "instructions": ["Step 1...", "Step 2..."],
      "tips": "Optional tip or null"
    }
  ],
  "ingredients_used": ["list of inventory ingredient names used"],
  "ingredients_missing": ["pantry staples needed that weren't in inventory"]
}

For each ingredient:
- from_inventory: true if from user's inventory
- is_expiring_soon: true if expiring within 3 days
- days_until_expiry: number of days until expiry (only for inventory items)

The recommendation_reason MUST explain WHY this recipe was recommended, focusing on waste reduction.
Examples: "Uses chicken expiring tomorrow and spinach expiring in 2 days", "Clears 4 items expiring this week"`

const modeAutoInstructions = `AUTO MODE - "What should I cook?"
- Automatically prioritize ingredients closest to expiration
- Prefer recipes that use multiple expiring items together
- Reduce total waste risk by maximizing use of soon-to-expire items`

const modeManualInstructionsTemplate = `MANUAL MODE - "User selected specific ingredients"
- ONLY use these ingredients from the user's inventory: %s
- DO NOT use any other ingredients from the inventory - the user specifically chose these items
- You may assume basic pantry staples (salt, pepper, oil, butter, garlic, onion, common spices)
- All recipes MUST be based around the selected ingredients only
- This is a strict requirement - if user selected chicken, do NOT add beef or other meats`

// promptIngredient is the wire shape of one inventory line inside the
// generation prompt, sorted most-urgent first before serialization.
type promptIngredient struct {
	Name            string `json:"name"`
	Quantity        string `json:"quantity"`
	DaysUntilExpiry *int   `json:"days_until_expiry"`
	IsExpiringSoon  bool   `json:"is_expiring_soon"`
	ExpiryDate      string `json:"expiry_date,omitempty"`
}

func buildPrompt(mode string, modeInstructions, timePreference string, servings, maxRecipes int, ingredients []promptIngredient) string {
	ingredientsJSON, _ := json.MarshalIndent(ingredients, "", "  ")
	return fmt.Sprintf(
		generationPromptTemplate,
		strings.ToUpper(mode),
		modeInstructions,
		timePreference,
		servings,
		string(ingredientsJSON),
		maxRecipes,
		maxRecipes,
		servings,
		servings,
	)
}
