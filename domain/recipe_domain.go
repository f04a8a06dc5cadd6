package domain

import (
	"errors"
)

var (
	MessageSuccessGenerateRecipes = "recipes generated successfully"
	MessageSuccessGetExpiring     = "expiring ingredients retrieved successfully"
	MessageSuccessSaveRecipe      = "recipe saved successfully"
	MessageSuccessGetSavedRecipes = "saved recipes retrieved successfully"
	MessageSuccessUnsaveRecipe    = "recipe removed from favorites"

	MessageFailedGenerateRecipes = "failed to generate recipes"
	MessageFailedGetExpiring     = "failed to retrieve expiring ingredients"
	MessageFailedSaveRecipe      = "failed to save recipe"
	MessageFailedGetSavedRecipes = "failed to retrieve saved recipes"
	MessageFailedUnsaveRecipe    = "failed to remove recipe from favorites"

	ErrNoIngredients       = errors.New("at least one ingredient is required")
	ErrGenerationFailed    = errors.New("recipe generation failed")
	ErrRecipeAlreadySaved  = errors.New("recipe already saved")
	ErrSavedRecipeNotFound = errors.New("saved recipe not found")
)

// GenerationMode selects whether the generator freely chooses ingredients
// or is constrained to a user-supplied subset.
type GenerationMode string

const (
	ModeAuto   GenerationMode = "auto"
	ModeManual GenerationMode = "manual"
)

// ParseGenerationMode falls back to auto for unrecognized input.
func ParseGenerationMode(s string) GenerationMode {
	if GenerationMode(s) == ModeManual {
		return ModeManual
	}
	return ModeAuto
}

// TimePreference narrows the cooking-time target of generated recipes.
type TimePreference string

const (
	TimeQuick  TimePreference = "quick"  // under 30 minutes
	TimeNormal TimePreference = "normal" // 30-60 minutes
	TimeAny    TimePreference = "any"
)

func ParseTimePreference(s string) TimePreference {
	switch TimePreference(s) {
	case TimeQuick, TimeNormal:
		return TimePreference(s)
	default:
		return TimeAny
	}
}

type (
	// IngredientInput is one ingredient offered to the generator, usually
	// taken from the inventory listing or the expiring-ingredients query.
	IngredientInput struct {
		Name       string   `json:"name" validate:"required,min=1"`
		Quantity   *float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit       string   `json:"unit" validate:"omitempty"`
		ExpiryDate string   `json:"expiry_date" validate:"omitempty"` // ISO date
	}

	GenerateRecipesRequest struct {
		Ingredients             []IngredientInput `json:"ingredients" validate:"required,min=1,dive"`
		MaxRecipes              int               `json:"max_recipes" validate:"omitempty,min=1,max=5"`
		Mode                    string            `json:"mode" validate:"omitempty"`
		SelectedIngredientNames []string          `json:"selected_ingredient_names" validate:"omitempty"`
		TimePreference          string            `json:"time_preference" validate:"omitempty"`
		Servings                int               `json:"servings" validate:"omitempty,min=1,max=6"`
	}

	RecipeIngredient struct {
		Name            string `json:"name"`
		Quantity        string `json:"quantity"`
		FromInventory   bool   `json:"from_inventory"`
		IsExpiringSoon  bool   `json:"is_expiring_soon"`
		DaysUntilExpiry *int   `json:"days_until_expiry,omitempty"`
	}

	RecipeResponse struct {
		Title                string             `json:"title"`
		Description          string             `json:"description"`
		CookingTimeMinutes   int                `json:"cooking_time_minutes"`
		Servings             int                `json:"servings"`
		Difficulty           string             `json:"difficulty"`
		Ingredients          []RecipeIngredient `json:"ingredients"`
		Instructions         []string           `json:"instructions"`
		Tips                 string             `json:"tips,omitempty"`
		RecommendationReason string             `json:"recommendation_reason"`
	}

	GenerateRecipesResponse struct {
		Recipes            []RecipeResponse `json:"recipes"`
		IngredientsUsed    []string         `json:"ingredients_used"`
		IngredientsMissing []string         `json:"ingredients_missing"`
	}

	SaveRecipeRequest struct {
		Title                string             `json:"title" validate:"required,min=1"`
		Description          string             `json:"description" validate:"required"`
		CookingTimeMinutes   int                `json:"cooking_time_minutes" validate:"required,min=1"`
		Servings             int                `json:"servings" validate:"required,min=1"`
		Difficulty           string             `json:"difficulty" validate:"required"`
		Ingredients          []RecipeIngredient `json:"ingredients" validate:"required,min=1,dive"`
		Instructions         []string           `json:"instructions" validate:"required,min=1"`
		Tips                 string             `json:"tips"`
		RecommendationReason string             `json:"recommendation_reason"`
	}

	SavedRecipeResponse struct {
		ID                   string             `json:"id"`
		Title                string             `json:"title"`
		Description          string             `json:"description"`
		CookingTimeMinutes   int                `json:"cooking_time_minutes"`
		Servings             int                `json:"servings"`
		Difficulty           string             `json:"difficulty"`
		Ingredients          []RecipeIngredient `json:"ingredients"`
		Instructions         []string           `json:"instructions"`
		Tips                 string             `json:"tips,omitempty"`
		RecommendationReason string             `json:"recommendation_reason"`
		SavedAt              string             `json:"saved_at"`
	}
)
