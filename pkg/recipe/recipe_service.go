package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"SnapShelf-Backend/domain"
	"SnapShelf-Backend/entities"
	"SnapShelf-Backend/pkg/inventory"
	"SnapShelf-Backend/pkg/openai"
)

type (
	RecipeService interface {
		GenerateRecipes(ctx context.Context, req domain.GenerateRecipesRequest, userID string) (domain.GenerateRecipesResponse, error)
		GetExpiringIngredients(ctx context.Context, userID string, days int) ([]domain.IngredientInput, error)
		SaveRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.SavedRecipeResponse, error)
		GetSavedRecipes(ctx context.Context, userID string) ([]domain.SavedRecipeResponse, error)
		UnsaveRecipe(ctx context.Context, id, userID string) error
	}

	recipeService struct {
		chat                openai.ChatCompleter
		model               string
		recipeRepository    RecipeRepository
		inventoryRepository inventory.InventoryRepository
		now                 func() time.Time
	}
)

func NewRecipeService(
	chat openai.ChatCompleter,
	model string,
	recipeRepository RecipeRepository,
	inventoryRepository inventory.InventoryRepository,
) RecipeService {
	return &recipeService{
		chat:                chat,
		model:               model,
		recipeRepository:    recipeRepository,
		inventoryRepository: inventoryRepository,
		now:                 time.Now,
	}
}

const (
	defaultMaxRecipes = 3
	defaultServings   = 2
	expiringSoonDays  = 3
)

func (s *recipeService) GenerateRecipes(ctx context.Context, req domain.GenerateRecipesRequest, userID string) (domain.GenerateRecipesResponse, error) {
	if len(req.Ingredients) == 0 {
		return domain.GenerateRecipesResponse{}, domain.ErrNoIngredients
	}

	maxRecipes := req.MaxRecipes
	if maxRecipes < 1 {
		maxRecipes = defaultMaxRecipes
	}
	if maxRecipes > 5 {
		maxRecipes = 5
	}

	servings := req.Servings
	if servings < 1 {
		servings = defaultServings
	}
	if servings > 6 {
		servings = 6
	}

	mode := domain.ParseGenerationMode(req.Mode)
	timePreference := domain.ParseTimePreference(req.TimePreference)

	annotated := s.annotateIngredients(req.Ingredients)

	modeInstructions := modeAutoInstructions
	if mode == domain.ModeManual {
		modeInstructions = fmt.Sprintf(modeManualInstructionsTemplate, strings.Join(req.SelectedIngredientNames, ", "))
	}

	prompt := buildPrompt(string(mode), modeInstructions, string(timePreference), servings, maxRecipes, annotated)

	content, err := s.chat.CreateChatCompletion(ctx, openai.ChatRequest{
		Model: s.model,
		Messages: []openai.Message{
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &openai.ResponseFormat{Type: "json_object"},
		MaxTokens:      2500,
		Temperature:    0.7,
	})
	if err != nil {
		return domain.GenerateRecipesResponse{}, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	var response domain.GenerateRecipesResponse
	if err := json.Unmarshal([]byte(content), &response); err != nil {
		return domain.GenerateRecipesResponse{}, fmt.Errorf("%w: malformed response", domain.ErrGenerationFailed)
	}

	if len(response.Recipes) != maxRecipes {
		return domain.GenerateRecipesResponse{}, fmt.Errorf("%w: expected %d recipes, got %d", domain.ErrGenerationFailed, maxRecipes, len(response.Recipes))
	}

	if mode == domain.ModeManual {
		if err := checkManualConstraint(response.Recipes, req.SelectedIngredientNames); err != nil {
			return domain.GenerateRecipesResponse{}, err
		}
	}

	return response, nil
}

// annotateIngredients computes freshness flags from the supplied expiry
// dates and orders the list most-urgent first: known expiries before
// unknown, soonest first. Already-expired items keep negative day counts
// and rank ahead of everything else.
func (s *recipeService) annotateIngredients(ingredients []domain.IngredientInput) []promptIngredient {
	today := s.now().Truncate(24 * time.Hour)

	annotated := make([]promptIngredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		entry := promptIngredient{
			Name:     ingredient.Name,
			Quantity: formatQuantity(ingredient.Quantity, ingredient.Unit),
		}
		if ingredient.ExpiryDate != "" {
			if expiry, err := time.Parse("2006-01-02", ingredient.ExpiryDate); err == nil {
				days := int(expiry.Sub(today).Hours() / 24)
				entry.DaysUntilExpiry = &days
				entry.IsExpiringSoon = days <= expiringSoonDays
				entry.ExpiryDate = ingredient.ExpiryDate
			}
		}
		annotated = append(annotated, entry)
	}

	sort.SliceStable(annotated, func(i, j int) bool {
		a, b := annotated[i].DaysUntilExpiry, annotated[j].DaysUntilExpiry
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})

	return annotated
}

func formatQuantity(quantity *float64, unit string) string {
	if quantity == nil {
		return "available"
	}
	formatted := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", *quantity), "0"), ".")
	if unit == "" {
		return formatted
	}
	return formatted + " " + unit
}

// checkManualConstraint rejects generated recipes that pull inventory
// ingredients outside the user's explicit selection. Pantry staples are
// exempt since they are never marked from_inventory.
func checkManualConstraint(recipes []domain.RecipeResponse, selectedNames []string) error {
	for _, recipe := range recipes {
		for _, ingredient := range recipe.Ingredients {
			if !ingredient.FromInventory {
				continue
			}
			if !matchesAnyName(ingredient.Name, selectedNames) {
				return fmt.Errorf("%w: recipe %q uses unselected ingredient %q", domain.ErrGenerationFailed, recipe.Title, ingredient.Name)
			}
		}
	}
	return nil
}

func matchesAnyName(name string, selectedNames []string) bool {
	lowered := strings.ToLower(name)
	for _, selected := range selectedNames {
		selectedLower := strings.ToLower(selected)
		if strings.Contains(lowered, selectedLower) || strings.Contains(selectedLower, lowered) {
			return true
		}
	}
	return false
}

func (s *recipeService) GetExpiringIngredients(ctx context.Context, userID string, days int) ([]domain.IngredientInput, error) {
	if days < 1 {
		days = expiringSoonDays
	}

	today := s.now().Truncate(24 * time.Hour)
	items, err := s.inventoryRepository.GetItemsExpiringWithin(ctx, userID, today, today.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}

	ingredients := make([]domain.IngredientInput, 0, len(items))
	for _, item := range items {
		quantity := item.Quantity
		ingredients = append(ingredients, domain.IngredientInput{
			Name:       item.Name,
			Quantity:   &quantity,
			Unit:       item.Unit,
			ExpiryDate: item.ExpiryDate.Format("2006-01-02"),
		})
	}
	return ingredients, nil
}

func (s *recipeService) SaveRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.SavedRecipeResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.SavedRecipeResponse{}, domain.ErrParseUUID
	}

	_, err = s.recipeRepository.GetSavedRecipeByTitle(ctx, userID, req.Title)
	if err == nil {
		return domain.SavedRecipeResponse{}, domain.ErrRecipeAlreadySaved
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.SavedRecipeResponse{}, err
	}

	ingredientsJSON, err := json.Marshal(req.Ingredients)
	if err != nil {
		return domain.SavedRecipeResponse{}, err
	}
	instructionsJSON, err := json.Marshal(req.Instructions)
	if err != nil {
		return domain.SavedRecipeResponse{}, err
	}

	saved := &entities.SavedRecipe{
		ID:                   uuid.New(),
		UserID:               userUUID,
		Title:                req.Title,
		Description:          req.Description,
		CookingTimeMinutes:   req.CookingTimeMinutes,
		Servings:             req.Servings,
		Difficulty:           req.Difficulty,
		Ingredients:          string(ingredientsJSON),
		Instructions:         string(instructionsJSON),
		Tips:                 req.Tips,
		RecommendationReason: req.RecommendationReason,
		SavedAt:              s.now(),
	}

	if err := s.recipeRepository.CreateSavedRecipe(ctx, saved); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.SavedRecipeResponse{}, domain.ErrRecipeAlreadySaved
		}
		return domain.SavedRecipeResponse{}, err
	}

	return toSavedRecipeResponse(saved), nil
}

func (s *recipeService) GetSavedRecipes(ctx context.Context, userID string) ([]domain.SavedRecipeResponse, error) {
	recipes, err := s.recipeRepository.GetSavedRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.SavedRecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		response = append(response, toSavedRecipeResponse(recipe))
	}
	return response, nil
}

func (s *recipeService) UnsaveRecipe(ctx context.Context, id, userID string) error {
	if err := s.recipeRepository.DeleteSavedRecipe(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrSavedRecipeNotFound
		}
		return err
	}
	return nil
}

func toSavedRecipeResponse(saved *entities.SavedRecipe) domain.SavedRecipeResponse {
	var ingredients []domain.RecipeIngredient
	_ = json.Unmarshal([]byte(saved.Ingredients), &ingredients)

	var instructions []string
	_ = json.Unmarshal([]byte(saved.Instructions), &instructions)

	return domain.SavedRecipeResponse{
		ID:                   saved.ID.String(),
		Title:                saved.Title,
		Description:          saved.Description,
		CookingTimeMinutes:   saved.CookingTimeMinutes,
		Servings:             saved.Servings,
		Difficulty:           saved.Difficulty,
		Ingredients:          ingredients,
		Instructions:         instructions,
		Tips:                 saved.Tips,
		RecommendationReason: saved.RecommendationReason,
		SavedAt:              saved.SavedAt.Format(time.RFC3339),
	}
}
