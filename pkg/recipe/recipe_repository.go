package recipe

import (
	"context"

	"gorm.io/gorm"

	"SnapShelf-Backend/entities"
)

type (
	RecipeRepository interface {
		CreateSavedRecipe(ctx context.Context, recipe *entities.SavedRecipe) error
		GetSavedRecipeByTitle(ctx context.Context, userID, title string) (*entities.SavedRecipe, error)
		GetSavedRecipes(ctx context.Context, userID string) ([]*entities.SavedRecipe, error)
		DeleteSavedRecipe(ctx context.Context, id, userID string) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateSavedRecipe(ctx context.Context, recipe *entities.SavedRecipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetSavedRecipeByTitle(ctx context.Context, userID, title string) (*entities.SavedRecipe, error) {
	var recipe entities.SavedRecipe
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND title = ?", userID, title).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetSavedRecipes(ctx context.Context, userID string) ([]*entities.SavedRecipe, error) {
	var recipes []*entities.SavedRecipe
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("saved_at desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) DeleteSavedRecipe(ctx context.Context, id, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.SavedRecipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
