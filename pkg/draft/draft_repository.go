package draft

import (
	"context"

	"gorm.io/gorm"

	"SnapShelf-Backend/entities"
)

type (
	DraftRepository interface {
		CreateDraftItem(ctx context.Context, draft *entities.DraftItem) error
		GetDraftItemByID(ctx context.Context, id, userID string) (*entities.DraftItem, error)
		UpdateDraftItem(ctx context.Context, draft *entities.DraftItem) error
		DeleteDraftItem(ctx context.Context, id, userID string) error
		GetDraftItems(ctx context.Context, userID string) ([]*entities.DraftItem, error)
	}

	draftRepository struct {
		db *gorm.DB
	}
)

func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) CreateDraftItem(ctx context.Context, draft *entities.DraftItem) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

// GetDraftItemByID filters on both id and owner so a record belonging to
// another user is indistinguishable from a missing one.
func (r *draftRepository) GetDraftItemByID(ctx context.Context, id, userID string) (*entities.DraftItem, error) {
	var draft entities.DraftItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&draft).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepository) UpdateDraftItem(ctx context.Context, draft *entities.DraftItem) error {
	return r.db.WithContext(ctx).Save(draft).Error
}

func (r *draftRepository) DeleteDraftItem(ctx context.Context, id, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.DraftItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *draftRepository) GetDraftItems(ctx context.Context, userID string) ([]*entities.DraftItem, error) {
	var drafts []*entities.DraftItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&drafts).Error; err != nil {
		return nil, err
	}
	return drafts, nil
}
