package inventory

import (
	"context"
	"time"

	"gorm.io/gorm"

	"SnapShelf-Backend/entities"
)

type (
	InventoryRepository interface {
		AddInventoryItem(ctx context.Context, item *entities.InventoryItem) error
		GetInventoryItemByID(ctx context.Context, id, userID string) (*entities.InventoryItem, error)
		GetInventoryItems(ctx context.Context, userID string) ([]*entities.InventoryItem, error)
		GetItemsExpiringWithin(ctx context.Context, userID string, from, to time.Time) ([]*entities.InventoryItem, error)
		UpdateQuantity(ctx context.Context, id, userID string, quantity float64) error
		DeleteInventoryItem(ctx context.Context, id, userID string) error
		ConfirmDraft(ctx context.Context, draftID, userID string, item *entities.InventoryItem) error
	}

	inventoryRepository struct {
		db *gorm.DB
	}
)

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) AddInventoryItem(ctx context.Context, item *entities.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryRepository) GetInventoryItemByID(ctx context.Context, id, userID string) (*entities.InventoryItem, error) {
	var item entities.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetInventoryItems returns the soonest-expiring items first. The ordering
// is a product requirement, not a presentation detail.
func (r *inventoryRepository) GetInventoryItems(ctx context.Context, userID string) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("expiry_date asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepository) GetItemsExpiringWithin(ctx context.Context, userID string, from, to time.Time) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND expiry_date >= ? AND expiry_date <= ?", userID, from, to).
		Order("expiry_date asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity writes the single mutable column. Every other field is
// immutable after creation and no repository method can touch it.
func (r *inventoryRepository) UpdateQuantity(ctx context.Context, id, userID string, quantity float64) error {
	result := r.db.WithContext(ctx).
		Model(&entities.InventoryItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *inventoryRepository) DeleteInventoryItem(ctx context.Context, id, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.InventoryItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ConfirmDraft atomically consumes a draft and creates the trusted item.
// The draft delete goes first: with two concurrent confirmations of the
// same draft, only one delete affects a row, so the loser rolls back and
// observes not-found instead of duplicating inventory.
func (r *inventoryRepository) ConfirmDraft(ctx context.Context, draftID, userID string, item *entities.InventoryItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("id = ? AND user_id = ?", draftID, userID).
			Delete(&entities.DraftItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Create(item).Error
	})
}
