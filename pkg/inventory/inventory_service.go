package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"SnapShelf-Backend/domain"
	"SnapShelf-Backend/entities"
)

type (
	InventoryService interface {
		AddInventoryItem(ctx context.Context, req domain.ConfirmDraftRequest, userID string) (domain.InventoryItemResponse, error)
		ConfirmDraft(ctx context.Context, draftID string, req domain.ConfirmDraftRequest, userID string) (domain.InventoryItemResponse, error)
		GetInventoryItems(ctx context.Context, userID string) ([]domain.InventoryItemResponse, error)
		GetInventoryItemByID(ctx context.Context, id, userID string) (domain.InventoryItemResponse, error)
		UpdateQuantity(ctx context.Context, id string, req domain.UpdateQuantityRequest, userID string) (domain.InventoryItemResponse, error)
		DeleteInventoryItem(ctx context.Context, id, userID string) error
	}

	inventoryService struct {
		inventoryRepository InventoryRepository
	}
)

func NewInventoryService(inventoryRepository InventoryRepository) InventoryService {
	return &inventoryService{inventoryRepository: inventoryRepository}
}

// buildItem validates the full payload before any mutation happens. Both
// creation paths (direct entry and confirmation) funnel through here, so
// an InventoryItem can never exist in a partially-specified state.
func buildItem(req domain.ConfirmDraftRequest, userID string) (*entities.InventoryItem, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return nil, domain.ErrInvalidExpiryDate
	}

	return &entities.InventoryItem{
		ID:              uuid.New(),
		UserID:          userUUID,
		Name:            req.Name,
		Category:        req.Category,
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		StorageLocation: req.StorageLocation,
		ExpiryDate:      expiryDate,
	}, nil
}

func (s *inventoryService) AddInventoryItem(ctx context.Context, req domain.ConfirmDraftRequest, userID string) (domain.InventoryItemResponse, error) {
	item, err := buildItem(req, userID)
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}

	if err := s.inventoryRepository.AddInventoryItem(ctx, item); err != nil {
		return domain.InventoryItemResponse{}, err
	}

	return toInventoryResponse(item), nil
}

// ConfirmDraft promotes a draft into trusted inventory. The payload is the
// user's reviewed data, not the draft's content: user corrections are
// always authoritative over predicted values. Validation failures return
// before the transaction opens, so the draft survives them intact.
func (s *inventoryService) ConfirmDraft(ctx context.Context, draftID string, req domain.ConfirmDraftRequest, userID string) (domain.InventoryItemResponse, error) {
	item, err := buildItem(req, userID)
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}

	if err := s.inventoryRepository.ConfirmDraft(ctx, draftID, userID, item); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.InventoryItemResponse{}, domain.ErrDraftNotFound
		}
		return domain.InventoryItemResponse{}, err
	}

	return toInventoryResponse(item), nil
}

func (s *inventoryService) GetInventoryItems(ctx context.Context, userID string) ([]domain.InventoryItemResponse, error) {
	items, err := s.inventoryRepository.GetInventoryItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toInventoryResponse(item))
	}
	return response, nil
}

func (s *inventoryService) GetInventoryItemByID(ctx context.Context, id, userID string) (domain.InventoryItemResponse, error) {
	item, err := s.inventoryRepository.GetInventoryItemByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.InventoryItemResponse{}, domain.ErrInventoryItemNotFound
		}
		return domain.InventoryItemResponse{}, err
	}
	return toInventoryResponse(item), nil
}

func (s *inventoryService) UpdateQuantity(ctx context.Context, id string, req domain.UpdateQuantityRequest, userID string) (domain.InventoryItemResponse, error) {
	if req.Quantity <= 0 {
		return domain.InventoryItemResponse{}, domain.ErrInvalidQuantity
	}

	if err := s.inventoryRepository.UpdateQuantity(ctx, id, userID, req.Quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.InventoryItemResponse{}, domain.ErrInventoryItemNotFound
		}
		return domain.InventoryItemResponse{}, err
	}

	item, err := s.inventoryRepository.GetInventoryItemByID(ctx, id, userID)
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}
	return toInventoryResponse(item), nil
}

func (s *inventoryService) DeleteInventoryItem(ctx context.Context, id, userID string) error {
	if err := s.inventoryRepository.DeleteInventoryItem(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInventoryItemNotFound
		}
		return err
	}
	return nil
}

func toInventoryResponse(item *entities.InventoryItem) domain.InventoryItemResponse {
	return domain.InventoryItemResponse{
		ID:              item.ID.String(),
		UserID:          item.UserID.String(),
		Name:            item.Name,
		Category:        item.Category,
		Quantity:        item.Quantity,
		Unit:            item.Unit,
		StorageLocation: item.StorageLocation,
		ExpiryDate:      item.ExpiryDate,
		CreatedAt:       item.CreatedAt,
	}
}
