package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddInventoryItem    = "inventory item added successfully"
	MessageSuccessConfirmDraft        = "draft confirmed into inventory"
	MessageSuccessGetInventoryItems   = "inventory items retrieved successfully"
	MessageSuccessUpdateQuantity      = "inventory quantity updated successfully"
	MessageSuccessDeleteInventoryItem = "inventory item deleted successfully"

	MessageFailedAddInventoryItem    = "failed to add inventory item"
	MessageFailedConfirmDraft        = "failed to confirm draft item"
	MessageFailedGetInventoryItems   = "failed to retrieve inventory items"
	MessageFailedUpdateQuantity      = "failed to update inventory quantity"
	MessageFailedDeleteInventoryItem = "failed to delete inventory item"

	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrInvalidQuantity       = errors.New("quantity must be positive")
)

type (
	// ConfirmDraftRequest is the full, user-reviewed payload for promoting
	// a draft. It is authoritative: the engine never copies draft fields,
	// so a user correction always wins over a predicted value.
	ConfirmDraftRequest struct {
		Name            string  `json:"name" validate:"required,min=1,max=255"`
		Category        string  `json:"category" validate:"required,min=1"`
		Quantity        float64 `json:"quantity" validate:"required,gt=0"`
		Unit            string  `json:"unit" validate:"required,min=1"`
		StorageLocation string  `json:"storage_location" validate:"required,min=1"`
		ExpiryDate      string  `json:"expiry_date" validate:"required"`
	}

	UpdateQuantityRequest struct {
		Quantity float64 `json:"quantity" validate:"required,gt=0"`
	}

	InventoryItemResponse struct {
		ID              string    `json:"id"`
		UserID          string    `json:"user_id"`
		Name            string    `json:"name"`
		Category        string    `json:"category"`
		Quantity        float64   `json:"quantity"`
		Unit            string    `json:"unit"`
		StorageLocation string    `json:"storage_location"`
		ExpiryDate      time.Time `json:"expiry_date"`
		CreatedAt       time.Time `json:"created_at"`
	}
)
