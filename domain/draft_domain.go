package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateDraft  = "draft item created successfully"
	MessageSuccessGetDrafts    = "draft items retrieved successfully"
	MessageSuccessGetDraft     = "draft item retrieved successfully"
	MessageSuccessUpdateDraft  = "draft item updated successfully"
	MessageSuccessDiscardDraft = "draft item discarded"

	MessageFailedCreateDraft  = "failed to create draft item"
	MessageFailedGetDrafts    = "failed to retrieve draft items"
	MessageFailedUpdateDraft  = "failed to update draft item"
	MessageFailedDiscardDraft = "failed to discard draft item"

	ErrDraftNotFound     = errors.New("draft item not found")
	ErrInvalidSource     = errors.New("invalid draft source")
	ErrInvalidExpiryDate = errors.New("invalid expiry date")
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrInvalidConfidence = errors.New("confidence score must be between 0 and 1")
)

// DraftSource records where a candidate item came from. Unrecognized input
// is rejected at construction rather than discovered at read time.
type DraftSource string

const (
	SourceManual  DraftSource = "manual"
	SourceAI      DraftSource = "ai"
	SourceBarcode DraftSource = "barcode"
	SourceImage   DraftSource = "image"
	SourceUnknown DraftSource = "unknown"
)

func ParseDraftSource(s string) DraftSource {
	switch DraftSource(s) {
	case SourceManual, SourceAI, SourceBarcode, SourceImage:
		return DraftSource(s)
	default:
		return SourceUnknown
	}
}

type (
	CreateDraftItemRequest struct {
		Name            string   `json:"name" validate:"required"`
		Category        string   `json:"category" validate:"omitempty"`
		Quantity        *float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit            string   `json:"unit" validate:"omitempty"`
		Location        string   `json:"location" validate:"omitempty"`
		ExpirationDate  string   `json:"expiration_date" validate:"omitempty"`
		Source          string   `json:"source" validate:"required"`
		ConfidenceScore *float64 `json:"confidence_score" validate:"omitempty,gte=0,lte=1"`
		Notes           string   `json:"notes" validate:"omitempty"`
	}

	// UpdateDraftItemRequest applies patch semantics. Optional fields keep
	// absent and explicit-null distinguishable: an absent field leaves the
	// draft untouched, a null clears it. Value constraints are checked in
	// the service since they only apply to present, non-null fields.
	UpdateDraftItemRequest struct {
		Name            Optional[string]  `json:"name"`
		Category        Optional[string]  `json:"category"`
		Quantity        Optional[float64] `json:"quantity"`
		Unit            Optional[string]  `json:"unit"`
		Location        Optional[string]  `json:"location"`
		ExpirationDate  Optional[string]  `json:"expiration_date"`
		ConfidenceScore Optional[float64] `json:"confidence_score"`
		Notes           Optional[string]  `json:"notes"`
	}

	DraftItemResponse struct {
		ID              string     `json:"id"`
		Name            string     `json:"name"`
		Category        string     `json:"category,omitempty"`
		Quantity        *float64   `json:"quantity,omitempty"`
		Unit            string     `json:"unit,omitempty"`
		Location        string     `json:"location,omitempty"`
		ExpirationDate  *time.Time `json:"expiration_date,omitempty"`
		Source          string     `json:"source"`
		ConfidenceScore *float64   `json:"confidence_score,omitempty"`
		Notes           string     `json:"notes,omitempty"`
		ImageURL        string     `json:"image_url,omitempty"`
		CreatedAt       time.Time  `json:"created_at"`
	}
)
