package domain

import (
	"errors"
)

var (
	MessageSuccessIngestBarcode = "barcode processed successfully"
	MessageSuccessIngestImage   = "image processed successfully"

	MessageFailedIngestBarcode = "failed to process barcode"
	MessageFailedIngestImage   = "failed to process image"

	ErrInvalidImageFormat  = errors.New("invalid image format")
	ErrNoBarcodeDetected   = errors.New("no barcode detected in image")
	ErrNoFoodItemsDetected = errors.New("no food items detected in image")
	ErrVisionFailed        = errors.New("vision detection failed")
)

type (
	BarcodeLookupRequest struct {
		Barcode         string `json:"barcode" validate:"required,min=6"`
		StorageLocation string `json:"storage_location" validate:"omitempty"`
	}

	// BarcodeIngestionResponse is a typed result rather than an error:
	// "barcode scanned but product unknown" is still a success and the
	// client prompts for manual entry.
	BarcodeIngestionResponse struct {
		Success bool               `json:"success"`
		Barcode string             `json:"barcode,omitempty"`
		Draft   *DraftItemResponse `json:"draft,omitempty"`
		Message string             `json:"message,omitempty"`
	}

	ImageIngestionResponse struct {
		Success       bool                `json:"success"`
		DetectedCount int                 `json:"detected_count"`
		Drafts        []DraftItemResponse `json:"drafts,omitempty"`
		Message       string              `json:"message,omitempty"`
	}
)
