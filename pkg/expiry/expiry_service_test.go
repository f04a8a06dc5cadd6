package expiry

import (
	"testing"
	"time"

	"SnapShelf-Backend/domain"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
}

func TestPredictExpiry(t *testing.T) {
	service := &expiryService{now: fixedClock}
	today := fixedClock().Truncate(24 * time.Hour)

	t.Run("known category and location", func(t *testing.T) {
		prediction := service.PredictExpiry("whole milk", "dairy", domain.LocationFridge)

		if got, want := prediction.ExpiryDate, today.AddDate(0, 0, 7); !got.Equal(want) {
			t.Errorf("expiry date = %v, want %v", got, want)
		}
		if prediction.Confidence != 0.8 {
			t.Errorf("confidence = %v, want 0.8", prediction.Confidence)
		}
		if prediction.Reasoning == "" {
			t.Error("expected non-empty reasoning")
		}
	})

	t.Run("category casing and whitespace ignored", func(t *testing.T) {
		prediction := service.PredictExpiry("cheddar", "  Dairy ", domain.LocationFridge)

		if got, want := prediction.ExpiryDate, today.AddDate(0, 0, 7); !got.Equal(want) {
			t.Errorf("expiry date = %v, want %v", got, want)
		}
	})

	t.Run("freezer extends shelf life", func(t *testing.T) {
		fridge := service.PredictExpiry("chicken breast", "meat", domain.LocationFridge)
		freezer := service.PredictExpiry("chicken breast", "meat", domain.LocationFreezer)

		if !freezer.ExpiryDate.After(fridge.ExpiryDate) {
			t.Errorf("freezer expiry %v should be after fridge expiry %v", freezer.ExpiryDate, fridge.ExpiryDate)
		}
	})

	t.Run("known category with unknown location falls back to fridge window", func(t *testing.T) {
		prediction := service.PredictExpiry("yogurt", "dairy", domain.LocationUnknown)

		if got, want := prediction.ExpiryDate, today.AddDate(0, 0, 7); !got.Equal(want) {
			t.Errorf("expiry date = %v, want %v", got, want)
		}
		if prediction.Confidence != 0.5 {
			t.Errorf("confidence = %v, want 0.5", prediction.Confidence)
		}
	})

	t.Run("unknown category uses conservative default", func(t *testing.T) {
		prediction := service.PredictExpiry("mystery leftovers", "casserole", domain.LocationFridge)

		if got, want := prediction.ExpiryDate, today.AddDate(0, 0, 4); !got.Equal(want) {
			t.Errorf("expiry date = %v, want %v", got, want)
		}
		if prediction.Confidence != 0.3 {
			t.Errorf("confidence = %v, want 0.3", prediction.Confidence)
		}
	})

	t.Run("unknown category in pantry", func(t *testing.T) {
		prediction := service.PredictExpiry("crackers?", "mystery", domain.LocationPantry)

		if got, want := prediction.ExpiryDate, today.AddDate(0, 0, 14); !got.Equal(want) {
			t.Errorf("expiry date = %v, want %v", got, want)
		}
	})
}
