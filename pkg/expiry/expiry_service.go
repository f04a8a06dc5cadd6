package expiry

import (
	"fmt"
	"strings"
	"time"

	"SnapShelf-Backend/domain"
)

type (
	// Prediction is the contract consumed by the ingestion paths: a
	// predicted expiry date with a confidence signal and human-readable
	// reasoning that ends up in the draft's provenance notes.
	Prediction struct {
		ExpiryDate time.Time `json:"expiry_date"`
		Confidence float64   `json:"confidence"`
		Reasoning  string    `json:"reasoning"`
	}

	ExpiryService interface {
		PredictExpiry(name, category string, location domain.StorageLocation) Prediction
	}

	expiryService struct {
		now func() time.Time
	}
)

// shelfLifeDays maps a normalized category to characteristic shelf-life
// windows per storage location.
var shelfLifeDays = map[string]map[domain.StorageLocation]int{
	"dairy":      {domain.LocationFridge: 7, domain.LocationFreezer: 60, domain.LocationPantry: 2},
	"meat":       {domain.LocationFridge: 3, domain.LocationFreezer: 90, domain.LocationPantry: 1},
	"poultry":    {domain.LocationFridge: 2, domain.LocationFreezer: 90, domain.LocationPantry: 1},
	"fish":       {domain.LocationFridge: 2, domain.LocationFreezer: 60, domain.LocationPantry: 1},
	"eggs":       {domain.LocationFridge: 21, domain.LocationFreezer: 30, domain.LocationPantry: 7},
	"vegetables": {domain.LocationFridge: 7, domain.LocationFreezer: 120, domain.LocationPantry: 5},
	"fruits":     {domain.LocationFridge: 7, domain.LocationFreezer: 180, domain.LocationPantry: 5},
	"bakery":     {domain.LocationFridge: 7, domain.LocationFreezer: 30, domain.LocationPantry: 4},
	"grains":     {domain.LocationFridge: 120, domain.LocationFreezer: 180, domain.LocationPantry: 120},
	"frozen":     {domain.LocationFridge: 2, domain.LocationFreezer: 90, domain.LocationPantry: 1},
	"canned":     {domain.LocationFridge: 365, domain.LocationFreezer: 365, domain.LocationPantry: 365},
	"condiments": {domain.LocationFridge: 90, domain.LocationFreezer: 90, domain.LocationPantry: 180},
	"beverages":  {domain.LocationFridge: 10, domain.LocationFreezer: 60, domain.LocationPantry: 180},
	"snacks":     {domain.LocationFridge: 60, domain.LocationFreezer: 60, domain.LocationPantry: 60},
}

// defaultShelfLifeDays is the conservative fallback for unknown categories.
var defaultShelfLifeDays = map[domain.StorageLocation]int{
	domain.LocationFridge:  4,
	domain.LocationFreezer: 30,
	domain.LocationPantry:  14,
	domain.LocationUnknown: 4,
}

func NewExpiryService() ExpiryService {
	return &expiryService{now: time.Now}
}

func (s *expiryService) PredictExpiry(name, category string, location domain.StorageLocation) Prediction {
	normalized := strings.ToLower(strings.TrimSpace(category))
	today := s.now().Truncate(24 * time.Hour)

	if windows, ok := shelfLifeDays[normalized]; ok {
		if days, ok := windows[location]; ok {
			return Prediction{
				ExpiryDate: today.AddDate(0, 0, days),
				Confidence: 0.8,
				Reasoning: fmt.Sprintf(
					"Based on category '%s' stored in '%s': typical shelf life is %d days",
					normalized, location, days,
				),
			}
		}

		// Known category, unrecognized location. Use the fridge window as
		// the middle ground.
		days := windows[domain.LocationFridge]
		return Prediction{
			ExpiryDate: today.AddDate(0, 0, days),
			Confidence: 0.5,
			Reasoning: fmt.Sprintf(
				"Based on category '%s' with unknown storage: assuming refrigerated shelf life of %d days",
				normalized, days,
			),
		}
	}

	days := defaultShelfLifeDays[location]
	if days == 0 {
		days = defaultShelfLifeDays[domain.LocationUnknown]
	}
	return Prediction{
		ExpiryDate: today.AddDate(0, 0, days),
		Confidence: 0.3,
		Reasoning: fmt.Sprintf(
			"Unknown category for '%s'; using conservative %d-day window for '%s' storage",
			name, days, location,
		),
	}
}
