package inventory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"SnapShelf-Backend/domain"
	"SnapShelf-Backend/entities"
	"SnapShelf-Backend/pkg/draft"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&entities.User{}, &entities.DraftItem{}, &entities.InventoryItem{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func floatPtr(f float64) *float64 { return &f }

func confirmPayload() domain.ConfirmDraftRequest {
	return domain.ConfirmDraftRequest{
		Name:            "Whole Milk",
		Category:        "dairy",
		Quantity:        1,
		Unit:            "L",
		StorageLocation: "fridge",
		ExpiryDate:      "2026-03-17",
	}
}

func TestConfirmDraft(t *testing.T) {
	db := testDB(t)
	draftService := draft.NewDraftService(draft.NewDraftRepository(db))
	service := NewInventoryService(NewInventoryRepository(db))
	userID := uuid.New().String()
	ctx := context.Background()

	newDraft := func(t *testing.T) string {
		t.Helper()
		created, err := draftService.CreateDraft(ctx, domain.CreateDraftItemRequest{
			Name:     "milk?",
			Source:   "barcode",
			Quantity: floatPtr(1),
		}, userID)
		if err != nil {
			t.Fatalf("CreateDraft: %v", err)
		}
		return created.ID
	}

	t.Run("confirmation consumes draft and creates item from payload", func(t *testing.T) {
		draftID := newDraft(t)

		item, err := service.ConfirmDraft(ctx, draftID, confirmPayload(), userID)
		if err != nil {
			t.Fatalf("ConfirmDraft: %v", err)
		}

		// The payload, not the draft, is authoritative.
		if item.Name != "Whole Milk" || item.Category != "dairy" {
			t.Errorf("unexpected item: %+v", item)
		}

		if _, err := draftService.GetDraftByID(ctx, draftID, userID); !errors.Is(err, domain.ErrDraftNotFound) {
			t.Errorf("draft still readable after confirmation, err = %v", err)
		}

		items, err := service.GetInventoryItems(ctx, userID)
		if err != nil {
			t.Fatalf("GetInventoryItems: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("got %d items, want 1", len(items))
		}
	})

	t.Run("second confirmation of same draft reports not found", func(t *testing.T) {
		draftID := newDraft(t)

		if _, err := service.ConfirmDraft(ctx, draftID, confirmPayload(), userID); err != nil {
			t.Fatalf("first ConfirmDraft: %v", err)
		}
		if _, err := service.ConfirmDraft(ctx, draftID, confirmPayload(), userID); !errors.Is(err, domain.ErrDraftNotFound) {
			t.Errorf("err = %v, want ErrDraftNotFound", err)
		}
	})

	t.Run("foreign draft cannot be confirmed", func(t *testing.T) {
		draftID := newDraft(t)
		stranger := uuid.New().String()

		if _, err := service.ConfirmDraft(ctx, draftID, confirmPayload(), stranger); !errors.Is(err, domain.ErrDraftNotFound) {
			t.Errorf("err = %v, want ErrDraftNotFound", err)
		}
	})

	t.Run("invalid payload leaves draft intact", func(t *testing.T) {
		draftID := newDraft(t)

		req := confirmPayload()
		req.ExpiryDate = "soon"
		if _, err := service.ConfirmDraft(ctx, draftID, req, userID); !errors.Is(err, domain.ErrInvalidExpiryDate) {
			t.Fatalf("err = %v, want ErrInvalidExpiryDate", err)
		}

		req = confirmPayload()
		req.Quantity = 0
		if _, err := service.ConfirmDraft(ctx, draftID, req, userID); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("err = %v, want ErrInvalidQuantity", err)
		}

		if _, err := draftService.GetDraftByID(ctx, draftID, userID); err != nil {
			t.Errorf("draft should survive failed confirmation, err = %v", err)
		}
	})
}

func TestInventoryItems(t *testing.T) {
	db := testDB(t)
	service := NewInventoryService(NewInventoryRepository(db))
	userID := uuid.New().String()
	ctx := context.Background()

	addItem := func(t *testing.T, name, expiry string) domain.InventoryItemResponse {
		t.Helper()
		req := confirmPayload()
		req.Name = name
		req.ExpiryDate = expiry
		item, err := service.AddInventoryItem(ctx, req, userID)
		if err != nil {
			t.Fatalf("AddInventoryItem(%s): %v", name, err)
		}
		return item
	}

	t.Run("listing orders by soonest expiry", func(t *testing.T) {
		addItem(t, "Canned Beans", "2026-09-01")
		addItem(t, "Milk", "2026-03-12")
		addItem(t, "Yogurt", "2026-03-20")

		items, err := service.GetInventoryItems(ctx, userID)
		if err != nil {
			t.Fatalf("GetInventoryItems: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("got %d items, want 3", len(items))
		}
		for i := 1; i < len(items); i++ {
			if items[i].ExpiryDate.Before(items[i-1].ExpiryDate) {
				t.Errorf("items not ordered by expiry: %v before %v", items[i-1].ExpiryDate, items[i].ExpiryDate)
			}
		}
	})

	t.Run("only quantity is mutable", func(t *testing.T) {
		item := addItem(t, "Eggs", "2026-03-25")

		updated, err := service.UpdateQuantity(ctx, item.ID, domain.UpdateQuantityRequest{Quantity: 6}, userID)
		if err != nil {
			t.Fatalf("UpdateQuantity: %v", err)
		}
		if updated.Quantity != 6 {
			t.Errorf("quantity = %v, want 6", updated.Quantity)
		}
		if updated.Name != "Eggs" || !updated.ExpiryDate.Equal(item.ExpiryDate) {
			t.Errorf("immutable fields changed: %+v", updated)
		}
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		item := addItem(t, "Butter", "2026-04-01")

		if _, err := service.UpdateQuantity(ctx, item.ID, domain.UpdateQuantityRequest{Quantity: 0}, userID); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Errorf("err = %v, want ErrInvalidQuantity", err)
		}
	})

	t.Run("foreign item is not found", func(t *testing.T) {
		item := addItem(t, "Juice", "2026-04-05")
		stranger := uuid.New().String()

		if _, err := service.GetInventoryItemByID(ctx, item.ID, stranger); !errors.Is(err, domain.ErrInventoryItemNotFound) {
			t.Errorf("get err = %v, want ErrInventoryItemNotFound", err)
		}
		if err := service.DeleteInventoryItem(ctx, item.ID, stranger); !errors.Is(err, domain.ErrInventoryItemNotFound) {
			t.Errorf("delete err = %v, want ErrInventoryItemNotFound", err)
		}
	})

	t.Run("delete removes item", func(t *testing.T) {
		item := addItem(t, "Spinach", "2026-03-14")

		if err := service.DeleteInventoryItem(ctx, item.ID, userID); err != nil {
			t.Fatalf("DeleteInventoryItem: %v", err)
		}
		if _, err := service.GetInventoryItemByID(ctx, item.ID, userID); !errors.Is(err, domain.ErrInventoryItemNotFound) {
			t.Errorf("err = %v, want ErrInventoryItemNotFound", err)
		}
	})
}

// TestScanToInventoryFlow walks the full path a scanned product takes:
// draft from ingestion, user review with a correction, confirmation into
// inventory.
func TestScanToInventoryFlow(t *testing.T) {
	db := testDB(t)
	draftService := draft.NewDraftService(draft.NewDraftRepository(db))
	service := NewInventoryService(NewInventoryRepository(db))
	userID := uuid.New().String()
	ctx := context.Background()

	created, err := draftService.CreateDraft(ctx, domain.CreateDraftItemRequest{
		Name:            "Milk",
		Category:        "dairy",
		Location:        "fridge",
		ExpirationDate:  "2026-03-15",
		Source:          "barcode",
		ConfidenceScore: floatPtr(0.8),
	}, userID)
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}

	// User corrects the predicted expiry before confirming.
	item, err := service.ConfirmDraft(ctx, created.ID, domain.ConfirmDraftRequest{
		Name:            "Whole Milk",
		Category:        "dairy",
		Quantity:        1,
		Unit:            "L",
		StorageLocation: "fridge",
		ExpiryDate:      "2026-03-18",
	}, userID)
	if err != nil {
		t.Fatalf("ConfirmDraft: %v", err)
	}

	if item.Name != "Whole Milk" {
		t.Errorf("name = %q, want user-corrected %q", item.Name, "Whole Milk")
	}
	if item.ExpiryDate.Format("2006-01-02") != "2026-03-18" {
		t.Errorf("expiry = %v, want user-corrected 2026-03-18", item.ExpiryDate)
	}

	drafts, err := draftService.GetDrafts(ctx, userID)
	if err != nil {
		t.Fatalf("GetDrafts: %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("got %d drafts after confirmation, want 0", len(drafts))
	}
}
