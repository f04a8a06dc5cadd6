package ingestion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"SnapShelf-Backend/domain"
	"SnapShelf-Backend/entities"
	"SnapShelf-Backend/pkg/draft"
	"SnapShelf-Backend/pkg/expiry"
)

type stubScanner struct {
	barcode string
	err     error
}

func (s *stubScanner) ScanImage([]byte) (string, error) {
	return s.barcode, s.err
}

type stubLookup struct {
	product *ProductInfo
	calls   int
}

func (s *stubLookup) LookupProduct(context.Context, string) (*ProductInfo, error) {
	s.calls++
	return s.product, nil
}

type stubVision struct {
	items []DetectedFoodItem
	err   error
}

func (s *stubVision) DetectFoodItems(context.Context, []byte) ([]DetectedFoodItem, error) {
	return s.items, s.err
}

type memoryCache struct {
	entries map[string]*ProductInfo
}

func (m *memoryCache) Get(_ context.Context, barcode string) (*ProductInfo, error) {
	return m.entries[barcode], nil
}

func (m *memoryCache) Set(_ context.Context, barcode string, product *ProductInfo) error {
	m.entries[barcode] = product
	return nil
}

type stubS3 struct {
	uploads int
}

func (s *stubS3) UploadBytes(_ context.Context, fileName string, _ []byte, _, dir string) (string, error) {
	s.uploads++
	return dir + "/" + fileName, nil
}

func (s *stubS3) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.example.com/" + objectKey
}

func testDraftRepo(t *testing.T) draft.DraftRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}, &entities.DraftItem{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return draft.NewDraftRepository(db)
}

func newTestService(t *testing.T, scanner BarcodeScanner, lookup ProductLookup, cache ProductCache, vision VisionClient) IngestionService {
	t.Helper()
	return NewIngestionService(
		scanner,
		lookup,
		cache,
		vision,
		expiry.NewExpiryService(),
		testDraftRepo(t),
		nil,
	)
}

func TestDetectImageType(t *testing.T) {
	cases := []struct {
		name  string
		bytes []byte
		want  string
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, "jpeg"},
		{"png", []byte("\x89PNG\r\n\x1a\nrest"), "png"},
		{"gif87a", []byte("GIF87a...."), "gif"},
		{"gif89a", []byte("GIF89a...."), "gif"},
		{"webp", []byte("RIFF....WEBPVP8 "), "webp"},
		{"unknown defaults to jpeg", []byte("plain text"), "jpeg"},
		{"too short defaults to jpeg", []byte{0xff}, "jpeg"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := detectImageType(tc.bytes); got != tc.want {
				t.Errorf("detectImageType = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"semi skimmed milks", "dairy"},
		{"Chicken breasts", "meat"},
		{"smoked salmon fillets", "fish"},
		{"fresh fruit salads", "fruits"},
		{"root vegetables", "vegetables"},
		{"sourdough breads", "bakery"},
		{"free range eggs", "eggs"},
		{"frozen pizzas", "frozen"},
		{"canned tomatoes", "canned"},
		{"tomato ketchup", "condiments"},
		{"obscure delicacy", "obscure delicacy"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			if got := NormalizeCategory(tc.input); got != tc.want {
				t.Errorf("NormalizeCategory(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestIngestBarcode(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("known product becomes a populated draft", func(t *testing.T) {
		service := newTestService(t, &stubScanner{}, &stubLookup{product: &ProductInfo{
			Barcode:  "5411188112709",
			Name:     "Whole Milk",
			Brand:    "Alpro",
			Category: "dairy",
			Quantity: "1L",
		}}, nil, &stubVision{})

		res, err := service.IngestBarcode(ctx, "5411188112709", "fridge", userID)
		if err != nil {
			t.Fatalf("IngestBarcode: %v", err)
		}
		if !res.Success {
			t.Fatalf("expected success, got %+v", res)
		}
		if res.Draft == nil {
			t.Fatal("expected a draft")
		}
		if res.Draft.Name != "Whole Milk" || res.Draft.Category != "dairy" {
			t.Errorf("unexpected draft: %+v", res.Draft)
		}
		if res.Draft.Source != "barcode" {
			t.Errorf("source = %q, want barcode", res.Draft.Source)
		}
		if res.Draft.ExpirationDate == nil {
			t.Error("expected a predicted expiry date")
		}
		if !strings.Contains(res.Draft.Notes, "[Barcode: 5411188112709]") {
			t.Errorf("notes missing barcode provenance: %q", res.Draft.Notes)
		}
		if !strings.Contains(res.Draft.Notes, "Brand: Alpro") || !strings.Contains(res.Draft.Notes, "Quantity: 1L") {
			t.Errorf("notes missing product details: %q", res.Draft.Notes)
		}
	})

	t.Run("unknown barcode is a partial success with placeholder", func(t *testing.T) {
		service := newTestService(t, &stubScanner{}, &stubLookup{}, nil, &stubVision{})

		res, err := service.IngestBarcode(ctx, "000111222333", "pantry", userID)
		if err != nil {
			t.Fatalf("IngestBarcode: %v", err)
		}
		if !res.Success {
			t.Fatal("unknown product should still succeed")
		}
		if res.Draft == nil || res.Draft.Name != "Product 000111222333" {
			t.Errorf("unexpected draft: %+v", res.Draft)
		}
		if res.Message == "" {
			t.Error("expected a manual-entry hint message")
		}
	})

	t.Run("cache hit skips the upstream lookup", func(t *testing.T) {
		lookup := &stubLookup{}
		cache := &memoryCache{entries: map[string]*ProductInfo{
			"737628064502": {Barcode: "737628064502", Name: "Rice Noodles", Category: "grains"},
		}}
		service := newTestService(t, &stubScanner{}, lookup, cache, &stubVision{})

		res, err := service.IngestBarcode(ctx, "737628064502", "pantry", userID)
		if err != nil {
			t.Fatalf("IngestBarcode: %v", err)
		}
		if res.Draft == nil || res.Draft.Name != "Rice Noodles" {
			t.Errorf("unexpected draft: %+v", res.Draft)
		}
		if lookup.calls != 0 {
			t.Errorf("upstream lookup called %d times, want 0", lookup.calls)
		}
	})

	t.Run("lookup miss populates the cache", func(t *testing.T) {
		cache := &memoryCache{entries: map[string]*ProductInfo{}}
		service := newTestService(t, &stubScanner{}, &stubLookup{product: &ProductInfo{
			Barcode: "40111445", Name: "Chocolate Bar", Category: "snacks",
		}}, cache, &stubVision{})

		if _, err := service.IngestBarcode(ctx, "40111445", "pantry", userID); err != nil {
			t.Fatalf("IngestBarcode: %v", err)
		}
		if cache.entries["40111445"] == nil {
			t.Error("expected product cached after lookup")
		}
	})
}

func TestIngestBarcodeImage(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("no barcode in image is a recoverable failure", func(t *testing.T) {
		service := newTestService(t, &stubScanner{}, &stubLookup{}, nil, &stubVision{})

		res, err := service.IngestBarcodeImage(ctx, []byte{0xff, 0xd8, 0xff}, "fridge", userID)
		if err != nil {
			t.Fatalf("IngestBarcodeImage: %v", err)
		}
		if res.Success {
			t.Error("expected failure when no barcode detected")
		}
		if res.Message == "" {
			t.Error("expected a user-facing message")
		}
	})

	t.Run("undecodable image is a recoverable failure", func(t *testing.T) {
		service := newTestService(t, &stubScanner{err: errors.New("bad image")}, &stubLookup{}, nil, &stubVision{})

		res, err := service.IngestBarcodeImage(ctx, []byte("not an image"), "fridge", userID)
		if err != nil {
			t.Fatalf("IngestBarcodeImage: %v", err)
		}
		if res.Success {
			t.Error("expected failure for undecodable image")
		}
	})

	t.Run("detected barcode flows into lookup", func(t *testing.T) {
		service := newTestService(t, &stubScanner{barcode: "5411188112709"}, &stubLookup{product: &ProductInfo{
			Barcode: "5411188112709", Name: "Oat Drink", Category: "dairy",
		}}, nil, &stubVision{})

		res, err := service.IngestBarcodeImage(ctx, []byte{0xff, 0xd8, 0xff}, "fridge", userID)
		if err != nil {
			t.Fatalf("IngestBarcodeImage: %v", err)
		}
		if !res.Success || res.Barcode != "5411188112709" {
			t.Errorf("unexpected result: %+v", res)
		}
	})

	t.Run("uploaded photo is archived onto the draft", func(t *testing.T) {
		s3 := &stubS3{}
		service := NewIngestionService(
			&stubScanner{barcode: "000111222333"},
			&stubLookup{},
			nil,
			&stubVision{},
			expiry.NewExpiryService(),
			testDraftRepo(t),
			s3,
		)

		res, err := service.IngestBarcodeImage(ctx, []byte{0xff, 0xd8, 0xff}, "fridge", userID)
		if err != nil {
			t.Fatalf("IngestBarcodeImage: %v", err)
		}
		if s3.uploads != 1 {
			t.Errorf("uploads = %d, want 1", s3.uploads)
		}
		if res.Draft == nil || !strings.HasPrefix(res.Draft.ImageURL, "https://cdn.example.com/scans/") {
			t.Errorf("draft image url = %+v, want archived photo link", res.Draft)
		}
	})

	t.Run("catalog image wins over the uploaded photo", func(t *testing.T) {
		service := NewIngestionService(
			&stubScanner{barcode: "5411188112709"},
			&stubLookup{product: &ProductInfo{
				Barcode:  "5411188112709",
				Name:     "Oat Drink",
				Category: "dairy",
				ImageURL: "https://images.openfoodfacts.org/oat-drink.jpg",
			}},
			nil,
			&stubVision{},
			expiry.NewExpiryService(),
			testDraftRepo(t),
			&stubS3{},
		)

		res, err := service.IngestBarcodeImage(ctx, []byte{0xff, 0xd8, 0xff}, "fridge", userID)
		if err != nil {
			t.Fatalf("IngestBarcodeImage: %v", err)
		}
		if res.Draft == nil || res.Draft.ImageURL != "https://images.openfoodfacts.org/oat-drink.jpg" {
			t.Errorf("draft image url = %+v, want catalog image", res.Draft)
		}
	})
}

func TestIngestImage(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("creates one draft per detected item", func(t *testing.T) {
		service := newTestService(t, &stubScanner{}, &stubLookup{}, nil, &stubVision{items: []DetectedFoodItem{
			{Name: "whole milk", Category: "Dairy"},
			{Name: "romaine lettuce", Category: "Vegetables"},
		}})

		res, err := service.IngestImage(ctx, []byte{0xff, 0xd8, 0xff}, "fridge", userID)
		if err != nil {
			t.Fatalf("IngestImage: %v", err)
		}
		if !res.Success || res.DetectedCount != 2 || len(res.Drafts) != 2 {
			t.Fatalf("unexpected result: %+v", res)
		}

		milk := res.Drafts[0]
		if milk.Category != "dairy" {
			t.Errorf("category = %q, want normalized %q", milk.Category, "dairy")
		}
		if milk.Source != "image" {
			t.Errorf("source = %q, want image", milk.Source)
		}
		if milk.ConfidenceScore == nil || *milk.ConfidenceScore != 0.6 {
			t.Errorf("confidence = %v, want 0.6", milk.ConfidenceScore)
		}
		if milk.ExpirationDate == nil {
			t.Error("expected a predicted expiry date")
		}
	})

	t.Run("no detected food is a recoverable failure", func(t *testing.T) {
		service := newTestService(t, &stubScanner{}, &stubLookup{}, nil, &stubVision{})

		res, err := service.IngestImage(ctx, []byte{0xff, 0xd8, 0xff}, "fridge", userID)
		if err != nil {
			t.Fatalf("IngestImage: %v", err)
		}
		if res.Success || res.DetectedCount != 0 {
			t.Errorf("unexpected result: %+v", res)
		}
	})

	t.Run("vision failure surfaces as an error", func(t *testing.T) {
		service := newTestService(t, &stubScanner{}, &stubLookup{}, nil, &stubVision{err: errors.New("model unavailable")})

		_, err := service.IngestImage(ctx, []byte{0xff, 0xd8, 0xff}, "fridge", userID)
		if !errors.Is(err, domain.ErrVisionFailed) {
			t.Fatalf("err = %v, want ErrVisionFailed", err)
		}
	})
}
