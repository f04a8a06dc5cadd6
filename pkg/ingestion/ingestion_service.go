package ingestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"SnapShelf-Backend/domain"
	"SnapShelf-Backend/entities"
	"SnapShelf-Backend/internal/utils/storage"
	"SnapShelf-Backend/pkg/draft"
	"SnapShelf-Backend/pkg/expiry"
)

// visionConfidence is assigned to drafts produced by photo detection. The
// model reports no per-item score, so every detection carries the same
// moderate confidence and the user reviews it before confirmation.
const visionConfidence = 0.6

type (
	IngestionService interface {
		IngestBarcodeImage(ctx context.Context, imageBytes []byte, storageLocation, userID string) (domain.BarcodeIngestionResponse, error)
		IngestBarcode(ctx context.Context, barcode, storageLocation, userID string) (domain.BarcodeIngestionResponse, error)
		IngestImage(ctx context.Context, imageBytes []byte, storageLocation, userID string) (domain.ImageIngestionResponse, error)
	}

	ingestionService struct {
		scanner         BarcodeScanner
		productLookup   ProductLookup
		productCache    ProductCache // nil disables caching
		vision          VisionClient
		expiryService   expiry.ExpiryService
		draftRepository draft.DraftRepository
		s3              storage.AwsS3 // nil disables photo archiving
	}
)

func NewIngestionService(
	scanner BarcodeScanner,
	productLookup ProductLookup,
	productCache ProductCache,
	vision VisionClient,
	expiryService expiry.ExpiryService,
	draftRepository draft.DraftRepository,
	s3 storage.AwsS3,
) IngestionService {
	return &ingestionService{
		scanner:         scanner,
		productLookup:   productLookup,
		productCache:    productCache,
		vision:          vision,
		expiryService:   expiryService,
		draftRepository: draftRepository,
		s3:              s3,
	}
}

func (s *ingestionService) IngestBarcodeImage(ctx context.Context, imageBytes []byte, storageLocation, userID string) (domain.BarcodeIngestionResponse, error) {
	barcode, err := s.scanner.ScanImage(imageBytes)
	if err != nil {
		return domain.BarcodeIngestionResponse{
			Success: false,
			Message: "Failed to read image. Please upload a valid JPEG or PNG file.",
		}, nil
	}
	if barcode == "" {
		return domain.BarcodeIngestionResponse{
			Success: false,
			Message: "No barcode detected in image. Please ensure the barcode is clearly visible.",
		}, nil
	}

	return s.ingestBarcode(ctx, barcode, storageLocation, userID, s.archivePhoto(ctx, imageBytes))
}

// IngestBarcode resolves a barcode to a draft item. A barcode missing
// from the product database is still a success: the user gets a
// placeholder draft to fill in manually.
func (s *ingestionService) IngestBarcode(ctx context.Context, barcode, storageLocation, userID string) (domain.BarcodeIngestionResponse, error) {
	return s.ingestBarcode(ctx, barcode, storageLocation, userID, "")
}

// uploadedImageURL is the archived source photo, when the barcode came in
// as an image. The product database's catalog shot wins when it exists;
// the uploaded photo fills in otherwise.
func (s *ingestionService) ingestBarcode(ctx context.Context, barcode, storageLocation, userID, uploadedImageURL string) (domain.BarcodeIngestionResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.BarcodeIngestionResponse{}, domain.ErrParseUUID
	}

	location := domain.ParseStorageLocation(storageLocation)
	if location == domain.LocationUnknown {
		location = domain.LocationFridge
	}

	product, err := s.lookupWithCache(ctx, barcode)
	if err != nil {
		return domain.BarcodeIngestionResponse{}, err
	}

	item := &entities.DraftItem{
		ID:       uuid.New(),
		UserID:   userUUID,
		Location: string(location),
		Source:   string(domain.SourceBarcode),
	}

	message := ""
	if product == nil {
		item.Name = fmt.Sprintf("Product %s", barcode)
		item.Notes = fmt.Sprintf("[Barcode: %s]", barcode)
		item.ImageURL = uploadedImageURL
		message = fmt.Sprintf("Barcode %s not found in database. Please enter product details manually.", barcode)
	} else {
		prediction := s.expiryService.PredictExpiry(product.Name, product.Category, location)
		expiryDate := prediction.ExpiryDate
		confidence := prediction.Confidence

		item.Name = product.Name
		item.Category = product.Category
		item.ExpirationDate = &expiryDate
		item.ConfidenceScore = &confidence
		item.ImageURL = product.ImageURL
		if item.ImageURL == "" {
			item.ImageURL = uploadedImageURL
		}
		item.Notes = buildBarcodeNotes(barcode, prediction.Reasoning, product)
	}

	if err := s.draftRepository.CreateDraftItem(ctx, item); err != nil {
		return domain.BarcodeIngestionResponse{}, err
	}

	response := toDraftResponse(item)
	return domain.BarcodeIngestionResponse{
		Success: true,
		Barcode: barcode,
		Draft:   &response,
		Message: message,
	}, nil
}

func (s *ingestionService) lookupWithCache(ctx context.Context, barcode string) (*ProductInfo, error) {
	if s.productCache != nil {
		if cached, err := s.productCache.Get(ctx, barcode); err == nil && cached != nil {
			return cached, nil
		}
	}

	product, err := s.productLookup.LookupProduct(ctx, barcode)
	if err != nil {
		return nil, err
	}

	if product != nil && s.productCache != nil {
		_ = s.productCache.Set(ctx, barcode, product)
	}
	return product, nil
}

func buildBarcodeNotes(barcode, reasoning string, product *ProductInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Barcode: %s]", barcode)
	if reasoning != "" {
		fmt.Fprintf(&b, "\n[%s]", reasoning)
	}
	if product.Brand != "" {
		fmt.Fprintf(&b, "\nBrand: %s", product.Brand)
	}
	if product.Quantity != "" {
		fmt.Fprintf(&b, "\nQuantity: %s", product.Quantity)
	}
	return b.String()
}

// IngestImage runs vision detection over a fridge or groceries photo and
// creates one draft per detected item.
func (s *ingestionService) IngestImage(ctx context.Context, imageBytes []byte, storageLocation, userID string) (domain.ImageIngestionResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ImageIngestionResponse{}, domain.ErrParseUUID
	}

	location := domain.ParseStorageLocation(storageLocation)
	if location == domain.LocationUnknown {
		location = domain.LocationFridge
	}

	detected, err := s.vision.DetectFoodItems(ctx, imageBytes)
	if err != nil {
		return domain.ImageIngestionResponse{}, fmt.Errorf("%w: %v", domain.ErrVisionFailed, err)
	}

	if len(detected) == 0 {
		return domain.ImageIngestionResponse{
			Success: false,
			Message: "No food items detected in image. Try a clearer photo of your groceries.",
		}, nil
	}

	imageURL := s.archivePhoto(ctx, imageBytes)

	drafts := make([]domain.DraftItemResponse, 0, len(detected))
	for _, foodItem := range detected {
		category := NormalizeCategory(foodItem.Category)
		if strings.EqualFold(category, "other") {
			category = ""
		}
		prediction := s.expiryService.PredictExpiry(foodItem.Name, category, location)
		expiryDate := prediction.ExpiryDate
		confidence := visionConfidence

		item := &entities.DraftItem{
			ID:              uuid.New(),
			UserID:          userUUID,
			Name:            foodItem.Name,
			Category:        category,
			Location:        string(location),
			ExpirationDate:  &expiryDate,
			Source:          string(domain.SourceImage),
			ConfidenceScore: &confidence,
			Notes:           fmt.Sprintf("[%s]", prediction.Reasoning),
			ImageURL:        imageURL,
		}

		if err := s.draftRepository.CreateDraftItem(ctx, item); err != nil {
			return domain.ImageIngestionResponse{}, err
		}
		drafts = append(drafts, toDraftResponse(item))
	}

	return domain.ImageIngestionResponse{
		Success:       true,
		DetectedCount: len(drafts),
		Drafts:        drafts,
	}, nil
}

// archivePhoto uploads the source photo so confirmed items keep a visual
// reference. Failures degrade to no image, never to a failed ingestion.
func (s *ingestionService) archivePhoto(ctx context.Context, imageBytes []byte) string {
	if s.s3 == nil {
		return ""
	}

	imageType := detectImageType(imageBytes)
	fileName := fmt.Sprintf("scan-%s.%s", uuid.New().String(), imageType)
	objectKey, err := s.s3.UploadBytes(ctx, fileName, imageBytes, "image/"+imageType, "scans")
	if err != nil {
		return ""
	}
	return s.s3.GetPublicLinkKey(objectKey)
}

func toDraftResponse(item *entities.DraftItem) domain.DraftItemResponse {
	return domain.DraftItemResponse{
		ID:              item.ID.String(),
		Name:            item.Name,
		Category:        item.Category,
		Quantity:        item.Quantity,
		Unit:            item.Unit,
		Location:        item.Location,
		ExpirationDate:  item.ExpirationDate,
		Source:          item.Source,
		ConfidenceScore: item.ConfidenceScore,
		Notes:           item.Notes,
		ImageURL:        item.ImageURL,
		CreatedAt:       item.CreatedAt,
	}
}
