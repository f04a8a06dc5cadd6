package handlers

import (
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"SnapShelf-Backend/domain"
	"SnapShelf-Backend/internal/api/presenters"
	"SnapShelf-Backend/pkg/ingestion"
)

type (
	IngestionHandler interface {
		IngestBarcodeImage(c *fiber.Ctx) error
		IngestBarcode(c *fiber.Ctx) error
		IngestImage(c *fiber.Ctx) error
	}

	ingestionHandler struct {
		ingestionService ingestion.IngestionService
		validator        *validator.Validate
	}
)

func NewIngestionHandler(ingestionService ingestion.IngestionService, validator *validator.Validate) IngestionHandler {
	return &ingestionHandler{
		ingestionService: ingestionService,
		validator:        validator,
	}
}

func readUploadedImage(c *fiber.Ctx) ([]byte, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, domain.ErrInvalidImageFormat
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

func (h *ingestionHandler) IngestBarcodeImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	imageBytes, err := readUploadedImage(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedIngestBarcode, err)
	}

	res, err := h.ingestionService.IngestBarcodeImage(c.Context(), imageBytes, c.FormValue("storage_location"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedIngestBarcode, err)
	}

	if !res.Success {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, res.Message, nil)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessIngestBarcode)
}

func (h *ingestionHandler) IngestBarcode(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.BarcodeLookupRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedIngestBarcode, err)
	}

	res, err := h.ingestionService.IngestBarcode(c.Context(), req.Barcode, req.StorageLocation, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedIngestBarcode, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessIngestBarcode)
}

func (h *ingestionHandler) IngestImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	imageBytes, err := readUploadedImage(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedIngestImage, err)
	}

	res, err := h.ingestionService.IngestImage(c.Context(), imageBytes, c.FormValue("storage_location"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedIngestImage, err)
	}

	if !res.Success {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, res.Message, nil)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessIngestImage)
}
