package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"SnapShelf-Backend/domain"
	"SnapShelf-Backend/internal/api/presenters"
	"SnapShelf-Backend/pkg/draft"
	"SnapShelf-Backend/pkg/inventory"
)

type (
	DraftHandler interface {
		CreateDraft(c *fiber.Ctx) error
		GetDrafts(c *fiber.Ctx) error
		GetDraft(c *fiber.Ctx) error
		UpdateDraft(c *fiber.Ctx) error
		DiscardDraft(c *fiber.Ctx) error
		ConfirmDraft(c *fiber.Ctx) error
	}

	draftHandler struct {
		draftService     draft.DraftService
		inventoryService inventory.InventoryService
		validator        *validator.Validate
	}
)

func NewDraftHandler(draftService draft.DraftService, inventoryService inventory.InventoryService, validator *validator.Validate) DraftHandler {
	return &draftHandler{
		draftService:     draftService,
		inventoryService: inventoryService,
		validator:        validator,
	}
}

func (h *draftHandler) CreateDraft(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateDraftItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDraft, err)
	}

	res, err := h.draftService.CreateDraft(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDraft, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateDraft)
}

func (h *draftHandler) GetDrafts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.draftService.GetDrafts(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetDrafts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDrafts)
}

func (h *draftHandler) GetDraft(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	draftID := c.Params("id")

	res, err := h.draftService.GetDraftByID(c.Context(), draftID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrDraftNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetDrafts, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetDrafts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDraft)
}

func (h *draftHandler) UpdateDraft(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	draftID := c.Params("id")
	req := new(domain.UpdateDraftItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDraft, err)
	}

	res, err := h.draftService.UpdateDraft(c.Context(), draftID, *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrDraftNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateDraft, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDraft, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateDraft)
}

func (h *draftHandler) DiscardDraft(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	draftID := c.Params("id")

	if err := h.draftService.DiscardDraft(c.Context(), draftID, userID); err != nil {
		if errors.Is(err, domain.ErrDraftNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDiscardDraft, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDiscardDraft, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ConfirmDraft promotes a reviewed draft into inventory. The request body
// is the authoritative item data; the draft only proves something was
// scanned.
func (h *draftHandler) ConfirmDraft(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	draftID := c.Params("id")
	req := new(domain.ConfirmDraftRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConfirmDraft, err)
	}

	res, err := h.inventoryService.ConfirmDraft(c.Context(), draftID, *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrDraftNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedConfirmDraft, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConfirmDraft, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessConfirmDraft)
}
