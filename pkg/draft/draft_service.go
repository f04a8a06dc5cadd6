package draft

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"SnapShelf-Backend/domain"
	"SnapShelf-Backend/entities"
)

type (
	DraftService interface {
		CreateDraft(ctx context.Context, req domain.CreateDraftItemRequest, userID string) (domain.DraftItemResponse, error)
		GetDrafts(ctx context.Context, userID string) ([]domain.DraftItemResponse, error)
		GetDraftByID(ctx context.Context, id, userID string) (domain.DraftItemResponse, error)
		UpdateDraft(ctx context.Context, id string, req domain.UpdateDraftItemRequest, userID string) (domain.DraftItemResponse, error)
		DiscardDraft(ctx context.Context, id, userID string) error
	}

	draftService struct {
		draftRepository DraftRepository
	}
)

func NewDraftService(draftRepository DraftRepository) DraftService {
	return &draftService{draftRepository: draftRepository}
}

func (s *draftService) CreateDraft(ctx context.Context, req domain.CreateDraftItemRequest, userID string) (domain.DraftItemResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.DraftItemResponse{}, domain.ErrParseUUID
	}

	source := domain.ParseDraftSource(req.Source)
	if source == domain.SourceUnknown {
		return domain.DraftItemResponse{}, domain.ErrInvalidSource
	}

	var expirationDate *time.Time
	if req.ExpirationDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ExpirationDate)
		if err != nil {
			return domain.DraftItemResponse{}, domain.ErrInvalidExpiryDate
		}
		expirationDate = &parsed
	}

	draft := &entities.DraftItem{
		ID:              uuid.New(),
		UserID:          userUUID,
		Name:            req.Name,
		Category:        req.Category,
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		Location:        req.Location,
		ExpirationDate:  expirationDate,
		Source:          string(source),
		ConfidenceScore: req.ConfidenceScore,
		Notes:           req.Notes,
	}

	if err := s.draftRepository.CreateDraftItem(ctx, draft); err != nil {
		return domain.DraftItemResponse{}, err
	}

	return toDraftResponse(draft), nil
}

func (s *draftService) GetDrafts(ctx context.Context, userID string) ([]domain.DraftItemResponse, error) {
	drafts, err := s.draftRepository.GetDraftItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.DraftItemResponse, 0, len(drafts))
	for _, draft := range drafts {
		response = append(response, toDraftResponse(draft))
	}
	return response, nil
}

func (s *draftService) GetDraftByID(ctx context.Context, id, userID string) (domain.DraftItemResponse, error) {
	draft, err := s.draftRepository.GetDraftItemByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DraftItemResponse{}, domain.ErrDraftNotFound
		}
		return domain.DraftItemResponse{}, err
	}
	return toDraftResponse(draft), nil
}

// UpdateDraft applies patch semantics: absent fields stay untouched, an
// explicit null clears the field, a value replaces it. Name is required
// and cannot be cleared.
func (s *draftService) UpdateDraft(ctx context.Context, id string, req domain.UpdateDraftItemRequest, userID string) (domain.DraftItemResponse, error) {
	draft, err := s.draftRepository.GetDraftItemByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DraftItemResponse{}, domain.ErrDraftNotFound
		}
		return domain.DraftItemResponse{}, err
	}

	if req.Name.Set {
		if !req.Name.Valid || req.Name.Value == "" {
			return domain.DraftItemResponse{}, domain.ErrEmptyName
		}
		draft.Name = req.Name.Value
	}
	if req.Category.Set {
		draft.Category = ""
		if req.Category.Valid {
			draft.Category = req.Category.Value
		}
	}
	if req.Quantity.Set {
		draft.Quantity = nil
		if req.Quantity.Valid {
			if req.Quantity.Value <= 0 {
				return domain.DraftItemResponse{}, domain.ErrInvalidQuantity
			}
			quantity := req.Quantity.Value
			draft.Quantity = &quantity
		}
	}
	if req.Unit.Set {
		draft.Unit = ""
		if req.Unit.Valid {
			draft.Unit = req.Unit.Value
		}
	}
	if req.Location.Set {
		draft.Location = ""
		if req.Location.Valid {
			draft.Location = req.Location.Value
		}
	}
	if req.ExpirationDate.Set {
		draft.ExpirationDate = nil
		if req.ExpirationDate.Valid {
			parsed, err := time.Parse("2006-01-02", req.ExpirationDate.Value)
			if err != nil {
				return domain.DraftItemResponse{}, domain.ErrInvalidExpiryDate
			}
			draft.ExpirationDate = &parsed
		}
	}
	if req.ConfidenceScore.Set {
		draft.ConfidenceScore = nil
		if req.ConfidenceScore.Valid {
			if req.ConfidenceScore.Value < 0 || req.ConfidenceScore.Value > 1 {
				return domain.DraftItemResponse{}, domain.ErrInvalidConfidence
			}
			score := req.ConfidenceScore.Value
			draft.ConfidenceScore = &score
		}
	}
	if req.Notes.Set {
		draft.Notes = ""
		if req.Notes.Valid {
			draft.Notes = req.Notes.Value
		}
	}

	if err := s.draftRepository.UpdateDraftItem(ctx, draft); err != nil {
		return domain.DraftItemResponse{}, err
	}

	return toDraftResponse(draft), nil
}

func (s *draftService) DiscardDraft(ctx context.Context, id, userID string) error {
	if err := s.draftRepository.DeleteDraftItem(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDraftNotFound
		}
		return err
	}
	return nil
}

func toDraftResponse(draft *entities.DraftItem) domain.DraftItemResponse {
	return domain.DraftItemResponse{
		ID:              draft.ID.String(),
		Name:            draft.Name,
		Category:        draft.Category,
		Quantity:        draft.Quantity,
		Unit:            draft.Unit,
		Location:        draft.Location,
		ExpirationDate:  draft.ExpirationDate,
		Source:          draft.Source,
		ConfidenceScore: draft.ConfidenceScore,
		Notes:           draft.Notes,
		ImageURL:        draft.ImageURL,
		CreatedAt:       draft.CreatedAt,
	}
}
