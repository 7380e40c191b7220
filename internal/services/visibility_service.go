package services

import (
	"errors"
	"fmt"

	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisibilityService flips the hidden flag on the content table backing an
// item kind. The flag is also written by unrelated content-edit flows, so a
// concurrent same-column write is tolerated (last writer wins on a boolean).
type VisibilityService struct {
	db *gorm.DB
}

func NewVisibilityService(db *gorm.DB) *VisibilityService {
	return &VisibilityService{db: db}
}

// SetHidden is idempotent: applying the same value twice is not an error and
// has no effect beyond the first application. For the user kind it is a
// defined successful no-op (users have no hidden flag).
func (s *VisibilityService) SetHidden(kind models.ItemKind, itemID uuid.UUID, hidden bool) error {
	model, ok := models.ModeratableFor(kind)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidItemKind, kind)
	}
	if model == nil {
		return nil
	}

	result := s.db.Model(model).Where("id = ?", itemID).Update("is_hidden", hidden)
	if result.Error != nil {
		return fmt.Errorf("failed to update visibility of %s %s: %w", kind, itemID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, itemID)
	}
	return nil
}

// Hidden reads the current flag. The user kind always reports false.
func (s *VisibilityService) Hidden(kind models.ItemKind, itemID uuid.UUID) (bool, error) {
	model, ok := models.ModeratableFor(kind)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrInvalidItemKind, kind)
	}
	if model == nil {
		return false, nil
	}

	err := s.db.First(model, "id = ?", itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("%w: %s %s", ErrNotFound, kind, itemID)
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s %s: %w", kind, itemID, err)
	}
	return model.GetHidden(), nil
}
