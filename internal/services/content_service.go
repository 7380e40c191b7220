package services

import (
	"fmt"

	"github.com/campuslink/campuslink-backend/internal/dto"
	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentService applies moderator edits to reported forum/thread/post rows.
// The moderation UI calls this immediately before resolving the report on the
// same item.
type ContentService struct {
	db *gorm.DB
}

func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{db: db}
}

func (s *ContentService) EditContent(kind models.ItemKind, itemID uuid.UUID, req *dto.EditContentRequest) error {
	var model interface{}
	updates := map[string]interface{}{}

	switch kind {
	case models.ItemKindForum:
		model = &models.Forum{}
		if req.Title != "" {
			updates["name"] = req.Title
		}
		if req.Body != "" {
			updates["description"] = req.Body
		}
	case models.ItemKindThread:
		model = &models.Thread{}
		if req.Title != "" {
			updates["title"] = req.Title
		}
		if req.Body != "" {
			updates["body"] = req.Body
		}
	case models.ItemKindPost, models.ItemKindComment:
		model = &models.Post{}
		if req.Body != "" {
			updates["body"] = req.Body
		}
	default:
		return fmt.Errorf("%w: %s content cannot be edited here", ErrValidation, kind)
	}

	if len(updates) == 0 {
		return fmt.Errorf("%w: nothing to edit", ErrValidation)
	}

	result := s.db.Model(model).Where("id = ?", itemID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to edit %s: %w", kind, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, itemID)
	}
	return nil
}
