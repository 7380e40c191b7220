package services

import (
	"fmt"

	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipientResolver computes the moderator audience for a report: every
// super admin plus the ambassadors of the target community, minus the
// reporter, deduplicated. With no community the result is exactly the
// super-admin set.
type RecipientResolver struct {
	db *gorm.DB
}

func NewRecipientResolver(db *gorm.DB) *RecipientResolver {
	return &RecipientResolver{db: db}
}

func (r *RecipientResolver) Recipients(communityID *uuid.UUID, reporterID uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{})
	var out []uuid.UUID
	add := func(id uuid.UUID) {
		if id == reporterID {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	var admins []models.User
	if err := r.db.Scopes(models.SuperAdmins).Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("failed to load super admins: %w", err)
	}
	for _, u := range admins {
		add(u.ID)
	}

	if communityID != nil {
		var ambassadors []models.CommunityAmbassador
		if err := r.db.Where("community_id = ?", *communityID).Find(&ambassadors).Error; err != nil {
			return nil, fmt.Errorf("failed to load ambassadors: %w", err)
		}
		for _, a := range ambassadors {
			add(a.UserID)
		}
	}

	return out, nil
}
