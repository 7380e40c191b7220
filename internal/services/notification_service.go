package services

import (
	"fmt"

	"github.com/campuslink/campuslink-backend/internal/metrics"
	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationService writes report fan-out rows and serves the pull-based
// delivery endpoints.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// FanOut inserts one notification per recipient. Empty input is a no-op.
// Report notifications carry no reference id: the flagged item is
// heterogeneous and not a single navigable target.
func (s *NotificationService) FanOut(recipients []uuid.UUID, actorID uuid.UUID, message string) error {
	if len(recipients) == 0 {
		return nil
	}
	batch := make([]models.Notification, 0, len(recipients))
	for _, recipientID := range recipients {
		batch = append(batch, models.Notification{
			ID:          uuid.New(),
			RecipientID: recipientID,
			ActorID:     actorID,
			Type:        models.NotificationTypeReport,
			Message:     message,
		})
	}
	if err := s.db.CreateInBatches(batch, 100).Error; err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}
	metrics.NotificationsFannedOut.Add(float64(len(batch)))
	return nil
}

func (s *NotificationService) List(userID uuid.UUID, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	offset := (page - 1) * limit
	query := s.db.Model(&models.Notification{}).Where("recipient_id = ?", userID)
	query.Count(&total)

	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (s *NotificationService) MarkRead(userID, notificationID uuid.UUID) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: notification %s", ErrNotFound, notificationID)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) error {
	return s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (s *NotificationService) Delete(userID, notificationID uuid.UUID) error {
	result := s.db.Where("id = ? AND recipient_id = ?", notificationID, userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: notification %s", ErrNotFound, notificationID)
	}
	return nil
}
