package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/campuslink/campuslink-backend/internal/dto"
	"github.com/campuslink/campuslink-backend/internal/metrics"
	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResolveAction is a moderation-queue action on a report. under_review and
// the three terminal actions are status transitions; hide and restore only
// touch content visibility.
type ResolveAction string

const (
	ActionUnderReview ResolveAction = "under_review"
	ActionHide        ResolveAction = "hide"
	ActionRestore     ResolveAction = "restore"
	ActionRetain      ResolveAction = "retain"
	ActionDismiss     ResolveAction = "dismiss"
	ActionRemove      ResolveAction = "remove"
)

func parseResolveAction(s string) (ResolveAction, bool) {
	switch a := ResolveAction(s); a {
	case ActionUnderReview, ActionHide, ActionRestore, ActionRetain, ActionDismiss, ActionRemove:
		return a, true
	}
	return "", false
}

const detailsLimit = 1000

// ModerationService owns the report lifecycle: submission with synchronous
// context resolution, the moderation queue listing, and the guarded
// resolution state machine.
type ModerationService struct {
	db         *gorm.DB
	resolver   *ContextResolver
	recipients *RecipientResolver
	notifier   *NotificationService
	visibility *VisibilityService
}

func NewModerationService(db *gorm.DB) *ModerationService {
	return &ModerationService{
		db:         db,
		resolver:   NewContextResolver(db),
		recipients: NewRecipientResolver(db),
		notifier:   NewNotificationService(db),
		visibility: NewVisibilityService(db),
	}
}

// CreateReport resolves the flagged item's context, persists the report with
// status pending and fans out notifications to the moderator audience.
// Context-resolution failures abort the whole submission; fan-out failures
// are logged and never surfaced.
func (s *ModerationService) CreateReport(reporterID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	kind, ok := models.ParseItemKind(req.ItemKind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidItemKind, req.ItemKind)
	}
	if req.ItemID == uuid.Nil {
		return nil, fmt.Errorf("%w: item_id is required", ErrValidation)
	}
	if strings.TrimSpace(req.ReasonCode) == "" {
		return nil, fmt.Errorf("%w: reason_code is required", ErrValidation)
	}

	itemCtx, err := s.resolver.Resolve(kind, req.ItemID)
	if err != nil {
		return nil, err
	}

	report := models.Report{
		ID:             uuid.New(),
		ItemKind:       kind,
		ItemID:         req.ItemID,
		ForumID:        itemCtx.ForumID,
		ThreadID:       itemCtx.ThreadID,
		CommunityID:    itemCtx.CommunityID,
		ReportedBy:     reporterID,
		ReportedUserID: itemCtx.ReportedUserID,
		Reason:         models.ReasonLabel(req.ReasonCode, req.ReasonText),
		ReasonCode:     req.ReasonCode,
		ReasonText:     req.ReasonText,
		Severity:       models.SeverityForReason(req.ReasonCode),
		Details:        s.resolver.Clean(req.Details, detailsLimit),
		ItemContext:    itemCtx.Preview,
		Status:         models.StatusPending,
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	metrics.ReportsCreated.WithLabelValues(string(kind)).Inc()

	s.fanOut(&report, itemCtx)
	return &report, nil
}

// fanOut is best-effort: notification delivery never fails report creation.
func (s *ModerationService) fanOut(report *models.Report, itemCtx *ItemContext) {
	recipients, err := s.recipients.Recipients(report.CommunityID, report.ReportedBy)
	if err != nil {
		slog.Error("report fan-out: recipient lookup failed",
			"report_id", report.ID.String(), "error", err)
		return
	}
	message := fmt.Sprintf("New %s report (%s): %s", report.ItemKind, report.Reason, itemCtx.ItemTitle)
	if err := s.notifier.FanOut(recipients, report.ReportedBy, message); err != nil {
		slog.Error("report fan-out failed",
			"report_id", report.ID.String(), "recipients", len(recipients), "error", err)
	}
}

// ReportRow is a queue listing entry: the report joined with human-readable
// names and the live hidden flag of the underlying content.
type ReportRow struct {
	models.Report
	ReporterName string `json:"reporter_name"`
	ResolverName string `json:"resolver_name,omitempty"`
	Hidden       bool   `json:"hidden"`
}

// ListReports filters by status; "all" or empty means no filter.
func (s *ModerationService) ListReports(status string, limit, offset int) ([]ReportRow, int64, error) {
	query := s.db.Model(&models.Report{})
	if status != "" && status != "all" {
		parsed, ok := models.ParseReportStatus(status)
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
		}
		query = query.Where("status = ?", parsed)
	}

	var total int64
	query.Count(&total)

	var reports []models.Report
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	names := make(map[uuid.UUID]string)
	rows := make([]ReportRow, len(reports))
	for i := range reports {
		row := ReportRow{Report: reports[i]}
		row.ReporterName = s.userName(names, reports[i].ReportedBy)
		if reports[i].ResolvedBy != nil {
			row.ResolverName = s.userName(names, *reports[i].ResolvedBy)
		}
		hidden, err := s.visibility.Hidden(reports[i].ItemKind, reports[i].ItemID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, 0, err
		}
		row.Hidden = hidden
		rows[i] = row
	}
	return rows, total, nil
}

func (s *ModerationService) userName(cache map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := cache[id]; ok {
		return name
	}
	var user models.User
	name := ""
	if err := s.db.First(&user, "id = ?", id).Error; err == nil {
		name = user.Name()
	}
	cache[id] = name
	return name
}

// ResolveReport applies a queue action to a report. The status transition,
// the visibility toggle and any forum edit commit in one transaction; the
// transition itself is guarded against concurrent moderators.
func (s *ModerationService) ResolveReport(reportID, moderatorID uuid.UUID, req *dto.ResolveReportRequest) (*models.Report, error) {
	action, ok := parseResolveAction(req.Action)
	if !ok {
		return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, req.Action)
	}
	if req.ForumEdit != nil && action != ActionRetain && action != ActionDismiss && action != ActionRemove {
		return nil, fmt.Errorf("%w: forum_edit requires a resolving action", ErrValidation)
	}

	var report models.Report
	err := s.db.First(&report, "id = ?", reportID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, reportID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	if report.Status.Terminal() {
		return nil, fmt.Errorf("%w: report already %s", ErrInvalidState, report.Status)
	}
	if req.ForumEdit != nil && report.ItemKind != models.ItemKindForum {
		return nil, fmt.Errorf("%w: forum_edit is only valid for forum reports", ErrValidation)
	}

	if err := s.applyAction(&report, moderatorID, action, req); err != nil {
		return nil, err
	}

	metrics.ReportsResolved.WithLabelValues(string(action)).Inc()
	if err := s.db.First(&report, "id = ?", reportID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload report: %w", err)
	}
	return &report, nil
}

func (s *ModerationService) applyAction(report *models.Report, moderatorID uuid.UUID, action ResolveAction, req *dto.ResolveReportRequest) error {
	expected := report.Status

	return s.db.Transaction(func(tx *gorm.DB) error {
		switch action {
		case ActionUnderReview:
			if expected != models.StatusPending {
				return fmt.Errorf("%w: report is %s", ErrInvalidState, expected)
			}
			return s.transition(tx, report.ID, expected, map[string]interface{}{
				"status": models.StatusUnderReview,
			})

		case ActionHide, ActionRestore:
			// Visibility changes are legal only while the report is open;
			// touch the row under the same guard a transition uses.
			if err := s.transition(tx, report.ID, expected, map[string]interface{}{
				"updated_at": time.Now(),
			}); err != nil {
				return err
			}
			return NewVisibilityService(tx).SetHidden(report.ItemKind, report.ItemID, action == ActionHide)

		case ActionRetain, ActionDismiss, ActionRemove:
			// A forum edit must be durably committed with the resolution, and
			// before the status transition: a lost edit on a concurrently
			// resolved report is unrecoverable.
			if req.ForumEdit != nil {
				if err := applyForumEdit(tx, report.ItemID, req.ForumEdit); err != nil {
					return err
				}
			}

			status := map[ResolveAction]models.ReportStatus{
				ActionRetain:  models.StatusRetained,
				ActionDismiss: models.StatusDismissed,
				ActionRemove:  models.StatusRemoved,
			}[action]

			now := time.Now()
			if err := s.transition(tx, report.ID, expected, map[string]interface{}{
				"status":           status,
				"resolution_notes": req.Notes,
				"resolved_by":      moderatorID,
				"resolved_at":      now,
			}); err != nil {
				return err
			}

			if action == ActionRemove {
				return NewVisibilityService(tx).SetHidden(report.ItemKind, report.ItemID, true)
			}
			return nil
		}
		return fmt.Errorf("%w: unknown action %q", ErrValidation, action)
	})
}

// transition commits the update only if the status still matches what the
// caller read. A lost race is classified rather than silently re-applied.
func (s *ModerationService) transition(tx *gorm.DB, reportID uuid.UUID, expected models.ReportStatus, updates map[string]interface{}) error {
	result := tx.Model(&models.Report{}).
		Where("id = ? AND status = ?", reportID, expected).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return s.classifyLostUpdate(tx, reportID)
	}
	return nil
}

func (s *ModerationService) classifyLostUpdate(tx *gorm.DB, reportID uuid.UUID) error {
	var current models.Report
	err := tx.First(&current, "id = ?", reportID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrReportNotFound, reportID)
	}
	if err != nil {
		return fmt.Errorf("failed to reload report: %w", err)
	}
	if current.Status.Terminal() {
		return fmt.Errorf("%w: report already %s", ErrInvalidState, current.Status)
	}
	return fmt.Errorf("%w: report moved to %s", ErrConflict, current.Status)
}

func applyForumEdit(tx *gorm.DB, forumID uuid.UUID, edit *dto.ForumEdit) error {
	updates := map[string]interface{}{}
	if edit.Name != "" {
		updates["name"] = edit.Name
	}
	if edit.Description != "" {
		updates["description"] = edit.Description
	}
	if len(updates) == 0 {
		return fmt.Errorf("%w: forum_edit has no fields", ErrValidation)
	}
	result := tx.Model(&models.Forum{}).Where("id = ?", forumID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to edit forum: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: forum %s", ErrNotFound, forumID)
	}
	return nil
}
