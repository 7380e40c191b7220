package services

import (
	"testing"

	"github.com/campuslink/campuslink-backend/internal/dto"
	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createThreadReport(t *testing.T, svc *ModerationService, f *fixture) *models.Report {
	t.Helper()
	report, err := svc.CreateReport(f.reporter.ID, &dto.CreateReportRequest{
		ItemKind:   string(models.ItemKindThread),
		ItemID:     f.thread.ID,
		ReasonCode: "spam",
	})
	require.NoError(t, err)
	return report
}

func TestCreateReportEndToEnd(t *testing.T) {
	db := newTestDB(t)
	f := seedPlatform(t, db)
	svc := NewModerationService(db)

	report, err := svc.CreateReport(f.reporter.ID, &dto.CreateReportRequest{
		ItemKind:   string(models.ItemKindThread),
		ItemID:     f.thread.ID,
		ReasonCode: "spam",
		Details:    "Posted the same link five times",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, report.Status)
	assert.Equal(t, f.thread.Title, report.ItemContext)
	assert.Equal(t, "Spam or advertising", report.Reason)
	assert.Equal(t, models.SeverityLow, report.Severity)
	require.NotNil(t, report.ForumID)
	assert.Equal(t, f.forum.ID, *report.ForumID)
	require.NotNil(t, report.CommunityID)
	assert.Equal(t, f.community.ID, *report.CommunityID)
	require.NotNil(t, report.ReportedUserID)
	assert.Equal(t, f.author.ID, *report.ReportedUserID)

	// One notification per moderator: both super admins plus the ambassador.
	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	recipients := make([]uuid.UUID, 0, len(notifications))
	for _, n := range notifications {
		assert.Equal(t, models.NotificationTypeReport, n.Type)
		assert.Equal(t, f.reporter.ID, n.ActorID)
		assert.Nil(t, n.ReferenceID)
		recipients = append(recipients, n.RecipientID)
	}
	assert.ElementsMatch(t, []uuid.UUID{f.admin.ID, f.legacy.ID, f.ambassador.ID}, recipients)
}

func TestCreateReportByASuperAdminSkipsThemselves(t *testing.T) {
	db := newTestDB(t)
	f := seedPlatform(t, db)
	svc := NewModerationService(db)

	_, err := svc.CreateReport(f.admin.ID, &dto.CreateReportRequest{
		ItemKind:   string(models.ItemKindThread),
		ItemID:     f.thread.ID,
		ReasonCode: "spam",
	})
	require.NoError(t, err)

	var count int64
	db.Model(&models.Notification{}).Where("recipient_id = ?", f.admin.ID).Count(&count)
	assert.Zero(t, count)
}

func TestCreateReportValidation(t *testing.T) {
	db := newTestDB(t)
	f := seedPlatform(t, db)
	svc := NewModerationService(db)

	_, err := svc.CreateReport(f.reporter.ID, &dto.CreateReportRequest{
		ItemKind: "hologram", ItemID: f.thread.ID, ReasonCode: "spam",
	})
	assert.ErrorIs(t, err, ErrInvalidItemKind)

	_, err = svc.CreateReport(f.reporter.ID, &dto.CreateReportRequest{
		ItemKind: string(models.ItemKindThread), ReasonCode: "spam",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateReport(f.reporter.ID, &dto.CreateReportRequest{
		ItemKind: string(models.ItemKindThread), ItemID: f.thread.ID,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateReportAbortsWithoutContext(t *testing.T) {
	db := newTestDB(t)
	f := seedPlatform(t, db)
	svc := NewModerationService(db)

	_, err := svc.CreateReport(f.reporter.ID, &dto.CreateReportRequest{
		ItemKind:   string(models.ItemKindThread),
		ItemID:     uuid.New(),
		ReasonCode: "spam",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	// No orphan report, no notifications.
	var reports, notifications int64
	db.Model(&models.Report{}).Count(&reports)
	db.Model(&models.Notification{}).Count(&notifications)
	assert.Zero(t, reports)
	assert.Zero(t, notifications)
}

func TestResolveHideThenRetain(t *testing.T) {
	db := newTestDB(t)
	f := seedPlatform(t, db)
	svc := NewModerationService(db)
	report := createThreadReport(t, svc, f)

	report, err := svc.ResolveReport(report.ID, f.admin.ID, &dto.ResolveReportRequest{Action: "hide"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, report.Status, "hide must not advance status")

	hidden, err := NewVisibilityService(db).Hidden(models.ItemKindThread, f.thread.ID)
	require.NoError(t, err)
	assert.True(t, hidden)

	report, err = svc.ResolveReport(report.ID, f.admin.ID, &dto.ResolveReportRequest{
		Action: "retain",
		Notes:  "Borderline, keeping it up",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusRetained, report.Status)
	assert.Equal(t, "Borderline, keeping it up", report.ResolutionNotes)
	require.NotNil(t, report.ResolvedBy)
	assert.Equal(t, f.admin.ID, *report.ResolvedBy)
	assert.NotNil(t, report.ResolvedAt)

	// Retain leaves visibility untouched.
	hidden, err = NewVisibilityService(db).Hidden(models.ItemKindThread, f.thread.ID)
	require.NoError(t, err)
	assert.True(t, hidden)
}

func TestRemoveForcesHidden(t *testing.T) {
	db := newTestDB(t)
	f := seedPlatform(t, db)
	svc := NewModerationService(db)
	report := createThreadReport(t, svc, f)

	report, err := svc.ResolveReport(report.ID, f.admin.ID, &dto.ResolveReportRequest{Action: "remove"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusRemoved, report.Status)

	hidden, err := NewVisibilityService(db).Hidden(models.ItemKindThread, f.thread.ID)
	require.NoError(t, err)
	assert.True(t, hidden)
}

func TestRemoveUserReportIsVisibilityNoOp(t *testing.T) {
	db := newTestDB(t)
	f := seedPlatform(t, db)
	svc := NewModerationService(db)

	report, err := svc.CreateReport(f.reporter.ID, &dto.CreateReportRequest{
		ItemKind:   string(models.ItemKindUser),
		ItemID:     f.author.ID,
		ReasonCode: "harassment",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SeverityHigh, report.Severity)

	report, err = svc.ResolveReport(report.ID, f.admin.ID, &dto.ResolveReportRequest{Action: "remove"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusRemoved, report.Status)
}

func TestUnderReviewTransition(t *testing.T) {
	db := newTestDB(t)
	f := seedPlatform(t, db)
	svc := NewModerationService(db)
	report := createThreadReport(t, svc, f)

	report, err := svc.ResolveReport(report.ID, f.admin.ID, &dto.ResolveReportRequest{Action: "under_review"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnderReview, report.Status)

	_, err = svc.ResolveReport(report.ID, f.admin.ID, &dto.ResolveReportRequest{Action: "under_review"})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestTerminalStatusRejectsEveryAction(t *testing.T) {
	db := newTestDB(t)
	f := seedPlatform(t, db)
	svc := NewModerationService(db)
	report := createThreadReport(t, svc, f)

	_, err := svc.ResolveReport(report.ID, f.admin.ID, &dto.ResolveReportRequest{Action: "dismiss"})
	require.NoError(t, err)

	for _, action := range []string{"under_review", "hide", "restore", "retain", "dismiss", "remove"} {
		_, err := svc.ResolveReport(report.ID, f.admin.ID, &dto.ResolveReportRequest{Action: action})
		assert.ErrorIs(t, err, ErrInvalidState, "action %s", action)
	}
}

func TestResolveUnknownAction(t *testing.T) {
	db := newTestDB(t)
	f := seedPlatform(t, db)
	svc := NewModerationService(db)
	report := createThreadReport(t, svc, f)

	_, err := svc.ResolveReport(report.ID, f.admin.ID, &dto.ResolveReportRequest{Action: "escalate"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResolveMissingReport(t *testing.T) {
	db := newTestDB(t)
	f := seedPlatform(t, db)
	svc := NewModerationService(db)

	_, err := svc.ResolveReport(uuid.New(), f.admin.ID, &dto.ResolveReportRequest{Action: "retain"})
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestConcurrentResolutionLosesWithConflict(t *testing.T) {
	db := newTestDB(t)
	f := seedPlatform(t, db)
	svc := NewModerationService(db)
	report := createThreadReport(t, svc, f)

	// First moderator reads the report while it is still pending.
	stale := *report

	// Second moderator moves it to under_review in the meantime.
	_, err := svc.ResolveReport(report.ID, f.legacy.ID, &dto.ResolveReportRequest{Action: "under_review"})
	require.NoError(t, err)

	// The first moderator's transition is guarded on the stale status.
	err = svc.applyAction(&stale, f.admin.ID, ActionRetain, &dto.ResolveReportRequest{Action: "retain"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestForumEditCommitsWithResolution(t *testing.T) {
	db := newTestDB(t)
	f := seedPlatform(t, db)
	svc := NewModerationService(db)

	report, err := svc.CreateReport(f.reporter.ID, &dto.CreateReportRequest{
		ItemKind:   string(models.ItemKindForum),
		ItemID:     f.forum.ID,
		ReasonCode: "inappropriate",
	})
	require.NoError(t, err)

	report, err = svc.ResolveReport(report.ID, f.admin.ID, &dto.ResolveReportRequest{
		Action:    "retain",
		Notes:     "Renamed instead of removing",
		ForumEdit: &dto.ForumEdit{Name: "General (clean)"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusRetained, report.Status)

	var forum models.Forum
	require.NoError(t, db.First(&forum, "id = ?", f.forum.ID).Error)
	assert.Equal(t, "General (clean)", forum.Name)
}

func TestForumEditRollsBackWithLostResolution(t *testing.T) {
	db := newTestDB(t)
	f := seedPlatform(t, db)
	svc := NewModerationService(db)

	report, err := svc.CreateReport(f.reporter.ID, &dto.CreateReportRequest{
		ItemKind:   string(models.ItemKindForum),
		ItemID:     f.forum.ID,
		ReasonCode: "inappropriate",
	})
	require.NoError(t, err)

	stale := *report
	_, err = svc.ResolveReport(report.ID, f.legacy.ID, &dto.ResolveReportRequest{Action: "under_review"})
	require.NoError(t, err)

	err = svc.applyAction(&stale, f.admin.ID, ActionRetain, &dto.ResolveReportRequest{
		Action:    "retain",
		ForumEdit: &dto.ForumEdit{Name: "Should not stick"},
	})
	assert.ErrorIs(t, err, ErrConflict)

	// The edit was in the same transaction as the lost transition.
	var forum models.Forum
	require.NoError(t, db.First(&forum, "id = ?", f.forum.ID).Error)
	assert.Equal(t, "General Discussion", forum.Name)
}

func TestForumEditRejectedForOtherKinds(t *testing.T) {
	db := newTestDB(t)
	f := seedPlatform(t, db)
	svc := NewModerationService(db)
	report := createThreadReport(t, svc, f)

	_, err := svc.ResolveReport(report.ID, f.admin.ID, &dto.ResolveReportRequest{
		Action:    "retain",
		ForumEdit: &dto.ForumEdit{Name: "nope"},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListReports(t *testing.T) {
	db := newTestDB(t)
	f := seedPlatform(t, db)
	svc := NewModerationService(db)

	first := createThreadReport(t, svc, f)
	second, err := svc.CreateReport(f.reporter.ID, &dto.CreateReportRequest{
		ItemKind:   string(models.ItemKindPost),
		ItemID:     f.post.ID,
		ReasonCode: "harassment",
	})
	require.NoError(t, err)

	_, err = svc.ResolveReport(second.ID, f.admin.ID, &dto.ResolveReportRequest{Action: "remove"})
	require.NoError(t, err)

	rows, total, err := svc.ListReports("all", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rows, 2)

	pending, _, err := svc.ListReports("pending", 20, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, "reporter@campus.edu", pending[0].ReporterName)
	assert.False(t, pending[0].Hidden)

	removed, _, err := svc.ListReports("removed", 20, 0)
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, "admin@campus.edu", removed[0].ResolverName)
	assert.True(t, removed[0].Hidden)

	_, _, err = svc.ListReports("archived", 20, 0)
	assert.ErrorIs(t, err, ErrValidation)
}
