package models

import (
	"time"

	"github.com/google/uuid"
)

// ItemKind identifies which content table a report points at.
type ItemKind string

const (
	ItemKindForum        ItemKind = "forum"
	ItemKindThread       ItemKind = "thread"
	ItemKindPost         ItemKind = "post"
	ItemKindComment      ItemKind = "comment"
	ItemKindAnnouncement ItemKind = "announcement"
	ItemKindEvent        ItemKind = "event"
	ItemKindUser         ItemKind = "user"
)

// ParseItemKind validates a wire value. Unknown kinds are rejected at the
// boundary so the per-kind switches below stay exhaustive.
func ParseItemKind(s string) (ItemKind, bool) {
	switch k := ItemKind(s); k {
	case ItemKindForum, ItemKindThread, ItemKindPost, ItemKindComment,
		ItemKindAnnouncement, ItemKindEvent, ItemKindUser:
		return k, true
	}
	return "", false
}

// Label is the generic title fallback for items without a usable title.
func (k ItemKind) Label() string {
	switch k {
	case ItemKindForum:
		return "Forum"
	case ItemKindThread:
		return "Thread"
	case ItemKindPost:
		return "Post"
	case ItemKindComment:
		return "Comment"
	case ItemKindAnnouncement:
		return "Announcement"
	case ItemKindEvent:
		return "Event"
	case ItemKindUser:
		return "User"
	}
	return "Item"
}

type ReportStatus string

const (
	StatusPending     ReportStatus = "pending"
	StatusUnderReview ReportStatus = "under_review"
	StatusRetained    ReportStatus = "retained"
	StatusRemoved     ReportStatus = "removed"
	StatusDismissed   ReportStatus = "dismissed"
)

// Terminal reports accept no further resolution action.
func (s ReportStatus) Terminal() bool {
	switch s {
	case StatusRetained, StatusRemoved, StatusDismissed:
		return true
	}
	return false
}

func ParseReportStatus(s string) (ReportStatus, bool) {
	switch st := ReportStatus(s); st {
	case StatusPending, StatusUnderReview, StatusRetained, StatusRemoved, StatusDismissed:
		return st, true
	}
	return "", false
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var reasonLabels = map[string]string{
	"spam":           "Spam or advertising",
	"off_topic":      "Off topic",
	"misinformation": "Misinformation",
	"inappropriate":  "Inappropriate content",
	"harassment":     "Harassment or bullying",
	"hate_speech":    "Hate speech",
	"self_harm":      "Self-harm or dangerous behavior",
	"illegal":        "Illegal content",
	"other":          "Other",
}

var reasonSeverity = map[string]Severity{
	"spam":           SeverityLow,
	"off_topic":      SeverityLow,
	"misinformation": SeverityMedium,
	"inappropriate":  SeverityMedium,
	"harassment":     SeverityHigh,
	"hate_speech":    SeverityHigh,
	"self_harm":      SeverityCritical,
	"illegal":        SeverityCritical,
}

// ReasonLabel maps a reason code to its display label. For "other" the
// reporter's own wording wins when present.
func ReasonLabel(code, text string) string {
	if code == "other" && text != "" {
		return text
	}
	if label, ok := reasonLabels[code]; ok {
		return label
	}
	if text != "" {
		return text
	}
	return code
}

func SeverityForReason(code string) Severity {
	if sev, ok := reasonSeverity[code]; ok {
		return sev
	}
	return SeverityMedium
}

// Report is the audit row for a moderation case. Rows are created by
// submission, mutated only by resolution actions and never deleted.
// ItemContext is the evidence snapshot captured at report time and is never
// refreshed afterwards.
type Report struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ItemKind        ItemKind     `gorm:"size:20;not null;index" json:"item_kind"`
	ItemID          uuid.UUID    `gorm:"type:uuid;not null;index" json:"item_id"`
	ForumID         *uuid.UUID   `gorm:"type:uuid;index" json:"forum_id,omitempty"`
	ThreadID        *uuid.UUID   `gorm:"type:uuid;index" json:"thread_id,omitempty"`
	CommunityID     *uuid.UUID   `gorm:"type:uuid;index" json:"community_id,omitempty"`
	ReportedBy      uuid.UUID    `gorm:"type:uuid;not null;index" json:"reported_by"`
	ReportedUserID  *uuid.UUID   `gorm:"type:uuid;index" json:"reported_user_id,omitempty"`
	Reason          string       `gorm:"not null;size:500" json:"reason"`
	ReasonCode      string       `gorm:"size:40" json:"reason_code,omitempty"`
	ReasonText      string       `gorm:"size:500" json:"reason_text,omitempty"`
	Severity        Severity     `gorm:"size:10;not null;default:'medium'" json:"severity"`
	Details         string       `gorm:"size:1000" json:"details,omitempty"`
	ItemContext     string       `gorm:"size:240" json:"item_context"`
	Status          ReportStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ResolutionNotes string       `gorm:"size:1000" json:"resolution_notes,omitempty"`
	ResolvedBy      *uuid.UUID   `gorm:"type:uuid" json:"resolved_by,omitempty"`
	ResolvedAt      *time.Time   `json:"resolved_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
