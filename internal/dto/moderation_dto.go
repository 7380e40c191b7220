package dto

import "github.com/google/uuid"

type CreateReportRequest struct {
	ItemKind   string    `json:"item_kind"`
	ItemID     uuid.UUID `json:"item_id"`
	ReasonCode string    `json:"reason_code"`
	ReasonText string    `json:"reason_text,omitempty"`
	Details    string    `json:"details,omitempty"`
}

type CreateReportResponse struct {
	ReportID uuid.UUID `json:"report_id"`
}

// ForumEdit is applied to the reported forum inside the same transaction as
// the resolution, before the status transition.
type ForumEdit struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type ResolveReportRequest struct {
	Action    string     `json:"action"`
	Notes     string     `json:"notes,omitempty"`
	ForumEdit *ForumEdit `json:"forum_edit,omitempty"`
}

type EditContentRequest struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}
