package models

import (
	"time"

	"github.com/google/uuid"
)

// Forum is a discussion board inside a community.
type Forum struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CommunityID uuid.UUID `gorm:"type:uuid;not null;index" json:"community_id"`
	Name        string    `gorm:"not null;size:120" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;index" json:"created_by"`
	IsHidden    bool      `gorm:"default:false" json:"is_hidden"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Thread struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ForumID   uuid.UUID `gorm:"type:uuid;not null;index" json:"forum_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;index" json:"author_id"`
	Title     string    `gorm:"size:200" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	IsHidden  bool      `gorm:"default:false" json:"is_hidden"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Post is a reply inside a thread. Comments are posts; the two report kinds
// share this table and its hidden flag.
type Post struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ThreadID  uuid.UUID `gorm:"type:uuid;not null;index" json:"thread_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;index" json:"author_id"`
	Body      string    `gorm:"type:text" json:"body"`
	IsHidden  bool      `gorm:"default:false" json:"is_hidden"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Announcement may be community-scoped or platform-wide (nil community).
type Announcement struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CommunityID *uuid.UUID `gorm:"type:uuid;index" json:"community_id,omitempty"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;index" json:"created_by"`
	Title       string     `gorm:"size:200" json:"title"`
	Body        string     `gorm:"type:text" json:"body"`
	IsHidden    bool       `gorm:"default:false" json:"is_hidden"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Event struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CommunityID *uuid.UUID `gorm:"type:uuid;index" json:"community_id,omitempty"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;index" json:"created_by"`
	Title       string     `gorm:"size:200" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	StartsAt    time.Time  `json:"starts_at"`
	IsHidden    bool       `gorm:"default:false" json:"is_hidden"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (f *Forum) GetHidden() bool        { return f.IsHidden }
func (f *Forum) SetHidden(v bool)       { f.IsHidden = v }
func (t *Thread) GetHidden() bool       { return t.IsHidden }
func (t *Thread) SetHidden(v bool)      { t.IsHidden = v }
func (p *Post) GetHidden() bool         { return p.IsHidden }
func (p *Post) SetHidden(v bool)        { p.IsHidden = v }
func (a *Announcement) GetHidden() bool  { return a.IsHidden }
func (a *Announcement) SetHidden(v bool) { a.IsHidden = v }
func (e *Event) GetHidden() bool  { return e.IsHidden }
func (e *Event) SetHidden(v bool) { e.IsHidden = v }
