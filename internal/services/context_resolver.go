package services

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// PreviewLimit caps the item-context evidence snapshot.
const PreviewLimit = 240

// ItemContext is the denormalized snapshot captured when a report is filed.
type ItemContext struct {
	ForumID        *uuid.UUID
	ThreadID       *uuid.UUID
	CommunityID    *uuid.UUID
	CommunityName  string
	ItemTitle      string
	Preview        string
	ReportedUserID *uuid.UUID
}

// ContextResolver maps (item kind, item id) to an ItemContext by walking the
// join path for that kind. A report is never persisted without a resolved
// context, so a missing root row aborts submission.
type ContextResolver struct {
	db        *gorm.DB
	sanitizer *bluemonday.Policy
	spaces    *regexp.Regexp
}

func NewContextResolver(db *gorm.DB) *ContextResolver {
	return &ContextResolver{
		db:        db,
		sanitizer: bluemonday.StrictPolicy(),
		spaces:    regexp.MustCompile(`\s+`),
	}
}

func (r *ContextResolver) Resolve(kind models.ItemKind, itemID uuid.UUID) (*ItemContext, error) {
	switch kind {
	case models.ItemKindForum:
		return r.resolveForum(itemID)
	case models.ItemKindThread:
		return r.resolveThread(itemID)
	case models.ItemKindPost, models.ItemKindComment:
		return r.resolvePost(kind, itemID)
	case models.ItemKindAnnouncement:
		return r.resolveAnnouncement(itemID)
	case models.ItemKindEvent:
		return r.resolveEvent(itemID)
	case models.ItemKindUser:
		return r.resolveUser(itemID)
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidItemKind, kind)
}

func (r *ContextResolver) resolveForum(itemID uuid.UUID) (*ItemContext, error) {
	var forum models.Forum
	if err := r.first(&forum, itemID, models.ItemKindForum); err != nil {
		return nil, err
	}
	ctx := &ItemContext{
		ForumID:        &forum.ID,
		CommunityID:    &forum.CommunityID,
		CommunityName:  r.communityName(&forum.CommunityID),
		ItemTitle:      fallback(forum.Name, models.ItemKindForum),
		Preview:        r.Clean(firstNonEmpty(forum.Description, forum.Name), PreviewLimit),
		ReportedUserID: ptr(forum.CreatedBy),
	}
	return ctx, nil
}

func (r *ContextResolver) resolveThread(itemID uuid.UUID) (*ItemContext, error) {
	var thread models.Thread
	if err := r.first(&thread, itemID, models.ItemKindThread); err != nil {
		return nil, err
	}
	ctx := &ItemContext{
		ThreadID:       &thread.ID,
		ForumID:        &thread.ForumID,
		ItemTitle:      fallback(thread.Title, models.ItemKindThread),
		Preview:        r.Clean(firstNonEmpty(thread.Title, thread.Body), PreviewLimit),
		ReportedUserID: ptr(thread.AuthorID),
	}
	var forum models.Forum
	if err := r.db.First(&forum, "id = ?", thread.ForumID).Error; err == nil {
		ctx.CommunityID = &forum.CommunityID
		ctx.CommunityName = r.communityName(&forum.CommunityID)
	}
	return ctx, nil
}

func (r *ContextResolver) resolvePost(kind models.ItemKind, itemID uuid.UUID) (*ItemContext, error) {
	var post models.Post
	if err := r.first(&post, itemID, kind); err != nil {
		return nil, err
	}
	ctx := &ItemContext{
		ThreadID:       &post.ThreadID,
		ItemTitle:      kind.Label(),
		Preview:        r.Clean(post.Body, PreviewLimit),
		ReportedUserID: ptr(post.AuthorID),
	}
	var thread models.Thread
	if err := r.db.First(&thread, "id = ?", post.ThreadID).Error; err == nil {
		ctx.ForumID = &thread.ForumID
		if thread.Title != "" {
			ctx.ItemTitle = r.Clean(thread.Title, PreviewLimit)
		}
		var forum models.Forum
		if err := r.db.First(&forum, "id = ?", thread.ForumID).Error; err == nil {
			ctx.CommunityID = &forum.CommunityID
			ctx.CommunityName = r.communityName(&forum.CommunityID)
		}
	}
	return ctx, nil
}

func (r *ContextResolver) resolveAnnouncement(itemID uuid.UUID) (*ItemContext, error) {
	var a models.Announcement
	if err := r.first(&a, itemID, models.ItemKindAnnouncement); err != nil {
		return nil, err
	}
	return &ItemContext{
		CommunityID:    a.CommunityID,
		CommunityName:  r.communityName(a.CommunityID),
		ItemTitle:      fallback(a.Title, models.ItemKindAnnouncement),
		Preview:        r.Clean(firstNonEmpty(a.Body, a.Title), PreviewLimit),
		ReportedUserID: ptr(a.CreatedBy),
	}, nil
}

func (r *ContextResolver) resolveEvent(itemID uuid.UUID) (*ItemContext, error) {
	var ev models.Event
	if err := r.first(&ev, itemID, models.ItemKindEvent); err != nil {
		return nil, err
	}
	return &ItemContext{
		CommunityID:    ev.CommunityID,
		CommunityName:  r.communityName(ev.CommunityID),
		ItemTitle:      fallback(ev.Title, models.ItemKindEvent),
		Preview:        r.Clean(firstNonEmpty(ev.Description, ev.Title), PreviewLimit),
		ReportedUserID: ptr(ev.CreatedBy),
	}, nil
}

func (r *ContextResolver) resolveUser(itemID uuid.UUID) (*ItemContext, error) {
	var user models.User
	if err := r.first(&user, itemID, models.ItemKindUser); err != nil {
		return nil, err
	}
	return &ItemContext{
		ItemTitle:      fallback(user.Name(), models.ItemKindUser),
		Preview:        r.Clean(user.Name(), PreviewLimit),
		ReportedUserID: ptr(user.ID),
	}, nil
}

func (r *ContextResolver) first(dest interface{}, itemID uuid.UUID, kind models.ItemKind) error {
	err := r.db.First(dest, "id = ?", itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, itemID)
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", kind, err)
	}
	return nil
}

func (r *ContextResolver) communityName(communityID *uuid.UUID) string {
	if communityID == nil {
		return ""
	}
	var community models.Community
	if err := r.db.First(&community, "id = ?", *communityID).Error; err != nil {
		return ""
	}
	return community.Name
}

// Clean strips markup, collapses whitespace and trims, then truncates to
// limit runes with a trailing ellipsis.
func (r *ContextResolver) Clean(raw string, limit int) string {
	text := r.sanitizer.Sanitize(raw)
	text = html.UnescapeString(text)
	text = r.spaces.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > limit {
		runes := []rune(text)
		text = string(runes[:limit-3]) + "..."
	}
	return text
}

func fallback(title string, kind models.ItemKind) string {
	if strings.TrimSpace(title) == "" {
		return kind.Label()
	}
	return title
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func ptr(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
