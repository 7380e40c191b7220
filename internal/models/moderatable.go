package models

// Moderatable is implemented by every content model that carries a hidden
// flag. The moderation flow reads and writes visibility only through this
// capability, never through the concrete tables.
type Moderatable interface {
	GetHidden() bool
	SetHidden(bool)
}

// ModeratableFor returns a fresh model for the content table backing kind.
// The second return is false for unknown kinds. ItemKindUser has no hidden
// flag and maps to (nil, true): hide/restore on a user report is a defined
// no-op.
func ModeratableFor(kind ItemKind) (Moderatable, bool) {
	switch kind {
	case ItemKindForum:
		return &Forum{}, true
	case ItemKindThread:
		return &Thread{}, true
	case ItemKindPost, ItemKindComment:
		return &Post{}, true
	case ItemKindAnnouncement:
		return &Announcement{}, true
	case ItemKindEvent:
		return &Event{}, true
	case ItemKindUser:
		return nil, true
	}
	return nil, false
}
