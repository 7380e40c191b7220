package services

import (
	"testing"
	"time"

	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Community{},
		&models.CommunityAmbassador{},
		&models.Forum{},
		&models.Thread{},
		&models.Post{},
		&models.Announcement{},
		&models.Event{},
		&models.Report{},
		&models.Notification{},
		&models.SystemLog{},
	))
	return db
}

// fixture is one fully joined content chain plus the usual cast of users.
type fixture struct {
	db *gorm.DB

	community    models.Community
	forum        models.Forum
	thread       models.Thread
	post         models.Post
	announcement models.Announcement
	event        models.Event

	author     models.User
	reporter   models.User
	admin      models.User
	legacy     models.User
	ambassador models.User
}

func seedUser(t *testing.T, db *gorm.DB, email, role string, legacyRole int) models.User {
	t.Helper()
	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  email,
		Role:         role,
		LegacyRoleID: legacyRole,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedPlatform(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	f := &fixture{db: db}

	f.author = seedUser(t, db, "author@campus.edu", models.RoleUser, 0)
	f.reporter = seedUser(t, db, "reporter@campus.edu", models.RoleUser, 0)
	f.admin = seedUser(t, db, "admin@campus.edu", models.RoleSuperAdmin, 0)
	f.legacy = seedUser(t, db, "legacy@campus.edu", models.RoleUser, models.LegacyRoleSuperAdmin)
	f.ambassador = seedUser(t, db, "ambassador@campus.edu", models.RoleUser, 0)

	f.community = models.Community{ID: uuid.New(), Name: "Engineering", CreatedBy: f.author.ID}
	require.NoError(t, db.Create(&f.community).Error)
	require.NoError(t, db.Create(&models.CommunityAmbassador{
		ID:          uuid.New(),
		CommunityID: f.community.ID,
		UserID:      f.ambassador.ID,
	}).Error)

	f.forum = models.Forum{
		ID:          uuid.New(),
		CommunityID: f.community.ID,
		Name:        "General Discussion",
		Description: "Anything goes, within reason",
		CreatedBy:   f.author.ID,
	}
	require.NoError(t, db.Create(&f.forum).Error)

	f.thread = models.Thread{
		ID:       uuid.New(),
		ForumID:  f.forum.ID,
		AuthorID: f.author.ID,
		Title:    "Midterm study group",
		Body:     "Anyone up for a study group before midterms?",
	}
	require.NoError(t, db.Create(&f.thread).Error)

	f.post = models.Post{
		ID:       uuid.New(),
		ThreadID: f.thread.ID,
		AuthorID: f.author.ID,
		Body:     "Count me in, library at 6?",
	}
	require.NoError(t, db.Create(&f.post).Error)

	f.announcement = models.Announcement{
		ID:          uuid.New(),
		CommunityID: &f.community.ID,
		CreatedBy:   f.author.ID,
		Title:       "Welcome week",
		Body:        "Orientation starts Monday",
	}
	require.NoError(t, db.Create(&f.announcement).Error)

	f.event = models.Event{
		ID:          uuid.New(),
		CommunityID: &f.community.ID,
		CreatedBy:   f.author.ID,
		Title:       "Career fair",
		Description: "Bring your resume",
		StartsAt:    time.Now().Add(72 * time.Hour),
	}
	require.NoError(t, db.Create(&f.event).Error)

	return f
}

// itemFor maps a kind to the fixture row of that kind.
func (f *fixture) itemFor(kind models.ItemKind) uuid.UUID {
	switch kind {
	case models.ItemKindForum:
		return f.forum.ID
	case models.ItemKindThread:
		return f.thread.ID
	case models.ItemKindPost, models.ItemKindComment:
		return f.post.ID
	case models.ItemKindAnnouncement:
		return f.announcement.ID
	case models.ItemKindEvent:
		return f.event.ID
	case models.ItemKindUser:
		return f.author.ID
	}
	return uuid.Nil
}
