package repos

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&types.User{},
		&types.Session{},
		&types.Module{},
		&types.Topic{},
		&types.ModuleOnTopic{},
		&types.Bookmark{},
		&types.LastSeen{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedModule(t *testing.T, db *gorm.DB, ownerID uuid.UUID, title string) *types.Module {
	t.Helper()
	m := &types.Module{
		ID:          uuid.New(),
		Title:       title,
		Summary:     "summary",
		Content:     "content",
		CreatedByID: ownerID,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed module: %v", err)
	}
	return m
}

func seedUser(t *testing.T, db *gorm.DB, email string) *types.User {
	t.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "x",
		Name:     "Test User",
		Role:     types.RoleUser,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestLastSeenUpsertKeepsOneRowPerModule(t *testing.T) {
	db := newTestDB(t)
	repo := NewLastSeenRepo(db, logger.NewNop())
	ctx := context.Background()

	user := seedUser(t, db, "viewer@example.com")
	module := seedModule(t, db, user.ID, "Intro")

	first := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
	second := time.Now().UTC().Truncate(time.Second)

	if _, err := repo.Upsert(ctx, nil, user.ID, module.ID, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	row, err := repo.Upsert(ctx, nil, user.ID, module.ID, second)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if !row.LastSeenAt.Equal(second) {
		t.Fatalf("lastSeenAt=%v, want %v", row.LastSeenAt, second)
	}

	var count int64
	db.Model(&types.LastSeen{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("rows=%d, want 1", count)
	}

	var stored types.LastSeen
	if err := db.Where("user_id = ? AND module_id = ?", user.ID, module.ID).First(&stored).Error; err != nil {
		t.Fatalf("load row: %v", err)
	}
	if !stored.LastSeenAt.Equal(second) {
		t.Fatalf("stored lastSeenAt=%v, want refreshed %v", stored.LastSeenAt, second)
	}
}

func TestLastSeenListOrdersMostRecentFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewLastSeenRepo(db, logger.NewNop())
	ctx := context.Background()

	user := seedUser(t, db, "viewer@example.com")
	older := seedModule(t, db, user.ID, "Older")
	newer := seedModule(t, db, user.ID, "Newer")

	base := time.Now().UTC().Truncate(time.Second)
	if _, err := repo.Upsert(ctx, nil, user.ID, older.ID, base.Add(-2*time.Hour)); err != nil {
		t.Fatalf("upsert older: %v", err)
	}
	if _, err := repo.Upsert(ctx, nil, user.ID, newer.ID, base); err != nil {
		t.Fatalf("upsert newer: %v", err)
	}

	rows, err := repo.ListByUserID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len=%d, want 2", len(rows))
	}
	if rows[0].ModuleID != newer.ID {
		t.Fatalf("first row module=%s, want most recent %s", rows[0].ModuleID, newer.ID)
	}
	if rows[0].Module == nil || rows[0].Module.Title != "Newer" {
		t.Fatal("module not preloaded")
	}
	if rows[0].Module.Content != "" {
		t.Fatal("list should not carry module content")
	}
}
