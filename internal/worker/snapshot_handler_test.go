package worker

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"showfolio/internal/database"
	"showfolio/internal/tasks"
)

type fakeSnapshotStore struct {
	uploaded map[string][]byte
	deleted  []string
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{uploaded: map[string][]byte{}}
}

func (s *fakeSnapshotStore) UploadObject(_ context.Context, objectKey string, reader io.Reader, _ int64, _ string) (*minio.UploadInfo, error) {
	b, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	s.uploaded[objectKey] = b
	return &minio.UploadInfo{Key: objectKey}, nil
}

func (s *fakeSnapshotStore) DeleteObject(_ context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	delete(s.uploaded, objectKey)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}

func seedPortfolio(t *testing.T, db *gorm.DB, snapshotKey string) database.Portfolio {
	t.Helper()
	profile := database.Profile{Email: "owner@example.com", FullName: "Jane Doe", Role: database.RoleStudent}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	record := database.Portfolio{
		ProfileID:   profile.ID,
		Username:    "janedoe",
		Tagline:     "Engineer",
		Theme:       "minimal",
		IsPublic:    true,
		SnapshotKey: snapshotKey,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed portfolio: %v", err)
	}
	return record
}

func renderTask(t *testing.T, portfolioID uint) *asynq.Task {
	t.Helper()
	task, err := tasks.NewSnapshotRenderTask(portfolioID, "test-correlation")
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	return task
}

func TestProcessTaskRendersAndStoresSnapshot(t *testing.T) {
	db := newTestDB(t)
	record := seedPortfolio(t, db, "")
	store := newFakeSnapshotStore()
	handler := NewSnapshotTaskHandler(db, store, nil)

	if err := handler.ProcessTask(context.Background(), renderTask(t, record.ID)); err != nil {
		t.Fatalf("process task: %v", err)
	}

	if len(store.uploaded) != 1 {
		t.Fatalf("uploaded objects = %d, want 1", len(store.uploaded))
	}
	var key string
	var body []byte
	for k, v := range store.uploaded {
		key, body = k, v
	}
	if !strings.Contains(key, "janedoe") || !strings.HasSuffix(key, ".html") {
		t.Fatalf("object key = %q", key)
	}
	if !strings.Contains(string(body), "Jane Doe") {
		t.Fatal("snapshot missing owner name")
	}

	var reloaded database.Portfolio
	if err := db.First(&reloaded, record.ID).Error; err != nil {
		t.Fatalf("reload portfolio: %v", err)
	}
	if reloaded.SnapshotKey != key {
		t.Fatalf("snapshot_key = %q, want %q", reloaded.SnapshotKey, key)
	}
}

func TestProcessTaskReplacesStaleSnapshot(t *testing.T) {
	db := newTestDB(t)
	record := seedPortfolio(t, db, "snapshots/old.html")
	store := newFakeSnapshotStore()
	handler := NewSnapshotTaskHandler(db, store, nil)

	if err := handler.ProcessTask(context.Background(), renderTask(t, record.ID)); err != nil {
		t.Fatalf("process task: %v", err)
	}

	if len(store.deleted) != 1 || store.deleted[0] != "snapshots/old.html" {
		t.Fatalf("deleted = %v, want the stale key", store.deleted)
	}
}

func TestProcessTaskSkipsMissingPortfolio(t *testing.T) {
	db := newTestDB(t)
	store := newFakeSnapshotStore()
	handler := NewSnapshotTaskHandler(db, store, nil)

	// Deleted portfolios are not an error; the task just completes.
	if err := handler.ProcessTask(context.Background(), renderTask(t, 999)); err != nil {
		t.Fatalf("process task: %v", err)
	}
	if len(store.uploaded) != 0 {
		t.Fatalf("nothing should be uploaded, got %d objects", len(store.uploaded))
	}
}
