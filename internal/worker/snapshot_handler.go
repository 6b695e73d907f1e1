// Package worker consumes background tasks: rendering a portfolio's public
// page through its theme and storing the result as a static snapshot.
package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"

	"showfolio/internal/database"
	"showfolio/internal/portfolio"
	"showfolio/internal/storage"
	"showfolio/internal/tasks"
	"showfolio/internal/theme"
)

// SnapshotStore is the slice of the object store the handler needs.
type SnapshotStore interface {
	UploadObject(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// SnapshotTaskHandler consumes snapshot render tasks.
type SnapshotTaskHandler struct {
	db       *gorm.DB
	composer *portfolio.Composer
	storage  SnapshotStore
	logger   *slog.Logger
}

// NewSnapshotTaskHandler builds the task handler.
func NewSnapshotTaskHandler(db *gorm.DB, storageClient SnapshotStore, logger *slog.Logger) *SnapshotTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotTaskHandler{
		db:       db,
		composer: portfolio.NewComposer(db),
		storage:  storageClient,
		logger:   logger,
	}
}

// ProcessTask implements asynq.Handler.
func (h *SnapshotTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	log := h.logger

	var payload tasks.SnapshotRenderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Uint64("portfolio_id", uint64(payload.PortfolioID)),
	)
	log.Info("starting snapshot render task")

	var p database.Portfolio
	if err := h.db.WithContext(ctx).First(&p, payload.PortfolioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("portfolio not found, skipping task")
			return nil
		}
		log.Error("query portfolio failed", slog.Any("error", err))
		return err
	}

	model, err := h.composer.ByOwner(ctx, p.ProfileID)
	if err != nil {
		log.Error("compose portfolio failed", slog.Any("error", err))
		return err
	}
	if model == nil {
		log.Warn("portfolio disappeared between lookup and compose, skipping")
		return nil
	}

	var buf bytes.Buffer
	if err := theme.Render(&buf, model); err != nil {
		log.Error("render snapshot failed", slog.Any("error", err))
		return err
	}

	objectKey := fmt.Sprintf("snapshots/%d/%s-%d.html", p.ProfileID, p.Username, time.Now().Unix())
	size := int64(buf.Len())
	if _, err := h.storage.UploadObject(ctx, objectKey, &buf, size, "text/html; charset=utf-8"); err != nil {
		log.Error("upload snapshot failed", slog.Any("error", err))
		return err
	}

	previousKey := p.SnapshotKey
	if err := h.db.WithContext(ctx).Model(&p).Update("snapshot_key", objectKey).Error; err != nil {
		log.Error("record snapshot key failed", slog.Any("error", err))
		return err
	}

	if previousKey != "" && previousKey != objectKey {
		if err := h.storage.DeleteObject(ctx, previousKey); err != nil && !storage.IsNoSuchKey(err) {
			log.Warn("delete stale snapshot failed", slog.Any("error", err))
		}
	}

	log.Info("snapshot render complete", slog.String("object_key", objectKey), slog.Int64("bytes", size))
	return nil
}
