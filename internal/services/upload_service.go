package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rahularya002/make-songs/internal/events"
	"github.com/rahularya002/make-songs/internal/media"
	"github.com/rahularya002/make-songs/internal/models"
	"github.com/rahularya002/make-songs/internal/repository"
)

var (
	ErrStorageWrite  = errors.New("storage write failed")
	ErrURLResolution = errors.New("public URL resolution failed")
)

// ObjectStore is the object-storage surface the upload pipeline needs.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key, contentType string, data []byte) error
	PublicURL(bucket, key string) (string, error)
}

// UploadResult is returned to the client on success.
type UploadResult struct {
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	URL      string `json:"url"`
}

// UploadService runs the storage half of the upload pipeline: key generation,
// object write, URL resolution, then a best-effort metadata insert.
type UploadService struct {
	uploads repository.UploadRepository
	store   ObjectStore
	events  *events.Publisher
	logger  *zap.SugaredLogger
}

func NewUploadService(uploads repository.UploadRepository, store ObjectStore, publisher *events.Publisher, logger *zap.SugaredLogger) *UploadService {
	return &UploadService{uploads: uploads, store: store, events: publisher, logger: logger}
}

// Upload stores the buffered file body and records its metadata. The object
// write and URL resolution are hard gates; the metadata insert and event
// publish are best-effort and only logged on failure, so a user is never told
// an otherwise-successful upload failed.
func (s *UploadService) Upload(ctx context.Context, identity string, kind media.Kind, fileName, contentType string, data []byte) (*UploadResult, error) {
	// Random id keeps keys globally unique per upload.
	key := identity + "/" + uuid.NewString() + "-" + fileName
	bucket := kind.Bucket()

	if err := s.store.Upload(ctx, bucket, key, contentType, data); err != nil {
		s.logger.Errorf("object write failed (bucket=%s key=%s): %v", bucket, key, err)
		return nil, ErrStorageWrite
	}

	publicURL, err := s.store.PublicURL(bucket, key)
	if err != nil {
		s.logger.Errorf("public URL resolution failed (bucket=%s key=%s): %v", bucket, key, err)
		return nil, ErrURLResolution
	}

	upload := &models.Upload{
		ID:          uuid.NewString(),
		UserID:      identity,
		FileName:    fileName,
		Key:         key,
		Kind:        kind.String(),
		Size:        int64(len(data)),
		ContentType: contentType,
		PublicURL:   publicURL,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.uploads.Insert(ctx, upload); err != nil {
		// Object is already stored; tolerate the missing row.
		s.logger.Errorf("upload metadata insert failed (key=%s): %v", key, err)
	}

	if err := s.events.PublishUploadCreated(ctx, events.UploadCreated{
		UserID:    identity,
		Kind:      kind.String(),
		FileName:  fileName,
		Key:       key,
		Size:      upload.Size,
		PublicURL: publicURL,
		CreatedAt: upload.CreatedAt,
	}); err != nil {
		s.logger.Warnf("upload event publish failed (key=%s): %v", key, err)
	}

	return &UploadResult{FileName: fileName, FileSize: upload.Size, URL: publicURL}, nil
}

// ListUploads returns the user's uploads, newest first.
func (s *UploadService) ListUploads(ctx context.Context, identity string) ([]models.Upload, error) {
	return s.uploads.ListByUser(ctx, identity)
}
