package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rahularya002/make-songs/internal/media"
	"github.com/rahularya002/make-songs/internal/models"
)

type fakeStore struct {
	failUpload bool
	failURL    bool
	objects    map[string][]byte
	lastBucket string
	lastCT     string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Upload(_ context.Context, bucket, key, contentType string, data []byte) error {
	if s.failUpload {
		return errors.New("bucket unavailable")
	}
	s.lastBucket = bucket
	s.lastCT = contentType
	s.objects[bucket+"/"+key] = data
	return nil
}

func (s *fakeStore) PublicURL(bucket, key string) (string, error) {
	if s.failURL {
		return "", errors.New("no endpoint")
	}
	return "https://cdn.example.com/" + bucket + "/" + key, nil
}

type fakeUploadRepo struct {
	failInsert bool
	inserted   []*models.Upload
}

func (r *fakeUploadRepo) Insert(_ context.Context, u *models.Upload) error {
	if r.failInsert {
		return errors.New("metadata store down")
	}
	r.inserted = append(r.inserted, u)
	return nil
}

func (r *fakeUploadRepo) ListByUser(_ context.Context, userID string) ([]models.Upload, error) {
	var out []models.Upload
	for _, u := range r.inserted {
		if u.UserID == userID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func TestUploadSuccess(t *testing.T) {
	store := newFakeStore()
	repo := &fakeUploadRepo{}
	svc := NewUploadService(repo, store, nil, zap.NewNop().Sugar())

	data := []byte("riff riff riff")
	res, err := svc.Upload(context.Background(), "jane@example.com", media.KindVoice, "song.mp3", "audio/mpeg", data)
	require.NoError(t, err)

	assert.Equal(t, "song.mp3", res.FileName)
	assert.Equal(t, int64(len(data)), res.FileSize)
	assert.Contains(t, res.URL, "voice-uploads/jane@example.com/")
	assert.True(t, strings.HasSuffix(res.URL, "-song.mp3"))

	assert.Equal(t, "voice-uploads", store.lastBucket)
	assert.Equal(t, "audio/mpeg", store.lastCT)

	require.Len(t, repo.inserted, 1)
	row := repo.inserted[0]
	assert.Equal(t, "jane@example.com", row.UserID)
	assert.Equal(t, "song.mp3", row.FileName)
	assert.Equal(t, "voice", row.Kind)
	assert.Equal(t, int64(len(data)), row.Size)
	assert.True(t, strings.HasPrefix(row.Key, "jane@example.com/"))
	assert.Equal(t, res.URL, row.PublicURL)
}

func TestUploadKeysAreUnique(t *testing.T) {
	store := newFakeStore()
	repo := &fakeUploadRepo{}
	svc := NewUploadService(repo, store, nil, zap.NewNop().Sugar())

	_, err := svc.Upload(context.Background(), "jane@example.com", media.KindVoice, "song.mp3", "audio/mpeg", []byte("a"))
	require.NoError(t, err)
	_, err = svc.Upload(context.Background(), "jane@example.com", media.KindVoice, "song.mp3", "audio/mpeg", []byte("b"))
	require.NoError(t, err)

	require.Len(t, repo.inserted, 2)
	assert.NotEqual(t, repo.inserted[0].Key, repo.inserted[1].Key)
	// both objects remain in the bucket
	assert.Len(t, store.objects, 2)
}

func TestUploadStorageFailureIsTerminal(t *testing.T) {
	store := newFakeStore()
	store.failUpload = true
	repo := &fakeUploadRepo{}
	svc := NewUploadService(repo, store, nil, zap.NewNop().Sugar())

	_, err := svc.Upload(context.Background(), "jane@example.com", media.KindDialogue, "scene.wav", "audio/wav", []byte("x"))
	assert.ErrorIs(t, err, ErrStorageWrite)
	assert.Empty(t, repo.inserted, "metadata must not be written after a failed object write")
}

func TestUploadURLResolutionFailure(t *testing.T) {
	store := newFakeStore()
	store.failURL = true
	repo := &fakeUploadRepo{}
	svc := NewUploadService(repo, store, nil, zap.NewNop().Sugar())

	_, err := svc.Upload(context.Background(), "jane@example.com", media.KindVoice, "song.mp3", "audio/mpeg", []byte("x"))
	assert.ErrorIs(t, err, ErrURLResolution)
	assert.Empty(t, repo.inserted)
}

func TestUploadMetadataFailureIsSwallowed(t *testing.T) {
	store := newFakeStore()
	repo := &fakeUploadRepo{failInsert: true}
	svc := NewUploadService(repo, store, nil, zap.NewNop().Sugar())

	res, err := svc.Upload(context.Background(), "jane@example.com", media.KindLyrics, "verse.txt", "text/plain", []byte("la la"))
	require.NoError(t, err, "a failed metadata insert must not fail the upload")
	assert.NotEmpty(t, res.URL)
	assert.Len(t, store.objects, 1)
}
