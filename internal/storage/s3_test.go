package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURLWithCustomEndpoint(t *testing.T) {
	s := &S3Store{endpoint: "https://storage.example.com/"}

	url, err := s.PublicURL("voice-uploads", "jane@example.com/abc-song.mp3")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example.com/voice-uploads/jane@example.com/abc-song.mp3", url)
}

func TestPublicURLWithRegion(t *testing.T) {
	s := &S3Store{region: "us-east-1"}

	url, err := s.PublicURL("lyrics-uploads", "jane@example.com/abc-verse.txt")
	require.NoError(t, err)
	assert.Equal(t, "https://lyrics-uploads.s3.us-east-1.amazonaws.com/jane@example.com/abc-verse.txt", url)
}

func TestPublicURLUnresolvable(t *testing.T) {
	s := &S3Store{}

	_, err := s.PublicURL("voice-uploads", "key")
	assert.ErrorIs(t, err, ErrNoPublicURL)
}
