package media

import "errors"

// Kind selects the validation rules and storage bucket for an upload.
type Kind string

const (
	KindVoice    Kind = "voice"
	KindLyrics   Kind = "lyrics"
	KindDialogue Kind = "dialogue"
)

var ErrUnknownKind = errors.New("unknown media kind")

// maxUploadSize is the per-file ceiling for every kind.
const maxUploadSize = 10 * 1024 * 1024

var audioTypes = map[string]bool{
	"audio/mpeg":     true, // MP3
	"audio/mp4":      true,
	"audio/wav":      true,
	"audio/x-wav":    true,
	"audio/ogg":      true,
	"audio/flac":     true,
	"audio/aac":      true,
	"audio/webm":     true,
	"audio/x-m4a":    true,
	"audio/x-aiff":   true,
	"audio/x-ms-wma": true,
}

var lyricsTypes = map[string]bool{
	"text/plain":         true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ParseKind maps a route segment to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindVoice, KindLyrics, KindDialogue:
		return Kind(s), nil
	}
	return "", ErrUnknownKind
}

// Bucket is the object-store bucket for this kind.
func (k Kind) Bucket() string {
	return string(k) + "-uploads"
}

// MaxSize is the largest accepted file in bytes.
func (k Kind) MaxSize() int64 {
	return maxUploadSize
}

// Allows reports whether the declared content type is accepted for this kind.
func (k Kind) Allows(contentType string) bool {
	if k == KindLyrics {
		return lyricsTypes[contentType]
	}
	return audioTypes[contentType]
}

// TypeErrorMessage is the user-facing rejection message for an unsupported type.
func (k Kind) TypeErrorMessage() string {
	if k == KindLyrics {
		return "Invalid file type. Please upload TXT, DOC, or DOCX files."
	}
	return "Invalid file type. Please upload a supported audio file."
}

func (k Kind) String() string { return string(k) }
