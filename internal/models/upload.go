package models

import "time"

// Upload records the provenance of a stored object. Rows are inserted after a
// successful object write and never updated or deleted here.
type Upload struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	FileName    string    `bson:"file_name" json:"file_name"`
	Key         string    `bson:"file_path" json:"file_path"`
	Kind        string    `bson:"file_type" json:"file_type"`
	Size        int64     `bson:"file_size" json:"file_size"`
	ContentType string    `bson:"content_type" json:"content_type"`
	PublicURL   string    `bson:"public_url" json:"public_url"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
