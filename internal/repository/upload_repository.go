package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rahularya002/make-songs/internal/models"
)

// UploadRepository is the metadata store for upload provenance.
type UploadRepository interface {
	Insert(ctx context.Context, u *models.Upload) error
	ListByUser(ctx context.Context, userID string) ([]models.Upload, error)
}

type mongoUploadRepo struct {
	col *mongo.Collection
}

func NewMongoUploadRepo(db *mongo.Database, collection string) UploadRepository {
	col := db.Collection(collection)
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return &mongoUploadRepo{col: col}
}

func (r *mongoUploadRepo) Insert(ctx context.Context, u *models.Upload) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, u)
	return err
}

func (r *mongoUploadRepo) ListByUser(ctx context.Context, userID string) ([]models.Upload, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var uploads []models.Upload
	if err := cur.All(ctx, &uploads); err != nil {
		return nil, err
	}
	return uploads, nil
}
