package mongostore

import (
	"context"

	"quill/app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(coll *mongo.Collection) *CommentRepository {
	return &CommentRepository{coll: coll}
}

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	_, err := r.coll.InsertOne(ctx, comment)
	return translate(err)
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"post": postID}, opts)
	if err != nil {
		return nil, translate(err)
	}
	comments := []*models.Comment{}
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, postID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"post": postID})
	return translate(err)
}
