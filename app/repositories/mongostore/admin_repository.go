package mongostore

import (
	"context"

	"quill/app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AdminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(coll *mongo.Collection) *AdminRepository {
	return &AdminRepository{coll: coll}
}

// Create relies on the unique index on user to reject a second record.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	_, err := r.coll.InsertOne(ctx, admin)
	return translate(err)
}

func (r *AdminRepository) GetByUserID(ctx context.Context, userID string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&admin); err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

func (r *AdminRepository) List(ctx context.Context) ([]*models.Admin, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, translate(err)
	}
	admins := []*models.Admin{}
	if err := cur.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}
