package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/salesdesk/app/models"
	"github.com/shashiranjanraj/salesdesk/pkg/database"
)

type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(database.Clients)}
}

func (r *ClientRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	return findOne[models.Client](ctx, r.col, bson.M{"_id": id})
}

func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	return findOne[models.Client](ctx, r.col, bson.M{"email": email})
}

// FindBySeller returns every client owned by seller.
func (r *ClientRepository) FindBySeller(ctx context.Context, seller primitive.ObjectID) ([]*models.Client, error) {
	return findMany[models.Client](ctx, r.col, bson.M{"seller": seller})
}

func (r *ClientRepository) Create(ctx context.Context, c *models.Client) error {
	c.ID = primitive.NewObjectID()
	if _, err := insertOne(ctx, r.col, c); err != nil {
		c.ID = primitive.NilObjectID
		return err
	}
	return nil
}

// Update replaces the contact fields of the client with c.ID. The owner
// and creation time never change.
func (r *ClientRepository) Update(ctx context.Context, c *models.Client) (*models.Client, error) {
	update := bson.M{
		"$set": bson.M{
			"name":    c.Name,
			"surname": c.Surname,
			"email":   c.Email,
			"company": c.Company,
		},
	}
	if c.PhoneNumber != nil {
		update["$set"].(bson.M)["phoneNumber"] = *c.PhoneNumber
	} else {
		update["$unset"] = bson.M{"phoneNumber": ""}
	}
	return updateOne[models.Client](ctx, r.col, bson.M{"_id": c.ID}, update)
}

func (r *ClientRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return deleteByID(ctx, r.col, id)
}
