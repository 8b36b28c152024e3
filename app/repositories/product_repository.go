package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/salesdesk/app/models"
	"github.com/shashiranjanraj/salesdesk/pkg/database"
	"github.com/shashiranjanraj/salesdesk/pkg/metrics"
)

// SearchLimit caps text search results.
const SearchLimit = 10

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(database.Products)}
}

// All returns the whole catalogue.
func (r *ProductRepository) All(ctx context.Context) ([]*models.Product, error) {
	return findMany[models.Product](ctx, r.col, bson.M{})
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return findOne[models.Product](ctx, r.col, bson.M{"_id": id})
}

// Create inserts p and fills in its ID.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	p.ID = primitive.NewObjectID()
	if _, err := insertOne(ctx, r.col, p); err != nil {
		p.ID = primitive.NilObjectID
		return err
	}
	return nil
}

// Update replaces the editable fields of the product with p.ID.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	return updateOne[models.Product](ctx, r.col, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"name":  p.Name,
		"stock": p.Stock,
		"price": p.Price,
	}})
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return deleteByID(ctx, r.col, id)
}

// Search runs a $text query over product names.
func (r *ProductRepository) Search(ctx context.Context, query string) ([]*models.Product, error) {
	return findMany[models.Product](ctx, r.col,
		bson.M{"$text": bson.M{"$search": query}},
		options.Find().SetLimit(SearchLimit),
	)
}

// Reserve takes qty units of stock in a single conditional update. It
// reports false, without touching the document, when fewer than qty remain.
func (r *ProductRepository) Reserve(ctx context.Context, id primitive.ObjectID, qty int) (bool, error) {
	defer metrics.ObserveDBQuery(r.col.Name(), "reserve", time.Now())

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return false, fmt.Errorf("%s: reserve: %w", r.col.Name(), err)
	}
	return res.ModifiedCount == 1, nil
}

// Adjust adds delta (which may be negative) to the stock unconditionally.
func (r *ProductRepository) Adjust(ctx context.Context, id primitive.ObjectID, delta int) error {
	defer metrics.ObserveDBQuery(r.col.Name(), "adjust", time.Now())

	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"stock": delta}}); err != nil {
		return fmt.Errorf("%s: adjust: %w", r.col.Name(), err)
	}
	return nil
}
