package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/salesdesk/app/models"
	"github.com/shashiranjanraj/salesdesk/pkg/database"
	"github.com/shashiranjanraj/salesdesk/pkg/metrics"
)

// ReportLimit is the number of rows the top-N reports keep.
const ReportLimit = 10

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(database.Orders)}
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return findOne[models.Order](ctx, r.col, bson.M{"_id": id})
}

// FindBySeller returns the orders placed by seller.
func (r *OrderRepository) FindBySeller(ctx context.Context, seller primitive.ObjectID) ([]*models.Order, error) {
	return findMany[models.Order](ctx, r.col, bson.M{"seller": seller})
}

// FindBySellerAndStatus narrows FindBySeller to one status.
func (r *OrderRepository) FindBySellerAndStatus(ctx context.Context, seller primitive.ObjectID, status models.OrderStatus) ([]*models.Order, error) {
	return findMany[models.Order](ctx, r.col, bson.M{"seller": seller, "status": status})
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	o.ID = primitive.NewObjectID()
	if _, err := insertOne(ctx, r.col, o); err != nil {
		o.ID = primitive.NilObjectID
		return err
	}
	return nil
}

// Replace overwrites the line items, client, status and total of o.ID.
func (r *OrderRepository) Replace(ctx context.Context, o *models.Order) (*models.Order, error) {
	return updateOne[models.Order](ctx, r.col, bson.M{"_id": o.ID}, bson.M{"$set": bson.M{
		"order":  o.Items,
		"client": o.Client,
		"status": o.Status,
		"total":  o.Total,
	}})
}

func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return deleteByID(ctx, r.col, id)
}

// TopClients ranks clients by the summed total of their completed orders.
func (r *OrderRepository) TopClients(ctx context.Context) ([]*models.TopClient, error) {
	return aggregate[models.TopClient](ctx, r.col, topPipeline("client", database.Clients, "clients", ReportLimit))
}

// TopSellers ranks sellers by the summed total of their completed orders.
func (r *OrderRepository) TopSellers(ctx context.Context) ([]*models.TopSeller, error) {
	return aggregate[models.TopSeller](ctx, r.col, topPipeline("seller", database.Users, "sellers", ReportLimit))
}

// topPipeline groups completed orders by groupField, joins the grouped
// document from the from collection into as, keeps limit groups and then
// sorts them by total. The limit runs before the sort, so the rows kept are
// the first groups the server emits rather than the global best.
func topPipeline(groupField, from, as string, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: models.StatusCompleted}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + groupField},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$total"}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: from},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: as},
		}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}}}},
	}
}

func aggregate[T any](ctx context.Context, col *mongo.Collection, pipeline mongo.Pipeline) ([]*T, error) {
	defer metrics.ObserveDBQuery(col.Name(), "aggregate", time.Now())

	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: aggregate: %w", col.Name(), err)
	}

	rows := []*T{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%s: decode aggregate: %w", col.Name(), err)
	}
	return rows, nil
}
