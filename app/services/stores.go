package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/salesdesk/app/models"
)

// UserStore persists users.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

// ProductStore persists products and their stock.
type ProductStore interface {
	All(ctx context.Context) ([]*models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	Search(ctx context.Context, query string) ([]*models.Product, error)
	// Reserve takes qty units if at least qty remain, atomically.
	Reserve(ctx context.Context, id primitive.ObjectID, qty int) (bool, error)
	// Adjust adds delta to the stock unconditionally.
	Adjust(ctx context.Context, id primitive.ObjectID, delta int) error
}

// ClientStore persists clients.
type ClientStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error)
	FindByEmail(ctx context.Context, email string) (*models.Client, error)
	FindBySeller(ctx context.Context, seller primitive.ObjectID) ([]*models.Client, error)
	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, c *models.Client) (*models.Client, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// OrderStore persists orders and runs the reports.
type OrderStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindBySeller(ctx context.Context, seller primitive.ObjectID) ([]*models.Order, error)
	FindBySellerAndStatus(ctx context.Context, seller primitive.ObjectID, status models.OrderStatus) ([]*models.Order, error)
	Create(ctx context.Context, o *models.Order) error
	Replace(ctx context.Context, o *models.Order) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	TopClients(ctx context.Context) ([]*models.TopClient, error)
	TopSellers(ctx context.Context) ([]*models.TopSeller, error)
}

// Cache stores report results. *cache.Redis satisfies it.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Publisher broadcasts domain events. *event.Bus satisfies it.
type Publisher interface {
	Publish(name string, payload interface{})
}

type noCache struct{}

func (noCache) Get(context.Context, string, interface{}) bool                 { return false }
func (noCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (noCache) Del(context.Context, ...string) error                          { return nil }

type noPublisher struct{}

func (noPublisher) Publish(string, interface{}) {}
