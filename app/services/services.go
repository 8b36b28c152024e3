// Package services holds the business rules of the sales desk: validation,
// ownership checks, stock reservation and order totals. Resolvers call into
// it and repositories sit behind the store interfaces.
package services

import (
	"time"

	"github.com/shashiranjanraj/salesdesk/pkg/auth"
)

// Report cache keys, invalidated by every order mutation.
const (
	KeyBestClients = "report:best_clients"
	KeyBestSellers = "report:best_sellers"
)

// Deps is everything the services need.
type Deps struct {
	Users    UserStore
	Products ProductStore
	Clients  ClientStore
	Orders   OrderStore

	Issuer   *auth.Issuer
	TokenTTL string

	// Cache and Events are optional.
	Cache    Cache
	CacheTTL time.Duration
	Events   Publisher
}

// Services groups the per-entity services.
type Services struct {
	Users    *UserService
	Products *ProductService
	Clients  *ClientService
	Orders   *OrderService
	Reports  *ReportService
}

// New wires the services together.
func New(d Deps) *Services {
	if d.Cache == nil {
		d.Cache = noCache{}
	}
	if d.Events == nil {
		d.Events = noPublisher{}
	}
	if d.TokenTTL == "" {
		d.TokenTTL = "24h"
	}

	return &Services{
		Users:    &UserService{users: d.Users, issuer: d.Issuer, ttl: d.TokenTTL},
		Products: &ProductService{products: d.Products},
		Clients:  &ClientService{clients: d.Clients, cache: d.Cache},
		Orders: &OrderService{
			orders:   d.Orders,
			clients:  d.Clients,
			products: d.Products,
			cache:    d.Cache,
			events:   d.Events,
		},
		Reports: &ReportService{orders: d.Orders, cache: d.Cache, ttl: d.CacheTTL},
	}
}
