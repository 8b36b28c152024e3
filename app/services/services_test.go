package services_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/salesdesk/app/models"
	"github.com/shashiranjanraj/salesdesk/app/repositories/repotest"
	"github.com/shashiranjanraj/salesdesk/app/services"
	"github.com/shashiranjanraj/salesdesk/pkg/auth"
)

const secret = "test-secret"

// memCache round-trips values through JSON like the Redis cache does.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
}

func (c *memCache) Get(_ context.Context, key string, dest interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false
	}
	c.hits++
	return json.Unmarshal(raw, dest) == nil
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) Publish(name string, _ interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, name)
}

type fixture struct {
	svc    *services.Services
	stores *repotest.Stores
	cache  *memCache
	events *recorder
	issuer *auth.Issuer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		stores: repotest.New(),
		cache:  &memCache{data: map[string][]byte{}},
		events: &recorder{},
		issuer: auth.NewIssuer(secret),
	}
	f.svc = services.New(services.Deps{
		Users:    f.stores.Users,
		Products: f.stores.Products,
		Clients:  f.stores.Clients,
		Orders:   f.stores.Orders,
		Issuer:   f.issuer,
		TokenTTL: "24h",
		Cache:    f.cache,
		CacheTTL: time.Minute,
		Events:   f.events,
	})
	return f
}

// seller registers a user and returns a context authenticated as them.
func (f *fixture) seller(t *testing.T, email string) (*models.User, context.Context) {
	t.Helper()
	u, err := f.svc.Users.Register(context.Background(), services.UserInput{
		Name: "Seller", Surname: email, Email: email, Password: "secret1",
	})
	require.NoError(t, err)
	return u, as(u.ID)
}

func as(id primitive.ObjectID) context.Context {
	return auth.WithIdentity(context.Background(), &auth.Claims{Identity: auth.Identity{UserID: id.Hex()}})
}

func (f *fixture) product(t *testing.T, name string, stock int, price float64) *models.Product {
	t.Helper()
	p, err := f.svc.Products.Create(context.Background(), services.ProductInput{Name: name, Stock: stock, Price: price})
	require.NoError(t, err)
	return p
}

func (f *fixture) client(t *testing.T, ctx context.Context, email string) *models.Client {
	t.Helper()
	c, err := f.svc.Clients.Create(ctx, services.ClientInput{
		Name: "Client", Surname: "C", Company: "Corp", Email: email,
	})
	require.NoError(t, err)
	return c
}

func requireKind(t *testing.T, want services.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, want.Code(), services.KindOf(err).Code(), "error: %v", err)
}
