//go:build integration

package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/salesdesk/app/models"
	"github.com/shashiranjanraj/salesdesk/app/repositories"
	"github.com/shashiranjanraj/salesdesk/pkg/database"
)

// setupTestDB starts a MongoDB container and returns a fresh database with
// indexes applied.
func setupTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("Failed to start MongoDB container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, db, err := database.Connect(ctx, uri, "salesdesk_test", 30*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	_, err = repositories.EnsureIndexes(ctx, db)
	require.NoError(t, err)
	return db
}

func TestMongoRepositories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	users := repositories.NewUserRepository(db)
	products := repositories.NewProductRepository(db)
	clients := repositories.NewClientRepository(db)
	orders := repositories.NewOrderRepository(db)

	t.Run("users are unique by email", func(t *testing.T) {
		u := &models.User{Name: "Ada", Surname: "Lovelace", Email: "ada@example.com", Password: "x", CreatedAt: time.Now()}
		require.NoError(t, users.Create(ctx, u))
		assert.False(t, u.ID.IsZero())

		err := users.Create(ctx, &models.User{Email: "ada@example.com"})
		assert.ErrorIs(t, err, repositories.ErrDuplicate)

		got, err := users.FindByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		missing, err := users.FindByID(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("reserve never oversells", func(t *testing.T) {
		p := &models.Product{Name: "Laptop Pro", Stock: 3, Price: 999.99}
		require.NoError(t, products.Create(ctx, p))

		ok, err := products.Reserve(ctx, p.ID, 2)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = products.Reserve(ctx, p.ID, 2)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, products.Adjust(ctx, p.ID, 2))
		got, err := products.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Stock)
	})

	t.Run("text search", func(t *testing.T) {
		require.NoError(t, products.Create(ctx, &models.Product{Name: "Gaming Mouse", Stock: 5, Price: 49}))

		found, err := products.Search(ctx, "laptop")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Laptop Pro", found[0].Name)
	})

	t.Run("client update unsets phone and detects duplicates", func(t *testing.T) {
		seller := primitive.NewObjectID()
		phone := "555-0100"
		a := &models.Client{Name: "A", Email: "a@corp.io", Company: "Corp", PhoneNumber: &phone, Seller: seller}
		b := &models.Client{Name: "B", Email: "b@corp.io", Company: "Corp", Seller: seller}
		require.NoError(t, clients.Create(ctx, a))
		require.NoError(t, clients.Create(ctx, b))

		a.PhoneNumber = nil
		updated, err := clients.Update(ctx, a)
		require.NoError(t, err)
		assert.Nil(t, updated.PhoneNumber)

		b.Email = "a@corp.io"
		_, err = clients.Update(ctx, b)
		assert.ErrorIs(t, err, repositories.ErrDuplicate)

		mine, err := clients.FindBySeller(ctx, seller)
		require.NoError(t, err)
		assert.Len(t, mine, 2)
	})

	t.Run("top clients only count completed orders", func(t *testing.T) {
		seller := primitive.NewObjectID()
		c := &models.Client{Name: "Top", Email: "top@corp.io", Seller: seller}
		require.NoError(t, clients.Create(ctx, c))

		for _, o := range []*models.Order{
			{Client: c.ID, Seller: seller, Total: 100, Status: models.StatusCompleted},
			{Client: c.ID, Seller: seller, Total: 50, Status: models.StatusCompleted},
			{Client: c.ID, Seller: seller, Total: 999, Status: models.StatusPending},
		} {
			require.NoError(t, orders.Create(ctx, o))
		}

		rows, err := orders.TopClients(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 150.0, rows[0].Total)
		require.Len(t, rows[0].Clients, 1)
		assert.Equal(t, "top@corp.io", rows[0].Clients[0].Email)

		pending, err := orders.FindBySellerAndStatus(ctx, seller, models.StatusPending)
		require.NoError(t, err)
		assert.Len(t, pending, 1)
	})
}
