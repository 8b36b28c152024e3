package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/salesdesk/app/models"
	"github.com/shashiranjanraj/salesdesk/app/repositories/repotest"
	"github.com/shashiranjanraj/salesdesk/app/services"
)

func item(p *models.Product, qty int) services.OrderItemInput {
	return services.OrderItemInput{ID: p.ID.Hex(), Quantity: qty}
}

func TestOrderTotalSumsEveryLine(t *testing.T) {
	f := newFixture(t)
	alice, ctx := f.seller(t, "alice@example.com")
	c := f.client(t, ctx, "a1@corp.io")
	a := f.product(t, "A", 10, 10.00)
	b := f.product(t, "B", 10, 5.00)

	o, err := f.svc.Orders.Create(ctx, services.OrderInput{
		Client: c.ID.Hex(),
		Items:  []services.OrderItemInput{item(a, 2), item(b, 1)},
	})
	require.NoError(t, err)

	assert.Equal(t, 25.00, o.Total)
	assert.Equal(t, models.StatusPending, o.Status)
	assert.Equal(t, alice.ID, o.Seller)
	assert.Equal(t, c.ID, o.Client)
	assert.False(t, o.Date.IsZero())
	assert.Equal(t, 8, f.stores.Products.Stock(a.ID))
	assert.Equal(t, 9, f.stores.Products.Stock(b.ID))
	assert.Equal(t, []string{services.EventOrderCreated}, f.events.events)
}

func TestOrderTotalRoundsToCents(t *testing.T) {
	f := newFixture(t)
	_, ctx := f.seller(t, "alice@example.com")
	c := f.client(t, ctx, "a1@corp.io")
	p := f.product(t, "Pen", 10, 0.1)

	o, err := f.svc.Orders.Create(ctx, services.OrderInput{
		Client: c.ID.Hex(),
		Items:  []services.OrderItemInput{item(p, 3)},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.3, o.Total)
}

func TestOutOfStockLeavesStockUntouched(t *testing.T) {
	f := newFixture(t)
	_, ctx := f.seller(t, "alice@example.com")
	c := f.client(t, ctx, "a1@corp.io")
	a := f.product(t, "Keyboard", 5, 20)
	b := f.product(t, "Monitor", 1, 200)

	_, err := f.svc.Orders.Create(ctx, services.OrderInput{
		Client: c.ID.Hex(),
		Items:  []services.OrderItemInput{item(a, 3), item(b, 2)},
	})
	requireKind(t, services.KindOutOfStock, err)
	assert.Equal(t, "Not enough Monitor in stock", err.Error())

	assert.Equal(t, 5, f.stores.Products.Stock(a.ID))
	assert.Equal(t, 1, f.stores.Products.Stock(b.ID))
	assert.Empty(t, f.events.events)
}

func TestOrderUnknownProductRollsBack(t *testing.T) {
	f := newFixture(t)
	_, ctx := f.seller(t, "alice@example.com")
	c := f.client(t, ctx, "a1@corp.io")
	a := f.product(t, "Keyboard", 5, 20)

	_, err := f.svc.Orders.Create(ctx, services.OrderInput{
		Client: c.ID.Hex(),
		Items: []services.OrderItemInput{
			item(a, 1),
			{ID: primitive.NewObjectID().Hex(), Quantity: 1},
		},
	})
	requireKind(t, services.KindNotFound, err)
	assert.Equal(t, "Product not found", err.Error())
	assert.Equal(t, 5, f.stores.Products.Stock(a.ID))
}

func TestNewOrderGuards(t *testing.T) {
	f := newFixture(t)
	_, aliceCtx := f.seller(t, "alice@example.com")
	_, bobCtx := f.seller(t, "bob@example.com")
	c := f.client(t, aliceCtx, "a1@corp.io")
	p := f.product(t, "Pen", 10, 1)

	_, err := f.svc.Orders.Create(bobCtx, services.OrderInput{
		Client: primitive.NewObjectID().Hex(),
		Items:  []services.OrderItemInput{item(p, 1)},
	})
	requireKind(t, services.KindNotFound, err)

	_, err = f.svc.Orders.Create(bobCtx, services.OrderInput{
		Client: c.ID.Hex(),
		Items:  []services.OrderItemInput{item(p, 1)},
	})
	requireKind(t, services.KindNotAuthorized, err)

	_, err = f.svc.Orders.Create(aliceCtx, services.OrderInput{Client: c.ID.Hex()})
	requireKind(t, services.KindInvalid, err)

	_, err = f.svc.Orders.Create(aliceCtx, services.OrderInput{
		Client: c.ID.Hex(),
		Items:  []services.OrderItemInput{item(p, 0)},
	})
	requireKind(t, services.KindInvalid, err)

	assert.Equal(t, 10, f.stores.Products.Stock(p.ID))
}

func TestUpdateOrderMovesReservation(t *testing.T) {
	f := newFixture(t)
	_, ctx := f.seller(t, "alice@example.com")
	c1 := f.client(t, ctx, "a1@corp.io")
	c2 := f.client(t, ctx, "a2@corp.io")
	a := f.product(t, "A", 5, 10)
	b := f.product(t, "B", 5, 4)

	o, err := f.svc.Orders.Create(ctx, services.OrderInput{
		Client: c1.ID.Hex(),
		Items:  []services.OrderItemInput{item(a, 2), item(b, 1)},
	})
	require.NoError(t, err)

	updated, err := f.svc.Orders.Update(ctx, o.ID.Hex(), services.OrderInput{
		Client: c2.ID.Hex(),
		Items:  []services.OrderItemInput{item(a, 5)},
		Status: models.StatusCompleted,
	})
	require.NoError(t, err)

	assert.Equal(t, 50.0, updated.Total)
	assert.Equal(t, c2.ID, updated.Client)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, 0, f.stores.Products.Stock(a.ID))
	assert.Equal(t, 5, f.stores.Products.Stock(b.ID), "lines dropped from the order go back to stock")
	assert.Equal(t, []string{services.EventOrderCreated, services.EventOrderUpdated}, f.events.events)
}

func TestUpdateOrderFailureRestoresPreviousReservation(t *testing.T) {
	f := newFixture(t)
	_, ctx := f.seller(t, "alice@example.com")
	c := f.client(t, ctx, "a1@corp.io")
	a := f.product(t, "A", 5, 10)
	b := f.product(t, "B", 1, 4)

	o, err := f.svc.Orders.Create(ctx, services.OrderInput{
		Client: c.ID.Hex(),
		Items:  []services.OrderItemInput{item(a, 2)},
		Status: models.StatusCompleted,
	})
	require.NoError(t, err)

	_, err = f.svc.Orders.Update(ctx, o.ID.Hex(), services.OrderInput{
		Client: c.ID.Hex(),
		Items:  []services.OrderItemInput{item(a, 4), item(b, 3)},
	})
	requireKind(t, services.KindOutOfStock, err)

	assert.Equal(t, 3, f.stores.Products.Stock(a.ID))
	assert.Equal(t, 1, f.stores.Products.Stock(b.ID))

	kept, err := f.svc.Orders.Get(ctx, o.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 20.0, kept.Total)

	keepStatus, err := f.svc.Orders.Update(ctx, o.ID.Hex(), services.OrderInput{
		Client: c.ID.Hex(),
		Items:  []services.OrderItemInput{item(a, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, keepStatus.Status, "status is kept when omitted")
}

// drainingProducts empties a product the moment another reservation fails,
// the way a concurrent order would claim units freed by an update.
type drainingProducts struct {
	*repotest.Products
	failOn, drain primitive.ObjectID
}

func (p *drainingProducts) Reserve(ctx context.Context, id primitive.ObjectID, qty int) (bool, error) {
	ok, err := p.Products.Reserve(ctx, id, qty)
	if !ok && err == nil && id == p.failOn {
		_ = p.Products.Adjust(ctx, p.drain, -p.Products.Stock(p.drain))
	}
	return ok, err
}

func TestUpdateOrderRestoreNeverOversells(t *testing.T) {
	f := newFixture(t)
	_, ctx := f.seller(t, "alice@example.com")
	c := f.client(t, ctx, "a1@corp.io")
	a := f.product(t, "A", 5, 10)
	b := f.product(t, "B", 1, 4)

	o, err := f.svc.Orders.Create(ctx, services.OrderInput{
		Client: c.ID.Hex(),
		Items:  []services.OrderItemInput{item(a, 2)},
	})
	require.NoError(t, err)

	svc := services.New(services.Deps{
		Users:    f.stores.Users,
		Products: &drainingProducts{Products: f.stores.Products, failOn: b.ID, drain: a.ID},
		Clients:  f.stores.Clients,
		Orders:   f.stores.Orders,
		Issuer:   f.issuer,
		Cache:    f.cache,
		Events:   f.events,
	})
	_, err = svc.Orders.Update(ctx, o.ID.Hex(), services.OrderInput{
		Client: c.ID.Hex(),
		Items:  []services.OrderItemInput{item(b, 3)},
	})
	requireKind(t, services.KindOutOfStock, err)

	assert.Equal(t, 0, f.stores.Products.Stock(a.ID), "stock must not go negative")
	assert.Equal(t, 1, f.stores.Products.Stock(b.ID))

	kept, err := f.svc.Orders.Get(ctx, o.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 20.0, kept.Total)
}

func TestUpdateOrderGuardOrder(t *testing.T) {
	f := newFixture(t)
	_, aliceCtx := f.seller(t, "alice@example.com")
	_, bobCtx := f.seller(t, "bob@example.com")
	ac := f.client(t, aliceCtx, "a1@corp.io")
	bc := f.client(t, bobCtx, "b1@corp.io")
	p := f.product(t, "Pen", 10, 1)

	o, err := f.svc.Orders.Create(aliceCtx, services.OrderInput{
		Client: ac.ID.Hex(),
		Items:  []services.OrderItemInput{item(p, 1)},
	})
	require.NoError(t, err)
	in := services.OrderInput{Items: []services.OrderItemInput{item(p, 1)}}

	in.Client = ac.ID.Hex()
	_, err = f.svc.Orders.Update(bobCtx, primitive.NewObjectID().Hex(), in)
	requireKind(t, services.KindNotFound, err)
	assert.Equal(t, "Order not found", err.Error())

	in.Client = primitive.NewObjectID().Hex()
	_, err = f.svc.Orders.Update(bobCtx, o.ID.Hex(), in)
	requireKind(t, services.KindNotFound, err)
	assert.Equal(t, "Client not found", err.Error())

	// bob owns the client but not the order
	in.Client = bc.ID.Hex()
	_, err = f.svc.Orders.Update(bobCtx, o.ID.Hex(), in)
	requireKind(t, services.KindNotAuthorized, err)

	// alice owns the order but not the client
	_, err = f.svc.Orders.Update(aliceCtx, o.ID.Hex(), in)
	requireKind(t, services.KindNotAuthorized, err)

	assert.Equal(t, 9, f.stores.Products.Stock(p.ID))
}

func TestRemoveOrderKeepsStock(t *testing.T) {
	f := newFixture(t)
	_, aliceCtx := f.seller(t, "alice@example.com")
	_, bobCtx := f.seller(t, "bob@example.com")
	c := f.client(t, aliceCtx, "a1@corp.io")
	p := f.product(t, "Pen", 10, 1)

	o, err := f.svc.Orders.Create(aliceCtx, services.OrderInput{
		Client: c.ID.Hex(),
		Items:  []services.OrderItemInput{item(p, 4)},
	})
	require.NoError(t, err)

	_, err = f.svc.Orders.Remove(bobCtx, o.ID.Hex())
	requireKind(t, services.KindNotAuthorized, err)

	msg, err := f.svc.Orders.Remove(aliceCtx, o.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Order with id: "+o.ID.Hex()+" successfully removed.", msg)
	assert.Equal(t, 6, f.stores.Products.Stock(p.ID))

	_, err = f.svc.Orders.Get(aliceCtx, o.ID.Hex())
	requireKind(t, services.KindNotFound, err)
}

func TestOrderListsAreScoped(t *testing.T) {
	f := newFixture(t)
	_, aliceCtx := f.seller(t, "alice@example.com")
	_, bobCtx := f.seller(t, "bob@example.com")
	ac := f.client(t, aliceCtx, "a1@corp.io")
	bc := f.client(t, bobCtx, "b1@corp.io")
	p := f.product(t, "Pen", 10, 1)

	for _, tc := range []struct {
		ctx    context.Context
		client *models.Client
		status models.OrderStatus
	}{
		{aliceCtx, ac, models.StatusCompleted},
		{aliceCtx, ac, ""},
		{bobCtx, bc, models.StatusCompleted},
	} {
		_, err := f.svc.Orders.Create(tc.ctx, services.OrderInput{
			Client: tc.client.ID.Hex(),
			Items:  []services.OrderItemInput{item(p, 1)},
			Status: tc.status,
		})
		require.NoError(t, err)
	}

	mine, err := f.svc.Orders.Mine(aliceCtx)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	done, err := f.svc.Orders.ByStatus(aliceCtx, models.StatusCompleted)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, ac.ID, done[0].Client)

	_, err = f.svc.Orders.ByStatus(context.Background(), models.StatusCompleted)
	requireKind(t, services.KindNotAuthorized, err)
}
