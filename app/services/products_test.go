package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/salesdesk/app/services"
)

func TestProductLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.product(t, "Laptop", 5, 999.5)

	got, err := f.svc.Products.Get(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Laptop", got.Name)

	updated, err := f.svc.Products.Update(ctx, p.ID.Hex(), services.ProductInput{Name: "Laptop Pro", Stock: 0, Price: 1200})
	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro", updated.Name)
	assert.Equal(t, 0, updated.Stock)

	msg, err := f.svc.Products.Remove(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Product with id: "+p.ID.Hex()+" successfully removed.", msg)

	_, err = f.svc.Products.Get(ctx, p.ID.Hex())
	requireKind(t, services.KindNotFound, err)
	assert.Equal(t, "Product not found", err.Error())
}

func TestProductNotFoundBeforeValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Products.Update(context.Background(), "not-an-id", services.ProductInput{Stock: -1})
	requireKind(t, services.KindNotFound, err)

	_, err = f.svc.Products.Remove(context.Background(), "65f1c0ffee0000000000000a")
	requireKind(t, services.KindNotFound, err)
}

func TestProductValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Products.Create(context.Background(), services.ProductInput{Name: "", Stock: -1, Price: -2})
	requireKind(t, services.KindInvalid, err)
}

func TestProductSearch(t *testing.T) {
	f := newFixture(t)
	f.product(t, "Gaming Laptop", 1, 1)
	f.product(t, "Office Chair", 1, 1)

	found, err := f.svc.Products.Search(context.Background(), "laptop")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Gaming Laptop", found[0].Name)

	none, err := f.svc.Products.Search(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInfrastructureErrorsAreInternal(t *testing.T) {
	f := newFixture(t)
	f.stores.Products.Err = errors.New("connection reset")

	_, err := f.svc.Products.All(context.Background())
	require.Error(t, err)
	assert.Equal(t, services.KindInternal, services.KindOf(err))
}
