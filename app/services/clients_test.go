package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/salesdesk/app/services"
)

func TestClientsAreScopedToSeller(t *testing.T) {
	f := newFixture(t)
	alice, aliceCtx := f.seller(t, "alice@example.com")
	_, bobCtx := f.seller(t, "bob@example.com")

	a1 := f.client(t, aliceCtx, "a1@corp.io")
	a2 := f.client(t, aliceCtx, "a2@corp.io")
	f.client(t, bobCtx, "b1@corp.io")

	mine, err := f.svc.Clients.Mine(aliceCtx)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, []primitive.ObjectID{a1.ID, a2.ID}, []primitive.ObjectID{mine[0].ID, mine[1].ID})
	for _, c := range mine {
		assert.Equal(t, alice.ID, c.Seller)
	}

	_, err = f.svc.Clients.Mine(context.Background())
	requireKind(t, services.KindNotAuthorized, err)
}

func TestClientGuardOrder(t *testing.T) {
	f := newFixture(t)
	_, aliceCtx := f.seller(t, "alice@example.com")
	_, bobCtx := f.seller(t, "bob@example.com")
	c := f.client(t, aliceCtx, "a1@corp.io")
	missing := primitive.NewObjectID().Hex()

	_, err := f.svc.Clients.Get(context.Background(), missing)
	requireKind(t, services.KindNotFound, err)
	assert.Equal(t, "Client not found", err.Error())

	_, err = f.svc.Clients.Get(bobCtx, c.ID.Hex())
	requireKind(t, services.KindNotAuthorized, err)
	assert.Equal(t, "Not authorized!", err.Error())

	_, err = f.svc.Clients.Update(bobCtx, missing, services.ClientInput{})
	requireKind(t, services.KindNotFound, err)

	_, err = f.svc.Clients.Update(bobCtx, c.ID.Hex(), services.ClientInput{})
	requireKind(t, services.KindNotAuthorized, err)

	_, err = f.svc.Clients.Remove(bobCtx, c.ID.Hex())
	requireKind(t, services.KindNotAuthorized, err)

	got, err := f.svc.Clients.Get(aliceCtx, c.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
}

func TestCreateClient(t *testing.T) {
	f := newFixture(t)
	_, ctx := f.seller(t, "alice@example.com")

	_, err := f.svc.Clients.Create(context.Background(), services.ClientInput{
		Name: "X", Surname: "Y", Company: "Z", Email: "x@corp.io",
	})
	requireKind(t, services.KindNotAuthorized, err)

	phone := "  "
	c, err := f.svc.Clients.Create(ctx, services.ClientInput{
		Name: "X", Surname: "Y", Company: "Z", Email: "X@Corp.io", PhoneNumber: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "x@corp.io", c.Email)
	assert.Nil(t, c.PhoneNumber)

	_, err = f.svc.Clients.Create(ctx, services.ClientInput{
		Name: "X", Surname: "Y", Company: "Z", Email: "x@corp.io",
	})
	requireKind(t, services.KindAlreadyExists, err)
	assert.Equal(t, "Client already exists", err.Error())
}

func TestUpdateClient(t *testing.T) {
	f := newFixture(t)
	_, ctx := f.seller(t, "alice@example.com")
	c := f.client(t, ctx, "a1@corp.io")
	f.client(t, ctx, "a2@corp.io")

	phone := "555-0100"
	updated, err := f.svc.Clients.Update(ctx, c.ID.Hex(), services.ClientInput{
		Name: "New", Surname: "Name", Company: "Corp", Email: "a1@corp.io", PhoneNumber: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	require.NotNil(t, updated.PhoneNumber)
	assert.Equal(t, "555-0100", *updated.PhoneNumber)
	assert.Equal(t, c.Seller, updated.Seller)

	_, err = f.svc.Clients.Update(ctx, c.ID.Hex(), services.ClientInput{
		Name: "New", Surname: "Name", Company: "Corp", Email: "a2@corp.io",
	})
	requireKind(t, services.KindAlreadyExists, err)
}

func TestRemoveClient(t *testing.T) {
	f := newFixture(t)
	_, ctx := f.seller(t, "alice@example.com")
	c := f.client(t, ctx, "a1@corp.io")

	msg, err := f.svc.Clients.Remove(ctx, c.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Client with id: "+c.ID.Hex()+" successfully removed.", msg)

	_, err = f.svc.Clients.Remove(ctx, c.ID.Hex())
	requireKind(t, services.KindNotFound, err)
}
