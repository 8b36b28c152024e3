package seeders_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/salesdesk/app/repositories/repotest"
	"github.com/shashiranjanraj/salesdesk/app/services"
	"github.com/shashiranjanraj/salesdesk/database/seeders"
	"github.com/shashiranjanraj/salesdesk/pkg/auth"
)

func TestRunAllIsIdempotent(t *testing.T) {
	stores := repotest.New()
	svc := services.New(services.Deps{
		Users:    stores.Users,
		Products: stores.Products,
		Clients:  stores.Clients,
		Orders:   stores.Orders,
		Issuer:   auth.NewIssuer("seed-secret"),
	})
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, seeders.RunAll(ctx, svc, &out))
	require.NoError(t, seeders.RunAll(ctx, svc, &out), "second run must skip existing records")
	assert.Contains(t, out.String(), "Running seeder: users")

	products, err := svc.Products.All(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 4)

	token, err := svc.Users.Authenticate(ctx, services.AuthInput{Email: seeders.DemoEmail, Password: seeders.DemoPassword})
	require.NoError(t, err)
	seller, err := svc.Users.Current(ctx, token)
	require.NoError(t, err)

	clients, err := stores.Clients.FindBySeller(ctx, seller.ID)
	require.NoError(t, err)
	assert.Len(t, clients, 2)
}
