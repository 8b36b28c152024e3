package seeders

import (
	"context"

	"github.com/shashiranjanraj/salesdesk/app/services"
	"github.com/shashiranjanraj/salesdesk/pkg/auth"
)

// DemoEmail and DemoPassword log into the seeded seller account.
const (
	DemoEmail    = "demo@salesdesk.local"
	DemoPassword = "demo-password"
)

var demoProducts = []services.ProductInput{
	{Name: "Standing Desk", Stock: 40, Price: 499.00},
	{Name: "Ergonomic Chair", Stock: 60, Price: 289.50},
	{Name: "Monitor Arm", Stock: 120, Price: 79.99},
	{Name: "USB-C Dock", Stock: 75, Price: 149.00},
}

var demoClients = []services.ClientInput{
	{Name: "Grace", Surname: "Hopper", Company: "Navy Labs", Email: "grace@navylabs.example"},
	{Name: "Alan", Surname: "Turing", Company: "Bletchley Ltd", Email: "alan@bletchley.example"},
}

func init() {
	Register("users", seedUsers)
	Register("products", seedProducts)
	Register("clients", seedClients)
}

func seedUsers(ctx context.Context, svc *services.Services) error {
	_, err := svc.Users.Register(ctx, services.UserInput{
		Name:     "Demo",
		Surname:  "Seller",
		Email:    DemoEmail,
		Password: DemoPassword,
	})
	return skipExisting(err)
}

func seedProducts(ctx context.Context, svc *services.Services) error {
	existing, err := svc.Products.All(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, p := range existing {
		have[p.Name] = true
	}

	for _, in := range demoProducts {
		if have[in.Name] {
			continue
		}
		if _, err := svc.Products.Create(ctx, in); err != nil {
			return err
		}
	}
	return nil
}

// seedClients assigns the demo clients to the demo seller.
func seedClients(ctx context.Context, svc *services.Services) error {
	token, err := svc.Users.Authenticate(ctx, services.AuthInput{Email: DemoEmail, Password: DemoPassword})
	if err != nil {
		return err
	}
	seller, err := svc.Users.Current(ctx, token)
	if err != nil {
		return err
	}
	ctx = auth.WithIdentity(ctx, &auth.Claims{Identity: auth.Identity{
		UserID:  seller.ID.Hex(),
		Email:   seller.Email,
		Name:    seller.Name,
		Surname: seller.Surname,
	}})

	for _, in := range demoClients {
		if _, err := svc.Clients.Create(ctx, in); skipExisting(err) != nil {
			return err
		}
	}
	return nil
}

func skipExisting(err error) error {
	if services.KindOf(err) == services.KindAlreadyExists {
		return nil
	}
	return err
}
