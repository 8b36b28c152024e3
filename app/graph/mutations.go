package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/salesdesk/app/services"
)

func inputArgs(input *graphql.InputObject, withID bool) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{
		"input": &graphql.ArgumentConfig{Type: input},
	}
	if withID {
		args["id"] = &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}
	}
	return args
}

func mutationFields(svc *services.Services) graphql.Fields {
	return graphql.Fields{
		// Users
		"newUser": &graphql.Field{
			Type: userType,
			Args: inputArgs(userInput, false),
			Resolve: resolver("newUser", func(p graphql.ResolveParams) (interface{}, error) {
				var in services.UserInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				return svc.Users.Register(p.Context, in)
			}),
		},
		"authUser": &graphql.Field{
			Type: tokenType,
			Args: inputArgs(authInput, false),
			Resolve: resolver("authUser", func(p graphql.ResolveParams) (interface{}, error) {
				var in services.AuthInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				token, err := svc.Users.Authenticate(p.Context, in)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"token": token}, nil
			}),
		},

		// Products
		"newProduct": &graphql.Field{
			Type: productType,
			Args: inputArgs(productInput, false),
			Resolve: resolver("newProduct", func(p graphql.ResolveParams) (interface{}, error) {
				var in services.ProductInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				return svc.Products.Create(p.Context, in)
			}),
		},
		"updateProduct": &graphql.Field{
			Type: productType,
			Args: inputArgs(productInput, true),
			Resolve: resolver("updateProduct", func(p graphql.ResolveParams) (interface{}, error) {
				var in services.ProductInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				return svc.Products.Update(p.Context, stringArg(p, "id"), in)
			}),
		},
		"removeProduct": &graphql.Field{
			Type: graphql.String,
			Args: idArgs(),
			Resolve: resolver("removeProduct", func(p graphql.ResolveParams) (interface{}, error) {
				return svc.Products.Remove(p.Context, stringArg(p, "id"))
			}),
		},

		// Clients
		"newClient": &graphql.Field{
			Type: clientType,
			Args: inputArgs(clientInput, false),
			Resolve: resolver("newClient", func(p graphql.ResolveParams) (interface{}, error) {
				var in services.ClientInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				return svc.Clients.Create(p.Context, in)
			}),
		},
		"updateClient": &graphql.Field{
			Type: clientType,
			Args: inputArgs(clientInput, true),
			Resolve: resolver("updateClient", func(p graphql.ResolveParams) (interface{}, error) {
				var in services.ClientInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				return svc.Clients.Update(p.Context, stringArg(p, "id"), in)
			}),
		},
		"removeClient": &graphql.Field{
			Type: graphql.String,
			Args: idArgs(),
			Resolve: resolver("removeClient", func(p graphql.ResolveParams) (interface{}, error) {
				return svc.Clients.Remove(p.Context, stringArg(p, "id"))
			}),
		},

		// Orders
		"newOrder": &graphql.Field{
			Type: orderType,
			Args: inputArgs(orderInput, false),
			Resolve: resolver("newOrder", func(p graphql.ResolveParams) (interface{}, error) {
				var in services.OrderInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				return svc.Orders.Create(p.Context, in)
			}),
		},
		"updateOrder": &graphql.Field{
			Type: orderType,
			Args: inputArgs(orderInput, true),
			Resolve: resolver("updateOrder", func(p graphql.ResolveParams) (interface{}, error) {
				var in services.OrderInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				return svc.Orders.Update(p.Context, stringArg(p, "id"), in)
			}),
		},
		"removeOrder": &graphql.Field{
			Type: graphql.String,
			Args: idArgs(),
			Resolve: resolver("removeOrder", func(p graphql.ResolveParams) (interface{}, error) {
				return svc.Orders.Remove(p.Context, stringArg(p, "id"))
			}),
		},
	}
}
