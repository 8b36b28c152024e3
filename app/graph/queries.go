package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/salesdesk/app/models"
	"github.com/shashiranjanraj/salesdesk/app/services"
)

func idArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
}

func queryFields(svc *services.Services) graphql.Fields {
	return graphql.Fields{
		// Users
		"getUser": &graphql.Field{
			Type: userType,
			Args: graphql.FieldConfigArgument{
				"token": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: resolver("getUser", func(p graphql.ResolveParams) (interface{}, error) {
				return svc.Users.Current(p.Context, stringArg(p, "token"))
			}),
		},

		// Products
		"getProducts": &graphql.Field{
			Type: graphql.NewList(productType),
			Resolve: resolver("getProducts", func(p graphql.ResolveParams) (interface{}, error) {
				return svc.Products.All(p.Context)
			}),
		},
		"getProduct": &graphql.Field{
			Type: productType,
			Args: idArgs(),
			Resolve: resolver("getProduct", func(p graphql.ResolveParams) (interface{}, error) {
				return svc.Products.Get(p.Context, stringArg(p, "id"))
			}),
		},

		// Clients. getClients is scoped to the caller like getSellerClients.
		"getClients": &graphql.Field{
			Type: graphql.NewList(clientType),
			Resolve: resolver("getClients", func(p graphql.ResolveParams) (interface{}, error) {
				return svc.Clients.Mine(p.Context)
			}),
		},
		"getSellerClients": &graphql.Field{
			Type: graphql.NewList(clientType),
			Resolve: resolver("getSellerClients", func(p graphql.ResolveParams) (interface{}, error) {
				return svc.Clients.Mine(p.Context)
			}),
		},
		"getClient": &graphql.Field{
			Type: clientType,
			Args: idArgs(),
			Resolve: resolver("getClient", func(p graphql.ResolveParams) (interface{}, error) {
				return svc.Clients.Get(p.Context, stringArg(p, "id"))
			}),
		},

		// Orders. getOrders is scoped to the caller like getOrdersBySeller.
		"getOrders": &graphql.Field{
			Type: graphql.NewList(orderType),
			Resolve: resolver("getOrders", func(p graphql.ResolveParams) (interface{}, error) {
				return svc.Orders.Mine(p.Context)
			}),
		},
		"getOrdersBySeller": &graphql.Field{
			Type: graphql.NewList(orderType),
			Resolve: resolver("getOrdersBySeller", func(p graphql.ResolveParams) (interface{}, error) {
				return svc.Orders.Mine(p.Context)
			}),
		},
		"getOrderById": &graphql.Field{
			Type: orderType,
			Args: idArgs(),
			Resolve: resolver("getOrderById", func(p graphql.ResolveParams) (interface{}, error) {
				return svc.Orders.Get(p.Context, stringArg(p, "id"))
			}),
		},
		"getOrderByStatus": &graphql.Field{
			Type: graphql.NewList(orderType),
			Args: graphql.FieldConfigArgument{
				"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(orderStatusEnum)},
			},
			Resolve: resolver("getOrderByStatus", func(p graphql.ResolveParams) (interface{}, error) {
				status, _ := p.Args["status"].(models.OrderStatus)
				return svc.Orders.ByStatus(p.Context, status)
			}),
		},

		// Reports
		"bestClients": &graphql.Field{
			Type: graphql.NewList(topClientsType),
			Resolve: resolver("bestClients", func(p graphql.ResolveParams) (interface{}, error) {
				return svc.Reports.BestClients(p.Context)
			}),
		},
		"bestSellers": &graphql.Field{
			Type: graphql.NewList(topSellersType),
			Resolve: resolver("bestSellers", func(p graphql.ResolveParams) (interface{}, error) {
				return svc.Reports.BestSellers(p.Context)
			}),
		},
		"searchProduct": &graphql.Field{
			Type: graphql.NewList(productType),
			Args: graphql.FieldConfigArgument{
				"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: resolver("searchProduct", func(p graphql.ResolveParams) (interface{}, error) {
				return svc.Products.Search(p.Context, stringArg(p, "query"))
			}),
		},
	}
}
