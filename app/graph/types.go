package graph

import (
	"time"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/salesdesk/app/models"
)

// idField resolves an ObjectID of the source struct to its hex form. Lists
// coming from the report lookups hold values rather than pointers, so both
// are accepted.
func idField[T any](get func(*T) primitive.ObjectID) *graphql.Field {
	return &graphql.Field{
		Type: graphql.ID,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			src, ok := source[T](p.Source)
			if !ok {
				return nil, nil
			}
			id := get(src)
			if id.IsZero() {
				return nil, nil
			}
			return id.Hex(), nil
		},
	}
}

// timeField renders a timestamp as RFC 3339.
func timeField[T any](get func(*T) time.Time) *graphql.Field {
	return &graphql.Field{
		Type: graphql.String,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			src, ok := source[T](p.Source)
			if !ok {
				return nil, nil
			}
			t := get(src)
			if t.IsZero() {
				return nil, nil
			}
			return t.UTC().Format(time.RFC3339), nil
		},
	}
}

func source[T any](v interface{}) (*T, bool) {
	switch s := v.(type) {
	case *T:
		return s, s != nil
	case T:
		return &s, true
	}
	return nil, false
}

var orderStatusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "OrderStatus",
	Values: graphql.EnumValueConfigMap{
		string(models.StatusPending):   &graphql.EnumValueConfig{Value: models.StatusPending},
		string(models.StatusCompleted): &graphql.EnumValueConfig{Value: models.StatusCompleted},
		string(models.StatusCancelled): &graphql.EnumValueConfig{Value: models.StatusCancelled},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":        idField(func(u *models.User) primitive.ObjectID { return u.ID }),
		"name":      &graphql.Field{Type: graphql.String},
		"surname":   &graphql.Field{Type: graphql.String},
		"email":     &graphql.Field{Type: graphql.String},
		"createdAt": timeField(func(u *models.User) time.Time { return u.CreatedAt }),
	},
})

var tokenType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Token",
	Fields: graphql.Fields{
		"token": &graphql.Field{Type: graphql.String},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":        idField(func(p *models.Product) primitive.ObjectID { return p.ID }),
		"name":      &graphql.Field{Type: graphql.String},
		"stock":     &graphql.Field{Type: graphql.Int},
		"price":     &graphql.Field{Type: graphql.Float},
		"createdAt": timeField(func(p *models.Product) time.Time { return p.CreatedAt }),
	},
})

var clientType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Client",
	Fields: graphql.Fields{
		"id":        idField(func(c *models.Client) primitive.ObjectID { return c.ID }),
		"name":      &graphql.Field{Type: graphql.String},
		"surname":   &graphql.Field{Type: graphql.String},
		"email":     &graphql.Field{Type: graphql.String},
		"company":   &graphql.Field{Type: graphql.String},
		"createdAt": timeField(func(c *models.Client) time.Time { return c.CreatedAt }),
		"phoneNumber": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				c, ok := source[models.Client](p.Source)
				if !ok || c.PhoneNumber == nil {
					return nil, nil
				}
				return *c.PhoneNumber, nil
			},
		},
		"seller": idField(func(c *models.Client) primitive.ObjectID { return c.Seller }),
	},
})

// lineItemType is named Orders to keep the published schema stable.
var lineItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Orders",
	Fields: graphql.Fields{
		"id":       idField(func(li *models.LineItem) primitive.ObjectID { return li.Product }),
		"quantity": &graphql.Field{Type: graphql.Int},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id":     idField(func(o *models.Order) primitive.ObjectID { return o.ID }),
		"order":  &graphql.Field{Type: graphql.NewList(lineItemType)},
		"total":  &graphql.Field{Type: graphql.Float},
		"client": idField(func(o *models.Order) primitive.ObjectID { return o.Client }),
		"seller": idField(func(o *models.Order) primitive.ObjectID { return o.Seller }),
		"date":   timeField(func(o *models.Order) time.Time { return o.Date }),
		"status": &graphql.Field{Type: orderStatusEnum},
	},
})

var topClientsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TopClients",
	Fields: graphql.Fields{
		"total":   &graphql.Field{Type: graphql.Float},
		"clients": &graphql.Field{Type: graphql.NewList(clientType)},
	},
})

var topSellersType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TopSellers",
	Fields: graphql.Fields{
		"total":   &graphql.Field{Type: graphql.Float},
		"sellers": &graphql.Field{Type: graphql.NewList(userType)},
	},
})

// ─── Inputs ───────────────────────────────────────────────────────────────────

var userInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UserInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"surname":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var authInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "AuthInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var productInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"stock": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"price": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var clientInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ClientInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"surname":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"company":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"phoneNumber": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var orderProductInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"id":       &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"quantity": &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

// total is accepted for compatibility with existing clients and ignored; the
// server always computes it.
var orderInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"order":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(orderProductInput))},
		"total":  &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"client": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		"status": &graphql.InputObjectFieldConfig{Type: orderStatusEnum},
	},
})
