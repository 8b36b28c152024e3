package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/salesdesk/app/models"
	"github.com/shashiranjanraj/salesdesk/pkg/logger"
	"github.com/shashiranjanraj/salesdesk/pkg/metrics"
	"github.com/shashiranjanraj/salesdesk/pkg/validate"
)

// Order events published on the bus. The payload is the *models.Order.
const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
	EventOrderRemoved = "order.removed"
)

// OrderItemInput is one requested line.
type OrderItemInput struct {
	ID       string `json:"id"       validate:"required,objectid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// OrderInput creates or replaces an order. A total sent by the client is
// ignored; it is always computed from the catalogue prices.
type OrderInput struct {
	Items  []OrderItemInput   `json:"order"`
	Client string             `json:"client" validate:"required"`
	Status models.OrderStatus `json:"status" validate:"nullable,in=PENDING,COMPLETED,CANCELLED"`
}

type OrderService struct {
	orders   OrderStore
	clients  ClientStore
	products ProductStore
	cache    Cache
	events   Publisher
}

func orderOwner(o *models.Order) primitive.ObjectID    { return o.Seller }
func clientSeller(c *models.Client) primitive.ObjectID { return c.Seller }

// Mine returns the caller's orders.
func (s *OrderService) Mine(ctx context.Context) ([]*models.Order, error) {
	seller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return s.orders.FindBySeller(ctx, seller)
}

// ByStatus returns the caller's orders in status.
func (s *OrderService) ByStatus(ctx context.Context, status models.OrderStatus) ([]*models.Order, error) {
	seller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, Invalid(fmt.Sprintf("Unknown order status %q.", status))
	}
	return s.orders.FindBySellerAndStatus(ctx, seller, status)
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return Owned(ctx, "Order", id, s.orders.FindByID, orderOwner)
}

// Create reserves stock for every line, computes the total and stores the
// order. Either every line is reserved or none is.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*models.Order, error) {
	client, err := Owned(ctx, "Client", in.Client, s.clients.FindByID, clientSeller)
	if err != nil {
		return nil, err
	}
	if err := validateOrder(in); err != nil {
		return nil, err
	}

	items, total, err := s.reserve(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	o := &models.Order{
		Items:  items,
		Total:  total,
		Client: client.ID,
		Seller: client.Seller,
		Status: in.Status,
		Date:   time.Now().UTC(),
	}
	if o.Status == "" {
		o.Status = models.StatusPending
	}

	if err := s.orders.Create(ctx, o); err != nil {
		s.release(ctx, items)
		return nil, err
	}

	logger.WithCtx(ctx).Info("order placed", "order_id", o.ID.Hex(), "total", o.Total, "lines", len(items))
	s.changed(ctx, EventOrderCreated, o)
	return o, nil
}

// Update replaces the lines, client and status of an order. The previous
// reservation is returned to stock before the new one is taken; if the new
// one fails the previous reservation is taken again, as far as stock allows.
// Units claimed by a concurrent order in between are logged as a shortfall
// and stock never goes below zero.
func (s *OrderService) Update(ctx context.Context, id string, in OrderInput) (*models.Order, error) {
	current, err := lookup(ctx, "Order", id, s.orders.FindByID)
	if err != nil {
		return nil, err
	}
	client, err := lookup(ctx, "Client", in.Client, s.clients.FindByID)
	if err != nil {
		return nil, err
	}
	if _, err := authorize(ctx, current.Seller); err != nil {
		return nil, err
	}
	if _, err := authorize(ctx, client.Seller); err != nil {
		return nil, err
	}
	if err := validateOrder(in); err != nil {
		return nil, err
	}

	s.release(ctx, current.Items)

	items, total, err := s.reserve(ctx, in.Items)
	if err != nil {
		s.retake(ctx, current.Items)
		return nil, err
	}

	next := &models.Order{
		ID:     current.ID,
		Items:  items,
		Total:  total,
		Client: client.ID,
		Status: in.Status,
	}
	if next.Status == "" {
		next.Status = current.Status
	}

	updated, err := s.orders.Replace(ctx, next)
	if err == nil && updated == nil {
		err = NotFound("Order")
	}
	if err != nil {
		s.release(ctx, items)
		s.retake(ctx, current.Items)
		return nil, err
	}

	logger.WithCtx(ctx).Info("order updated", "order_id", id, "total", updated.Total)
	s.changed(ctx, EventOrderUpdated, updated)
	return updated, nil
}

// Remove deletes an order. Reserved stock stays taken.
func (s *OrderService) Remove(ctx context.Context, id string) (string, error) {
	o, err := Owned(ctx, "Order", id, s.orders.FindByID, orderOwner)
	if err != nil {
		return "", err
	}
	if _, err := s.orders.Delete(ctx, o.ID); err != nil {
		return "", err
	}

	logger.WithCtx(ctx).Info("order removed", "order_id", id)
	s.changed(ctx, EventOrderRemoved, o)
	return fmt.Sprintf("Order with id: %s successfully removed.", id), nil
}

func validateOrder(in OrderInput) error {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return Invalid(validate.Message(errs))
	}
	if len(in.Items) == 0 {
		return Invalid("The order must contain at least one item.")
	}
	for i, item := range in.Items {
		if errs := validate.Struct(item); validate.HasErrors(errs) {
			return Invalid(fmt.Sprintf("Item %d: %s", i+1, validate.Message(errs)))
		}
	}
	return nil
}

// reserve takes stock for each line in order and sums price × quantity.
// On failure every line already taken is returned.
func (s *OrderService) reserve(ctx context.Context, lines []OrderItemInput) ([]models.LineItem, float64, error) {
	items := make([]models.LineItem, 0, len(lines))
	total := decimal.Zero

	fail := func(err error) ([]models.LineItem, float64, error) {
		s.release(ctx, items)
		return nil, 0, err
	}

	for _, line := range lines {
		p, err := lookup(ctx, "Product", line.ID, s.products.FindByID)
		if err != nil {
			return fail(err)
		}

		ok, err := s.products.Reserve(ctx, p.ID, line.Quantity)
		if err != nil {
			return fail(err)
		}
		if !ok {
			metrics.StockRejections.Inc()
			return fail(newError(KindOutOfStock, "Not enough %s in stock", p.Name))
		}

		items = append(items, models.LineItem{Product: p.ID, Quantity: line.Quantity})
		total = total.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return items, total.Round(2).InexactFloat64(), nil
}

// release returns items to stock. It runs even if ctx was cancelled.
func (s *OrderService) release(ctx context.Context, items []models.LineItem) {
	bg := context.WithoutCancel(ctx)
	for _, item := range items {
		if err := s.products.Adjust(bg, item.Product, item.Quantity); err != nil {
			logger.WithCtx(ctx).Error("stock compensation failed",
				"product_id", item.Product.Hex(),
				"delta", item.Quantity,
				"error", err,
			)
		}
	}
}

// retake reserves items again after a failed update. It runs even if ctx
// was cancelled.
func (s *OrderService) retake(ctx context.Context, items []models.LineItem) {
	bg := context.WithoutCancel(ctx)
	for _, item := range items {
		ok, err := s.products.Reserve(bg, item.Product, item.Quantity)
		switch {
		case err != nil:
			logger.WithCtx(ctx).Error("stock compensation failed",
				"product_id", item.Product.Hex(),
				"delta", -item.Quantity,
				"error", err,
			)
		case !ok:
			metrics.StockRejections.Inc()
			logger.WithCtx(ctx).Error("stock shortfall while restoring order",
				"product_id", item.Product.Hex(),
				"quantity", item.Quantity,
			)
		}
	}
}

// changed invalidates the reports and notifies subscribers.
func (s *OrderService) changed(ctx context.Context, name string, o *models.Order) {
	if err := s.cache.Del(ctx, KeyBestClients, KeyBestSellers); err != nil {
		logger.WithCtx(ctx).Warn("report cache invalidation failed", "error", err)
	}
	s.events.Publish(name, o)
}
