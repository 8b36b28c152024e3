package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shashiranjanraj/salesdesk/app/models"
	"github.com/shashiranjanraj/salesdesk/pkg/logger"
	"github.com/shashiranjanraj/salesdesk/pkg/validate"
)

// ProductInput creates or replaces a product.
type ProductInput struct {
	Name  string  `json:"name"  validate:"required,max=200"`
	Stock int     `json:"stock" validate:"gte=0"`
	Price float64 `json:"price" validate:"gte=0"`
}

type ProductService struct {
	products ProductStore
}

func (s *ProductService) All(ctx context.Context) ([]*models.Product, error) {
	return s.products.All(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return lookup(ctx, "Product", id, s.products.FindByID)
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, Invalid(validate.Message(errs))
	}

	p := &models.Product{
		Name:      strings.TrimSpace(in.Name),
		Stock:     in.Stock,
		Price:     in.Price,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	p, err := lookup(ctx, "Product", id, s.products.FindByID)
	if err != nil {
		return nil, err
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, Invalid(validate.Message(errs))
	}

	p.Name, p.Stock, p.Price = strings.TrimSpace(in.Name), in.Stock, in.Price
	updated, err := s.products.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, NotFound("Product")
	}
	return updated, nil
}

func (s *ProductService) Remove(ctx context.Context, id string) (string, error) {
	p, err := lookup(ctx, "Product", id, s.products.FindByID)
	if err != nil {
		return "", err
	}
	if _, err := s.products.Delete(ctx, p.ID); err != nil {
		return "", err
	}

	logger.WithCtx(ctx).Info("product removed", "product_id", id)
	return fmt.Sprintf("Product with id: %s successfully removed.", id), nil
}

// Search runs a full-text search over product names.
func (s *ProductService) Search(ctx context.Context, query string) ([]*models.Product, error) {
	if strings.TrimSpace(query) == "" {
		return []*models.Product{}, nil
	}
	return s.products.Search(ctx, query)
}
