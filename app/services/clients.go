package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/salesdesk/app/models"
	"github.com/shashiranjanraj/salesdesk/app/repositories"
	"github.com/shashiranjanraj/salesdesk/pkg/logger"
	"github.com/shashiranjanraj/salesdesk/pkg/validate"
)

// ClientInput creates or replaces a client record.
type ClientInput struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Surname     string  `json:"surname"     validate:"required,max=100"`
	Company     string  `json:"company"     validate:"required,max=200"`
	Email       string  `json:"email"       validate:"required,email"`
	PhoneNumber *string `json:"phoneNumber" validate:"nullable,max=50"`
}

type ClientService struct {
	clients ClientStore
	cache   Cache
}

func clientOwner(c *models.Client) primitive.ObjectID { return c.Seller }

// Mine returns the caller's clients.
func (s *ClientService) Mine(ctx context.Context) ([]*models.Client, error) {
	seller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return s.clients.FindBySeller(ctx, seller)
}

func (s *ClientService) Get(ctx context.Context, id string) (*models.Client, error) {
	return Owned(ctx, "Client", id, s.clients.FindByID, clientOwner)
}

func (s *ClientService) Create(ctx context.Context, in ClientInput) (*models.Client, error) {
	seller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	in = normalizeClient(in)
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, Invalid(validate.Message(errs))
	}

	existing, err := s.clients.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, AlreadyExists("Client")
	}

	c := &models.Client{
		Name:        in.Name,
		Surname:     in.Surname,
		Email:       in.Email,
		Company:     in.Company,
		PhoneNumber: in.PhoneNumber,
		Seller:      seller,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.clients.Create(ctx, c); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, AlreadyExists("Client")
		}
		return nil, err
	}

	logger.WithCtx(ctx).Info("client created", "client_id", c.ID.Hex(), "seller", seller.Hex())
	return c, nil
}

func (s *ClientService) Update(ctx context.Context, id string, in ClientInput) (*models.Client, error) {
	c, err := Owned(ctx, "Client", id, s.clients.FindByID, clientOwner)
	if err != nil {
		return nil, err
	}
	in = normalizeClient(in)
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, Invalid(validate.Message(errs))
	}

	if in.Email != c.Email {
		other, err := s.clients.FindByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, AlreadyExists("Client")
		}
	}

	c.Name, c.Surname, c.Email, c.Company, c.PhoneNumber = in.Name, in.Surname, in.Email, in.Company, in.PhoneNumber
	updated, err := s.clients.Update(ctx, c)
	switch {
	case errors.Is(err, repositories.ErrDuplicate):
		return nil, AlreadyExists("Client")
	case err != nil:
		return nil, err
	case updated == nil:
		return nil, NotFound("Client")
	}
	s.changed(ctx)
	return updated, nil
}

func (s *ClientService) Remove(ctx context.Context, id string) (string, error) {
	c, err := Owned(ctx, "Client", id, s.clients.FindByID, clientOwner)
	if err != nil {
		return "", err
	}
	if _, err := s.clients.Delete(ctx, c.ID); err != nil {
		return "", err
	}
	s.changed(ctx)

	logger.WithCtx(ctx).Info("client removed", "client_id", id)
	return fmt.Sprintf("Client with id: %s successfully removed.", id), nil
}

// changed drops the best-clients report, which embeds client documents.
func (s *ClientService) changed(ctx context.Context) {
	if err := s.cache.Del(ctx, KeyBestClients); err != nil {
		logger.WithCtx(ctx).Warn("report cache invalidation failed", "error", err)
	}
}

func normalizeClient(in ClientInput) ClientInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Surname = strings.TrimSpace(in.Surname)
	in.Company = strings.TrimSpace(in.Company)
	in.Email = normalizeEmail(in.Email)
	if in.PhoneNumber != nil {
		phone := strings.TrimSpace(*in.PhoneNumber)
		if phone == "" {
			in.PhoneNumber = nil
		} else {
			in.PhoneNumber = &phone
		}
	}
	return in
}
