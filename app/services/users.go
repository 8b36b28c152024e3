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
	"github.com/shashiranjanraj/salesdesk/pkg/auth"
	"github.com/shashiranjanraj/salesdesk/pkg/logger"
	"github.com/shashiranjanraj/salesdesk/pkg/validate"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// UserInput registers a seller.
type UserInput struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Surname  string `json:"surname"  validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// AuthInput is a login attempt.
type AuthInput struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserService struct {
	users  UserStore
	issuer *auth.Issuer
	ttl    string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a seller account with a hashed password.
func (s *UserService) Register(ctx context.Context, in UserInput) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, Invalid(validate.Message(errs))
	}
	// The validator counts characters; bcrypt counts bytes.
	if len(in.Password) > maxPasswordBytes {
		return nil, Invalid(fmt.Sprintf("The password must be at most %d bytes.", maxPasswordBytes))
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, AlreadyExists("User")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:      strings.TrimSpace(in.Name),
		Surname:   strings.TrimSpace(in.Surname),
		Email:     in.Email,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, AlreadyExists("User")
		}
		return nil, err
	}

	logger.WithCtx(ctx).Info("user registered", "user_id", u.ID.Hex())
	return u, nil
}

// Authenticate checks the credentials and issues a token. Unknown email and
// wrong password fail identically.
func (s *UserService) Authenticate(ctx context.Context, in AuthInput) (string, error) {
	wrong := newError(KindWrongCredentials, "Wrong email or password")

	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return "", Invalid(validate.Message(errs))
	}

	u, err := s.users.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return "", err
	}
	if u == nil || !auth.CheckPassword(u.Password, in.Password) {
		return "", wrong
	}

	return s.issue(u)
}

// IssueFor issues a token for the user with email without checking a
// password. It backs the operator CLI.
func (s *UserService) IssueFor(ctx context.Context, email string) (string, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", NotFound("User")
	}
	return s.issue(u)
}

func (s *UserService) issue(u *models.User) (string, error) {
	return s.issuer.CreateToken(auth.Identity{
		UserID:  u.ID.Hex(),
		Email:   u.Email,
		Name:    u.Name,
		Surname: u.Surname,
	}, s.ttl)
}

// Current resolves a token to the live user record.
func (s *UserService) Current(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		return nil, newError(KindNotAuthorized, "Invalid or expired token")
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, newError(KindNotAuthorized, "Invalid or expired token")
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NotFound("User")
	}
	return u, nil
}
