package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailTaken          = errors.New("email already exists")
	ErrMissingFields       = errors.New("missing required fields")
	ErrInvalidConfirmToken = errors.New("invalid confirmation token")
)

type Service struct {
	repo            UserRepository
	expirationHours int
}

func NewService(repo UserRepository, expirationHours int) *Service {
	return &Service{repo: repo, expirationHours: expirationHours}
}

// Register creates an unconfirmed principal. The confirmation token would
// be delivered by the mailer collaborator; it is returned on the user so
// tests can complete the flow.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:           name,
		Email:          email,
		Password:       string(hashedPassword),
		EmailConfirmed: false,
		ConfirmToken:   uuid.New().String(),
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(password),
	)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateToken(user.ID.Hex(), user.Email, s.expirationHours)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// ConfirmEmail flips the principal to confirmed and burns the token.
func (s *Service) ConfirmEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidConfirmToken
	}

	user, err := s.repo.FindByConfirmToken(ctx, token)
	if err != nil {
		return ErrInvalidConfirmToken
	}

	return s.repo.SetEmailConfirmed(ctx, user.ID)
}
