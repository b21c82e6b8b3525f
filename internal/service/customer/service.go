package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"techfix-shop/internal/domain"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

type customerRepo interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

// Service handles customer signup/login flows.
type Service struct {
	repo        customerRepo
	tokens      *TokenManager
	passwordMin int
}

func New(repo customerRepo, tokens *TokenManager) *Service {
	return &Service{
		repo:        repo,
		tokens:      tokens,
		passwordMin: 8,
	}
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// Signup registers a new customer account.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.Customer, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, domain.Required("email")
	}
	if !strings.Contains(email, "@") {
		return nil, domain.Invalid("email", "not an email address")
	}
	password := strings.TrimSpace(in.Password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, domain.Customer{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         domain.RoleCustomer,
	})
}

// Login validates credentials and returns the customer plus a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Customer, string, error) {
	c, err := s.repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(c)
	if err != nil {
		return nil, "", err
	}
	return c, token, nil
}

// LookupByToken returns the customer a valid token was issued to.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.Customer, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	c, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return c, nil
}

// Get fetches a customer by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// TokenTTLSeconds exposes the token lifetime in seconds.
func (s *Service) TokenTTLSeconds() int {
	return int(s.tokens.ttl / time.Second)
}

func validatePassword(p string, min int) error {
	if len(p) < min {
		return domain.Invalid("password", fmt.Sprintf("must be at least %d characters", min))
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return domain.Invalid("password", "must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number")
	}
	return nil
}
