package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wealthlog/wealthlog-backend/internal/auth"
	"github.com/wealthlog/wealthlog-backend/internal/domain"
)

// bcryptCost balances hashing latency against brute-force resistance
const bcryptCost = 10

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService handles registration, login and profile management
type AuthService struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput holds the input for creating an account
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Currency *domain.Currency
}

// AuthResult pairs an authenticated user with a fresh token
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Register creates a new account and issues a token for it
func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	var verrs domain.ValidationErrors

	name := strings.TrimSpace(input.Name)
	if name == "" {
		verrs = verrs.Add("name", domain.ErrNameRequired)
	} else if len(name) > domain.MaxNameLength {
		verrs = verrs.Add("name", domain.ErrNameTooLong)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailPattern.MatchString(email) {
		verrs = verrs.Add("email", domain.ErrInvalidEmail)
	}

	if len(input.Password) < domain.MinPasswordLength {
		verrs = verrs.Add("password", domain.ErrPasswordTooShort)
	}

	currency := domain.CurrencyUSD
	if input.Currency != nil {
		if !domain.ValidCurrency(*input.Currency) {
			verrs = verrs.Add("currency", domain.ErrInvalidCurrency)
		} else {
			currency = *input.Currency
		}
	}

	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(&domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Currency:     currency,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Login authenticates credentials and issues a token
// Unknown email and wrong password map to the same error
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}

	now := time.Now().UTC()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	return s.issueToken(user)
}

// GetProfile returns the user's profile
func (s *AuthService) GetProfile(userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateProfileInput holds the updatable profile fields
type UpdateProfileInput struct {
	Name     *string
	Currency *domain.Currency
}

// UpdateProfile applies partial updates to the user's profile
func (s *AuthService) UpdateProfile(userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	var verrs domain.ValidationErrors
	data := &domain.UpdateUserData{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			verrs = verrs.Add("name", domain.ErrNameRequired)
		} else if len(name) > domain.MaxNameLength {
			verrs = verrs.Add("name", domain.ErrNameTooLong)
		} else {
			data.Name = &name
		}
	}

	if input.Currency != nil {
		if !domain.ValidCurrency(*input.Currency) {
			verrs = verrs.Add("currency", domain.ErrInvalidCurrency)
		} else {
			data.Currency = input.Currency
		}
	}

	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	if data.Name == nil && data.Currency == nil {
		return s.userRepo.GetByID(userID)
	}

	return s.userRepo.Update(userID, data)
}

func (s *AuthService) issueToken(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(s.tokens.TTL()),
	}, nil
}
