package service

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/wealthlog/wealthlog-backend/internal/auth"
	"github.com/wealthlog/wealthlog-backend/internal/domain"
	"github.com/wealthlog/wealthlog-backend/internal/testutil"
)

func newAuthService(userRepo *testutil.MockUserRepository) *AuthService {
	tokens := auth.NewTokenService([]byte("test-secret-at-least-32-bytes-long"), "wealthlog", "wealthlog-api", time.Hour)
	return NewAuthService(userRepo, tokens)
}

func TestRegister(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	svc := newAuthService(userRepo)

	result, err := svc.Register(RegisterInput{
		Name:     "Ada Lovelace",
		Email:    "ADA@Example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if result.User.Email != "ada@example.com" {
		t.Errorf("expected lowercased email, got %s", result.User.Email)
	}
	if result.User.Currency != domain.CurrencyUSD {
		t.Errorf("expected default currency USD, got %s", result.User.Currency)
	}
	if !result.User.IsActive {
		t.Error("new accounts should be active")
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(result.User.PasswordHash), []byte("correct-horse")); err != nil {
		t.Error("stored hash does not match the password")
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name      string
		input     RegisterInput
		wantField string
	}{
		{"empty name", RegisterInput{Name: "  ", Email: "a@b.co", Password: "longenough"}, "name"},
		{"bad email", RegisterInput{Name: "A", Email: "not-an-email", Password: "longenough"}, "email"},
		{"short password", RegisterInput{Name: "A", Email: "a@b.co", Password: "short"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAuthService(testutil.NewMockUserRepository())

			_, err := svc.Register(tt.input)
			var verrs domain.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected validation errors, got %v", err)
			}
			found := false
			for _, fe := range verrs {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a failure on field %q, got %v", tt.wantField, verrs)
			}
		})
	}
}

func TestRegisterCollectsAllFieldErrors(t *testing.T) {
	svc := newAuthService(testutil.NewMockUserRepository())

	badCurrency := domain.Currency("XYZ")
	_, err := svc.Register(RegisterInput{
		Name:     "",
		Email:    "nope",
		Password: "x",
		Currency: &badCurrency,
	})

	var verrs domain.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if len(verrs) != 4 {
		t.Errorf("expected 4 collected field errors, got %d: %v", len(verrs), verrs)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	svc := newAuthService(userRepo)

	if _, err := svc.Register(RegisterInput{Name: "A", Email: "a@b.co", Password: "longenough"}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := svc.Register(RegisterInput{Name: "B", Email: "a@b.co", Password: "longenough"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	svc := newAuthService(userRepo)

	if _, err := svc.Register(RegisterInput{Name: "A", Email: "a@b.co", Password: "longenough"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	result, err := svc.Login("A@B.co", "longenough")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
	if result.User.LastLoginAt == nil {
		t.Error("login should record last_login_at")
	}
}

func TestLoginGenericError(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	svc := newAuthService(userRepo)

	if _, err := svc.Register(RegisterInput{Name: "A", Email: "a@b.co", Password: "longenough"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Unknown email and wrong password must be indistinguishable
	_, unknownErr := svc.Login("missing@b.co", "longenough")
	_, wrongErr := svc.Login("a@b.co", "wrong-password")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	svc := newAuthService(userRepo)

	result, err := svc.Register(RegisterInput{Name: "A", Email: "a@b.co", Password: "longenough"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	result.User.IsActive = false

	if _, err := svc.Login("a@b.co", "longenough"); !errors.Is(err, domain.ErrAccountInactive) {
		t.Errorf("expected ErrAccountInactive, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	svc := newAuthService(userRepo)

	result, err := svc.Register(RegisterInput{Name: "A", Email: "a@b.co", Password: "longenough"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	newName := "Grace Hopper"
	eur := domain.CurrencyEUR
	user, err := svc.UpdateProfile(result.User.ID, UpdateProfileInput{Name: &newName, Currency: &eur})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if user.Name != "Grace Hopper" || user.Currency != domain.CurrencyEUR {
		t.Errorf("update not applied: %+v", user)
	}
}

func TestUpdateProfileInvalidCurrency(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	svc := newAuthService(userRepo)

	result, err := svc.Register(RegisterInput{Name: "A", Email: "a@b.co", Password: "longenough"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	bad := domain.Currency("BTC")
	_, err = svc.UpdateProfile(result.User.ID, UpdateProfileInput{Currency: &bad})
	var verrs domain.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Errorf("expected validation errors, got %v", err)
	}
}
