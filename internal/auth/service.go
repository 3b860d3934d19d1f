// Package auth implements local sign-in. There is no backend: a fixed demonstration account is
// always accepted, and sign-ups are stored as bcrypt-hashed local accounts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwulff/prompter/internal/db"
	"github.com/jwulff/prompter/internal/domain"
)

// Demonstration credentials accepted without sign-up.
const (
	DemoEmail    = "test@test.com"
	DemoPassword = "password"
)

var DemoUser = domain.User{ID: "1", Name: "Test User", Email: DemoEmail}

var (
	ErrMissingFields      = errors.New("missing fields")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrTermsNotAccepted   = errors.New("terms not accepted")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AccountStore is the slice of the persistence gateway auth needs.
type AccountStore interface {
	CurrentSession(ctx context.Context) (*domain.User, error)
	SetCurrentSession(ctx context.Context, u domain.User) error
	ClearSession(ctx context.Context) error
	FindAccount(ctx context.Context, email string) (*domain.Account, error)
	AddAccount(ctx context.Context, acct domain.Account) error
}

type LoginRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type SignUpRequest struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,bcryptlen"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	AgreeToTerms    bool   `validate:"required"`
}

type forgotRequest struct {
	Email string `validate:"required,email"`
}

// Service signs users in and out.
type Service struct {
	store    AccountStore
	log      *zap.Logger
	validate *validator.Validate
}

// maxPasswordBytes is the longest input bcrypt hashes.
const maxPasswordBytes = 72

func NewService(store AccountStore, log *zap.Logger) *Service {
	return &Service{store: store, log: log, validate: newValidator()}
}

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	}); err != nil {
		panic(err)
	}
	return v
}

// Current returns the signed-in user, or nil.
func (s *Service) Current(ctx context.Context) (*domain.User, error) {
	return s.store.CurrentSession(ctx)
}

// Login checks credentials and records the session.
func (s *Service) Login(ctx context.Context, req LoginRequest) (domain.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.check(req); err != nil {
		return domain.User{}, err
	}

	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		s.log.Info("login rejected", zap.String("email", req.Email))
		return domain.User{}, err
	}
	if err := s.store.SetCurrentSession(ctx, user); err != nil {
		return domain.User{}, fmt.Errorf("store session: %w", err)
	}
	s.log.Info("signed in", zap.String("user_id", user.ID))
	return user, nil
}

func (s *Service) authenticate(ctx context.Context, email, password string) (domain.User, error) {
	if email == DemoEmail && password == DemoPassword {
		return DemoUser, nil
	}
	acct, err := s.store.FindAccount(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("find account: %w", err)
	}
	if acct == nil {
		return domain.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return acct.User, nil
}

// SignUp registers a local account and signs it in.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (domain.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := s.check(req); err != nil {
		return domain.User{}, err
	}
	if req.Email == DemoEmail {
		return domain.User{}, fmt.Errorf("add %s: %w", req.Email, db.ErrAccountExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{ID: uuid.NewString(), Name: req.Name, Email: req.Email}
	if err := s.store.AddAccount(ctx, domain.Account{User: user, PasswordHash: string(hash)}); err != nil {
		return domain.User{}, err
	}
	if err := s.store.SetCurrentSession(ctx, user); err != nil {
		return domain.User{}, fmt.Errorf("store session: %w", err)
	}
	s.log.Info("account created", zap.String("user_id", user.ID))
	return user, nil
}

// ForgotPassword validates the address and records a simulated reset request.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	req := forgotRequest{Email: normalizeEmail(email)}
	if err := s.check(req); err != nil {
		return err
	}
	s.log.Info("password reset requested", zap.String("email", req.Email))
	return nil
}

// Logout clears the stored session.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info("signed out")
	return nil
}

// check runs struct validation and reduces the failures to the single most relevant error:
// missing fields, then email format, then password length, then password mismatch, then terms.
func (s *Service) check(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var missing, badEmail, tooLong, mismatch, terms bool
	for _, fe := range fieldErrs {
		switch {
		case fe.Field() == "AgreeToTerms":
			terms = true
		case fe.Tag() == "required":
			missing = true
		case fe.Tag() == "email":
			badEmail = true
		case fe.Tag() == "bcryptlen":
			tooLong = true
		case fe.Tag() == "eqfield":
			mismatch = true
		}
	}
	switch {
	case missing:
		return ErrMissingFields
	case badEmail:
		return ErrInvalidEmail
	case tooLong:
		return ErrPasswordTooLong
	case mismatch:
		return ErrPasswordMismatch
	case terms:
		return ErrTermsNotAccepted
	}
	return err
}

// Message is the text shown to the user for an auth error.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingFields):
		return "Please fill in all fields"
	case errors.Is(err, ErrInvalidEmail):
		return "Please enter a valid email address"
	case errors.Is(err, ErrPasswordTooLong):
		return "Password must be at most 72 bytes"
	case errors.Is(err, ErrPasswordMismatch):
		return "Passwords do not match"
	case errors.Is(err, ErrTermsNotAccepted):
		return "Please agree to the Terms & Conditions"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, db.ErrAccountExists):
		return "An account with this email already exists"
	default:
		return "Operation failed"
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
