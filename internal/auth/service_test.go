package auth

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jwulff/prompter/internal/db"
	"github.com/jwulff/prompter/internal/domain"
)

func newTestService(t *testing.T) (*Service, *db.Store) {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "auth.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewService(store, zap.NewNop()), store
}

func TestLoginDemoAccount(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	user, err := svc.Login(ctx, LoginRequest{Email: " Test@Test.com ", Password: DemoPassword})
	require.NoError(t, err)
	assert.Equal(t, DemoUser, user)

	current, err := store.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, DemoUser, *current)
}

func TestLoginValidation(t *testing.T) {
	svc, _ := newTestService(t)
	tests := []struct {
		name string
		req  LoginRequest
		want error
	}{
		{"empty", LoginRequest{}, ErrMissingFields},
		{"no password", LoginRequest{Email: DemoEmail}, ErrMissingFields},
		{"bad email", LoginRequest{Email: "nope", Password: "x"}, ErrInvalidEmail},
		{"wrong password", LoginRequest{Email: DemoEmail, Password: "hunter2"}, ErrInvalidCredentials},
		{"unknown user", LoginRequest{Email: "who@example.com", Password: "x"}, ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSignUpThenLogin(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	user, err := svc.SignUp(ctx, SignUpRequest{
		Name:            "  Ana Reader ",
		Email:           "Ana@Example.com",
		Password:        "s3cret",
		ConfirmPassword: "s3cret",
		AgreeToTerms:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Reader", user.Name)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.NotEmpty(t, user.ID)

	acct, err := store.FindAccount(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.NotEqual(t, "s3cret", acct.PasswordHash)

	require.NoError(t, svc.Logout(ctx))
	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	again, err := svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, user, again)

	_, err = svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUpValidationOrder(t *testing.T) {
	svc, _ := newTestService(t)
	valid := SignUpRequest{Name: "A", Email: "a@example.com", Password: "p", ConfirmPassword: "p", AgreeToTerms: true}

	tests := []struct {
		name   string
		mutate func(*SignUpRequest)
		want   error
	}{
		{"missing name", func(r *SignUpRequest) { r.Name = " " }, ErrMissingFields},
		{"missing confirm and terms", func(r *SignUpRequest) { r.ConfirmPassword = ""; r.AgreeToTerms = false }, ErrMissingFields},
		{"bad email", func(r *SignUpRequest) { r.Email = "a@" }, ErrInvalidEmail},
		{"password too long", func(r *SignUpRequest) {
			r.Password = strings.Repeat("p", 80)
			r.ConfirmPassword = r.Password
		}, ErrPasswordTooLong},
		{"multibyte password too long", func(r *SignUpRequest) {
			r.Password = strings.Repeat("é", 40)
			r.ConfirmPassword = r.Password
		}, ErrPasswordTooLong},
		{"too long before mismatch", func(r *SignUpRequest) { r.Password = strings.Repeat("p", 80) }, ErrPasswordTooLong},
		{"mismatch", func(r *SignUpRequest) { r.ConfirmPassword = "q" }, ErrPasswordMismatch},
		{"mismatch before terms", func(r *SignUpRequest) { r.ConfirmPassword = "q"; r.AgreeToTerms = false }, ErrPasswordMismatch},
		{"terms", func(r *SignUpRequest) { r.AgreeToTerms = false }, ErrTermsNotAccepted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := svc.SignUp(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSignUpDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	req := SignUpRequest{Name: "A", Email: "a@example.com", Password: "p", ConfirmPassword: "p", AgreeToTerms: true}

	_, err := svc.SignUp(ctx, req)
	require.NoError(t, err)
	_, err = svc.SignUp(ctx, req)
	assert.ErrorIs(t, err, db.ErrAccountExists)

	req.Email = DemoEmail
	_, err = svc.SignUp(ctx, req)
	assert.ErrorIs(t, err, db.ErrAccountExists)
}

func TestForgotPassword(t *testing.T) {
	svc, _ := newTestService(t)
	assert.NoError(t, svc.ForgotPassword(context.Background(), "ana@example.com"))
	assert.ErrorIs(t, svc.ForgotPassword(context.Background(), ""), ErrMissingFields)
	assert.ErrorIs(t, svc.ForgotPassword(context.Background(), "ana"), ErrInvalidEmail)
}

type brokenStore struct{}

var errIO = errors.New("io")

func (brokenStore) CurrentSession(context.Context) (*domain.User, error) {
	return nil, errIO
}

func (brokenStore) SetCurrentSession(context.Context, domain.User) error {
	return errIO
}

func (brokenStore) ClearSession(context.Context) error {
	return errIO
}

func (brokenStore) FindAccount(context.Context, string) (*domain.Account, error) {
	return nil, errIO
}

func (brokenStore) AddAccount(context.Context, domain.Account) error {
	return errIO
}

func TestStoreFailuresAreGeneric(t *testing.T) {
	svc := NewService(brokenStore{}, zap.NewNop())

	_, err := svc.Login(context.Background(), LoginRequest{Email: DemoEmail, Password: DemoPassword})
	require.Error(t, err)
	assert.Equal(t, "Operation failed", Message(err))

	err = svc.Logout(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Operation failed", Message(err))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "Please fill in all fields", Message(ErrMissingFields))
	assert.Equal(t, "Passwords do not match", Message(ErrPasswordMismatch))
	assert.Equal(t, "Password must be at most 72 bytes", Message(ErrPasswordTooLong))
	assert.Equal(t, "Please agree to the Terms & Conditions", Message(ErrTermsNotAccepted))
	assert.Equal(t, "Invalid email or password", Message(ErrInvalidCredentials))
}

func TestSignUpLongestPassword(t *testing.T) {
	svc, _ := newTestService(t)
	pw := strings.Repeat("p", maxPasswordBytes)

	_, err := svc.SignUp(context.Background(), SignUpRequest{
		Name: "A", Email: "long@example.com", Password: pw, ConfirmPassword: pw, AgreeToTerms: true,
	})
	require.NoError(t, err)
}
