package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/todolist-api/pkg/helpers"
)

func newAuthService() (*AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	jwt := helpers.NewJWTManager("test-access-secret", "test-refresh-secret", time.Hour, 24*time.Hour)
	return NewAuthService(users, jwt, nil, nil, 24*time.Hour, 720*time.Hour), users
}

func registerInput() RegisterInput {
	return RegisterInput{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
	}
}

func TestRegister(t *testing.T) {
	svc, users := newAuthService()
	ctx := context.Background()

	u, pair, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "secret123"))
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	stored, err := users.GetByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, stored.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	in := registerInput()
	in.Name = "Also Alice"
	_, _, err = svc.Register(ctx, in)
	fe, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "has already been taken", fe["email"])
}

func TestRegisterValidation(t *testing.T) {
	svc, users := newAuthService()
	ctx := context.Background()

	cases := map[string]struct {
		mutate func(*RegisterInput)
		field  string
	}{
		"missing name":           {func(in *RegisterInput) { in.Name = "" }, "name"},
		"missing email":          {func(in *RegisterInput) { in.Email = "" }, "email"},
		"short password":         {func(in *RegisterInput) { in.Password = "short"; in.PasswordConfirmation = "short" }, "password"},
		"confirmation mismatch":  {func(in *RegisterInput) { in.PasswordConfirmation = "different1" }, "password"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			in := registerInput()
			tc.mutate(&in)
			_, _, err := svc.Register(ctx, in)
			fe, ok := AsFieldErrors(err)
			require.True(t, ok, "expected field errors, got %v", err)
			assert.Contains(t, fe, tc.field)
		})
	}
	assert.Empty(t, users.byID)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	reg, _, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	u, pair, err := svc.Login(ctx, "alice@example.com", "secret123", false)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)
	assert.NotEmpty(t, pair.AccessToken)

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, claims.UserID)
	assert.NotEmpty(t, claims.SessionID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	// Wrong password and unknown email fail identically.
	_, _, err = svc.Login(ctx, "alice@example.com", "wrongpass1", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "secret123", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueTokensRotatesSessionID(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	u, first, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)
	second, err := svc.IssueTokens(ctx, u, false)
	require.NoError(t, err)

	c1, err := svc.JWT.ParseAccessToken(first.AccessToken)
	require.NoError(t, err)
	c2, err := svc.JWT.ParseAccessToken(second.AccessToken)
	require.NoError(t, err)
	assert.NotEqual(t, c1.SessionID, c2.SessionID)
}

func TestGetProfile(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	u, _, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	got, err := svc.GetProfile(u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = svc.GetProfile("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
