package services_test

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/repositories"
	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/auth"
)

func newAuth(t *testing.T) (*services.AuthService, *auth.JWT, *fixture) {
	t.Helper()
	f := newFixture(t, nil)
	tokens := auth.NewJWT("test-secret")
	return services.NewAuthService(f.users, tokens), tokens, f
}

func signupInput() services.SignupInput {
	return services.SignupInput{
		Username: "user_" + gofakeit.LetterN(8),
		Email:    gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 12),
	}
}

func TestSignupLoginRefresh(t *testing.T) {
	ctx := context.Background()
	svc, tokens, _ := newAuth(t)
	in := signupInput()

	u, err := svc.Signup(ctx, in)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.True(t, u.IsActive, "active by default")
	assert.False(t, u.IsStaff)
	assert.NotEqual(t, in.Password, u.Password)

	pair, err := svc.Login(ctx, services.LoginInput{Username: in.Username, Password: in.Password})
	require.NoError(t, err)

	subject, err := tokens.Verify(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, in.Username, subject)

	_, err = tokens.Verify(pair.Refresh)
	assert.Error(t, err, "refresh token is not an access credential")

	access, err := svc.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)
	subject, err = tokens.Verify(access)
	require.NoError(t, err)
	assert.Equal(t, in.Username, subject)

	_, err = svc.Refresh(ctx, pair.Access)
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestSignupRejectsDuplicatesAndBadInput(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuth(t)
	in := signupInput()
	_, err := svc.Signup(ctx, in)
	require.NoError(t, err)

	dup := signupInput()
	dup.Username = in.Username
	_, err = svc.Signup(ctx, dup)
	assert.ErrorIs(t, err, services.ErrBadRequest)

	bad := signupInput()
	bad.Email = "not-an-email"
	_, err = svc.Signup(ctx, bad)
	assert.ErrorIs(t, err, services.ErrBadRequest)
}

type mockAccounts struct{ mockUsers }

func (m *mockAccounts) Exists(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockAccounts) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func TestSignupLosingUniqueRaceIsBadRequest(t *testing.T) {
	in := signupInput()
	users := new(mockAccounts)
	users.On("Exists", mock.Anything, in.Username, in.Email).Return(false, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(repositories.ErrUserExists)

	svc := services.NewAuthService(users, auth.NewJWT("test-secret"))
	_, err := svc.Signup(context.Background(), in)

	assert.ErrorIs(t, err, services.ErrBadRequest)
	assert.Equal(t, "User with the username or email already exists", services.Detail(err))
	users.AssertExpectations(t)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuth(t)
	in := signupInput()
	inactive := false
	in.IsActive = &inactive
	_, err := svc.Signup(ctx, in)
	require.NoError(t, err)

	_, err = svc.Login(ctx, services.LoginInput{Username: in.Username, Password: "wrong-password"})
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	_, err = svc.Login(ctx, services.LoginInput{Username: "nobody", Password: in.Password})
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	_, err = svc.Login(ctx, services.LoginInput{Username: in.Username, Password: in.Password})
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	assert.Equal(t, "User is inactive", services.Detail(err))
}

func TestStaffSignupCanListAll(t *testing.T) {
	ctx := context.Background()
	svc, _, f := newAuth(t)
	in := signupInput()
	in.IsStaff = true
	_, err := svc.Signup(ctx, in)
	require.NoError(t, err)

	all, err := f.svc.ListAllOrders(ctx, in.Username)
	require.NoError(t, err)
	assert.Empty(t, all)
}
