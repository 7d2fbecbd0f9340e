package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	userstore "github.com/dalemusser/affiliatehub/internal/app/store/users"
	"github.com/dalemusser/affiliatehub/internal/app/system/apperr"
	"github.com/dalemusser/affiliatehub/internal/app/system/auth"
	"github.com/dalemusser/affiliatehub/internal/app/system/normalize"
	"github.com/dalemusser/affiliatehub/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// fakeUsers is an in-memory UserStore.
type fakeUsers struct {
	byName  map[string]models.User
	dupOnce bool
	err     error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byName: map[string]models.User{}}
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byName[username]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &u, nil
}

func (f *fakeUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	_, ok := f.byName[username]
	return ok, f.err
}

func (f *fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.byName {
		if u.Email == normalize.Email(email) {
			return true, f.err
		}
	}
	return false, f.err
}

func (f *fakeUsers) Create(_ context.Context, u models.User) (models.User, error) {
	if f.dupOnce {
		f.dupOnce = false
		return models.User{}, userstore.ErrDuplicateUser
	}
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	if len(u.Roles) == 0 {
		u.Roles = []string{userstore.DefaultRole}
	}
	f.byName[u.Username] = u
	return u, nil
}

func newService(t *testing.T, users auth.UserStore) (*auth.Service, *auth.Tokens) {
	t.Helper()
	tokens, err := auth.NewTokens("test-secret", time.Hour)
	require.NoError(t, err)
	return auth.NewService(users, tokens, zap.NewNop()).WithHashCost(bcrypt.MinCost), tokens
}

func TestService_RegisterThenLogin(t *testing.T) {
	users := newFakeUsers()
	svc, tokens := newService(t, users)
	ctx := context.Background()

	reg, err := svc.Register(ctx, auth.RegisterInput{
		Username: "jane",
		Email:    "Jane@Example.com",
		Password: "s3cret!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.AccessToken)
	assert.Equal(t, "jane", reg.User.Username)
	assert.Equal(t, []string{"user"}, reg.User.Roles)
	assert.NotEqual(t, "s3cret!", users.byName["jane"].PasswordHash)

	login, err := svc.Login(ctx, "jane", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, reg.User, login.User)

	claims, err := tokens.Parse(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.Subject)
	assert.Equal(t, "jane", claims.Username)
	assert.Equal(t, []string{"user"}, claims.Roles)
}

func TestService_RegisterKeepsRoles(t *testing.T) {
	svc, _ := newService(t, newFakeUsers())

	s, err := svc.Register(context.Background(), auth.RegisterInput{
		Username: "boss", Email: "boss@example.com", Password: "pw", Roles: []string{"admin", "user"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "user"}, s.User.Roles)
}

func TestService_RegisterConflicts(t *testing.T) {
	users := newFakeUsers()
	svc, _ := newService(t, users)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterInput{Username: "jane", Email: "jane@example.com", Password: "pw"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   auth.RegisterInput
		msg  string
	}{
		{"same username", auth.RegisterInput{Username: "jane", Email: "other@example.com", Password: "pw"}, "Username already exists"},
		{"same email different case", auth.RegisterInput{Username: "janet", Email: "  JANE@example.COM ", Password: "pw"}, "Email already in use"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.in)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindConflict))
			var ae *apperr.Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.msg, ae.Message)
		})
	}
	assert.Len(t, users.byName, 1)
}

func TestService_RegisterInsertRace(t *testing.T) {
	users := newFakeUsers()
	users.dupOnce = true
	svc, _ := newService(t, users)

	_, err := svc.Register(context.Background(), auth.RegisterInput{Username: "jane", Email: "jane@example.com", Password: "pw"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.ErrorIs(t, err, userstore.ErrDuplicateUser)
}

func TestService_LoginFailures(t *testing.T) {
	users := newFakeUsers()
	svc, _ := newService(t, users)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterInput{Username: "jane", Email: "jane@example.com", Password: "right"})
	require.NoError(t, err)

	for _, tc := range []struct{ user, pass string }{
		{"jane", "wrong"},
		{"nobody", "right"},
		{"jane", ""},
	} {
		_, err := svc.Login(ctx, tc.user, tc.pass)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindUnauthorized), "login(%q, %q)", tc.user, tc.pass)
	}
}

func TestService_ValidateUser(t *testing.T) {
	users := newFakeUsers()
	svc, _ := newService(t, users)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterInput{Username: "jane", Email: "jane@example.com", Password: "right"})
	require.NoError(t, err)

	p, err := svc.ValidateUser(ctx, "jane", "right")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "jane", p.Username)

	p, err = svc.ValidateUser(ctx, "jane", "wrong")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = svc.ValidateUser(ctx, "ghost", "right")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestService_StoreErrorPropagates(t *testing.T) {
	users := newFakeUsers()
	users.err = errors.New("connection refused")
	svc, _ := newService(t, users)

	_, err := svc.Login(context.Background(), "jane", "pw")
	require.Error(t, err)
	assert.Equal(t, apperr.Kind(0), apperr.KindOf(err))
}

func TestHashPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret!", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret!")))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	_, err = auth.HashPassword("s3cret!", bcrypt.MaxCost+1)
	assert.Error(t, err)
}
