package register_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/affiliatehub/internal/app/features/register"
	userstore "github.com/dalemusser/affiliatehub/internal/app/store/users"
	"github.com/dalemusser/affiliatehub/internal/app/system/auth"
	"github.com/dalemusser/affiliatehub/internal/app/system/indexes"
	"github.com/dalemusser/affiliatehub/internal/domain/models"
	"github.com/dalemusser/affiliatehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestHandler(t *testing.T) (*register.Handler, *auth.Tokens, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db, logger); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	tokens, err := auth.NewTokens("register-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens failed: %v", err)
	}
	svc := auth.NewService(userstore.New(db), tokens, logger).WithHashCost(bcrypt.MinCost)
	return register.NewHandler(svc, logger), tokens, testutil.NewFixtures(t, db)
}

func TestHandleRegister_Success(t *testing.T) {
	handler, tokens, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := testutil.NewRecorder()
	handler.HandleRegister(rec, testutil.NewJSONRequest(t, "POST", "/auth/register", map[string]any{
		"username": "newbie",
		"email":    "  NewBie@Example.com ",
		"password": "secret1",
	}))

	rec.AssertStatus(t, http.StatusCreated)
	var got auth.Session
	rec.DecodeJSON(t, &got)
	if got.User.Username != "newbie" || len(got.User.Roles) != 1 || got.User.Roles[0] != "user" {
		t.Errorf("unexpected user: %+v", got.User)
	}
	if _, err := tokens.Parse(got.AccessToken); err != nil {
		t.Errorf("token does not parse: %v", err)
	}

	var stored models.User
	if err := fixtures.DB().Collection("users").FindOne(ctx, bson.M{"username": "newbie"}).Decode(&stored); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if stored.Email != "newbie@example.com" {
		t.Errorf("Email = %q, want lowercased", stored.Email)
	}
	if stored.PasswordHash == "secret1" || bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")) != nil {
		t.Error("password was not hashed")
	}
	rec.AssertContains(t, `"access_token":`)
	if body := rec.Body.String(); strings.Contains(body, "password") {
		t.Errorf("response leaks password data: %s", body)
	}
}

func TestHandleRegister_RolesForms(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	tests := []struct {
		name  string
		roles any
		want  []string
	}{
		{"single string", "admin", []string{"admin"}},
		{"array", []string{"Admin", "user", "admin"}, []string{"admin", "user"}},
		{"omitted", nil, []string{"user"}},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := map[string]any{
				"username": "roles" + string(rune('a'+i)),
				"email":    "roles" + string(rune('a'+i)) + "@example.com",
				"password": "secret1",
			}
			if tt.roles != nil {
				body["roles"] = tt.roles
			}
			rec := testutil.NewRecorder()
			handler.HandleRegister(rec, testutil.NewJSONRequest(t, "POST", "/auth/register", body))

			rec.AssertStatus(t, http.StatusCreated)
			var got auth.Session
			rec.DecodeJSON(t, &got)
			if len(got.User.Roles) != len(tt.want) {
				t.Fatalf("Roles = %v, want %v", got.User.Roles, tt.want)
			}
			for j := range tt.want {
				if got.User.Roles[j] != tt.want[j] {
					t.Errorf("Roles = %v, want %v", got.User.Roles, tt.want)
				}
			}
		})
	}
}

func TestHandleRegister_Conflicts(t *testing.T) {
	handler, _, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "taken", "taken@example.com", "whatever")

	tests := []struct {
		name string
		body map[string]any
		msg  string
	}{
		{"username", map[string]any{"username": "taken", "email": "other@example.com", "password": "secret1"}, "Username already exists"},
		{"email case-insensitive", map[string]any{"username": "fresh", "email": "TAKEN@example.com", "password": "secret1"}, "Email already in use"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			handler.HandleRegister(rec, testutil.NewJSONRequest(t, "POST", "/auth/register", tt.body))
			rec.AssertStatus(t, http.StatusConflict)
			rec.AssertContains(t, tt.msg)
		})
	}

	n, err := fixtures.DB().Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 user, got %d", n)
	}
}

func TestHandleRegister_Validation(t *testing.T) {
	handler := register.NewHandler(nil, zap.NewNop())

	tests := []struct {
		name string
		body any
		msg  string
	}{
		{"short password", map[string]any{"username": "a", "email": "a@example.com", "password": "12345"}, "Password must be at least 6 characters."},
		{"bad email", map[string]any{"username": "a", "email": "nope", "password": "123456"}, "A valid email address is required."},
		{"missing username", map[string]any{"email": "a@example.com", "password": "123456"}, "Username is required."},
		{"roles number", map[string]any{"username": "a", "email": "a@example.com", "password": "123456", "roles": 5}, "Invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			handler.HandleRegister(rec, testutil.NewJSONRequest(t, "POST", "/auth/register", tt.body))
			rec.AssertStatus(t, http.StatusBadRequest)
			rec.AssertContains(t, tt.msg)
		})
	}
}
