package bootstrap

import (
	"testing"
	"time"

	"github.com/dalemusser/affiliatehub/internal/app/system/indexes"
	"github.com/dalemusser/affiliatehub/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestStartup_SeedsDefaultUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db, testLogger()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	deps := DBDeps{MongoDatabase: db}

	for i := 0; i < 2; i++ {
		if err := Startup(ctx, &config.CoreConfig{}, AppConfig{SeedDefaultUsers: true}, deps, testLogger()); err != nil {
			t.Fatalf("Startup run %d failed: %v", i, err)
		}
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{"username": bson.M{"$in": []string{"admin", "user"}}})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 default users, got %d", n)
	}
}

func TestStartup_SeedingDisabled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := Startup(ctx, &config.CoreConfig{}, AppConfig{}, DBDeps{MongoDatabase: db}, testLogger()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}
	n, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no users, got %d", n)
	}
}

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "affiliate_hub",
		MongoMaxPoolSize: 100,
		MongoMinPoolSize: 10,
		JWTSecret:        devJWTSecret,
		JWTExpiry:        24 * time.Hour,
		SessionKey:       devSessionKey,
		SessionName:      "affiliatehub-session",
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"dev defaults", "dev", func(*AppConfig) {}, false},
		{"empty database", "dev", func(c *AppConfig) { c.MongoDatabase = " " }, true},
		{"empty secret", "dev", func(c *AppConfig) { c.JWTSecret = "" }, true},
		{"zero expiry", "dev", func(c *AppConfig) { c.JWTExpiry = 0 }, true},
		{"pool sizes inverted", "dev", func(c *AppConfig) { c.MongoMinPoolSize = 200 }, true},
		{"prod placeholder secret", "prod", func(c *AppConfig) { c.SessionKey = "a-real-session-key-that-is-long-enough-123" }, true},
		{"prod placeholder session key", "prod", func(c *AppConfig) { c.JWTSecret = "real-secret" }, true},
		{"prod short session key", "prod", func(c *AppConfig) {
			c.JWTSecret = "real-secret"
			c.SessionKey = "short"
		}, true},
		{"prod seeds default users", "prod", func(c *AppConfig) {
			c.JWTSecret = "real-secret"
			c.SessionKey = "a-real-session-key-that-is-long-enough-123"
			c.SeedDefaultUsers = true
		}, true},
		{"dev seeds default users", "dev", func(c *AppConfig) { c.SeedDefaultUsers = true }, false},
		{"prod configured", "prod", func(c *AppConfig) {
			c.JWTSecret = "real-secret"
			c.SessionKey = "a-real-session-key-that-is-long-enough-123"
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{Env: tt.env}, cfg, testLogger())
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" http://a.test, ,http://b.test,")
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Errorf("splitList = %v", got)
	}
	if splitList("") != nil {
		t.Error("splitList(\"\") should be nil")
	}
}
