//go:build integration

package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/affiliatehub/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestMain points every Mongo-backed test in this package at a throwaway
// mongo:7 container.
func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		panic(err)
	}
	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	if err := os.Setenv(testutil.MongoURIEnv, uri); err != nil {
		panic(err)
	}

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

// TestLifecycle_OverHTTP runs the lifecycle hooks against the container and
// talks to the router over a real socket, logging in as the seeded admin.
func TestLifecycle_OverHTTP(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	appCfg := validAppConfig()
	appCfg.MongoURI = os.Getenv(testutil.MongoURIEnv)
	appCfg.MongoDatabase = "affiliatehub_e2e"
	appCfg.SeedDefaultUsers = true
	appCfg.LoginRatePerMinute = 100
	coreCfg := &config.CoreConfig{Env: "dev"}

	require.NoError(t, ValidateConfig(coreCfg, appCfg, testLogger()))

	deps, err := ConnectDB(ctx, coreCfg, appCfg, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = deps.MongoDatabase.Drop(context.Background())
		assert.NoError(t, Shutdown(context.Background(), coreCfg, appCfg, deps, testLogger()))
	})

	require.NoError(t, EnsureSchema(ctx, coreCfg, appCfg, deps, testLogger()))
	require.NoError(t, EnsureSchema(ctx, coreCfg, appCfg, deps, testLogger()), "schema must be idempotent")
	require.NoError(t, Startup(ctx, coreCfg, appCfg, deps, testLogger()))

	h, err := BuildHandler(coreCfg, appCfg, deps, testLogger())
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	defer srv.Close()

	post := func(path, body, token string) *http.Response {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL+path, strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		return resp
	}

	resp := post("/auth/login", `{"username":"admin","password":"admin123"}`, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sess struct {
		AccessToken string `json:"access_token"`
		User        struct {
			Username string   `json:"username"`
			Roles    []string `json:"roles"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sess))
	assert.Equal(t, "admin", sess.User.Username)
	assert.Equal(t, []string{"admin"}, sess.User.Roles)

	var hasCookie bool
	for _, c := range resp.Cookies() {
		hasCookie = hasCookie || c.Name == appCfg.SessionName
	}
	assert.True(t, hasCookie, "login should set the session cookie")

	dup := post("/auth/register", `{"username":"admin","email":"other@example.com","password":"secret1"}`, "")
	defer dup.Body.Close()
	assert.Equal(t, http.StatusConflict, dup.StatusCode)

	created := post("/influencers", `{"name":"Michael Ryhe","country":"France","followers":10,"status":"pending","baseCost":200000,"avatar":"1.jpg"}`, sess.AccessToken)
	defer created.Body.Close()
	assert.Equal(t, http.StatusCreated, created.StatusCode)

	health, err := srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}
