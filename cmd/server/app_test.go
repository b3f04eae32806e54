package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/food-delivery-api/internal/config"
	"github.com/phrazzld/food-delivery-api/internal/mocks"
	"github.com/phrazzld/food-delivery-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 3000, LogLevel: "error", ShutdownTimeoutSeconds: 1},
		Database: config.DatabaseConfig{
			Driver:                config.DriverMongo,
			MongoURI:              "mongodb://localhost:27017",
			MongoDatabase:         "food_delivery_test",
			ConnectTimeoutSeconds: 1,
		},
		Auth:    auth.DefaultTestAuthConfig(),
		Metrics: config.MetricsConfig{Enabled: true},
	}
}

func newTestApplication(t *testing.T) (*application, *mocks.MockUserStore, *bool) {
	t.Helper()

	users := mocks.NewMockUserStore()
	closed := false
	st := &storage{
		users:       users,
		restaurants: mocks.NewMockRestaurantStore(),
		closeFn: func(context.Context) error {
			closed = true
			return nil
		},
	}

	app, err := newApplication(testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)), st)
	require.NoError(t, err)
	return app, users, &closed
}

type client struct {
	t      *testing.T
	server *httptest.Server
}

func (c *client) call(method, path string, body interface{}, token string) (int, map[string]interface{}) {
	c.t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(c.t, err)

	req, err := http.NewRequest(method, c.server.URL+path, bytes.NewReader(payload))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.server.Client().Do(req)
	require.NoError(c.t, err)
	defer func() { _ = resp.Body.Close() }()

	var decoded map[string]interface{}
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestEndToEndAliceScenario(t *testing.T) {
	t.Parallel()

	app, users, _ := newTestApplication(t)
	server := httptest.NewServer(app.setupRouter())
	defer server.Close()
	c := &client{t: t, server: server}
	ctx := context.Background()

	status, body := c.call(http.MethodPost, "/api/signup",
		map[string]string{"username": "alice", "email": "a@x.io", "password": "pw1"}, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User registration successful", body["message"])

	status, body = c.call(http.MethodPost, "/api/signup",
		map[string]string{"username": "alice", "email": "other@x.io", "password": "pw2"}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Username or email already in use", body["error"])
	assert.Equal(t, 1, users.Count())

	status, body = c.call(http.MethodPost, "/api/login",
		map[string]string{"username": "alice", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid username or password", body["error"])

	status, body = c.call(http.MethodPost, "/api/login",
		map[string]string{"username": "alice", "password": "pw1"}, "")
	require.Equal(t, http.StatusOK, status)
	aliceToken, _ := body["token"].(string)
	require.NotEmpty(t, aliceToken)

	claims, err := app.userTokens.ValidateToken(ctx, aliceToken)
	require.NoError(t, err)
	alice, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, claims.SubjectID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)

	restaurant := map[string]interface{}{
		"userId":      alice.ID,
		"name":        "Alice's Diner",
		"description": "Comfort food",
		"location":    "Elm St",
		"menu":        []map[string]interface{}{{"foodItem": "Burger", "price": 8.5, "type": "main"}},
	}
	status, body = c.call(http.MethodPost, "/api/restaurant", restaurant, aliceToken)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Unauthorized access", body["error"])

	require.NoError(t, users.SetSuperuser(ctx, "alice", true))
	status, body = c.call(http.MethodPost, "/api/restaurant", restaurant, aliceToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Restaurant added successfully", body["message"])
	restaurantID, _ := body["restaurantId"].(string)
	initialPassword, _ := body["initialPassword"].(string)
	require.NotEmpty(t, restaurantID)
	require.NotEmpty(t, initialPassword)

	status, body = c.call(http.MethodPost, "/api/restaurant/login",
		map[string]string{"name": "Alice's Diner", "password": initialPassword}, "")
	require.Equal(t, http.StatusOK, status)
	restaurantToken, _ := body["token"].(string)
	require.NotEmpty(t, restaurantToken)

	status, body = c.call(http.MethodPut, "/api/update-menu/"+restaurantID, map[string]interface{}{
		"userId": restaurantID,
		"role":   "restaurant",
		"menu": []map[string]interface{}{
			{"foodItem": "Burger", "price": 9, "type": "main"},
			{"foodItem": "Fries", "price": 3, "type": "side"},
		},
	}, restaurantToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Menu updated successfully", body["message"])
	menu, _ := body["menu"].([]interface{})
	require.Len(t, menu, 2)
	friesID, _ := menu[1].(map[string]interface{})["_id"].(string)
	require.NotEmpty(t, friesID)

	status, _ = c.call(http.MethodPut, "/api/update-menu/does-not-exist", map[string]interface{}{
		"userId": alice.ID,
		"menu":   []map[string]interface{}{},
	}, aliceToken)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = c.call(http.MethodDelete, "/api/delete-menu-item/"+restaurantID+"/"+friesID,
		map[string]string{"userId": alice.ID, "role": "user"}, aliceToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Menu item deleted successfully", body["message"])

	status, body = c.call(http.MethodDelete, "/api/delete-menu-item/"+restaurantID+"/"+friesID,
		map[string]string{"userId": alice.ID, "role": "user"}, aliceToken)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Menu item not found", body["error"])
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApplication(t)
	router := app.setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `food_delivery_http_requests_total{method="GET",route="/health",status_code="200"} 1`)
}

func TestMetricsRouteDisabled(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	cfg := testConfig()
	cfg.Metrics.Enabled = false
	app, err := newApplication(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), &storage{
		users:       users,
		restaurants: mocks.NewMockRestaurantStore(),
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	app, _, closed := newTestApplication(t)
	app.config.Server.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.True(t, *closed)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
