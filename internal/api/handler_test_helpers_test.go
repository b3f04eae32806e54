package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/food-delivery-api/internal/api/middleware"
	"github.com/phrazzld/food-delivery-api/internal/mocks"
	"github.com/phrazzld/food-delivery-api/internal/service"
	"github.com/phrazzld/food-delivery-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testAPI wires real services over in-memory stores behind a chi router
// laid out like the production one.
type testAPI struct {
	users            *mocks.MockUserStore
	restaurants      *mocks.MockRestaurantStore
	emitter          *mocks.RecordingEmitter
	userTokens       auth.JWTService
	restaurantTokens auth.JWTService
	router           http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWithLogger(t, testLogger())
}

// newTestAPIWithLogger is newTestAPI with the request-scoped logger that
// the trace middleware hands to handlers replaced by logger.
func newTestAPIWithLogger(t *testing.T, requestLogger *slog.Logger) *testAPI {
	t.Helper()

	a := &testAPI{
		users:            mocks.NewMockUserStore(),
		restaurants:      mocks.NewMockRestaurantStore(),
		emitter:          &mocks.RecordingEmitter{},
		userTokens:       auth.RequireUserJWTService(t),
		restaurantTokens: auth.RequireRestaurantJWTService(t),
	}
	hasher := &mocks.PlainHasher{}

	accounts, err := service.NewAccountService(
		a.users, a.restaurants, hasher, hasher, a.userTokens, a.restaurantTokens, testLogger())
	require.NoError(t, err)
	catalog, err := service.NewCatalogService(a.users, a.restaurants, hasher, a.emitter, testLogger())
	require.NoError(t, err)

	accountHandler := NewAccountHandler(accounts, testLogger())
	catalogHandler := NewCatalogHandler(catalog, testLogger())
	authMiddleware := middleware.NewAuthMiddleware(a.userTokens, a.restaurantTokens, testLogger())

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware(requestLogger))
	r.Post("/api/signup", accountHandler.Signup)
	r.Post("/api/login", accountHandler.Login)
	r.Post("/api/restaurant/signup", accountHandler.RestaurantSignup)
	r.Post("/api/restaurant/login", accountHandler.RestaurantLogin)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.OptionalAuthenticate)
		r.Post("/api/restaurant", catalogHandler.AddRestaurant)
		r.Put("/api/update-menu/{restaurantId}", catalogHandler.UpdateMenu)
		r.Delete("/api/delete-menu-item/{restaurantId}/{itemId}", catalogHandler.DeleteMenuItem)
	})
	a.router = r

	return a
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader = http.NoBody
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}
