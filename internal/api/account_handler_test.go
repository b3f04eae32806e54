package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/phrazzld/food-delivery-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountHandler_Signup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		body            interface{}
		expectedStatus  int
		expectedMessage string
		expectedError   string
	}{
		{
			name:            "success",
			body:            SignupRequest{Username: "alice", Email: "alice@example.com", Password: "pw1"},
			expectedStatus:  http.StatusOK,
			expectedMessage: "User registration successful",
		},
		{
			name:           "duplicate username",
			body:           SignupRequest{Username: "taken", Email: "new@example.com", Password: "pw1"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  MsgUserExists,
		},
		{
			name:           "duplicate email",
			body:           SignupRequest{Username: "new", Email: "taken@example.com", Password: "pw1"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  MsgUserExists,
		},
		{
			name:           "malformed body",
			body:           `{"username":`,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to register user",
		},
		{
			name:           "missing email",
			body:           SignupRequest{Username: "bob", Password: "pw1"},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to register user",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := newTestAPI(t)
			seed := a.do(t, http.MethodPost, "/api/signup",
				SignupRequest{Username: "taken", Email: "taken@example.com", Password: "pw"})
			require.Equal(t, http.StatusOK, seed.Code)

			rec := a.do(t, http.MethodPost, "/api/signup", tc.body)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			body := decodeBody(t, rec)
			if tc.expectedMessage != "" {
				assert.Equal(t, tc.expectedMessage, body["message"])
				assert.Equal(t, 2, a.users.Count())
				return
			}
			assert.Equal(t, tc.expectedError, body["error"])
			assert.NotEmpty(t, body["trace_id"])
			assert.Equal(t, 1, a.users.Count())
		})
	}
}

func TestAccountHandler_Login(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	require.Equal(t, http.StatusOK, a.do(t, http.MethodPost, "/api/signup",
		SignupRequest{Username: "alice", Email: "alice@example.com", Password: "pw1"}).Code)

	t.Run("valid credentials return a user token", func(t *testing.T) {
		rec := a.do(t, http.MethodPost, "/api/login", LoginRequest{Username: "alice", Password: "pw1"})
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, "Login successful", body["message"])

		token, ok := body["token"].(string)
		require.True(t, ok)
		claims, err := a.userTokens.ValidateToken(context.Background(), token)
		require.NoError(t, err)

		user, err := a.users.GetByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.SubjectID)
		assert.Equal(t, auth.PrincipalUser, claims.Principal)
	})

	for _, req := range []LoginRequest{
		{Username: "alice", Password: "wrong"},
		{Username: "nobody", Password: "pw1"},
	} {
		rec := a.do(t, http.MethodPost, "/api/login", req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, MsgInvalidUserLogin, decodeBody(t, rec)["error"])
	}

	rec := a.do(t, http.MethodPost, "/api/login", "not json")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Login failed", decodeBody(t, rec)["error"])
}

func TestAccountHandler_RestaurantSignupAndLogin(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	signup := RestaurantSignupRequest{
		Name:        "Pizzeria",
		Password:    "secret",
		Description: "Wood-fired pizza",
		Location:    "Main St",
		Menu:        []MenuItemRequest{{FoodItem: "Margherita", Price: 9.5, Type: "main"}},
	}

	rec := a.do(t, http.MethodPost, "/api/restaurant/signup", signup)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Restaurant registration successful", body["message"])
	restaurantID, _ := body["restaurantId"].(string)
	require.NotEmpty(t, restaurantID)

	rec = a.do(t, http.MethodPost, "/api/restaurant/signup", signup)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, MsgRestaurantExists, decodeBody(t, rec)["error"])
	assert.Equal(t, 1, a.restaurants.Count())

	rec = a.do(t, http.MethodPost, "/api/restaurant/login", RestaurantLoginRequest{Name: "Pizzeria", Password: "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, "Restaurant login successful", body["message"])

	claims, err := a.restaurantTokens.ValidateToken(context.Background(), body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, restaurantID, claims.SubjectID)

	rec = a.do(t, http.MethodPost, "/api/restaurant/login", RestaurantLoginRequest{Name: "Pizzeria", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, MsgInvalidRestaurantAuth, decodeBody(t, rec)["error"])
}
