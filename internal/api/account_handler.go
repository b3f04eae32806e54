package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/food-delivery-api/internal/api/shared"
	"github.com/phrazzld/food-delivery-api/internal/platform/logger"
	"github.com/phrazzld/food-delivery-api/internal/service"
)

// AccountHandler handles user and restaurant registration and login.
type AccountHandler struct {
	accounts service.AccountService
	logger   *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts service.AccountService, logger *slog.Logger) *AccountHandler {
	if accounts == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("account service cannot be nil for AccountHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{
		accounts: accounts,
		logger:   logger.With(slog.String("component", "account_handler")),
	}
}

// Signup handles POST /api/signup.
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to register user"

	var req SignupRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, failed, err)
		return
	}

	user, err := h.accounts.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, failed)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Debug("user signed up", slog.String("user_id", user.ID))
	shared.RespondWithMessage(w, r, "User registration successful")
}

// Login handles POST /api/login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Login failed", err)
		return
	}

	token, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, MsgInvalidUserLogin)
			return
		}
		HandleAPIError(w, r, err, "Login failed")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		Message: "Login successful",
		Token:   token,
	})
}

// RestaurantSignup handles POST /api/restaurant/signup.
func (h *AccountHandler) RestaurantSignup(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to register restaurant"

	var req RestaurantSignupRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, failed, err)
		return
	}

	restaurant, err := h.accounts.RestaurantSignup(r.Context(), service.RestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Password:    req.Password,
		Menu:        toMenu(req.Menu),
	})
	if err != nil {
		HandleAPIError(w, r, err, failed)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RestaurantResponse{
		Message:      "Restaurant registration successful",
		RestaurantID: restaurant.ID,
	})
}

// RestaurantLogin handles POST /api/restaurant/login.
func (h *AccountHandler) RestaurantLogin(w http.ResponseWriter, r *http.Request) {
	var req RestaurantLoginRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Login failed", err)
		return
	}

	token, err := h.accounts.RestaurantLogin(r.Context(), req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, MsgInvalidRestaurantAuth)
			return
		}
		HandleAPIError(w, r, err, "Login failed")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		Message: "Restaurant login successful",
		Token:   token,
	})
}
