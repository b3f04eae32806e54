package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/food-delivery-api/internal/api/middleware"
	"github.com/phrazzld/food-delivery-api/internal/api/shared"
	"github.com/phrazzld/food-delivery-api/internal/platform/logger"
	"github.com/phrazzld/food-delivery-api/internal/service"
	"github.com/phrazzld/food-delivery-api/internal/service/auth"
)

// CatalogHandler handles restaurant creation and menu changes.
type CatalogHandler struct {
	catalog service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog service.CatalogService, logger *slog.Logger) *CatalogHandler {
	if catalog == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("catalog service cannot be nil for CatalogHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger.With(slog.String("component", "catalog_handler")),
	}
}

// AddRestaurant handles POST /api/restaurant.
func (h *CatalogHandler) AddRestaurant(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to add a restaurant"

	var req AddRestaurantRequest
	if err := shared.DecodeOptionalAndValidate(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, failed, err)
		return
	}

	if !middleware.MatchesPrincipal(r, req.UserID, auth.PrincipalUser) {
		rejectToken(w, r, req.UserID)
		return
	}

	result, err := h.catalog.AddRestaurant(r.Context(), req.UserID, service.RestaurantInput{
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

	logger.FromContextOrDefault(r.Context(), h.logger).
		Debug("restaurant added", slog.String("restaurant_id", result.Restaurant.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, RestaurantResponse{
		Message:         "Restaurant added successfully",
		RestaurantID:    result.Restaurant.ID,
		InitialPassword: result.InitialPassword,
	})
}

// UpdateMenu handles PUT /api/update-menu/{restaurantId}.
func (h *CatalogHandler) UpdateMenu(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to update the menu"

	var req UpdateMenuRequest
	if err := shared.DecodeOptionalAndValidate(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, failed, err)
		return
	}

	caller := callerFrom(req.UserID, req.Role)
	if !matchesCaller(r, caller) {
		rejectToken(w, r, caller.ID)
		return
	}

	restaurant, err := h.catalog.UpdateMenu(r.Context(), chi.URLParam(r, "restaurantId"), caller, toMenu(req.Menu))
	if err != nil {
		HandleAPIError(w, r, err, failed)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MenuResponse{
		Message: "Menu updated successfully",
		Menu:    restaurant.Menu,
	})
}

// DeleteMenuItem handles DELETE /api/delete-menu-item/{restaurantId}/{itemId}.
func (h *CatalogHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to delete the menu item"

	var req DeleteMenuItemRequest
	if err := shared.DecodeOptionalAndValidate(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, failed, err)
		return
	}

	caller := callerFrom(req.UserID, req.Role)
	if !matchesCaller(r, caller) {
		rejectToken(w, r, caller.ID)
		return
	}

	err := h.catalog.DeleteMenuItem(
		r.Context(),
		chi.URLParam(r, "restaurantId"),
		chi.URLParam(r, "itemId"),
		caller,
	)
	if err != nil {
		HandleAPIError(w, r, err, failed)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Debug("menu item deleted", slog.String("item_id", chi.URLParam(r, "itemId")))
	shared.RespondWithMessage(w, r, "Menu item deleted successfully")
}

func rejectToken(w http.ResponseWriter, r *http.Request, callerID string) {
	shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, MsgUnauthorized,
		fmt.Errorf("%w: bearer token does not match caller %q", service.ErrForbidden, callerID))
}

func callerFrom(id, role string) service.Caller {
	return service.Caller{ID: id, Role: service.Role(role)}
}

// matchesCaller checks the bearer token, if any, against the caller.
// Unknown roles are left for the catalog service to refuse.
func matchesCaller(r *http.Request, caller service.Caller) bool {
	switch caller.Role {
	case service.RoleRestaurant:
		return middleware.MatchesPrincipal(r, caller.ID, auth.PrincipalRestaurant)
	case service.RoleUser, "":
		return middleware.MatchesPrincipal(r, caller.ID, auth.PrincipalUser)
	default:
		return true
	}
}
