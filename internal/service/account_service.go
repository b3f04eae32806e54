package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/food-delivery-api/internal/domain"
	"github.com/phrazzld/food-delivery-api/internal/service/auth"
	"github.com/phrazzld/food-delivery-api/internal/store"
)

// RestaurantInput carries the fields needed to create a restaurant.
type RestaurantInput struct {
	Name        string
	Description string
	Location    string
	Password    string
	Menu        []domain.MenuItem
}

// AccountService registers and authenticates users and restaurants.
type AccountService interface {
	// Signup creates a user with a hashed password. It issues no token.
	// Returns store.ErrUserExists when the username or email is taken.
	Signup(ctx context.Context, username, email, password string) (*domain.User, error)

	// Login checks a user's credentials and returns a signed token carrying userId.
	// Returns ErrInvalidCredentials for an unknown username or wrong password.
	Login(ctx context.Context, username, password string) (string, error)

	// RestaurantSignup creates a restaurant account with its initial menu.
	// Returns store.ErrRestaurantExists when the name is taken.
	RestaurantSignup(ctx context.Context, in RestaurantInput) (*domain.Restaurant, error)

	// RestaurantLogin checks a restaurant's credentials and returns a signed
	// token carrying restaurantId.
	RestaurantLogin(ctx context.Context, name, password string) (string, error)
}

type accountService struct {
	users            store.UserStore
	restaurants      store.RestaurantStore
	hasher           auth.PasswordHasher
	verifier         auth.PasswordVerifier
	userTokens       auth.JWTService
	restaurantTokens auth.JWTService
	logger           *slog.Logger
}

var _ AccountService = (*accountService)(nil)

// NewAccountService creates an AccountService.
func NewAccountService(
	users store.UserStore,
	restaurants store.RestaurantStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	userTokens auth.JWTService,
	restaurantTokens auth.JWTService,
	logger *slog.Logger,
) (AccountService, error) {
	if users == nil || restaurants == nil {
		return nil, fmt.Errorf("account service requires user and restaurant stores")
	}
	if hasher == nil || verifier == nil {
		return nil, fmt.Errorf("account service requires a password hasher and verifier")
	}
	if userTokens == nil || restaurantTokens == nil {
		return nil, fmt.Errorf("account service requires user and restaurant token services")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &accountService{
		users:            users,
		restaurants:      restaurants,
		hasher:           hasher,
		verifier:         verifier,
		userTokens:       userTokens,
		restaurantTokens: restaurantTokens,
		logger:           logger.With("component", "account_service"),
	}, nil
}

// Signup implements AccountService.
func (s *accountService) Signup(ctx context.Context, username, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(username, email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.HashedPassword, err = s.hasher.Hash(user.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			s.logger.Debug("signup rejected: username or email in use", "username", user.Username)
		} else {
			s.logger.Error("failed to save user", "error", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login implements AccountService.
func (s *accountService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login failed: unknown username")
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login failed: password mismatch", "user_id", user.ID)
		return "", ErrInvalidCredentials
	}

	token, err := s.userTokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue user token: %w", err)
	}
	return token, nil
}

// RestaurantSignup implements AccountService.
func (s *accountService) RestaurantSignup(ctx context.Context, in RestaurantInput) (*domain.Restaurant, error) {
	restaurant, err := buildRestaurant(s.hasher, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}

	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		if errors.Is(err, store.ErrRestaurantExists) {
			s.logger.Debug("restaurant signup rejected: name in use", "name", restaurant.Name)
		} else {
			s.logger.Error("failed to save restaurant", "error", err)
		}
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}

	s.logger.Info("restaurant registered", "restaurant_id", restaurant.ID)
	return restaurant, nil
}

// RestaurantLogin implements AccountService.
func (s *accountService) RestaurantLogin(ctx context.Context, name, password string) (string, error) {
	restaurant, err := s.restaurants.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrRestaurantNotFound) {
			s.logger.Debug("restaurant login failed: unknown name")
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to load restaurant: %w", err)
	}

	if err := s.verifier.Compare(restaurant.HashedPassword, password); err != nil {
		s.logger.Debug("restaurant login failed: password mismatch", "restaurant_id", restaurant.ID)
		return "", ErrInvalidCredentials
	}

	token, err := s.restaurantTokens.GenerateToken(ctx, restaurant.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue restaurant token: %w", err)
	}
	return token, nil
}

// buildRestaurant validates in and returns a restaurant with a hashed password.
func buildRestaurant(hasher auth.PasswordHasher, in RestaurantInput) (*domain.Restaurant, error) {
	restaurant, err := domain.NewRestaurant(in.Name, in.Description, in.Location, in.Password, in.Menu)
	if err != nil {
		return nil, err
	}

	restaurant.HashedPassword, err = hasher.Hash(restaurant.Password)
	if err != nil {
		return nil, err
	}
	restaurant.Password = ""
	return restaurant, nil
}
