package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/food-delivery-api/internal/domain"
	"github.com/phrazzld/food-delivery-api/internal/redact"
	"github.com/phrazzld/food-delivery-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRestaurantStore implements store.RestaurantStore on the restaurants
// collection. Menus are embedded arrays and are replaced as a whole.
type MongoRestaurantStore struct {
	restaurants *mongo.Collection
	logger      *slog.Logger
}

// NewMongoRestaurantStore creates a restaurant store backed by db. If logger
// is nil, a default logger will be used.
func NewMongoRestaurantStore(db *mongo.Database, logger *slog.Logger) *MongoRestaurantStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MongoRestaurantStore{
		restaurants: db.Collection(RestaurantsCollection),
		logger:      logger.With(slog.String("component", "restaurant_store")),
	}
}

var _ store.RestaurantStore = (*MongoRestaurantStore)(nil)

// Create implements store.RestaurantStore.Create
func (s *MongoRestaurantStore) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	if restaurant.HashedPassword == "" {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrEmptyPassword)
	}

	menu := make([]domain.MenuItem, len(restaurant.Menu))
	copy(menu, restaurant.Menu)

	doc := restaurantDocument{
		ID:          primitive.NewObjectID(),
		Name:        restaurant.Name,
		Description: restaurant.Description,
		Location:    restaurant.Location,
		Password:    restaurant.HashedPassword,
		Menu:        newMenuDocuments(menu),
		CreatedAt:   restaurant.CreatedAt,
		UpdatedAt:   restaurant.UpdatedAt,
	}
	if restaurant.OwnerID != "" {
		owner, err := primitive.ObjectIDFromHex(restaurant.OwnerID)
		if err != nil {
			return fmt.Errorf("%w: owner id: %w", store.ErrInvalidEntity, domain.ErrInvalidID)
		}
		doc.OwnerID = &owner
	}

	if _, err := s.restaurants.InsertOne(ctx, doc); err != nil {
		mapped := store.WrapOperation("restaurant", "create", mapError(err, store.ErrRestaurantNotFound, store.ErrRestaurantExists))
		if !store.IsDuplicateError(mapped) {
			s.logger.Error("failed to insert restaurant", slog.String("error", redact.Error(err)))
		}
		return mapped
	}

	restaurant.ID = doc.ID.Hex()
	restaurant.Menu = menu
	s.logger.Debug("restaurant created",
		slog.String("restaurant_id", restaurant.ID),
		slog.Int("menu_items", len(menu)))
	return nil
}

// GetByID implements store.RestaurantStore.GetByID
func (s *MongoRestaurantStore) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrRestaurantNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

// GetByName implements store.RestaurantStore.GetByName
func (s *MongoRestaurantStore) GetByName(ctx context.Context, name string) (*domain.Restaurant, error) {
	return s.findOne(ctx, bson.M{"name": name})
}

// UpdateMenu implements store.RestaurantStore.UpdateMenu. The update never
// upserts, so a missing restaurant is reported rather than created.
func (s *MongoRestaurantStore) UpdateMenu(ctx context.Context, id string, menu []domain.MenuItem) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrRestaurantNotFound
	}

	result, err := s.restaurants.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"menu":      newMenuDocuments(menu),
			"updatedAt": time.Now().UTC(),
		}},
	)
	if err != nil {
		s.logger.Error("failed to update menu", slog.String("error", redact.Error(err)))
		return store.WrapOperation("restaurant", "update_menu", mapError(err, store.ErrRestaurantNotFound, store.ErrRestaurantExists))
	}
	if result.MatchedCount == 0 {
		return store.ErrRestaurantNotFound
	}
	return nil
}

func (s *MongoRestaurantStore) findOne(ctx context.Context, filter bson.M) (*domain.Restaurant, error) {
	var doc restaurantDocument
	if err := s.restaurants.FindOne(ctx, filter).Decode(&doc); err != nil {
		mapped := store.WrapOperation("restaurant", "read", mapError(err, store.ErrRestaurantNotFound, store.ErrRestaurantExists))
		if !store.IsNotFoundError(mapped) {
			s.logger.Error("failed to read restaurant", slog.String("error", redact.Error(err)))
		}
		return nil, mapped
	}
	return doc.toDomain(), nil
}
