package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/food-delivery-api/internal/domain"
	"github.com/phrazzld/food-delivery-api/internal/redact"
	"github.com/phrazzld/food-delivery-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoUserStore implements store.UserStore on the users collection.
type MongoUserStore struct {
	users  *mongo.Collection
	logger *slog.Logger
}

// NewMongoUserStore creates a user store backed by db. If logger is nil,
// a default logger will be used.
func NewMongoUserStore(db *mongo.Database, logger *slog.Logger) *MongoUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MongoUserStore{
		users:  db.Collection(UsersCollection),
		logger: logger.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*MongoUserStore)(nil)

// Create implements store.UserStore.Create
func (s *MongoUserStore) Create(ctx context.Context, user *domain.User) error {
	if user.HashedPassword == "" {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrEmptyPassword)
	}

	doc := newUserDocument(user)
	doc.ID = primitive.NewObjectID()

	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		mapped := store.WrapOperation("user", "create", mapError(err, store.ErrUserNotFound, store.ErrUserExists))
		if !store.IsDuplicateError(mapped) {
			s.logger.Error("failed to insert user", slog.String("error", redact.Error(err)))
		}
		return mapped
	}

	user.ID = doc.ID.Hex()
	s.logger.Debug("user created", slog.String("user_id", user.ID))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *MongoUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrUserNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *MongoUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

// SetSuperuser implements store.UserStore.SetSuperuser
func (s *MongoUserStore) SetSuperuser(ctx context.Context, username string, superuser bool) error {
	result, err := s.users.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"superuser": superuser}},
	)
	if err != nil {
		s.logger.Error("failed to update superuser flag", slog.String("error", redact.Error(err)))
		return store.WrapOperation("user", "set_superuser", mapError(err, store.ErrUserNotFound, store.ErrUserExists))
	}
	if result.MatchedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		mapped := store.WrapOperation("user", "read", mapError(err, store.ErrUserNotFound, store.ErrUserExists))
		if !store.IsNotFoundError(mapped) {
			s.logger.Error("failed to read user", slog.String("error", redact.Error(err)))
		}
		return nil, mapped
	}
	return doc.toDomain(), nil
}
