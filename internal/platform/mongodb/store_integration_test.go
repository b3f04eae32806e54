//go:build integration

package mongodb_test

import (
	"context"
	"testing"

	"github.com/phrazzld/food-delivery-api/internal/domain"
	"github.com/phrazzld/food-delivery-api/internal/platform/mongodb"
	"github.com/phrazzld/food-delivery-api/internal/store"
	"github.com/phrazzld/food-delivery-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMongoUserStoreIntegration(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestMongoDatabaseWithT(t)
	ctx := context.Background()
	users := mongodb.NewMongoUserStore(db, nil)

	user, err := domain.NewUser("alice", "alice@example.com", "pw")
	require.NoError(t, err)
	user.HashedPassword = "hash"
	require.NoError(t, users.Create(ctx, user))
	require.True(t, primitive.IsValidObjectID(user.ID))

	sameEmail, err := domain.NewUser("alice2", "alice@example.com", "pw")
	require.NoError(t, err)
	sameEmail.HashedPassword = "hash"
	assert.ErrorIs(t, users.Create(ctx, sameEmail), store.ErrUserExists)

	require.NoError(t, users.SetSuperuser(ctx, "alice", true))
	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.Superuser)

	_, err = users.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	_, err = users.GetByID(ctx, "zzz")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestMongoRestaurantStoreIntegration(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestMongoDatabaseWithT(t)
	ctx := context.Background()
	restaurants := mongodb.NewMongoRestaurantStore(db, nil)

	r, err := domain.NewRestaurant("Pizzeria", "Wood fired", "Main St", "pw", []domain.MenuItem{
		{FoodItem: "Pizza", Price: 10},
		{FoodItem: "Soda", Price: 2},
	})
	require.NoError(t, err)
	r.HashedPassword = "hash"
	require.NoError(t, restaurants.Create(ctx, r))

	dup, err := domain.NewRestaurant("Pizzeria", "d", "l", "pw", nil)
	require.NoError(t, err)
	dup.HashedPassword = "hash"
	assert.ErrorIs(t, restaurants.Create(ctx, dup), store.ErrRestaurantExists)

	got, err := restaurants.GetByName(ctx, "Pizzeria")
	require.NoError(t, err)
	require.Len(t, got.Menu, 2)
	assert.Equal(t, r.Menu[0].ID, got.Menu[0].ID)

	require.NoError(t, restaurants.UpdateMenu(ctx, r.ID, got.Menu[1:]))
	got, err = restaurants.GetByID(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, got.Menu, 1)
	assert.Equal(t, "Soda", got.Menu[0].FoodItem)

	missing := primitive.NewObjectID().Hex()
	assert.ErrorIs(t, restaurants.UpdateMenu(ctx, missing, got.Menu), store.ErrRestaurantNotFound)
	_, err = restaurants.GetByID(ctx, missing)
	assert.ErrorIs(t, err, store.ErrRestaurantNotFound)
}
