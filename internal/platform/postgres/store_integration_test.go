//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/food-delivery-api/internal/domain"
	"github.com/phrazzld/food-delivery-api/internal/platform/postgres"
	"github.com/phrazzld/food-delivery-api/internal/store"
	"github.com/phrazzld/food-delivery-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStoreIntegration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewPostgresUserStore(tx, nil)
		suffix := uuid.NewString()[:8]

		user, err := domain.NewUser("alice-"+suffix, "alice-"+suffix+"@example.com", "pw")
		require.NoError(t, err)
		user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"
		require.NoError(t, users.Create(ctx, user))
		require.NotEmpty(t, user.ID)

		dup, err := domain.NewUser("alice-"+suffix, "other-"+suffix+"@example.com", "pw")
		require.NoError(t, err)
		dup.HashedPassword = "x"
		assert.ErrorIs(t, users.Create(ctx, dup), store.ErrUserExists)

		got, err := users.GetByUsername(ctx, user.Username)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.False(t, got.Superuser)

		require.NoError(t, users.SetSuperuser(ctx, user.Username, true))
		got, err = users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, got.Superuser)

		_, err = users.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.ErrorIs(t, users.SetSuperuser(ctx, "nobody-"+suffix, true), store.ErrUserNotFound)
	})
}

func TestRestaurantStoreIntegration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		restaurants := postgres.NewPostgresRestaurantStore(tx, nil)
		name := "Pizzeria " + uuid.NewString()[:8]

		r, err := domain.NewRestaurant(name, "Wood fired", "Main St", "pw", []domain.MenuItem{
			{FoodItem: "Pizza", Price: 10},
			{FoodItem: "Soda", Price: 2},
		})
		require.NoError(t, err)
		r.HashedPassword = "hash"
		require.NoError(t, restaurants.Create(ctx, r))
		require.Len(t, r.Menu, 2)
		assert.NotEmpty(t, r.Menu[0].ID)

		dup, err := domain.NewRestaurant(name, "d", "l", "pw", nil)
		require.NoError(t, err)
		dup.HashedPassword = "hash"
		assert.ErrorIs(t, restaurants.Create(ctx, dup), store.ErrRestaurantExists)

		got, err := restaurants.GetByName(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, r.Menu, got.Menu)

		menu := []domain.MenuItem{got.Menu[1]}
		require.NoError(t, restaurants.UpdateMenu(ctx, r.ID, menu))

		got, err = restaurants.GetByID(ctx, r.ID)
		require.NoError(t, err)
		require.Len(t, got.Menu, 1)
		assert.Equal(t, "Soda", got.Menu[0].FoodItem)

		missing := uuid.NewString()
		assert.ErrorIs(t, restaurants.UpdateMenu(ctx, missing, menu), store.ErrRestaurantNotFound)
		_, err = restaurants.GetByID(ctx, missing)
		assert.ErrorIs(t, err, store.ErrRestaurantNotFound)
	})
}
