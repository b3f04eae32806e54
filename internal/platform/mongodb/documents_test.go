package mongodb

import (
	"testing"
	"time"

	"github.com/phrazzld/food-delivery-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewMenuDocumentsAssignsObjectIDs(t *testing.T) {
	t.Parallel()

	existing := primitive.NewObjectID().Hex()
	menu := []domain.MenuItem{
		{FoodItem: "Pizza", Price: 9.5, Type: "main"},
		{ID: existing, FoodItem: "Salad", Price: 6},
		{ID: "123", FoodItem: "Soda", Price: 2, Type: "drink"},
		{ID: existing, FoodItem: "Salad again", Price: 6},
	}

	docs := newMenuDocuments(menu)
	require.Len(t, docs, 4)

	assert.Equal(t, existing, menu[1].ID, "valid ids are kept")
	seen := map[string]bool{}
	for i, item := range menu {
		assert.True(t, primitive.IsValidObjectID(item.ID), "item %d", i)
		assert.Equal(t, item.ID, docs[i].ID.Hex(), "item %d", i)
		assert.False(t, seen[item.ID], "duplicate id at %d", i)
		seen[item.ID] = true
	}
}

func TestRestaurantDocumentBSONShape(t *testing.T) {
	t.Parallel()

	owner := primitive.NewObjectID()
	doc := restaurantDocument{
		ID:       primitive.NewObjectID(),
		Name:     "Pizzeria",
		Password: "hash",
		Menu:     newMenuDocuments([]domain.MenuItem{{FoodItem: "Pizza", Price: 10}}),
		OwnerID:  &owner,
	}

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	stored := bson.Raw(raw)
	assert.Equal(t, doc.ID, stored.Lookup("_id").ObjectID())
	assert.Equal(t, owner, stored.Lookup("ownerId").ObjectID())
	assert.Equal(t, "hash", stored.Lookup("password").StringValue())

	itemID, ok := stored.Lookup("menu", "0", "_id").ObjectIDOK()
	require.True(t, ok, "menu items carry an _id")
	assert.Equal(t, doc.Menu[0].ID, itemID)
	assert.Equal(t, "Pizza", stored.Lookup("menu", "0", "foodItem").StringValue())
}

func TestRestaurantDocumentToDomain(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	itemID := primitive.NewObjectID()
	doc := restaurantDocument{
		ID:          primitive.NewObjectID(),
		Name:        "Pizzeria",
		Description: "Wood fired",
		Location:    "Main St",
		Password:    "hash",
		Menu: []menuItemDocument{
			{ID: itemID, FoodItem: "Pizza", Price: 10, Type: "main", ItemImage: "http://img"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	r := doc.toDomain()
	assert.Equal(t, doc.ID.Hex(), r.ID)
	assert.Equal(t, "hash", r.HashedPassword)
	assert.Empty(t, r.Password)
	assert.Empty(t, r.OwnerID)
	require.Len(t, r.Menu, 1)
	assert.Equal(t, domain.MenuItem{
		ID: itemID.Hex(), FoodItem: "Pizza", Price: 10, Type: "main", ItemImage: "http://img",
	}, r.Menu[0])

	empty := restaurantDocument{}.toDomain()
	assert.NotNil(t, empty.Menu)
	assert.Empty(t, empty.Menu)
}

func TestUserDocumentRoundTrip(t *testing.T) {
	t.Parallel()

	user := &domain.User{
		Username:       "alice",
		Email:          "alice@example.com",
		Password:       "plaintext",
		HashedPassword: "hash",
		Superuser:      true,
	}

	doc := newUserDocument(user)
	assert.Equal(t, "hash", doc.Password, "only the hash is persisted")

	doc.ID = primitive.NewObjectID()
	back := doc.toDomain()
	assert.Equal(t, doc.ID.Hex(), back.ID)
	assert.Equal(t, "alice", back.Username)
	assert.True(t, back.Superuser)
	assert.Empty(t, back.Password)
}
