package mongodb

import (
	"time"

	"github.com/phrazzld/food-delivery-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Superuser bool               `bson:"superuser"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type menuItemDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	FoodItem  string             `bson:"foodItem"`
	Price     float64            `bson:"price"`
	Type      string             `bson:"type"`
	ItemImage string             `bson:"itemImage"`
}

type restaurantDocument struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Name        string              `bson:"name"`
	Description string              `bson:"description"`
	Location    string              `bson:"location"`
	Password    string              `bson:"password"`
	Menu        []menuItemDocument  `bson:"menu"`
	OwnerID     *primitive.ObjectID `bson:"ownerId,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt"`
}

func newUserDocument(user *domain.User) userDocument {
	return userDocument{
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.HashedPassword,
		Superuser: user.Superuser,
		CreatedAt: user.CreatedAt,
	}
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:             d.ID.Hex(),
		Username:       d.Username,
		Email:          d.Email,
		HashedPassword: d.Password,
		Superuser:      d.Superuser,
		CreatedAt:      d.CreatedAt,
	}
}

// newMenuDocuments assigns ObjectIDs to items that lack a usable one, in
// place, and converts the menu to subdocuments.
func newMenuDocuments(menu []domain.MenuItem) []menuItemDocument {
	domain.AssignMenuItemIDs(menu, primitive.IsValidObjectID, func() string {
		return primitive.NewObjectID().Hex()
	})

	docs := make([]menuItemDocument, len(menu))
	for i, item := range menu {
		// Every ID is a valid hex string after assignment.
		oid, _ := primitive.ObjectIDFromHex(item.ID)
		docs[i] = menuItemDocument{
			ID:        oid,
			FoodItem:  item.FoodItem,
			Price:     item.Price,
			Type:      item.Type,
			ItemImage: item.ItemImage,
		}
	}
	return docs
}

func menuFromDocuments(docs []menuItemDocument) []domain.MenuItem {
	menu := make([]domain.MenuItem, len(docs))
	for i, d := range docs {
		menu[i] = domain.MenuItem{
			ID:        d.ID.Hex(),
			FoodItem:  d.FoodItem,
			Price:     d.Price,
			Type:      d.Type,
			ItemImage: d.ItemImage,
		}
	}
	return menu
}

func (d restaurantDocument) toDomain() *domain.Restaurant {
	r := &domain.Restaurant{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Description:    d.Description,
		Location:       d.Location,
		HashedPassword: d.Password,
		Menu:           menuFromDocuments(d.Menu),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if d.OwnerID != nil {
		r.OwnerID = d.OwnerID.Hex()
	}
	return r
}
