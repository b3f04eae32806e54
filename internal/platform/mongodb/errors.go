package mongodb

import (
	"errors"
	"fmt"

	"github.com/phrazzld/food-delivery-api/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
)

// mapError translates driver errors into the store's error vocabulary.
// notFound and duplicate are the entity-specific sentinels to use; nil
// selects the generic store.ErrNotFound or store.ErrDuplicate.
func mapError(err, notFound, duplicate error) error {
	if err == nil {
		return nil
	}
	if notFound == nil {
		notFound = store.ErrNotFound
	}
	if duplicate == nil {
		duplicate = store.ErrDuplicate
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", duplicate, err)
	}

	return err
}
