// Package storeutil holds helpers shared by the Mongo stores.
package storeutil

import (
	"errors"
	"strings"

	"github.com/dalemusser/affiliatehub/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ParseID converts a hex id into an ObjectID. A malformed id is reported as
// not-found so callers never reach the database with it.
func ParseID(entity, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, apperr.NotFound("Invalid %s ID format: %s", strings.ToLower(entity), id)
	}
	return oid, nil
}

// NotFound is the error for a well-formed id with no matching document.
func NotFound(entity, id string) error {
	return apperr.NotFound("%s with ID %s not found", entity, id)
}

// MapNoDocuments turns mongo.ErrNoDocuments into NotFound and passes any
// other error through.
func MapNoDocuments(err error, entity, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return NotFound(entity, id)
	}
	return err
}
