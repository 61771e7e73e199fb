package repository

import (
	"errors"

	"lingolearn-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Documents are stored with hex string _id values so decoding round-trips
// cleanly; newID allocates one, checkID validates ids coming from requests.

func newID() string {
	return primitive.NewObjectID().Hex()
}

func checkID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return domain.ErrValidation("invalid id %q", id)
	}
	return nil
}

// scopeFilter translates a role-specific listing scope into a Mongo filter.
func scopeFilter(scope domain.ContentScope) bson.M {
	filter := bson.M{}
	if scope.Unrestricted {
		return filter
	}
	if scope.Level != nil {
		filter["level"] = *scope.Level
	}
	if scope.Status != nil {
		filter["status"] = *scope.Status
	}
	if scope.CreatedBy != nil {
		filter["created_by"] = *scope.CreatedBy
	}
	return filter
}

// wrapWrite converts storage-level uniqueness violations into domain
// conflicts; everything else surfaces as a dependency failure.
func wrapWrite(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrConflict("%s", conflictMsg)
	}
	return domain.ErrDependency("storage write failed: %v", err)
}

// wrapFind maps a missing document onto the domain not-found error.
func wrapFind(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound("%s", notFoundMsg)
	}
	return domain.ErrDependency("storage read failed: %v", err)
}
