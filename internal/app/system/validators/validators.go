// Package validators attaches $jsonSchema validators to the collections the
// stores write. Validation is "moderate": documents already stored are not
// re-checked until they are next updated.
package validators

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/dalemusser/affiliatehub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Mongo server error codes.
const (
	codeNamespaceExists = 48
	codeCommandNotFound = 59
	codeNotSupported    = 115
)

// EnsureAll creates each collection when missing and attaches its schema.
// Servers without collMod support (some DocumentDB versions) are logged and
// skipped. Problems are aggregated so startup reports all of them at once.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		// Every collection then goes through CreateCollection.
		logger.Warn("listCollections failed", zap.Error(err))
	}

	var problems []string
	for _, set := range []struct {
		coll   string
		schema bson.M
	}{
		{"users", usersSchema()},
		{"campaigns", campaignsSchema()},
		{"influencers", influencersSchema()},
		{"campaign_influencers", campaignInfluencersSchema()},
	} {
		if err := ensureCollection(ctx, db, set.coll, existing, logger); err != nil {
			problems = append(problems, set.coll+": "+err.Error())
			continue
		}
		if err := applySchema(ctx, db, set.coll, set.schema); err != nil {
			if unsupported(err) {
				logger.Info("validator skipped (unsupported)", zap.String("collection", set.coll))
				continue
			}
			problems = append(problems, set.coll+": "+err.Error())
			continue
		}
		logger.Info("validator ensured", zap.String("collection", set.coll))
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, existing []string, logger *zap.Logger) error {
	if slices.Contains(existing, name) {
		return nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if hasCode(err, codeNamespaceExists, "already exists") {
			return nil
		}
		return err
	}
	logger.Info("created collection", zap.String("collection", name))
	return nil
}

func applySchema(ctx context.Context, db *mongo.Database, name string, schema bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: schema},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	return db.RunCommand(ctx, cmd).Err()
}

func unsupported(err error) bool {
	return hasCode(err, codeCommandNotFound, "no such command") ||
		hasCode(err, codeNotSupported, "not implemented") ||
		hasCode(err, codeNotSupported, "not supported")
}

// hasCode matches a server command error by code, or by message for
// drivers and proxies that rewrite the code.
func hasCode(err error, code int32, msg string) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	return err != nil && strings.Contains(strings.ToLower(err.Error()), msg)
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func enum(values []string) bson.A {
	out := make(bson.A, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"username", "email", "password_hash", "roles"},
			"properties": bson.M{
				"username":      nonBlank,
				"email":         nonBlank,
				"password_hash": nonBlank,
				"roles":         bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
			},
		},
	}
}

func campaignsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "type", "brand_url", "countries", "start_date", "end_date", "discount_value", "coupons_available"},
			"properties": bson.M{
				"name":              nonBlank,
				"name_ci":           bson.M{"bsonType": "string"},
				"type":              nonBlank,
				"brand_url":         nonBlank,
				"countries":         bson.M{"bsonType": "array", "minItems": 1, "items": bson.M{"bsonType": "string"}},
				"start_date":        bson.M{"bsonType": "date"},
				"end_date":          bson.M{"bsonType": "date"},
				"discount_value":    bson.M{"bsonType": "number", "minimum": 0},
				"coupons_available": bson.M{"bsonType": "number", "minimum": 1},
			},
		},
	}
}

func influencersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "country", "followers", "status", "base_cost"},
			"properties": bson.M{
				"name":      nonBlank,
				"name_ci":   bson.M{"bsonType": "string"},
				"country":   nonBlank,
				"followers": bson.M{"bsonType": "number", "minimum": 0},
				"status":    bson.M{"enum": enum(models.InfluencerStatuses)},
				"base_cost": bson.M{"bsonType": "number", "minimum": 0},
				"avatar":    bson.M{"bsonType": "string"},
			},
		},
	}
}

func campaignInfluencersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"campaign_id", "influencer_id", "cost", "assigned_coupons", "status"},
			"properties": bson.M{
				"campaign_id":      bson.M{"bsonType": "objectId"},
				"influencer_id":    bson.M{"bsonType": "objectId"},
				"cost":             bson.M{"bsonType": "number", "minimum": 0},
				"assigned_coupons": bson.M{"bsonType": "number", "minimum": 0},
				"status":           bson.M{"enum": enum(models.LinkStatuses)},
				"created_at":       bson.M{"bsonType": "date"},
			},
		},
	}
}
