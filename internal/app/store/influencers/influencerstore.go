// internal/app/store/influencers/influencerstore.go
package influencerstore

import (
	"context"
	"time"

	"github.com/dalemusser/affiliatehub/internal/app/store/storeutil"
	"github.com/dalemusser/affiliatehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the Mongo collection backing the store.
const Collection = "influencers"

const entity = "Influencer"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Patch lists the fields an update may change. Nil fields are left alone.
type Patch struct {
	Name      *string
	Country   *string
	Followers *int64
	Status    *string
	BaseCost  *float64
	Avatar    *string
}

func (p Patch) set(now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if p.Name != nil {
		set["name"] = *p.Name
		set["name_ci"] = text.Fold(*p.Name)
	}
	if p.Country != nil {
		set["country"] = *p.Country
	}
	if p.Followers != nil {
		set["followers"] = *p.Followers
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.BaseCost != nil {
		set["base_cost"] = *p.BaseCost
	}
	if p.Avatar != nil {
		set["avatar"] = *p.Avatar
	}
	return set
}

// Create assigns the ID, folded name and timestamps, then inserts.
func (s *Store) Create(ctx context.Context, inf models.Influencer) (models.Influencer, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	inf.ID = primitive.NewObjectID()
	inf.NameCI = text.Fold(inf.Name)
	inf.CreatedAt = now
	inf.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, inf); err != nil {
		return models.Influencer{}, err
	}
	return inf, nil
}

// List returns every influencer ordered by name.
func (s *Store) List(ctx context.Context) ([]models.Influencer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Influencer{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads one influencer. Malformed or unknown ids are not-found.
func (s *Store) GetByID(ctx context.Context, id string) (models.Influencer, error) {
	oid, err := storeutil.ParseID(entity, id)
	if err != nil {
		return models.Influencer{}, err
	}
	var inf models.Influencer
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&inf); err != nil {
		return models.Influencer{}, storeutil.MapNoDocuments(err, entity, id)
	}
	return inf, nil
}

// Update applies p and returns the updated document.
func (s *Store) Update(ctx context.Context, id string, p Patch) (models.Influencer, error) {
	oid, err := storeutil.ParseID(entity, id)
	if err != nil {
		return models.Influencer{}, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var inf models.Influencer
	err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": p.set(time.Now().UTC().Truncate(time.Millisecond))}, opts).Decode(&inf)
	if err != nil {
		return models.Influencer{}, storeutil.MapNoDocuments(err, entity, id)
	}
	return inf, nil
}

// Delete removes an influencer and returns the removed document. Links that
// reference it are left in place.
func (s *Store) Delete(ctx context.Context, id string) (models.Influencer, error) {
	oid, err := storeutil.ParseID(entity, id)
	if err != nil {
		return models.Influencer{}, err
	}
	var inf models.Influencer
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&inf); err != nil {
		return models.Influencer{}, storeutil.MapNoDocuments(err, entity, id)
	}
	return inf, nil
}
