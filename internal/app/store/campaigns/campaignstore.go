// internal/app/store/campaigns/campaignstore.go
package campaignstore

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
const Collection = "campaigns"

const entity = "Campaign"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Patch lists the fields an update may change. Nil fields are left alone.
type Patch struct {
	Name             *string
	Type             *string
	BrandURL         *string
	Countries        []string
	StartDate        *time.Time
	EndDate          *time.Time
	DiscountValue    *float64
	CouponsAvailable *int64
}

func (p Patch) set(now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if p.Name != nil {
		set["name"] = *p.Name
		set["name_ci"] = text.Fold(*p.Name)
	}
	if p.Type != nil {
		set["type"] = *p.Type
	}
	if p.BrandURL != nil {
		set["brand_url"] = *p.BrandURL
	}
	if p.Countries != nil {
		set["countries"] = p.Countries
	}
	if p.StartDate != nil {
		set["start_date"] = p.StartDate.UTC()
	}
	if p.EndDate != nil {
		set["end_date"] = p.EndDate.UTC()
	}
	if p.DiscountValue != nil {
		set["discount_value"] = *p.DiscountValue
	}
	if p.CouponsAvailable != nil {
		set["coupons_available"] = *p.CouponsAvailable
	}
	return set
}

// Create assigns the ID, folded name and timestamps, then inserts.
func (s *Store) Create(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	c.ID = primitive.NewObjectID()
	c.NameCI = text.Fold(c.Name)
	c.StartDate = c.StartDate.UTC().Truncate(time.Millisecond)
	c.EndDate = c.EndDate.UTC().Truncate(time.Millisecond)
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Campaign{}, err
	}
	return c, nil
}

// List returns every campaign ordered by name.
func (s *Store) List(ctx context.Context) ([]models.Campaign, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Campaign{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads one campaign. Malformed or unknown ids are not-found.
func (s *Store) GetByID(ctx context.Context, id string) (models.Campaign, error) {
	oid, err := storeutil.ParseID(entity, id)
	if err != nil {
		return models.Campaign{}, err
	}
	var c models.Campaign
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		return models.Campaign{}, storeutil.MapNoDocuments(err, entity, id)
	}
	return c, nil
}

// Update applies p and returns the updated document.
func (s *Store) Update(ctx context.Context, id string, p Patch) (models.Campaign, error) {
	oid, err := storeutil.ParseID(entity, id)
	if err != nil {
		return models.Campaign{}, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.Campaign
	err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": p.set(time.Now().UTC().Truncate(time.Millisecond))}, opts).Decode(&c)
	if err != nil {
		return models.Campaign{}, storeutil.MapNoDocuments(err, entity, id)
	}
	return c, nil
}

// Delete removes a campaign and returns the removed document. Its links are
// left in place.
func (s *Store) Delete(ctx context.Context, id string) (models.Campaign, error) {
	oid, err := storeutil.ParseID(entity, id)
	if err != nil {
		return models.Campaign{}, err
	}
	var c models.Campaign
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		return models.Campaign{}, storeutil.MapNoDocuments(err, entity, id)
	}
	return c, nil
}
