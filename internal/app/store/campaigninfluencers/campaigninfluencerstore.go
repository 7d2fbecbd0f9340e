// internal/app/store/campaigninfluencers/campaigninfluencerstore.go
package campaigninfluencerstore

import (
	"context"
	"time"

	"github.com/dalemusser/affiliatehub/internal/app/store/storeutil"
	"github.com/dalemusser/affiliatehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the Mongo collection backing the store.
const Collection = "campaign_influencers"

const entity = "Campaign influencer"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Patch lists the fields an update may change. Nil fields are left alone.
type Patch struct {
	CampaignID      *primitive.ObjectID
	InfluencerID    *primitive.ObjectID
	Cost            *float64
	AssignedCoupons *int64
	Status          *string
}

func (p Patch) set(now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if p.CampaignID != nil {
		set["campaign_id"] = *p.CampaignID
	}
	if p.InfluencerID != nil {
		set["influencer_id"] = *p.InfluencerID
	}
	if p.Cost != nil {
		set["cost"] = *p.Cost
	}
	if p.AssignedCoupons != nil {
		set["assigned_coupons"] = *p.AssignedCoupons
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	return set
}

// Create inserts a link. The referenced campaign and influencer are not
// checked; the read-model tolerates dangling references.
func (s *Store) Create(ctx context.Context, l models.CampaignInfluencer) (models.CampaignInfluencer, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	l.ID = primitive.NewObjectID()
	if l.Status == "" {
		l.Status = models.LinkInvited
	}
	l.CreatedAt = now
	l.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, l); err != nil {
		return models.CampaignInfluencer{}, err
	}
	return l, nil
}

// List returns every link in creation order.
func (s *Store) List(ctx context.Context) ([]models.CampaignInfluencer, error) {
	return s.find(ctx, bson.M{})
}

// ListByCampaign returns the links of one campaign in creation order.
func (s *Store) ListByCampaign(ctx context.Context, campaignID string) ([]models.CampaignInfluencer, error) {
	oid, err := storeutil.ParseID("campaign", campaignID)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, bson.M{"campaign_id": oid})
}

// ListByInfluencer returns the links of one influencer in creation order.
func (s *Store) ListByInfluencer(ctx context.Context, influencerID string) ([]models.CampaignInfluencer, error) {
	oid, err := storeutil.ParseID("influencer", influencerID)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, bson.M{"influencer_id": oid})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.CampaignInfluencer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.CampaignInfluencer{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads one link. Malformed or unknown ids are not-found.
func (s *Store) GetByID(ctx context.Context, id string) (models.CampaignInfluencer, error) {
	oid, err := storeutil.ParseID(entity, id)
	if err != nil {
		return models.CampaignInfluencer{}, err
	}
	var l models.CampaignInfluencer
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&l); err != nil {
		return models.CampaignInfluencer{}, storeutil.MapNoDocuments(err, entity, id)
	}
	return l, nil
}

// Update applies p and returns the updated document.
func (s *Store) Update(ctx context.Context, id string, p Patch) (models.CampaignInfluencer, error) {
	oid, err := storeutil.ParseID(entity, id)
	if err != nil {
		return models.CampaignInfluencer{}, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var l models.CampaignInfluencer
	err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": p.set(time.Now().UTC().Truncate(time.Millisecond))}, opts).Decode(&l)
	if err != nil {
		return models.CampaignInfluencer{}, storeutil.MapNoDocuments(err, entity, id)
	}
	return l, nil
}

// Delete removes a link and returns the removed document.
func (s *Store) Delete(ctx context.Context, id string) (models.CampaignInfluencer, error) {
	oid, err := storeutil.ParseID(entity, id)
	if err != nil {
		return models.CampaignInfluencer{}, err
	}
	var l models.CampaignInfluencer
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&l); err != nil {
		return models.CampaignInfluencer{}, storeutil.MapNoDocuments(err, entity, id)
	}
	return l, nil
}
