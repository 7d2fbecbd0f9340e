package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/affiliatehub/internal/app/system/auth"
	"github.com/dalemusser/affiliatehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert into %s: %v", coll, err)
	}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// CreateUser inserts a user whose password is password (hashed at
// bcrypt.MinCost).
func (f *Fixtures) CreateUser(ctx context.Context, username, email, password string, roles ...string) models.User {
	f.t.Helper()

	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash password: %v", err)
	}
	if len(roles) == 0 {
		roles = []string{"user"}
	}
	ts := now()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Roles:        roles,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateInfluencer inserts a verified influencer with the given name.
func (f *Fixtures) CreateInfluencer(ctx context.Context, name string) models.Influencer {
	f.t.Helper()

	ts := now()
	inf := models.Influencer{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Country:   "US",
		Followers: 125000,
		Status:    models.InfluencerVerified,
		BaseCost:  200000,
		Avatar:    "https://example.com/avatar.png",
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	f.insert(ctx, "influencers", inf)
	return inf
}

// CreateCampaign inserts a campaign running for the next 30 days.
func (f *Fixtures) CreateCampaign(ctx context.Context, name string) models.Campaign {
	f.t.Helper()

	ts := now()
	c := models.Campaign{
		ID:               primitive.NewObjectID(),
		Name:             name,
		NameCI:           text.Fold(name),
		Type:             "affiliate",
		BrandURL:         "https://www.ebay.com",
		Countries:        []string{"US", "CA"},
		StartDate:        ts,
		EndDate:          ts.AddDate(0, 0, 30),
		DiscountValue:    5,
		CouponsAvailable: 100,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}
	f.insert(ctx, "campaigns", c)
	return c
}

// CreateLink inserts an active link between a campaign and an influencer.
// Neither id is checked, so dangling links can be created on purpose.
func (f *Fixtures) CreateLink(ctx context.Context, campaignID, influencerID primitive.ObjectID, cost float64, coupons int64) models.CampaignInfluencer {
	f.t.Helper()

	ts := now()
	l := models.CampaignInfluencer{
		ID:              primitive.NewObjectID(),
		CampaignID:      campaignID,
		InfluencerID:    influencerID,
		Cost:            cost,
		AssignedCoupons: coupons,
		Status:          models.LinkActive,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
	f.insert(ctx, "campaign_influencers", l)
	return l
}
