// Package seed creates the accounts and demo data a fresh database needs.
package seed

import (
	"context"
	"fmt"
	"time"

	campaigninfluencerstore "github.com/dalemusser/affiliatehub/internal/app/store/campaigninfluencers"
	campaignstore "github.com/dalemusser/affiliatehub/internal/app/store/campaigns"
	influencerstore "github.com/dalemusser/affiliatehub/internal/app/store/influencers"
	userstore "github.com/dalemusser/affiliatehub/internal/app/store/users"
	"github.com/dalemusser/affiliatehub/internal/app/system/auth"
	"github.com/dalemusser/affiliatehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Account is a user created by EnsureDefaultUsers.
type Account struct {
	Username string
	Email    string
	Password string
	Roles    []string
}

// DefaultAccounts are the two accounts every environment starts with.
var DefaultAccounts = []Account{
	{Username: "admin", Email: "admin@example.com", Password: "admin123", Roles: []string{"admin"}},
	{Username: "user", Email: "user@example.com", Password: "user123", Roles: []string{"user"}},
}

// Seeder writes seed data through the regular stores.
type Seeder struct {
	db   *mongo.Database
	log  *zap.Logger
	cost int
}

func New(db *mongo.Database, logger *zap.Logger) *Seeder {
	return &Seeder{db: db, log: logger, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *Seeder) WithHashCost(cost int) *Seeder {
	s.cost = cost
	return s
}

// EnsureDefaultUsers creates each default account whose username is not yet
// taken and returns how many were created. Existing accounts are left as
// they are, passwords included.
func (s *Seeder) EnsureDefaultUsers(ctx context.Context) (int, error) {
	return s.EnsureUsers(ctx, DefaultAccounts)
}

// EnsureUsers creates the accounts in order, skipping taken usernames.
func (s *Seeder) EnsureUsers(ctx context.Context, accounts []Account) (int, error) {
	users := userstore.New(s.db)
	created := 0
	for _, a := range accounts {
		exists, err := users.UsernameExists(ctx, a.Username)
		if err != nil {
			return created, fmt.Errorf("check user %q: %w", a.Username, err)
		}
		if exists {
			s.log.Debug("seed user already exists", zap.String("username", a.Username))
			continue
		}

		hash, err := auth.HashPassword(a.Password, s.cost)
		if err != nil {
			return created, err
		}
		u, err := users.Create(ctx, models.User{
			Username:     a.Username,
			Email:        a.Email,
			PasswordHash: hash,
			Roles:        a.Roles,
		})
		if err != nil {
			return created, fmt.Errorf("create user %q: %w", a.Username, err)
		}
		created++
		s.log.Info("seeded user", zap.String("username", u.Username), zap.Strings("roles", u.Roles))
	}
	return created, nil
}

// Demo is the sample campaign, influencer and link written by SeedDemo.
type Demo struct {
	Campaign   models.Campaign
	Influencer models.Influencer
	Link       models.CampaignInfluencer
}

// DemoCampaignName and DemoInfluencerName identify the sample records.
// SeedDemo reuses records with these names instead of creating new ones.
const (
	DemoCampaignName   = "Summer Ebay affiliates"
	DemoInfluencerName = "Michael Ryhe"
)

// SeedDemo writes whichever of the sample campaign, influencer and link are
// missing, so a run interrupted partway is completed by the next one. The
// bool reports whether anything was written.
func (s *Seeder) SeedDemo(ctx context.Context, now time.Time) (Demo, bool, error) {
	var (
		demo  Demo
		wrote bool
	)

	c, found, err := s.demoCampaign(ctx)
	if err != nil {
		return Demo{}, false, err
	}
	if !found {
		start := now.UTC().Truncate(24 * time.Hour)
		c, err = campaignstore.New(s.db).Create(ctx, models.Campaign{
			Name:             DemoCampaignName,
			Type:             "affiliate",
			BrandURL:         "https://www.ebay.com",
			Countries:        []string{"US", "UK", "DE"},
			StartDate:        start,
			EndDate:          start.AddDate(0, 3, 0),
			DiscountValue:    5,
			CouponsAvailable: 100,
		})
		if err != nil {
			return Demo{}, false, fmt.Errorf("create demo campaign: %w", err)
		}
		wrote = true
	}
	demo.Campaign = c

	inf, found, err := s.demoInfluencer(ctx)
	if err != nil {
		return Demo{}, wrote, err
	}
	if !found {
		inf, err = influencerstore.New(s.db).Create(ctx, models.Influencer{
			Name:      DemoInfluencerName,
			Country:   "France",
			Followers: 1200000,
			Status:    models.InfluencerVerified,
			BaseCost:  200000,
			Avatar:    "1.jpg",
		})
		if err != nil {
			return Demo{}, wrote, fmt.Errorf("create demo influencer: %w", err)
		}
		wrote = true
	}
	demo.Influencer = inf

	links := campaigninfluencerstore.New(s.db)
	existing, err := links.ListByCampaign(ctx, c.ID.Hex())
	if err != nil {
		return Demo{}, wrote, err
	}
	for _, l := range existing {
		if l.InfluencerID == inf.ID {
			demo.Link = l
			break
		}
	}
	if demo.Link.ID.IsZero() {
		demo.Link, err = links.Create(ctx, models.CampaignInfluencer{
			CampaignID:      c.ID,
			InfluencerID:    inf.ID,
			Cost:            206400,
			AssignedCoupons: 10,
			Status:          models.LinkActive,
		})
		if err != nil {
			return Demo{}, wrote, fmt.Errorf("create demo link: %w", err)
		}
		wrote = true
	}

	if !wrote {
		s.log.Info("demo data already present", zap.String("campaign_id", c.ID.Hex()))
		return demo, false, nil
	}
	s.log.Info("seeded demo data",
		zap.String("campaign_id", c.ID.Hex()),
		zap.String("influencer_id", inf.ID.Hex()),
		zap.String("link_id", demo.Link.ID.Hex()))
	return demo, true, nil
}

func (s *Seeder) demoCampaign(ctx context.Context) (models.Campaign, bool, error) {
	all, err := campaignstore.New(s.db).List(ctx)
	if err != nil {
		return models.Campaign{}, false, err
	}
	for _, c := range all {
		if c.Name == DemoCampaignName {
			return c, true, nil
		}
	}
	return models.Campaign{}, false, nil
}

func (s *Seeder) demoInfluencer(ctx context.Context) (models.Influencer, bool, error) {
	all, err := influencerstore.New(s.db).List(ctx)
	if err != nil {
		return models.Influencer{}, false, err
	}
	for _, inf := range all {
		if inf.Name == DemoInfluencerName {
			return inf, true, nil
		}
	}
	return models.Influencer{}, false, nil
}
