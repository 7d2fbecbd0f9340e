// Package campaignview assembles the client-facing campaign read-model.
//
// A CampaignView is the campaign document plus one InfluencerEntry per link
// in the campaign_influencers collection, in link order. Each entry merges
// the link with the influencer it references. When that influencer cannot
// be loaded (deleted, malformed reference, transient error) the entry keeps
// only the link fields and the raw influencer id; the request still
// succeeds. That lookup is the only place a store error is swallowed.
package campaignview

import (
	"context"
	"time"

	"github.com/dalemusser/affiliatehub/internal/app/system/metrics"
	"github.com/dalemusser/affiliatehub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultFanOut bounds concurrent influencer lookups for one campaign.
const DefaultFanOut = 8

// Campaigns is the subset of the campaign store the reader needs.
type Campaigns interface {
	List(ctx context.Context) ([]models.Campaign, error)
	GetByID(ctx context.Context, id string) (models.Campaign, error)
}

// Links is the subset of the campaign-influencer store the reader needs.
type Links interface {
	ListByCampaign(ctx context.Context, campaignID string) ([]models.CampaignInfluencer, error)
}

// Influencers is the subset of the influencer store the reader needs.
type Influencers interface {
	GetByID(ctx context.Context, id string) (models.Influencer, error)
}

// Reader builds CampaignViews from the three stores.
type Reader struct {
	campaigns   Campaigns
	links       Links
	influencers Influencers
	log         *zap.Logger
	fanOut      int
}

// New returns a Reader with DefaultFanOut.
func New(campaigns Campaigns, links Links, influencers Influencers, logger *zap.Logger) *Reader {
	return &Reader{
		campaigns:   campaigns,
		links:       links,
		influencers: influencers,
		log:         logger,
		fanOut:      DefaultFanOut,
	}
}

// WithFanOut sets the concurrent lookup limit. Values below 1 mean 1.
func (r *Reader) WithFanOut(n int) *Reader {
	if n < 1 {
		n = 1
	}
	r.fanOut = n
	return r
}

// Get returns the view of one campaign. A missing campaign is the only
// not-found failure; link lookup errors propagate unchanged.
func (r *Reader) Get(ctx context.Context, campaignID string) (models.CampaignView, error) {
	c, err := r.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return models.CampaignView{}, err
	}
	return r.assemble(ctx, c)
}

// List returns the view of every campaign, in campaign store order.
// Campaigns are assembled one at a time.
func (r *Reader) List(ctx context.Context) ([]models.CampaignView, error) {
	cs, err := r.campaigns.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.CampaignView, 0, len(cs))
	for _, c := range cs {
		v, err := r.assemble(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *Reader) assemble(ctx context.Context, c models.Campaign) (view models.CampaignView, err error) {
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
		}
		metrics.RecordCampaignView(status, time.Since(start))
	}()

	links, err := r.links.ListByCampaign(ctx, c.ID.Hex())
	if err != nil {
		return models.CampaignView{}, err
	}

	entries := make([]models.InfluencerEntry, len(links))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.fanOut)
	for i, link := range links {
		g.Go(func() error {
			entries[i] = r.entry(gctx, c, link)
			return nil
		})
	}
	// entry never fails, so Wait only synchronises.
	_ = g.Wait()

	return models.CampaignView{Campaign: c, Influencers: entries}, nil
}

func (r *Reader) entry(ctx context.Context, c models.Campaign, link models.CampaignInfluencer) models.InfluencerEntry {
	inf, err := r.influencers.GetByID(ctx, link.InfluencerID.Hex())
	if err != nil {
		r.log.Warn("influencer lookup failed; returning link fields only",
			zap.String("campaign_id", c.ID.Hex()),
			zap.String("campaign_influencer_id", link.ID.Hex()),
			zap.String("influencer_id", link.InfluencerID.Hex()),
			zap.Error(err))
		metrics.RecordDegradedEntry()
		return models.PartialInfluencerEntry(link)
	}
	return models.NewInfluencerEntry(inf, link)
}
