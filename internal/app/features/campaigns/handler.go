// internal/app/features/campaigns/handler.go
package campaigns

import (
	campaigninfluencerstore "github.com/dalemusser/affiliatehub/internal/app/store/campaigninfluencers"
	campaignstore "github.com/dalemusser/affiliatehub/internal/app/store/campaigns"
	influencerstore "github.com/dalemusser/affiliatehub/internal/app/store/influencers"
	"github.com/dalemusser/affiliatehub/internal/app/store/queries/campaignview"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Campaigns.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a new Campaigns handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}

// reader builds the read-model assembler over this handler's stores.
func (h *Handler) reader() *campaignview.Reader {
	return campaignview.New(
		campaignstore.New(h.DB),
		campaigninfluencerstore.New(h.DB),
		influencerstore.New(h.DB),
		h.Log,
	)
}
