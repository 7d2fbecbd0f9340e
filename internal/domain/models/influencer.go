// internal/domain/models/influencer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Influencer statuses.
const (
	InfluencerVerified = "verified"
	InfluencerPending  = "pending"
	InfluencerRejected = "rejected"
)

// InfluencerStatuses lists every accepted influencer status.
var InfluencerStatuses = []string{InfluencerVerified, InfluencerPending, InfluencerRejected}

// Influencer is a profile in the influencer catalog. Influencers are not
// owned by any campaign; the relationship lives in CampaignInfluencer.
type Influencer struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	NameCI    string             `bson:"name_ci" json:"-"`
	Country   string             `bson:"country" json:"country"`
	Followers int64              `bson:"followers" json:"followers"`
	Status    string             `bson:"status" json:"status"`
	BaseCost  float64            `bson:"base_cost" json:"baseCost"`
	Avatar    string             `bson:"avatar" json:"avatar"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
