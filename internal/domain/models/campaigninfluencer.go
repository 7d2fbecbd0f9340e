// internal/domain/models/campaigninfluencer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Link statuses for a campaign/influencer relationship.
const (
	LinkInvited   = "invited"
	LinkActive    = "active"
	LinkCompleted = "completed"
	LinkDeclined  = "declined"
	LinkCancelled = "cancelled"
)

// LinkStatuses lists every accepted link status.
var LinkStatuses = []string{LinkInvited, LinkActive, LinkCompleted, LinkDeclined, LinkCancelled}

// CampaignInfluencer ties one campaign to one influencer with the
// negotiated cost and coupon allocation.
//
// NOTE:
//   - The (campaign_id, influencer_id) pair is not unique.
//   - Deleting a campaign or an influencer leaves its links in place.
type CampaignInfluencer struct {
	ID              primitive.ObjectID `bson:"_id" json:"_id"`
	CampaignID      primitive.ObjectID `bson:"campaign_id" json:"campaignId"`
	InfluencerID    primitive.ObjectID `bson:"influencer_id" json:"influencerId"`
	Cost            float64            `bson:"cost" json:"cost"`
	AssignedCoupons int64              `bson:"assigned_coupons" json:"assignedCoupons"`
	Status          string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
