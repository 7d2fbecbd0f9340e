// internal/domain/models/campaignview.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampaignView is the client-facing read-model of a campaign: the campaign
// fields plus one InfluencerEntry per link, in link order.
type CampaignView struct {
	Campaign
	Influencers []InfluencerEntry `json:"influencers"`
}

// InfluencerEntry merges a link with the influencer it references.
//
// When the influencer cannot be resolved the profile fields stay nil and
// only the link fields and the raw influencer id are present.
type InfluencerEntry struct {
	ID        *primitive.ObjectID `json:"_id,omitempty"`
	Name      *string             `json:"name,omitempty"`
	Country   *string             `json:"country,omitempty"`
	Followers *int64              `json:"followers,omitempty"`
	BaseCost  *float64            `json:"baseCost,omitempty"`
	Avatar    *string             `json:"avatar,omitempty"`
	CreatedAt *time.Time          `json:"createdAt,omitempty"`
	UpdatedAt *time.Time          `json:"updatedAt,omitempty"`

	CampaignInfluencerID primitive.ObjectID `json:"campaignInfluencerId"`
	InfluencerID         primitive.ObjectID `json:"influencerId"`
	Cost                 float64            `json:"cost"`
	AssignedCoupons      int64              `json:"assignedCoupons"`
	Status               string             `json:"status"`
}

// HasProfile reports whether the influencer profile was resolved.
func (e InfluencerEntry) HasProfile() bool {
	return e.ID != nil
}

// NewInfluencerEntry builds a full entry. The link status wins over the
// influencer's own status.
func NewInfluencerEntry(inf Influencer, link CampaignInfluencer) InfluencerEntry {
	e := PartialInfluencerEntry(link)
	e.ID = &inf.ID
	e.Name = &inf.Name
	e.Country = &inf.Country
	e.Followers = &inf.Followers
	e.BaseCost = &inf.BaseCost
	e.Avatar = &inf.Avatar
	e.CreatedAt = &inf.CreatedAt
	e.UpdatedAt = &inf.UpdatedAt
	return e
}

// PartialInfluencerEntry builds an entry carrying only the link fields.
func PartialInfluencerEntry(link CampaignInfluencer) InfluencerEntry {
	return InfluencerEntry{
		CampaignInfluencerID: link.ID,
		InfluencerID:         link.InfluencerID,
		Cost:                 link.Cost,
		AssignedCoupons:      link.AssignedCoupons,
		Status:               link.Status,
	}
}
