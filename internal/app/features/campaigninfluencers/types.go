package campaigninfluencers

import (
	"strings"

	campaigninfluencerstore "github.com/dalemusser/affiliatehub/internal/app/store/campaigninfluencers"
	"github.com/dalemusser/affiliatehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// createInput is the POST body. Ids are validated as ObjectIDs but the
// referenced documents are not looked up.
type createInput struct {
	CampaignID      string   `json:"campaignId" validate:"required,objectid" label:"Campaign ID"`
	InfluencerID    string   `json:"influencerId" validate:"required,objectid" label:"Influencer ID"`
	Cost            *float64 `json:"cost" validate:"required,min=0" label:"Cost"`
	AssignedCoupons *int64   `json:"assignedCoupons" validate:"required,min=0" label:"Assigned coupons"`
	Status          string   `json:"status" validate:"required,oneof=invited active completed declined cancelled" label:"Status"`
}

func (in *createInput) sanitize() {
	in.CampaignID = strings.TrimSpace(in.CampaignID)
	in.InfluencerID = strings.TrimSpace(in.InfluencerID)
	in.Status = strings.TrimSpace(in.Status)
}

func (in createInput) model() models.CampaignInfluencer {
	cid, _ := primitive.ObjectIDFromHex(in.CampaignID)
	iid, _ := primitive.ObjectIDFromHex(in.InfluencerID)
	return models.CampaignInfluencer{
		CampaignID:      cid,
		InfluencerID:    iid,
		Cost:            *in.Cost,
		AssignedCoupons: *in.AssignedCoupons,
		Status:          in.Status,
	}
}

type updateInput struct {
	CampaignID      *string  `json:"campaignId" validate:"omitnil,objectid" label:"Campaign ID"`
	InfluencerID    *string  `json:"influencerId" validate:"omitnil,objectid" label:"Influencer ID"`
	Cost            *float64 `json:"cost" validate:"omitnil,min=0" label:"Cost"`
	AssignedCoupons *int64   `json:"assignedCoupons" validate:"omitnil,min=0" label:"Assigned coupons"`
	Status          *string  `json:"status" validate:"omitnil,oneof=invited active completed declined cancelled" label:"Status"`
}

func (in *updateInput) sanitize() {
	for _, p := range []*string{in.CampaignID, in.InfluencerID, in.Status} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
}

func (in updateInput) patch() campaigninfluencerstore.Patch {
	p := campaigninfluencerstore.Patch{
		Cost:            in.Cost,
		AssignedCoupons: in.AssignedCoupons,
		Status:          in.Status,
	}
	if in.CampaignID != nil {
		oid, _ := primitive.ObjectIDFromHex(*in.CampaignID)
		p.CampaignID = &oid
	}
	if in.InfluencerID != nil {
		oid, _ := primitive.ObjectIDFromHex(*in.InfluencerID)
		p.InfluencerID = &oid
	}
	return p
}
