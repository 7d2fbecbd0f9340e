// internal/domain/models/campaign.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Campaign is a marketing campaign definition. It never embeds influencer
// data; see CampaignInfluencer for the join records.
type Campaign struct {
	ID               primitive.ObjectID `bson:"_id" json:"_id"`
	Name             string             `bson:"name" json:"name"`
	NameCI           string             `bson:"name_ci" json:"-"`
	Type             string             `bson:"type" json:"type"`
	BrandURL         string             `bson:"brand_url" json:"brandUrl"`
	Countries        []string           `bson:"countries" json:"countries"`
	StartDate        time.Time          `bson:"start_date" json:"startDate"`
	EndDate          time.Time          `bson:"end_date" json:"endDate"`
	DiscountValue    float64            `bson:"discount_value" json:"discountValue"`
	CouponsAvailable int64              `bson:"coupons_available" json:"couponsAvailable"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
