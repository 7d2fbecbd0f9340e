package influencers

import (
	influencerstore "github.com/dalemusser/affiliatehub/internal/app/store/influencers"
	"github.com/dalemusser/affiliatehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/affiliatehub/internal/domain/models"
)

// createInput is the POST /influencers body.
type createInput struct {
	Name      string   `json:"name" validate:"required,max=200" label:"Name"`
	Country   string   `json:"country" validate:"required,max=100" label:"Country"`
	Followers *int64   `json:"followers" validate:"required,min=0" label:"Followers"`
	Status    string   `json:"status" validate:"required,oneof=verified pending rejected" label:"Status"`
	BaseCost  *float64 `json:"baseCost" validate:"required,min=0" label:"Base cost"`
	Avatar    string   `json:"avatar" validate:"required,max=2048" label:"Avatar"`
}

func (in *createInput) sanitize() {
	in.Name = htmlsanitize.PlainText(in.Name)
	in.Country = htmlsanitize.PlainText(in.Country)
	in.Avatar = htmlsanitize.PlainText(in.Avatar)
}

func (in createInput) model() models.Influencer {
	return models.Influencer{
		Name:      in.Name,
		Country:   in.Country,
		Followers: *in.Followers,
		Status:    in.Status,
		BaseCost:  *in.BaseCost,
		Avatar:    in.Avatar,
	}
}

// updateInput is the PATCH /influencers/{id} body. Only submitted fields
// are validated and written.
type updateInput struct {
	Name      *string  `json:"name" validate:"omitnil,min=1,max=200" label:"Name"`
	Country   *string  `json:"country" validate:"omitnil,min=1,max=100" label:"Country"`
	Followers *int64   `json:"followers" validate:"omitnil,min=0" label:"Followers"`
	Status    *string  `json:"status" validate:"omitnil,oneof=verified pending rejected" label:"Status"`
	BaseCost  *float64 `json:"baseCost" validate:"omitnil,min=0" label:"Base cost"`
	Avatar    *string  `json:"avatar" validate:"omitnil,min=1,max=2048" label:"Avatar"`
}

func (in *updateInput) sanitize() {
	for _, p := range []*string{in.Name, in.Country, in.Avatar} {
		if p != nil {
			*p = htmlsanitize.PlainText(*p)
		}
	}
}

func (in updateInput) patch() influencerstore.Patch {
	return influencerstore.Patch{
		Name:      in.Name,
		Country:   in.Country,
		Followers: in.Followers,
		Status:    in.Status,
		BaseCost:  in.BaseCost,
		Avatar:    in.Avatar,
	}
}
