package campaigns

import (
	"time"

	campaignstore "github.com/dalemusser/affiliatehub/internal/app/store/campaigns"
	"github.com/dalemusser/affiliatehub/internal/app/system/apperr"
	"github.com/dalemusser/affiliatehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/affiliatehub/internal/domain/models"
)

// createInput is the POST /campaigns body. Dates are RFC 3339.
type createInput struct {
	Name             string     `json:"name" validate:"required,max=200" label:"Name"`
	Type             string     `json:"type" validate:"required,max=100" label:"Type"`
	BrandURL         string     `json:"brandUrl" validate:"required,httpurl" label:"Brand URL"`
	Countries        []string   `json:"countries" validate:"required,min=1,dive,required" label:"Countries"`
	StartDate        *time.Time `json:"startDate" validate:"required" label:"Start date"`
	EndDate          *time.Time `json:"endDate" validate:"required" label:"End date"`
	DiscountValue    *float64   `json:"discountValue" validate:"required,min=0" label:"Discount value"`
	CouponsAvailable *int64     `json:"couponsAvailable" validate:"required,gt=0" label:"Coupons available"`
}

func (in *createInput) sanitize() {
	in.Name = htmlsanitize.PlainText(in.Name)
	in.Type = htmlsanitize.PlainText(in.Type)
	if in.Countries != nil {
		in.Countries = htmlsanitize.PlainTextAll(in.Countries)
	}
}

func (in createInput) model() models.Campaign {
	return models.Campaign{
		Name:             in.Name,
		Type:             in.Type,
		BrandURL:         in.BrandURL,
		Countries:        in.Countries,
		StartDate:        *in.StartDate,
		EndDate:          *in.EndDate,
		DiscountValue:    *in.DiscountValue,
		CouponsAvailable: *in.CouponsAvailable,
	}
}

// updateInput is the PATCH /campaigns/{id} body. Only submitted fields are
// validated and written.
type updateInput struct {
	Name             *string    `json:"name" validate:"omitnil,min=1,max=200" label:"Name"`
	Type             *string    `json:"type" validate:"omitnil,min=1,max=100" label:"Type"`
	BrandURL         *string    `json:"brandUrl" validate:"omitnil,httpurl" label:"Brand URL"`
	Countries        []string   `json:"countries" validate:"omitnil,min=1,dive,required" label:"Countries"`
	StartDate        *time.Time `json:"startDate" label:"Start date"`
	EndDate          *time.Time `json:"endDate" label:"End date"`
	DiscountValue    *float64   `json:"discountValue" validate:"omitnil,min=0" label:"Discount value"`
	CouponsAvailable *int64     `json:"couponsAvailable" validate:"omitnil,gt=0" label:"Coupons available"`
}

func (in *updateInput) sanitize() {
	for _, p := range []*string{in.Name, in.Type} {
		if p != nil {
			*p = htmlsanitize.PlainText(*p)
		}
	}
	if in.Countries != nil {
		in.Countries = htmlsanitize.PlainTextAll(in.Countries)
	}
}

func (in updateInput) patch() campaignstore.Patch {
	return campaignstore.Patch{
		Name:             in.Name,
		Type:             in.Type,
		BrandURL:         in.BrandURL,
		Countries:        in.Countries,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		DiscountValue:    in.DiscountValue,
		CouponsAvailable: in.CouponsAvailable,
	}
}

// checkDates rejects a window that ends before it starts.
func checkDates(start, end time.Time) error {
	if end.Before(start) {
		return apperr.Validation("End date must not be before start date.")
	}
	return nil
}
