package service

import (
	"intake/internal/model"
)

// anyShipping/anyBranding mark bundles that can be fulfilled however
// the order ships or is branded, including while still unknown.
var anyShipping = []model.ShippingType{model.ShippingIndividual, model.ShippingBulk, model.ShippingUnknown}
var anyBranding = []model.Branding{
	model.BrandingEmbroidery, model.BrandingLaser, model.BrandingInsert,
	model.BrandingSticker, model.BrandingNone, model.BrandingUnknown,
}

// DefaultCatalog returns the static bundle catalog. Read-only; pricing
// and lead times are owned by the merchandising team.
func DefaultCatalog() []model.Bundle {
	return []model.Bundle{
		{
			ID: "classic-mug-set", Name: "Classic Mug & Snack Set",
			UnitPrice: 18.50, LeadTimeDays: 5, MinQty: 10, MaxQty: 500,
			Shipping: anyShipping, Branding: anyBranding,
			Notes: "Ceramic mug, two snacks, kraft box.",
		},
		{
			ID: "desk-essentials", Name: "Desk Essentials Kit",
			UnitPrice: 24.00, LeadTimeDays: 7, MinQty: 25, MaxQty: 1000,
			Shipping: anyShipping, Branding: anyBranding,
			Notes: "Notebook, pen, sticker sheet.",
		},
		{
			ID: "cozy-tee", Name: "Cozy Tee Pack",
			UnitPrice: 12.75, LeadTimeDays: 4, MinQty: 20, MaxQty: 2000,
			Shipping: anyShipping,
			Branding: []model.Branding{model.BrandingSticker, model.BrandingNone, model.BrandingUnknown},
			Notes:    "Soft-touch tee with folded insert card.",
		},
		{
			ID: "premium-hoodie-box", Name: "Premium Hoodie Box",
			UnitPrice: 38.00, LeadTimeDays: 12, MinQty: 25, MaxQty: 750,
			Shipping: anyShipping,
			Branding: []model.Branding{model.BrandingEmbroidery, model.BrandingNone, model.BrandingUnknown},
			Notes:    "Midweight hoodie, optional chest embroidery.",
		},
		{
			ID: "tumbler-duo", Name: "Insulated Tumbler Duo",
			UnitPrice: 21.25, LeadTimeDays: 6, MinQty: 10, MaxQty: 400,
			Shipping: anyShipping,
			Branding: []model.Branding{model.BrandingLaser, model.BrandingNone, model.BrandingUnknown},
			Notes:    "Two tumblers, laser engraving available.",
		},
		{
			ID: "executive-gift-box", Name: "Executive Gift Box",
			UnitPrice: 52.00, LeadTimeDays: 10, MinQty: 5, MaxQty: 150,
			Shipping: []model.ShippingType{model.ShippingIndividual, model.ShippingUnknown},
			Branding: anyBranding,
			Notes:    "Leather goods and a handwritten note card.",
		},
		{
			ID: "welcome-kit", Name: "New Hire Welcome Kit",
			UnitPrice: 29.50, LeadTimeDays: 8, MinQty: 10, MaxQty: 600,
			Shipping: anyShipping, Branding: anyBranding,
			Notes: "Tee, mug, notebook, onboarding insert.",
		},
	}
}
