package model

// Bundle is a static catalog entry the matcher can surface once budget
// and quantity are known. Catalog data is read-only.
type Bundle struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	UnitPrice    float64        `json:"unit_price"`
	LeadTimeDays int            `json:"lead_time_days"`
	MinQty       int            `json:"min_qty"`
	MaxQty       int            `json:"max_qty"`
	Shipping     []ShippingType `json:"shipping"`
	Branding     []Branding     `json:"branding"`
	Notes        string         `json:"notes,omitempty"`
}

// SupportsShipping reports whether the bundle can be fulfilled with the
// given shipping type.
func (b Bundle) SupportsShipping(t ShippingType) bool {
	for _, s := range b.Shipping {
		if s == t {
			return true
		}
	}
	return false
}

// SupportsBranding reports whether the bundle can carry the given
// branding treatment.
func (b Bundle) SupportsBranding(t Branding) bool {
	for _, s := range b.Branding {
		if s == t {
			return true
		}
	}
	return false
}

// BundleSuggestion is the user-facing slice of a bundle included in a
// turn response. Identity fields always come from the local catalog;
// only Why may be filled in by the message-generation collaborator.
type BundleSuggestion struct {
	Name         string  `json:"name"`
	UnitPrice    float64 `json:"unit_price"`
	LeadTimeDays int     `json:"lead_time_days"`
	Why          string  `json:"why,omitempty"`
}
