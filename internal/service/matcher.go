package service

import (
	"sort"

	"intake/internal/model"
)

// Why annotation for fast bundles.
const WhyFastTurnaround = "Fast turnaround"

// Matcher filters and sorts the static bundle catalog against the
// current order profile.
type Matcher struct {
	catalog            []model.Bundle
	maxSuggestions     int
	marginFactor       float64
	fastTurnaroundDays int
}

// NewMatcher creates a matcher over the given catalog. A bundle is only
// affordable when its unit price leaves margin under the stated budget
// (unitPrice <= budget * marginFactor).
func NewMatcher(catalog []model.Bundle, maxSuggestions int, marginFactor float64, fastTurnaroundDays int) *Matcher {
	return &Matcher{
		catalog:            catalog,
		maxSuggestions:     maxSuggestions,
		marginFactor:       marginFactor,
		fastTurnaroundDays: fastTurnaroundDays,
	}
}

// Match returns up to maxSuggestions eligible bundles, sorted by lead
// time ascending with unit price descending as the tie-break. It
// returns nothing until both quantity and budget are known.
func (m *Matcher) Match(st model.ChatState) []model.BundleSuggestion {
	if st.Quantity == nil || st.BudgetPerUnitUSD == nil {
		return nil
	}

	qty := *st.Quantity
	budget := *st.BudgetPerUnitUSD

	shipping := model.ShippingUnknown
	if st.ShippingType != nil {
		shipping = *st.ShippingType
	}
	branding := model.BrandingUnknown
	if st.Branding != nil {
		branding = *st.Branding
	}

	eligible := make([]model.Bundle, 0, len(m.catalog))
	for _, b := range m.catalog {
		if b.UnitPrice > budget*m.marginFactor {
			continue
		}
		if qty < b.MinQty || qty > b.MaxQty {
			continue
		}
		if !b.SupportsShipping(shipping) || !b.SupportsBranding(branding) {
			continue
		}
		eligible = append(eligible, b)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].LeadTimeDays != eligible[j].LeadTimeDays {
			return eligible[i].LeadTimeDays < eligible[j].LeadTimeDays
		}
		return eligible[i].UnitPrice > eligible[j].UnitPrice
	})

	if len(eligible) > m.maxSuggestions {
		eligible = eligible[:m.maxSuggestions]
	}

	suggestions := make([]model.BundleSuggestion, 0, len(eligible))
	for _, b := range eligible {
		s := model.BundleSuggestion{
			Name:         b.Name,
			UnitPrice:    b.UnitPrice,
			LeadTimeDays: b.LeadTimeDays,
		}
		if b.LeadTimeDays <= m.fastTurnaroundDays {
			s.Why = WhyFastTurnaround
		}
		suggestions = append(suggestions, s)
	}

	return suggestions
}
