package service

import (
	"intake/internal/model"
)

// Extractor turns one raw utterance plus the prior state into an
// updated state snapshot. It is pure and total: fields it cannot
// confidently detect are left exactly as in the prior state, and the
// caller's state is never mutated.
type Extractor struct {
	rules []extractRule
}

// NewExtractor creates an extractor with the default rule cascade.
func NewExtractor() *Extractor {
	return &Extractor{rules: defaultRules()}
}

// Extract runs the rule cascade over the message. The first rule that
// fires for a field wins; fields already set in the prior state are
// never overwritten, with the single exception of the branding
// uncertainty rule, which clears branding and flags it for
// qualification.
func (e *Extractor) Extract(text string, prior model.ChatState) model.ChatState {
	st := prior.Clone()
	m := newMessage(text)

	claimed := make(map[model.FieldKey]bool, len(e.rules))
	for _, r := range e.rules {
		if claimed[r.field] {
			continue
		}
		if r.name != ruleBrandingUncertain && fieldSet(&st, r.field) {
			continue
		}
		if r.apply(m, &st) {
			claimed[r.field] = true
		}
	}

	return st
}

func fieldSet(st *model.ChatState, field model.FieldKey) bool {
	switch field {
	case model.FieldQuantity:
		return st.Quantity != nil
	case model.FieldBudgetPerUnit:
		return st.BudgetPerUnitUSD != nil
	case model.FieldShippingType:
		return st.ShippingType != nil
	case model.FieldBranding:
		return st.Branding != nil
	case model.FieldInternational:
		return st.International != nil
	case model.FieldDistributionTiming:
		return st.DistributionTiming != nil
	case model.FieldAddressHandling:
		return st.AddressHandling != nil
	case model.FieldEmail:
		return st.Email != nil
	case "phone":
		return st.Phone != nil
	case model.FieldDeadline:
		return st.DeadlineText != nil
	}
	return false
}
