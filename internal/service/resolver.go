package service

import (
	"intake/internal/model"
)

// Resolver decides which fields the intake still needs, in the fixed
// order they should be asked. An empty result means intake is complete.
type Resolver struct{}

// NewResolver creates a missing-field resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Missing evaluates each requirement independently, in fixed order.
// Conditional fields only apply under their shipping type, and contact
// is satisfied by either an email or a phone number.
func (r *Resolver) Missing(st model.ChatState) []model.FieldKey {
	missing := []model.FieldKey{}

	if st.Quantity == nil {
		missing = append(missing, model.FieldQuantity)
	}
	if st.BudgetPerUnitUSD == nil {
		missing = append(missing, model.FieldBudgetPerUnit)
	}
	if st.DeadlineText == nil {
		missing = append(missing, model.FieldDeadline)
	}
	if st.ShippingType == nil {
		missing = append(missing, model.FieldShippingType)
	}
	if st.Branding == nil {
		missing = append(missing, model.FieldBranding)
	}

	individual := st.ShippingType != nil && *st.ShippingType == model.ShippingIndividual
	bulk := st.ShippingType != nil && *st.ShippingType == model.ShippingBulk

	if individual && st.International == nil {
		missing = append(missing, model.FieldInternational)
	}
	if bulk && st.DistributionTiming == nil {
		missing = append(missing, model.FieldDistributionTiming)
	}
	if individual && st.AddressHandling == nil {
		missing = append(missing, model.FieldAddressHandling)
	}
	if !st.HasContact() {
		missing = append(missing, model.FieldEmail)
	}

	return missing
}
