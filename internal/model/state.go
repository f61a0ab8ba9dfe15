package model

// ShippingType describes how an order leaves the warehouse.
type ShippingType string

const (
	ShippingIndividual ShippingType = "individual"
	ShippingBulk       ShippingType = "bulk"
	ShippingUnknown    ShippingType = "unknown"
)

// Branding describes the customization applied to gifts.
type Branding string

const (
	BrandingEmbroidery Branding = "embroidery"
	BrandingLaser      Branding = "laser"
	BrandingInsert     Branding = "insert"
	BrandingSticker    Branding = "sticker"
	BrandingNone       Branding = "none"
	BrandingUnknown    Branding = "unknown"
)

// DistributionTiming only applies to bulk orders.
type DistributionTiming string

const (
	DistributionAllAtOnce DistributionTiming = "all_at_once"
	DistributionOverTime  DistributionTiming = "over_time"
	DistributionUnknown   DistributionTiming = "unknown"
)

// AddressHandling only applies to individual-shipping orders.
type AddressHandling string

const (
	AddressProvided    AddressHandling = "provided"
	AddressHandledByUs AddressHandling = "handled_by_us"
	AddressUnknown     AddressHandling = "unknown"
)

// FieldKey identifies a ChatState field in missing-field lists and
// question lookups. Keys are stable wire values.
type FieldKey string

const (
	FieldQuantity           FieldKey = "quantity"
	FieldBudgetPerUnit      FieldKey = "budgetPerUnitUsd"
	FieldDeadline           FieldKey = "deadlineText"
	FieldShippingType       FieldKey = "shippingType"
	FieldBranding           FieldKey = "branding"
	FieldInternational      FieldKey = "international"
	FieldDistributionTiming FieldKey = "distributionTiming"
	FieldAddressHandling    FieldKey = "addressHandling"
	FieldEmail              FieldKey = "email"
)

// ChatState is the running order profile built up across a conversation.
// Every field is optional and stays nil until extraction is confident.
// The engine treats ChatState as immutable: each turn returns a fresh
// snapshot and the caller persists it between turns.
type ChatState struct {
	Quantity           *int                `json:"quantity,omitempty"`
	BudgetPerUnitUSD   *float64            `json:"budget_per_unit_usd,omitempty"`
	ShippingType       *ShippingType       `json:"shipping_type,omitempty"`
	Branding           *Branding           `json:"branding,omitempty"`
	International      *bool               `json:"international,omitempty"`
	Email              *string             `json:"email,omitempty"`
	Phone              *string             `json:"phone,omitempty"`
	DeadlineText       *string             `json:"deadline_text,omitempty"`
	DistributionTiming *DistributionTiming `json:"distribution_timing,omitempty"`
	AddressHandling    *AddressHandling    `json:"address_handling,omitempty"`

	// BrandingNeedsQualification is set when the user expressed
	// uncertainty about branding. It forces the assisted routing tier
	// until a specialist qualifies the requirement.
	BrandingNeedsQualification bool `json:"branding_needs_qualification,omitempty"`
}

// Clone returns a deep copy so callers can hand the state to the engine
// without aliasing the pointers it holds.
func (s ChatState) Clone() ChatState {
	out := s
	out.Quantity = cloneInt(s.Quantity)
	out.BudgetPerUnitUSD = cloneFloat(s.BudgetPerUnitUSD)
	out.ShippingType = clonePtr(s.ShippingType)
	out.Branding = clonePtr(s.Branding)
	out.International = clonePtr(s.International)
	out.Email = clonePtr(s.Email)
	out.Phone = clonePtr(s.Phone)
	out.DeadlineText = clonePtr(s.DeadlineText)
	out.DistributionTiming = clonePtr(s.DistributionTiming)
	out.AddressHandling = clonePtr(s.AddressHandling)
	return out
}

// HasContact reports whether the user has shared any way to reach them.
func (s ChatState) HasContact() bool {
	return s.Email != nil || s.Phone != nil
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Helpers for building states in services and tests.

func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }

func StringPtr(v string) *string { return &v }

func BoolPtr(v bool) *bool { return &v }

func ShippingPtr(v ShippingType) *ShippingType { return &v }

func BrandingPtr(v Branding) *Branding { return &v }

func TimingPtr(v DistributionTiming) *DistributionTiming { return &v }

func HandlingPtr(v AddressHandling) *AddressHandling { return &v }
