package service

import (
	"testing"

	"intake/internal/model"
)

func TestExtractQuantity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *int
	}{
		{"product noun", "We need 40 gifts for the team", model.IntPtr(40)},
		{"adjective before noun", "250 embroidered hoodies please", model.IntPtr(250)},
		{"count noun", "swag for 75 people", model.IntPtr(75)},
		{"range between", "between 30 and 50 recipients", model.IntPtr(40)},
		{"range dash", "30-50 recipients", model.IntPtr(40)},
		{"for n", "ordering for 120", model.IntPtr(120)},
		{"sending n", "sending out 60 next month", model.IntPtr(60)},
		{"money word rejected", "for 45 dollars", nil},
		{"time word rejected", "in 4 weeks", nil},
		{"dollar prefix rejected", "$45 each", nil},
		{"no number", "gifts for the whole team", nil},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text, model.ChatState{})
			if (got.Quantity == nil) != (tt.want == nil) {
				t.Fatalf("Extract(%q).Quantity = %v, want %v", tt.text, got.Quantity, tt.want)
			}
			if tt.want != nil && *got.Quantity != *tt.want {
				t.Errorf("Extract(%q).Quantity = %d, want %d", tt.text, *got.Quantity, *tt.want)
			}
		})
	}
}

func TestExtractBudget(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		prior model.ChatState
		want  *float64
	}{
		{"dollar each", "budget is $45 each", model.ChatState{}, model.FloatPtr(45)},
		{"bare each", "45 dollars each works", model.ChatState{}, model.FloatPtr(45)},
		{"per unit", "$18.50 per gift", model.ChatState{}, model.FloatPtr(18.50)},
		{"under", "keep it under $30", model.ChatState{}, model.FloatPtr(30)},
		{"around each", "around $25 each", model.ChatState{}, model.FloatPtr(25)},
		{"range between", "between 25 and 35 each", model.ChatState{}, model.FloatPtr(30.0)},
		{"trailing dollar", "our budget is $22", model.ChatState{}, model.FloatPtr(22)},
		{
			"around money with quantity set",
			"around $20",
			model.ChatState{Quantity: model.IntPtr(50)},
			model.FloatPtr(20),
		},
		{"around money without context", "around $20", model.ChatState{}, nil},
		{"no money", "shipping to the office", model.ChatState{}, nil},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text, tt.prior)
			if (got.BudgetPerUnitUSD == nil) != (tt.want == nil) {
				t.Fatalf("Extract(%q).BudgetPerUnitUSD = %v, want %v", tt.text, got.BudgetPerUnitUSD, tt.want)
			}
			if tt.want != nil && *got.BudgetPerUnitUSD != *tt.want {
				t.Errorf("Extract(%q).BudgetPerUnitUSD = %v, want %v", tt.text, *got.BudgetPerUnitUSD, *tt.want)
			}
		})
	}
}

func TestExtractShippingType(t *testing.T) {
	tests := []struct {
		text string
		want model.ShippingType
	}{
		{"ship to their home addresses", model.ShippingIndividual},
		{"each recipient gets their own box", model.ShippingIndividual},
		{"bulk to the office", model.ShippingBulk},
		{"send everything to our HQ", model.ShippingBulk},
		{"drop ship individually please", model.ShippingIndividual},
	}

	e := NewExtractor()
	for _, tt := range tests {
		got := e.Extract(tt.text, model.ChatState{})
		if got.ShippingType == nil || *got.ShippingType != tt.want {
			t.Errorf("Extract(%q).ShippingType = %v, want %v", tt.text, got.ShippingType, tt.want)
		}
	}
}

func TestExtractBranding(t *testing.T) {
	tests := []struct {
		text string
		want model.Branding
	}{
		{"embroidered logo please", model.BrandingEmbroidery},
		{"laser engraving on the tumblers", model.BrandingLaser},
		{"just include a note card", model.BrandingInsert},
		{"a sticker with our logo", model.BrandingSticker},
		{"no branding needed", model.BrandingNone},
	}

	e := NewExtractor()
	for _, tt := range tests {
		got := e.Extract(tt.text, model.ChatState{})
		if got.Branding == nil || *got.Branding != tt.want {
			t.Errorf("Extract(%q).Branding = %v, want %v", tt.text, got.Branding, tt.want)
		}
	}
}

func TestExtractBrandingUncertainClearsField(t *testing.T) {
	prior := model.ChatState{Branding: model.BrandingPtr(model.BrandingEmbroidery)}

	e := NewExtractor()
	got := e.Extract("we haven't decided on the logo placement for these 40 gifts", prior)

	if got.Branding != nil {
		t.Errorf("Branding = %v, want nil after uncertainty", *got.Branding)
	}
	if !got.BrandingNeedsQualification {
		t.Error("BrandingNeedsQualification = false, want true")
	}
	if prior.Branding == nil {
		t.Error("prior state was mutated")
	}
}

func TestExtractConditionalFields(t *testing.T) {
	e := NewExtractor()

	t.Run("timing requires bulk", func(t *testing.T) {
		got := e.Extract("all at once please", model.ChatState{})
		if got.DistributionTiming != nil {
			t.Errorf("DistributionTiming = %v, want nil without shipping type", *got.DistributionTiming)
		}

		bulk := model.ChatState{ShippingType: model.ShippingPtr(model.ShippingBulk)}
		got = e.Extract("all at once please", bulk)
		if got.DistributionTiming == nil || *got.DistributionTiming != model.DistributionAllAtOnce {
			t.Errorf("DistributionTiming = %v, want all_at_once", got.DistributionTiming)
		}

		got = e.Extract("store them and distribute later", bulk)
		if got.DistributionTiming == nil || *got.DistributionTiming != model.DistributionOverTime {
			t.Errorf("DistributionTiming = %v, want over_time", got.DistributionTiming)
		}
	})

	t.Run("address requires individual", func(t *testing.T) {
		got := e.Extract("we'll provide the addresses", model.ChatState{})
		if got.AddressHandling != nil {
			t.Errorf("AddressHandling = %v, want nil without shipping type", *got.AddressHandling)
		}

		indiv := model.ChatState{ShippingType: model.ShippingPtr(model.ShippingIndividual)}
		got = e.Extract("we'll provide the addresses", indiv)
		if got.AddressHandling == nil || *got.AddressHandling != model.AddressProvided {
			t.Errorf("AddressHandling = %v, want provided", got.AddressHandling)
		}

		got = e.Extract("you handle collection and distribution", indiv)
		if got.AddressHandling == nil || *got.AddressHandling != model.AddressHandledByUs {
			t.Errorf("AddressHandling = %v, want handled_by_us", got.AddressHandling)
		}
	})
}

func TestExtractInternational(t *testing.T) {
	tests := []struct {
		text string
		want *bool
	}{
		{"yes", model.BoolPtr(true)},
		{"no", model.BoolPtr(false)},
		{"everyone is in the US", model.BoolPtr(false)},
		{"some folks in Canada too", model.BoolPtr(true)},
		{"we have people overseas", model.BoolPtr(true)},
		{"ship to home addresses across the US", nil},
	}

	e := NewExtractor()
	for _, tt := range tests {
		got := e.Extract(tt.text, model.ChatState{})
		if (got.International == nil) != (tt.want == nil) {
			t.Errorf("Extract(%q).International = %v, want %v", tt.text, got.International, tt.want)
			continue
		}
		if tt.want != nil && *got.International != *tt.want {
			t.Errorf("Extract(%q).International = %v, want %v", tt.text, *got.International, *tt.want)
		}
	}
}

func TestExtractContact(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("reach me at Jane.Doe@Example.COM", model.ChatState{})
	if got.Email == nil || *got.Email != "jane.doe@example.com" {
		t.Errorf("Email = %v, want jane.doe@example.com", got.Email)
	}

	got = e.Extract("call me at (212) 867-5309", model.ChatState{})
	if got.Phone == nil || *got.Phone != "(212) 867-5309" {
		t.Errorf("Phone = %v, want raw (212) 867-5309", got.Phone)
	}

	got = e.Extract("order 12345 please", model.ChatState{})
	if got.Phone != nil {
		t.Errorf("Phone = %v, want nil for short digit runs", *got.Phone)
	}
}

func TestExtractDeadline(t *testing.T) {
	tests := []struct {
		text string
		want *string
	}{
		{"need them by March 1", model.StringPtr("by March 1")},
		{"delivery in 4 weeks", model.StringPtr("in 4 weeks")},
		{"shipping mid-December", model.StringPtr("mid-December")},
		{"we need these asap", model.StringPtr("asap")},
		{"addresses handled by us", nil},
		{"no timeline mentioned", nil},
	}

	e := NewExtractor()
	for _, tt := range tests {
		got := e.Extract(tt.text, model.ChatState{})
		if (got.DeadlineText == nil) != (tt.want == nil) {
			t.Errorf("Extract(%q).DeadlineText = %v, want %v", tt.text, got.DeadlineText, tt.want)
			continue
		}
		if tt.want != nil && *got.DeadlineText != *tt.want {
			t.Errorf("Extract(%q).DeadlineText = %q, want %q", tt.text, *got.DeadlineText, *tt.want)
		}
	}
}

func TestExtractNeverOverwritesSetFields(t *testing.T) {
	prior := model.ChatState{
		Quantity:         model.IntPtr(10),
		BudgetPerUnitUSD: model.FloatPtr(99),
		ShippingType:     model.ShippingPtr(model.ShippingBulk),
	}

	e := NewExtractor()
	got := e.Extract("20 gifts at $45 each, ship to their home addresses", prior)

	if *got.Quantity != 10 {
		t.Errorf("Quantity = %d, want prior value 10", *got.Quantity)
	}
	if *got.BudgetPerUnitUSD != 99 {
		t.Errorf("BudgetPerUnitUSD = %v, want prior value 99", *got.BudgetPerUnitUSD)
	}
	if *got.ShippingType != model.ShippingBulk {
		t.Errorf("ShippingType = %v, want prior value bulk", *got.ShippingType)
	}
}

func TestExtractIdempotent(t *testing.T) {
	text := "We need 40 gifts, budget is $45 each, bulk to the office, no branding, in 4 weeks"

	e := NewExtractor()
	once := e.Extract(text, model.ChatState{})
	twice := e.Extract(text, once)

	if *twice.Quantity != *once.Quantity ||
		*twice.BudgetPerUnitUSD != *once.BudgetPerUnitUSD ||
		*twice.ShippingType != *once.ShippingType ||
		*twice.Branding != *once.Branding ||
		*twice.DeadlineText != *once.DeadlineText {
		t.Error("re-extracting the same text changed already-set fields")
	}
}

func TestIsUnsure(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"I don't know", true},
		{"i dont know yet", true},
		{"not sure", true},
		{"skip", true},
		{"idk", true},
		{"Maybe later.", true},
		{"pass", true},
		{"passing out swag to 50 people", false},
		{"we need 40 gifts", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsUnsure(tt.text); got != tt.want {
			t.Errorf("IsUnsure(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
