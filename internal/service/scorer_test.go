package service

import (
	"testing"

	"intake/internal/model"
)

func TestScoreStaysInBand(t *testing.T) {
	budgets := []*float64{nil, model.FloatPtr(45)}
	shippings := []*model.ShippingType{nil, model.ShippingPtr(model.ShippingBulk), model.ShippingPtr(model.ShippingIndividual)}
	timings := []*model.DistributionTiming{nil, model.TimingPtr(model.DistributionOverTime)}
	handlings := []*model.AddressHandling{nil, model.HandlingPtr(model.AddressHandledByUs)}
	brandings := []*model.Branding{nil, model.BrandingPtr(model.BrandingEmbroidery), model.BrandingPtr(model.BrandingNone)}
	quantities := []*int{nil, model.IntPtr(500)}
	internationals := []*bool{nil, model.BoolPtr(true)}
	deadlines := []*string{nil, model.StringPtr("asap")}

	s := NewScorer()
	for _, budget := range budgets {
		for _, shipping := range shippings {
			for _, timing := range timings {
				for _, handling := range handlings {
					for _, branding := range brandings {
						for _, qty := range quantities {
							for _, intl := range internationals {
								for _, deadline := range deadlines {
									for _, flag := range []bool{false, true} {
										st := model.ChatState{
											BudgetPerUnitUSD:           budget,
											ShippingType:               shipping,
											DistributionTiming:         timing,
											AddressHandling:            handling,
											Branding:                   branding,
											Quantity:                   qty,
											International:              intl,
											DeadlineText:               deadline,
											BrandingNeedsQualification: flag,
										}
										got := s.Score(st)

										if got.Score < 1 || got.Score > 5 {
											t.Fatalf("Score = %d out of [1,5] for %+v", got.Score, st)
										}
										if flag && got.Mode != model.ModeAssisted {
											t.Fatalf("Mode = %v with qualification flag, want assisted", got.Mode)
										}
										if !flag {
											want := model.ModeStreamlined
											switch {
											case got.Score >= 5:
												want = model.ModeHighTouch
											case got.Score >= 3:
												want = model.ModeAssisted
											}
											if got.Mode != want {
												t.Fatalf("Mode = %v for score %d, want %v", got.Mode, got.Score, want)
											}
										}
									}
								}
							}
						}
					}
				}
			}
		}
	}
}

func TestScoreReasons(t *testing.T) {
	st := model.ChatState{
		Quantity:                   model.IntPtr(250),
		ShippingType:               model.ShippingPtr(model.ShippingIndividual),
		AddressHandling:            model.HandlingPtr(model.AddressHandledByUs),
		Branding:                   model.BrandingPtr(model.BrandingEmbroidery),
		International:              model.BoolPtr(true),
		DeadlineText:               model.StringPtr("in 2 weeks"),
		BrandingNeedsQualification: true,
	}

	got := NewScorer().Score(st)

	want := []string{
		ReasonNoBudget,
		ReasonIndividualShipping,
		ReasonAddressCollection,
		ReasonHighTouchBranding,
		ReasonLargeQuantity,
		ReasonInternational,
		ReasonTightDeadline,
		ReasonBrandingUnclear,
	}
	if len(got.Reasons) != len(want) {
		t.Fatalf("Reasons = %v, want %v", got.Reasons, want)
	}
	for i := range want {
		if got.Reasons[i] != want[i] {
			t.Errorf("Reasons[%d] = %q, want %q", i, got.Reasons[i], want[i])
		}
	}
	if got.Score != 5 {
		t.Errorf("Score = %d, want clamped 5", got.Score)
	}
	if got.Mode != model.ModeAssisted {
		t.Errorf("Mode = %v, want assisted due to qualification flag", got.Mode)
	}
}

func TestScoreMinimalComplexity(t *testing.T) {
	st := model.ChatState{
		Quantity:           model.IntPtr(40),
		BudgetPerUnitUSD:   model.FloatPtr(45),
		ShippingType:       model.ShippingPtr(model.ShippingBulk),
		DistributionTiming: model.TimingPtr(model.DistributionAllAtOnce),
		Branding:           model.BrandingPtr(model.BrandingNone),
		DeadlineText:       model.StringPtr("in 4 weeks"),
	}

	got := NewScorer().Score(st)

	if got.Score != 1 {
		t.Errorf("Score = %d, want 1", got.Score)
	}
	if got.Mode != model.ModeStreamlined {
		t.Errorf("Mode = %v, want streamlined", got.Mode)
	}
	if len(got.Reasons) != 0 {
		t.Errorf("Reasons = %v, want none", got.Reasons)
	}
}

func TestDeadlineSignalsUrgency(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"asap", true},
		{"this is urgent", true},
		{"in 2 weeks", true},
		{"in 10 days", true},
		{"in 4 weeks", false},
		{"in 21 days", false},
		{"mid-December", false},
		{"by March 1", false},
	}

	for _, tt := range tests {
		if got := deadlineSignalsUrgency(tt.text); got != tt.want {
			t.Errorf("deadlineSignalsUrgency(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
