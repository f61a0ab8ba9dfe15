package service

import (
	"reflect"
	"testing"

	"intake/internal/model"
)

func TestMissingOrder(t *testing.T) {
	got := NewResolver().Missing(model.ChatState{})

	want := []model.FieldKey{
		model.FieldQuantity,
		model.FieldBudgetPerUnit,
		model.FieldDeadline,
		model.FieldShippingType,
		model.FieldBranding,
		model.FieldEmail,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Missing(empty) = %v, want %v", got, want)
	}
}

func TestMissingConditionalGates(t *testing.T) {
	r := NewResolver()

	t.Run("bulk adds timing only", func(t *testing.T) {
		st := model.ChatState{ShippingType: model.ShippingPtr(model.ShippingBulk)}
		got := r.Missing(st)
		if !containsField(got, model.FieldDistributionTiming) {
			t.Error("bulk order missing list should include distributionTiming")
		}
		if containsField(got, model.FieldAddressHandling) || containsField(got, model.FieldInternational) {
			t.Errorf("bulk order missing list should not include individual-only fields: %v", got)
		}
	})

	t.Run("individual adds international and address", func(t *testing.T) {
		st := model.ChatState{ShippingType: model.ShippingPtr(model.ShippingIndividual)}
		got := r.Missing(st)
		if !containsField(got, model.FieldInternational) || !containsField(got, model.FieldAddressHandling) {
			t.Errorf("individual order missing list should include international and addressHandling: %v", got)
		}
		if containsField(got, model.FieldDistributionTiming) {
			t.Errorf("individual order missing list should not include distributionTiming: %v", got)
		}
	})

	t.Run("unknown shipping adds neither", func(t *testing.T) {
		got := r.Missing(model.ChatState{})
		for _, f := range []model.FieldKey{model.FieldDistributionTiming, model.FieldAddressHandling, model.FieldInternational} {
			if containsField(got, f) {
				t.Errorf("missing list should not include %s without a shipping type", f)
			}
		}
	})
}

func TestMissingContactSatisfiedByEither(t *testing.T) {
	r := NewResolver()

	withEmail := model.ChatState{Email: model.StringPtr("a@b.com")}
	if containsField(r.Missing(withEmail), model.FieldEmail) {
		t.Error("email on state should satisfy the contact requirement")
	}

	withPhone := model.ChatState{Phone: model.StringPtr("(212) 867-5309")}
	if containsField(r.Missing(withPhone), model.FieldEmail) {
		t.Error("phone on state should satisfy the contact requirement")
	}
}

func TestMissingEmptyWhenComplete(t *testing.T) {
	st := model.ChatState{
		Quantity:           model.IntPtr(40),
		BudgetPerUnitUSD:   model.FloatPtr(45),
		DeadlineText:       model.StringPtr("in 4 weeks"),
		ShippingType:       model.ShippingPtr(model.ShippingBulk),
		Branding:           model.BrandingPtr(model.BrandingNone),
		DistributionTiming: model.TimingPtr(model.DistributionAllAtOnce),
		Email:              model.StringPtr("a@b.com"),
	}

	if got := NewResolver().Missing(st); len(got) != 0 {
		t.Errorf("Missing(complete) = %v, want empty", got)
	}
}
