package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"intake/internal/model"
)

func TestMemoryRepositoryCreateAndGet(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	id, err := repo.CreateLead(ctx, model.Lead{
		State: model.ChatState{
			Quantity: model.IntPtr(40),
			Email:    model.StringPtr("jane@acme.com"),
		},
		Mode:    model.ModeStreamlined,
		Score:   1,
		Reasons: []string{},
	})
	if err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("CreateLead returned the nil UUID")
	}

	lead, err := repo.GetLead(ctx, id)
	if err != nil {
		t.Fatalf("GetLead: %v", err)
	}
	if lead == nil {
		t.Fatal("GetLead returned nil for a stored lead")
	}
	if lead.ID != id {
		t.Errorf("ID = %v, want %v", lead.ID, id)
	}
	if lead.Mode != model.ModeStreamlined || lead.Score != 1 {
		t.Errorf("Mode/Score = %v/%d, want streamlined/1", lead.Mode, lead.Score)
	}
	if lead.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestMemoryRepositoryUnknownLead(t *testing.T) {
	repo := NewMemoryRepository()

	lead, err := repo.GetLead(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetLead: %v", err)
	}
	if lead != nil {
		t.Errorf("GetLead(unknown) = %v, want nil", lead)
	}
}

func TestMemoryRepositoryNormalizesPhone(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	id, err := repo.CreateLead(ctx, model.Lead{
		State: model.ChatState{Phone: model.StringPtr("(212) 867-5309")},
		Mode:  model.ModeAssisted,
	})
	if err != nil {
		t.Fatalf("CreateLead: %v", err)
	}

	lead, err := repo.GetLead(ctx, id)
	if err != nil || lead == nil {
		t.Fatalf("GetLead: lead=%v err=%v", lead, err)
	}
	if lead.PhoneE164 != "+12128675309" {
		t.Errorf("PhoneE164 = %q, want +12128675309", lead.PhoneE164)
	}
	if lead.State.Phone == nil || *lead.State.Phone != "(212) 867-5309" {
		t.Errorf("raw phone = %v, want preserved verbatim", lead.State.Phone)
	}
}

func TestNormalizePhoneE164(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"(212) 867-5309", "+12128675309"},
		{"+44 20 7946 0958", "+442079460958"},
		{"not a number", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizePhoneE164(tt.raw); got != tt.want {
			t.Errorf("normalizePhoneE164(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
