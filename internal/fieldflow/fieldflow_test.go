package fieldflow

import (
	"strconv"
	"testing"
)

func parseCount(input string) (any, bool) {
	n, err := strconv.Atoi(input)
	if err != nil || n <= 0 {
		return nil, false
	}
	return n, true
}

func testFlow() *Flow {
	return New([]FieldSpec{
		{Key: "count", Prompt: "How many?", Parse: parseCount},
		{Key: "occasion", Prompt: "What's the occasion?"},
		{Key: "notes", Prompt: "Anything else?", Optional: true},
	})
}

func TestFlowAdvance(t *testing.T) {
	f := testFlow()
	s := f.NewSession()

	prompt, done := f.Advance(s, "40")
	if done || prompt != "What's the occasion?" {
		t.Fatalf("after count: prompt=%q done=%v", prompt, done)
	}
	if s.Values["count"] != 40 {
		t.Errorf("count = %v, want 40", s.Values["count"])
	}

	prompt, done = f.Advance(s, "new hire onboarding")
	if done || prompt != "Anything else?" {
		t.Fatalf("after occasion: prompt=%q done=%v", prompt, done)
	}

	_, done = f.Advance(s, "nothing comes to mind")
	if !done {
		t.Fatal("flow should complete after the last field")
	}
	if s.Phase != PhaseComplete {
		t.Errorf("Phase = %v, want complete", s.Phase)
	}
}

func TestFlowRepromptsOnBadInput(t *testing.T) {
	f := testFlow()
	s := f.NewSession()

	prompt, done := f.Advance(s, "a lot")
	if done || prompt != "How many?" {
		t.Fatalf("bad count should re-prompt: prompt=%q done=%v", prompt, done)
	}
	if _, ok := s.Values["count"]; ok {
		t.Error("failed parse stored a value")
	}

	prompt, done = f.Advance(s, "40")
	if done || prompt != "What's the occasion?" {
		t.Fatalf("valid retry should move on: prompt=%q done=%v", prompt, done)
	}
}

func TestFlowSkipsOptionalFields(t *testing.T) {
	f := testFlow()
	s := f.NewSession()

	f.Advance(s, "40")
	f.Advance(s, "holiday gifts")
	_, done := f.Advance(s, "skip")
	if !done {
		t.Fatal("skip on the last optional field should complete the flow")
	}
	if v, ok := s.Values["notes"]; !ok || v != nil {
		t.Errorf("notes = %v (present %v), want recorded nil skip", v, ok)
	}
}

func TestFlowRecordsHistory(t *testing.T) {
	f := testFlow()
	s := f.NewSession()

	f.Advance(s, "40")

	if len(s.History) != 2 {
		t.Fatalf("History length = %d, want user input + next prompt", len(s.History))
	}
	if s.History[0].Role != "user" || s.History[1].Role != "assistant" {
		t.Errorf("History roles = %v, want user then assistant", s.History)
	}
}
