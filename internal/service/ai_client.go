package service

import (
	"context"

	"intake/internal/model"
)

// MessageGenerator is the optional natural-language collaborator that
// may rewrite the assistant-facing message for a turn. Its output is
// untrusted: the orchestrator validates everything it returns and
// falls back to a deterministic local message on any failure.
type MessageGenerator interface {
	// GenerateTurnMessage produces a conversational message for the
	// already-computed turn context. Awaited once, no retry; bounded
	// by the client's own timeout.
	GenerateTurnMessage(ctx context.Context, tc TurnContext) (*GeneratedMessage, error)

	// IsEnabled returns whether the collaborator is configured.
	IsEnabled() bool
}

// TurnContext is the structured context handed to the collaborator.
// It carries only computed results; the collaborator cannot change
// any of them.
type TurnContext struct {
	Message      string                   `json:"message"`
	State        model.ChatState          `json:"state"`
	Mode         model.Mode               `json:"mode"`
	Score        int                      `json:"score"`
	Reasons      []string                 `json:"reasons"`
	Missing      []model.FieldKey         `json:"missing"`
	NextField    *model.FieldKey          `json:"next_field,omitempty"`
	NextQuestion string                   `json:"next_question,omitempty"`
	Bundles      []model.BundleSuggestion `json:"bundles,omitempty"`
	History      []model.ChatMessage      `json:"history,omitempty"`
}

// GeneratedMessage is the only shape the collaborator may return: the
// assistant message, an optional "why" per already-computed bundle,
// and an optional sales summary. Anything else is ignored or
// overwritten by the orchestrator.
type GeneratedMessage struct {
	AssistantMessage string                `json:"assistant_message"`
	Bundles          []GeneratedBundleNote `json:"bundles,omitempty"`
	SalesSummary     string                `json:"sales_summary,omitempty"`
}

// GeneratedBundleNote annotates one locally computed bundle by name.
// Notes naming bundles outside the computed list are dropped.
type GeneratedBundleNote struct {
	Name string `json:"name"`
	Why  string `json:"why,omitempty"`
}

// Ensure OpenAIClient implements MessageGenerator
var _ MessageGenerator = (*OpenAIClient)(nil)
