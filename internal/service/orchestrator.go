package service

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"intake/internal/model"
	"intake/internal/repository"
	logx "intake/pkg/logger"
)

// UnsureAcknowledgement prefixes the assistant message when an unsure
// reply is answered with the next question.
const UnsureAcknowledgement = "No problem — we can add that later. "

const (
	maxAssistantMessageLen = 1200
	maxBundleWhyLen        = 200
	maxSalesSummaryLen     = 600
)

// TurnOrchestrator composes the engine once per inbound message:
// numeric pre-pass, extraction, scoring, missing-field resolution,
// bundle matching, message generation, and the lead-capture gate.
type TurnOrchestrator struct {
	extractor *Extractor
	scorer    *Scorer
	resolver  *Resolver
	matcher   *Matcher
	generator MessageGenerator
	leads     repository.LeadStore
}

// NewTurnOrchestrator wires the orchestrator. generator and leads are
// optional: a nil generator always uses the deterministic local
// message, and a nil lead store disables capture.
func NewTurnOrchestrator(
	extractor *Extractor,
	scorer *Scorer,
	resolver *Resolver,
	matcher *Matcher,
	generator MessageGenerator,
	leads repository.LeadStore,
) *TurnOrchestrator {
	return &TurnOrchestrator{
		extractor: extractor,
		scorer:    scorer,
		resolver:  resolver,
		matcher:   matcher,
		generator: generator,
		leads:     leads,
	}
}

var (
	reBareNumber = regexp.MustCompile(`^\$?\d{1,7}(?:\.\d{1,2})?$`)
	reBareRange  = regexp.MustCompile(`^\$?(\d{1,7}(?:\.\d{1,2})?)\s*(?:-|–|to)\s*\$?(\d{1,7}(?:\.\d{1,2})?)$`)
)

// Run executes one conversational turn against the caller-owned state.
// The input state is never mutated; the response carries the fresh
// snapshot the caller should persist for the next turn.
func (o *TurnOrchestrator) Run(ctx context.Context, req model.TurnRequest) (model.TurnResponse, error) {
	prior := model.ChatState{}
	if req.State != nil {
		prior = req.State.Clone()
	}

	unsure := IsUnsure(req.Message)

	st, handled := o.numericPrePass(req.Message, prior)
	if !handled {
		st = o.extractor.Extract(req.Message, prior)
	}
	if unsure {
		// An unsure reply contributes no field values.
		st = prior.Clone()
	}

	result := o.scorer.Score(st)
	missing := o.resolver.Missing(st)
	nextField := o.nextField(st, result.Mode, missing)

	if unsure && nextField != nil {
		if applyUnsureDefault(&st, *nextField) {
			result = o.scorer.Score(st)
			missing = o.resolver.Missing(st)
			nextField = o.nextField(st, result.Mode, missing)
		}
	}

	var bundles []model.BundleSuggestion
	if result.Mode == model.ModeStreamlined && missingOnlyContact(missing) {
		bundles = o.matcher.Match(st)
	}

	nextQuestion := ""
	if nextField != nil {
		nextQuestion = QuestionFor(*nextField)
	}

	resp := model.TurnResponse{
		State:             st,
		Mode:              result.Mode,
		ComplexityScore:   result.Score,
		Reasons:           result.Reasons,
		Missing:           missing,
		BundleSuggestions: bundles,
	}

	resp.AssistantMessage = o.composeMessage(ctx, req, &resp, nextField, nextQuestion)

	if unsure && nextQuestion != "" {
		resp.AssistantMessage = UnsureAcknowledgement + resp.AssistantMessage
	}

	o.captureLead(ctx, req, &resp)

	return resp, nil
}

// Lead looks up a previously captured lead, or nil when no lead store
// is configured or the id is unknown.
func (o *TurnOrchestrator) Lead(ctx context.Context, id uuid.UUID) (*model.Lead, error) {
	if o.leads == nil {
		return nil, nil
	}
	return o.leads.GetLead(ctx, id)
}

// numericPrePass handles a bare number or bare numeric range reply.
// The value goes to quantity when both quantity and budget are unset,
// to budget when only quantity is set, except that a dollar sign
// always means budget. Anything else falls through to the extractor.
func (o *TurnOrchestrator) numericPrePass(text string, prior model.ChatState) (model.ChatState, bool) {
	trimmed := strings.TrimSpace(text)

	value, ok := parseBareValue(trimmed)
	if !ok {
		return prior, false
	}

	st := prior.Clone()
	dollar := strings.Contains(trimmed, "$")

	switch {
	case dollar && st.BudgetPerUnitUSD == nil:
		st.BudgetPerUnitUSD = model.FloatPtr(roundCents(value))
	case dollar:
		return prior, false
	case st.Quantity == nil && st.BudgetPerUnitUSD == nil:
		st.Quantity = model.IntPtr(int(math.Round(value)))
	case st.Quantity != nil && st.BudgetPerUnitUSD == nil:
		st.BudgetPerUnitUSD = model.FloatPtr(roundCents(value))
	default:
		return prior, false
	}

	return st, true
}

func parseBareValue(trimmed string) (float64, bool) {
	if g := reBareRange.FindStringSubmatch(trimmed); g != nil {
		lo, err1 := strconv.ParseFloat(g[1], 64)
		hi, err2 := strconv.ParseFloat(g[2], 64)
		if err1 != nil || err2 != nil || hi < lo {
			return 0, false
		}
		return (lo + hi) / 2, true
	}
	if reBareNumber.MatchString(trimmed) {
		v, err := strconv.ParseFloat(strings.TrimPrefix(trimmed, "$"), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// nextField picks the first missing field, deferring the contact ask:
// email is only promoted when nothing else is missing, the tier is not
// streamlined, and no contact has been shared yet.
func (o *TurnOrchestrator) nextField(st model.ChatState, mode model.Mode, missing []model.FieldKey) *model.FieldKey {
	for _, f := range missing {
		if f != model.FieldEmail {
			key := f
			return &key
		}
	}
	if mode != model.ModeStreamlined && !st.HasContact() && containsField(missing, model.FieldEmail) {
		key := model.FieldEmail
		return &key
	}
	return nil
}

// applyUnsureDefault closes out the two fields that tolerate a default
// when the user declines to answer. All other fields stay open and are
// re-asked later.
func applyUnsureDefault(st *model.ChatState, field model.FieldKey) bool {
	switch field {
	case model.FieldBranding:
		st.Branding = model.BrandingPtr(model.BrandingNone)
		return true
	case model.FieldInternational:
		st.International = model.BoolPtr(false)
		return true
	}
	return false
}

func missingOnlyContact(missing []model.FieldKey) bool {
	if len(missing) == 0 {
		return true
	}
	return len(missing) == 1 && missing[0] == model.FieldEmail
}

func containsField(fields []model.FieldKey, want model.FieldKey) bool {
	for _, f := range fields {
		if f == want {
			return true
		}
	}
	return false
}

// composeMessage asks the collaborator for the assistant message and
// falls back to the deterministic local message when the collaborator
// is missing, fails, or returns output that does not validate. The
// collaborator may only contribute the message text, per-bundle "why"
// notes matched by name, and a sales summary.
func (o *TurnOrchestrator) composeMessage(
	ctx context.Context,
	req model.TurnRequest,
	resp *model.TurnResponse,
	nextField *model.FieldKey,
	nextQuestion string,
) string {
	if o.generator == nil || !o.generator.IsEnabled() {
		return o.fallbackMessage(resp, nextQuestion)
	}

	gen, err := o.generator.GenerateTurnMessage(ctx, TurnContext{
		Message:      req.Message,
		State:        resp.State,
		Mode:         resp.Mode,
		Score:        resp.ComplexityScore,
		Reasons:      resp.Reasons,
		Missing:      resp.Missing,
		NextField:    nextField,
		NextQuestion: nextQuestion,
		Bundles:      resp.BundleSuggestions,
		History:      req.History,
	})
	if err != nil {
		logx.Warn().Err(err).Msg("message collaborator failed, using local fallback")
		return o.fallbackMessage(resp, nextQuestion)
	}

	msg := strings.TrimSpace(gen.AssistantMessage)
	if msg == "" || len(msg) > maxAssistantMessageLen {
		logx.Warn().Int("len", len(msg)).Msg("message collaborator output rejected, using local fallback")
		return o.fallbackMessage(resp, nextQuestion)
	}

	o.adoptBundleNotes(resp, gen.Bundles)
	if summary := strings.TrimSpace(gen.SalesSummary); summary != "" && len(summary) <= maxSalesSummaryLen {
		resp.SalesSummary = summary
	}

	return msg
}

// adoptBundleNotes copies "why" annotations onto the locally computed
// bundles, matched by name. Notes for bundles the matcher did not
// produce are dropped; name, price and lead time are never touched.
func (o *TurnOrchestrator) adoptBundleNotes(resp *model.TurnResponse, notes []GeneratedBundleNote) {
	if len(notes) == 0 || len(resp.BundleSuggestions) == 0 {
		return
	}
	for _, note := range notes {
		why := strings.TrimSpace(note.Why)
		if why == "" || len(why) > maxBundleWhyLen {
			continue
		}
		for i := range resp.BundleSuggestions {
			if resp.BundleSuggestions[i].Name == note.Name {
				resp.BundleSuggestions[i].Why = why
				break
			}
		}
	}
}

// fallbackMessage is the deterministic local message: the next question
// when one exists, otherwise a tier-appropriate closing line.
func (o *TurnOrchestrator) fallbackMessage(resp *model.TurnResponse, nextQuestion string) string {
	if nextQuestion != "" {
		return nextQuestion
	}
	if !resp.State.HasContact() {
		if len(resp.BundleSuggestions) > 0 {
			return "Here are a few bundles that fit your budget and timeline. What's the best email to send a detailed quote to?"
		}
		return "I have everything I need. What's the best email to send a quote to?"
	}
	switch resp.Mode {
	case model.ModeHighTouch:
		return "Thanks! This order has a few moving parts, so a dedicated specialist will reach out to walk through the details with you."
	case model.ModeAssisted:
		return "Thanks, I have everything I need. A gifting specialist will review the details and follow up with you shortly."
	default:
		if len(resp.BundleSuggestions) > 0 {
			return "You're all set! Here are a few bundles that fit your budget and timeline. We'll follow up with a detailed quote."
		}
		return "You're all set! We'll follow up with a detailed quote shortly."
	}
}

// captureLead persists the lead when the contact-and-completeness gate
// passes. Store failures are logged and swallowed; the turn response is
// returned either way, just without a lead id.
func (o *TurnOrchestrator) captureLead(ctx context.Context, req model.TurnRequest, resp *model.TurnResponse) {
	if o.leads == nil {
		return
	}
	if !resp.State.HasContact() || !missingOnlyContact(resp.Missing) {
		return
	}

	history := make([]model.ChatMessage, 0, len(req.History)+2)
	history = append(history, req.History...)
	history = append(history,
		model.ChatMessage{Role: "user", Content: req.Message},
		model.ChatMessage{Role: "assistant", Content: resp.AssistantMessage},
	)

	id, err := o.leads.CreateLead(ctx, model.Lead{
		State:   resp.State,
		Mode:    resp.Mode,
		Score:   resp.ComplexityScore,
		Reasons: resp.Reasons,
		History: history,
	})
	if err != nil {
		logx.Error().Err(err).Msg("failed to persist lead")
		return
	}

	resp.LeadCaptured = true
	resp.LeadID = id.String()
}
