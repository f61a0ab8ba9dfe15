package service

import (
	"regexp"
	"strconv"
	"strings"

	"intake/internal/model"
	"intake/internal/utils"
)

// Reason constants, one per scoring rule.
const (
	ReasonNoBudget           = "Budget not provided"
	ReasonIndividualShipping = "Individual shipping"
	ReasonOverTime           = "Storage and distribution over time"
	ReasonAddressCollection  = "Address collection/distribution handled by us"
	ReasonHighTouchBranding  = "High-touch branding"
	ReasonLargeQuantity      = "Large quantity"
	ReasonInternational      = "International shipping"
	ReasonTightDeadline      = "Tight deadline"
	ReasonBrandingUnclear    = "Branding needs clarification"
)

const (
	minScore          = 1
	maxScore          = 5
	largeQuantity     = 200
	urgentWeeks       = 2
	urgentDays        = 14
	assistedThreshold = 3
	highTouchScore    = 5
)

// Scorer computes the operational complexity of an order profile.
type Scorer struct{}

// NewScorer creates a complexity scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

type scoreRule struct {
	applies func(st model.ChatState) bool
	delta   int
	reason  string
}

// scoreRules run in fixed order; reasons accumulate in this order, not
// in score-contribution order.
var scoreRules = []scoreRule{
	{func(st model.ChatState) bool { return st.BudgetPerUnitUSD == nil }, 1, ReasonNoBudget},
	{func(st model.ChatState) bool {
		return st.ShippingType != nil && *st.ShippingType == model.ShippingIndividual
	}, 2, ReasonIndividualShipping},
	{func(st model.ChatState) bool {
		return st.DistributionTiming != nil && *st.DistributionTiming == model.DistributionOverTime
	}, 1, ReasonOverTime},
	{func(st model.ChatState) bool {
		return st.AddressHandling != nil && *st.AddressHandling == model.AddressHandledByUs
	}, 1, ReasonAddressCollection},
	{func(st model.ChatState) bool {
		return st.Branding != nil && (*st.Branding == model.BrandingLaser || *st.Branding == model.BrandingEmbroidery)
	}, 1, ReasonHighTouchBranding},
	{func(st model.ChatState) bool { return st.Quantity != nil && *st.Quantity > largeQuantity }, 1, ReasonLargeQuantity},
	{func(st model.ChatState) bool { return st.International != nil && *st.International }, 2, ReasonInternational},
	{func(st model.ChatState) bool {
		return st.DeadlineText != nil && deadlineSignalsUrgency(*st.DeadlineText)
	}, 1, ReasonTightDeadline},
	{func(st model.ChatState) bool { return st.BrandingNeedsQualification }, 1, ReasonBrandingUnclear},
}

// Score evaluates all rules in order, clamps to [1,5], and maps the
// clamped score to a routing tier. A pending branding qualification
// forces the assisted tier regardless of the band.
func (s *Scorer) Score(st model.ChatState) model.ComplexityResult {
	score := minScore
	reasons := []string{}

	for _, r := range scoreRules {
		if r.applies(st) {
			score += r.delta
			reasons = append(reasons, r.reason)
		}
	}

	if score > maxScore {
		score = maxScore
	}
	if score < minScore {
		score = minScore
	}

	mode := model.ModeStreamlined
	switch {
	case score >= highTouchScore:
		mode = model.ModeHighTouch
	case score >= assistedThreshold:
		mode = model.ModeAssisted
	}
	if st.BrandingNeedsQualification {
		mode = model.ModeAssisted
	}

	return model.ComplexityResult{Score: score, Mode: mode, Reasons: reasons}
}

var urgencyWords = []string{"asap", "urgent", "rush", "immediately"}

var reUrgencyWindow = regexp.MustCompile(`(?i)\bin\s+(\d+)\s+(weeks?|days?)\b`)

// deadlineSignalsUrgency inspects the opaque deadline phrase for
// urgency markers. The phrase is never parsed into a date.
func deadlineSignalsUrgency(deadlineText string) bool {
	lower := strings.ToLower(deadlineText)
	if utils.ContainsAny(lower, urgencyWords) {
		return true
	}
	g := reUrgencyWindow.FindStringSubmatch(lower)
	if g == nil {
		return false
	}
	n, err := strconv.Atoi(g[1])
	if err != nil {
		return false
	}
	if strings.HasPrefix(g[2], "week") {
		return n <= urgentWeeks
	}
	return n <= urgentDays
}
