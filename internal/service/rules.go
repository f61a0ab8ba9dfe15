package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"intake/internal/model"
	"intake/internal/utils"
)

// extractRule is one named matcher in the extraction cascade. Rules run
// in table order, so position in the table is the rule's priority: the
// first rule that fires for a field wins the turn and later rules for
// that field are skipped. Each rule is independent and unit-testable.
type extractRule struct {
	name  string
	field model.FieldKey
	apply func(m *message, st *model.ChatState) bool
}

const ruleBrandingUncertain = "branding/uncertain"

// message is a pre-processed inbound utterance shared by all rules.
type message struct {
	raw    string
	lower  string
	norm   string
	unsure bool
}

var curlyQuotes = strings.NewReplacer("’", "'", "‘", "'", "“", `"`, "”", `"`)

func newMessage(text string) *message {
	clean := curlyQuotes.Replace(text)
	m := &message{
		raw:   clean,
		lower: strings.ToLower(clean),
		norm:  utils.Normalize(clean),
	}
	m.unsure = isUnsurePhrase(m.norm)
	return m
}

// unsurePhrases is the fixed set of utterances that count as declining
// to answer the current question.
var unsurePhrases = []string{
	"i don't know", "i dont know", "don't know", "dont know",
	"not sure", "i'm not sure", "im not sure", "unsure", "no idea",
	"idk", "dunno", "skip", "pass", "maybe later", "not yet",
	"haven't decided", "havent decided", "no clue", "can't say",
	"cant say", "tbd", "we'll see", "not certain",
}

// IsUnsure classifies a raw message against the fixed unsure phrase set.
func IsUnsure(text string) bool {
	return isUnsurePhrase(utils.Normalize(curlyQuotes.Replace(text)))
}

func isUnsurePhrase(norm string) bool {
	if norm == "" {
		return false
	}
	for _, p := range unsurePhrases {
		if norm == p {
			return true
		}
		// Allow a short tail ("i don't know yet"), but only for
		// multi-word phrases so "pass" does not match "passing...".
		if strings.Contains(p, " ") &&
			strings.HasPrefix(norm, p+" ") && len(norm) <= len(p)+25 {
			return true
		}
	}
	return false
}

// --- quantity ---

const unitNouns = `people|recipients|employees|folks|team\s+members|new\s+hires|clients|customers|attendees|guests|units|gifts|boxes|kits|items|pieces|hoodies|shirts|t-shirts|tees|mugs`

var (
	reQtyRangeBetween = regexp.MustCompile(`(?i)\bbetween\s+(\d{1,6})\s+and\s+(\d{1,6})\s+(?:` + unitNouns + `)\b`)
	reQtyRangeDash    = regexp.MustCompile(`(?i)\b(\d{1,6})\s*(?:-|–|\bto\b)\s*(\d{1,6})\s+(?:` + unitNouns + `)\b`)

	reQtyProductNoun = regexp.MustCompile(`(?i)\b(\d{1,6})\s+(?:[a-z][a-z-]*\s+)?(?:gifts?|hoodies?|shirts?|t-shirts?|tees?|mugs?|tumblers?|bottles?|notebooks?|kits?|boxes|bags?|hats?|caps?|jackets?|blankets?|candles?|items?)\b`)
	reQtyCountNoun   = regexp.MustCompile(`(?i)\b(\d{1,6})\s+(?:people|recipients|employees|folks|team\s+members|new\s+hires|clients|customers|attendees|guests|units)\b`)
	reQtyFor         = regexp.MustCompile(`(?i)\bfor\s+(\d{1,6})\b`)
	reQtySending     = regexp.MustCompile(`(?i)\bsend(?:ing)?\s+(?:out\s+)?(\d{1,6})\b`)
	reLeadingNumber  = regexp.MustCompile(`^\D{0,40}?(\d{1,6})\b`)
)

var swagContextWords = []string{"swag", "onboarding", "merch", "gift", "gifts", "gifting", "welcome"}

// moneyish words that disqualify "for N" / leading-number matches from
// being read as a quantity.
var moneyTimeWords = []string{"dollars", "bucks", "usd", "each", "apiece", "per", "weeks", "week", "days", "day", "months", "month", "percent"}

func qtyFromMatch(m *message, re *regexp.Regexp, st *model.ChatState) bool {
	loc := re.FindStringSubmatchIndex(m.raw)
	if loc == nil {
		return false
	}
	// A "$" directly before the number means a price, and a digit or
	// "." means this is the tail of a larger number ("18.50").
	if loc[2] > 0 {
		prev := m.raw[loc[2]-1]
		if prev == '$' || prev == '.' || (prev >= '0' && prev <= '9') {
			return false
		}
	}
	n, err := strconv.Atoi(m.raw[loc[2]:loc[3]])
	if err != nil || n <= 0 {
		return false
	}
	// Reject when the number is immediately followed by a money or
	// time word ("for 45 dollars", "in 4 weeks").
	rest := strings.Fields(strings.ToLower(m.raw[loc[3]:]))
	if len(rest) > 0 {
		for _, w := range moneyTimeWords {
			if rest[0] == w {
				return false
			}
		}
	}
	st.Quantity = model.IntPtr(n)
	return true
}

func qtyRange(m *message, st *model.ChatState) bool {
	for _, re := range []*regexp.Regexp{reQtyRangeBetween, reQtyRangeDash} {
		if g := re.FindStringSubmatch(m.raw); g != nil {
			a, errA := strconv.Atoi(g[1])
			b, errB := strconv.Atoi(g[2])
			if errA != nil || errB != nil || a <= 0 || b <= 0 {
				continue
			}
			st.Quantity = model.IntPtr(int(math.Round(float64(a+b) / 2)))
			return true
		}
	}
	return false
}

func qtySwagFallback(m *message, st *model.ChatState) bool {
	if !utils.ContainsAnyWord(m.lower, swagContextWords) {
		return false
	}
	return qtyFromMatch(m, reLeadingNumber, st)
}

// --- budget per unit ---

const moneySuffix = `each|apiece|a\s+piece|per\s+[a-z]+|dollars|bucks|usd`

var (
	reBudgetRangeBetween = regexp.MustCompile(`(?i)\bbetween\s+\$?(\d{1,6}(?:\.\d{1,2})?)\s+and\s+\$?(\d{1,6}(?:\.\d{1,2})?)\s*(?:` + moneySuffix + `)`)
	reBudgetRangeDash    = regexp.MustCompile(`(?i)\$?(\d{1,6}(?:\.\d{1,2})?)\s*(?:-|–|\bto\b)\s*\$?(\d{1,6}(?:\.\d{1,2})?)\s*(?:` + moneySuffix + `)`)

	reBudgetDollarEach  = regexp.MustCompile(`(?i)\$(\d{1,6}(?:\.\d{1,2})?)\s*(?:each|apiece|a\s+piece|per\s+[a-z]+|/\s*[a-z]+)`)
	reBudgetBareEach    = regexp.MustCompile(`(?i)\b(\d{1,6}(?:\.\d{1,2})?)\s+(?:dollars\s+)?(?:each|apiece|a\s+piece|per\s+[a-z]+)`)
	reBudgetUnder       = regexp.MustCompile(`(?i)(?:under|less\s+than|no\s+more\s+than|<=|≤)\s*\$?(\d{1,6}(?:\.\d{1,2})?)\b`)
	reBudgetAroundEach  = regexp.MustCompile(`(?i)(?:around|about|approximately|roughly|~)\s*\$?(\d{1,6}(?:\.\d{1,2})?)\s*(?:each|apiece|per\s+[a-z]+|dollars|bucks)`)
	reBudgetAroundMoney = regexp.MustCompile(`(?i)(?:around|about|approximately|roughly|~)\s*\$(\d{1,6}(?:\.\d{1,2})?)\b`)
	reBudgetTrailing    = regexp.MustCompile(`\$(\d{1,6}(?:\.\d{1,2})?)\s*$`)
	reBudgetSuffixed    = regexp.MustCompile(`\b(\d{1,6}(?:\.\d{1,2})?)\$\s*$`)
)

var quantityContextWords = []string{"people", "recipients", "employees", "gifts", "units", "folks", "boxes", "kits"}

func budgetRange(m *message, st *model.ChatState) bool {
	for _, re := range []*regexp.Regexp{reBudgetRangeBetween, reBudgetRangeDash} {
		if g := re.FindStringSubmatch(m.raw); g != nil {
			a, errA := strconv.ParseFloat(g[1], 64)
			b, errB := strconv.ParseFloat(g[2], 64)
			if errA != nil || errB != nil || a <= 0 || b <= 0 {
				continue
			}
			st.BudgetPerUnitUSD = model.FloatPtr(roundCents((a + b) / 2))
			return true
		}
	}
	return false
}

func budgetFromMatch(m *message, re *regexp.Regexp, st *model.ChatState) bool {
	g := re.FindStringSubmatch(m.raw)
	if g == nil {
		return false
	}
	v, err := strconv.ParseFloat(g[1], 64)
	if err != nil || v <= 0 {
		return false
	}
	st.BudgetPerUnitUSD = model.FloatPtr(roundCents(v))
	return true
}

func budgetAroundWithQuantityContext(m *message, st *model.ChatState) bool {
	if st.Quantity == nil && !utils.ContainsAnyWord(m.lower, quantityContextWords) {
		return false
	}
	return budgetFromMatch(m, reBudgetAroundMoney, st)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// --- shipping type ---

var individualShippingPhrases = []string{
	"individual", "individually", "each recipient", "each person",
	"home address", "home addresses", "their address", "their addresses",
	"their homes", "to their home", "drop ship", "dropship",
	"separate address", "direct to recipient", "recipients' addresses",
}

var bulkShippingPhrases = []string{
	"bulk", "one location", "single location", "our office", "the office",
	"to the office", "headquarters", "warehouse", "one address",
	"all to us", "our address",
}

func shippingType(m *message, st *model.ChatState) bool {
	// Individual keywords take priority over bulk keywords.
	if utils.ContainsAny(m.lower, individualShippingPhrases) {
		st.ShippingType = model.ShippingPtr(model.ShippingIndividual)
		return true
	}
	if utils.ContainsAny(m.lower, bulkShippingPhrases) || utils.ContainsWord(m.lower, "hq") {
		st.ShippingType = model.ShippingPtr(model.ShippingBulk)
		return true
	}
	return false
}

// --- branding ---

var brandingUncertainPhrases = []string{
	"not sure", "unsure", "don't know", "dont know", "no idea",
	"haven't decided", "havent decided", "undecided", "tbd",
	"still deciding", "open to suggestions",
}

var brandingVocab = []string{
	"brand", "logo", "embroider", "engrav", "laser", "print",
	"sticker", "insert", "customiz", "customis", "personaliz", "decorat",
}

func brandingUncertain(m *message, st *model.ChatState) bool {
	if !utils.ContainsAny(m.lower, brandingUncertainPhrases) || !utils.ContainsAny(m.lower, brandingVocab) {
		return false
	}
	// The only case where extraction clears a previously set field.
	st.Branding = nil
	st.BrandingNeedsQualification = true
	return true
}

// brandingLadder applies the keyword priority ladder:
// embroidery > laser > insert > sticker > explicit none.
func brandingLadder(m *message, st *model.ChatState) bool {
	switch {
	case strings.Contains(m.lower, "embroider"):
		st.Branding = model.BrandingPtr(model.BrandingEmbroidery)
	case utils.ContainsAny(m.lower, []string{"laser", "engrav", "etch"}):
		st.Branding = model.BrandingPtr(model.BrandingLaser)
	case utils.ContainsAny(m.lower, []string{"insert", "note card", "notecard", "handwritten note"}):
		st.Branding = model.BrandingPtr(model.BrandingInsert)
	case utils.ContainsAny(m.lower, []string{"sticker", "label", "decal"}):
		st.Branding = model.BrandingPtr(model.BrandingSticker)
	case utils.ContainsAny(m.lower, []string{"no branding", "no logo", "without branding", "unbranded", "no customization", "no customisation", "skip branding"}):
		st.Branding = model.BrandingPtr(model.BrandingNone)
	default:
		return false
	}
	return true
}

// --- distribution timing (bulk only) ---

var allAtOncePhrases = []string{
	"all at once", "one delivery", "single delivery", "one shipment",
	"single shipment", "same time", "in one go",
}

var overTimePhrases = []string{
	"over time", "stored", "store them", "store the", "distribute later",
	"distributed later", "as needed", "throughout the", "staggered",
	"spread out",
}

func distributionTiming(m *message, st *model.ChatState) bool {
	if st.ShippingType == nil || *st.ShippingType != model.ShippingBulk {
		return false
	}
	switch {
	case m.unsure && len(strings.TrimSpace(m.raw)) < 60:
		st.DistributionTiming = model.TimingPtr(model.DistributionUnknown)
	case utils.ContainsAny(m.lower, allAtOncePhrases):
		st.DistributionTiming = model.TimingPtr(model.DistributionAllAtOnce)
	case utils.ContainsAny(m.lower, overTimePhrases):
		st.DistributionTiming = model.TimingPtr(model.DistributionOverTime)
	default:
		return false
	}
	return true
}

// --- address handling (individual only) ---

var addressProvidedPhrases = []string{
	"we'll provide", "we will provide", "we can provide", "i'll provide",
	"our addresses", "we have the addresses", "we'll send the addresses",
	"we will send the addresses", "provide the addresses", "we'll share",
	"we will share",
}

var addressHandledPhrases = []string{
	"you handle", "you collect", "you gather", "handle collection",
	"collect the addresses", "you guys handle", "handle the addresses",
	"collection and distribution", "you take care of",
}

func addressHandling(m *message, st *model.ChatState) bool {
	if st.ShippingType == nil || *st.ShippingType != model.ShippingIndividual {
		return false
	}
	switch {
	case m.unsure && len(strings.TrimSpace(m.raw)) < 60:
		st.AddressHandling = model.HandlingPtr(model.AddressUnknown)
	case utils.ContainsAny(m.lower, addressProvidedPhrases):
		st.AddressHandling = model.HandlingPtr(model.AddressProvided)
	case utils.ContainsAny(m.lower, addressHandledPhrases):
		st.AddressHandling = model.HandlingPtr(model.AddressHandledByUs)
	default:
		return false
	}
	return true
}

// --- international ---

var bareAffirmatives = []string{"yes", "yeah", "yep", "yup", "sure", "correct", "that's right", "affirmative", "definitely", "absolutely", "y"}
var bareNegatives = []string{"no", "nope", "nah", "not really", "no thanks", "negative", "n"}

var domesticPhrases = []string{
	"domestic", "us only", "us-only", "just the us", "only the us",
	"within the us", "no international", "all in the us",
	"everyone is in the us", "everyone's in the us",
}

var internationalPhrases = []string{
	"international", "outside the us", "outside us", "overseas", "abroad",
	"worldwide", "globally", "across the globe", "multiple countries",
	"global team",
}

var internationalRegions = []string{
	"canada", "uk", "europe", "emea", "apac", "asia", "australia",
	"mexico", "india", "germany", "france", "japan", "singapore",
	"brazil", "latam",
}

func international(m *message, st *model.ChatState) bool {
	for _, a := range bareAffirmatives {
		if m.norm == a {
			st.International = model.BoolPtr(true)
			return true
		}
	}
	for _, n := range bareNegatives {
		if m.norm == n {
			st.International = model.BoolPtr(false)
			return true
		}
	}
	if utils.ContainsAny(m.lower, domesticPhrases) {
		st.International = model.BoolPtr(false)
		return true
	}
	// Keyword inference only ever sets true; absence never forces false.
	if utils.ContainsAny(m.lower, internationalPhrases) || utils.ContainsAnyWord(m.lower, internationalRegions) {
		st.International = model.BoolPtr(true)
		return true
	}
	return false
}

// --- contact ---

var reEmail = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
var rePhoneToken = regexp.MustCompile(`\+?\(?\d[\d\s().\-]{7,}\d`)

func email(m *message, st *model.ChatState) bool {
	match := reEmail.FindString(m.raw)
	if match == "" {
		return false
	}
	st.Email = model.StringPtr(strings.ToLower(match))
	return true
}

func phone(m *message, st *model.ChatState) bool {
	match := rePhoneToken.FindString(m.raw)
	if match == "" {
		return false
	}
	digits := 0
	for _, ch := range match {
		if ch >= '0' && ch <= '9' {
			digits++
		}
	}
	if digits < 10 {
		return false
	}
	// Stored as the matched raw text, never normalized on the state.
	st.Phone = model.StringPtr(strings.TrimSpace(match))
	return true
}

// --- deadline (kept verbatim, never date-parsed) ---

var (
	reDeadlineNeedBy  = regexp.MustCompile(`(?i)\bneed(?:ed)?\s+(?:them\s+|these\s+|it\s+|gifts\s+)?((?:by|before|in)\s+[^,.;!?\n]+)`)
	reDeadlineBy      = regexp.MustCompile(`(?i)\bby\s+([^,.;!?\n]+)`)
	reDeadlineBefore  = regexp.MustCompile(`(?i)\bbefore\s+([^,.;!?\n]+)`)
	reDeadlineWord    = regexp.MustCompile(`(?i)\bdeadline\s*(?:is\s+|:\s*)?([^,.;!?\n]+)`)
	reDeadlineInN     = regexp.MustCompile(`(?i)\b(in\s+\d+\s+(?:weeks?|days?|months?))\b`)
	reDeadlineMid     = regexp.MustCompile(`(?i)\b(mid[-\s](?:january|february|march|april|may|june|july|august|september|october|november|december))\b`)
	reDeadlineASAP    = regexp.MustCompile(`(?i)\b(asap|as\s+soon\s+as\s+possible)\b`)
	reDeadlineUrgent  = regexp.MustCompile(`(?i)\b(urgent(?:ly)?)\b`)
	deadlinePatterns  = []*regexp.Regexp{reDeadlineNeedBy, reDeadlineBy, reDeadlineBefore, reDeadlineWord, reDeadlineInN, reDeadlineMid, reDeadlineASAP, reDeadlineUrgent}
	byPhraseBlocklist = []string{"us", "you", "them", "the team", "then"}
)

func deadline(m *message, st *model.ChatState) bool {
	for _, re := range deadlinePatterns {
		g := re.FindStringSubmatch(m.raw)
		if g == nil {
			continue
		}
		phrase := strings.TrimSpace(g[1])
		if phrase == "" || isAgentPhrase(phrase) {
			continue
		}
		st.DeadlineText = model.StringPtr(phrase)
		return true
	}
	return false
}

// isAgentPhrase filters "handled by us" style captures where "by" marks
// an actor rather than a date.
func isAgentPhrase(phrase string) bool {
	lower := strings.ToLower(phrase)
	for _, b := range byPhraseBlocklist {
		if lower == b || strings.HasPrefix(lower, b+" ") {
			return true
		}
	}
	return false
}

// defaultRules returns the full cascade in priority order. Per-field
// order follows the extraction contract: ranges before singles, the
// branding uncertainty check before the keyword ladder.
func defaultRules() []extractRule {
	return []extractRule{
		{name: "quantity/range", field: model.FieldQuantity, apply: qtyRange},
		{name: "quantity/product-noun", field: model.FieldQuantity, apply: func(m *message, st *model.ChatState) bool { return qtyFromMatch(m, reQtyProductNoun, st) }},
		{name: "quantity/count-noun", field: model.FieldQuantity, apply: func(m *message, st *model.ChatState) bool { return qtyFromMatch(m, reQtyCountNoun, st) }},
		{name: "quantity/for-n", field: model.FieldQuantity, apply: func(m *message, st *model.ChatState) bool { return qtyFromMatch(m, reQtyFor, st) }},
		{name: "quantity/sending-n", field: model.FieldQuantity, apply: func(m *message, st *model.ChatState) bool { return qtyFromMatch(m, reQtySending, st) }},
		{name: "quantity/swag-context", field: model.FieldQuantity, apply: qtySwagFallback},

		{name: "budget/range", field: model.FieldBudgetPerUnit, apply: budgetRange},
		{name: "budget/dollar-each", field: model.FieldBudgetPerUnit, apply: func(m *message, st *model.ChatState) bool { return budgetFromMatch(m, reBudgetDollarEach, st) }},
		{name: "budget/bare-each", field: model.FieldBudgetPerUnit, apply: func(m *message, st *model.ChatState) bool { return budgetFromMatch(m, reBudgetBareEach, st) }},
		{name: "budget/under", field: model.FieldBudgetPerUnit, apply: func(m *message, st *model.ChatState) bool { return budgetFromMatch(m, reBudgetUnder, st) }},
		{name: "budget/around-each", field: model.FieldBudgetPerUnit, apply: func(m *message, st *model.ChatState) bool { return budgetFromMatch(m, reBudgetAroundEach, st) }},
		{name: "budget/around-money", field: model.FieldBudgetPerUnit, apply: budgetAroundWithQuantityContext},
		{name: "budget/trailing-dollar", field: model.FieldBudgetPerUnit, apply: func(m *message, st *model.ChatState) bool { return budgetFromMatch(m, reBudgetTrailing, st) }},
		{name: "budget/suffixed-dollar", field: model.FieldBudgetPerUnit, apply: func(m *message, st *model.ChatState) bool { return budgetFromMatch(m, reBudgetSuffixed, st) }},

		{name: "shipping/keywords", field: model.FieldShippingType, apply: shippingType},

		{name: ruleBrandingUncertain, field: model.FieldBranding, apply: brandingUncertain},
		{name: "branding/ladder", field: model.FieldBranding, apply: brandingLadder},

		{name: "timing/keywords", field: model.FieldDistributionTiming, apply: distributionTiming},
		{name: "address/keywords", field: model.FieldAddressHandling, apply: addressHandling},
		{name: "international/keywords", field: model.FieldInternational, apply: international},

		{name: "contact/email", field: model.FieldEmail, apply: email},
		{name: "contact/phone", field: "phone", apply: phone},

		{name: "deadline/phrases", field: model.FieldDeadline, apply: deadline},
	}
}
