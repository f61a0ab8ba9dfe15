package service

import (
	"fmt"

	"intake/internal/model"
)

// fieldQuestions is the canonical one-line question per field key.
var fieldQuestions = map[model.FieldKey]string{
	model.FieldQuantity:           "How many recipients are we putting gifts together for?",
	model.FieldBudgetPerUnit:      "What's your budget per gift, roughly?",
	model.FieldDeadline:           "When do you need these delivered?",
	model.FieldShippingType:       "Should we ship everything in bulk to one location, or to each recipient individually?",
	model.FieldBranding:           "Would you like any branding on the gifts — embroidery, laser engraving, an insert, or stickers?",
	model.FieldInternational:      "Will any recipients be outside the US?",
	model.FieldDistributionTiming: "Do you want everything delivered at once, or stored and distributed over time?",
	model.FieldAddressHandling:    "Will you provide the recipient addresses, or should we collect them for you?",
	model.FieldEmail:              "What's the best email (or phone number) to reach you at?",
}

// QuestionFor returns the canonical question for a field key, or a
// generic templated question for unknown keys.
func QuestionFor(field model.FieldKey) string {
	if q, ok := fieldQuestions[field]; ok {
		return q
	}
	return fmt.Sprintf("Could you tell me a bit more about your %s?", field)
}
