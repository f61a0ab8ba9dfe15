package model

// ChatMessage is one entry of the conversation history.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

// TurnRequest is one inbound conversational turn. State and history are
// owned by the caller; when a session ID is supplied and a session
// store is configured, the HTTP layer fills them in server-side.
type TurnRequest struct {
	SessionID string        `json:"session_id,omitempty"`
	Message   string        `json:"message" binding:"required"`
	State     *ChatState    `json:"state,omitempty"`
	History   []ChatMessage `json:"history,omitempty" binding:"omitempty,dive"`
}

// TurnResponse is the result of one orchestrated turn.
type TurnResponse struct {
	AssistantMessage  string             `json:"assistant_message"`
	State             ChatState          `json:"state"`
	Mode              Mode               `json:"mode"`
	ComplexityScore   int                `json:"complexity_score"`
	Reasons           []string           `json:"reasons,omitempty"`
	Missing           []FieldKey         `json:"missing"`
	BundleSuggestions []BundleSuggestion `json:"bundle_suggestions,omitempty"`
	SalesSummary      string             `json:"sales_summary,omitempty"`
	LeadCaptured      bool               `json:"lead_captured,omitempty"`
	LeadID            string             `json:"lead_id,omitempty"`
}
