package model

// Mode is the routing tier derived from the complexity score.
type Mode string

const (
	ModeStreamlined Mode = "streamlined"
	ModeAssisted    Mode = "assisted"
	ModeHighTouch   Mode = "high_touch"
)

// ComplexityResult is the outcome of scoring a state: a clamped score,
// the tier it routes to, and one reason string per rule that fired, in
// rule-evaluation order.
type ComplexityResult struct {
	Score   int      `json:"score"`
	Mode    Mode     `json:"mode"`
	Reasons []string `json:"reasons"`
}
