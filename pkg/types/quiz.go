package types

// Tier is the eligibility classification produced by the quiz scorer.
// A qualifies, B is borderline, C is disqualified.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
)

// Answer is one selected option for one question. Immutable once created;
// the session keeps answers in question order and pops the last one when the
// user navigates back.
type Answer struct {
	QuestionID int    `json:"question_id"`
	Value      string `json:"value"`
	Points     int    `json:"points"`
}

type Option struct {
	Text   string `json:"text"`
	Value  string `json:"value"`
	Points int    `json:"points"`
}

// Question is a static catalog entry. The catalog is fixed at compile time
// and never mutated at runtime.
type Question struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// EligibilityResult is derived from the answer sequence on demand, never
// cached or stored independently.
type EligibilityResult struct {
	Tier                   Tier     `json:"tier"`
	TotalScore             int      `json:"total_score"`
	TriggeredDisqualifiers []string `json:"triggered_disqualifiers,omitempty"`
	Reasons                []string `json:"reasons,omitempty"`
}
