package types

// Advice is the advisory analysis produced for an uploaded resume. It is
// cached for the remainder of the upload's session and discarded when the
// resume is discarded.
type Advice struct {
	Score        int           `json:"score"`
	Summary      string        `json:"summary"`
	Strengths    []string      `json:"strengths"`
	Improvements []Improvement `json:"improvements"`
	ActionItems  []string      `json:"action_items"`
}

// Improvement is one concrete, sectioned suggestion within an Advice.
type Improvement struct {
	Section    string `json:"section"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
}

// AdviceResponse is the advisory endpoint response envelope.
type AdviceResponse struct {
	Status     string  `json:"status"`
	SourceFile string  `json:"source_file,omitempty"`
	Advice     *Advice `json:"advice,omitempty"`
	Detail     string  `json:"detail,omitempty"`
}

// Clamp normalizes the score into the documented 0-100 range.
func (a *Advice) Clamp() {
	if a.Score < 0 {
		a.Score = 0
	}
	if a.Score > 100 {
		a.Score = 100
	}
}
