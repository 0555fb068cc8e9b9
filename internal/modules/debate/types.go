// Package debate orchestrates per-persona slide critiques, the
// collaborative debate pass, and the consensus synthesis.
package debate

import "encoding/json"

// Critique is the tagged result of one persona call: either the parsed
// structured record or the raw reply when parsing failed. Downstream code
// checks Parsed before reading Structured.
type Critique struct {
	Structured map[string]interface{}
	Raw        string
	Parsed     bool
}

// MarshalJSON flattens the critique for the wire: the structured fields
// plus a parsed flag, or a fallback record carrying the raw text.
func (cr Critique) MarshalJSON() ([]byte, error) {
	if !cr.Parsed {
		return json.Marshal(map[string]interface{}{
			"overall_score": 5,
			"critique_text": cr.Raw,
			"parsed":        false,
		})
	}
	out := make(map[string]interface{}, len(cr.Structured)+1)
	for k, v := range cr.Structured {
		out[k] = v
	}
	out["parsed"] = true
	return json.Marshal(out)
}

// Entry is one persona's contribution to a round. Err is set instead of
// Critique when the generation call for that persona failed; the round
// itself is still valid.
type Entry struct {
	PersonaID   string    `json:"persona_id"`
	PersonaName string    `json:"persona_name"`
	Emoji       string    `json:"emoji"`
	Role        string    `json:"role,omitempty"`
	Color       string    `json:"color,omitempty"`
	Critique    *Critique `json:"critique,omitempty"`
	RawResponse string    `json:"raw_response,omitempty"`
	TokensUsed  int64     `json:"tokens_used,omitempty"`
	Err         string    `json:"error,omitempty"`
}

// Failed reports whether the persona's generation call errored out.
func (e Entry) Failed() bool { return e.Err != "" }

// Round is the set of critiques produced by running the selected personas
// against one slide. A round never mixes slides.
type Round struct {
	Round       int           `json:"round"`
	SlideNumber int           `json:"slide_number"`
	SlideTitle  string        `json:"slide_title"`
	Debates     []Entry       `json:"debates"`
	ElapsedTime float64       `json:"elapsed_time"`
	CacheStats  StatsSnapshot `json:"cache_stats"`
}

// CollabResult is the outcome of the collaborative debate pass.
// ParticipatingExperts counts the personas whose critiques fed the
// debate; it is set even when the call fails so the error object still
// reports who would have participated.
type CollabResult struct {
	CollaborativeDebate  map[string]interface{} `json:"collaborative_debate,omitempty"`
	RawDebate            string                 `json:"raw_debate,omitempty"`
	ParticipatingExperts int                    `json:"participating_experts"`
	Experts              []string               `json:"experts,omitempty"`
	Timestamp            string                 `json:"timestamp,omitempty"`
	Err                  string                 `json:"error,omitempty"`
}

// Synthesis is the parsed consensus report. The map keeps the model's own
// fields plus raw_synthesis (always) and synthesis_timestamp; a failed
// call degrades to {error, raw_feedback}.
type Synthesis map[string]interface{}

// Issue is one extracted weakness with its severity.
type Issue struct {
	Issue    string `json:"issue"`
	Severity string `json:"severity"`
}

// Action is one extracted improvement action. Slide is nil when the
// action is not tied to a specific slide.
type Action struct {
	Action   string `json:"action"`
	Priority string `json:"priority"`
	Slide    *int   `json:"slide"`
}

// Recommendations aggregates the post-processing extraction passes over a
// synthesis. Degraded entries (raw text wrapped in a single element) can
// appear alongside structured ones.
type Recommendations struct {
	OverallScore       float64  `json:"overall_score"`
	KeyStrengths       []string `json:"key_strengths"`
	CriticalIssues     []Issue  `json:"critical_issues"`
	ImprovementActions []Action `json:"improvement_actions"`
	ConsensusPoints    []string `json:"consensus_points"`
}
