package debate

import (
	"fmt"
	"strings"

	"github.com/slidecrit/core/internal/modules/deck"
)

const (
	collabSystemPrompt    = "You are an expert moderator facilitating collaborative AI/ML pitch deck reviews."
	synthesisSystemPrompt = "You are an expert AI/ML pitch deck consultant providing structured, actionable feedback."

	defaultDeckContext = "AI/ML company pitch deck"

	// historyStatementLimit bounds persona statements quoted in the
	// consensus-extraction prompt to respect prompt-size limits.
	historyStatementLimit = 500
)

// buildAnalysisPrompt builds the per-persona critique prompt. Deterministic
// in its inputs; the JSON field names and the severity/priority vocabularies
// are part of the response contract.
func buildAnalysisPrompt(slide deck.Slide) string {
	notes := slide.Notes
	if strings.TrimSpace(notes) == "" {
		notes = "None provided"
	}

	return fmt.Sprintf(`Analyze slide #%d from an AI/ML company pitch deck.

**Slide Title:** %s

**Slide Content:**
%s

**Speaker Notes:**
%s

Provide your expert critique in JSON format:
{
    "overall_score": 1-10,
    "key_strengths": ["Specific strength 1"],
    "critical_issues": [
        {
            "issue": "Specific problem",
            "severity": "Critical|Major|Minor",
            "reasoning": "Why this is a problem"
        }
    ],
    "recommendations": [
        {
            "action": "Specific fix",
            "rationale": "Why this helps",
            "priority": "High|Medium|Low"
        }
    ],
    "questions_to_answer": ["Question 1"]
}

Be specific, technical, and actionable.`, slide.Number, slide.Title, slide.Content, notes)
}

// buildContext builds the cacheable per-persona context block.
func buildContext(slide deck.Slide, prior []Round) string {
	if len(prior) == 0 {
		return fmt.Sprintf(`This is the first analysis of slide %d: %q

Approach this with fresh eyes and deep technical expertise.`, slide.Number, slide.Title)
	}

	return strings.Join([]string{
		fmt.Sprintf("Previous analysis context for slide %d:", slide.Number),
		"",
		"Consider these perspectives but provide your independent expert analysis.",
	}, "\n")
}

// buildCollabPrompt asks the model to moderate the personas' critiques
// into unified feedback with explicit convergence/divergence analysis.
func buildCollabPrompt(slideTitle, deckType string, experts []string, critiques string) string {
	if strings.TrimSpace(deckType) == "" {
		deckType = "AI/ML company"
	}

	return fmt.Sprintf(`You are moderating a collaborative debate session for an AI/ML pitch deck review.

**Slide Context:**
Title: %s
Deck Type: %s

**Participating Experts:**
%s

**Individual Critiques:**
%s

**Your Task:**
Facilitate a collaborative discussion where these experts debate and reach consensus. Synthesize their viewpoints into a unified feedback report.

Output format (JSON):
{
    "unified_feedback": {
        "overall_consensus_score": 1-10,
        "areas_of_agreement": [
            {
                "point": "What all/most experts agree on",
                "supporting_experts": ["Expert name(s)"],
                "severity": "Critical|Major|Minor"
            }
        ],
        "areas_of_disagreement": [
            {
                "topic": "What experts disagree about",
                "viewpoint_a": {"expert": "Name", "position": "Their stance"},
                "viewpoint_b": {"expert": "Name", "position": "Their stance"},
                "resolution": "How to balance these perspectives"
            }
        ],
        "priority_actions": [
            {
                "action": "Specific actionable item",
                "rationale": "Why this is important (consensus from experts)",
                "priority": "High|Medium|Low",
                "estimated_effort": "Hours/Days/Weeks"
            }
        ],
        "questions_for_client": [
            {
                "question": "Specific question we need answered",
                "why_important": "Why this matters for evaluation",
                "asked_by": ["Expert name(s)"]
            }
        ],
        "strengths_to_maintain": ["Strength 1", "Strength 2"],
        "deal_breakers": ["Critical issues that would prevent investment/approval"],
        "recommended_next_steps": ["Step 1", "Step 2", "Step 3"]
    },
    "debate_summary": "2-3 sentence summary of the collaborative discussion"
}

Be specific and actionable. Highlight where experts converged vs diverged.`, slideTitle, deckType, strings.Join(experts, "\n"), critiques)
}

// buildSynthesisPrompt asks for the consensus report over every expert's
// raw feedback.
func buildSynthesisPrompt(deckType, combinedFeedback string) string {
	if strings.TrimSpace(deckType) == "" {
		deckType = defaultDeckContext
	}

	return fmt.Sprintf(`You are an expert AI/ML pitch deck consultant synthesizing feedback from multiple technical and business experts.

Deck Context: %s

Expert Feedback:
%s

Provide a comprehensive synthesis in JSON format:
{
    "overall_score": 1-10,
    "consensus_issues": ["Issue all experts agree on"],
    "technical_concerns": ["Technical feasibility issues"],
    "business_concerns": ["Market/business model issues"],
    "ethical_concerns": ["AI ethics, bias, compliance issues"],
    "priority_fixes": [
        {
            "severity": "Critical|Major|Minor",
            "category": "Technical|Business|Ethics|Product",
            "issue": "Specific problem",
            "fix": "Concrete actionable solution",
            "impact": "Why this matters"
        }
    ],
    "improved_slide_content": {
        "title": "Improved title",
        "key_points": ["Bullet 1", "Bullet 2", "Bullet 3"],
        "speaker_notes": "What to say when presenting"
    },
    "questions_investors_will_ask": ["Question 1", "Question 2"],
    "strengths_to_emphasize": ["What's working well"]
}

Be specific and actionable.`, deckType, combinedFeedback)
}

func buildStrengthsPrompt(synthesis string) string {
	return fmt.Sprintf(`Analyze the following debate about a pitch deck and extract the KEY STRENGTHS that were identified.

Debate Synthesis:
%s

Extract 3-5 key strengths that were mentioned positively across the debate. Be specific and concise.
Return ONLY a JSON array of strings, e.g., ["strength 1", "strength 2", "strength 3"]`, synthesis)
}

func buildIssuesPrompt(synthesis string) string {
	return fmt.Sprintf(`Analyze the following debate about a pitch deck and extract CRITICAL ISSUES and WEAKNESSES.

Debate Synthesis:
%s

Extract 5-8 critical issues, categorized by severity. Return ONLY valid JSON in this exact format:
[
  {"issue": "description of issue", "severity": "critical"},
  {"issue": "description of issue", "severity": "moderate"},
  {"issue": "description of issue", "severity": "minor"}
]

Severity levels: critical, moderate, minor`, synthesis)
}

func buildActionsPrompt(synthesis string) string {
	return fmt.Sprintf(`Analyze the following debate about a pitch deck and extract ACTIONABLE RECOMMENDATIONS.

Debate Synthesis:
%s

Extract 5-10 specific, actionable recommendations prioritized by impact. Return ONLY valid JSON in this exact format:
[
  {"action": "specific action to take", "priority": "high", "slide": 1},
  {"action": "specific action to take", "priority": "medium", "slide": 3},
  {"action": "specific action to take", "priority": "low", "slide": null}
]

Priority levels: high, medium, low
Include slide number if action is specific to a slide, otherwise use null`, synthesis)
}

func buildSlideImprovementsPrompt(slide deck.Slide, synthesis string) string {
	return fmt.Sprintf(`Based on the debate synthesis, provide 3-5 specific improvements for Slide %d.

Slide Content:
Title: %s
Content: %s

Debate Synthesis:
%s

Return ONLY the bulleted improvements (one per line starting with '-'), no other text.`,
		slide.Number, slide.Title, slide.Content, truncateRunes(synthesis, 1500))
}

func buildTopRecommendationsPrompt(synthesis string) string {
	return fmt.Sprintf(`Extract the top 5-7 priority recommendations from this debate synthesis.

Synthesis:
%s

Return ONLY a numbered list (1., 2., 3., etc.) of actionable recommendations, no other text.`, synthesis)
}

func buildConsensusPrompt(rounds []Round) string {
	return fmt.Sprintf(`Analyze the following multi-round debate and identify CONSENSUS POINTS where multiple expert personas AGREE.

Debate Rounds:
%s

Extract 3-5 key points where at least 2-3 different experts expressed agreement or similar concerns.
Return ONLY a JSON array of strings, e.g., ["consensus point 1", "consensus point 2"]`, formatRoundHistory(rounds))
}

// formatRoundHistory flattens multi-round critiques for the consensus
// prompt, truncating each statement to a bounded prefix.
func formatRoundHistory(rounds []Round) string {
	var b strings.Builder
	for i, round := range rounds {
		fmt.Fprintf(&b, "\n=== Round %d ===\n", i+1)
		for _, entry := range round.Debates {
			if entry.Failed() {
				continue
			}
			fmt.Fprintf(&b, "%s: %s...\n\n", entry.PersonaName, truncateRunes(entry.RawResponse, historyStatementLimit))
		}
	}
	return b.String()
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
