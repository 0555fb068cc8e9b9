package debate

import (
	"context"
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"github.com/slidecrit/core/internal/pkg/jsonx"
)

var scorePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*10`)

// ExtractScore pulls the first "N/10" score from synthesis text. Falls
// back to the scale midpoint when no score is present.
func ExtractScore(text string) float64 {
	m := scorePattern.FindStringSubmatch(text)
	if m == nil {
		return 5.0
	}
	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil || score < 0 || score > 10 {
		return 5.0
	}
	return score
}

// extract issues one narrow extraction call. The raw reply is returned
// alongside any parse error so callers can degrade to it instead of
// discarding the content.
func (e *Engine) extract(ctx context.Context, prompt string, out interface{}) (string, error) {
	res, err := e.generate(ctx, generateRequest{
		Model:       e.cfg.ExtractModel,
		Prompt:      prompt,
		MaxTokens:   1500,
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}
	return res.Text, jsonx.ExtractInto(res.Text, out)
}

// ExtractStrengths identifies the key strengths mentioned across the
// debate. An unparseable reply degrades to a single element wrapping the
// raw text; only a failed call yields the placeholder.
func (e *Engine) ExtractStrengths(ctx context.Context, synthesis string) []string {
	var strengths []string
	raw, err := e.extract(ctx, buildStrengthsPrompt(synthesis), &strengths)
	if err != nil {
		e.logger.Warn("strength extraction failed", zap.Error(err))
		if raw == "" {
			return []string{"See full debate transcript for strengths"}
		}
		return []string{raw}
	}
	return strengths
}

// ExtractIssues identifies weaknesses categorized by severity.
func (e *Engine) ExtractIssues(ctx context.Context, synthesis string) []Issue {
	var issues []Issue
	raw, err := e.extract(ctx, buildIssuesPrompt(synthesis), &issues)
	if err != nil {
		e.logger.Warn("issue extraction failed", zap.Error(err))
		if raw == "" {
			return []Issue{{Issue: "See full debate transcript for issues", Severity: "moderate"}}
		}
		return []Issue{{Issue: raw, Severity: "moderate"}}
	}
	return issues
}

// ExtractActions identifies prioritized recommendations, optionally tied
// to a slide number.
func (e *Engine) ExtractActions(ctx context.Context, synthesis string) []Action {
	var actions []Action
	raw, err := e.extract(ctx, buildActionsPrompt(synthesis), &actions)
	if err != nil {
		e.logger.Warn("action extraction failed", zap.Error(err))
		if raw == "" {
			return []Action{{Action: "Review full debate transcript for recommendations", Priority: "high"}}
		}
		return []Action{{Action: raw, Priority: "medium"}}
	}
	return actions
}

// ExtractConsensus identifies points where multiple personas agreed
// across the given rounds.
func (e *Engine) ExtractConsensus(ctx context.Context, rounds []Round) []string {
	var points []string
	raw, err := e.extract(ctx, buildConsensusPrompt(rounds), &points)
	if err != nil {
		e.logger.Warn("consensus extraction failed", zap.Error(err))
		if raw == "" {
			return []string{"Multiple experts participated in the review"}
		}
		return []string{raw}
	}
	return points
}

// BuildRecommendations runs the full extraction pass over a synthesis and
// its source rounds.
func (e *Engine) BuildRecommendations(ctx context.Context, synthesisText string, rounds []Round) Recommendations {
	return Recommendations{
		OverallScore:       ExtractScore(synthesisText),
		KeyStrengths:       e.ExtractStrengths(ctx, synthesisText),
		CriticalIssues:     e.ExtractIssues(ctx, synthesisText),
		ImprovementActions: e.ExtractActions(ctx, synthesisText),
		ConsensusPoints:    e.ExtractConsensus(ctx, rounds),
	}
}
