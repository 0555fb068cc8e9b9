package debate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"simple", "Overall I rate this deck 7/10.", 7},
		{"decimal", "score: 6.5/10 with reservations", 6.5},
		{"spaced", "I give it 8 / 10", 8},
		{"first wins", "4/10 on tech, 9/10 on vision", 4},
		{"no score", "strong deck, needs work on GTM", 5},
		{"out of range", "scored 42/10 somehow", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractScore(tt.text))
		})
	}
}

func TestExtractIssuesParsesSeverities(t *testing.T) {
	engine := testEngine(func(ctx context.Context, req generateRequest) (generateResult, error) {
		return generateResult{Text: `[
			{"issue": "No evaluation metrics", "severity": "critical"},
			{"issue": "Vague timeline", "severity": "minor"}
		]`}, nil
	})

	issues := engine.ExtractIssues(context.Background(), "synthesis text")

	require.Len(t, issues, 2)
	assert.Equal(t, "No evaluation metrics", issues[0].Issue)
	assert.Equal(t, "critical", issues[0].Severity)
}

func TestExtractIssuesPlaceholderOnCallFailure(t *testing.T) {
	engine := testEngine(func(ctx context.Context, req generateRequest) (generateResult, error) {
		return generateResult{}, errors.New("unavailable")
	})

	issues := engine.ExtractIssues(context.Background(), "synthesis text")

	require.Len(t, issues, 1)
	assert.Equal(t, "moderate", issues[0].Severity)
	assert.Contains(t, issues[0].Issue, "transcript")
}

func TestExtractStrengthsWrapsRawOnParseFailure(t *testing.T) {
	reply := "The deck's strongest point is its proprietary data pipeline."
	engine := testEngine(func(ctx context.Context, req generateRequest) (generateResult, error) {
		return generateResult{Text: reply}, nil
	})

	strengths := engine.ExtractStrengths(context.Background(), "synthesis text")

	require.Len(t, strengths, 1)
	assert.Equal(t, reply, strengths[0])
}

func TestExtractIssuesWrapsRawOnParseFailure(t *testing.T) {
	reply := "Critical: the model claims are unverifiable."
	engine := testEngine(func(ctx context.Context, req generateRequest) (generateResult, error) {
		return generateResult{Text: reply}, nil
	})

	issues := engine.ExtractIssues(context.Background(), "synthesis text")

	require.Len(t, issues, 1)
	assert.Equal(t, reply, issues[0].Issue)
	assert.Equal(t, "moderate", issues[0].Severity)
}

func TestExtractActionsWrapsRawOnParseFailure(t *testing.T) {
	reply := "You should add a benchmark comparison table."
	engine := testEngine(func(ctx context.Context, req generateRequest) (generateResult, error) {
		return generateResult{Text: reply}, nil
	})

	actions := engine.ExtractActions(context.Background(), "synthesis text")

	require.Len(t, actions, 1)
	assert.Equal(t, reply, actions[0].Action)
	assert.Equal(t, "medium", actions[0].Priority)
	assert.Nil(t, actions[0].Slide)
}

func TestExtractConsensusWrapsRawOnParseFailure(t *testing.T) {
	reply := "All experts converge on the lack of evaluation rigor."
	engine := testEngine(func(ctx context.Context, req generateRequest) (generateResult, error) {
		return generateResult{Text: reply}, nil
	})

	points := engine.ExtractConsensus(context.Background(), []Round{{}})

	require.Len(t, points, 1)
	assert.Equal(t, reply, points[0])
}

func TestExtractActionsHandlesNullSlide(t *testing.T) {
	engine := testEngine(func(ctx context.Context, req generateRequest) (generateResult, error) {
		return generateResult{Text: "```json\n[\n  {\"action\": \"Add benchmarks\", \"priority\": \"high\", \"slide\": 4},\n  {\"action\": \"Tighten narrative\", \"priority\": \"low\", \"slide\": null}\n]\n```"}, nil
	})

	actions := engine.ExtractActions(context.Background(), "synthesis text")

	require.Len(t, actions, 2)
	require.NotNil(t, actions[0].Slide)
	assert.Equal(t, 4, *actions[0].Slide)
	assert.Nil(t, actions[1].Slide)
}

func TestExtractStrengthsEmptyListPassesThrough(t *testing.T) {
	engine := testEngine(func(ctx context.Context, req generateRequest) (generateResult, error) {
		return generateResult{Text: `[]`}, nil
	})

	strengths := engine.ExtractStrengths(context.Background(), "synthesis text")

	assert.Empty(t, strengths)
}

func TestExtractConsensusPromptOmitsFailedEntries(t *testing.T) {
	var captured generateRequest
	engine := testEngine(func(ctx context.Context, req generateRequest) (generateResult, error) {
		captured = req
		return generateResult{Text: `["everyone wants real benchmarks"]`}, nil
	})

	rounds := []Round{{
		Debates: []Entry{
			{PersonaName: "Dr. Priya Sharma", RawResponse: "benchmarks missing"},
			{PersonaName: "Jennifer Wu", Err: "timeout"},
		},
	}}

	points := engine.ExtractConsensus(context.Background(), rounds)

	require.Len(t, points, 1)
	assert.Contains(t, captured.Prompt, "Dr. Priya Sharma")
	assert.NotContains(t, captured.Prompt, "Jennifer Wu")
}

func TestBuildRecommendations(t *testing.T) {
	engine := testEngine(func(ctx context.Context, req generateRequest) (generateResult, error) {
		return generateResult{Text: `["point"]`}, nil
	})

	recs := engine.BuildRecommendations(context.Background(), "verdict: 7/10", nil)

	assert.Equal(t, 7.0, recs.OverallScore)
	assert.NotEmpty(t, recs.KeyStrengths)
	assert.NotEmpty(t, recs.ConsensusPoints)
}
