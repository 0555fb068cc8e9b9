package debate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlideImprovementsTrimsReply(t *testing.T) {
	var prompt string
	e := testEngine(func(_ context.Context, req generateRequest) (generateResult, error) {
		prompt = req.Prompt
		return generateResult{Text: "\n- Tighten the TAM claim\n- Cite a source\n"}, nil
	})

	got := e.SlideImprovements(context.Background(), testSlide(), "experts want evidence")
	assert.Equal(t, "- Tighten the TAM claim\n- Cite a source", got)
	assert.Contains(t, prompt, "Slide 3")
	assert.Contains(t, prompt, "Market Opportunity")
	assert.Contains(t, prompt, "experts want evidence")
}

func TestSlideImprovementsFallbackOnCallFailure(t *testing.T) {
	e := testEngine(func(_ context.Context, _ generateRequest) (generateResult, error) {
		return generateResult{}, errors.New("overloaded")
	})

	got := e.SlideImprovements(context.Background(), testSlide(), "synthesis")
	assert.Equal(t, "- Review and strengthen content\n- Ensure clarity and focus\n- Add supporting data", got)
}

func TestTopRecommendationsFallbackOnCallFailure(t *testing.T) {
	e := testEngine(func(_ context.Context, _ generateRequest) (generateResult, error) {
		return generateResult{}, errors.New("overloaded")
	})

	got := e.TopRecommendations(context.Background(), "synthesis")
	assert.Equal(t, "1. Strengthen value proposition\n2. Add market validation\n3. Improve financial projections", got)
}

func TestTopRecommendationsPassesSynthesisThrough(t *testing.T) {
	var prompt string
	e := testEngine(func(_ context.Context, req generateRequest) (generateResult, error) {
		prompt = req.Prompt
		return generateResult{Text: "1. Add benchmarks"}, nil
	})

	got := e.TopRecommendations(context.Background(), "verdict 6/10")
	assert.Equal(t, "1. Add benchmarks", got)
	assert.Contains(t, prompt, "verdict 6/10")
}
