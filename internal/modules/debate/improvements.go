package debate

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/slidecrit/core/internal/modules/deck"
)

// SlideImprovements asks for bulleted improvement suggestions for one
// slide based on the synthesis. Returns canned bullets on call failure so
// deck generation never aborts.
func (e *Engine) SlideImprovements(ctx context.Context, slide deck.Slide, synthesis string) string {
	res, err := e.generate(ctx, generateRequest{
		Model:       e.cfg.ExtractModel,
		Prompt:      buildSlideImprovementsPrompt(slide, synthesis),
		MaxTokens:   512,
		Temperature: 0.3,
	})
	if err != nil {
		e.logger.Warn("slide improvement extraction failed",
			zap.Int("slide", slide.Number),
			zap.Error(err))
		return "- Review and strengthen content\n- Ensure clarity and focus\n- Add supporting data"
	}
	return strings.TrimSpace(res.Text)
}

// TopRecommendations asks for a numbered list of the highest-priority
// recommendations from the synthesis.
func (e *Engine) TopRecommendations(ctx context.Context, synthesis string) string {
	res, err := e.generate(ctx, generateRequest{
		Model:       e.cfg.ExtractModel,
		Prompt:      buildTopRecommendationsPrompt(synthesis),
		MaxTokens:   1024,
		Temperature: 0.3,
	})
	if err != nil {
		e.logger.Warn("recommendation extraction failed", zap.Error(err))
		return "1. Strengthen value proposition\n2. Add market validation\n3. Improve financial projections"
	}
	return strings.TrimSpace(res.Text)
}
