package deck

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const summaryRuneLimit = 500

// ImprovementSource supplies the per-slide improvement bullets and the
// closing recommendation list for a generated deck.
type ImprovementSource interface {
	SlideImprovements(ctx context.Context, slide Slide, synthesis string) string
	TopRecommendations(ctx context.Context, synthesis string) string
}

// Generator composes the improved-deck companion presentation: a title
// slide, an executive summary of the synthesis, one improvement slide per
// reviewed slide, and a closing recommendations slide.
type Generator struct {
	src    ImprovementSource
	logger *zap.Logger
}

func NewGenerator(src ImprovementSource, logger *zap.Logger) *Generator {
	return &Generator{src: src, logger: logger}
}

// Generate builds the improved deck as pptx bytes.
func (g *Generator) Generate(ctx context.Context, slides []Slide, synthesis string) ([]byte, error) {
	authored := make([]authoredSlide, 0, len(slides)+3)

	authored = append(authored, authoredSlide{
		title: "Improved Pitch Deck",
		body:  "Based on Multi-Agent AI Analysis & Debate",
	})

	authored = append(authored, authoredSlide{
		title: "Executive Summary",
		body:  truncateRunesEllipsis(synthesis, summaryRuneLimit),
	})

	for _, sl := range slides {
		improvements := g.src.SlideImprovements(ctx, sl, synthesis)
		authored = append(authored, authoredSlide{
			title: fmt.Sprintf("Slide %d: %s", sl.Number, sl.Title),
			body: fmt.Sprintf("Original Content:\n%s\n\nRecommended Improvements:\n%s",
				sl.Title, improvements),
		})
	}

	authored = append(authored, authoredSlide{
		title: "Key Recommendations",
		body:  g.src.TopRecommendations(ctx, synthesis),
	})

	data, err := composePPTX(authored)
	if err != nil {
		return nil, fmt.Errorf("generate deck: %w", err)
	}
	g.logger.Info("generated improved deck",
		zap.Int("source_slides", len(slides)),
		zap.Int("output_slides", len(authored)),
		zap.Int("bytes", len(data)))
	return data, nil
}

func truncateRunesEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
