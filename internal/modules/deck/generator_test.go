package deck

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// staticImprovements returns fixed suggestions without any model calls.
type staticImprovements struct{}

func (staticImprovements) SlideImprovements(_ context.Context, _ Slide, _ string) string {
	return "- Sharpen the headline\n- Add a benchmark table"
}

func (staticImprovements) TopRecommendations(_ context.Context, _ string) string {
	return "1. Add market validation\n2. Quantify the moat"
}

func TestComposePPTXRoundTrips(t *testing.T) {
	data, err := composePPTX([]authoredSlide{
		{title: "Vision", body: "Make ML reviews instant\nFor every founder"},
		{title: "Ask & Use of Funds", body: "$2M seed"},
	})
	require.NoError(t, err)

	slides, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, slides, 2)

	assert.Equal(t, 1, slides[0].Number)
	assert.Equal(t, "Vision", slides[0].Title)
	assert.Equal(t, "Vision\n\nMake ML reviews instant\nFor every founder", slides[0].Content)
	assert.Equal(t, 2, slides[0].ShapeCount)
	assert.Equal(t, "Title and Content", slides[0].LayoutName)

	assert.Equal(t, "Ask & Use of Funds", slides[1].Title)
	assert.Contains(t, slides[1].Content, "$2M seed")
}

func TestGenerateBuildsCompanionDeck(t *testing.T) {
	gen := NewGenerator(staticImprovements{}, zap.NewNop())

	source := []Slide{
		{Number: 1, Title: "Problem", Content: "Reviews are slow"},
		{Number: 2, Title: "Solution", Content: "AI expert panel"},
	}
	data, err := gen.Generate(context.Background(), source, "Overall verdict: 6/10, needs benchmarks.")
	require.NoError(t, err)

	slides, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, slides, 4)

	assert.Equal(t, "Improved Pitch Deck", slides[0].Title)
	assert.Equal(t, "Executive Summary", slides[1].Title)
	assert.Contains(t, slides[1].Content, "needs benchmarks")
	assert.Equal(t, "Slide 1: Problem", slides[2].Title)
	assert.Contains(t, slides[2].Content, "Recommended Improvements:")
	assert.Contains(t, slides[2].Content, "Sharpen the headline")
	assert.Equal(t, "Key Recommendations", slides[3].Title)
	assert.Contains(t, slides[3].Content, "Quantify the moat")
}

func TestGenerateTruncatesLongSynthesis(t *testing.T) {
	gen := NewGenerator(staticImprovements{}, zap.NewNop())

	long := strings.Repeat("abcde ", 200)
	data, err := gen.Generate(context.Background(), []Slide{{Number: 1, Title: "A"}}, long)
	require.NoError(t, err)

	slides, err := Parse(data)
	require.NoError(t, err)
	summary := slides[1].Content
	assert.Contains(t, summary, "...")
	assert.Less(t, len(summary), len(long))
}

func TestGenerateDeckHandler(t *testing.T) {
	r := newUploadRouter(t)

	payload, err := json.Marshal(gin.H{
		"slides":    []Slide{{Number: 1, Title: "Problem", Content: "Reviews are slow"}},
		"synthesis": "verdict 6/10",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/generate-deck", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pptxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "improved_deck.pptx")

	slides, err := Parse(w.Body.Bytes())
	require.NoError(t, err)
	assert.Len(t, slides, 4)
}

func TestGenerateDeckHandlerRequiresSlides(t *testing.T) {
	r := newUploadRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/generate-deck", strings.NewReader(`{"synthesis": "x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
