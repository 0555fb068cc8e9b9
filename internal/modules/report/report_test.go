package report

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/slidecrit/core/internal/modules/debate"
)

func slidePtr(n int) *int { return &n }

func sampleRecommendations() debate.Recommendations {
	return debate.Recommendations{
		OverallScore: 6.5,
		KeyStrengths: []string{"Clear problem statement", "Experienced team"},
		CriticalIssues: []debate.Issue{
			{Issue: "No evaluation benchmarks", Severity: "critical"},
			{Issue: "Vague go-to-market", Severity: "moderate"},
			{Issue: "Dense slide layouts", Severity: "minor"},
		},
		ImprovementActions: []debate.Action{
			{Action: "Add model benchmark table", Priority: "high", Slide: slidePtr(4)},
			{Action: "Simplify architecture diagram", Priority: "low"},
		},
		ConsensusPoints: []string{"Everyone wants real benchmarks"},
	}
}

func TestBuildRendersAllSections(t *testing.T) {
	b := NewBuilder()
	b.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	page, err := b.Build(Meta{DeckName: "Acme AI", DeckType: "AI/ML Platform", SlideCount: 12}, sampleRecommendations())
	require.NoError(t, err)

	doc := string(page)
	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "Acme AI: Expert Review Report")
	assert.Contains(t, doc, "6.5 / 10")
	assert.Contains(t, doc, "Clear problem statement")
	assert.Contains(t, doc, "No evaluation benchmarks")
	assert.Contains(t, doc, "<h3")
	assert.Contains(t, doc, "Critical")
	assert.Contains(t, doc, "<table>")
	assert.Contains(t, doc, "Add model benchmark table")
	assert.Contains(t, doc, "Everyone wants real benchmarks")
	assert.Contains(t, doc, "Generated 2025-06-01 12:00 UTC")
}

func TestBuildDefaultsDeckTitle(t *testing.T) {
	page, err := NewBuilder().Build(Meta{}, debate.Recommendations{OverallScore: 5})
	require.NoError(t, err)
	assert.Contains(t, string(page), "Pitch Deck: Expert Review Report")
}

type fakeInsights struct {
	gotSynthesis string
	gotRounds    []debate.Round
}

func (f *fakeInsights) BuildRecommendations(ctx context.Context, synthesisText string, rounds []debate.Round) debate.Recommendations {
	f.gotSynthesis = synthesisText
	f.gotRounds = rounds
	return sampleRecommendations()
}

func newTestRouter(insights InsightSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(insights, zap.NewNop()).RegisterRoutes(r.Group("/api"))
	return r
}

func TestReportHandler(t *testing.T) {
	insights := &fakeInsights{}
	r := newTestRouter(insights)

	body, err := json.Marshal(gin.H{
		"deck_name": "Acme AI",
		"deck_type": "AI/ML Platform",
		"synthesis": "verdict: 6.5/10",
		"rounds":    []debate.Round{{Round: 1, SlideNumber: 2}},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/report", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Acme AI")
	assert.Equal(t, "verdict: 6.5/10", insights.gotSynthesis)
	require.Len(t, insights.gotRounds, 1)
}

func TestReportHandlerRequiresSynthesis(t *testing.T) {
	r := newTestRouter(&fakeInsights{})

	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(`{"deck_name": "Acme"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
