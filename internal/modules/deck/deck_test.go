package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeEmptyDeck(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.TotalSlides)
	assert.Equal(t, 0, s.AvgContentLength)
	assert.Equal(t, 0, s.SlidesWithNotes)
	assert.Equal(t, 0, s.TotalWords)
	assert.NotNil(t, s.SlideTitles)
	assert.Empty(t, s.SlideTitles)
}

func TestSummarize(t *testing.T) {
	slides := []Slide{
		{Title: "Intro", Content: "hello world", Notes: "greet the room"},
		{Title: "Ask", Content: "we need ten million"},
	}

	s := Summarize(slides)
	assert.Equal(t, 2, s.TotalSlides)
	assert.Equal(t, 1, s.SlidesWithNotes)
	assert.Equal(t, []string{"Intro", "Ask"}, s.SlideTitles)
	assert.Equal(t, 6, s.TotalWords)
	// (11 + 19) / 2
	assert.Equal(t, 15, s.AvgContentLength)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "ai ml platform",
			content: "machine learning model over data with a novel algorithm and neural network",
			want:    "AI/ML Platform",
		},
		{
			name:    "data science product",
			content: "our model uses data for prediction",
			want:    "Data Science Product",
		},
		{
			name:    "analytics platform",
			content: "a dashboard that surfaces business insights",
			want:    "Analytics Platform",
		},
		{
			name:    "technology company",
			content: "we sell software to enterprises",
			want:    "Technology Company",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify([]Slide{{Title: "Overview", Content: tc.content}})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyEmptyDeck(t *testing.T) {
	assert.Equal(t, "Unknown", Classify(nil))
}
