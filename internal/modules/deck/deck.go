// Package deck ingests uploaded slide decks and derives deck-level
// statistics and a coarse deck-type classification.
package deck

import (
	"math"
	"strings"
)

// Slide is one extracted slide. Immutable once parsed; lifetime is the
// request that uploaded it.
type Slide struct {
	Number     int    `json:"number"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Notes      string `json:"notes"`
	ShapeCount int    `json:"shape_count"`
	LayoutName string `json:"layout_name"`
}

// Summary holds high-level deck statistics.
type Summary struct {
	TotalSlides      int      `json:"total_slides"`
	AvgContentLength int      `json:"avg_content_length"`
	SlidesWithNotes  int      `json:"slides_with_notes"`
	SlideTitles      []string `json:"slide_titles"`
	TotalWords       int      `json:"total_words"`
}

// aiKeywords is matched by substring against the lowercased deck text.
var aiKeywords = []string{
	"machine learning", "deep learning", "neural network", "ai",
	"model", "data", "algorithm", "prediction",
}

var analyticsKeywords = []string{"analytics", "insights", "dashboard"}

// Summarize computes deck statistics. All fields are zero/empty for an
// empty slide list.
func Summarize(slides []Slide) Summary {
	if len(slides) == 0 {
		return Summary{SlideTitles: []string{}}
	}

	var contentLength, words int
	s := Summary{
		TotalSlides: len(slides),
		SlideTitles: make([]string, 0, len(slides)),
	}
	for _, sl := range slides {
		contentLength += len(sl.Content)
		words += len(strings.Fields(sl.Content))
		if sl.Notes != "" {
			s.SlidesWithNotes++
		}
		s.SlideTitles = append(s.SlideTitles, sl.Title)
	}
	s.AvgContentLength = int(math.Round(float64(contentLength) / float64(len(slides))))
	s.TotalWords = words
	return s
}

// Classify labels the deck by a keyword-count heuristic over the combined
// lowercased title and content text.
func Classify(slides []Slide) string {
	if len(slides) == 0 {
		return "Unknown"
	}

	var b strings.Builder
	for _, sl := range slides {
		b.WriteString(sl.Title)
		b.WriteString(" ")
		b.WriteString(sl.Content)
		b.WriteString(" ")
	}
	allText := strings.ToLower(b.String())

	matches := 0
	for _, kw := range aiKeywords {
		if strings.Contains(allText, kw) {
			matches++
		}
	}

	switch {
	case matches >= 5:
		return "AI/ML Platform"
	case matches >= 3:
		return "Data Science Product"
	}
	for _, kw := range analyticsKeywords {
		if strings.Contains(allText, kw) {
			return "Analytics Platform"
		}
	}
	return "Technology Company"
}
