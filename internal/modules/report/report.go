// Package report renders a review session into a self-contained HTML
// document: markdown assembly first, then goldmark for the HTML body.
package report

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/slidecrit/core/internal/modules/debate"
)

const pageCSS = `body { font-family: Georgia, serif; max-width: 820px; margin: 2rem auto; padding: 0 1rem; color: #1c1c1c; line-height: 1.55; }
h1 { border-bottom: 3px solid #2c3e50; padding-bottom: .3rem; }
h2 { color: #2c3e50; margin-top: 2rem; }
.score { font-size: 1.4rem; font-weight: bold; }
.critical { color: #c0392b; font-weight: bold; }
.moderate { color: #d68910; }
.minor { color: #7f8c8d; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: .4rem .6rem; text-align: left; }
footer { margin-top: 3rem; font-size: .8rem; color: #999; }`

// Meta describes the reviewed deck.
type Meta struct {
	DeckName   string `json:"deck_name"`
	DeckType   string `json:"deck_type"`
	SlideCount int    `json:"slide_count"`
}

// Builder turns extracted recommendations into an HTML report.
type Builder struct {
	md  goldmark.Markdown
	now func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		now: time.Now,
	}
}

// Build renders the full report document. Output is a complete HTML
// page, ready to serve or save.
func (b *Builder) Build(meta Meta, recs debate.Recommendations) ([]byte, error) {
	var body bytes.Buffer
	if err := b.md.Convert([]byte(b.markdown(meta, recs)), &body); err != nil {
		return nil, fmt.Errorf("report render: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s Review Report</title>\n", html.EscapeString(deckTitle(meta)))
	page.WriteString("<style>\n" + pageCSS + "\n</style>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	fmt.Fprintf(&page, "<footer>Generated %s</footer>\n", b.now().UTC().Format("2006-01-02 15:04 UTC"))
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

func (b *Builder) markdown(meta Meta, recs debate.Recommendations) string {
	var md strings.Builder

	fmt.Fprintf(&md, "# %s: Expert Review Report\n\n", deckTitle(meta))
	if meta.DeckType != "" {
		fmt.Fprintf(&md, "**Deck type:** %s", meta.DeckType)
		if meta.SlideCount > 0 {
			fmt.Fprintf(&md, " · **Slides:** %d", meta.SlideCount)
		}
		md.WriteString("\n\n")
	}

	md.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&md, "Overall score: **%.1f / 10**\n\n", recs.OverallScore)
	fmt.Fprintf(&md, "The expert panel surfaced %d key strengths, %d issues, and %d recommended actions.\n\n",
		len(recs.KeyStrengths), len(recs.CriticalIssues), len(recs.ImprovementActions))

	md.WriteString("## Key Strengths\n\n")
	for _, s := range recs.KeyStrengths {
		fmt.Fprintf(&md, "- %s\n", s)
	}
	md.WriteString("\n")

	md.WriteString("## Critical Issues\n\n")
	for _, severity := range []string{"critical", "moderate", "minor"} {
		issues := issuesBySeverity(recs.CriticalIssues, severity)
		if len(issues) == 0 {
			continue
		}
		fmt.Fprintf(&md, "### %s\n\n", strings.ToUpper(severity[:1])+severity[1:])
		for _, issue := range issues {
			fmt.Fprintf(&md, "- %s\n", issue.Issue)
		}
		md.WriteString("\n")
	}

	md.WriteString("## Improvement Actions\n\n")
	md.WriteString("| Priority | Action | Slide |\n|---|---|---|\n")
	for _, a := range recs.ImprovementActions {
		slide := "—"
		if a.Slide != nil {
			slide = fmt.Sprintf("%d", *a.Slide)
		}
		fmt.Fprintf(&md, "| %s | %s | %s |\n", a.Priority, a.Action, slide)
	}
	md.WriteString("\n")

	if len(recs.ConsensusPoints) > 0 {
		md.WriteString("## Points of Consensus\n\n")
		for _, p := range recs.ConsensusPoints {
			fmt.Fprintf(&md, "- %s\n", p)
		}
		md.WriteString("\n")
	}

	return md.String()
}

func deckTitle(meta Meta) string {
	if meta.DeckName != "" {
		return meta.DeckName
	}
	return "Pitch Deck"
}

func issuesBySeverity(issues []debate.Issue, severity string) []debate.Issue {
	var out []debate.Issue
	for _, issue := range issues {
		if strings.EqualFold(issue.Severity, severity) {
			out = append(out, issue)
		}
	}
	return out
}
