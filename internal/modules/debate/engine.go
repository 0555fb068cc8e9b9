package debate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/slidecrit/core/internal/config"
	"github.com/slidecrit/core/internal/modules/deck"
	"github.com/slidecrit/core/internal/modules/persona"
	"github.com/slidecrit/core/internal/pkg/jsonx"
)

// generateRequest carries one model invocation. System blocks are split so
// the static persona prompt can be marked cacheable independently of the
// per-round context.
type generateRequest struct {
	Model       string
	System      []systemBlock
	Prompt      string
	MaxTokens   int64
	Temperature float64
}

type systemBlock struct {
	Text      string
	Cacheable bool
}

type generateResult struct {
	Text         string
	InputTokens  int64
	OutputTokens int64
	CacheRead    int64
}

type generateFunc func(ctx context.Context, req generateRequest) (generateResult, error)

// Engine runs multi-persona critique rounds against the Anthropic API.
type Engine struct {
	cfg      config.AnthropicConfig
	stats    *CacheStats
	logger   *zap.Logger
	generate generateFunc
}

func NewEngine(cfg config.AnthropicConfig, logger *zap.Logger) *Engine {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	client := anthropic.NewClient(opts...)

	e := &Engine{
		cfg:    cfg,
		stats:  NewCacheStats(),
		logger: logger,
	}
	e.generate = func(ctx context.Context, req generateRequest) (generateResult, error) {
		return anthropicGenerate(ctx, client, req)
	}
	return e
}

func anthropicGenerate(ctx context.Context, client anthropic.Client, req generateRequest) (generateResult, error) {
	system := make([]anthropic.TextBlockParam, 0, len(req.System))
	for _, block := range req.System {
		param := anthropic.TextBlockParam{Text: block.Text}
		if block.Cacheable {
			param.CacheControl = anthropic.NewCacheControlEphemeralParam()
		}
		system = append(system, param)
	}

	msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   req.MaxTokens,
		Temperature: anthropic.Float(req.Temperature),
		System:      system,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return generateResult{}, err
	}

	var text strings.Builder
	for _, block := range msg.Content {
		text.WriteString(block.Text)
	}
	return generateResult{
		Text:         text.String(),
		InputTokens:  msg.Usage.InputTokens,
		OutputTokens: msg.Usage.OutputTokens,
		CacheRead:    msg.Usage.CacheReadInputTokens,
	}, nil
}

// Stats exposes the engine's cache counters.
func (e *Engine) Stats() *CacheStats { return e.stats }

// CreateRound collects one critique per persona for a single slide.
// Unknown persona ids are skipped; a persona whose call fails still gets
// an entry so the caller can render partial results.
func (e *Engine) CreateRound(ctx context.Context, slide deck.Slide, personaIDs []string, prior []Round, roundNum int) Round {
	start := time.Now()
	round := Round{
		Round:       roundNum,
		SlideNumber: slide.Number,
		SlideTitle:  slide.Title,
		Debates:     []Entry{},
	}

	for _, id := range personaIDs {
		p, ok := persona.Lookup(id)
		if !ok {
			e.logger.Warn("skipping unknown persona", zap.String("persona", id))
			continue
		}
		round.Debates = append(round.Debates, e.critique(ctx, p, slide, prior))
	}

	round.ElapsedTime = time.Since(start).Seconds()
	round.CacheStats = e.stats.Snapshot()
	return round
}

func (e *Engine) critique(ctx context.Context, p persona.Persona, slide deck.Slide, prior []Round) Entry {
	entry := Entry{
		PersonaID:   p.ID,
		PersonaName: p.Name,
		Emoji:       p.Emoji,
		Role:        p.Role,
		Color:       p.Color,
	}

	res, err := e.generate(ctx, generateRequest{
		Model: e.cfg.CritiqueModel,
		System: []systemBlock{
			{Text: p.SystemPrompt, Cacheable: true},
			{Text: buildContext(slide, prior)},
		},
		Prompt:      buildAnalysisPrompt(slide),
		MaxTokens:   int64(e.cfg.CritiqueTokens),
		Temperature: 0.7,
	})
	if err != nil {
		e.logger.Error("persona critique failed",
			zap.String("persona", p.ID),
			zap.Int("slide", slide.Number),
			zap.Error(err))
		entry.Err = err.Error()
		return entry
	}

	if res.CacheRead > 0 {
		e.stats.RecordHit()
	} else {
		e.stats.RecordMiss()
	}

	entry.RawResponse = res.Text
	entry.TokensUsed = res.InputTokens + res.OutputTokens

	if parsed, err := jsonx.ExtractObject(res.Text); err != nil {
		entry.Critique = &Critique{Raw: res.Text}
	} else {
		entry.Critique = &Critique{Structured: parsed, Parsed: true}
	}
	return entry
}

// Collaborate runs a moderated debate over one round's critiques.
func (e *Engine) Collaborate(ctx context.Context, round Round, deckType string) CollabResult {
	result := CollabResult{Timestamp: time.Now().UTC().Format(time.RFC3339)}

	var experts []string
	var critiques strings.Builder
	for _, entry := range round.Debates {
		if entry.Failed() {
			continue
		}
		experts = append(experts, fmt.Sprintf("%s %s (%s)", entry.Emoji, entry.PersonaName, entry.Role))
		fmt.Fprintf(&critiques, "\n--- %s ---\n%s\n", entry.PersonaName, entry.RawResponse)
	}
	result.Experts = experts
	result.ParticipatingExperts = len(experts)

	if len(experts) == 0 {
		result.Err = "no successful critiques to debate"
		return result
	}

	res, err := e.generate(ctx, generateRequest{
		Model: e.cfg.SynthesisModel,
		System: []systemBlock{
			{Text: collabSystemPrompt, Cacheable: true},
		},
		Prompt:      buildCollabPrompt(round.SlideTitle, deckType, experts, critiques.String()),
		MaxTokens:   5000,
		Temperature: 0.6,
	})
	if err != nil {
		e.logger.Error("collaborative debate failed", zap.Error(err))
		result.Err = err.Error()
		return result
	}

	result.RawDebate = res.Text
	debate, err := jsonx.ExtractObject(res.Text)
	if err != nil {
		result.CollaborativeDebate = map[string]interface{}{
			"debate_summary": res.Text,
			"parsed":         false,
		}
	} else {
		result.CollaborativeDebate = debate
	}
	return result
}

// Synthesize merges every persona's raw feedback into a consensus report.
func (e *Engine) Synthesize(ctx context.Context, round Round, deckType string) Synthesis {
	var combined strings.Builder
	for _, entry := range round.Debates {
		if entry.Failed() {
			continue
		}
		fmt.Fprintf(&combined, "\n### %s (%s)\n%s\n", entry.PersonaName, entry.Role, entry.RawResponse)
	}

	res, err := e.generate(ctx, generateRequest{
		Model: e.cfg.SynthesisModel,
		System: []systemBlock{
			{Text: synthesisSystemPrompt, Cacheable: true},
		},
		Prompt:      buildSynthesisPrompt(deckType, combined.String()),
		MaxTokens:   4000,
		Temperature: 0.5,
	})
	if err != nil {
		e.logger.Error("synthesis failed", zap.Error(err))
		return Synthesis{
			"error":        err.Error(),
			"raw_feedback": combined.String(),
		}
	}

	out := Synthesis{}
	parsed, perr := jsonx.ExtractObject(res.Text)
	if perr == nil {
		for k, v := range parsed {
			out[k] = v
		}
	}
	out["raw_synthesis"] = res.Text
	out["synthesis_timestamp"] = time.Now().UTC().Format(time.RFC3339)
	return out
}
