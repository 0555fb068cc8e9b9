package debate

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/slidecrit/core/internal/modules/deck"
	"github.com/slidecrit/core/internal/pkg/response"
)

type Handler struct {
	engine *Engine
	logger *zap.Logger
}

func NewHandler(engine *Engine, logger *zap.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
}

type analyzeRequest struct {
	Slides     []deck.Slide `json:"slides"`
	SlideIndex *int         `json:"slide_index"`
	Personas   []string     `json:"personas"`
	DeckType   string       `json:"deck_type"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if len(req.Slides) == 0 {
		response.BadRequest(c, "at least one slide is required")
		return
	}
	if len(req.Personas) == 0 {
		response.BadRequest(c, "at least one persona is required")
		return
	}

	idx := 0
	if req.SlideIndex != nil {
		idx = *req.SlideIndex
	}
	if idx < 0 || idx >= len(req.Slides) {
		response.BadRequest(c, "slide_index out of range")
		return
	}
	slide := req.Slides[idx]

	ctx := c.Request.Context()
	round := h.engine.CreateRound(ctx, slide, req.Personas, nil, 1)
	if len(round.Debates) == 0 {
		response.UnprocessableEntity(c, "no known personas in request")
		return
	}

	collab := h.engine.Collaborate(ctx, round, req.DeckType)
	synthesis := h.engine.Synthesize(ctx, round, req.DeckType)

	response.OK(c, gin.H{
		"session_id":           uuid.NewString(),
		"debate_round":         round,
		"collaborative_debate": collab,
		"synthesis":            synthesis,
		"cache_stats":          h.engine.Stats().Efficiency(),
	})
}
