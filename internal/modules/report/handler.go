package report

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/slidecrit/core/internal/modules/debate"
	"github.com/slidecrit/core/internal/pkg/response"
)

// InsightSource runs the extraction passes that feed the report.
type InsightSource interface {
	BuildRecommendations(ctx context.Context, synthesisText string, rounds []debate.Round) debate.Recommendations
}

type Handler struct {
	insights InsightSource
	builder  *Builder
	logger   *zap.Logger
}

func NewHandler(insights InsightSource, logger *zap.Logger) *Handler {
	return &Handler{insights: insights, builder: NewBuilder(), logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/report", h.generate)
}

type reportRequest struct {
	DeckName   string         `json:"deck_name"`
	DeckType   string         `json:"deck_type"`
	SlideCount int            `json:"slide_count"`
	Synthesis  string         `json:"synthesis" binding:"required"`
	Rounds     []debate.Round `json:"rounds"`
}

func (h *Handler) generate(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "synthesis text is required")
		return
	}

	recs := h.insights.BuildRecommendations(c.Request.Context(), req.Synthesis, req.Rounds)
	page, err := h.builder.Build(Meta{
		DeckName:   req.DeckName,
		DeckType:   req.DeckType,
		SlideCount: req.SlideCount,
	}, recs)
	if err != nil {
		h.logger.Error("report build failed", zap.Error(err))
		response.InternalError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
