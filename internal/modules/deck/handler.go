package deck

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/slidecrit/core/internal/pkg/response"
	"go.uber.org/zap"
)

// Handler exposes deck ingestion and regeneration over HTTP.
type Handler struct {
	gen    *Generator
	logger *zap.Logger
}

func NewHandler(gen *Generator, logger *zap.Logger) *Handler {
	return &Handler{gen: gen, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
	rg.POST("/generate-deck", h.generateDeck)
}

// POST /upload — multipart pptx upload.
func (h *Handler) upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing multipart file field")
		return
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pptx") {
		response.BadRequest(c, "Only .pptx files are supported")
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	slides, err := Parse(data)
	if err != nil {
		h.logger.Warn("deck parse failed",
			zap.String("filename", fh.Filename),
			zap.Error(err),
		)
		response.InternalError(c, err)
		return
	}

	response.OK(c, gin.H{
		"deck_name": fh.Filename,
		"slides":    slides,
		"summary":   Summarize(slides),
		"deck_type": Classify(slides),
	})
}

type generateDeckRequest struct {
	Slides    []Slide `json:"slides" binding:"required"`
	Synthesis string  `json:"synthesis"`
}

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// POST /generate-deck — improved-deck companion pptx from an analysis.
func (h *Handler) generateDeck(c *gin.Context) {
	var req generateDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Slides) == 0 {
		response.BadRequest(c, "at least one slide is required")
		return
	}

	data, err := h.gen.Generate(c.Request.Context(), req.Slides, req.Synthesis)
	if err != nil {
		h.logger.Error("deck generation failed", zap.Error(err))
		response.InternalError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="improved_deck.pptx"`)
	c.Data(http.StatusOK, pptxContentType, data)
}
