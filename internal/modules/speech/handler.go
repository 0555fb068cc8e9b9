package speech

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/slidecrit/core/internal/pkg/response"
)

type Handler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tts", h.synthesize)
}

type ttsRequest struct {
	Text      string `json:"text" binding:"required"`
	PersonaID string `json:"persona_id" binding:"required"`
}

func (h *Handler) synthesize(c *gin.Context) {
	var req ttsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "text and persona_id are required")
		return
	}

	audio, err := h.svc.Synthesize(c.Request.Context(), req.Text, req.PersonaID)
	if err != nil {
		if errors.Is(err, ErrUnknownPersona) {
			response.NotFoundMsg(c, "unknown persona: "+req.PersonaID)
			return
		}
		h.logger.Error("speech synthesis failed",
			zap.String("persona", req.PersonaID),
			zap.Error(err))
		response.InternalError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="speech.mp3"`)
	c.Data(http.StatusOK, "audio/mpeg", audio)
}
