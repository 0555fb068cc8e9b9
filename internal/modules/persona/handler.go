package persona

import (
	"github.com/gin-gonic/gin"
	"github.com/slidecrit/core/internal/pkg/response"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/personas", h.list)
}

type personaResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
	Image string `json:"image"`
	Voice string `json:"voice"`
}

// GET /personas
func (h *Handler) list(c *gin.Context) {
	items := make([]personaResponse, 0, len(catalogOrder))
	for _, id := range All() {
		p, ok := Lookup(id)
		if !ok {
			continue
		}
		items = append(items, personaResponse{
			ID:    id,
			Name:  p.Name,
			Role:  p.Role,
			Emoji: p.Emoji,
			Color: p.Color,
			Image: Image(id),
			Voice: Voice(id),
		})
	}

	response.OK(c, gin.H{
		"personas":   items,
		"categories": ByCategory(),
	})
}
