package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"noticiario/internal/services"
)

type InteractionHandler struct {
	base
	interactions *services.InteractionService
}

func NewInteractionHandler(interactions *services.InteractionService, log *slog.Logger) *InteractionHandler {
	return &InteractionHandler{base: base{log: log}, interactions: interactions}
}

// Create POST /interacoes
func (h *InteractionHandler) Create(c *gin.Context) {
	var in services.InteractionInput
	if !h.bind(c, &in) {
		return
	}
	if !h.allowClient(c, in.ClientID) {
		return
	}

	interaction, err := h.interactions.Record(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, interaction)
}

// ListByArticle GET /interacoes/noticia/:id
func (h *InteractionHandler) ListByArticle(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	interactions, err := h.interactions.ListByArticle(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, interactions)
}

// ListByClient GET /interacoes/cliente/:id
func (h *InteractionHandler) ListByClient(c *gin.Context) {
	clientID := c.Param("id")
	if !h.allowClient(c, clientID) {
		return
	}
	interactions, err := h.interactions.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, interactions)
}

type replyRequest struct {
	Reply string `json:"resposta" binding:"required"`
}

// Reply PUT /interacoes/:id/responder (admin)
func (h *InteractionHandler) Reply(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req replyRequest
	if !h.bind(c, &req) {
		return
	}

	interaction, err := h.interactions.Reply(c.Request.Context(), id, req.Reply)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Resposta enviada", "interacao": interaction})
}
