package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"noticiario/internal/services"
)

type ArticleHandler struct {
	base
	articles *services.ModerationService
}

func NewArticleHandler(articles *services.ModerationService, log *slog.Logger) *ArticleHandler {
	return &ArticleHandler{base: base{log: log}, articles: articles}
}

// ListApproved GET /noticias
func (h *ArticleHandler) ListApproved(c *gin.Context) {
	articles, err := h.articles.ListApproved(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// ListPending GET /noticias/pendentes (admin)
func (h *ArticleHandler) ListPending(c *gin.Context) {
	articles, err := h.articles.ListPending(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// ListMine GET /noticias/minhas/:clienteId
func (h *ArticleHandler) ListMine(c *gin.Context) {
	clientID := c.Param("clienteId")
	if !h.allowClient(c, clientID) {
		return
	}
	articles, err := h.articles.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Search GET /noticias/pesquisa/:termo
func (h *ArticleHandler) Search(c *gin.Context) {
	articles, err := h.articles.Search(c.Request.Context(), c.Param("termo"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Detail GET /noticias/:id, approved articles only. Counts a view.
func (h *ArticleHandler) Detail(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	article, err := h.articles.Detail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Submit POST /noticias. New articles always wait for moderation.
func (h *ArticleHandler) Submit(c *gin.Context) {
	var in services.ArticleInput
	if !h.bind(c, &in) {
		return
	}
	if !h.allowClient(c, in.ClientID) {
		return
	}

	article, err := h.articles.Submit(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// Approve PUT /noticias/:id/aprovar (admin)
func (h *ArticleHandler) Approve(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	article, err := h.articles.Approve(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Notícia aprovada com sucesso", "noticia": article})
}

type rejectRequest struct {
	Reason string `json:"motivo"`
}

// Reject PUT /noticias/:id/rejeitar (admin). The body is optional.
func (h *ArticleHandler) Reject(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.fail(c, services.ValidationError(validationMessage(err)))
		return
	}

	article, err := h.articles.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Notícia rejeitada", "noticia": article})
}

// Delete DELETE /noticias/:id (admin)
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.articles.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Notícia excluída com sucesso"})
}
