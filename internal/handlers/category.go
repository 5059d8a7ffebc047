package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"noticiario/internal/services"
)

type CategoryHandler struct {
	base
	categories *services.CategoryService
}

func NewCategoryHandler(categories *services.CategoryService, log *slog.Logger) *CategoryHandler {
	return &CategoryHandler{base: base{log: log}, categories: categories}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	category, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var in services.CategoryInput
	if !h.bind(c, &in) {
		return
	}
	category, err := h.categories.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var in services.CategoryInput
	if !h.bind(c, &in) {
		return
	}
	category, err := h.categories.Update(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Categoria removida com sucesso"})
}
