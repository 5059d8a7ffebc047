package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"noticiario/internal/services"
)

type ClientHandler struct {
	base
	clients *services.ClientService
}

func NewClientHandler(clients *services.ClientService, log *slog.Logger) *ClientHandler {
	return &ClientHandler{base: base{log: log}, clients: clients}
}

// Register POST /clientes
func (h *ClientHandler) Register(c *gin.Context) {
	var in services.RegisterInput
	if !h.bind(c, &in) {
		return
	}

	client, err := h.clients.Register(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    client.ID,
		"nome":  client.Name,
		"email": client.Email,
	})
}

// Login POST /clientes/login
func (h *ClientHandler) Login(c *gin.Context) {
	var in services.LoginInput
	// a malformed body is reported like wrong credentials
	_ = c.ShouldBindJSON(&in)

	result, err := h.clients.Login(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get GET /clientes/:id
func (h *ClientHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !h.allowClient(c, id) {
		return
	}

	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// List GET /clientes
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clients.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}
