package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"noticiario/internal/handlers"
	"noticiario/internal/middleware"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Clients      *handlers.ClientHandler
	Categories   *handlers.CategoryHandler
	Articles     *handlers.ArticleHandler
	Interactions *handlers.InteractionHandler
	Dashboard    *handlers.DashboardHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	auth := middleware.AuthRequired()
	admin := middleware.AdminRequired()

	// public
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API: Sistema de Notícias")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// clients
	clientes := r.Group("/clientes")
	{
		clientes.POST("", h.Clients.Register)
		clientes.POST("/login", h.Clients.Login)
		clientes.GET("", admin, h.Clients.List)
		clientes.GET("/:id", auth, h.Clients.Get)
	}

	// categories
	categorias := r.Group("/categorias")
	{
		categorias.GET("", h.Categories.List)
		categorias.GET("/:id", h.Categories.Get)
		categorias.POST("", admin, h.Categories.Create)
		categorias.PUT("/:id", admin, h.Categories.Update)
		categorias.DELETE("/:id", admin, h.Categories.Delete)
	}

	// articles and moderation
	noticias := r.Group("/noticias")
	{
		noticias.GET("", h.Articles.ListApproved)
		noticias.GET("/pendentes", admin, h.Articles.ListPending)
		noticias.GET("/minhas/:clienteId", auth, h.Articles.ListMine)
		noticias.GET("/pesquisa/:termo", h.Articles.Search)
		noticias.GET("/:id", h.Articles.Detail)
		noticias.POST("", auth, h.Articles.Submit)
		noticias.PUT("/:id/aprovar", admin, h.Articles.Approve)
		noticias.PUT("/:id/rejeitar", admin, h.Articles.Reject)
		noticias.DELETE("/:id", admin, h.Articles.Delete)
	}

	// interactions
	interacoes := r.Group("/interacoes")
	{
		interacoes.POST("", auth, h.Interactions.Create)
		interacoes.GET("/noticia/:id", h.Interactions.ListByArticle)
		interacoes.GET("/cliente/:id", auth, h.Interactions.ListByClient)
		interacoes.PUT("/:id/responder", admin, h.Interactions.Reply)
	}

	r.GET("/dashboard/stats", admin, h.Dashboard.Stats)
}
