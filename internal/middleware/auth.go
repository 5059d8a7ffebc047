package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"noticiario/internal/models"
)

const CurrentClientKey = "client"

// TokenValidator resolves a bearer token to the client id it was issued for.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// ClientLoader fetches the client named by a validated token.
type ClientLoader interface {
	Get(ctx context.Context, id string) (*models.Client, error)
}

// LoadClient reads the bearer token, if any, and stores the client in the
// context. Invalid tokens are ignored here; AuthRequired rejects the request.
func LoadClient(tokens TokenValidator, clients ClientLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.Next()
			return
		}

		clientID, err := tokens.Validate(strings.TrimSpace(raw))
		if err == nil {
			if client, err := clients.Get(c.Request.Context(), clientID); err == nil {
				c.Set(CurrentClientKey, client)
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a client is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentClient(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"erro": "Token ausente, inválido ou expirado", "codigo": "unauthorized"})
			return
		}
		c.Next()
	}
}

// AdminRequired ensures the logged in client is an administrator.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		client := CurrentClient(c)
		if client == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"erro": "Token ausente, inválido ou expirado", "codigo": "unauthorized"})
			return
		}
		if !client.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"erro": "Acesso restrito a administradores", "codigo": "forbidden"})
			return
		}
		c.Next()
	}
}

// CurrentClient returns the authenticated client or nil.
func CurrentClient(c *gin.Context) *models.Client {
	v, exists := c.Get(CurrentClientKey)
	if !exists {
		return nil
	}
	client, _ := v.(*models.Client)
	return client
}
