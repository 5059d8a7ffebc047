package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"noticiario/internal/models"
)

const (
	claimClientID   = "clienteLogadoId"
	claimClientName = "clienteLogadoNome"
)

// TokenService issues and validates the signed session token returned at login.
type TokenService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokenService(key string, ttl time.Duration) *TokenService {
	return &TokenService{key: []byte(key), ttl: ttl, now: time.Now}
}

// Issue signs an HS256 token for the client.
func (s *TokenService) Issue(client *models.Client) (string, error) {
	if len(s.key) == 0 {
		return "", &Error{Kind: KindStore, Message: "Erro de configuração do servidor", Err: fmt.Errorf("JWT_KEY not configured")}
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		claimClientID:   client.ID,
		claimClientName: client.Name,
		"iat":           now.Unix(),
		"exp":           now.Add(s.ttl).Unix(),
	})
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", &Error{Kind: KindStore, Message: "Erro interno do servidor", Err: err}
	}
	return signed, nil
}

// Validate checks signature and expiry and returns the client id the token was
// issued for.
func (s *TokenService) Validate(tokenString string) (string, error) {
	if len(s.key) == 0 {
		return "", Unauthorized("Token inválido")
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", &Error{Kind: KindUnauthorized, Message: "Token inválido ou expirado", Err: err}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", Unauthorized("Token inválido")
	}
	clientID, _ := claims[claimClientID].(string)
	if clientID == "" {
		return "", Unauthorized("Token inválido")
	}
	return clientID, nil
}
