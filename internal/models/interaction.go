package models

import (
	"time"
)

type InteractionType string

const (
	InteractionLike    InteractionType = "curtida"
	InteractionComment InteractionType = "comentario"
	InteractionRating  InteractionType = "avaliacao"
)

// Interaction is a reader action against an article.
// At most one like per (client, article) is enforced by idx_interactions_single_like,
// created in db.Migrate because gorm tags cannot express a partial index portably.
type Interaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Type      InteractionType `gorm:"type:varchar(20);not null;index" json:"tipo"`
	Content   *string         `gorm:"type:text" json:"conteudo"`
	Rating    *int            `json:"nota"`
	Reply     *string         `gorm:"type:text" json:"resposta"`
	CreatedAt time.Time       `gorm:"index" json:"data"`
	ClientID  string          `gorm:"type:varchar(36);not null;index" json:"cliente_id"`
	Client    *Client         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"cliente,omitempty"`
	ArticleID uint            `gorm:"not null;index" json:"noticia_id"`
	Article   *Article        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"noticia,omitempty"`
}
