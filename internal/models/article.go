package models

import (
	"time"
)

type ArticleStatus string

const (
	ArticlePending  ArticleStatus = "pendente"
	ArticleApproved ArticleStatus = "aprovada"
	ArticleRejected ArticleStatus = "rejeitada"
)

// DefaultRejectionReason is stored when a moderator rejects without a reason.
const DefaultRejectionReason = "Não aprovada pela moderação"

// Article is a submitted news story. Views and Likes are denormalized counters.
type Article struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	Title           string        `gorm:"not null" json:"titulo"`
	Summary         string        `gorm:"type:text;not null" json:"resumo"`
	Content         string        `gorm:"type:text;not null" json:"conteudo"`
	ImageURL        string        `gorm:"not null" json:"imagemUrl"`
	Author          string        `gorm:"not null" json:"autor"`
	Views           int           `gorm:"default:0;not null" json:"visualizacoes"`
	Likes           int           `gorm:"default:0;not null" json:"curtidas"`
	Status          ArticleStatus `gorm:"type:varchar(20);default:'pendente';not null;index" json:"status"`
	RejectionReason *string       `gorm:"type:text" json:"motivo_rejeicao"`
	PublishedAt     time.Time     `gorm:"not null;index" json:"dataPublicacao"`
	CategoryID      uint          `gorm:"not null;index" json:"categoria_id"`
	Category        *Category     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"categoria,omitempty"`
	ClientID        string        `gorm:"type:varchar(36);not null;index" json:"cliente_id"`
	Client          *Client       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"cliente,omitempty"`
	UpdatedAt       time.Time     `json:"updatedAt"`

	Interactions []Interaction `gorm:"foreignKey:ArticleID" json:"interacoes,omitempty"`

	// not a column, filled by the detail fetch
	ContentHTML string `gorm:"-" json:"conteudoHtml,omitempty"`
}
