package services

import (
	"context"

	"gorm.io/gorm"

	"noticiario/internal/metrics"
	"noticiario/internal/models"
	"noticiario/internal/utils"
)

const (
	interactionNotFoundMsg = "Interação não encontrada"
	alreadyLikedMsg        = "Você já curtiu esta notícia"
)

type InteractionInput struct {
	Type      models.InteractionType `json:"tipo" binding:"required,oneof=curtida comentario avaliacao"`
	Content   *string                `json:"conteudo"`
	Rating    *int                   `json:"nota" binding:"omitempty,min=1,max=5"`
	ClientID  string                 `json:"cliente_id" binding:"required"`
	ArticleID uint                   `json:"noticia_id" binding:"required"`
}

// Validate checks the rules that depend on the interaction type.
func (in InteractionInput) Validate() error {
	switch in.Type {
	case models.InteractionComment:
		if in.Content == nil || utils.SanitizeText(*in.Content) == "" {
			return ValidationError("conteudo é obrigatório para comentários")
		}
	case models.InteractionRating:
		if in.Rating == nil {
			return ValidationError("nota é obrigatória para avaliações")
		}
	}
	return nil
}

type InteractionService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewInteractionService(db *gorm.DB, notifier Notifier) *InteractionService {
	return &InteractionService{db: db, notifier: notifier}
}

// Record stores a reader interaction. A like also increments the article's like
// counter in the same transaction; a second like from the same client fails with
// a duplicate error, either from the early check or from the unique index when
// two requests race.
func (s *InteractionService) Record(ctx context.Context, in InteractionInput) (*models.Interaction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	interaction := models.Interaction{
		Type:      in.Type,
		Rating:    in.Rating,
		ClientID:  in.ClientID,
		ArticleID: in.ArticleID,
	}
	if in.Content != nil {
		content := utils.SanitizeText(*in.Content)
		interaction.Content = &content
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.Select("id", "name").Where("id = ?", in.ClientID).First(&client).Error; err != nil {
			return storeError(err, "Cliente não encontrado")
		}
		var article models.Article
		if err := tx.Select("id", "title").First(&article, in.ArticleID).Error; err != nil {
			return storeError(err, articleNotFoundMsg)
		}

		if in.Type == models.InteractionLike {
			var existing int64
			err := tx.Model(&models.Interaction{}).
				Where("client_id = ? AND article_id = ? AND type = ?", in.ClientID, in.ArticleID, models.InteractionLike).
				Count(&existing).Error
			if err != nil {
				return err
			}
			if existing > 0 {
				return Duplicate(alreadyLikedMsg)
			}
		}

		if err := tx.Create(&interaction).Error; err != nil {
			if in.Type == models.InteractionLike && IsKind(storeError(err, ""), KindDuplicate) {
				return Duplicate(alreadyLikedMsg)
			}
			return err
		}

		if in.Type == models.InteractionLike {
			err := tx.Model(&models.Article{}).Where("id = ?", in.ArticleID).
				UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error
			if err != nil {
				return err
			}
		}

		interaction.Client = &client
		interaction.Article = &article
		return nil
	})
	if err != nil {
		metrics.RecordInteraction(string(in.Type), string(KindOf(err)))
		return nil, storeError(err, articleNotFoundMsg)
	}

	metrics.RecordInteraction(string(in.Type), "created")
	return &interaction, nil
}

// Reply attaches the admin's answer to an interaction.
func (s *InteractionService) Reply(ctx context.Context, id uint, reply string) (*models.Interaction, error) {
	reply = utils.SanitizeText(reply)
	if reply == "" {
		return nil, ValidationError("resposta é obrigatória")
	}

	var interaction models.Interaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&interaction, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Interaction{}).Where("id = ?", id).Update("reply", reply).Error; err != nil {
			return err
		}
		return tx.Preload("Client", clientContact).
			Preload("Article", func(tx *gorm.DB) *gorm.DB {
				return tx.Select("id", "title")
			}).
			First(&interaction, id).Error
	})
	if err != nil {
		return nil, storeError(err, interactionNotFoundMsg)
	}

	if s.notifier != nil {
		s.notifier.InteractionAnswered(&interaction)
	}
	return &interaction, nil
}

// ListByArticle returns the article's interactions with the author's name,
// newest first.
func (s *InteractionService) ListByArticle(ctx context.Context, articleID uint) ([]models.Interaction, error) {
	var interactions []models.Interaction
	err := s.db.WithContext(ctx).
		Preload("Client", clientName).
		Where("article_id = ?", articleID).
		Order("created_at DESC").
		Find(&interactions).Error
	if err != nil {
		return nil, storeError(err, "")
	}
	return interactions, nil
}

// ListByClient returns a client's interactions with a short article reference,
// newest first.
func (s *InteractionService) ListByClient(ctx context.Context, clientID string) ([]models.Interaction, error) {
	var interactions []models.Interaction
	err := s.db.WithContext(ctx).
		Preload("Article", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "title", "image_url")
		}).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&interactions).Error
	if err != nil {
		return nil, storeError(err, "")
	}
	return interactions, nil
}
