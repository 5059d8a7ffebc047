package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"noticiario/internal/metrics"
	"noticiario/internal/models"
	"noticiario/internal/utils"
)

const articleNotFoundMsg = "Notícia não encontrada"

type ArticleInput struct {
	Title      string `json:"titulo" binding:"required,min=5"`
	Summary    string `json:"resumo" binding:"required,min=10"`
	Content    string `json:"conteudo" binding:"required,min=50"`
	ImageURL   string `json:"imagemUrl" binding:"required,url"`
	Author     string `json:"autor" binding:"required,min=2"`
	CategoryID uint   `json:"categoria_id" binding:"required"`
	ClientID   string `json:"cliente_id" binding:"required"`
}

// ModerationService owns the article lifecycle: submission, moderation,
// deletion and the reader-facing queries over approved articles.
type ModerationService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewModerationService(db *gorm.DB, notifier Notifier) *ModerationService {
	return &ModerationService{db: db, notifier: notifier}
}

func clientName(tx *gorm.DB) *gorm.DB {
	return tx.Select("id", "name")
}

func clientContact(tx *gorm.DB) *gorm.DB {
	return tx.Select("id", "name", "email")
}

// Submit stores a new article as pending, whatever the submitter's role.
func (s *ModerationService) Submit(ctx context.Context, in ArticleInput) (*models.Article, error) {
	article := models.Article{
		Title:      strings.TrimSpace(in.Title),
		Summary:    strings.TrimSpace(in.Summary),
		Content:    in.Content,
		ImageURL:   in.ImageURL,
		Author:     strings.TrimSpace(in.Author),
		Status:     models.ArticlePending,
		CategoryID: in.CategoryID,
		ClientID:   in.ClientID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Select("id").First(&category, in.CategoryID).Error; err != nil {
			return storeError(err, categoryNotFoundMsg)
		}
		var client models.Client
		if err := tx.Select("id").Where("id = ?", in.ClientID).First(&client).Error; err != nil {
			return storeError(err, "Cliente não encontrado")
		}

		article.PublishedAt = tx.NowFunc()
		return tx.Create(&article).Error
	})
	if err != nil {
		return nil, storeError(err, articleNotFoundMsg)
	}
	return &article, nil
}

// Approve publishes the article and clears any previous rejection reason.
// Already moderated articles can be approved again.
func (s *ModerationService) Approve(ctx context.Context, id uint) (*models.Article, error) {
	article, err := s.moderate(ctx, id, map[string]interface{}{
		"status":           models.ArticleApproved,
		"rejection_reason": nil,
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordModeration(string(models.ArticleApproved))
	return article, nil
}

// Reject hides the article, storing reason or the default moderation message.
func (s *ModerationService) Reject(ctx context.Context, id uint, reason string) (*models.Article, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = models.DefaultRejectionReason
	}
	article, err := s.moderate(ctx, id, map[string]interface{}{
		"status":           models.ArticleRejected,
		"rejection_reason": reason,
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordModeration(string(models.ArticleRejected))
	return article, nil
}

func (s *ModerationService) moderate(ctx context.Context, id uint, updates map[string]interface{}) (*models.Article, error) {
	var article models.Article
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&article, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Article{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Preload("Category").Preload("Client", clientContact).First(&article, id).Error
	})
	if err != nil {
		return nil, storeError(err, articleNotFoundMsg)
	}

	if s.notifier != nil {
		s.notifier.ArticleModerated(&article)
	}
	return &article, nil
}

// Delete removes the article together with its interactions in one transaction.
func (s *ModerationService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.Select("id").First(&article, id).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.Interaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Article{}, id).Error
	})
	return storeError(err, articleNotFoundMsg)
}

// Detail returns an approved article and counts the view. The stored counter is
// incremented in the database; the returned value is the loaded one plus one.
func (s *ModerationService) Detail(ctx context.Context, id uint) (*models.Article, error) {
	db := s.db.WithContext(ctx)

	var article models.Article
	err := db.Preload("Category").
		Preload("Client", clientName).
		Preload("Interactions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC")
		}).
		Preload("Interactions.Client", clientName).
		Where("id = ? AND status = ?", id, models.ArticleApproved).
		First(&article).Error
	if err != nil {
		return nil, storeError(err, articleNotFoundMsg)
	}

	// count the view
	if err := db.Model(&models.Article{}).Where("id = ?", article.ID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		return nil, storeError(err, articleNotFoundMsg)
	}
	article.Views++
	metrics.RecordView()

	article.ContentHTML = utils.RenderMarkdown(article.Content)
	return &article, nil
}

// ListApproved returns published articles, newest first.
func (s *ModerationService) ListApproved(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Client", clientName).
		Where("status = ?", models.ArticleApproved).
		Order("published_at DESC").
		Find(&articles).Error
	if err != nil {
		return nil, storeError(err, "")
	}
	return articles, nil
}

// ListPending returns the moderation queue, including the submitter's e-mail.
func (s *ModerationService) ListPending(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Client", clientContact).
		Where("status = ?", models.ArticlePending).
		Order("published_at DESC").
		Find(&articles).Error
	if err != nil {
		return nil, storeError(err, "")
	}
	return articles, nil
}

// ListByClient returns every article a client submitted, in any status.
func (s *ModerationService) ListByClient(ctx context.Context, clientID string) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("client_id = ?", clientID).
		Order("published_at DESC").
		Find(&articles).Error
	if err != nil {
		return nil, storeError(err, "")
	}
	return articles, nil
}

// Search matches term case-insensitively against title, summary, author and
// category name of approved articles. SQLite's LOWER only folds ASCII, so on
// that driver the candidates are filtered in Go.
func (s *ModerationService) Search(ctx context.Context, term string) ([]models.Article, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Article{}, nil
	}
	needle := strings.ToLower(term)
	foldInGo := s.db.Dialector.Name() == "sqlite"

	q := s.db.WithContext(ctx).
		Select("articles.*").
		Preload("Category").
		Joins("JOIN categories ON categories.id = articles.category_id").
		Where("articles.status = ?", models.ArticleApproved)
	if !foldInGo {
		pattern := "%" + escapeLike(term) + "%"
		q = q.Where(
			s.db.Where("articles.title ILIKE ? ESCAPE '\\'", pattern).
				Or("articles.summary ILIKE ? ESCAPE '\\'", pattern).
				Or("articles.author ILIKE ? ESCAPE '\\'", pattern).
				Or("categories.name ILIKE ? ESCAPE '\\'", pattern),
		)
	}

	var articles []models.Article
	if err := q.Order("articles.published_at DESC").Find(&articles).Error; err != nil {
		return nil, storeError(err, "")
	}
	if !foldInGo {
		return articles, nil
	}

	matched := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if matchesTerm(a, needle) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func matchesTerm(a models.Article, needle string) bool {
	fields := []string{a.Title, a.Summary, a.Author}
	if a.Category != nil {
		fields = append(fields, a.Category.Name)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
