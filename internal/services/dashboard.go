package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"noticiario/internal/models"
)

const (
	recentArticlesLimit = 5
	activityWindowDays  = 7
)

type CategoryCount struct {
	Category string `json:"categoria"`
	Total    int64  `json:"total"`
}

type DailyCount struct {
	Day   string `json:"dia"` // YYYY-MM-DD, UTC
	Total int64  `json:"total"`
}

// StatsReport is a point-in-time snapshot for the admin dashboard.
type StatsReport struct {
	TotalArticles     int64 `json:"totalNoticias"`
	PendingArticles   int64 `json:"noticiasPendentes"`
	ApprovedArticles  int64 `json:"noticiasAprovadas"`
	RejectedArticles  int64 `json:"noticiasRejeitadas"`
	TotalClients      int64 `json:"totalClientes"`
	TotalInteractions int64 `json:"totalInteracoes"`
	TotalLikes        int64 `json:"totalCurtidas"`
	TotalComments     int64 `json:"totalComentarios"`
	TotalRatings      int64 `json:"totalAvaliacoes"`

	ArticlesByCategory []CategoryCount  `json:"noticiasPorCategoria"`
	RecentArticles     []models.Article `json:"noticiasRecentes"`
	InteractionsByDay  []DailyCount     `json:"interacoesPorDia"`
}

type DashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db, now: time.Now}
}

// activityStart returns midnight UTC six days before now, so the window holds
// today plus the six previous calendar days.
func activityStart(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(activityWindowDays - 1))
}

// dayExpr truncates interactions.created_at to a YYYY-MM-DD string for the
// active dialect.
func dayExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "strftime('%Y-%m-%d', created_at)"
	}
	return "TO_CHAR(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')"
}

// ComputeStats runs every aggregate concurrently. Nothing is cached.
func (s *DashboardService) ComputeStats(ctx context.Context) (*StatsReport, error) {
	var report StatsReport
	db := s.db.WithContext(ctx)
	since := activityStart(s.now())

	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int64, model interface{}, query string, args ...interface{}) {
		g.Go(func() error {
			q := db.WithContext(gctx).Model(model)
			if query != "" {
				q = q.Where(query, args...)
			}
			return q.Count(dst).Error
		})
	}

	count(&report.TotalArticles, &models.Article{}, "")
	count(&report.PendingArticles, &models.Article{}, "status = ?", models.ArticlePending)
	count(&report.ApprovedArticles, &models.Article{}, "status = ?", models.ArticleApproved)
	count(&report.RejectedArticles, &models.Article{}, "status = ?", models.ArticleRejected)
	count(&report.TotalClients, &models.Client{}, "")
	count(&report.TotalInteractions, &models.Interaction{}, "")
	count(&report.TotalLikes, &models.Interaction{}, "type = ?", models.InteractionLike)
	count(&report.TotalComments, &models.Interaction{}, "type = ?", models.InteractionComment)
	count(&report.TotalRatings, &models.Interaction{}, "type = ?", models.InteractionRating)

	g.Go(func() error {
		return db.WithContext(gctx).
			Table("categories").
			Select("categories.name AS category, COUNT(articles.id) AS total").
			Joins("LEFT JOIN articles ON articles.category_id = categories.id").
			Group("categories.id, categories.name").
			Order("categories.name ASC").
			Scan(&report.ArticlesByCategory).Error
	})

	g.Go(func() error {
		return db.WithContext(gctx).
			Preload("Category").
			Preload("Client", clientName).
			Order("published_at DESC").
			Limit(recentArticlesLimit).
			Find(&report.RecentArticles).Error
	})

	g.Go(func() error {
		day := dayExpr(db)
		return db.WithContext(gctx).
			Model(&models.Interaction{}).
			Select(day+" AS day, COUNT(*) AS total").
			Where("created_at >= ?", since).
			Group(day).
			Order("day ASC").
			Scan(&report.InteractionsByDay).Error
	})

	if err := g.Wait(); err != nil {
		return nil, storeError(err, "")
	}

	if report.ArticlesByCategory == nil {
		report.ArticlesByCategory = []CategoryCount{}
	}
	if report.RecentArticles == nil {
		report.RecentArticles = []models.Article{}
	}
	if report.InteractionsByDay == nil {
		report.InteractionsByDay = []DailyCount{}
	}
	return &report, nil
}
