package services

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"noticiario/internal/config"
	"noticiario/internal/db"
	"noticiario/internal/logging"
	"noticiario/internal/models"
)

const economiaID uint = 1

var clientSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(conn) })
	return conn
}

func seedClient(t *testing.T, conn *gorm.DB, admin bool) *models.Client {
	t.Helper()
	n := clientSeq.Add(1)
	client := &models.Client{
		Name:     fmt.Sprintf("Cliente %d", n),
		Email:    fmt.Sprintf("cliente%d@example.com", n),
		Password: "not-a-real-hash",
		Phone:    "11999990000",
		City:     "Recife",
		Admin:    admin,
	}
	require.NoError(t, conn.Create(client).Error)
	return client
}

func seedArticle(t *testing.T, conn *gorm.DB, owner *models.Client, status models.ArticleStatus, title string) *models.Article {
	t.Helper()
	article := &models.Article{
		Title:       title,
		Summary:     "Resumo da notícia de teste",
		Content:     "Conteúdo **longo** o bastante para passar por qualquer validação de tamanho.",
		ImageURL:    "https://example.com/img.png",
		Author:      "Redação",
		Status:      status,
		PublishedAt: time.Now().UTC(),
		CategoryID:  economiaID,
		ClientID:    owner.ID,
	}
	require.NoError(t, conn.Create(article).Error)
	return article
}

func articleInput(clientID string) ArticleInput {
	return ArticleInput{
		Title:      "Mercado fecha em alta",
		Summary:    "Bolsa sobe puxada por bancos",
		Content:    "O principal índice da bolsa encerrou o pregão em alta de 1,2%, puxado por bancos.",
		ImageURL:   "https://example.com/bolsa.jpg",
		Author:     "Maria Souza",
		CategoryID: economiaID,
		ClientID:   clientID,
	}
}

type recordingNotifier struct {
	mu        sync.Mutex
	moderated []models.Article
	answered  []models.Interaction
}

func (n *recordingNotifier) ArticleModerated(article *models.Article) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.moderated = append(n.moderated, *article)
}

func (n *recordingNotifier) InteractionAnswered(interaction *models.Interaction) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.answered = append(n.answered, *interaction)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
