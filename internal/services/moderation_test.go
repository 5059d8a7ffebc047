package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"noticiario/internal/models"
)

type ModerationServiceTestSuite struct {
	suite.Suite
	ctx context.Context

	db           *gorm.DB
	notifier     *recordingNotifier
	service      *ModerationService
	interactions *InteractionService

	owner *models.Client
	admin *models.Client
}

func (s *ModerationServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = newTestDB(s.T())
	s.notifier = &recordingNotifier{}
	s.service = NewModerationService(s.db, s.notifier)
	s.interactions = NewInteractionService(s.db, nil)
	s.owner = seedClient(s.T(), s.db, false)
	s.admin = seedClient(s.T(), s.db, true)
}

func TestModerationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ModerationServiceTestSuite))
}

func (s *ModerationServiceTestSuite) TestSubmit_AlwaysPending() {
	for _, submitter := range []*models.Client{s.owner, s.admin} {
		article, err := s.service.Submit(s.ctx, articleInput(submitter.ID))
		s.Require().NoError(err)
		s.NotZero(article.ID)
		s.Equal(models.ArticlePending, article.Status)
		s.Nil(article.RejectionReason)
		s.False(article.PublishedAt.IsZero())
		s.Zero(article.Views)
		s.Zero(article.Likes)
	}
}

func (s *ModerationServiceTestSuite) TestSubmit_UnknownCategory() {
	in := articleInput(s.owner.ID)
	in.CategoryID = 999

	_, err := s.service.Submit(s.ctx, in)
	s.Require().Error(err)
	s.True(IsKind(err, KindNotFound))
	s.Contains(err.Error(), categoryNotFoundMsg)
}

func (s *ModerationServiceTestSuite) TestSubmit_UnknownClient() {
	_, err := s.service.Submit(s.ctx, articleInput("00000000-0000-0000-0000-000000000000"))
	s.Require().Error(err)
	s.True(IsKind(err, KindNotFound))
}

func (s *ModerationServiceTestSuite) TestModeration_LastWriteWins() {
	article := seedArticle(s.T(), s.db, s.owner, models.ArticlePending, "Pauta da semana")

	approved, err := s.service.Approve(s.ctx, article.ID)
	s.Require().NoError(err)
	s.Equal(models.ArticleApproved, approved.Status)
	s.Nil(approved.RejectionReason)

	rejected, err := s.service.Reject(s.ctx, article.ID, "")
	s.Require().NoError(err)
	s.Equal(models.ArticleRejected, rejected.Status)
	s.Require().NotNil(rejected.RejectionReason)
	s.Equal(models.DefaultRejectionReason, *rejected.RejectionReason)

	rejected, err = s.service.Reject(s.ctx, article.ID, "  Fora da linha editorial ")
	s.Require().NoError(err)
	s.Require().NotNil(rejected.RejectionReason)
	s.Equal("Fora da linha editorial", *rejected.RejectionReason)

	approved, err = s.service.Approve(s.ctx, article.ID)
	s.Require().NoError(err)
	s.Equal(models.ArticleApproved, approved.Status)
	s.Nil(approved.RejectionReason)

	var stored models.Article
	s.Require().NoError(s.db.First(&stored, article.ID).Error)
	s.Equal(models.ArticleApproved, stored.Status)
	s.Nil(stored.RejectionReason)
}

func (s *ModerationServiceTestSuite) TestModeration_NotifiesSubmitter() {
	article := seedArticle(s.T(), s.db, s.owner, models.ArticlePending, "Pauta da semana")

	_, err := s.service.Reject(s.ctx, article.ID, "Sem fonte")
	s.Require().NoError(err)

	s.Require().Len(s.notifier.moderated, 1)
	got := s.notifier.moderated[0]
	s.Equal(article.ID, got.ID)
	s.Require().NotNil(got.Client)
	s.Equal(s.owner.Email, got.Client.Email)
	s.Require().NotNil(got.Category)
	s.Equal("Economia", got.Category.Name)
}

func (s *ModerationServiceTestSuite) TestModeration_NotFound() {
	_, err := s.service.Approve(s.ctx, 4242)
	s.True(IsKind(err, KindNotFound))

	_, err = s.service.Reject(s.ctx, 4242, "motivo")
	s.True(IsKind(err, KindNotFound))
	s.Empty(s.notifier.moderated)
}

func (s *ModerationServiceTestSuite) TestDetail_CountsEveryFetch() {
	article := seedArticle(s.T(), s.db, s.owner, models.ArticleApproved, "Inflação desacelera")

	first, err := s.service.Detail(s.ctx, article.ID)
	s.Require().NoError(err)
	s.Equal(1, first.Views)

	second, err := s.service.Detail(s.ctx, article.ID)
	s.Require().NoError(err)
	s.Equal(2, second.Views)

	var stored models.Article
	s.Require().NoError(s.db.First(&stored, article.ID).Error)
	s.Equal(2, stored.Views)

	s.Contains(second.ContentHTML, "<strong>longo</strong>")
	s.Require().NotNil(second.Category)
	s.Require().NotNil(second.Client)
	s.Equal(s.owner.Name, second.Client.Name)
	s.Empty(second.Client.Email)
}

func (s *ModerationServiceTestSuite) TestDetail_IncludesInteractionsNewestFirst() {
	article := seedArticle(s.T(), s.db, s.owner, models.ArticleApproved, "Inflação desacelera")

	for _, text := range []string{"primeiro", "segundo"} {
		_, err := s.interactions.Record(s.ctx, InteractionInput{
			Type:      models.InteractionComment,
			Content:   strPtr(text),
			ClientID:  s.owner.ID,
			ArticleID: article.ID,
		})
		s.Require().NoError(err)
	}

	detail, err := s.service.Detail(s.ctx, article.ID)
	s.Require().NoError(err)
	s.Require().Len(detail.Interactions, 2)
	s.False(detail.Interactions[0].CreatedAt.Before(detail.Interactions[1].CreatedAt))
	s.Require().NotNil(detail.Interactions[0].Client)
	s.Equal(s.owner.Name, detail.Interactions[0].Client.Name)
}

func (s *ModerationServiceTestSuite) TestDetail_OnlyApproved() {
	for _, status := range []models.ArticleStatus{models.ArticlePending, models.ArticleRejected} {
		article := seedArticle(s.T(), s.db, s.owner, status, "Ainda não publicada")

		_, err := s.service.Detail(s.ctx, article.ID)
		s.Require().Error(err)
		s.True(IsKind(err, KindNotFound))

		var stored models.Article
		s.Require().NoError(s.db.First(&stored, article.ID).Error)
		s.Zero(stored.Views)
	}
}

func (s *ModerationServiceTestSuite) TestDelete_RemovesInteractions() {
	article := seedArticle(s.T(), s.db, s.owner, models.ArticleApproved, "Para apagar")
	reader := seedClient(s.T(), s.db, false)

	_, err := s.interactions.Record(s.ctx, InteractionInput{Type: models.InteractionLike, ClientID: reader.ID, ArticleID: article.ID})
	s.Require().NoError(err)
	_, err = s.interactions.Record(s.ctx, InteractionInput{Type: models.InteractionComment, Content: strPtr("ok"), ClientID: reader.ID, ArticleID: article.ID})
	s.Require().NoError(err)

	s.Require().NoError(s.service.Delete(s.ctx, article.ID))

	byArticle, err := s.interactions.ListByArticle(s.ctx, article.ID)
	s.Require().NoError(err)
	s.Empty(byArticle)

	byClient, err := s.interactions.ListByClient(s.ctx, reader.ID)
	s.Require().NoError(err)
	s.Empty(byClient)

	err = s.service.Delete(s.ctx, article.ID)
	s.True(IsKind(err, KindNotFound))
}

func (s *ModerationServiceTestSuite) TestSearch() {
	older := seedArticle(s.T(), s.db, s.owner, models.ArticleApproved, "Eleições municipais")
	sports := seedArticle(s.T(), s.db, s.owner, models.ArticleApproved, "Final do campeonato")
	s.Require().NoError(s.db.Model(sports).Update("category_id", 2).Error) // Esportes
	seedArticle(s.T(), s.db, s.owner, models.ArticlePending, "Eleições estaduais")

	found, err := s.service.Search(s.ctx, "ELEI")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(older.ID, found[0].ID)

	found, err = s.service.Search(s.ctx, "esportes")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(sports.ID, found[0].ID)
	s.Require().NotNil(found[0].Category)
	s.Equal("Esportes", found[0].Category.Name)

	// matches the author of every approved article, newest first
	found, err = s.service.Search(s.ctx, "redação")
	s.Require().NoError(err)
	s.Require().Len(found, 2)
	s.Equal(sports.ID, found[0].ID)

	headline := seedArticle(s.T(), s.db, s.owner, models.ArticleApproved, "ÁGUA NA SERRA")
	for _, term := range []string{"água", "ÁGUA", "Água na serra"} {
		found, err = s.service.Search(s.ctx, term)
		s.Require().NoError(err)
		s.Require().Len(found, 1, term)
		s.Equal(headline.ID, found[0].ID)
	}

	found, err = s.service.Search(s.ctx, "%")
	s.Require().NoError(err)
	s.Empty(found)

	found, err = s.service.Search(s.ctx, "   ")
	s.Require().NoError(err)
	s.NotNil(found)
	s.Empty(found)
}

func (s *ModerationServiceTestSuite) TestLists() {
	approved := seedArticle(s.T(), s.db, s.owner, models.ArticleApproved, "Publicada")
	pending := seedArticle(s.T(), s.db, s.owner, models.ArticlePending, "Na fila")
	seedArticle(s.T(), s.db, s.admin, models.ArticleRejected, "Recusada")

	list, err := s.service.ListApproved(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(approved.ID, list[0].ID)

	queue, err := s.service.ListPending(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(queue, 1)
	s.Equal(pending.ID, queue[0].ID)
	s.Require().NotNil(queue[0].Client)
	s.Equal(s.owner.Email, queue[0].Client.Email)

	mine, err := s.service.ListByClient(s.ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Len(mine, 2)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%`, escapeLike("50%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
