package services

import (
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noticiario/internal/config"
	"noticiario/internal/logging"
	"noticiario/internal/models"
)

type sentMail struct {
	addr string
	to   []string
	msg  string
}

func newTestMailer(t *testing.T, cfg config.MailConfig) (*MailService, chan sentMail) {
	t.Helper()
	sent := make(chan sentMail, 4)
	svc := NewMailService(cfg, logging.Discard())
	svc.send = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		sent <- sentMail{addr: addr, to: to, msg: string(msg)}
		return nil
	}
	return svc, sent
}

func smtpConfig() config.MailConfig {
	return config.MailConfig{Host: "smtp.example.com", Port: "587", Username: "bot", Password: "pw", From: "bot@example.com"}
}

func waitMail(t *testing.T, sent chan sentMail) sentMail {
	t.Helper()
	select {
	case m := <-sent:
		return m
	case <-time.After(2 * time.Second):
		require.FailNow(t, "no mail sent")
		return sentMail{}
	}
}

func TestMailService_ArticleModerated(t *testing.T) {
	svc, sent := newTestMailer(t, smtpConfig())

	reason := "Sem fontes"
	svc.ArticleModerated(&models.Article{
		ID:              7,
		Title:           "Nova ponte",
		Status:          models.ArticleRejected,
		RejectionReason: &reason,
		Client:          &models.Client{Name: "Ana", Email: "ana@example.com"},
	})

	m := waitMail(t, sent)
	assert.Equal(t, "smtp.example.com:587", m.addr)
	assert.Equal(t, []string{"ana@example.com"}, m.to)
	assert.Contains(t, m.msg, "Nova ponte")
	assert.Contains(t, m.msg, "Sem fontes")
	assert.True(t, strings.Contains(m.msg, "Subject: Sua notícia não foi aprovada"))
}

func TestMailService_InteractionAnswered(t *testing.T) {
	svc, sent := newTestMailer(t, smtpConfig())

	reply := "Obrigado pelo aviso"
	svc.InteractionAnswered(&models.Interaction{
		ID:      3,
		Reply:   &reply,
		Client:  &models.Client{Name: "Beto", Email: "beto@example.com"},
		Article: &models.Article{Title: "Nova ponte"},
	})

	m := waitMail(t, sent)
	assert.Equal(t, []string{"beto@example.com"}, m.to)
	assert.Contains(t, m.msg, "Obrigado pelo aviso")
}

func TestMailService_SkipsWhenDisabledOrNoRecipient(t *testing.T) {
	disabled, sent := newTestMailer(t, config.MailConfig{})
	disabled.ArticleModerated(&models.Article{
		Status: models.ArticleApproved,
		Client: &models.Client{Name: "Ana", Email: "ana@example.com"},
	})

	enabled, sentEnabled := newTestMailer(t, smtpConfig())
	enabled.ArticleModerated(&models.Article{Status: models.ArticleApproved})
	enabled.InteractionAnswered(&models.Interaction{Client: &models.Client{Email: "x@example.com"}})

	select {
	case <-sent:
		t.Fatal("disabled mailer sent a message")
	case <-sentEnabled:
		t.Fatal("mail sent without recipient or reply")
	case <-time.After(100 * time.Millisecond):
	}
}
