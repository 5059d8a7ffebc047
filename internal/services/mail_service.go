package services

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"strings"

	"noticiario/internal/config"
	"noticiario/internal/models"
)

//go:embed templates/*.html
var mailTemplates embed.FS

// Notifier is told about moderation outcomes and admin replies. Implementations
// must not block the caller.
type Notifier interface {
	ArticleModerated(article *models.Article)
	InteractionAnswered(interaction *models.Interaction)
}

type MailService struct {
	cfg       config.MailConfig
	enabled   bool
	templates *template.Template
	log       *slog.Logger
	send      func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

var _ Notifier = (*MailService)(nil)

func NewMailService(cfg config.MailConfig, log *slog.Logger) *MailService {
	enabled := cfg.Enabled()
	if !enabled {
		log.Warn("mail service disabled: missing SMTP settings")
	}

	return &MailService{
		cfg:       cfg,
		enabled:   enabled,
		templates: template.Must(template.ParseFS(mailTemplates, "templates/*.html")),
		log:       log,
		send:      smtp.SendMail,
	}
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: Noticiário <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.cfg.From, subject, mime, body))

		if err := s.send(addr, auth, s.cfg.From, to, msg); err != nil {
			s.log.Error("failed to send email", "to", to, "error", err)
			return
		}
		s.log.Info("email sent", "to", to, "subject", subject)
	}()
}

func (s *MailService) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

// ArticleModerated mails the submitter the result of moderation. Articles loaded
// without their client are skipped.
func (s *MailService) ArticleModerated(article *models.Article) {
	if article.Client == nil || article.Client.Email == "" {
		return
	}

	approved := article.Status == models.ArticleApproved
	reason := ""
	if article.RejectionReason != nil {
		reason = *article.RejectionReason
	}
	body, err := s.render("moderation.html", map[string]any{
		"Name":     article.Client.Name,
		"Title":    article.Title,
		"Approved": approved,
		"Reason":   reason,
	})
	if err != nil {
		s.log.Error("render moderation email", "article_id", article.ID, "error", err)
		return
	}

	subject := "Sua notícia foi aprovada"
	if !approved {
		subject = "Sua notícia não foi aprovada"
	}
	s.sendAsync([]string{article.Client.Email}, subject, body)
}

// InteractionAnswered mails the reader who wrote the interaction.
func (s *MailService) InteractionAnswered(interaction *models.Interaction) {
	if interaction.Client == nil || interaction.Client.Email == "" || interaction.Reply == nil {
		return
	}

	title := ""
	if interaction.Article != nil {
		title = interaction.Article.Title
	}
	body, err := s.render("reply.html", map[string]any{
		"Name":  interaction.Client.Name,
		"Title": title,
		"Reply": *interaction.Reply,
	})
	if err != nil {
		s.log.Error("render reply email", "interaction_id", interaction.ID, "error", err)
		return
	}
	s.sendAsync([]string{interaction.Client.Email}, "Sua interação recebeu uma resposta", body)
}
