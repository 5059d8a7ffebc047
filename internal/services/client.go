package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"noticiario/internal/models"
	"noticiario/internal/utils"
)

const loginFailedMsg = "Login ou senha incorretos"

type RegisterInput struct {
	Name     string `json:"nome" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"senha" binding:"required,min=6"`
	Phone    string `json:"telefone" binding:"required,min=10"`
	City     string `json:"cidade" binding:"required,min=2"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// LoginResult is the profile returned after a successful login.
type LoginResult struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
	Phone string `json:"telefone"`
	City  string `json:"cidade"`
	Admin bool   `json:"admin"`
	Token string `json:"token"`
}

type ClientService struct {
	db     *gorm.DB
	tokens *TokenService
}

func NewClientService(db *gorm.DB, tokens *TokenService) *ClientService {
	return &ClientService{db: db, tokens: tokens}
}

// Register creates a client with a hashed password. Duplicate emails are
// rejected before insert and, for concurrent registrations, by the unique index.
func (s *ClientService) Register(ctx context.Context, in RegisterInput) (*models.Client, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Client{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, storeError(err, "")
	}
	if count > 0 {
		return nil, Duplicate("E-mail já cadastrado")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, &Error{Kind: KindStore, Message: "Erro interno do servidor", Err: err}
	}

	client := models.Client{
		Name:     in.Name,
		Email:    email,
		Password: hash,
		Phone:    in.Phone,
		City:     in.City,
	}
	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		if IsKind(storeError(err, ""), KindDuplicate) {
			return nil, Duplicate("E-mail já cadastrado")
		}
		return nil, storeError(err, "")
	}
	return &client, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		return nil, storeError(err, "Cliente não encontrado")
	}
	return &client, nil
}

// List returns every client ordered by name.
func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&clients).Error; err != nil {
		return nil, storeError(err, "")
	}
	return clients, nil
}

// Login verifies credentials and issues a session token. Unknown email and wrong
// password produce the same message.
func (s *ClientService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if in.Email == "" || in.Password == "" {
		return nil, ValidationError(loginFailedMsg)
	}

	var client models.Client
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(in.Email))).First(&client).Error
	if err != nil {
		if IsKind(storeError(err, ""), KindNotFound) {
			return nil, ValidationError(loginFailedMsg)
		}
		return nil, storeError(err, "")
	}

	if !utils.CheckPasswordHash(in.Password, client.Password) {
		return nil, ValidationError(loginFailedMsg)
	}

	token, err := s.tokens.Issue(&client)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		ID:    client.ID,
		Name:  client.Name,
		Email: client.Email,
		Phone: client.Phone,
		City:  client.City,
		Admin: client.Admin,
		Token: token,
	}, nil
}
