package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"noticiario/internal/middleware"
	"noticiario/internal/services"
	"noticiario/internal/utils"
)

var statusByKind = map[services.ErrorKind]int{
	services.KindValidation:   http.StatusBadRequest,
	services.KindNotFound:     http.StatusNotFound,
	services.KindDuplicate:    http.StatusBadRequest,
	services.KindConflict:     http.StatusConflict,
	services.KindUnauthorized: http.StatusUnauthorized,
	services.KindForbidden:    http.StatusForbidden,
	services.KindStore:        http.StatusInternalServerError,
}

func init() {
	// Report JSON field names (titulo, nome...) in validation messages
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

type base struct {
	log *slog.Logger
}

// fail writes {erro, codigo}. Store failures are logged with their cause and
// reported with a generic message only.
func (b base) fail(c *gin.Context, err error) {
	var appErr *services.Error
	if !errors.As(err, &appErr) {
		appErr = &services.Error{Kind: services.KindStore, Message: "Erro interno do servidor", Err: err}
	}

	status, ok := statusByKind[appErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		b.log.Error("request failed", "route", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"erro": appErr.Message, "codigo": appErr.Kind})
}

// bind decodes and validates the JSON body into dst.
func (b base) bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		b.fail(c, services.ValidationError(validationMessage(err)))
		return false
	}
	return true
}

func (b base) pathID(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		b.fail(c, services.ValidationError("ID deve ser um número"))
		return 0, false
	}
	return id, true
}

// allowClient lets admins act for anyone and clients only for themselves.
func (b base) allowClient(c *gin.Context, clientID string) bool {
	current := middleware.CurrentClient(c)
	if current == nil {
		b.fail(c, services.Unauthorized("Token ausente, inválido ou expirado"))
		return false
	}
	if !current.Admin && current.ID != clientID {
		b.fail(c, services.Forbidden("Operação não permitida para este cliente"))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Dados inválidos"
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s é obrigatório", field))
		case "email":
			messages = append(messages, fmt.Sprintf("%s deve ser um e-mail válido", field))
		case "url":
			messages = append(messages, fmt.Sprintf("%s deve ser uma URL válida", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s deve ter no mínimo %s", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s deve ter no máximo %s", field, fe.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s deve ser um de: %s", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s é inválido", field))
		}
	}
	return strings.Join(messages, "; ")
}
