package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStoreError(t *testing.T) {
	assert.NoError(t, storeError(nil, "x"))

	tests := []struct {
		name    string
		err     error
		kind    ErrorKind
		message string
	}{
		{"record not found", gorm.ErrRecordNotFound, KindNotFound, "Notícia não encontrada"},
		{"wrapped not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), KindNotFound, "Notícia não encontrada"},
		{"foreign key", gorm.ErrForeignKeyViolated, KindNotFound, "Notícia não encontrada"},
		{"duplicate", gorm.ErrDuplicatedKey, KindDuplicate, "Registro duplicado"},
		{"other", errors.New("connection reset"), KindStore, "Erro interno do servidor"},
		{"already classified", Conflict("ocupado"), KindConflict, "ocupado"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := storeError(tt.err, articleNotFoundMsg)
			var appErr *Error
			if assert.ErrorAs(t, err, &appErr) {
				assert.Equal(t, tt.kind, appErr.Kind)
				assert.Equal(t, tt.message, appErr.Message)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(ValidationError("x")))
	assert.Equal(t, KindStore, KindOf(errors.New("plain")))
	assert.True(t, IsKind(fmt.Errorf("wrap: %w", Forbidden("no")), KindForbidden))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
}
