package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"noticiario/internal/models"
)

const categoryNotFoundMsg = "Categoria não encontrada"

type CategoryInput struct {
	Name string `json:"nome" binding:"required,min=2"`
}

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, storeError(err, "")
	}
	return categories, nil
}

// Get returns the category with its articles, newest first.
func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).
		Preload("Articles", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("published_at DESC")
		}).
		First(&category, id).Error
	if err != nil {
		return nil, storeError(err, categoryNotFoundMsg)
	}
	return &category, nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	category := models.Category{Name: strings.TrimSpace(in.Name)}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, categoryWriteError(err)
	}
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, id).Error; err != nil {
			return err
		}
		return tx.Model(&category).Update("name", strings.TrimSpace(in.Name)).Error
	})
	if err != nil {
		return nil, categoryWriteError(err)
	}
	return &category, nil
}

// Delete removes a category. Categories that still own articles are kept: the
// articles table restricts the foreign key and the check below reports it
// before the store does.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			return err
		}

		var articles int64
		if err := tx.Model(&models.Article{}).Where("category_id = ?", id).Count(&articles).Error; err != nil {
			return err
		}
		if articles > 0 {
			return Conflict("Categoria possui notícias vinculadas")
		}

		return tx.Delete(&category).Error
	})
	return storeError(err, categoryNotFoundMsg)
}

func categoryWriteError(err error) error {
	wrapped := storeError(err, categoryNotFoundMsg)
	if IsKind(wrapped, KindDuplicate) {
		return Duplicate("Categoria já cadastrada")
	}
	return wrapped
}
