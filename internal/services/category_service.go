package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "financas/internal/errors"
	"financas/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

func validCategoryKind(k models.CategoryKind) bool {
	return k == models.CategoryKindIncome || k == models.CategoryKindExpense
}

// CreateCategory creates a new active category.
func (s *categoryService) CreateCategory(name string, kind models.CategoryKind) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !validCategoryKind(kind) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category kind must be income or expense")
	}
	if err := s.ensureUniqueName(name, ""); err != nil {
		return nil, err
	}

	category := &models.Category{Name: name, Kind: kind, IsActive: true}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetCategories lists categories ordered by name, optionally filtered by
// kind and active flag.
func (s *categoryService) GetCategories(kind *models.CategoryKind, activeOnly *bool) ([]models.Category, error) {
	q := s.db.Model(&models.Category{})
	if kind != nil {
		q = q.Where("kind = ?", *kind)
	}
	if activeOnly != nil {
		q = q.Where("is_active = ?", *activeOnly)
	}

	var categories []models.Category
	if err := q.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID.
func (s *categoryService) GetCategoryByID(categoryID string) (*models.Category, error) {
	return findCategory(s.db, categoryID)
}

// UpdateCategory renames, re-kinds or (de)activates a category. Categories
// are never deleted so past transactions keep their reference.
func (s *categoryService) UpdateCategory(categoryID string, fields CategoryUpdateFields) (*models.Category, error) {
	category, err := findCategory(s.db, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
		}
		if name != category.Name {
			if err := s.ensureUniqueName(name, category.ID); err != nil {
				return nil, err
			}
			updates["name"] = name
		}
	}
	if fields.Kind != nil {
		if !validCategoryKind(*fields.Kind) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category kind must be income or expense")
		}
		updates["kind"] = *fields.Kind
	}
	if fields.IsActive != nil {
		updates["is_active"] = *fields.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return findCategory(s.db, category.ID)
}

func (s *categoryService) ensureUniqueName(name, exceptID string) error {
	q := s.db.Model(&models.Category{}).Where("name = ?", name)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateCategory
	}
	return nil
}
