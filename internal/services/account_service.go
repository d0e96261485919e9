package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "financas/internal/errors"
	"financas/internal/models"
)

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

func validAccountKind(k models.AccountKind) bool {
	switch k {
	case models.AccountKindChecking, models.AccountKindCredit, models.AccountKindCash, models.AccountKindSavings:
		return true
	}
	return false
}

// CreateAccount creates a new active account.
func (s *accountService) CreateAccount(name string, kind models.AccountKind) (*models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if kind == "" {
		kind = models.AccountKindChecking
	}
	if !validAccountKind(kind) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported account kind")
	}
	if err := s.ensureUniqueName(name, ""); err != nil {
		return nil, err
	}

	account := &models.Account{Name: name, Kind: kind, IsActive: true}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// GetAccounts lists accounts ordered by name.
func (s *accountService) GetAccounts(activeOnly *bool) ([]models.Account, error) {
	q := s.db.Model(&models.Account{})
	if activeOnly != nil {
		q = q.Where("is_active = ?", *activeOnly)
	}

	var accounts []models.Account
	if err := q.Order("name ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// GetAccountByID retrieves an account by ID.
func (s *accountService) GetAccountByID(accountID string) (*models.Account, error) {
	return findAccount(s.db, accountID)
}

// UpdateAccount updates the name, kind or active flag of an account.
func (s *accountService) UpdateAccount(accountID string, fields AccountUpdateFields) (*models.Account, error) {
	account, err := findAccount(s.db, accountID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
		}
		if name != account.Name {
			if err := s.ensureUniqueName(name, account.ID); err != nil {
				return nil, err
			}
			updates["name"] = name
		}
	}
	if fields.Kind != nil {
		if !validAccountKind(*fields.Kind) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported account kind")
		}
		updates["kind"] = *fields.Kind
	}
	if fields.IsActive != nil {
		updates["is_active"] = *fields.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(account).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		// Reload to get fresh data
		if account, err = findAccount(s.db, account.ID); err != nil {
			return nil, err
		}
	}
	return account, nil
}

func (s *accountService) ensureUniqueName(name, exceptID string) error {
	q := s.db.Model(&models.Account{}).Where("name = ?", name)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateAccount
	}
	return nil
}
