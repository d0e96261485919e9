package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "financas/internal/errors"
	"financas/internal/models"
	"financas/internal/services"
)

// --- mock account service ---

type mockAccountService struct {
	createAccountFn  func(name string, kind models.AccountKind) (*models.Account, error)
	getAccountsFn    func(activeOnly *bool) ([]models.Account, error)
	getAccountByIDFn func(accountID string) (*models.Account, error)
	updateAccountFn  func(accountID string, fields services.AccountUpdateFields) (*models.Account, error)
}

func (m *mockAccountService) CreateAccount(name string, kind models.AccountKind) (*models.Account, error) {
	if m.createAccountFn != nil {
		return m.createAccountFn(name, kind)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) GetAccounts(activeOnly *bool) ([]models.Account, error) {
	if m.getAccountsFn != nil {
		return m.getAccountsFn(activeOnly)
	}
	return []models.Account{}, nil
}

func (m *mockAccountService) GetAccountByID(accountID string) (*models.Account, error) {
	if m.getAccountByIDFn != nil {
		return m.getAccountByIDFn(accountID)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) UpdateAccount(accountID string, fields services.AccountUpdateFields) (*models.Account, error) {
	if m.updateAccountFn != nil {
		return m.updateAccountFn(accountID, fields)
	}
	return &models.Account{}, nil
}

// verify interface compliance
var _ services.AccountServicer = (*mockAccountService)(nil)

func setupAccountRouter(handler *AccountHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectSession(testUserID, models.UserRoleAdmin))
	auth.POST("/accounts", handler.CreateAccount)
	auth.GET("/accounts", handler.GetAccounts)
	auth.GET("/accounts/:id", handler.GetAccountByID)
	auth.PUT("/accounts/:id", handler.UpdateAccount)
	return r
}

func TestAccountHandler_CreateAccount(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotKind models.AccountKind
		svc := &mockAccountService{
			createAccountFn: func(name string, kind models.AccountKind) (*models.Account, error) {
				gotKind = kind
				return &models.Account{Base: models.Base{ID: testAccountID}, Name: name, Kind: models.AccountKindChecking, IsActive: true}, nil
			},
		}
		r := setupAccountRouter(NewAccountHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/accounts", `{"name":"Nubank"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotKind != "" {
			t.Errorf("expected empty kind passed through for defaulting, got %q", gotKind)
		}
		acct := parseJSON(t, rec)["account"].(map[string]interface{})
		if acct["name"] != "Nubank" {
			t.Errorf("expected Nubank, got %v", acct["name"])
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupAccountRouter(NewAccountHandler(&mockAccountService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/accounts", `{"kind":"cash"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on invalid kind", func(t *testing.T) {
		r := setupAccountRouter(NewAccountHandler(&mockAccountService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/accounts", `{"name":"Broker","kind":"investment"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAccountHandler_ListGetUpdate(t *testing.T) {
	t.Run("lists accounts", func(t *testing.T) {
		svc := &mockAccountService{
			getAccountsFn: func(_ *bool) ([]models.Account, error) {
				return []models.Account{{Name: "Conta Corrente"}, {Name: "Dinheiro"}}, nil
			},
		}
		r := setupAccountRouter(NewAccountHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/accounts", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		accounts := parseJSON(t, rec)["accounts"].([]interface{})
		if len(accounts) != 2 {
			t.Errorf("expected 2 accounts, got %d", len(accounts))
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockAccountService{
			getAccountByIDFn: func(_ string) (*models.Account, error) {
				return nil, apperrors.ErrAccountNotFound
			},
		}
		r := setupAccountRouter(NewAccountHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/accounts/"+testAccountID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("updates kind", func(t *testing.T) {
		var got services.AccountUpdateFields
		svc := &mockAccountService{
			updateAccountFn: func(_ string, fields services.AccountUpdateFields) (*models.Account, error) {
				got = fields
				return &models.Account{Name: "Dinheiro", Kind: models.AccountKindCash}, nil
			},
		}
		r := setupAccountRouter(NewAccountHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/accounts/"+testAccountID, `{"kind":"cash"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Kind == nil || *got.Kind != models.AccountKindCash {
			t.Errorf("expected cash kind, got %+v", got)
		}
	})
}
