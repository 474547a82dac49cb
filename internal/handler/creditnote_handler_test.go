package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bizdesk/internal/domain"
	"bizdesk/internal/handler"
	"bizdesk/internal/middleware"
	"bizdesk/internal/service"
	"bizdesk/mocks"
)

func setAuthContext(c *gin.Context, tenantID, userID uuid.UUID, role string) {
	c.Set(middleware.ContextKeyTenantID, tenantID)
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyRole, role)
	c.Set(middleware.ContextKeyEmail, "user@test.com")
}

func newCreditNoteHandler() (*handler.CreditNoteHandler, *mocks.MockCreditNoteService) {
	mockSvc := new(mocks.MockCreditNoteService)
	h := handler.NewCreditNoteHandler(mockSvc)
	return h, mockSvc
}

func postJSON(t *testing.T, body any, tenantID, userID uuid.UUID) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	raw, err := json.Marshal(body)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/credit-notes", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, tenantID, userID, "member")
	return w, c
}

func TestCreditNoteHandler_Create_Success(t *testing.T) {
	h, mockSvc := newCreditNoteHandler()

	tenantID := uuid.New()
	userID := uuid.New()
	customerID := uuid.New()
	expected := &domain.CreditNote{
		ID:               uuid.New(),
		TenantID:         tenantID,
		CustomerID:       customerID,
		CreditNoteNumber: "CN-00001",
		Status:           domain.CreditNoteStatusOpen,
	}
	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("*service.CreateCreditNoteInput")).
		Return(expected, nil)

	w, c := postJSON(t, map[string]any{
		"customer_id":   customerID,
		"credit_amount": 50,
	}, tenantID, userID)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestCreditNoteHandler_Create_AcceptsLegacyItemsKey(t *testing.T) {
	h, mockSvc := newCreditNoteHandler()

	tenantID := uuid.New()
	userID := uuid.New()
	customerID := uuid.New()
	invoiceID := uuid.New()
	itemID := uuid.New().String()

	expected := &domain.CreditNote{ID: uuid.New(), Status: domain.CreditNoteStatusOpen}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in *service.CreateCreditNoteInput) bool {
		return len(in.LineItems) == 1 && in.LineItems[0].ItemID == itemID
	})).Return(expected, nil)

	w, c := postJSON(t, map[string]any{
		"customer_id": customerID,
		"invoice_id":  invoiceID,
		"items": []map[string]any{
			{"item_id": itemID, "item_type": "product", "quantity": 2, "unit_price": 10},
		},
	}, tenantID, userID)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestCreditNoteHandler_Create_LineItemsKeyWins(t *testing.T) {
	h, mockSvc := newCreditNoteHandler()

	tenantID := uuid.New()
	userID := uuid.New()
	customerID := uuid.New()
	invoiceID := uuid.New()
	newItem := uuid.New().String()
	legacyItem := uuid.New().String()

	expected := &domain.CreditNote{ID: uuid.New(), Status: domain.CreditNoteStatusOpen}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in *service.CreateCreditNoteInput) bool {
		return len(in.LineItems) == 1 && in.LineItems[0].ItemID == newItem
	})).Return(expected, nil)

	w, c := postJSON(t, map[string]any{
		"customer_id": customerID,
		"invoice_id":  invoiceID,
		"line_items": []map[string]any{
			{"item_id": newItem, "item_type": "product", "quantity": 1, "unit_price": 10},
		},
		"items": []map[string]any{
			{"item_id": legacyItem, "item_type": "product", "quantity": 1, "unit_price": 10},
		},
	}, tenantID, userID)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestCreditNoteHandler_Create_MissingCustomer(t *testing.T) {
	h, mockSvc := newCreditNoteHandler()

	w, c := postJSON(t, map[string]any{
		"credit_amount": 50,
	}, uuid.New(), uuid.New())

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreditNoteHandler_Create_ExceedsInvoiceMapped(t *testing.T) {
	h, mockSvc := newCreditNoteHandler()

	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("*service.CreateCreditNoteInput")).
		Return(nil, domain.ErrCreditExceedsInvoice)

	w, c := postJSON(t, map[string]any{
		"customer_id":   uuid.New(),
		"credit_amount": 9999,
	}, uuid.New(), uuid.New())

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "CREDIT_EXCEEDS_INVOICE", resp.Error.Code)
}

func TestCreditNoteHandler_Process_Success(t *testing.T) {
	h, mockSvc := newCreditNoteHandler()

	tenantID := uuid.New()
	userID := uuid.New()
	noteID := uuid.New()
	expected := &domain.CreditNote{ID: noteID, Status: domain.CreditNoteStatusProcessed}
	mockSvc.On("Process", mock.Anything, tenantID, noteID).Return(expected, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/credit-notes/%s/process", noteID), nil)
	c.Params = gin.Params{{Key: "id", Value: noteID.String()}}
	setAuthContext(c, tenantID, userID, "member")

	h.Process(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestCreditNoteHandler_Process_AlreadyProcessed(t *testing.T) {
	h, mockSvc := newCreditNoteHandler()

	tenantID := uuid.New()
	noteID := uuid.New()
	mockSvc.On("Process", mock.Anything, tenantID, noteID).Return(nil, domain.ErrCreditNoteProcessed)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/credit-notes/%s/process", noteID), nil)
	c.Params = gin.Params{{Key: "id", Value: noteID.String()}}
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.Process(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreditNoteHandler_EditState_Success(t *testing.T) {
	h, mockSvc := newCreditNoteHandler()

	tenantID := uuid.New()
	noteID := uuid.New()
	state := &service.EditState{
		Note: &domain.CreditNote{ID: noteID, Status: domain.CreditNoteStatusOpen},
	}
	mockSvc.On("GetEditState", mock.Anything, tenantID, noteID).Return(state, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/credit-notes/%s/edit-state", noteID), nil)
	c.Params = gin.Params{{Key: "id", Value: noteID.String()}}
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.EditState(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestCreditNoteHandler_Delete_NotFound(t *testing.T) {
	h, mockSvc := newCreditNoteHandler()

	tenantID := uuid.New()
	noteID := uuid.New()
	mockSvc.On("Delete", mock.Anything, tenantID, noteID).Return(domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/v1/credit-notes/%s", noteID), nil)
	c.Params = gin.Params{{Key: "id", Value: noteID.String()}}
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
