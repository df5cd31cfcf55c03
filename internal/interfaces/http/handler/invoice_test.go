package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	invoicingapp "github.com/invoicehub/backend/internal/application/invoicing"
	partnerapp "github.com/invoicehub/backend/internal/application/partner"
	settingsapp "github.com/invoicehub/backend/internal/application/settings"
	"github.com/invoicehub/backend/internal/domain/invoicing"
	"github.com/invoicehub/backend/internal/domain/settings"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockInvoiceRepository implements invoicing.InvoiceRepository for testing
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*invoicing.Invoice, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]invoicing.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *invoicing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveWithLock(ctx context.Context, invoice *invoicing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) SumTotalAmount(ctx context.Context, filter shared.Filter) (decimal.Decimal, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInvoiceRepository) ExistsByInvoiceNumber(ctx context.Context, invoiceNumber string) (bool, error) {
	args := m.Called(ctx, invoiceNumber)
	return args.Bool(0), args.Error(1)
}

// MockCommentRepository implements invoicing.CommentRepository for testing
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Save(ctx context.Context, comment *invoicing.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]invoicing.Comment, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]invoicing.Comment), args.Error(1)
}

func (m *MockCommentRepository) DeleteByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

// MockCustomerDirectory implements invoicingapp.CustomerDirectory for testing
type MockCustomerDirectory struct {
	mock.Mock
}

func (m *MockCustomerDirectory) ManageCustomer(ctx context.Context, req partnerapp.ManageCustomerRequest) (*partnerapp.ManageCustomerResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.ManageCustomerResult), args.Error(1)
}

// MockConfigProvider implements invoicingapp.ConfigProvider for testing
type MockConfigProvider struct {
	mock.Mock
}

func (m *MockConfigProvider) GetConfig(ctx context.Context) (*settingsapp.ConfigResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settingsapp.ConfigResponse), args.Error(1)
}

func (m *MockConfigProvider) AllocateInvoiceNumber(ctx context.Context) (*settingsapp.AllocatedNumber, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settingsapp.AllocatedNumber), args.Error(1)
}

// MockDocumentGenerator implements invoicingapp.DocumentGenerator for testing
type MockDocumentGenerator struct {
	mock.Mock
}

func (m *MockDocumentGenerator) GenerateInvoicePDF(ctx context.Context, invoice *invoicing.Invoice, cfg settings.Settings) ([]byte, error) {
	args := m.Called(ctx, invoice, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockDocumentStorage implements invoicingapp.DocumentStorage for testing
type MockDocumentStorage struct {
	mock.Mock
}

func (m *MockDocumentStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	args := m.Called(ctx, storageKey, data, contentType)
	return args.Error(0)
}

func (m *MockDocumentStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockDocumentStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockDocumentStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

type invoiceHandlerMocks struct {
	invoiceRepo *MockInvoiceRepository
	commentRepo *MockCommentRepository
	customers   *MockCustomerDirectory
	configs     *MockConfigProvider
	documents   *MockDocumentGenerator
	storage     *MockDocumentStorage
}

func setupInvoiceHandler() (*InvoiceHandler, *invoiceHandlerMocks) {
	mocks := &invoiceHandlerMocks{
		invoiceRepo: new(MockInvoiceRepository),
		commentRepo: new(MockCommentRepository),
		customers:   new(MockCustomerDirectory),
		configs:     new(MockConfigProvider),
		documents:   new(MockDocumentGenerator),
		storage:     new(MockDocumentStorage),
	}
	service := invoicingapp.NewInvoiceService(
		mocks.invoiceRepo,
		mocks.commentRepo,
		mocks.customers,
		mocks.configs,
		mocks.documents,
		mocks.storage,
		nil,
		nil,
	)
	return NewInvoiceHandler(service), mocks
}

func testConfigResponse() *settingsapp.ConfigResponse {
	return &settingsapp.ConfigResponse{
		Settings: settings.Settings{
			CompanyName:         "Acme Services Ltd",
			InvoiceNumberFormat: settings.DefaultInvoiceNumberFormat,
			EmailToCustomer:     false,
		},
		CurrentInvoiceNumber: "ISC-007/2024",
	}
}

func testInvoice(t *testing.T) *invoicing.Invoice {
	t.Helper()
	line, err := invoicing.NewInvoiceLine("Consulting", decimal.NewFromInt(10), decimal.NewFromInt(150))
	require.NoError(t, err)
	invoice, err := invoicing.NewInvoice("ISC-007/2024", "Jane Doe", "jane@example.com", time.Now(), []invoicing.InvoiceLine{line})
	require.NoError(t, err)
	return invoice
}

func TestInvoiceHandler_Create_Success(t *testing.T) {
	handler, mocks := setupInvoiceHandler()

	mocks.configs.On("GetConfig", mock.Anything).Return(testConfigResponse(), nil)
	mocks.customers.On("ManageCustomer", mock.Anything, mock.Anything).Return(&partnerapp.ManageCustomerResult{
		Customer: partnerapp.CustomerResponse{
			ID:    uuid.New(),
			Name:  "Jane Doe",
			Email: "jane@example.com",
		},
		Created: true,
	}, nil)
	mocks.configs.On("AllocateInvoiceNumber", mock.Anything).Return(&settingsapp.AllocatedNumber{
		RawValue:      "7",
		InvoiceNumber: "ISC-007/2024",
	}, nil)
	mocks.documents.On("GenerateInvoicePDF", mock.Anything, mock.Anything, mock.Anything).Return([]byte("%PDF-1.4"), nil)
	mocks.storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, "application/pdf").Return(nil)
	mocks.invoiceRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	mocks.commentRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	router := setupTestRouter()
	router.POST("/invoices", handler.Create)

	body := map[string]any{
		"customer": map[string]any{
			"name":  "Jane Doe",
			"email": "jane@example.com",
		},
		"lines": []map[string]any{
			{"description": "Consulting", "quantity": "10", "unit_price": "150"},
		},
	}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/invoices", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "ISC-007/2024")
	mocks.invoiceRepo.AssertExpectations(t)
	mocks.storage.AssertExpectations(t)
}

func TestInvoiceHandler_Create_MissingLines(t *testing.T) {
	handler, _ := setupInvoiceHandler()

	router := setupTestRouter()
	router.POST("/invoices", handler.Create)

	payload := []byte(`{"customer":{"name":"Jane Doe","email":"jane@example.com"},"lines":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/invoices", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceHandler_Create_WithoutCustomerEmail(t *testing.T) {
	handler, mocks := setupInvoiceHandler()

	mocks.configs.On("GetConfig", mock.Anything).Return(testConfigResponse(), nil)
	mocks.configs.On("AllocateInvoiceNumber", mock.Anything).Return(&settingsapp.AllocatedNumber{
		RawValue:      "7",
		InvoiceNumber: "ISC-007/2024",
	}, nil)
	mocks.documents.On("GenerateInvoicePDF", mock.Anything, mock.Anything, mock.Anything).Return([]byte("%PDF-1.4"), nil)
	mocks.storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, "application/pdf").Return(nil)
	mocks.invoiceRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	mocks.commentRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	router := setupTestRouter()
	router.POST("/invoices", handler.Create)

	payload := []byte(`{"customer":{"name":"Walk-in Client"},"lines":[{"description":"Consulting","quantity":"10","unit_price":"150"}]}`)
	req := httptest.NewRequest(http.MethodPost, "/invoices", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Walk-in Client")
	mocks.customers.AssertNotCalled(t, "ManageCustomer", mock.Anything, mock.Anything)
	mocks.invoiceRepo.AssertExpectations(t)
}

func TestInvoiceHandler_GetByID_Success(t *testing.T) {
	handler, mocks := setupInvoiceHandler()

	invoice := testInvoice(t)
	mocks.invoiceRepo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)

	router := setupTestRouter()
	router.GET("/invoices/:id", handler.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/invoices/"+invoice.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), invoice.InvoiceNumber)
	mocks.invoiceRepo.AssertExpectations(t)
}

func TestInvoiceHandler_GetByID_NotFound(t *testing.T) {
	handler, mocks := setupInvoiceHandler()

	invoiceID := uuid.New()
	mocks.invoiceRepo.On("FindByID", mock.Anything, invoiceID).Return(nil, shared.ErrNotFound)

	router := setupTestRouter()
	router.GET("/invoices/:id", handler.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/invoices/"+invoiceID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mocks.invoiceRepo.AssertExpectations(t)
}

func TestInvoiceHandler_GetByID_InvalidID(t *testing.T) {
	handler, _ := setupInvoiceHandler()

	router := setupTestRouter()
	router.GET("/invoices/:id", handler.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/invoices/not-a-uuid", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceHandler_UpdateStatus_Success(t *testing.T) {
	handler, mocks := setupInvoiceHandler()

	invoice := testInvoice(t)
	mocks.invoiceRepo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	mocks.invoiceRepo.On("SaveWithLock", mock.Anything, invoice).Return(nil)
	mocks.commentRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	router := setupTestRouter()
	router.PUT("/invoices/:id/status", handler.UpdateStatus)

	payload := []byte(`{"status":"Paid"}`)
	req := httptest.NewRequest(http.MethodPut, "/invoices/"+invoice.ID.String()+"/status", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Paid")
	mocks.invoiceRepo.AssertExpectations(t)
}

func TestInvoiceHandler_UpdateStatus_UnknownStatus(t *testing.T) {
	handler, mocks := setupInvoiceHandler()

	invoice := testInvoice(t)
	mocks.invoiceRepo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)

	router := setupTestRouter()
	router.PUT("/invoices/:id/status", handler.UpdateStatus)

	payload := []byte(`{"status":"Archived"}`)
	req := httptest.NewRequest(http.MethodPut, "/invoices/"+invoice.ID.String()+"/status", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceHandler_List_Success(t *testing.T) {
	handler, mocks := setupInvoiceHandler()

	invoice := testInvoice(t)
	mocks.invoiceRepo.On("FindAll", mock.Anything, mock.Anything).Return([]invoicing.Invoice{*invoice}, nil)
	mocks.invoiceRepo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	router := setupTestRouter()
	router.GET("/invoices", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/invoices?page=1&page_size=20", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Meta    struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(1), resp.Meta.Total)
	mocks.invoiceRepo.AssertExpectations(t)
}

func TestInvoiceHandler_Delete_Success(t *testing.T) {
	handler, mocks := setupInvoiceHandler()

	invoice := testInvoice(t)
	mocks.invoiceRepo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	mocks.invoiceRepo.On("Delete", mock.Anything, invoice.ID).Return(nil)

	router := setupTestRouter()
	router.DELETE("/invoices/:id", handler.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/invoices/"+invoice.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mocks.invoiceRepo.AssertExpectations(t)
}

func TestInvoiceHandler_AddComment_Success(t *testing.T) {
	handler, mocks := setupInvoiceHandler()

	invoice := testInvoice(t)
	mocks.invoiceRepo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	mocks.commentRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	router := setupTestRouter()
	router.POST("/invoices/:id/comments", handler.AddComment)

	payload := []byte(`{"text":"Called the customer about payment"}`)
	req := httptest.NewRequest(http.MethodPost, "/invoices/"+invoice.ID.String()+"/comments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Author", "jane")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "jane")
	mocks.commentRepo.AssertExpectations(t)
}

func TestInvoiceHandler_GetDocumentURL_NoDocument(t *testing.T) {
	handler, mocks := setupInvoiceHandler()

	invoice := testInvoice(t)
	mocks.invoiceRepo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)

	router := setupTestRouter()
	router.GET("/invoices/:id/document", handler.GetDocumentURL)

	req := httptest.NewRequest(http.MethodGet, "/invoices/"+invoice.ID.String()+"/document", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvoiceHandler_Stats_Success(t *testing.T) {
	handler, mocks := setupInvoiceHandler()

	mocks.invoiceRepo.On("Count", mock.Anything, mock.Anything).Return(int64(3), nil)
	mocks.invoiceRepo.On("SumTotalAmount", mock.Anything, mock.Anything).Return(decimal.RequireFromString("5175"), nil)

	router := setupTestRouter()
	router.GET("/invoices/stats", handler.Stats)

	req := httptest.NewRequest(http.MethodGet, "/invoices/stats", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "5175")
	mocks.invoiceRepo.AssertExpectations(t)
}
