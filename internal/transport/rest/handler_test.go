package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/shoplite/catalog/internal/catalog"
	perrors "github.com/shoplite/catalog/internal/errors"
	"github.com/shoplite/catalog/internal/service"
	"github.com/shoplite/catalog/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductService is a mock implementation of the ProductService interface
type mockProductService struct {
	product    *service.ProductDto
	products   []service.ProductDto
	error      error
	lastFilter store.ListFilter
	lastWrite  service.ProductWriteDto
	lastID     int64
	cleared    bool
}

func (m *mockProductService) FindByID(_ context.Context, id int64) (*service.ProductDto, error) {
	m.lastID = id
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) FindAll(_ context.Context, filter store.ListFilter) ([]service.ProductDto, error) {
	m.lastFilter = filter
	if m.error != nil {
		return nil, m.error
	}
	return m.products, nil
}

func (m *mockProductService) Create(_ context.Context, product service.ProductWriteDto) (*service.ProductDto, error) {
	m.lastWrite = product
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) Update(_ context.Context, id int64, product service.ProductWriteDto) (*service.ProductDto, error) {
	m.lastID = id
	m.lastWrite = product
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) DeleteByID(_ context.Context, id int64) error {
	m.lastID = id
	return m.error
}

func (m *mockProductService) DeleteAll(_ context.Context) error {
	m.cleared = true
	return m.error
}

func newTestRouter(svc service.ProductService) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := chi.NewRouter()
	NewHandler(svc, logger).RegisterRoutes(mux)
	return mux
}

func doRequest(t *testing.T, mux *chi.Mux, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func sampleDto() *service.ProductDto {
	return &service.ProductDto{
		ID:          1,
		Name:        "Hat",
		Description: "A red fedora",
		Price:       decimal.RequireFromString("59.95"),
		Available:   true,
		Category:    catalog.CategoryCloths,
	}
}

func Test_Handler_Create(t *testing.T) {
	validBody := `{"name": "Hat", "description": "A red fedora", "price": "59.95", "available": true, "category": "CLOTHS"}`

	testCases := []struct {
		name         string
		contentType  string
		body         string
		mockService  *mockProductService
		expectedCode int
		checkBody    func(t *testing.T, body string)
	}{
		{
			name:         "Success - product created",
			contentType:  "application/json",
			body:         validBody,
			mockService:  &mockProductService{product: sampleDto()},
			expectedCode: http.StatusCreated,
			checkBody: func(t *testing.T, body string) {
				var dto service.ProductDto
				require.NoError(t, json.Unmarshal([]byte(body), &dto))
				assert.Equal(t, int64(1), dto.ID)
				assert.Equal(t, "Hat", dto.Name)
			},
		},
		{
			name:         "Success - numeric price accepted",
			contentType:  "application/json",
			body:         `{"name": "Hat", "price": 59.95, "category": "CLOTHS"}`,
			mockService:  &mockProductService{product: sampleDto()},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Success - content type with charset",
			contentType:  "application/json; charset=utf-8",
			body:         validBody,
			mockService:  &mockProductService{product: sampleDto()},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Error - no content type",
			contentType:  "",
			body:         validBody,
			mockService:  &mockProductService{},
			expectedCode: http.StatusUnsupportedMediaType,
		},
		{
			name:         "Error - wrong content type",
			contentType:  "text/plain",
			body:         "bad data",
			mockService:  &mockProductService{},
			expectedCode: http.StatusUnsupportedMediaType,
		},
		{
			name:         "Error - missing name",
			contentType:  "application/json",
			body:         `{"description": "nameless", "price": "1.00", "category": "FOOD"}`,
			mockService:  &mockProductService{},
			expectedCode: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "validation_errors")
				assert.Contains(t, body, "Name")
			},
		},
		{
			name:         "Error - malformed JSON",
			contentType:  "application/json",
			body:         `{"name": `,
			mockService:  &mockProductService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - negative price",
			contentType:  "application/json",
			body:         `{"name": "Hat", "price": "-1.00", "category": "CLOTHS"}`,
			mockService:  &mockProductService{},
			expectedCode: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "non-negative")
			},
		},
		{
			name:         "Error - unknown category",
			contentType:  "application/json",
			body:         `{"name": "Hat", "price": "1.00", "category": "GADGETS"}`,
			mockService:  &mockProductService{},
			expectedCode: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "Unknown category")
			},
		},
		{
			name:         "Error - service failure",
			contentType:  "application/json",
			body:         validBody,
			mockService:  &mockProductService{error: assert.AnError},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(tc.mockService)
			// when
			rec := doRequest(t, mux, http.MethodPost, "/products", tc.contentType, tc.body)
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.checkBody != nil {
				tc.checkBody(t, rec.Body.String())
			}
		})
	}
}

func Test_Handler_Create_SetsLocationHeader(t *testing.T) {
	mockService := &mockProductService{product: sampleDto()}
	mux := newTestRouter(mockService)

	rec := doRequest(t, mux, http.MethodPost, "/products", "application/json",
		`{"name": "Hat", "price": "59.95", "category": "CLOTHS"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/products/1", rec.Header().Get("Location"))
}

func Test_Handler_Create_DefaultsCategoryToUnknown(t *testing.T) {
	mockService := &mockProductService{product: sampleDto()}
	mux := newTestRouter(mockService)

	rec := doRequest(t, mux, http.MethodPost, "/products", "application/json",
		`{"name": "Hat", "price": "1.00"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, catalog.CategoryUnknown, mockService.lastWrite.Category)
}

func Test_Handler_FindByID(t *testing.T) {
	testCases := []struct {
		name         string
		target       string
		mockService  *mockProductService
		expectedCode int
		checkBody    func(t *testing.T, body string)
	}{
		{
			name:         "Success - product found",
			target:       "/products/1",
			mockService:  &mockProductService{product: sampleDto()},
			expectedCode: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var dto service.ProductDto
				require.NoError(t, json.Unmarshal([]byte(body), &dto))
				assert.Equal(t, "Hat", dto.Name)
				assert.Equal(t, catalog.CategoryCloths, dto.Category)
			},
		},
		{
			name:         "Error - product not found",
			target:       "/products/99",
			mockService:  &mockProductService{error: perrors.ErrProductNotFound},
			expectedCode: http.StatusNotFound,
			checkBody: func(t *testing.T, body string) {
				var resp map[string]string
				require.NoError(t, json.Unmarshal([]byte(body), &resp))
				assert.Contains(t, strings.ToLower(resp["message"]), "not found")
			},
		},
		{
			name:         "Error - invalid ID",
			target:       "/products/abc",
			mockService:  &mockProductService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - service failure",
			target:       "/products/1",
			mockService:  &mockProductService{error: assert.AnError},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(tc.mockService)
			// when
			rec := doRequest(t, mux, http.MethodGet, tc.target, "", "")
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.checkBody != nil {
				tc.checkBody(t, rec.Body.String())
			}
		})
	}
}

func Test_Handler_Update(t *testing.T) {
	validBody := `{"name": "Fedora", "description": "updated", "price": "49.95", "available": false, "category": "CLOTHS"}`

	testCases := []struct {
		name         string
		target       string
		contentType  string
		body         string
		mockService  *mockProductService
		expectedCode int
	}{
		{
			name:         "Success - product updated",
			target:       "/products/1",
			contentType:  "application/json",
			body:         validBody,
			mockService:  &mockProductService{product: sampleDto()},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Error - product not found",
			target:       "/products/99",
			contentType:  "application/json",
			body:         validBody,
			mockService:  &mockProductService{error: perrors.ErrProductNotFound},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Error - wrong content type",
			target:       "/products/1",
			contentType:  "text/plain",
			body:         validBody,
			mockService:  &mockProductService{},
			expectedCode: http.StatusUnsupportedMediaType,
		},
		{
			name:         "Error - missing name",
			target:       "/products/1",
			contentType:  "application/json",
			body:         `{"price": "1.00"}`,
			mockService:  &mockProductService{},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(tc.mockService)
			// when
			rec := doRequest(t, mux, http.MethodPut, tc.target, tc.contentType, tc.body)
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}

func Test_Handler_DeleteByID(t *testing.T) {
	// Delete is idempotent: the service never reports missing IDs.
	mockService := &mockProductService{}
	mux := newTestRouter(mockService)

	rec := doRequest(t, mux, http.MethodDelete, "/products/42", "", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(42), mockService.lastID)
	assert.Empty(t, rec.Body.String())
}

func Test_Handler_DeleteAll(t *testing.T) {
	mockService := &mockProductService{}
	mux := newTestRouter(mockService)

	rec := doRequest(t, mux, http.MethodDelete, "/products", "", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, mockService.cleared)
}

func Test_Handler_FindAll(t *testing.T) {
	testCases := []struct {
		name         string
		target       string
		mockService  *mockProductService
		expectedCode int
		checkFilter  func(t *testing.T, filter store.ListFilter)
	}{
		{
			name:         "Success - no filters",
			target:       "/products",
			mockService:  &mockProductService{products: []service.ProductDto{*sampleDto()}},
			expectedCode: http.StatusOK,
			checkFilter: func(t *testing.T, filter store.ListFilter) {
				assert.Nil(t, filter.Name)
				assert.Nil(t, filter.Category)
				assert.Nil(t, filter.Available)
			},
		},
		{
			name:         "Success - name filter",
			target:       "/products?name=Hat",
			mockService:  &mockProductService{products: []service.ProductDto{}},
			expectedCode: http.StatusOK,
			checkFilter: func(t *testing.T, filter store.ListFilter) {
				require.NotNil(t, filter.Name)
				assert.Equal(t, "Hat", *filter.Name)
			},
		},
		{
			name:         "Success - category filter is case-insensitive",
			target:       "/products?category=food",
			mockService:  &mockProductService{products: []service.ProductDto{}},
			expectedCode: http.StatusOK,
			checkFilter: func(t *testing.T, filter store.ListFilter) {
				require.NotNil(t, filter.Category)
				assert.Equal(t, catalog.CategoryFood, *filter.Category)
			},
		},
		{
			name:         "Success - available filter coerces truthy strings",
			target:       "/products?available=True",
			mockService:  &mockProductService{products: []service.ProductDto{}},
			expectedCode: http.StatusOK,
			checkFilter: func(t *testing.T, filter store.ListFilter) {
				require.NotNil(t, filter.Available)
				assert.True(t, *filter.Available)
			},
		},
		{
			name:         "Success - combined filters",
			target:       "/products?name=Hat&category=CLOTHS&available=1",
			mockService:  &mockProductService{products: []service.ProductDto{}},
			expectedCode: http.StatusOK,
			checkFilter: func(t *testing.T, filter store.ListFilter) {
				require.NotNil(t, filter.Name)
				require.NotNil(t, filter.Category)
				require.NotNil(t, filter.Available)
			},
		},
		{
			name:         "Error - unknown category",
			target:       "/products?category=GADGETS",
			mockService:  &mockProductService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - invalid available value",
			target:       "/products?available=maybe",
			mockService:  &mockProductService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - service failure",
			target:       "/products",
			mockService:  &mockProductService{error: assert.AnError},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(tc.mockService)
			// when
			rec := doRequest(t, mux, http.MethodGet, tc.target, "", "")
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.checkFilter != nil {
				tc.checkFilter(t, tc.mockService.lastFilter)
			}
		})
	}
}

func Test_Handler_FindAll_SerializesPriceAsString(t *testing.T) {
	mockService := &mockProductService{products: []service.ProductDto{*sampleDto()}}
	mux := newTestRouter(mockService)

	rec := doRequest(t, mux, http.MethodGet, "/products", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":"59.95"`)
}

func Test_Handler_HealthCheck(t *testing.T) {
	mux := newTestRouter(&mockProductService{})

	rec := doRequest(t, mux, http.MethodGet, "/health", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp["message"])
}

func Test_Handler_Index(t *testing.T) {
	mux := newTestRouter(&mockProductService{})

	rec := doRequest(t, mux, http.MethodGet, "/", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "Product Catalog Administration")
	// element IDs relied on by the browser automation harness
	for _, id := range []string{"name-input", "description-input", "price-input",
		"available-dropdown", "category-dropdown", "search-btn", "search_results", "flash_message"} {
		assert.Contains(t, body, id)
	}
	// the category dropdown is populated from the recognized categories
	assert.Contains(t, body, "HOUSEWARES")
}
