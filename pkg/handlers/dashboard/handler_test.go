package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/charts"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/datagen"
	"github.com/de-tools/sales-atlas/pkg/services/filter"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"
)

type mockDashboard struct {
	mock.Mock
}

func (m *mockDashboard) Title() string {
	return m.Called().String(0)
}

func (m *mockDashboard) Categories() []domain.Category {
	args := m.Called()
	return args.Get(0).([]domain.Category)
}

func (m *mockDashboard) Recompute(sel filter.Selection) *dashboard.View {
	args := m.Called(sel)
	return args.Get(0).(*dashboard.View)
}

var testService = dashboard.NewService(datagen.New(datagen.DefaultSeed).Generate(), dashboard.Options{})

func viewFor(sel filter.Selection) *dashboard.View {
	return testService.Recompute(sel)
}

func setupRouter(d *mockDashboard) *Router {
	return NewRouter(d, charts.DefaultRegistry())
}

func withURLParams(req *http.Request, params map[string]string) *http.Request {
	ctx := chi.NewRouteContext()
	for k, v := range params {
		ctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))
}

func TestListCategories(t *testing.T) {
	d := new(mockDashboard)
	d.On("Categories").Return(domain.AllCategories())
	router := setupRouter(d)

	req := httptest.NewRequest("GET", "/categories", nil)
	rec := httptest.NewRecorder()
	router.ListCategories(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response []string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, []string{"Electronics", "Clothing", "Book", "Home", "Sports"}, response)
	d.AssertExpectations(t)
}

func TestListSales(t *testing.T) {
	electronics := filter.NewSelection(domain.CategoryElectronics)

	tests := []struct {
		name           string
		query          string
		selection      filter.Selection
		expectedStatus int
		check          func(t *testing.T, page api.Page[api.DailySale])
	}{
		{
			name:           "no filter returns every day",
			query:          "",
			selection:      filter.All(),
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, page api.Page[api.DailySale]) {
				assert.Equal(t, 365, page.Total)
				assert.Len(t, page.Data, 365)
				assert.Equal(t, "2023-01-01", page.Data[0].Date)
			},
		},
		{
			name:           "category filter",
			query:          "?category=Electronics",
			selection:      electronics,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, page api.Page[api.DailySale]) {
				require.NotEmpty(t, page.Data)
				for _, s := range page.Data {
					assert.Equal(t, "Electronics", s.Category)
				}
			},
		},
		{
			name:           "pagination",
			query:          "?limit=10&offset=360",
			selection:      filter.All(),
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, page api.Page[api.DailySale]) {
				assert.Len(t, page.Data, 5)
				assert.Equal(t, 10, page.Limit)
				assert.Equal(t, 360, page.Offset)
				assert.Equal(t, "2023-12-31", page.Data[4].Date)
			},
		},
		{
			name:           "offset past end",
			query:          "?offset=1000",
			selection:      filter.All(),
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, page api.Page[api.DailySale]) {
				assert.Empty(t, page.Data)
				assert.Equal(t, 365, page.Total)
			},
		},
		{
			name:           "empty selection",
			query:          "?category=",
			selection:      filter.Selection{},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, page api.Page[api.DailySale]) {
				assert.Empty(t, page.Data)
				assert.Zero(t, page.Total)
			},
		},
		{
			name:           "invalid limit",
			query:          "?limit=abc",
			selection:      filter.All(),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := new(mockDashboard)
			d.On("Recompute", tt.selection).Return(viewFor(tt.selection))
			router := setupRouter(d)

			req := httptest.NewRequest("GET", "/sales"+tt.query, nil)
			rec := httptest.NewRecorder()
			router.ListSales(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var page api.Page[api.DailySale]
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
				tt.check(t, page)
			} else {
				assert.Contains(t, rec.Body.String(), "invalid 'limit' value")
			}
			d.AssertExpectations(t)
		})
	}
}

func TestListCustomers_IgnoresCategory(t *testing.T) {
	sel := filter.NewSelection(domain.CategoryBook)
	d := new(mockDashboard)
	d.On("Recompute", sel).Return(viewFor(sel))
	router := setupRouter(d)

	req := httptest.NewRequest("GET", "/customers?category=Book&limit=3", nil)
	rec := httptest.NewRecorder()
	router.ListCustomers(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var page api.Page[api.DailyCustomer]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	assert.Equal(t, 365, page.Total)
	assert.Len(t, page.Data, 3)
	d.AssertExpectations(t)
}

func TestListProducts(t *testing.T) {
	sel := filter.NewSelection(domain.CategoryElectronics, domain.CategorySports)
	d := new(mockDashboard)
	d.On("Recompute", sel).Return(viewFor(sel))
	router := setupRouter(d)

	req := httptest.NewRequest("GET", "/products?category=Electronics,Sports", nil)
	rec := httptest.NewRecorder()
	router.ListProducts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response []api.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, []api.Product{
		{Product: "Smartphone", TotalSales: 15000, Rating: 4.5, Category: "Electronics"},
		{Product: "Notebook", TotalSales: 12000, Rating: 4.3, Category: "Electronics"},
		{Product: "Sneaker", TotalSales: 9000, Rating: 4.2, Category: "Sports"},
	}, response)
	d.AssertExpectations(t)
}

func TestSalesByCategory(t *testing.T) {
	d := new(mockDashboard)
	d.On("Recompute", filter.All()).Return(viewFor(filter.All()))
	router := setupRouter(d)

	req := httptest.NewRequest("GET", "/sales/by-category", nil)
	rec := httptest.NewRecorder()
	router.SalesByCategory(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response []api.CategoryValue
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Len(t, response, 5)

	var share float64
	for _, v := range response {
		share += v.Share
	}
	assert.InDelta(t, 100, share, 1e-6)
}

func TestGetSummaryAndInsights(t *testing.T) {
	empty := filter.Selection{}
	d := new(mockDashboard)
	d.On("Recompute", empty).Return(viewFor(empty))
	router := setupRouter(d)

	req := httptest.NewRequest("GET", "/summary?category=", nil)
	rec := httptest.NewRecorder()
	router.GetSummary(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var summary api.Summary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	assert.Equal(t, "0.00", summary.TotalSales)
	assert.Empty(t, summary.Selection)
	require.Len(t, summary.KPIs, 3)
	assert.Equal(t, "R$ 0.00", summary.KPIs[0].Value)

	req = httptest.NewRequest("GET", "/insights?category=", nil)
	rec = httptest.NewRecorder()
	router.GetInsights(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var insights api.Insights
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&insights))
	assert.Empty(t, insights.TopCategory)
	assert.Nil(t, insights.TopRating)
	assert.Len(t, insights.Recommendations, 4)
	d.AssertExpectations(t)
}

func TestGetChart(t *testing.T) {
	tests := []struct {
		name            string
		chart           string
		format          string
		query           string
		selection       filter.Selection
		expectedStatus  int
		expectedType    string
		expectedBody    []byte
		expectedMessage string
	}{
		{
			name:           "png chart",
			chart:          "sales",
			format:         "png",
			selection:      filter.All(),
			expectedStatus: http.StatusOK,
			expectedType:   "image/png",
			expectedBody:   []byte("\x89PNG"),
		},
		{
			name:           "svg chart",
			chart:          "categories",
			format:         "svg",
			selection:      filter.All(),
			expectedStatus: http.StatusOK,
			expectedType:   "image/svg+xml",
			expectedBody:   []byte("<svg"),
		},
		{
			name:           "empty selection",
			chart:          "products",
			format:         "png",
			query:          "?category=",
			selection:      filter.Selection{},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:            "unknown chart",
			chart:           "revenue",
			format:          "png",
			selection:       filter.All(),
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "unknown chart \"revenue\"\n",
		},
		{
			name:            "unknown format",
			chart:           "sales",
			format:          "gif",
			selection:       filter.All(),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "unsupported image format \"gif\". Supported formats: png, svg\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := new(mockDashboard)
			d.On("Recompute", tt.selection).Return(viewFor(tt.selection))
			router := setupRouter(d)

			req := httptest.NewRequest("GET", "/charts/"+tt.chart+"."+tt.format+tt.query, nil)
			req = withURLParams(req, map[string]string{"chart": tt.chart, "format": tt.format})
			rec := httptest.NewRecorder()
			router.GetChart(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedType != "" {
				assert.Equal(t, tt.expectedType, rec.Header().Get("Content-Type"))
			}
			if tt.expectedBody != nil {
				assert.True(t, bytes.Contains(rec.Body.Bytes(), tt.expectedBody), "unexpected body")
			}
			if tt.expectedMessage != "" {
				assert.Equal(t, tt.expectedMessage, rec.Body.String())
			}
			d.AssertExpectations(t)
		})
	}
}

func TestGetChart_RenderFailure(t *testing.T) {
	registry := charts.NewRegistry()
	require.NoError(t, registry.Register("broken", func(chart.RendererProvider, io.Writer, *dashboard.View) error {
		return errors.New("font not found")
	}))

	d := new(mockDashboard)
	d.On("Recompute", filter.All()).Return(viewFor(filter.All()))
	router := NewRouter(d, registry)

	req := withURLParams(httptest.NewRequest("GET", "/charts/broken.png", nil),
		map[string]string{"chart": "broken", "format": "png"})
	rec := httptest.NewRecorder()
	router.GetChart(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPage(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		selection   filter.Selection
		contains    []string
		notContains []string
	}{
		{
			name:      "default selection",
			selection: filter.All(),
			contains: []string{
				"<title>Online Sales Panel S.A.</title>",
				`<option value="Electronics" selected>`,
				"/api/v1/charts/sales.png?category=Electronics",
				"Total Sales",
				"Smartphone",
			},
			notContains: []string{"No data for the current selection"},
		},
		{
			name:      "empty selection renders placeholders",
			query:     "?category=",
			selection: filter.Selection{},
			contains: []string{
				"No data for the current selection",
				`<option value="Electronics">`,
				"R$ 0.00",
				"Selected categories: none",
				"/api/v1/charts/customers.png?category=",
			},
			notContains: []string{"/api/v1/charts/sales.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := new(mockDashboard)
			d.On("Title").Return(dashboard.DefaultTitle)
			d.On("Categories").Return(domain.AllCategories())
			d.On("Recompute", tt.selection).Return(viewFor(tt.selection))
			router := setupRouter(d)

			req := httptest.NewRequest("GET", "/"+tt.query, nil)
			rec := httptest.NewRecorder()
			router.Page(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			body := rec.Body.String()
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, body, s)
			}
			d.AssertExpectations(t)
		})
	}
}

func TestChartQuery(t *testing.T) {
	assert.Equal(t, "category=", chartQuery(nil))
	assert.Equal(t, "category=Book&category=Home", chartQuery([]domain.Category{domain.CategoryBook, domain.CategoryHome}))
}
