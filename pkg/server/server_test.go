package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/services/charts"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/datagen"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	service := dashboard.NewService(datagen.New(datagen.DefaultSeed).Generate(), dashboard.Options{})
	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Dashboard: service,
			Charts:    charts.DefaultRegistry(),
			Logger:    zerolog.New(zerolog.NewTestWriter(t)),
		},
	}
	testServer := httptest.NewServer(ConfigureRouter(config))
	t.Cleanup(testServer.Close)
	return testServer
}

func TestWebAPI_Endpoints(t *testing.T) {
	testServer := newTestServer(t)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name:           "Healthz",
			path:           "/healthz",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.Equal(t, "ok", string(body))
			},
		},
		{
			name:           "ListCategories",
			path:           "/api/v1/categories",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				categories, err := unmarshalResponse[[]string](body)
				require.NoError(t, err)
				assert.Equal(t, []string{"Electronics", "Clothing", "Book", "Home", "Sports"}, categories)
			},
		},
		{
			name:           "ListSales_Paginated",
			path:           "/api/v1/sales?limit=10&offset=5",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				page, err := unmarshalResponse[api.Page[api.DailySale]](body)
				require.NoError(t, err)
				assert.Equal(t, 365, page.Total)
				assert.Len(t, page.Data, 10)
				assert.Equal(t, "2023-01-06", page.Data[0].Date)
			},
		},
		{
			name:           "ListSales_InvalidLimit",
			path:           "/api/v1/sales?limit=-1",
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body []byte) {
				assert.Equal(t, "invalid 'limit' value. Expected a non-negative integer\n", string(body))
			},
		},
		{
			name:           "ListSales_FilteredByCategory",
			path:           "/api/v1/sales?category=Book",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				page, err := unmarshalResponse[api.Page[api.DailySale]](body)
				require.NoError(t, err)
				require.NotEmpty(t, page.Data)
				for _, sale := range page.Data {
					assert.Equal(t, "Book", sale.Category)
				}
			},
		},
		{
			name:           "ListCustomers",
			path:           "/api/v1/customers?category=",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				page, err := unmarshalResponse[api.Page[api.DailyCustomer]](body)
				require.NoError(t, err)
				assert.Equal(t, 365, page.Total)
			},
		},
		{
			name:           "ListProducts_Electronics",
			path:           "/api/v1/products?category=Electronics",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				products, err := unmarshalResponse[[]api.Product](body)
				require.NoError(t, err)
				assert.Equal(t, []api.Product{
					{Product: "Smartphone", TotalSales: 15000, Rating: 4.5, Category: "Electronics"},
					{Product: "Notebook", TotalSales: 12000, Rating: 4.3, Category: "Electronics"},
				}, products)
			},
		},
		{
			name:           "SalesByCategory_SharesSumToHundred",
			path:           "/api/v1/sales/by-category",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				values, err := unmarshalResponse[[]api.CategoryValue](body)
				require.NoError(t, err)
				require.NotEmpty(t, values)
				var share float64
				for _, v := range values {
					share += v.Share
				}
				assert.InDelta(t, 100.0, share, 1e-6)
			},
		},
		{
			name:           "Summary_EmptySelection",
			path:           "/api/v1/summary?category=",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				summary, err := unmarshalResponse[api.Summary](body)
				require.NoError(t, err)
				assert.Empty(t, summary.Selection)
				assert.Equal(t, "0.00", summary.TotalSales)
			},
		},
		{
			name:           "Insights",
			path:           "/api/v1/insights?category=Book,Sports",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				insights, err := unmarshalResponse[api.Insights](body)
				require.NoError(t, err)
				assert.Equal(t, "Sneaker", insights.BestSellingProduct)
				assert.Equal(t, "Book", insights.TopRatedProduct)
				assert.NotEmpty(t, insights.Conclusions)
			},
		},
		{
			name:           "Chart_PNG",
			path:           "/api/v1/charts/sales.png",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.True(t, bytes.HasPrefix(body, pngMagic))
			},
		},
		{
			name:           "Chart_EmptySelection",
			path:           "/api/v1/charts/categories.png?category=",
			expectedStatus: http.StatusNoContent,
			check: func(t *testing.T, body []byte) {
				assert.Empty(t, body)
			},
		},
		{
			name:           "Chart_Unknown",
			path:           "/api/v1/charts/heatmap.png",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Chart_UnknownFormat",
			path:           "/api/v1/charts/sales.gif",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Page",
			path:           "/?category=Home",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), dashboard.DefaultTitle)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			if tc.check != nil {
				tc.check(t, body)
			}
		})
	}
}

func TestWebAPI_Metrics(t *testing.T) {
	testServer := newTestServer(t)

	resp, err := http.Get(testServer.URL + "/api/v1/categories")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(testServer.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `route="/api/v1/categories"`)
}

func TestWebAPI_CORS(t *testing.T) {
	testServer := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, testServer.URL+"/api/v1/categories", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestWebAPI_RateLimit(t *testing.T) {
	service := dashboard.NewService(datagen.New(datagen.DefaultSeed).Generate(), dashboard.Options{})
	testServer := httptest.NewServer(ConfigureRouter(Config{
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
		Dependencies: Dependencies{
			Dashboard: service,
			Logger:    zerolog.Nop(),
		},
	}))
	defer testServer.Close()

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := http.Get(testServer.URL + "/api/v1/categories")
		require.NoError(t, err)
		resp.Body.Close()
		statuses = append(statuses, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)

	resp, err := http.Get(testServer.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewWebAPI_DefaultShutdownTimeout(t *testing.T) {
	webAPI := NewWebAPI(Config{Addr: "127.0.0.1:0"})
	assert.Equal(t, defaultShutdownTimeout, webAPI.shutdownTimeout)
	assert.Equal(t, "127.0.0.1:0", webAPI.server.Addr)
}

func unmarshalResponse[T any](data []byte) (T, error) {
	var response T
	err := json.Unmarshal(data, &response)
	return response, err
}
