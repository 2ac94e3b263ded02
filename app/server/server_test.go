package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crmhub/crm-graphql/app/catalog"
	"github.com/crmhub/crm-graphql/app/crm"
	"github.com/crmhub/crm-graphql/app/customers"
	"github.com/crmhub/crm-graphql/app/graph"
	"github.com/crmhub/crm-graphql/config"
	"github.com/crmhub/crm-graphql/models"
)

func newTestSchema(t *testing.T) *graphql.Schema {
	t.Helper()
	gin.SetMode(gin.TestMode)
	schema, err := graph.NewSchema(crm.NewService(models.NewMemoryStore(), nil))
	require.NoError(t, err)
	return schema
}

func postGraphQL(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouter(t *testing.T) {
	r := Router(newTestSchema(t), zap.NewNop())

	testCases := []struct {
		name               string
		method             string
		path               string
		body               string
		headers            map[string]string
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:               "Health check",
			method:             http.MethodGet,
			path:               "/healthz",
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "ok", rec.Body.String())
				assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
			},
		},
		{
			name:               "Request id is propagated",
			method:             http.MethodGet,
			path:               "/healthz",
			headers:            map[string]string{"X-Request-ID": "abc-123"},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
			},
		},
		{
			name:               "Playground",
			method:             http.MethodGet,
			path:               "/graphql",
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "CRM GraphQL")
			},
		},
		{
			name:               "Query",
			method:             http.MethodPost,
			path:               "/graphql",
			body:               `{"query":"{ customers { id } }"}`,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"data":{"customers":[]}}`, rec.Body.String())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

func TestCreateCustomerOverHTTP(t *testing.T) {
	r := Router(newTestSchema(t), zap.NewNop())

	body := `{"query":"mutation($in: CustomerInput!) { createCustomer(input: $in) { message customer { email } } }",
		"variables":{"in":{"name":"Alice","email":"alice@example.com","phone":"123-456-7890"}}}`
	rec := postGraphQL(r, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			CreateCustomer struct {
				Message  string `json:"message"`
				Customer struct {
					Email string `json:"email"`
				} `json:"customer"`
			} `json:"createCustomer"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Errors)
	assert.Equal(t, "Customer created successfully", resp.Data.CreateCustomer.Message)
	assert.Equal(t, "alice@example.com", resp.Data.CreateCustomer.Customer.Email)

	rec = postGraphQL(r, body)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Email already exists", resp.Errors[0].Message)
}

func TestRESTRoutesShareTheService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := models.NewMemoryStore()
	svc := crm.NewService(store, nil)
	schema, err := graph.NewSchema(svc)
	require.NoError(t, err)
	r := Router(schema, zap.NewNop(), customers.NewCustomerHandler(svc), catalog.NewCatalogHandler(store))

	req := httptest.NewRequest(http.MethodPost, "/api/customers", strings.NewReader(`{"name":"Alice","email":"alice@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	// the GraphQL side sees the customer created over REST
	rec = postGraphQL(r, `{"query":"mutation { createCustomer(input: {name: \"Copy\", email: \"alice@example.com\"}) { message } }"}`)
	assert.Contains(t, rec.Body.String(), "DUPLICATE_EMAIL")

	rec = postGraphQL(r, `{"query":"mutation { createProduct(input: {name: \"Mouse\", price: \"29.99\", stock: 50}) { product { id } } }"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/catalog?in_stock=true", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var page catalog.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "29.99", page.Products[0].Price)
}

func TestRunStopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	schema := newTestSchema(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, config.ServerConfig{Addr: addr, GinMode: gin.TestMode}, schema, zap.NewNop())
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
