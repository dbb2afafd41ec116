package erpnext

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) IClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return New(srv.URL, "test-key", "test-secret", logger)
}

func TestGetLoggedUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/method/frappe.auth.get_logged_user", r.URL.Path)
		assert.Equal(t, "token test-key:test-secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"message":"admin@example.com"}`))
	})

	user, err := client.GetLoggedUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user)
}

func TestGetLoggedUserBadShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":{"unexpected":"object"}}`))
	})

	_, err := client.GetLoggedUser(context.Background())
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestSearchItemsSendsTupleFilters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/resource/Item", r.URL.Path)

		var filters []Filter
		require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("filters")), &filters))
		require.Len(t, filters, 1)
		assert.Equal(t, "item_name", filters[0].Field)
		assert.Equal(t, "like", filters[0].Operator)
		assert.Equal(t, "%Plate%", filters[0].Value)

		_, _ = w.Write([]byte(`{"data":[{"name":"PLT-01","item_code":"PLT-01","item_name":"Plate"}]}`))
	})

	items, err := client.SearchItems(context.Background(), "Plate")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Plate", items[0].ItemName)
}

func TestGetBins(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"item_code":"PLT-01","warehouse":"Stores","actual_qty":5},{"item_code":"PLT-01","warehouse":"WIP","actual_qty":3}]}`))
	})

	bins, err := client.GetBins(context.Background(), "PLT-01")
	require.NoError(t, err)
	require.Len(t, bins, 2)
	assert.Equal(t, 5.0, bins[0].ActualQty)
	assert.Equal(t, 3.0, bins[1].ActualQty)
}

func TestBackendErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.GetOpenOrders(context.Background())
	assert.ErrorIs(t, err, ErrBackend)
}

func TestGetListMissingEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":true}`))
	})

	_, err := client.GetList(context.Background(), "Item", nil, nil)
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestFirstAvailableItemEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	item, err := client.FirstAvailableItem(context.Background())
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestCreateSalesInvoice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/resource/Sales Invoice", r.URL.Path)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "CUST-001", payload["customer"])

		_, _ = w.Write([]byte(`{"data":{"name":"ACC-SINV-0001","customer":"CUST-001","status":"Draft"}}`))
	})

	doc, err := client.CreateSalesInvoice(context.Background(), "CUST-001", "PLT-01")
	require.NoError(t, err)
	assert.Equal(t, "ACC-SINV-0001", doc.Name)
}
