package erpnext

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrBackend     = fmt.Errorf("erpnext backend error")
	ErrBadResponse = fmt.Errorf("erpnext response shape mismatch")
)

// IClient wraps the ERPNext (Frappe) REST API. Raw GetList/GetDoc/CreateDoc
// back the proxy routes; the typed helpers back the command handlers and
// validate response shapes at this boundary instead of letting untyped
// payloads propagate.
type IClient interface {
	GetLoggedUser(ctx context.Context) (string, error)
	GetList(ctx context.Context, doctype string, filters []Filter, fields []string) (json.RawMessage, error)
	GetDoc(ctx context.Context, doctype, name string) (json.RawMessage, error)
	CreateDoc(ctx context.Context, doctype string, doc interface{}) (json.RawMessage, error)

	SearchItems(ctx context.Context, name string) ([]Item, error)
	GetBins(ctx context.Context, itemCode string) ([]Bin, error)
	GetOpenOrders(ctx context.Context) ([]SalesOrder, error)
	FindCustomers(ctx context.Context, name string) ([]Customer, error)
	GetContacts(ctx context.Context) ([]Contact, error)
	GetSuppliers(ctx context.Context) ([]Supplier, error)
	FirstAvailableItem(ctx context.Context) (*Item, error)
	CreateSalesInvoice(ctx context.Context, customer, itemCode string) (*InvoiceDoc, error)
}

type client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	log        *logrus.Logger
}

func New(baseURL, apiKey, apiSecret string, log *logrus.Logger) IClient {
	return &client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		apiSecret: apiSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

func (c *client) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", fmt.Sprintf("token %s:%s", c.apiKey, c.apiSecret))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"path":   path,
		}).Warn("ERPNext API returned non-success status")
		return nil, fmt.Errorf("%w: status %d", ErrBackend, resp.StatusCode)
	}

	return raw, nil
}

func (c *client) GetLoggedUser(ctx context.Context) (string, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/method/frappe.auth.get_logged_user", nil, nil)
	if err != nil {
		return "", err
	}

	var envelope methodEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	var user string
	if err := json.Unmarshal(envelope.Message, &user); err != nil || user == "" {
		return "", ErrBadResponse
	}

	return user, nil
}

func (c *client) GetList(ctx context.Context, doctype string, filters []Filter, fields []string) (json.RawMessage, error) {
	query := url.Values{}
	if len(filters) > 0 {
		encoded, err := json.Marshal(filters)
		if err != nil {
			return nil, err
		}
		query.Set("filters", string(encoded))
	}
	if len(fields) > 0 {
		encoded, err := json.Marshal(fields)
		if err != nil {
			return nil, err
		}
		query.Set("fields", string(encoded))
	}

	raw, err := c.do(ctx, http.MethodGet, "/api/resource/"+url.PathEscape(doctype), query, nil)
	if err != nil {
		return nil, err
	}

	var envelope listEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Data == nil {
		return nil, ErrBadResponse
	}

	return envelope.Data, nil
}

func (c *client) GetDoc(ctx context.Context, doctype, name string) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/resource/"+url.PathEscape(doctype)+"/"+url.PathEscape(name), nil, nil)
	if err != nil {
		return nil, err
	}

	var envelope listEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Data == nil {
		return nil, ErrBadResponse
	}

	return envelope.Data, nil
}

func (c *client) CreateDoc(ctx context.Context, doctype string, doc interface{}) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodPost, "/api/resource/"+url.PathEscape(doctype), nil, doc)
	if err != nil {
		return nil, err
	}

	var envelope listEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Data == nil {
		return nil, ErrBadResponse
	}

	return envelope.Data, nil
}

func decodeList[T any](data json.RawMessage) ([]T, error) {
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return out, nil
}

func (c *client) SearchItems(ctx context.Context, name string) ([]Item, error) {
	data, err := c.GetList(ctx, "Item",
		[]Filter{{Field: "item_name", Operator: "like", Value: "%" + name + "%"}},
		[]string{"name", "item_code", "item_name"})
	if err != nil {
		return nil, err
	}
	return decodeList[Item](data)
}

func (c *client) GetBins(ctx context.Context, itemCode string) ([]Bin, error) {
	data, err := c.GetList(ctx, "Bin",
		[]Filter{{Field: "item_code", Operator: "=", Value: itemCode}},
		[]string{"item_code", "warehouse", "actual_qty"})
	if err != nil {
		return nil, err
	}
	return decodeList[Bin](data)
}

func (c *client) GetOpenOrders(ctx context.Context) ([]SalesOrder, error) {
	data, err := c.GetList(ctx, "Sales Order",
		[]Filter{
			{Field: "status", Operator: "not in", Value: "Completed,Cancelled,Closed"},
			{Field: "docstatus", Operator: "=", Value: 1},
		},
		[]string{"name", "customer", "grand_total", "status", "transaction_date"})
	if err != nil {
		return nil, err
	}
	return decodeList[SalesOrder](data)
}

func (c *client) FindCustomers(ctx context.Context, name string) ([]Customer, error) {
	data, err := c.GetList(ctx, "Customer",
		[]Filter{{Field: "customer_name", Operator: "like", Value: "%" + name + "%"}},
		[]string{"name", "customer_name"})
	if err != nil {
		return nil, err
	}
	return decodeList[Customer](data)
}

func (c *client) GetContacts(ctx context.Context) ([]Contact, error) {
	data, err := c.GetList(ctx, "Contact", nil,
		[]string{"name", "first_name", "last_name", "email_id"})
	if err != nil {
		return nil, err
	}
	return decodeList[Contact](data)
}

func (c *client) GetSuppliers(ctx context.Context) ([]Supplier, error) {
	data, err := c.GetList(ctx, "Supplier", nil,
		[]string{"name", "supplier_name", "supplier_group"})
	if err != nil {
		return nil, err
	}
	return decodeList[Supplier](data)
}

// FirstAvailableItem returns the first sellable item, used as the placeholder
// line when an invoice is created by voice without naming a product.
func (c *client) FirstAvailableItem(ctx context.Context) (*Item, error) {
	data, err := c.GetList(ctx, "Item",
		[]Filter{{Field: "disabled", Operator: "=", Value: 0}},
		[]string{"name", "item_code", "item_name"})
	if err != nil {
		return nil, err
	}

	items, err := decodeList[Item](data)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func (c *client) CreateSalesInvoice(ctx context.Context, customer, itemCode string) (*InvoiceDoc, error) {
	doc := map[string]interface{}{
		"customer": customer,
		"is_pos":   0,
		"items": []map[string]interface{}{
			{"item_code": itemCode, "qty": 1},
		},
	}

	data, err := c.CreateDoc(ctx, "Sales Invoice", doc)
	if err != nil {
		return nil, err
	}

	var invoice InvoiceDoc
	if err := json.Unmarshal(data, &invoice); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	return &invoice, nil
}
