package erpnext

import (
	"encoding/json"
)

// Filter is the 3-tuple filter form the Frappe list API expects:
// [field, operator, value].
type Filter struct {
	Field    string
	Operator string
	Value    interface{}
}

func (f Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]interface{}{f.Field, f.Operator, f.Value})
}

func (f *Filter) UnmarshalJSON(data []byte) error {
	var tuple [3]json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if err := json.Unmarshal(tuple[0], &f.Field); err != nil {
		return err
	}
	if err := json.Unmarshal(tuple[1], &f.Operator); err != nil {
		return err
	}
	return json.Unmarshal(tuple[2], &f.Value)
}

type Item struct {
	Name     string `json:"name"`
	ItemCode string `json:"item_code"`
	ItemName string `json:"item_name"`
}

type Bin struct {
	ItemCode  string  `json:"item_code"`
	Warehouse string  `json:"warehouse"`
	ActualQty float64 `json:"actual_qty"`
}

type SalesOrder struct {
	Name            string  `json:"name"`
	Customer        string  `json:"customer"`
	GrandTotal      float64 `json:"grand_total"`
	Status          string  `json:"status"`
	TransactionDate string  `json:"transaction_date"`
}

type Customer struct {
	Name         string `json:"name"`
	CustomerName string `json:"customer_name"`
}

type Contact struct {
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	EmailID   string `json:"email_id"`
}

type Supplier struct {
	Name          string `json:"name"`
	SupplierName  string `json:"supplier_name"`
	SupplierGroup string `json:"supplier_group"`
}

type InvoiceDoc struct {
	Name     string `json:"name"`
	Customer string `json:"customer"`
	Status   string `json:"status"`
}

type listEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type methodEnvelope struct {
	Message json.RawMessage `json:"message"`
}
