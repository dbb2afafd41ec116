package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractProductName(t *testing.T) {
	assert.Equal(t, "Widget", ExtractProductName("check inventory for product Widget."))
	assert.Equal(t, "Widget", ExtractProductName("check inventory for product Widget"))
	assert.Equal(t, "Blue Widget", ExtractProductName("stock level of product Blue Widget"))
	assert.Equal(t, "XYZ", ExtractProductName("check product XYZ"))
	assert.Equal(t, "", ExtractProductName("check inventory"))
	assert.Equal(t, "", ExtractProductName(""))
}

func TestExtractProductNamePriority(t *testing.T) {
	// "for product" outranks the bare "product" pattern even when both occur.
	assert.Equal(t, "Plate", ExtractProductName("product catalog check for product Plate"))
}

func TestExtractCustomerName(t *testing.T) {
	assert.Equal(t, "ABC", ExtractCustomerName("create invoice for customer ABC"))
	assert.Equal(t, "Acme Corp", ExtractCustomerName("new invoice of customer Acme Corp."))
	assert.Equal(t, "Jane", ExtractCustomerName("invoice customer Jane"))
	assert.Equal(t, "", ExtractCustomerName("create invoice"))
}
