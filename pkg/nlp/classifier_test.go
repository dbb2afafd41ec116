package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPriorityOrder(t *testing.T) {
	// A command containing both "help" and "check inventory" must resolve to
	// the inventory rule, which sits earlier in the fixed order.
	assert.Equal(t, IntentCheckInventory, Classify("help me check inventory for Widget"))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		command string
		want    Intent
	}{
		{"Check inventory for product Plate", IntentCheckInventory},
		{"how many plates do we have in stock", IntentCheckInventory},
		{"what's the stock level of widgets", IntentCheckInventory},
		{"Create invoice for customer ABC", IntentCreateInvoice},
		{"generate invoice for customer Acme", IntentCreateInvoice},
		{"show open orders", IntentShowOpenOrders},
		{"list orders please", IntentShowOpenOrders},
		{"show contacts", IntentShowContacts},
		{"list suppliers", IntentShowSuppliers},
		{"go to dashboard", IntentNavigate},
		{"open settings", IntentNavigate},
		{"navigate to command history", IntentNavigate},
		{"what can you do", IntentHelp},
		{"help", IntentHelp},
		{"order me a pizza", IntentUnknown},
		{"", IntentUnknown},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.want, Classify(tc.command), "command %q", tc.command)
	}
}

func TestClassifyNavigationNeedsDestination(t *testing.T) {
	// A navigation verb with no known destination falls through; "open the
	// door" is not a navigation command.
	assert.Equal(t, IntentUnknown, Classify("open the door"))
}

func TestExtractDestination(t *testing.T) {
	dest, ok := ExtractDestination("go to dashboard")
	assert.True(t, ok)
	assert.Equal(t, "/", dest.Path)

	dest, ok = ExtractDestination("navigate to command history")
	assert.True(t, ok)
	assert.Equal(t, "/history", dest.Path)

	dest, ok = ExtractDestination("open configuration")
	assert.True(t, ok)
	assert.Equal(t, "/settings", dest.Path)

	_, ok = ExtractDestination("go to the moon")
	assert.False(t, ok)
}
