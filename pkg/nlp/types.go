package nlp

// Intent is the transient classification of one spoken command. It is never
// persisted; only the resulting response text reaches command history.
type Intent string

const (
	IntentCheckInventory Intent = "check_inventory"
	IntentCreateInvoice  Intent = "create_invoice"
	IntentShowOpenOrders Intent = "show_open_orders"
	IntentShowContacts   Intent = "show_contacts"
	IntentShowSuppliers  Intent = "show_suppliers"
	IntentNavigate       Intent = "navigate"
	IntentHelp           Intent = "help"
	IntentUnknown        Intent = "unknown"
)

// Destination is a resolved navigation target. The interpreter only decides
// the destination; the client performs the actual page change.
type Destination struct {
	Path  string
	Label string
}
