package nlp

import "strings"

// Classification is first-match-wins over a fixed rule order, not a scoring
// pass. Ambiguous inputs ("help me check inventory") resolve to the earliest
// rule, so the order below is part of the contract and must not be reordered.
func Classify(command string) Intent {
	normalized := strings.ToLower(command)

	if containsAny(normalized, "check inventory", "inventory check", "stock level") ||
		(strings.Contains(normalized, "how many") && strings.Contains(normalized, "stock")) {
		return IntentCheckInventory
	}

	if containsAny(normalized, "create invoice", "make invoice", "new invoice", "generate invoice") {
		return IntentCreateInvoice
	}

	if containsAny(normalized, "open orders", "show orders", "pending orders", "list orders") {
		return IntentShowOpenOrders
	}

	if containsAny(normalized, "contacts", "contact list", "show contacts", "list contacts") {
		return IntentShowContacts
	}

	if strings.Contains(normalized, "supplier") {
		return IntentShowSuppliers
	}

	if containsAny(normalized, "go to", "navigate to", "open") {
		if _, ok := ExtractDestination(normalized); ok {
			return IntentNavigate
		}
	}

	if containsAny(normalized, "help", "what can you do", "available commands") {
		return IntentHelp
	}

	return IntentUnknown
}

// ExtractDestination resolves a navigation keyword to its page. Returns false
// when the command names no known destination.
func ExtractDestination(command string) (Destination, bool) {
	normalized := strings.ToLower(command)

	switch {
	case containsAny(normalized, "dashboard", "home"):
		return Destination{Path: "/", Label: "dashboard"}, true
	case containsAny(normalized, "command history", "history"):
		return Destination{Path: "/history", Label: "command history"}, true
	case containsAny(normalized, "settings", "configuration"):
		return Destination{Path: "/settings", Label: "settings"}, true
	}

	return Destination{}, false
}

func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
