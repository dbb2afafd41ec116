package voiceService

import (
	"VoiceERP/internal/api/connection"
	"VoiceERP/internal/api/voice"
	"VoiceERP/internal/entity"
	contextPkg "VoiceERP/pkg/context"
	"VoiceERP/pkg/erpnext"
	"VoiceERP/pkg/nlp"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	msgNotConnected = "You need to connect to ERPNext first. Please go to Settings and set up your connection."

	msgMissingProduct  = "Please specify a product name for inventory check. For example, 'Check inventory for product XYZ'."
	msgMissingCustomer = "Please specify a customer name for the invoice. For example, 'Create invoice for customer ABC'."

	msgNoItemsForInvoice = "No items are available to add to the invoice."
	msgNoOpenOrders      = "No open orders found."
	msgNoContacts        = "No contacts found."
	msgNoSuppliers       = "No suppliers found."

	msgHelp = "You can say things like: 'Check inventory for product XYZ', " +
		"'Create invoice for customer ABC', 'Show open orders', 'Show contacts', " +
		"'Show suppliers', or 'Go to settings'."

	msgUnknown = "I'm sorry, I didn't understand that command. Try saying 'Help' to see available commands."
)

var errNotConnected = errors.New("no active erp connection")

// ProcessCommand runs one spoken or typed command through classification,
// slot extraction and the matching handler. Every accepted command produces
// exactly two history writes: a pending record up front and a single terminal
// update once the outcome is known. History failures are logged and do not
// block the response.
func (s *voiceService) ProcessCommand(ctx context.Context, userID string, command string) (voice.CommandResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	command = strings.TrimSpace(command)
	if command == "" {
		return voice.CommandResult{}, voice.ErrEmptyCommand
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate command id")
		return voice.CommandResult{}, err
	}

	repoClient, err := s.voiceRepo.NewClient(false)
	if err != nil {
		return voice.CommandResult{}, err
	}

	record := entity.CommandHistory{
		ID:        id,
		UserID:    userID,
		Command:   command,
		Status:    entity.CommandStatusPending,
		Timestamp: time.Now(),
	}
	if err := repoClient.Commands.CreateCommand(ctx, record); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"command_id": id,
			"error":      err.Error(),
		}).Warn("Failed to record pending command")
	}

	intent, responseText, navigateTo, status := s.interpret(ctx, userID, command)

	if err := repoClient.Commands.UpdateCommandOutcome(ctx, id, status, responseText); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"command_id": id,
			"error":      err.Error(),
		}).Warn("Failed to record command outcome")
	}

	return voice.CommandResult{
		ID:         id,
		Command:    command,
		Intent:     intent,
		Response:   responseText,
		Status:     status,
		NavigateTo: navigateTo,
	}, nil
}

// interpret resolves a command to its spoken response. Help and settings
// navigation work without a connection; everything else answers with the
// not-connected prompt until credentials are saved and active.
func (s *voiceService) interpret(ctx context.Context, userID string, command string) (nlp.Intent, string, string, entity.CommandStatus) {
	intent := nlp.Classify(command)
	normalized := strings.ToLower(command)

	conn, connErr := s.activeConnection(ctx, userID)
	if connErr != nil &&
		!strings.Contains(normalized, "help") &&
		!strings.Contains(normalized, "settings") {
		return intent, msgNotConnected, "", entity.CommandStatusSuccess
	}
	// The text gate above lets "help"/"settings" phrasings through, but a
	// backend intent still needs a live connection regardless of wording.
	if connErr != nil && requiresBackend(intent) {
		return intent, msgNotConnected, "", entity.CommandStatusSuccess
	}

	switch intent {
	case nlp.IntentCheckInventory:
		product := nlp.ExtractProductName(command)
		if product == "" {
			return intent, msgMissingProduct, "", entity.CommandStatusSuccess
		}
		responseText, status := s.handleCheckInventory(ctx, s.clientFor(conn), product)
		return intent, responseText, "", status

	case nlp.IntentCreateInvoice:
		customer := nlp.ExtractCustomerName(command)
		if customer == "" {
			return intent, msgMissingCustomer, "", entity.CommandStatusSuccess
		}
		responseText, status := s.handleCreateInvoice(ctx, s.clientFor(conn), customer)
		return intent, responseText, "", status

	case nlp.IntentShowOpenOrders:
		responseText, status := s.handleOpenOrders(ctx, s.clientFor(conn))
		return intent, responseText, "", status

	case nlp.IntentShowContacts:
		responseText, status := s.handleContacts(ctx, s.clientFor(conn))
		return intent, responseText, "", status

	case nlp.IntentShowSuppliers:
		responseText, status := s.handleSuppliers(ctx, s.clientFor(conn))
		return intent, responseText, "", status

	case nlp.IntentNavigate:
		dest, ok := nlp.ExtractDestination(command)
		if !ok {
			return intent, msgUnknown, "", entity.CommandStatusSuccess
		}
		return intent, fmt.Sprintf("Navigating to %s.", dest.Label), dest.Path, entity.CommandStatusSuccess

	case nlp.IntentHelp:
		return intent, msgHelp, "", entity.CommandStatusSuccess

	default:
		return intent, msgUnknown, "", entity.CommandStatusSuccess
	}
}

func (s *voiceService) handleCheckInventory(ctx context.Context, erpClient erpnext.IClient, product string) (string, entity.CommandStatus) {
	items, err := erpClient.SearchItems(ctx, product)
	if err != nil {
		return fmt.Sprintf("Error checking inventory: %v", err), entity.CommandStatusError
	}
	if len(items) == 0 {
		return fmt.Sprintf("No inventory found for product %s.", product), entity.CommandStatusSuccess
	}

	var total float64
	for _, item := range items {
		bins, err := erpClient.GetBins(ctx, item.ItemCode)
		if err != nil {
			return fmt.Sprintf("Error checking inventory: %v", err), entity.CommandStatusError
		}
		for _, bin := range bins {
			total += bin.ActualQty
		}
	}

	name := items[0].ItemName
	if name == "" {
		name = product
	}

	return fmt.Sprintf("Product %s has %s units in stock.", name, formatQty(total)), entity.CommandStatusSuccess
}

func (s *voiceService) handleCreateInvoice(ctx context.Context, erpClient erpnext.IClient, customer string) (string, entity.CommandStatus) {
	customers, err := erpClient.FindCustomers(ctx, customer)
	if err != nil {
		return fmt.Sprintf("Error creating invoice: %v", err), entity.CommandStatusError
	}
	if len(customers) == 0 {
		return fmt.Sprintf("Customer %s not found. Please check the customer name.", customer), entity.CommandStatusSuccess
	}

	item, err := erpClient.FirstAvailableItem(ctx)
	if err != nil {
		return fmt.Sprintf("Error creating invoice: %v", err), entity.CommandStatusError
	}
	if item == nil {
		return msgNoItemsForInvoice, entity.CommandStatusSuccess
	}

	doc, err := erpClient.CreateSalesInvoice(ctx, customers[0].Name, item.ItemCode)
	if err != nil {
		return fmt.Sprintf("Error creating invoice: %v", err), entity.CommandStatusError
	}

	displayName := customers[0].CustomerName
	if displayName == "" {
		displayName = customers[0].Name
	}

	return fmt.Sprintf("Sales invoice %s created for customer %s.", doc.Name, displayName), entity.CommandStatusSuccess
}

func (s *voiceService) handleOpenOrders(ctx context.Context, erpClient erpnext.IClient) (string, entity.CommandStatus) {
	orders, err := erpClient.GetOpenOrders(ctx)
	if err != nil {
		return fmt.Sprintf("Error fetching orders: %v", err), entity.CommandStatusError
	}
	if len(orders) == 0 {
		return msgNoOpenOrders, entity.CommandStatusSuccess
	}

	return fmt.Sprintf("Found %d open orders. The most recent is %s for customer %s.",
		len(orders), orders[0].Name, orders[0].Customer), entity.CommandStatusSuccess
}

func (s *voiceService) handleContacts(ctx context.Context, erpClient erpnext.IClient) (string, entity.CommandStatus) {
	contacts, err := erpClient.GetContacts(ctx)
	if err != nil {
		return fmt.Sprintf("Error fetching contacts: %v", err), entity.CommandStatusError
	}
	if len(contacts) == 0 {
		return msgNoContacts, entity.CommandStatusSuccess
	}

	names := make([]string, 0, len(contacts))
	for i, contact := range contacts {
		if i == 5 {
			break
		}
		name := strings.TrimSpace(contact.FirstName + " " + contact.LastName)
		if name == "" {
			name = contact.Name
		}
		names = append(names, name)
	}

	return fmt.Sprintf("Found %d contacts: %s.", len(contacts), strings.Join(names, ", ")), entity.CommandStatusSuccess
}

func (s *voiceService) handleSuppliers(ctx context.Context, erpClient erpnext.IClient) (string, entity.CommandStatus) {
	suppliers, err := erpClient.GetSuppliers(ctx)
	if err != nil {
		return fmt.Sprintf("Error fetching suppliers: %v", err), entity.CommandStatusError
	}
	if len(suppliers) == 0 {
		return msgNoSuppliers, entity.CommandStatusSuccess
	}

	names := make([]string, 0, len(suppliers))
	for i, supplier := range suppliers {
		if i == 5 {
			break
		}
		name := supplier.SupplierName
		if name == "" {
			name = supplier.Name
		}
		names = append(names, name)
	}

	return fmt.Sprintf("Found %d suppliers: %s.", len(suppliers), strings.Join(names, ", ")), entity.CommandStatusSuccess
}

func requiresBackend(intent nlp.Intent) bool {
	switch intent {
	case nlp.IntentCheckInventory, nlp.IntentCreateInvoice, nlp.IntentShowOpenOrders,
		nlp.IntentShowContacts, nlp.IntentShowSuppliers:
		return true
	default:
		return false
	}
}

func (s *voiceService) clientFor(conn entity.ErpConnection) erpnext.IClient {
	return s.erpFactory(conn.URL, conn.APIKey, conn.APISecret)
}

func (s *voiceService) activeConnection(ctx context.Context, userID string) (entity.ErpConnection, error) {
	repoClient, err := s.connectionRepo.NewClient(false)
	if err != nil {
		return entity.ErpConnection{}, err
	}

	conn, err := repoClient.Connections.GetConnectionByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, connection.ErrConnectionNotFound) {
			return entity.ErpConnection{}, errNotConnected
		}
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to load ERP connection")
		return entity.ErpConnection{}, err
	}

	if !conn.IsActive {
		return entity.ErpConnection{}, errNotConnected
	}

	return conn, nil
}

// formatQty renders whole quantities without a decimal tail, so 8.0 reads
// as "8" in spoken responses.
func formatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
