package voiceService

import (
	"VoiceERP/internal/api/connection"
	connectionRepository "VoiceERP/internal/api/connection/repository"
	"VoiceERP/internal/api/settings"
	"VoiceERP/internal/api/voice"
	voiceRepository "VoiceERP/internal/api/voice/repository"
	"VoiceERP/internal/entity"
	"VoiceERP/pkg/erpnext"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type commandUpdate struct {
	id       string
	status   entity.CommandStatus
	response string
}

type fakeCommandStore struct {
	mu         sync.Mutex
	created    []entity.CommandHistory
	updates    []commandUpdate
	failCreate bool
	failUpdate bool
}

func (f *fakeCommandStore) CreateCommand(_ context.Context, cmd entity.CommandHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errors.New("insert failed")
	}
	f.created = append(f.created, cmd)
	return nil
}

func (f *fakeCommandStore) UpdateCommandOutcome(_ context.Context, id string, status entity.CommandStatus, response string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, commandUpdate{id: id, status: status, response: response})
	if f.failUpdate {
		return errors.New("update failed")
	}
	return nil
}

func (f *fakeCommandStore) GetCommandByID(_ context.Context, id string) (entity.CommandHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, cmd := range f.created {
		if cmd.ID == id {
			return cmd, nil
		}
	}
	return entity.CommandHistory{}, voice.ErrCommandNotFound
}

func (f *fakeCommandStore) GetCommandsByUserID(_ context.Context, userID string, limit int) ([]entity.CommandHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.CommandHistory
	for _, cmd := range f.created {
		if cmd.UserID == userID && len(out) < limit {
			out = append(out, cmd)
		}
	}
	return out, nil
}

func (f *fakeCommandStore) snapshot() ([]entity.CommandHistory, []commandUpdate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.CommandHistory(nil), f.created...), append([]commandUpdate(nil), f.updates...)
}

type fakeQuickStore struct {
	mu       sync.Mutex
	commands []entity.QuickCommand
}

func (f *fakeQuickStore) CreateQuickCommand(_ context.Context, cmd entity.QuickCommand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)
	return nil
}

func (f *fakeQuickStore) GetQuickCommandsByUserID(_ context.Context, userID string) ([]entity.QuickCommand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.QuickCommand
	for _, cmd := range f.commands {
		if cmd.UserID == userID {
			out = append(out, cmd)
		}
	}
	return out, nil
}

func (f *fakeQuickStore) UpdateQuickCommand(_ context.Context, cmd entity.QuickCommand) (entity.QuickCommand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.commands {
		if existing.ID == cmd.ID && existing.UserID == cmd.UserID {
			cmd.CreatedAt = existing.CreatedAt
			f.commands[i] = cmd
			return cmd, nil
		}
	}
	return entity.QuickCommand{}, voice.ErrQuickCommandNotFound
}

func (f *fakeQuickStore) DeleteQuickCommand(_ context.Context, userID string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.commands {
		if existing.ID == id && existing.UserID == userID {
			f.commands = append(f.commands[:i], f.commands[i+1:]...)
			return nil
		}
	}
	return voice.ErrQuickCommandNotFound
}

type fakeVoiceRepo struct {
	commands *fakeCommandStore
	quick    *fakeQuickStore
}

func (f *fakeVoiceRepo) NewClient(tx bool) (voiceRepository.Client, error) {
	return voiceRepository.Client{
		Commands:      f.commands,
		QuickCommands: f.quick,
		Commit:        func() error { return nil },
		Rollback:      func() error { return nil },
	}, nil
}

type fakeConnectionStore struct {
	conn *entity.ErpConnection
}

func (f *fakeConnectionStore) CreateConnection(_ context.Context, conn entity.ErpConnection) error {
	f.conn = &conn
	return nil
}

func (f *fakeConnectionStore) GetConnectionByUserID(_ context.Context, userID string) (entity.ErpConnection, error) {
	if f.conn == nil {
		return entity.ErpConnection{}, connection.ErrConnectionNotFound
	}
	return *f.conn, nil
}

func (f *fakeConnectionStore) UpdateConnection(_ context.Context, conn entity.ErpConnection) error {
	f.conn = &conn
	return nil
}

func (f *fakeConnectionStore) TouchLastConnected(_ context.Context, id string) error {
	return nil
}

type fakeConnectionRepo struct {
	store *fakeConnectionStore
}

func (f *fakeConnectionRepo) NewClient(tx bool) (connectionRepository.Client, error) {
	return connectionRepository.Client{
		Connections: f.store,
		Commit:      func() error { return nil },
		Rollback:    func() error { return nil },
	}, nil
}

type fakeSettingsService struct {
	settings entity.VoiceSettings
}

func (f *fakeSettingsService) ResolveSettings(_ context.Context, userID string) (entity.VoiceSettings, error) {
	return f.settings, nil
}

func (f *fakeSettingsService) GetSettings(_ context.Context, userID string) (settings.SettingsResponse, error) {
	return settings.SettingsResponse{}, nil
}

func (f *fakeSettingsService) UpdateSettings(_ context.Context, userID string, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	return settings.SettingsResponse{}, nil
}

// fakeErpClient counts every backend call so tests can assert that early
// exits never reach ERPNext.
type fakeErpClient struct {
	mu    sync.Mutex
	calls []string

	items     []erpnext.Item
	bins      map[string][]erpnext.Bin
	orders    []erpnext.SalesOrder
	customers []erpnext.Customer
	contacts  []erpnext.Contact
	suppliers []erpnext.Supplier
	firstItem *erpnext.Item
	invoice   *erpnext.InvoiceDoc

	err   error
	delay time.Duration
}

func (f *fakeErpClient) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
}

func (f *fakeErpClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeErpClient) GetLoggedUser(_ context.Context) (string, error) {
	f.record("GetLoggedUser")
	return "admin@example.com", f.err
}

func (f *fakeErpClient) GetList(_ context.Context, doctype string, filters []erpnext.Filter, fields []string) (json.RawMessage, error) {
	f.record("GetList")
	return nil, f.err
}

func (f *fakeErpClient) GetDoc(_ context.Context, doctype, name string) (json.RawMessage, error) {
	f.record("GetDoc")
	return nil, f.err
}

func (f *fakeErpClient) CreateDoc(_ context.Context, doctype string, doc interface{}) (json.RawMessage, error) {
	f.record("CreateDoc")
	return nil, f.err
}

func (f *fakeErpClient) SearchItems(_ context.Context, name string) ([]erpnext.Item, error) {
	f.record("SearchItems")
	return f.items, f.err
}

func (f *fakeErpClient) GetBins(_ context.Context, itemCode string) ([]erpnext.Bin, error) {
	f.record("GetBins")
	return f.bins[itemCode], f.err
}

func (f *fakeErpClient) GetOpenOrders(_ context.Context) ([]erpnext.SalesOrder, error) {
	f.record("GetOpenOrders")
	return f.orders, f.err
}

func (f *fakeErpClient) FindCustomers(_ context.Context, name string) ([]erpnext.Customer, error) {
	f.record("FindCustomers")
	return f.customers, f.err
}

func (f *fakeErpClient) GetContacts(_ context.Context) ([]erpnext.Contact, error) {
	f.record("GetContacts")
	return f.contacts, f.err
}

func (f *fakeErpClient) GetSuppliers(_ context.Context) ([]erpnext.Supplier, error) {
	f.record("GetSuppliers")
	return f.suppliers, f.err
}

func (f *fakeErpClient) FirstAvailableItem(_ context.Context) (*erpnext.Item, error) {
	f.record("FirstAvailableItem")
	return f.firstItem, f.err
}

func (f *fakeErpClient) CreateSalesInvoice(_ context.Context, customer, itemCode string) (*erpnext.InvoiceDoc, error) {
	f.record("CreateSalesInvoice")
	return f.invoice, f.err
}

const testUserID = "01TESTUSER"

func activeTestConnection() *entity.ErpConnection {
	return &entity.ErpConnection{
		ID:        "01CONN",
		UserID:    testUserID,
		URL:       "https://erp.example.com",
		APIKey:    "key",
		APISecret: "secret",
		IsActive:  true,
	}
}

type fixture struct {
	svc      IVoiceService
	commands *fakeCommandStore
	quick    *fakeQuickStore
	erp      *fakeErpClient
	settings *fakeSettingsService
}

func newFixture(conn *entity.ErpConnection, erp *fakeErpClient, opts ...Option) *fixture {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	commands := &fakeCommandStore{}
	quick := &fakeQuickStore{}
	settingsSvc := &fakeSettingsService{settings: entity.DefaultVoiceSettings(testUserID)}

	svc := New(
		logger,
		&fakeVoiceRepo{commands: commands, quick: quick},
		&fakeConnectionRepo{store: &fakeConnectionStore{conn: conn}},
		settingsSvc,
		func(baseURL, apiKey, apiSecret string) erpnext.IClient { return erp },
		&fakeUtils{},
		opts...,
	)

	return &fixture{svc: svc, commands: commands, quick: quick, erp: erp, settings: settingsSvc}
}

type fakeUtils struct {
	mu  sync.Mutex
	seq int
}

func (f *fakeUtils) NewULIDFromTimestamp(t time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return fmt.Sprintf("01FAKEID%03d", f.seq), nil
}
