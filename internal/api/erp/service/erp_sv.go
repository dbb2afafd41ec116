package erpService

import (
	"VoiceERP/internal/api/connection"
	"VoiceERP/internal/api/erp"
	"VoiceERP/internal/entity"
	contextPkg "VoiceERP/pkg/context"
	"VoiceERP/pkg/erpnext"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *erpService) Query(ctx context.Context, userID string, req erp.QueryRequest) (erp.QueryResponse, error) {
	erpClient, err := s.clientFor(ctx, userID)
	if err != nil {
		return erp.QueryResponse{}, err
	}

	var data json.RawMessage
	switch req.Kind {
	case erp.QueryKindGetList:
		data, err = erpClient.GetList(ctx, req.Doctype, req.Filters, req.Fields)
	case erp.QueryKindGetDoc:
		data, err = erpClient.GetDoc(ctx, req.Doctype, req.Name)
	default:
		return erp.QueryResponse{}, erp.ErrUnknownQueryKind
	}
	if err != nil {
		return erp.QueryResponse{}, err
	}

	return erp.QueryResponse{Success: true, Data: data}, nil
}

func (s *erpService) Create(ctx context.Context, userID string, req erp.CreateRequest) (erp.CreateResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	erpClient, err := s.clientFor(ctx, userID)
	if err != nil {
		return erp.CreateResponse{}, err
	}

	doc, err := erpClient.CreateDoc(ctx, req.Doctype, req.Doc)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"doctype":    req.Doctype,
			"error":      err.Error(),
		}).Warn("ERPNext document creation failed")
		return erp.CreateResponse{}, err
	}

	return erp.CreateResponse{
		Success: true,
		Message: fmt.Sprintf("%s created", req.Doctype),
		Doc:     doc,
	}, nil
}

func (s *erpService) clientFor(ctx context.Context, userID string) (erpnext.IClient, error) {
	conn, err := s.activeConnection(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.erpFactory(conn.URL, conn.APIKey, conn.APISecret), nil
}

func (s *erpService) activeConnection(ctx context.Context, userID string) (entity.ErpConnection, error) {
	repoClient, err := s.connectionRepo.NewClient(false)
	if err != nil {
		return entity.ErpConnection{}, err
	}

	conn, err := repoClient.Connections.GetConnectionByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, connection.ErrConnectionNotFound) {
			return entity.ErpConnection{}, erp.ErrNotConnected
		}
		return entity.ErpConnection{}, err
	}

	if !conn.IsActive {
		return entity.ErpConnection{}, erp.ErrNotConnected
	}

	return conn, nil
}
