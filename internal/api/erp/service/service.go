package erpService

import (
	connectionRepository "VoiceERP/internal/api/connection/repository"
	"VoiceERP/internal/api/erp"
	"VoiceERP/pkg/erpnext"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// ErpClientFactory builds an ERPNext client from saved credentials.
type ErpClientFactory func(baseURL, apiKey, apiSecret string) erpnext.IClient

type IErpService interface {
	Query(ctx context.Context, userID string, req erp.QueryRequest) (erp.QueryResponse, error)
	Create(ctx context.Context, userID string, req erp.CreateRequest) (erp.CreateResponse, error)
}

type erpService struct {
	log            *logrus.Logger
	connectionRepo connectionRepository.Repository
	erpFactory     ErpClientFactory
}

func New(
	log *logrus.Logger,
	connectionRepo connectionRepository.Repository,
	erpFactory ErpClientFactory,
) IErpService {
	return &erpService{
		log:            log,
		connectionRepo: connectionRepo,
		erpFactory:     erpFactory,
	}
}
