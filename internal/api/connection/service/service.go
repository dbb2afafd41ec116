package connectionService

import (
	"VoiceERP/internal/api/connection"
	connectionRepository "VoiceERP/internal/api/connection/repository"
	"VoiceERP/pkg/erpnext"
	"VoiceERP/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// ErpClientFactory builds an ERPNext client from saved credentials. The
// indirection keeps the service testable against a fake client.
type ErpClientFactory func(baseURL, apiKey, apiSecret string) erpnext.IClient

type IConnectionService interface {
	GetConnection(ctx context.Context, userID string) (connection.ConnectionResponse, error)
	SaveConnection(ctx context.Context, userID string, req connection.SaveConnectionRequest) (connection.ConnectionResponse, error)
	TestConnection(ctx context.Context, userID string, req connection.TestConnectionRequest) (connection.TestConnectionResponse, error)
}

type connectionService struct {
	log            *logrus.Logger
	connectionRepo connectionRepository.Repository
	erpFactory     ErpClientFactory
	utils          utils.IUtils
}

func New(
	log *logrus.Logger,
	connectionRepo connectionRepository.Repository,
	erpFactory ErpClientFactory,
	utils utils.IUtils,
) IConnectionService {
	return &connectionService{
		log:            log,
		connectionRepo: connectionRepo,
		erpFactory:     erpFactory,
		utils:          utils,
	}
}
