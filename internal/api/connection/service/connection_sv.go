package connectionService

import (
	"VoiceERP/internal/api/connection"
	"VoiceERP/internal/entity"
	contextPkg "VoiceERP/pkg/context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *connectionService) GetConnection(ctx context.Context, userID string) (connection.ConnectionResponse, error) {
	repoClient, err := s.connectionRepo.NewClient(false)
	if err != nil {
		return connection.ConnectionResponse{}, err
	}

	conn, err := repoClient.Connections.GetConnectionByUserID(ctx, userID)
	if err != nil {
		return connection.ConnectionResponse{}, err
	}

	return makeConnectionResponse(conn), nil
}

func (s *connectionService) SaveConnection(ctx context.Context, userID string, req connection.SaveConnectionRequest) (connection.ConnectionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repoClient, err := s.connectionRepo.NewClient(false)
	if err != nil {
		return connection.ConnectionResponse{}, err
	}

	existing, err := repoClient.Connections.GetConnectionByUserID(ctx, userID)
	switch {
	case err == nil:
		existing.URL = req.URL
		existing.APIKey = req.APIKey
		existing.APISecret = req.APISecret
		existing.IsActive = req.IsActive
		existing.UpdatedAt = time.Now()

		if err := repoClient.Connections.UpdateConnection(ctx, existing); err != nil {
			return connection.ConnectionResponse{}, err
		}

		return makeConnectionResponse(existing), nil

	case errors.Is(err, connection.ErrConnectionNotFound):
		id, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to generate connection id")
			return connection.ConnectionResponse{}, err
		}

		now := time.Now()
		conn := entity.ErpConnection{
			ID:        id,
			UserID:    userID,
			URL:       req.URL,
			APIKey:    req.APIKey,
			APISecret: req.APISecret,
			IsActive:  req.IsActive,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := repoClient.Connections.CreateConnection(ctx, conn); err != nil {
			return connection.ConnectionResponse{}, err
		}

		return makeConnectionResponse(conn), nil

	default:
		return connection.ConnectionResponse{}, err
	}
}

func (s *connectionService) TestConnection(ctx context.Context, userID string, req connection.TestConnectionRequest) (connection.TestConnectionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	erpClient := s.erpFactory(req.URL, req.APIKey, req.APISecret)

	user, err := erpClient.GetLoggedUser(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("ERPNext connection test failed")

		return connection.TestConnectionResponse{
			Success: false,
			Message: "Could not authenticate against the ERPNext instance",
		}, nil
	}

	repoClient, err := s.connectionRepo.NewClient(false)
	if err != nil {
		return connection.TestConnectionResponse{}, err
	}

	// A successful probe against the saved connection refreshes its
	// last_connected marker; testing unsaved credentials skips it.
	conn, err := repoClient.Connections.GetConnectionByUserID(ctx, userID)
	if err == nil && conn.URL == req.URL && conn.APIKey == req.APIKey {
		if err := repoClient.Connections.TouchLastConnected(ctx, conn.ID); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to update last_connected")
		}
	}

	return connection.TestConnectionResponse{
		Success: true,
		User:    user,
	}, nil
}

func makeConnectionResponse(conn entity.ErpConnection) connection.ConnectionResponse {
	return connection.ConnectionResponse{
		ID:            conn.ID,
		UserID:        conn.UserID,
		URL:           conn.URL,
		APIKey:        conn.APIKey,
		IsActive:      conn.IsActive,
		LastConnected: conn.LastConnected,
	}
}
