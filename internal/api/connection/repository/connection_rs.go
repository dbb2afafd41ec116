package connectionRepository

import (
	"VoiceERP/internal/api/connection"
	"VoiceERP/internal/entity"
	contextPkg "VoiceERP/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ErpConnectionDB struct {
	ID            sql.NullString `db:"id"`
	UserID        sql.NullString `db:"user_id"`
	URL           sql.NullString `db:"url"`
	APIKey        sql.NullString `db:"api_key"`
	APISecret     sql.NullString `db:"api_secret"`
	IsActive      sql.NullBool   `db:"is_active"`
	LastConnected sql.NullTime   `db:"last_connected"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r *connectionRepository) CreateConnection(ctx context.Context, conn entity.ErpConnection) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":             conn.ID,
		"user_id":        conn.UserID,
		"url":            conn.URL,
		"api_key":        conn.APIKey,
		"api_secret":     conn.APISecret,
		"is_active":      conn.IsActive,
		"last_connected": conn.LastConnected,
		"created_at":     conn.CreatedAt,
		"updated_at":     conn.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateConnection, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateConnection named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating ERP connection")
		return err
	}

	return nil
}

func (r *connectionRepository) GetConnectionByUserID(ctx context.Context, userID string) (entity.ErpConnection, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var connDB ErpConnectionDB

	argsKV := map[string]interface{}{"user_id": userID}

	query, args, err := sqlx.Named(queryGetConnectionByUserID, argsKV)
	if err != nil {
		return entity.ErpConnection{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&connDB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ErpConnection{}, connection.ErrConnectionNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetConnectionByUserID execution err")
		return entity.ErpConnection{}, err
	}

	return r.makeConnection(connDB), nil
}

func (r *connectionRepository) UpdateConnection(ctx context.Context, conn entity.ErpConnection) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":         conn.ID,
		"url":        conn.URL,
		"api_key":    conn.APIKey,
		"api_secret": conn.APISecret,
		"is_active":  conn.IsActive,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateConnection, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateConnection execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return connection.ErrConnectionNotFound
	}

	return nil
}

func (r *connectionRepository) TouchLastConnected(ctx context.Context, id string) error {
	argsKV := map[string]interface{}{
		"id":             id,
		"last_connected": time.Now(),
	}

	query, args, err := sqlx.Named(queryTouchLastConnected, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	return err
}

func (r *connectionRepository) makeConnection(connDB ErpConnectionDB) entity.ErpConnection {
	return entity.ErpConnection{
		ID:            connDB.ID.String,
		UserID:        connDB.UserID.String,
		URL:           connDB.URL.String,
		APIKey:        connDB.APIKey.String,
		APISecret:     connDB.APISecret.String,
		IsActive:      connDB.IsActive.Bool,
		LastConnected: connDB.LastConnected.Time,
		CreatedAt:     connDB.CreatedAt,
		UpdatedAt:     connDB.UpdatedAt,
	}
}
