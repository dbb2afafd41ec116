package voiceRepository

import (
	"VoiceERP/internal/api/voice"
	"VoiceERP/internal/entity"
	contextPkg "VoiceERP/pkg/context"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type CommandHistoryDB struct {
	ID        sql.NullString `db:"id"`
	UserID    sql.NullString `db:"user_id"`
	Command   sql.NullString `db:"command"`
	Response  sql.NullString `db:"response"`
	Status    sql.NullString `db:"status"`
	Metadata  sql.NullString `db:"metadata"`
	Timestamp time.Time      `db:"timestamp"`
}

func (r *commandRepository) CreateCommand(ctx context.Context, cmd entity.CommandHistory) error {
	requestID := contextPkg.GetRequestID(ctx)

	metadataJSON, err := json.Marshal(cmd.Metadata)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal command metadata")
		return err
	}

	argsKV := map[string]interface{}{
		"id":        cmd.ID,
		"user_id":   cmd.UserID,
		"command":   cmd.Command,
		"response":  cmd.Response,
		"status":    string(cmd.Status),
		"metadata":  string(metadataJSON),
		"timestamp": cmd.Timestamp,
	}

	query, args, err := sqlx.Named(queryCreateCommand, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateCommand named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating command record")
		return err
	}

	return nil
}

// UpdateCommandOutcome performs the single pending-to-terminal transition a
// history record is allowed; a record that already left pending is not
// touched again.
func (r *commandRepository) UpdateCommandOutcome(ctx context.Context, id string, status entity.CommandStatus, response string) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":       id,
		"status":   string(status),
		"response": response,
	}

	query, args, err := sqlx.Named(queryUpdateCommandOutcome, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateCommandOutcome named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateCommandOutcome execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Warn("UpdateCommandOutcome no pending record for id")
		return voice.ErrCommandNotFound
	}

	return nil
}

func (r *commandRepository) GetCommandByID(ctx context.Context, id string) (entity.CommandHistory, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var cmdDB CommandHistoryDB

	argsKV := map[string]interface{}{"id": id}

	query, args, err := sqlx.Named(queryGetCommandByID, argsKV)
	if err != nil {
		return entity.CommandHistory{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&cmdDB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.CommandHistory{}, voice.ErrCommandNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommandByID execution err")
		return entity.CommandHistory{}, err
	}

	return r.makeCommandHistory(cmdDB), nil
}

func (r *commandRepository) GetCommandsByUserID(ctx context.Context, userID string, limit int) ([]entity.CommandHistory, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if limit < 1 || limit > 100 {
		limit = 50
	}

	argsKV := map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
	}

	query, args, err := sqlx.Named(queryGetCommandsByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommandsByUserID named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []CommandHistoryDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommandsByUserID execution err")
		return nil, err
	}

	commands := make([]entity.CommandHistory, 0, len(rows))
	for _, row := range rows {
		commands = append(commands, r.makeCommandHistory(row))
	}

	return commands, nil
}

func (r *commandRepository) makeCommandHistory(cmdDB CommandHistoryDB) entity.CommandHistory {
	var metadata map[string]interface{}
	if cmdDB.Metadata.Valid && cmdDB.Metadata.String != "" {
		json.Unmarshal([]byte(cmdDB.Metadata.String), &metadata)
	}

	return entity.CommandHistory{
		ID:        cmdDB.ID.String,
		UserID:    cmdDB.UserID.String,
		Command:   cmdDB.Command.String,
		Response:  cmdDB.Response.String,
		Status:    entity.CommandStatus(cmdDB.Status.String),
		Metadata:  metadata,
		Timestamp: cmdDB.Timestamp,
	}
}
