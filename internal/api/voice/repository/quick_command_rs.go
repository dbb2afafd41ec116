package voiceRepository

import (
	"VoiceERP/internal/api/voice"
	"VoiceERP/internal/entity"
	contextPkg "VoiceERP/pkg/context"
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type QuickCommandDB struct {
	ID          sql.NullString `db:"id"`
	UserID      sql.NullString `db:"user_id"`
	CommandText sql.NullString `db:"command_text"`
	Icon        sql.NullString `db:"icon"`
	SortOrder   sql.NullInt64  `db:"sort_order"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r *quickCommandRepository) CreateQuickCommand(ctx context.Context, cmd entity.QuickCommand) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":           cmd.ID,
		"user_id":      cmd.UserID,
		"command_text": cmd.CommandText,
		"icon":         cmd.Icon,
		"sort_order":   cmd.SortOrder,
		"created_at":   cmd.CreatedAt,
		"updated_at":   cmd.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateQuickCommand, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateQuickCommand named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating quick command")
		return err
	}

	return nil
}

func (r *quickCommandRepository) GetQuickCommandsByUserID(ctx context.Context, userID string) ([]entity.QuickCommand, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{"user_id": userID}

	query, args, err := sqlx.Named(queryGetQuickCommandsByUserID, argsKV)
	if err != nil {
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []QuickCommandDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetQuickCommandsByUserID execution err")
		return nil, err
	}

	commands := make([]entity.QuickCommand, 0, len(rows))
	for _, row := range rows {
		commands = append(commands, entity.QuickCommand{
			ID:          row.ID.String,
			UserID:      row.UserID.String,
			CommandText: row.CommandText.String,
			Icon:        row.Icon.String,
			SortOrder:   int(row.SortOrder.Int64),
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		})
	}

	return commands, nil
}

func (r *quickCommandRepository) UpdateQuickCommand(ctx context.Context, cmd entity.QuickCommand) (entity.QuickCommand, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":           cmd.ID,
		"user_id":      cmd.UserID,
		"command_text": cmd.CommandText,
		"icon":         cmd.Icon,
		"sort_order":   cmd.SortOrder,
		"updated_at":   cmd.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryUpdateQuickCommand, argsKV)
	if err != nil {
		return entity.QuickCommand{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&cmd.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return entity.QuickCommand{}, voice.ErrQuickCommandNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateQuickCommand execution err")
		return entity.QuickCommand{}, err
	}

	return cmd, nil
}

func (r *quickCommandRepository) DeleteQuickCommand(ctx context.Context, userID string, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryDeleteQuickCommand, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteQuickCommand execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return voice.ErrQuickCommandNotFound
	}

	return nil
}
