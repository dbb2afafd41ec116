package bootstrap

import (
	"VoiceERP/internal/entity"
	"VoiceERP/pkg/bcrypt"
	"VoiceERP/pkg/utils"
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

const (
	queryGetUserByUsername = `
		SELECT id, username, password, display_name, role, created_at, updated_at
		FROM users
		WHERE username = :username
	`

	queryCreateUser = `
		INSERT INTO users (
			id, username, password, display_name, role, created_at, updated_at
		) VALUES (
			:id, :username, :password, :display_name, :role, :created_at, :updated_at
		)
	`
)

// EnsureDefaultUser guarantees the operator account exists so requests
// without a bearer token have an identity to run under. The password is
// bcrypt-hashed before it ever reaches the database.
func EnsureDefaultUser(db *sqlx.DB, log *logrus.Logger, bcryptUtils bcrypt.IBcrypt, utilsPkg utils.IUtils) (entity.UserLoginData, error) {
	username := os.Getenv("DEFAULT_USER_USERNAME")
	if username == "" {
		username = "admin"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var existing entity.User
	query, args, err := sqlx.Named(queryGetUserByUsername, map[string]interface{}{"username": username})
	if err != nil {
		return entity.UserLoginData{}, err
	}
	query = db.Rebind(query)

	err = db.QueryRowxContext(ctx, query, args...).StructScan(&existing)
	if err == nil {
		return entity.UserLoginData{ID: existing.ID, Username: existing.Username}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return entity.UserLoginData{}, err
	}

	password := os.Getenv("DEFAULT_USER_PASSWORD")
	if password == "" {
		password = "admin"
		log.Warn("DEFAULT_USER_PASSWORD not set, using insecure default")
	}

	hashed, err := bcryptUtils.HashPassword(password)
	if err != nil {
		return entity.UserLoginData{}, err
	}

	id, err := utilsPkg.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return entity.UserLoginData{}, err
	}

	now := time.Now()
	argsKV := map[string]interface{}{
		"id":           id,
		"username":     username,
		"password":     hashed,
		"display_name": "Administrator",
		"role":         "admin",
		"created_at":   now,
		"updated_at":   now,
	}

	query, args, err = sqlx.Named(queryCreateUser, argsKV)
	if err != nil {
		return entity.UserLoginData{}, err
	}
	query = db.Rebind(query)

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return entity.UserLoginData{}, err
	}

	log.WithFields(logrus.Fields{
		"username": username,
	}).Info("Seeded default user")

	return entity.UserLoginData{ID: id, Username: username}, nil
}
