package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"loginapp/internal/adapter/database/sqlite"
	"loginapp/internal/core/domain"
	"loginapp/internal/core/port"
)

type UserRepository struct {
	db      *sqlite.DB
	scanner *sqlite.Scanner
}

func NewUserRepository(db *sqlite.DB) port.UserRepository {
	return &UserRepository{
		db:      db,
		scanner: sqlite.NewScanner(),
	}
}

func (ur *UserRepository) LoadByEmail(ctx context.Context, email string) (domain.UserRecord, bool, error) {
	query := ur.db.QueryBuilder.Select("id", "encrypted_password").
		From("users").
		Where(sq.Eq{"email": email, "deleted_at": nil}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.UserRecord{}, false, err
	}

	var record domain.UserRecord

	err = ur.db.QueryRowContext(ctx, stmt, args...).Scan(&record.ID, &record.EncryptedPassword)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserRecord{}, false, nil
	}

	if err != nil {
		zap.L().Error("Error loading user by email", zap.Error(err))
		return domain.UserRecord{}, false, fmt.Errorf("error loading user by email: %w", err)
	}

	return record, true, nil
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select("*").
		From("users").
		Where(sq.Eq{"email": email}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	rows, err := ur.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return domain.User{}, err
	}

	defer rows.Close()

	var data domain.User

	if err := ur.scanner.ScanRowToStruct(rows, &data); err != nil {
		return domain.User{}, err
	}

	return data, nil
}

func (ur *UserRepository) getByUUIDTx(ctx context.Context, tx *sql.Tx, uid string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select("*").
		From("users").
		Where(sq.Eq{"uuid": uid}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	rows, err := tx.QueryContext(ctx, stmt, args...)

	if err != nil {
		return domain.User{}, err
	}

	defer rows.Close()

	var data domain.User

	if err := ur.scanner.ScanRowToStruct(rows, &data); err != nil {
		zap.L().Error("Error getting user by uuid", zap.Error(err))
		return domain.User{}, err
	}

	return data, nil
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	uuid := user.UUID.String()

	// Use transaction to ensure same connection
	tx, err := ur.db.BeginTx(ctx, nil)

	if err != nil {
		return domain.User{}, err
	}

	defer tx.Rollback()

	query := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "email", "encrypted_password", "created_at", "updated_at").
		Values(uuid, user.Email, user.EncryptedPassword, user.CreatedAt, user.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	if _, err = tx.ExecContext(ctx, stmt, args...); err != nil {
		var sqliteErr sqlite3.Error

		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return domain.User{}, domain.ErrUserAlreadyExists
		}

		zap.L().Error("Error creating user", zap.Error(err))
		return domain.User{}, err
	}

	saved, err := ur.getByUUIDTx(ctx, tx, uuid)

	if err != nil {
		return domain.User{}, err
	}

	return saved, tx.Commit()
}

func (ur *UserRepository) UpdateAccessToken(ctx context.Context, userID domain.UserID, token domain.AccessToken) error {
	query := ur.db.QueryBuilder.Update("users").
		Set("access_token", token.String()).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": int(userID)})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	result, err := ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		zap.L().Error("Error updating access token", zap.Error(err))
		return fmt.Errorf("error updating access token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with id %d not found", userID)
	}

	return nil
}
