package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	database "loginapp/internal/adapter/database/postgres"
	"loginapp/internal/core/domain"
	"loginapp/internal/core/port"
)

var userColumns = []string{"id", "uuid", "email", "encrypted_password", "access_token", "created_at", "updated_at", "deleted_at"}

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) LoadByEmail(ctx context.Context, email string) (domain.UserRecord, bool, error) {
	stmt, args, err := ur.db.QueryBuilder.Select("id", "encrypted_password").
		From("users").
		Where(sq.Eq{"email": email, "deleted_at": nil}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.UserRecord{}, false, err
	}

	var id int
	var encryptedPassword string

	err = ur.db.QueryRow(ctx, stmt, args...).Scan(&id, &encryptedPassword)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.UserRecord{}, false, nil
	}

	if err != nil {
		zap.L().Error("Error loading user by email", zap.Error(err))
		return domain.UserRecord{}, false, fmt.Errorf("error loading user by email: %w", err)
	}

	return domain.UserRecord{ID: domain.UserID(id), EncryptedPassword: encryptedPassword}, true, nil
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	return scanUser(ur.db.QueryRow(ctx, stmt, args...))
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "email", "encrypted_password", "created_at", "updated_at").
		Values(user.UUID, user.Email, user.EncryptedPassword, user.CreatedAt, user.UpdatedAt).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	saved, err := scanUser(ur.db.QueryRow(ctx, stmt, args...))

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return domain.User{}, domain.ErrUserAlreadyExists
	}

	if err != nil {
		zap.L().Error("Error creating user", zap.Error(err))
		return domain.User{}, err
	}

	return saved, nil
}

func (ur *UserRepository) UpdateAccessToken(ctx context.Context, userID domain.UserID, token domain.AccessToken) error {
	stmt, args, err := ur.db.QueryBuilder.Update("users").
		Set("access_token", token.String()).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": int(userID)}).
		ToSql()

	if err != nil {
		return err
	}

	tag, err := ur.db.Exec(ctx, stmt, args...)

	if err != nil {
		zap.L().Error("Error updating access token", zap.Error(err))
		return fmt.Errorf("error updating access token: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user with id %d not found", userID)
	}

	return nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var data domain.User
	var id int
	var accessToken *string

	err := row.Scan(
		&id,
		&data.UUID,
		&data.Email,
		&data.EncryptedPassword,
		&accessToken,
		&data.CreatedAt,
		&data.UpdatedAt,
		&data.DeletedAt,
	)

	if err != nil {
		return domain.User{}, err
	}

	data.ID = domain.UserID(id)

	if accessToken != nil {
		data.AccessToken = *accessToken
	}

	return data, nil
}

