package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/svoikit-backend/internal/apperror"
	"github.com/rocketscienceinc/svoikit-backend/internal/entity"
)

type UserRepository interface {
	Save(ctx context.Context, user *entity.User) error
	GetUser(ctx context.Context, id string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

type userRepository struct {
	conn *sql.DB
}

func NewUserRepository(conn *sql.DB) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

// Save inserts the user or updates the role of an existing one.
func (that *userRepository) Save(ctx context.Context, user *entity.User) error {
	query := `INSERT INTO users (id, username, role) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET username = excluded.username, role = excluded.role`

	_, err := that.conn.ExecContext(ctx, query, user.ID, user.Username, user.Role)
	if err != nil {
		return fmt.Errorf("can't save user: %w", err)
	}

	return nil
}

func (that *userRepository) GetUser(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT id, username, role FROM users WHERE id = ?`

	return that.scanOne(ctx, query, id)
}

func (that *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT id, username, role FROM users WHERE username = ?`

	return that.scanOne(ctx, query, username)
}

func (that *userRepository) scanOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var user entity.User

	err := that.conn.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Username, &user.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find user: %w", err)
	}

	return &user, nil
}
