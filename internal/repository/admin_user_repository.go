package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"pholio/internal/models"
)

var (
	ErrAdminNotFound = errors.New("admin user not found")
	ErrUsernameTaken = errors.New("username already exists")
)

const uniqueViolation = "23505"

type AdminUserRepository struct {
	pool *pgxpool.Pool
}

func NewAdminUserRepository(pool *pgxpool.Pool) *AdminUserRepository {
	return &AdminUserRepository{pool: pool}
}

func (r *AdminUserRepository) Create(ctx context.Context, username string, passwordHash string) (models.AdminUser, error) {
	const query = `
		INSERT INTO admin_users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, created_at
	`

	row := r.pool.QueryRow(ctx, query, username, passwordHash)
	var user models.AdminUser
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.AdminUser{}, ErrUsernameTaken
		}
		return models.AdminUser{}, err
	}
	return user, nil
}

func (r *AdminUserRepository) FindByUsername(ctx context.Context, username string) (models.AdminUser, error) {
	const query = `
		SELECT id, username, password_hash, created_at
		FROM admin_users WHERE username = $1
	`

	row := r.pool.QueryRow(ctx, query, username)
	var user models.AdminUser
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.AdminUser{}, ErrAdminNotFound
		}
		return models.AdminUser{}, err
	}
	return user, nil
}

func (r *AdminUserRepository) GetByID(ctx context.Context, id int64) (models.AdminUser, error) {
	const query = `
		SELECT id, username, password_hash, created_at
		FROM admin_users WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	var user models.AdminUser
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.AdminUser{}, ErrAdminNotFound
		}
		return models.AdminUser{}, err
	}
	return user, nil
}

func (r *AdminUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
