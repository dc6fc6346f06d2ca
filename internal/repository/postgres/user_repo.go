package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wealthlog/wealthlog-backend/internal/domain"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, currency, is_active, last_login_at, created_at, updated_at, deleted_at`

// Create creates a new user
func (r *UserRepository) Create(user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO users (id, name, email, password_hash, currency, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		uuidToPg(uuid.New()), user.Name, user.Email, user.PasswordHash, string(user.Currency), user.IsActive,
	)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a live user by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+userColumns+` FROM users
		WHERE id = $1 AND deleted_at IS NULL`,
		uuidToPg(id),
	)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a live user by email
func (r *UserRepository) GetByEmail(email string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+userColumns+` FROM users
		WHERE email = $1 AND deleted_at IS NULL`,
		email,
	)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update applies profile changes and returns the updated user
func (r *UserRepository) Update(id uuid.UUID, data *domain.UpdateUserData) (*domain.User, error) {
	var currency *string
	if data.Currency != nil {
		s := string(*data.Currency)
		currency = &s
	}
	row := r.pool.QueryRow(context.Background(), `
		UPDATE users
		SET name = COALESCE($2, name),
		    currency = COALESCE($3, currency),
		    updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+userColumns,
		uuidToPg(id), stringPtrToPgText(data.Name), stringPtrToPgText(currency),
	)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateLastLogin records a successful login
func (r *UserRepository) UpdateLastLogin(id uuid.UUID, at time.Time) error {
	tag, err := r.pool.Exec(context.Background(), `
		UPDATE users SET last_login_at = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`,
		uuidToPg(id), at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SoftDelete deactivates the user and records the deletion timestamp
func (r *UserRepository) SoftDelete(id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(), `
		UPDATE users SET is_active = false, deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`,
		uuidToPg(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		id          pgtype.UUID
		currency    string
		lastLoginAt pgtype.Timestamptz
		deletedAt   pgtype.Timestamptz
		user        domain.User
	)
	err := row.Scan(&id, &user.Name, &user.Email, &user.PasswordHash, &currency,
		&user.IsActive, &lastLoginAt, &user.CreatedAt, &user.UpdatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}
	user.ID = pgToUUID(id)
	user.Currency = domain.Currency(currency)
	user.LastLoginAt = pgToTimePtr(lastLoginAt)
	user.DeletedAt = pgToTimePtr(deletedAt)
	return &user, nil
}
