package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wealthlog/wealthlog-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, user_id, name, type, color, icon, is_default, created_at, updated_at, deleted_at`

// Create creates a new category
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO categories (id, user_id, name, type, color, icon, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+categoryColumns,
		uuidToPg(uuid.New()), uuidPtrToPg(category.UserID), category.Name,
		string(category.Type), category.Color, category.Icon, category.IsDefault,
	)
	return scanCategory(row)
}

// GetByID retrieves a live category visible to the user: their own or a default
func (r *CategoryRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.Category, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+categoryColumns+` FROM categories
		WHERE id = $1 AND deleted_at IS NULL
		  AND (user_id = $2 OR user_id IS NULL)`,
		uuidToPg(id), uuidToPg(userID),
	)
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetByUser retrieves the user's live categories plus defaults, filtered
func (r *CategoryRepository) GetByUser(userID uuid.UUID, filters *domain.CategoryFilters) ([]*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + ` FROM categories
		WHERE deleted_at IS NULL AND (user_id = $1 OR user_id IS NULL)`
	args := []interface{}{uuidToPg(userID)}

	if filters != nil {
		if filters.Type != nil {
			args = append(args, string(*filters.Type))
			query += fmt.Sprintf(" AND type = $%d", len(args))
		}
		if filters.Search != "" {
			args = append(args, "%"+filters.Search+"%")
			query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
		}
	}
	query += " ORDER BY is_default, name"

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update applies changes to a category the user owns. Default categories carry
// a NULL user_id and never match.
func (r *CategoryRepository) Update(userID uuid.UUID, id uuid.UUID, data *domain.UpdateCategoryData) (*domain.Category, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE categories
		SET name = COALESCE($3, name),
		    color = COALESCE($4, color),
		    icon = COALESCE($5, icon),
		    updated_at = now()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		RETURNING `+categoryColumns,
		uuidToPg(id), uuidToPg(userID),
		stringPtrToPgText(data.Name), stringPtrToPgText(data.Color), stringPtrToPgText(data.Icon),
	)
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// SoftDelete soft deletes a category the user owns
func (r *CategoryRepository) SoftDelete(userID uuid.UUID, id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(), `
		UPDATE categories SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		uuidToPg(id), uuidToPg(userID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// ExistsByNameType reports a live (name, type) duplicate for the owner
func (r *CategoryRepository) ExistsByNameType(userID *uuid.UUID, name string, categoryType domain.CategoryType) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(context.Background(), `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE lower(name) = lower($1) AND type = $2 AND deleted_at IS NULL
			  AND (user_id = $3 OR ($3::uuid IS NULL AND user_id IS NULL))
		)`,
		name, string(categoryType), uuidPtrToPg(userID),
	).Scan(&exists)
	return exists, err
}

// SeedDefaults inserts missing system default categories, idempotently
func (r *CategoryRepository) SeedDefaults(defaults []*domain.Category) (int, error) {
	ctx := context.Background()
	inserted := 0
	for _, category := range defaults {
		tag, err := r.pool.Exec(ctx, `
			INSERT INTO categories (id, user_id, name, type, color, icon, is_default)
			SELECT $1, NULL, $2, $3, $4, $5, true
			WHERE NOT EXISTS (
				SELECT 1 FROM categories
				WHERE user_id IS NULL AND lower(name) = lower($2) AND type = $3 AND deleted_at IS NULL
			)`,
			uuidToPg(uuid.New()), category.Name, string(category.Type), category.Color, category.Icon,
		)
		if err != nil {
			return inserted, err
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		id        pgtype.UUID
		userID    pgtype.UUID
		catType   string
		deletedAt pgtype.Timestamptz
		category  domain.Category
	)
	err := row.Scan(&id, &userID, &category.Name, &catType, &category.Color,
		&category.Icon, &category.IsDefault, &category.CreatedAt, &category.UpdatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}
	category.ID = pgToUUID(id)
	category.UserID = pgToUUIDPtr(userID)
	category.Type = domain.CategoryType(catType)
	category.DeletedAt = pgToTimePtr(deletedAt)
	return &category, nil
}
