package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wealthlog/wealthlog-backend/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `t.id, t.user_id, t.category_id, c.name, t.description, t.amount, t.type,
	t.date, t.currency, t.notes, t.created_at, t.updated_at, t.deleted_at`

// Create creates a new transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		WITH inserted AS (
			INSERT INTO transactions (id, user_id, category_id, description, amount, type, date, currency, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING *
		)
		SELECT `+transactionColumns+`
		FROM inserted t
		JOIN categories c ON c.id = t.category_id`,
		uuidToPg(uuid.New()), uuidToPg(transaction.UserID), uuidToPg(transaction.CategoryID),
		transaction.Description, amount, string(transaction.Type), transaction.Date,
		string(transaction.Currency), stringPtrToPgText(transaction.Notes),
	)
	return scanTransaction(row)
}

// GetByID retrieves a live transaction owned by the user
func (r *TransactionRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.Transaction, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+transactionColumns+`
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1 AND t.user_id = $2 AND t.deleted_at IS NULL`,
		uuidToPg(id), uuidToPg(userID),
	)
	transaction, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// GetByUser retrieves transactions for a user with filters and pagination
func (r *TransactionRepository) GetByUser(userID uuid.UUID, filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	ctx := context.Background()

	page := int32(1)
	pageSize := int32(domain.DefaultPageSize)
	if filters != nil {
		if filters.Page > 0 {
			page = filters.Page
		}
		if filters.PageSize > 0 {
			pageSize = filters.PageSize
			if pageSize > domain.MaxPageSize {
				pageSize = domain.MaxPageSize
			}
		}
	}
	offset := (page - 1) * pageSize

	where := ` WHERE t.user_id = $1 AND t.deleted_at IS NULL`
	args := []interface{}{uuidToPg(userID)}

	if filters != nil {
		if filters.CategoryID != nil {
			args = append(args, uuidToPg(*filters.CategoryID))
			where += fmt.Sprintf(" AND t.category_id = $%d", len(args))
		}
		if filters.Type != nil {
			args = append(args, string(*filters.Type))
			where += fmt.Sprintf(" AND t.type = $%d", len(args))
		}
		if filters.StartDate != nil {
			args = append(args, *filters.StartDate)
			where += fmt.Sprintf(" AND t.date >= $%d", len(args))
		}
		if filters.EndDate != nil {
			args = append(args, *filters.EndDate)
			where += fmt.Sprintf(" AND t.date <= $%d", len(args))
		}
		if filters.Search != "" {
			args = append(args, "%"+filters.Search+"%")
			where += fmt.Sprintf(" AND (t.description ILIKE $%d OR t.notes ILIKE $%d)", len(args), len(args))
		}
	}

	var totalItems int64
	countQuery := `SELECT count(*) FROM transactions t` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalItems); err != nil {
		return nil, err
	}

	args = append(args, pageSize, offset)
	query := `SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id` + where +
		fmt.Sprintf(" ORDER BY t.date DESC, t.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := int32(totalItems / int64(pageSize))
	if totalItems%int64(pageSize) > 0 {
		totalPages++
	}

	return &domain.PaginatedTransactions{
		Data:       result,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

// ListByDateRange returns every live transaction dated within [start, end]
func (r *TransactionRepository) ListByDateRange(userID uuid.UUID, start, end time.Time) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT `+transactionColumns+`
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.deleted_at IS NULL
		  AND t.date >= $2 AND t.date <= $3
		ORDER BY t.date`,
		uuidToPg(userID), start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, transaction)
	}
	return result, rows.Err()
}

// Update applies changes to a transaction owned by the user
func (r *TransactionRepository) Update(userID uuid.UUID, id uuid.UUID, data *domain.UpdateTransactionData) (*domain.Transaction, error) {
	amount, err := decimalToPgNumeric(data.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		WITH updated AS (
			UPDATE transactions
			SET category_id = $3, description = $4, amount = $5, type = $6,
			    date = $7, currency = $8, notes = $9, updated_at = now()
			WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
			RETURNING *
		)
		SELECT `+transactionColumns+`
		FROM updated t
		JOIN categories c ON c.id = t.category_id`,
		uuidToPg(id), uuidToPg(userID), uuidToPg(data.CategoryID), data.Description,
		amount, string(data.Type), data.Date, string(data.Currency), stringPtrToPgText(data.Notes),
	)
	transaction, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// SoftDelete soft deletes a transaction owned by the user
func (r *TransactionRepository) SoftDelete(userID uuid.UUID, id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(), `
		UPDATE transactions SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		uuidToPg(id), uuidToPg(userID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// Stats returns all-time count and the first/last live transaction dates
func (r *TransactionRepository) Stats(userID uuid.UUID) (int64, *time.Time, *time.Time, error) {
	var (
		count int64
		first pgtype.Timestamptz
		last  pgtype.Timestamptz
	)
	err := r.pool.QueryRow(context.Background(), `
		SELECT count(*), min(date), max(date)
		FROM transactions
		WHERE user_id = $1 AND deleted_at IS NULL`,
		uuidToPg(userID),
	).Scan(&count, &first, &last)
	if err != nil {
		return 0, nil, nil, err
	}
	return count, pgToTimePtr(first), pgToTimePtr(last), nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		id           pgtype.UUID
		userID       pgtype.UUID
		categoryID   pgtype.UUID
		categoryName string
		amount       pgtype.Numeric
		txType       string
		currency     string
		notes        pgtype.Text
		deletedAt    pgtype.Timestamptz
		transaction  domain.Transaction
	)
	err := row.Scan(&id, &userID, &categoryID, &categoryName, &transaction.Description,
		&amount, &txType, &transaction.Date, &currency, &notes,
		&transaction.CreatedAt, &transaction.UpdatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}
	transaction.ID = pgToUUID(id)
	transaction.UserID = pgToUUID(userID)
	transaction.CategoryID = pgToUUID(categoryID)
	transaction.CategoryName = &categoryName
	transaction.Amount = pgNumericToDecimal(amount)
	transaction.Type = domain.TransactionType(txType)
	transaction.Currency = domain.Currency(currency)
	transaction.Notes = pgTextToStringPtr(notes)
	transaction.DeletedAt = pgToTimePtr(deletedAt)
	return &transaction, nil
}
