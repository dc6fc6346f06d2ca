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

// GoalRepository implements domain.GoalRepository using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

const goalColumns = `id, user_id, title, target_amount, current_amount, start_date, end_date,
	status, priority, currency, completed_at, created_at, updated_at, deleted_at`

// Create creates a new goal
func (r *GoalRepository) Create(goal *domain.Goal) (*domain.Goal, error) {
	target, err := decimalToPgNumeric(goal.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid target amount: %w", err)
	}
	current, err := decimalToPgNumeric(goal.CurrentAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid current amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO goals (id, user_id, title, target_amount, current_amount, start_date, end_date, status, priority, currency, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+goalColumns,
		uuidToPg(uuid.New()), uuidToPg(goal.UserID), goal.Title, target, current,
		goal.StartDate, goal.EndDate, string(goal.Status), string(goal.Priority), string(goal.Currency),
		timePtrToPg(goal.CompletedAt),
	)
	return scanGoal(row)
}

// GetByID retrieves a live goal owned by the user
func (r *GoalRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.Goal, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+goalColumns+` FROM goals
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		uuidToPg(id), uuidToPg(userID),
	)
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

// GetByUser retrieves the user's live goals, optionally filtered by status
func (r *GoalRepository) GetByUser(userID uuid.UUID, status *domain.GoalStatus) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 AND deleted_at IS NULL`
	args := []interface{}{uuidToPg(userID)}
	if status != nil {
		args = append(args, string(*status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY end_date, created_at"

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// Update persists the goal's current state
func (r *GoalRepository) Update(goal *domain.Goal) (*domain.Goal, error) {
	target, err := decimalToPgNumeric(goal.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid target amount: %w", err)
	}
	current, err := decimalToPgNumeric(goal.CurrentAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid current amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		UPDATE goals
		SET title = $3, target_amount = $4, current_amount = $5, start_date = $6,
		    end_date = $7, status = $8, priority = $9, currency = $10,
		    completed_at = $11, updated_at = now()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		RETURNING `+goalColumns,
		uuidToPg(goal.ID), uuidToPg(goal.UserID), goal.Title, target, current,
		goal.StartDate, goal.EndDate, string(goal.Status), string(goal.Priority),
		string(goal.Currency), timePtrToPg(goal.CompletedAt),
	)
	updated, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return updated, nil
}

// SoftDelete soft deletes a goal owned by the user
func (r *GoalRepository) SoftDelete(userID uuid.UUID, id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(), `
		UPDATE goals SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		uuidToPg(id), uuidToPg(userID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var (
		id          pgtype.UUID
		userID      pgtype.UUID
		target      pgtype.Numeric
		current     pgtype.Numeric
		status      string
		priority    string
		currency    string
		completedAt pgtype.Timestamptz
		deletedAt   pgtype.Timestamptz
		goal        domain.Goal
	)
	err := row.Scan(&id, &userID, &goal.Title, &target, &current, &goal.StartDate,
		&goal.EndDate, &status, &priority, &currency, &completedAt,
		&goal.CreatedAt, &goal.UpdatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}
	goal.ID = pgToUUID(id)
	goal.UserID = pgToUUID(userID)
	goal.TargetAmount = pgNumericToDecimal(target)
	goal.CurrentAmount = pgNumericToDecimal(current)
	goal.Status = domain.GoalStatus(status)
	goal.Priority = domain.GoalPriority(priority)
	goal.Currency = domain.Currency(currency)
	goal.CompletedAt = pgToTimePtr(completedAt)
	goal.DeletedAt = pgToTimePtr(deletedAt)
	return &goal, nil
}
