package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCancelled GoalStatus = "cancelled"
)

// ValidGoalStatus reports whether s is a known goal status
func ValidGoalStatus(s GoalStatus) bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusPaused, GoalStatusCancelled:
		return true
	}
	return false
}

type GoalPriority string

const (
	GoalPriorityLow    GoalPriority = "low"
	GoalPriorityMedium GoalPriority = "medium"
	GoalPriorityHigh   GoalPriority = "high"
)

// ValidGoalPriority reports whether p is a known goal priority
func ValidGoalPriority(p GoalPriority) bool {
	switch p {
	case GoalPriorityLow, GoalPriorityMedium, GoalPriorityHigh:
		return true
	}
	return false
}

// Goal is a savings target with a progress amount and a deadline.
// Progress, remaining amount, overdue flag and days remaining are derived,
// never stored.
type Goal struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"userId"`
	Title         string          `json:"title"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	Status        GoalStatus      `json:"status"`
	Priority      GoalPriority    `json:"priority"`
	Currency      Currency        `json:"currency"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	DeletedAt     *time.Time      `json:"deletedAt,omitempty"`
}

// ProgressPercent returns min(current/target*100, 100), 0 for a zero target
func (g *Goal) ProgressPercent() float64 {
	if g.TargetAmount.IsZero() {
		return 0
	}
	pct, _ := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// RemainingAmount returns max(target - current, 0)
func (g *Goal) RemainingAmount() decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsOverdue reports whether the deadline has passed on a non-completed goal
func (g *Goal) IsOverdue(now time.Time) bool {
	return g.EndDate.Before(now) && g.Status != GoalStatusCompleted
}

// DaysRemaining returns ceil((end - now) / 24h), floored at 0
func (g *Goal) DaysRemaining(now time.Time) int {
	until := g.EndDate.Sub(now)
	if until <= 0 {
		return 0
	}
	return int(math.Ceil(until.Hours() / 24))
}

type GoalRepository interface {
	Create(goal *Goal) (*Goal, error)
	GetByID(userID uuid.UUID, id uuid.UUID) (*Goal, error)
	// GetByUser returns the user's live goals, optionally filtered by status
	GetByUser(userID uuid.UUID, status *GoalStatus) ([]*Goal, error)
	Update(goal *Goal) (*Goal, error)
	SoftDelete(userID uuid.UUID, id uuid.UUID) error
}
