package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthlog/wealthlog-backend/internal/domain"
	"github.com/wealthlog/wealthlog-backend/internal/websocket"
)

// GoalService handles savings goal business logic
type GoalService struct {
	goalRepo  domain.GoalRepository
	publisher websocket.EventPublisher
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo domain.GoalRepository, publisher websocket.EventPublisher) *GoalService {
	return &GoalService{
		goalRepo:  goalRepo,
		publisher: publisher,
	}
}

// CreateGoalInput holds the input for creating a goal
type CreateGoalInput struct {
	Title         string
	TargetAmount  decimal.Decimal
	CurrentAmount *decimal.Decimal
	StartDate     *time.Time
	EndDate       time.Time
	Priority      *domain.GoalPriority
	Currency      *domain.Currency
}

// CreateGoal creates a new active goal with validation
func (s *GoalService) CreateGoal(userID uuid.UUID, input CreateGoalInput) (*domain.Goal, error) {
	var verrs domain.ValidationErrors

	title := strings.TrimSpace(input.Title)
	if title == "" {
		verrs = verrs.Add("title", domain.ErrNameRequired)
	} else if len(title) > domain.MaxGoalTitleLength {
		verrs = verrs.Add("title", domain.ErrNameTooLong)
	}

	if input.TargetAmount.LessThanOrEqual(decimal.Zero) {
		verrs = verrs.Add("targetAmount", domain.ErrInvalidGoalAmount)
	}

	current := decimal.Zero
	if input.CurrentAmount != nil {
		if input.CurrentAmount.IsNegative() {
			verrs = verrs.Add("currentAmount", domain.ErrInvalidAmount)
		} else {
			current = *input.CurrentAmount
		}
	}
	if current.GreaterThan(input.TargetAmount) && input.TargetAmount.IsPositive() {
		verrs = verrs.Add("currentAmount", domain.ErrGoalAmountExceedsTarget)
	}

	start := time.Now().UTC()
	if input.StartDate != nil {
		start = input.StartDate.UTC()
	}
	end := input.EndDate.UTC()
	if !end.After(start) {
		verrs = verrs.Add("endDate", domain.ErrInvalidGoalDates)
	}

	priority := domain.GoalPriorityMedium
	if input.Priority != nil {
		if !domain.ValidGoalPriority(*input.Priority) {
			verrs = verrs.Add("priority", domain.ErrInvalidGoalPriority)
		} else {
			priority = *input.Priority
		}
	}

	currency := domain.CurrencyUSD
	if input.Currency != nil {
		if !domain.ValidCurrency(*input.Currency) {
			verrs = verrs.Add("currency", domain.ErrInvalidCurrency)
		} else {
			currency = *input.Currency
		}
	}

	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	goal := &domain.Goal{
		UserID:        userID,
		Title:         title,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: current,
		StartDate:     start,
		EndDate:       end,
		Status:        domain.GoalStatusActive,
		Priority:      priority,
		Currency:      currency,
	}

	// A goal created at its target completes immediately
	completeIfReached(goal, time.Now().UTC())

	created, err := s.goalRepo.Create(goal)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishGoalEvent(userID, websocket.EventTypeCreated, created)
	return created, nil
}

// GetGoal returns a single goal owned by the user
func (s *GoalService) GetGoal(userID uuid.UUID, id uuid.UUID) (*domain.Goal, error) {
	return s.goalRepo.GetByID(userID, id)
}

// ListGoals returns the user's goals, optionally filtered by status
func (s *GoalService) ListGoals(userID uuid.UUID, status *domain.GoalStatus) ([]*domain.Goal, error) {
	if status != nil && !domain.ValidGoalStatus(*status) {
		return nil, domain.ValidationErrors{}.Add("status", domain.ErrInvalidGoalStatus)
	}
	return s.goalRepo.GetByUser(userID, status)
}

// UpdateGoalInput holds the updatable goal fields. Status changes go
// through the transition methods, not here.
type UpdateGoalInput struct {
	Title         *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	StartDate     *time.Time
	EndDate       *time.Time
	Priority      *domain.GoalPriority
	Currency      *domain.Currency
}

// UpdateGoal applies partial updates to a goal and auto-completes it
// when the updated progress reaches the target
func (s *GoalService) UpdateGoal(userID uuid.UUID, id uuid.UUID, input UpdateGoalInput) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	var verrs domain.ValidationErrors

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			verrs = verrs.Add("title", domain.ErrNameRequired)
		} else if len(title) > domain.MaxGoalTitleLength {
			verrs = verrs.Add("title", domain.ErrNameTooLong)
		} else {
			goal.Title = title
		}
	}

	if input.TargetAmount != nil {
		if input.TargetAmount.LessThanOrEqual(decimal.Zero) {
			verrs = verrs.Add("targetAmount", domain.ErrInvalidGoalAmount)
		} else {
			goal.TargetAmount = *input.TargetAmount
		}
	}

	if input.CurrentAmount != nil {
		if input.CurrentAmount.IsNegative() {
			verrs = verrs.Add("currentAmount", domain.ErrInvalidAmount)
		} else {
			goal.CurrentAmount = *input.CurrentAmount
		}
	}

	if input.StartDate != nil {
		goal.StartDate = input.StartDate.UTC()
	}
	if input.EndDate != nil {
		goal.EndDate = input.EndDate.UTC()
	}
	if !goal.EndDate.After(goal.StartDate) {
		verrs = verrs.Add("endDate", domain.ErrInvalidGoalDates)
	}

	if input.Priority != nil {
		if !domain.ValidGoalPriority(*input.Priority) {
			verrs = verrs.Add("priority", domain.ErrInvalidGoalPriority)
		} else {
			goal.Priority = *input.Priority
		}
	}

	if input.Currency != nil {
		if !domain.ValidCurrency(*input.Currency) {
			verrs = verrs.Add("currency", domain.ErrInvalidCurrency)
		} else {
			goal.Currency = *input.Currency
		}
	}

	if goal.CurrentAmount.GreaterThan(goal.TargetAmount) {
		verrs = verrs.Add("currentAmount", domain.ErrGoalAmountExceedsTarget)
	}

	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	completeIfReached(goal, time.Now().UTC())

	updated, err := s.goalRepo.Update(goal)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishGoalEvent(userID, websocket.EventTypeUpdated, updated)
	return updated, nil
}

// AddProgress adds a positive amount to the goal's current progress
func (s *GoalService) AddProgress(userID uuid.UUID, id uuid.UUID, amount decimal.Decimal) (*domain.Goal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ValidationErrors{}.Add("amount", domain.ErrInvalidAmount)
	}

	goal, err := s.goalRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if goal.Status != domain.GoalStatusActive {
		return nil, domain.ErrGoalNotActive
	}

	next := goal.CurrentAmount.Add(amount)
	if next.GreaterThan(goal.TargetAmount) {
		return nil, domain.ValidationErrors{}.Add("amount", domain.ErrGoalAmountExceedsTarget)
	}
	goal.CurrentAmount = next

	completeIfReached(goal, time.Now().UTC())

	updated, err := s.goalRepo.Update(goal)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishGoalEvent(userID, websocket.EventTypeUpdated, updated)
	return updated, nil
}

// CompleteGoal marks an active or paused goal completed
func (s *GoalService) CompleteGoal(userID uuid.UUID, id uuid.UUID) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if goal.Status == domain.GoalStatusCompleted {
		// Completing twice is a no-op
		return goal, nil
	}
	if goal.Status == domain.GoalStatusCancelled {
		return nil, domain.ErrGoalNotActive
	}

	now := time.Now().UTC()
	goal.Status = domain.GoalStatusCompleted
	goal.CompletedAt = &now

	updated, err := s.goalRepo.Update(goal)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishGoalEvent(userID, websocket.EventTypeUpdated, updated)
	return updated, nil
}

// PauseGoal pauses an active goal
func (s *GoalService) PauseGoal(userID uuid.UUID, id uuid.UUID) (*domain.Goal, error) {
	return s.transition(userID, id, domain.GoalStatusActive, domain.GoalStatusPaused, domain.ErrGoalNotActive)
}

// ResumeGoal reactivates a paused goal
func (s *GoalService) ResumeGoal(userID uuid.UUID, id uuid.UUID) (*domain.Goal, error) {
	return s.transition(userID, id, domain.GoalStatusPaused, domain.GoalStatusActive, domain.ErrGoalNotPaused)
}

// CancelGoal cancels an active or paused goal
func (s *GoalService) CancelGoal(userID uuid.UUID, id uuid.UUID) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if goal.Status != domain.GoalStatusActive && goal.Status != domain.GoalStatusPaused {
		return nil, domain.ErrGoalNotActive
	}

	goal.Status = domain.GoalStatusCancelled

	updated, err := s.goalRepo.Update(goal)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishGoalEvent(userID, websocket.EventTypeUpdated, updated)
	return updated, nil
}

func (s *GoalService) transition(userID uuid.UUID, id uuid.UUID, from, to domain.GoalStatus, stateErr error) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if goal.Status != from {
		return nil, stateErr
	}

	goal.Status = to

	updated, err := s.goalRepo.Update(goal)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishGoalEvent(userID, websocket.EventTypeUpdated, updated)
	return updated, nil
}

// DeleteGoal soft deletes a goal
func (s *GoalService) DeleteGoal(userID uuid.UUID, id uuid.UUID) error {
	if _, err := s.goalRepo.GetByID(userID, id); err != nil {
		return err
	}

	if err := s.goalRepo.SoftDelete(userID, id); err != nil {
		return err
	}

	s.publisher.PublishGoalEvent(userID, websocket.EventTypeDeleted, map[string]string{"id": id.String()})
	return nil
}

// GoalsSummary aggregates the user's goals with simple recommendations
func (s *GoalService) GoalsSummary(userID uuid.UUID) (*domain.GoalSummary, error) {
	goals, err := s.goalRepo.GetByUser(userID, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	summary := &domain.GoalSummary{
		TotalGoals:      len(goals),
		CountsByStatus:  map[string]int{},
		TotalTarget:     decimal.Zero,
		TotalCurrent:    decimal.Zero,
		Recommendations: []string{},
	}

	var slowActive, nearTarget int
	for _, g := range goals {
		summary.CountsByStatus[string(g.Status)]++

		// Only in-flight goals count toward the aggregate progress;
		// completed and cancelled goals would skew it.
		if g.Status == domain.GoalStatusActive || g.Status == domain.GoalStatusPaused {
			summary.TotalTarget = summary.TotalTarget.Add(g.TargetAmount)
			summary.TotalCurrent = summary.TotalCurrent.Add(g.CurrentAmount)
		}

		if g.IsOverdue(now) {
			summary.OverdueCount++
		}
		if g.Status == domain.GoalStatusActive {
			switch p := g.ProgressPercent(); {
			case p >= 75:
				nearTarget++
			case p < 25:
				slowActive++
			}
		}
	}

	if !summary.TotalTarget.IsZero() {
		progress, _ := summary.TotalCurrent.Div(summary.TotalTarget).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		if progress > 100 {
			progress = 100
		}
		summary.OverallProgress = progress
	}

	if summary.OverdueCount > 0 {
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("%d goal(s) are past their deadline. Extend the dates or close them out.", summary.OverdueCount))
	}
	if slowActive > 0 {
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("%d active goal(s) are under 25%% progress. Consider scheduling regular contributions.", slowActive))
	}
	if nearTarget > 0 {
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("%d goal(s) are 75%% or more of the way there. A final push will finish them.", nearTarget))
	}

	return summary, nil
}

// completeIfReached performs the one-shot completion when progress
// reaches the target. CompletedAt is only ever set once.
func completeIfReached(goal *domain.Goal, now time.Time) {
	if goal.Status != domain.GoalStatusActive {
		return
	}
	if !goal.CurrentAmount.Equal(goal.TargetAmount) {
		return
	}
	goal.Status = domain.GoalStatusCompleted
	if goal.CompletedAt == nil {
		goal.CompletedAt = &now
	}
}
