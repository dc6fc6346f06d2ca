package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wealthlog/wealthlog-backend/internal/domain"
	"github.com/wealthlog/wealthlog-backend/internal/testutil"
	"github.com/wealthlog/wealthlog-backend/internal/websocket"
)

func newGoalFixture() (*GoalService, *testutil.MockGoalRepository, uuid.UUID) {
	repo := testutil.NewMockGoalRepository()
	return NewGoalService(repo, websocket.NoOpPublisher{}), repo, uuid.New()
}

func validGoalInput() CreateGoalInput {
	return CreateGoalInput{
		Title:        "Emergency fund",
		TargetAmount: testutil.MustDecimal("10000"),
		EndDate:      time.Now().UTC().AddDate(1, 0, 0),
	}
}

func TestCreateGoal(t *testing.T) {
	svc, _, userID := newGoalFixture()

	goal, err := svc.CreateGoal(userID, validGoalInput())
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	if goal.Status != domain.GoalStatusActive {
		t.Errorf("new goals should be active, got %s", goal.Status)
	}
	if goal.Priority != domain.GoalPriorityMedium {
		t.Errorf("expected default priority medium, got %s", goal.Priority)
	}
	if !goal.CurrentAmount.IsZero() {
		t.Errorf("expected zero progress, got %s", goal.CurrentAmount)
	}
}

func TestGoalDerivedValues(t *testing.T) {
	now := time.Now().UTC()
	goal := &domain.Goal{
		TargetAmount:  testutil.MustDecimal("10000"),
		CurrentAmount: testutil.MustDecimal("2500"),
		EndDate:       now.AddDate(0, 0, 10),
		Status:        domain.GoalStatusActive,
	}

	if p := goal.ProgressPercent(); p != 25 {
		t.Errorf("progress: %.2f, want 25", p)
	}
	if r := goal.RemainingAmount(); !r.Equal(testutil.MustDecimal("7500")) {
		t.Errorf("remaining: %s, want 7500", r)
	}
	if goal.IsOverdue(now) {
		t.Error("goal with a future deadline is not overdue")
	}
	if d := goal.DaysRemaining(now); d != 10 {
		t.Errorf("days remaining: %d, want 10", d)
	}
}

func TestGoalDerivedValuesClamped(t *testing.T) {
	now := time.Now().UTC()

	over := &domain.Goal{
		TargetAmount:  testutil.MustDecimal("100"),
		CurrentAmount: testutil.MustDecimal("250"),
		EndDate:       now.AddDate(0, 0, -1),
		Status:        domain.GoalStatusActive,
	}
	if p := over.ProgressPercent(); p != 100 {
		t.Errorf("progress must clamp to 100, got %.2f", p)
	}
	if r := over.RemainingAmount(); !r.IsZero() {
		t.Errorf("remaining must clamp to 0, got %s", r)
	}
	if d := over.DaysRemaining(now); d != 0 {
		t.Errorf("days remaining must floor at 0, got %d", d)
	}
	if !over.IsOverdue(now) {
		t.Error("past deadline on an active goal is overdue")
	}

	zeroTarget := &domain.Goal{TargetAmount: testutil.MustDecimal("0")}
	if p := zeroTarget.ProgressPercent(); p != 0 {
		t.Errorf("zero target must give 0 progress, got %.2f", p)
	}
}

func TestCreateGoalValidation(t *testing.T) {
	svc, _, userID := newGoalFixture()

	tests := []struct {
		name   string
		mutate func(*CreateGoalInput)
	}{
		{"empty title", func(in *CreateGoalInput) { in.Title = "" }},
		{"zero target", func(in *CreateGoalInput) { in.TargetAmount = testutil.MustDecimal("0") }},
		{"negative target", func(in *CreateGoalInput) { in.TargetAmount = testutil.MustDecimal("-10") }},
		{"end before start", func(in *CreateGoalInput) { in.EndDate = time.Now().UTC().AddDate(0, 0, -1) }},
		{"current exceeds target", func(in *CreateGoalInput) {
			over := testutil.MustDecimal("20000")
			in.CurrentAmount = &over
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validGoalInput()
			tt.mutate(&input)

			_, err := svc.CreateGoal(userID, input)
			var verrs domain.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Errorf("expected validation errors, got %v", err)
			}
		})
	}
}

func TestGoalAutoCompletion(t *testing.T) {
	svc, _, userID := newGoalFixture()

	goal, err := svc.CreateGoal(userID, validGoalInput())
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	target := testutil.MustDecimal("10000")
	updated, err := svc.UpdateGoal(userID, goal.ID, UpdateGoalInput{CurrentAmount: &target})
	if err != nil {
		t.Fatalf("UpdateGoal failed: %v", err)
	}

	if updated.Status != domain.GoalStatusCompleted {
		t.Fatalf("reaching the target should complete the goal, got %s", updated.Status)
	}
	if updated.CompletedAt == nil {
		t.Fatal("completion must stamp completedAt")
	}
	firstStamp := *updated.CompletedAt

	// Idempotent: completing again leaves the stamp untouched
	again, err := svc.CompleteGoal(userID, goal.ID)
	if err != nil {
		t.Fatalf("CompleteGoal failed: %v", err)
	}
	if !again.CompletedAt.Equal(firstStamp) {
		t.Error("repeat completion must not move completedAt")
	}
}

func TestAddProgress(t *testing.T) {
	svc, _, userID := newGoalFixture()

	goal, err := svc.CreateGoal(userID, validGoalInput())
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	updated, err := svc.AddProgress(userID, goal.ID, testutil.MustDecimal("2500"))
	if err != nil {
		t.Fatalf("AddProgress failed: %v", err)
	}
	if !updated.CurrentAmount.Equal(testutil.MustDecimal("2500")) {
		t.Errorf("current amount: %s", updated.CurrentAmount)
	}

	// Overshooting the target is rejected
	if _, err := svc.AddProgress(userID, goal.ID, testutil.MustDecimal("9999")); err == nil {
		t.Error("expected error when progress would exceed the target")
	}

	// Reaching the target exactly completes the goal
	final, err := svc.AddProgress(userID, goal.ID, testutil.MustDecimal("7500"))
	if err != nil {
		t.Fatalf("AddProgress to target failed: %v", err)
	}
	if final.Status != domain.GoalStatusCompleted {
		t.Errorf("expected auto-completion, got %s", final.Status)
	}
}

func TestGoalTransitions(t *testing.T) {
	svc, _, userID := newGoalFixture()

	goal, err := svc.CreateGoal(userID, validGoalInput())
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	// Resume on an active goal is invalid
	if _, err := svc.ResumeGoal(userID, goal.ID); !errors.Is(err, domain.ErrGoalNotPaused) {
		t.Errorf("expected ErrGoalNotPaused, got %v", err)
	}

	paused, err := svc.PauseGoal(userID, goal.ID)
	if err != nil {
		t.Fatalf("PauseGoal failed: %v", err)
	}
	if paused.Status != domain.GoalStatusPaused {
		t.Errorf("status: %s", paused.Status)
	}

	// Pause twice is invalid
	if _, err := svc.PauseGoal(userID, goal.ID); !errors.Is(err, domain.ErrGoalNotActive) {
		t.Errorf("expected ErrGoalNotActive, got %v", err)
	}

	resumed, err := svc.ResumeGoal(userID, goal.ID)
	if err != nil {
		t.Fatalf("ResumeGoal failed: %v", err)
	}
	if resumed.Status != domain.GoalStatusActive {
		t.Errorf("status: %s", resumed.Status)
	}

	cancelled, err := svc.CancelGoal(userID, goal.ID)
	if err != nil {
		t.Fatalf("CancelGoal failed: %v", err)
	}
	if cancelled.Status != domain.GoalStatusCancelled {
		t.Errorf("status: %s", cancelled.Status)
	}

	// Cancelled goals cannot be completed
	if _, err := svc.CompleteGoal(userID, goal.ID); !errors.Is(err, domain.ErrGoalNotActive) {
		t.Errorf("expected ErrGoalNotActive, got %v", err)
	}
}

func TestGoalsSummary(t *testing.T) {
	svc, repo, userID := newGoalFixture()
	now := time.Now().UTC()

	repo.AddGoal(&domain.Goal{
		UserID:        userID,
		Title:         "Slow goal",
		TargetAmount:  testutil.MustDecimal("1000"),
		CurrentAmount: testutil.MustDecimal("100"),
		StartDate:     now.AddDate(0, -1, 0),
		EndDate:       now.AddDate(0, 6, 0),
		Status:        domain.GoalStatusActive,
		Priority:      domain.GoalPriorityHigh,
	})
	repo.AddGoal(&domain.Goal{
		UserID:        userID,
		Title:         "Overdue goal",
		TargetAmount:  testutil.MustDecimal("1000"),
		CurrentAmount: testutil.MustDecimal("500"),
		StartDate:     now.AddDate(-1, 0, 0),
		EndDate:       now.AddDate(0, 0, -3),
		Status:        domain.GoalStatusActive,
		Priority:      domain.GoalPriorityLow,
	})
	repo.AddGoal(&domain.Goal{
		UserID:        userID,
		Title:         "Done goal",
		TargetAmount:  testutil.MustDecimal("500"),
		CurrentAmount: testutil.MustDecimal("500"),
		StartDate:     now.AddDate(-1, 0, 0),
		EndDate:       now.AddDate(0, 1, 0),
		Status:        domain.GoalStatusCompleted,
	})

	summary, err := svc.GoalsSummary(userID)
	if err != nil {
		t.Fatalf("GoalsSummary failed: %v", err)
	}

	if summary.TotalGoals != 3 {
		t.Errorf("total goals: %d", summary.TotalGoals)
	}
	if summary.CountsByStatus["active"] != 2 || summary.CountsByStatus["completed"] != 1 {
		t.Errorf("counts by status: %v", summary.CountsByStatus)
	}
	if summary.OverdueCount != 1 {
		t.Errorf("overdue count: %d", summary.OverdueCount)
	}
	// Active and paused goals only: 600 of 2000, the completed 500 excluded
	if !summary.TotalTarget.Equal(testutil.MustDecimal("2000")) {
		t.Errorf("total target: %s, want 2000", summary.TotalTarget)
	}
	if !summary.TotalCurrent.Equal(testutil.MustDecimal("600")) {
		t.Errorf("total current: %s, want 600", summary.TotalCurrent)
	}
	if summary.OverallProgress != 30 {
		t.Errorf("overall progress: %.2f, want 30", summary.OverallProgress)
	}
	if len(summary.Recommendations) == 0 {
		t.Error("expected recommendations for overdue and slow goals")
	}
}

func TestGoalsSummaryEmpty(t *testing.T) {
	svc, _, userID := newGoalFixture()

	summary, err := svc.GoalsSummary(userID)
	if err != nil {
		t.Fatalf("GoalsSummary failed: %v", err)
	}
	if summary.TotalGoals != 0 || summary.OverallProgress != 0 {
		t.Errorf("empty summary should be zeroed: %+v", summary)
	}
}

func TestDeleteGoal(t *testing.T) {
	svc, _, userID := newGoalFixture()

	goal, err := svc.CreateGoal(userID, validGoalInput())
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	if err := svc.DeleteGoal(userID, goal.ID); err != nil {
		t.Fatalf("DeleteGoal failed: %v", err)
	}
	if _, err := svc.GetGoal(userID, goal.ID); !errors.Is(err, domain.ErrGoalNotFound) {
		t.Errorf("deleted goal should be invisible, got %v", err)
	}
}
