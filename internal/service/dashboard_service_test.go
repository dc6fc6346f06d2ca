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

type dashboardFixture struct {
	svc     *DashboardService
	txRepo  *testutil.MockTransactionRepository
	catRepo *testutil.MockCategoryRepository
	goals   *testutil.MockGoalRepository
	userID  uuid.UUID
}

func newDashboardFixture() *dashboardFixture {
	txRepo := testutil.NewMockTransactionRepository()
	catRepo := testutil.NewMockCategoryRepository()
	goalRepo := testutil.NewMockGoalRepository()

	summarySvc := NewSummaryService(txRepo, catRepo)
	goalSvc := NewGoalService(goalRepo, websocket.NoOpPublisher{})

	return &dashboardFixture{
		svc:     NewDashboardService(txRepo, goalRepo, summarySvc, goalSvc),
		txRepo:  txRepo,
		catRepo: catRepo,
		goals:   goalRepo,
		userID:  uuid.New(),
	}
}

func TestExpensesPie(t *testing.T) {
	f := newDashboardFixture()

	rent := f.catRepo.AddCategory(&domain.Category{UserID: &f.userID, Name: "Rent", Type: domain.CategoryTypeExpense, Color: "#EF4444"})
	food := f.catRepo.AddCategory(&domain.Category{UserID: &f.userID, Name: "Food", Type: domain.CategoryTypeExpense, Color: "#F59E0B"})
	salary := f.catRepo.AddCategory(&domain.Category{UserID: &f.userID, Name: "Salary", Type: domain.CategoryTypeIncome, Color: "#10B981"})

	date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	rentName, foodName, salaryName := "Rent", "Food", "Salary"
	addTx(f.txRepo, f.userID, rent.ID, &rentName, "1500", domain.TransactionTypeExpense, date)
	addTx(f.txRepo, f.userID, food.ID, &foodName, "500", domain.TransactionTypeExpense, date)
	addTx(f.txRepo, f.userID, salary.ID, &salaryName, "4000", domain.TransactionTypeIncome, date)

	chart, err := f.svc.ExpensesPie(f.userID, 2026, 4)
	if err != nil {
		t.Fatalf("ExpensesPie failed: %v", err)
	}

	// Income categories never appear in the expense pie
	if len(chart.Labels) != 2 {
		t.Fatalf("expected 2 slices, got %d: %v", len(chart.Labels), chart.Labels)
	}
	if chart.Labels[0] != "Rent" {
		t.Errorf("largest slice first, got %v", chart.Labels)
	}
	if chart.Total != "2000.00" {
		t.Errorf("total: %s", chart.Total)
	}
	if chart.Percentages[0] != 75 || chart.Percentages[1] != 25 {
		t.Errorf("percentages: %v", chart.Percentages)
	}
	if !chart.HasData {
		t.Error("expected hasData=true")
	}
}

func TestExpensesPieEmpty(t *testing.T) {
	f := newDashboardFixture()

	chart, err := f.svc.ExpensesPie(f.userID, 2026, 4)
	if err != nil {
		t.Fatalf("ExpensesPie failed: %v", err)
	}
	if chart.HasData {
		t.Error("expected hasData=false")
	}
	if chart.Total != "0.00" {
		t.Errorf("total: %s", chart.Total)
	}
}

func TestIncomeLine(t *testing.T) {
	f := newDashboardFixture()

	cat := f.catRepo.AddCategory(&domain.Category{UserID: &f.userID, Name: "Salary", Type: domain.CategoryTypeIncome})
	name := "Salary"

	now := time.Now().UTC()
	for i := 0; i < 4; i++ {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		addTx(f.txRepo, f.userID, cat.ID, &name, "3000", domain.TransactionTypeIncome, monthStart.AddDate(0, 0, 4))
	}

	chart, err := f.svc.IncomeLine(f.userID, 6)
	if err != nil {
		t.Fatalf("IncomeLine failed: %v", err)
	}

	if len(chart.Labels) != 6 {
		t.Fatalf("expected 6 month labels, got %d", len(chart.Labels))
	}
	if len(chart.Income) != 6 || len(chart.Expense) != 6 {
		t.Error("series must match label length")
	}
	if chart.IncomeTrend != domain.TrendIncreasing {
		// First two months have no income, last four do
		t.Errorf("income trend: %s", chart.IncomeTrend)
	}
	if chart.ExpenseTrend != domain.TrendStable {
		t.Errorf("expense trend: %s", chart.ExpenseTrend)
	}
	if !chart.HasData {
		t.Error("expected hasData=true")
	}
}

func TestIncomeLineMonthsBounds(t *testing.T) {
	f := newDashboardFixture()

	for _, months := range []int{0, -1, 25} {
		_, err := f.svc.IncomeLine(f.userID, months)
		var verrs domain.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Errorf("months=%d: expected validation errors, got %v", months, err)
		}
	}
}

func TestCategoryBar(t *testing.T) {
	f := newDashboardFixture()

	rent := f.catRepo.AddCategory(&domain.Category{UserID: &f.userID, Name: "Rent", Type: domain.CategoryTypeExpense, Color: "#EF4444"})
	salary := f.catRepo.AddCategory(&domain.Category{UserID: &f.userID, Name: "Salary", Type: domain.CategoryTypeIncome, Color: "#10B981"})

	date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	rentName, salaryName := "Rent", "Salary"
	addTx(f.txRepo, f.userID, rent.ID, &rentName, "1200", domain.TransactionTypeExpense, date)
	addTx(f.txRepo, f.userID, salary.ID, &salaryName, "4000", domain.TransactionTypeIncome, date)

	chart, err := f.svc.CategoryBar(f.userID, 2026, 4)
	if err != nil {
		t.Fatalf("CategoryBar failed: %v", err)
	}

	if len(chart.Labels) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(chart.Labels))
	}
	// Salary has the larger total so it sorts first
	if chart.Labels[0] != "Salary" || chart.Income[0] != "4000.00" || chart.Expense[0] != "0.00" {
		t.Errorf("salary bar wrong: %v / %v / %v", chart.Labels, chart.Income, chart.Expense)
	}
	if chart.Labels[1] != "Rent" || chart.Income[1] != "0.00" || chart.Expense[1] != "1200.00" {
		t.Errorf("rent bar wrong: %v / %v / %v", chart.Labels, chart.Income, chart.Expense)
	}
}

func TestGoalsProgressExcludesCancelled(t *testing.T) {
	f := newDashboardFixture()
	now := time.Now().UTC()

	f.goals.AddGoal(&domain.Goal{
		UserID:        f.userID,
		Title:         "Car",
		TargetAmount:  testutil.MustDecimal("5000"),
		CurrentAmount: testutil.MustDecimal("1250"),
		StartDate:     now.AddDate(0, -1, 0),
		EndDate:       now.AddDate(0, 6, 0),
		Status:        domain.GoalStatusActive,
		Priority:      domain.GoalPriorityHigh,
	})
	f.goals.AddGoal(&domain.Goal{
		UserID:       f.userID,
		Title:        "Abandoned",
		TargetAmount: testutil.MustDecimal("100"),
		StartDate:    now.AddDate(0, -1, 0),
		EndDate:      now.AddDate(0, 1, 0),
		Status:       domain.GoalStatusCancelled,
	})

	entries, err := f.svc.GoalsProgress(f.userID)
	if err != nil {
		t.Fatalf("GoalsProgress failed: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Title != "Car" || entry.Progress != 25 {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Remaining != "3750.00" {
		t.Errorf("remaining: %s", entry.Remaining)
	}
	if entry.IsOverdue {
		t.Error("future goal must not be overdue")
	}
}

func TestOverview(t *testing.T) {
	f := newDashboardFixture()

	cat := f.catRepo.AddCategory(&domain.Category{UserID: &f.userID, Name: "Salary", Type: domain.CategoryTypeIncome})
	name := "Salary"
	addTx(f.txRepo, f.userID, cat.ID, &name, "3000", domain.TransactionTypeIncome, time.Now().UTC())

	now := time.Now().UTC()
	f.goals.AddGoal(&domain.Goal{
		UserID:       f.userID,
		Title:        "Fund",
		TargetAmount: testutil.MustDecimal("1000"),
		StartDate:    now.AddDate(0, -1, 0),
		EndDate:      now.AddDate(0, 6, 0),
		Status:       domain.GoalStatusActive,
	})

	overview, err := f.svc.Overview(f.userID)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}

	if overview.Month == nil || overview.Goals == nil {
		t.Fatal("overview panels missing")
	}
	if overview.RecentCount != 1 {
		t.Errorf("recent count: %d", overview.RecentCount)
	}
	if !overview.HasData {
		t.Error("expected hasData=true")
	}
	if overview.GeneratedAt.IsZero() {
		t.Error("generatedAt should be set")
	}
}

func TestOverviewEmpty(t *testing.T) {
	f := newDashboardFixture()

	overview, err := f.svc.Overview(f.userID)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if overview.HasData {
		t.Error("expected hasData=false")
	}
	if overview.RecentCount != 0 {
		t.Errorf("recent count: %d", overview.RecentCount)
	}
}

func TestStats(t *testing.T) {
	f := newDashboardFixture()

	cat := f.catRepo.AddCategory(&domain.Category{UserID: &f.userID, Name: "Rent", Type: domain.CategoryTypeExpense})
	name := "Rent"

	now := time.Now().UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 12, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	addTx(f.txRepo, f.userID, cat.ID, &name, "1000", domain.TransactionTypeExpense, lastMonth)
	addTx(f.txRepo, f.userID, cat.ID, &name, "1500", domain.TransactionTypeExpense, thisMonth)

	stats, err := f.svc.Stats(f.userID)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.TransactionCount != 2 {
		t.Errorf("count: %d", stats.TransactionCount)
	}
	if stats.CurrentMonth != "1500.00" || stats.PreviousMonth != "1000.00" {
		t.Errorf("month totals: %s / %s", stats.CurrentMonth, stats.PreviousMonth)
	}
	if stats.ExpenseChange != 50 {
		t.Errorf("expense change: %.2f, want 50", stats.ExpenseChange)
	}
	if stats.FirstTransaction == nil || stats.LastTransaction == nil {
		t.Error("first/last dates missing")
	}
}

func TestStatsNoBaseline(t *testing.T) {
	f := newDashboardFixture()

	stats, err := f.svc.Stats(f.userID)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.ExpenseChange != 0 {
		t.Errorf("change without a baseline must be 0, got %.2f", stats.ExpenseChange)
	}
	if stats.TransactionCount != 0 {
		t.Errorf("count: %d", stats.TransactionCount)
	}
}
