package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/wealthlog/wealthlog-backend/internal/domain"
	"github.com/wealthlog/wealthlog-backend/internal/util"
)

const (
	// DefaultTrendMonths is the default window for line charts
	DefaultTrendMonths = 6
	// MaxTrendMonths caps the rolling window
	MaxTrendMonths = 24
	// recentTransactionLimit is how many transactions the overview shows
	recentTransactionLimit = 5
)

// DashboardService builds chart-ready aggregates for the dashboard
type DashboardService struct {
	transactionRepo domain.TransactionRepository
	goalRepo        domain.GoalRepository
	summaryService  *SummaryService
	goalService     *GoalService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(transactionRepo domain.TransactionRepository, goalRepo domain.GoalRepository, summaryService *SummaryService, goalService *GoalService) *DashboardService {
	return &DashboardService{
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
		summaryService:  summaryService,
		goalService:     goalService,
	}
}

// ExpensesPie returns the month's expense breakdown by category
func (s *DashboardService) ExpensesPie(userID uuid.UUID, year, month int) (*domain.PieChart, error) {
	summary, err := s.summaryService.MonthSummary(userID, year, month)
	if err != nil {
		return nil, err
	}

	chart := &domain.PieChart{
		Labels:      []string{},
		Data:        []string{},
		Colors:      []string{},
		Percentages: []float64{},
		Total:       summary.Expense.Total.StringFixed(2),
	}

	for _, ct := range summary.Categories {
		if ct.Type != domain.TransactionTypeExpense {
			continue
		}
		chart.Labels = append(chart.Labels, ct.CategoryName)
		chart.Data = append(chart.Data, ct.Total.StringFixed(2))
		chart.Colors = append(chart.Colors, ct.Color)
		chart.Percentages = append(chart.Percentages, ct.Percentage)
	}
	chart.HasData = len(chart.Labels) > 0

	return chart, nil
}

// IncomeLine returns per-month income and expense series over a rolling
// window, with a trend label for each series
func (s *DashboardService) IncomeLine(userID uuid.UUID, months int) (*domain.LineChart, error) {
	if months < 1 || months > MaxTrendMonths {
		return nil, domain.ValidationErrors{}.Add("months", domain.ErrInvalidMonths)
	}

	now := time.Now().UTC()
	start, end := util.RollingMonthsWindow(now, months)

	transactions, err := s.transactionRepo.ListByDateRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	totals := monthlyTotals(transactions, start, end)

	chart := &domain.LineChart{
		Labels:  make([]string, 0, len(totals)),
		Income:  make([]string, 0, len(totals)),
		Expense: make([]string, 0, len(totals)),
		HasData: len(transactions) > 0,
	}

	incomeSeries := make([]decimal.Decimal, 0, len(totals))
	expenseSeries := make([]decimal.Decimal, 0, len(totals))
	for _, mt := range totals {
		chart.Labels = append(chart.Labels, fmt.Sprintf("%04d-%02d", mt.Year, mt.Month))
		chart.Income = append(chart.Income, mt.Income.StringFixed(2))
		chart.Expense = append(chart.Expense, mt.Expense.StringFixed(2))
		incomeSeries = append(incomeSeries, mt.Income)
		expenseSeries = append(expenseSeries, mt.Expense)
	}

	chart.IncomeTrend = ClassifyTrend(incomeSeries)
	chart.ExpenseTrend = ClassifyTrend(expenseSeries)

	return chart, nil
}

// CategoryBar returns the month's per-category income and expense totals
func (s *DashboardService) CategoryBar(userID uuid.UUID, year, month int) (*domain.BarChart, error) {
	summary, err := s.summaryService.MonthSummary(userID, year, month)
	if err != nil {
		return nil, err
	}

	chart := &domain.BarChart{
		Labels:  []string{},
		Income:  []string{},
		Expense: []string{},
		Colors:  []string{},
		HasData: summary.HasData,
	}

	for _, ct := range summary.Categories {
		chart.Labels = append(chart.Labels, ct.CategoryName)
		chart.Colors = append(chart.Colors, ct.Color)
		if ct.Type == domain.TransactionTypeIncome {
			chart.Income = append(chart.Income, ct.Total.StringFixed(2))
			chart.Expense = append(chart.Expense, "0.00")
		} else {
			chart.Income = append(chart.Income, "0.00")
			chart.Expense = append(chart.Expense, ct.Total.StringFixed(2))
		}
	}

	return chart, nil
}

// GoalsProgress returns a progress entry per non-cancelled goal
func (s *DashboardService) GoalsProgress(userID uuid.UUID) ([]domain.GoalProgressEntry, error) {
	goals, err := s.goalRepo.GetByUser(userID, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entries := make([]domain.GoalProgressEntry, 0, len(goals))
	for _, g := range goals {
		if g.Status == domain.GoalStatusCancelled {
			continue
		}
		entries = append(entries, domain.GoalProgressEntry{
			ID:            g.ID.String(),
			Title:         g.Title,
			TargetAmount:  g.TargetAmount.StringFixed(2),
			CurrentAmount: g.CurrentAmount.StringFixed(2),
			Progress:      g.ProgressPercent(),
			Remaining:     g.RemainingAmount().StringFixed(2),
			DaysRemaining: g.DaysRemaining(now),
			IsOverdue:     g.IsOverdue(now),
			Priority:      string(g.Priority),
		})
	}

	return entries, nil
}

// Overview assembles the dashboard landing view. The panels are
// independent queries, so they run concurrently.
func (s *DashboardService) Overview(userID uuid.UUID) (*domain.DashboardOverview, error) {
	now := time.Now().UTC()
	overview := &domain.DashboardOverview{GeneratedAt: now}

	var g errgroup.Group

	g.Go(func() error {
		month, err := s.summaryService.MonthSummary(userID, now.Year(), int(now.Month()))
		if err != nil {
			return err
		}
		overview.Month = month
		return nil
	})

	g.Go(func() error {
		goals, err := s.goalService.GoalsSummary(userID)
		if err != nil {
			return err
		}
		overview.Goals = goals
		return nil
	})

	g.Go(func() error {
		recent, err := s.transactionRepo.GetByUser(userID, &domain.TransactionFilters{
			Page:     1,
			PageSize: recentTransactionLimit,
		})
		if err != nil {
			return err
		}
		overview.Recent = recent.Data
		overview.RecentCount = len(recent.Data)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview.HasData = overview.Month.HasData || overview.RecentCount > 0
	overview.Insights = buildInsights(overview.Month, overview.Goals)

	return overview, nil
}

// Stats returns all-time counters plus the month-over-month expense change
func (s *DashboardService) Stats(userID uuid.UUID) (*domain.DashboardStats, error) {
	count, first, last, err := s.transactionRepo.Stats(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	curStart, curEnd := util.MonthWindow(now.Year(), int(now.Month()))
	prevYear, prevMonth := util.PreviousMonth(now.Year(), int(now.Month()))
	prevStart, prevEnd := util.MonthWindow(prevYear, prevMonth)

	current, err := sumExpenses(s.transactionRepo, userID, curStart, curEnd)
	if err != nil {
		return nil, err
	}
	previous, err := sumExpenses(s.transactionRepo, userID, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}

	stats := &domain.DashboardStats{
		TransactionCount: count,
		FirstTransaction: first,
		LastTransaction:  last,
		CurrentMonth:     current.StringFixed(2),
		PreviousMonth:    previous.StringFixed(2),
	}

	// Change is undefined without a baseline month
	if !previous.IsZero() {
		change, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		stats.ExpenseChange = change
	}

	return stats, nil
}

func sumExpenses(repo domain.TransactionRepository, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	transactions, err := repo.ListByDateRange(userID, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, t := range transactions {
		if t.Type == domain.TransactionTypeExpense {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func buildInsights(month *domain.PeriodSummary, goals *domain.GoalSummary) []string {
	insights := []string{}
	if month == nil || goals == nil {
		return insights
	}

	if month.HasData {
		if month.NetIncome.IsNegative() {
			insights = append(insights, "Spending exceeded income this month.")
		} else if month.SavingsRate >= 20 {
			insights = append(insights, fmt.Sprintf("You saved %d%% of your income this month.", month.SavingsRate))
		}
		if len(month.Categories) > 0 {
			top := month.Categories[0]
			for _, ct := range month.Categories {
				if ct.Type == domain.TransactionTypeExpense {
					top = ct
					break
				}
			}
			if top.Type == domain.TransactionTypeExpense {
				insights = append(insights, fmt.Sprintf("Largest expense category: %s (%s).", top.CategoryName, top.Total.StringFixed(2)))
			}
		}
	}

	if goals.OverdueCount > 0 {
		insights = append(insights, fmt.Sprintf("%d goal(s) are past their deadline.", goals.OverdueCount))
	}

	return insights
}
