package service

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthlog/wealthlog-backend/internal/domain"
	"github.com/wealthlog/wealthlog-backend/internal/util"
)

// SummaryService folds transactions into period aggregates
// Aggregation happens in memory over the raw rows, not in SQL
type SummaryService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository) *SummaryService {
	return &SummaryService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// MonthSummary folds one calendar month of transactions
func (s *SummaryService) MonthSummary(userID uuid.UUID, year, month int) (*domain.PeriodSummary, error) {
	var verrs domain.ValidationErrors
	if month < 1 || month > 12 {
		verrs = verrs.Add("month", domain.ErrInvalidMonth)
	}
	if year < domain.MinAggregationYear || year > domain.MaxAggregationYear {
		verrs = verrs.Add("year", domain.ErrInvalidYear)
	}
	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	start, end := util.MonthWindow(year, month)
	return s.summarize(userID, start, end)
}

// PeriodSummary folds transactions for a named period keyword:
// "week" is the trailing seven days, "month" the current calendar
// month, "year" the current calendar year
func (s *SummaryService) PeriodSummary(userID uuid.UUID, period string) (*domain.PeriodSummary, error) {
	now := time.Now().UTC()

	var start, end time.Time
	switch period {
	case "week":
		start, end = util.WeekWindow(now)
	case "month", "":
		start, end = util.MonthWindow(now.Year(), int(now.Month()))
	case "year":
		start, end = util.YearWindow(now.Year())
	default:
		return nil, domain.ValidationErrors{}.Add("period", domain.ErrInvalidPeriod)
	}

	return s.summarize(userID, start, end)
}

// RangeSummary folds transactions within an arbitrary window
func (s *SummaryService) RangeSummary(userID uuid.UUID, start, end time.Time) (*domain.PeriodSummary, error) {
	if end.Before(start) {
		return nil, domain.ValidationErrors{}.Add("endDate", domain.ErrDateOutOfRange)
	}
	return s.summarize(userID, start, end)
}

func (s *SummaryService) summarize(userID uuid.UUID, start, end time.Time) (*domain.PeriodSummary, error) {
	transactions, err := s.transactionRepo.ListByDateRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	summary := &domain.PeriodSummary{
		StartDate:  start,
		EndDate:    end,
		NetIncome:  decimal.Zero,
		Categories: []domain.CategoryTotal{},
		HasData:    len(transactions) > 0,
	}
	summary.Income.Total = decimal.Zero
	summary.Expense.Total = decimal.Zero

	colors := map[uuid.UUID]string{}
	if len(transactions) > 0 {
		categories, err := s.categoryRepo.GetByUser(userID, &domain.CategoryFilters{})
		if err != nil {
			return nil, err
		}
		for _, c := range categories {
			colors[c.ID] = c.Color
		}
	}

	byCategory := make(map[uuid.UUID]*domain.CategoryTotal)
	for _, t := range transactions {
		switch t.Type {
		case domain.TransactionTypeIncome:
			summary.Income.Total = summary.Income.Total.Add(t.Amount)
			summary.Income.Count++
		case domain.TransactionTypeExpense:
			summary.Expense.Total = summary.Expense.Total.Add(t.Amount)
			summary.Expense.Count++
		}

		ct, ok := byCategory[t.CategoryID]
		if !ok {
			name := "Uncategorized"
			if t.CategoryName != nil {
				name = *t.CategoryName
			}
			ct = &domain.CategoryTotal{
				CategoryID:   t.CategoryID.String(),
				CategoryName: name,
				Color:        colors[t.CategoryID],
				Type:         t.Type,
				Total:        decimal.Zero,
			}
			byCategory[t.CategoryID] = ct
		}
		ct.Total = ct.Total.Add(t.Amount)
		ct.Count++
	}

	summary.NetIncome = summary.Income.Total.Sub(summary.Expense.Total)
	summary.SavingsRate = savingsRate(summary.Income.Total, summary.NetIncome)

	for _, ct := range byCategory {
		groupTotal := summary.Expense.Total
		if ct.Type == domain.TransactionTypeIncome {
			groupTotal = summary.Income.Total
		}
		ct.Percentage = percentOf(ct.Total, groupTotal)
		summary.Categories = append(summary.Categories, *ct)
	}

	// Largest totals first, name as a stable tiebreak
	sort.Slice(summary.Categories, func(i, j int) bool {
		a, b := summary.Categories[i], summary.Categories[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.CategoryName < b.CategoryName
	})

	return summary, nil
}

// savingsRate is net income over income as a whole percentage, 0 when
// there is no income
func savingsRate(income, net decimal.Decimal) int {
	if income.IsZero() {
		return 0
	}
	rate, _ := net.Div(income).Mul(decimal.NewFromInt(100)).Float64()
	return int(math.Round(rate))
}

// percentOf is part over whole as a percentage rounded to two decimals
func percentOf(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	pct, _ := part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return pct
}

// monthlyTotals folds transactions into per-month income and expense
// buckets covering every month of the window, including empty ones
func monthlyTotals(transactions []*domain.Transaction, start, end time.Time) []domain.MonthlyTotal {
	type key struct{ year, month int }
	buckets := make(map[key]*domain.MonthlyTotal)

	var ordered []key
	for cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC); !cursor.After(end); cursor = cursor.AddDate(0, 1, 0) {
		k := key{cursor.Year(), int(cursor.Month())}
		buckets[k] = &domain.MonthlyTotal{
			Year:    k.year,
			Month:   k.month,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
		ordered = append(ordered, k)
	}

	for _, t := range transactions {
		k := key{t.Date.Year(), int(t.Date.Month())}
		bucket, ok := buckets[k]
		if !ok {
			continue
		}
		switch t.Type {
		case domain.TransactionTypeIncome:
			bucket.Income = bucket.Income.Add(t.Amount)
		case domain.TransactionTypeExpense:
			bucket.Expense = bucket.Expense.Add(t.Amount)
		}
	}

	totals := make([]domain.MonthlyTotal, 0, len(ordered))
	for _, k := range ordered {
		totals = append(totals, *buckets[k])
	}
	return totals
}

// ClassifyTrend labels a per-month series by comparing the average of
// its first half against its second half. Movement within five percent
// either way counts as stable.
func ClassifyTrend(values []decimal.Decimal) domain.TrendDirection {
	if len(values) < 2 {
		return domain.TrendStable
	}

	half := len(values) / 2
	firstAvg := average(values[:half])
	secondAvg := average(values[len(values)-half:])

	if firstAvg.IsZero() {
		if secondAvg.IsZero() {
			return domain.TrendStable
		}
		return domain.TrendIncreasing
	}

	change := secondAvg.Sub(firstAvg).Div(firstAvg)
	threshold := decimal.NewFromFloat(0.05)
	switch {
	case change.GreaterThan(threshold):
		return domain.TrendIncreasing
	case change.LessThan(threshold.Neg()):
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}

func average(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}
