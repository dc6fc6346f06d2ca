package domain

import "time"

// PieChart is a chart-ready breakdown: parallel label/value/color slices
type PieChart struct {
	Labels      []string  `json:"labels"`
	Data        []string  `json:"data"`
	Colors      []string  `json:"colors"`
	Percentages []float64 `json:"percentages"`
	Total       string    `json:"total"`
	HasData     bool      `json:"hasData"`
}

// LineChart carries per-month series plus trend labels
type LineChart struct {
	Labels       []string       `json:"labels"`
	Income       []string       `json:"income"`
	Expense      []string       `json:"expense"`
	IncomeTrend  TrendDirection `json:"incomeTrend"`
	ExpenseTrend TrendDirection `json:"expenseTrend"`
	HasData      bool           `json:"hasData"`
}

// BarChart compares per-category totals side by side
type BarChart struct {
	Labels  []string `json:"labels"`
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
	Colors  []string `json:"colors"`
	HasData bool     `json:"hasData"`
}

// GoalProgressEntry is one goal's derived progress for the dashboard
type GoalProgressEntry struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	TargetAmount  string  `json:"targetAmount"`
	CurrentAmount string  `json:"currentAmount"`
	Progress      float64 `json:"progress"`
	Remaining     string  `json:"remaining"`
	DaysRemaining int     `json:"daysRemaining"`
	IsOverdue     bool    `json:"isOverdue"`
	Priority      string  `json:"priority"`
}

// DashboardOverview combines the independent dashboard panels
type DashboardOverview struct {
	Month       *PeriodSummary `json:"month"`
	Goals       *GoalSummary   `json:"goals"`
	RecentCount int            `json:"recentCount"`
	Recent      []*Transaction `json:"recent"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Insights    []string       `json:"insights"`
	HasData     bool           `json:"hasData"`
}

// DashboardStats is the all-time activity snapshot
type DashboardStats struct {
	TransactionCount int64      `json:"transactionCount"`
	FirstTransaction *time.Time `json:"firstTransaction,omitempty"`
	LastTransaction  *time.Time `json:"lastTransaction,omitempty"`
	CurrentMonth     string     `json:"currentMonthExpense"`
	PreviousMonth    string     `json:"previousMonthExpense"`
	// ExpenseChange is the percent change vs the previous month; 0 when the
	// previous month had no expenses
	ExpenseChange float64 `json:"expenseChange"`
}
