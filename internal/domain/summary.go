package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TypeTotal is the folded total and count for one transaction type
type TypeTotal struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// CategoryTotal is the folded total for one category within a window
type CategoryTotal struct {
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Color        string          `json:"color"`
	Type         TransactionType `json:"type"`
	Total        decimal.Decimal `json:"total"`
	Count        int             `json:"count"`
	// Percentage of the type group's total; 0 when the group total is 0
	Percentage float64 `json:"percentage"`
}

// PeriodSummary is the folded view of a user's transactions in a time window
type PeriodSummary struct {
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	Income      TypeTotal       `json:"income"`
	Expense     TypeTotal       `json:"expense"`
	NetIncome   decimal.Decimal `json:"netIncome"`
	SavingsRate int             `json:"savingsRate"`
	Categories  []CategoryTotal `json:"categories"`
	HasData     bool            `json:"hasData"`
}

// GoalSummary aggregates a user's goals
type GoalSummary struct {
	TotalGoals      int             `json:"totalGoals"`
	CountsByStatus  map[string]int  `json:"countsByStatus"`
	TotalTarget     decimal.Decimal `json:"totalTarget"`
	TotalCurrent    decimal.Decimal `json:"totalCurrent"`
	OverallProgress float64         `json:"overallProgress"`
	OverdueCount    int             `json:"overdueCount"`
	Recommendations []string        `json:"recommendations"`
}

// TrendDirection labels the movement of a per-month series
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// MonthlyTotal is one month's folded income and expense
type MonthlyTotal struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}
