package util

import "time"

// MonthWindow returns the first and last instant of a calendar month
func MonthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// PreviousMonth returns the year and month for the previous month
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// RollingMonthsWindow returns a window covering the last n calendar months
// ending with the month containing now
func RollingMonthsWindow(now time.Time, n int) (time.Time, time.Time) {
	start, end := MonthWindow(now.Year(), int(now.Month()))
	start = start.AddDate(0, -(n - 1), 0)
	return start, end
}

// WeekWindow returns the trailing seven days ending with today
func WeekWindow(now time.Time) (time.Time, time.Time) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	start := end.AddDate(0, 0, -6).Truncate(24 * time.Hour)
	return start, end
}

// YearWindow returns the first and last instant of a calendar year
func YearWindow(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	return start, end
}
