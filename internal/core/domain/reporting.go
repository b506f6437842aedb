package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdminDashboard aggregates loan statistics for administrators.
type AdminDashboard struct {
	TotalLoans   int    `json:"totalLoans"`
	ActiveLoans  int    `json:"activeLoans"`
	OverdueLoans int    `json:"overdueLoans"`
	TopBooks     []Book `json:"topBooks"`
}

// ReminderRunResult summarizes one overdue reminder sweep.
type ReminderRunResult struct {
	Scanned int `json:"scanned"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
}

// OverdueReminder is the content of one overdue notification.
type OverdueReminder struct {
	LoanID    string
	UserID    string
	UserEmail string
	BookTitle string
	DueDate   time.Time
	DaysLate  int64
	Penalty   decimal.Decimal
}
