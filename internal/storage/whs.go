package storage

import (
	"errors"
	"time"
)

// Error taxonomy. Store-level failures are wrapped as-is; these
// sentinels mark the domain outcomes handlers have to tell apart.
var (
	// ErrValidation: malformed or missing input, rejected before any
	// store call.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound: a referenced employee or row does not exist where
	// existence is required.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists: roster duplicate.
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnknownDay: hours submitted for a date with no seeded day
	// summary. Tips must be entered before hours can be distributed.
	ErrUnknownDay = errors.New("day summary not found")

	// ErrInsufficientData: distribution requested with total hours <= 0.
	ErrInsufficientData = errors.New("no employee hours for date")
)

// WorkEntry is one detail-table row: one employee on one day. Identity
// is (Date, Name), name compared case-insensitively.
type WorkEntry struct {
	Date       time.Time `json:"date"`
	Name       string    `json:"name"`
	Hours      float64   `json:"hours"`
	CashTips   float64   `json:"cash_tips"`
	CreditTips float64   `json:"credit_tips"`
	TotalTips  float64   `json:"total_tips"`
}

// DaySummary is one summary-table row, at most one per date.
// TotalTips = CashTips + CreditTips always; the per-hour columns and
// CompletionTo50 are derived by the distribution engine.
type DaySummary struct {
	Date           time.Time `json:"date"`
	CashTips       float64   `json:"cash_tips"`
	CreditTips     float64   `json:"credit_tips"`
	TotalTips      float64   `json:"total_tips"`
	TotalHours     float64   `json:"total_employee_hours"`
	CashPerHour    float64   `json:"cash_tips_per_hour"`
	CreditPerHour  float64   `json:"credit_tips_per_hour"`
	TotalPerHour   float64   `json:"total_tips_per_hour"`
	CompletionTo50 float64   `json:"completion_to_50"`
}

// TipAllocation is one employee's share of a day's tip pool,
// proportional to hours worked.
type TipAllocation struct {
	Date       time.Time `json:"date"`
	Name       string    `json:"name"`
	Hours      float64   `json:"hours"`
	CashTips   float64   `json:"cash_tips"`
	CreditTips float64   `json:"credit_tips"`
	TotalTips  float64   `json:"total_tips"`
}

// LoginUser is one credential row from the roster sheet.
type LoginUser struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// EmployeeTotals is the per-employee aggregate block on the roster
// sheet, updated by the update-employee operation.
type EmployeeTotals struct {
	Name       string  `json:"name"`
	Hours      float64 `json:"hours"`
	CashTips   float64 `json:"cash_tips"`
	CreditTips float64 `json:"credit_tips"`
}
