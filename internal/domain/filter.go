package domain

import "time"

// TaskFilter narrows task listings. Zero values mean "any".
type TaskFilter struct {
	Status      *TaskStatus
	Priority    *TaskPriority
	AssignedTo  *int64
	ProjectID   *int64
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// EmployeeFilter narrows roster listings.
type EmployeeFilter struct {
	Role         string
	Status       *EmployeeStatus
	Availability *Availability
}

// LogFilter narrows site-log listings. Location is a case-insensitive substring.
type LogFilter struct {
	Priority    *LogPriority
	Status      *LogStatus
	Location    string
	Bookmarked  bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// TransactionFilter narrows ledger listings. From and To bound Date inclusively.
type TransactionFilter struct {
	Type      *TransactionType
	Category  string
	From      *time.Time
	To        *time.Time
	ProjectID *int64
	Limit     int
}

// AllocationFilter narrows allocation listings.
type AllocationFilter struct {
	Status     *AllocationStatus
	AssignedTo *int64
}

// MaterialFilter narrows inventory listings. LowStock is applied by the
// service because the threshold has a configurable default.
type MaterialFilter struct {
	Category  string
	ProjectID *int64
	LowStock  bool
}
