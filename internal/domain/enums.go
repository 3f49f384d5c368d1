package domain

import (
	"fmt"
	"strings"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusActive    TaskStatus = "active"
	TaskStatusScheduled TaskStatus = "scheduled"
	TaskStatusCompleted TaskStatus = "completed"
)

func (s TaskStatus) String() string { return string(s) }

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusActive, TaskStatusScheduled, TaskStatusCompleted:
		return true
	}
	return false
}

// TaskStatuses lists the board columns in display order.
var TaskStatuses = []TaskStatus{
	TaskStatusPending, TaskStatusActive, TaskStatusScheduled, TaskStatusCompleted,
}

// ParseTaskStatus maps a raw status string to its canonical value.
// "in-progress" is accepted for active and "done" for completed.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	switch normalizeEnum(raw) {
	case "pending":
		return TaskStatusPending, nil
	case "active", "in-progress", "in_progress", "inprogress":
		return TaskStatusActive, nil
	case "scheduled":
		return TaskStatusScheduled, nil
	case "completed", "done", "complete":
		return TaskStatusCompleted, nil
	}
	return "", fmt.Errorf("task status %q: %w", raw, ErrValidation)
}

// TaskPriority ranks a task on the board.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) String() string { return string(p) }

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// LogPriority drives site-log sort order and alert weight.
type LogPriority string

const (
	LogPriorityNormal    LogPriority = "Normal"
	LogPriorityImportant LogPriority = "Important"
	LogPriorityHigh      LogPriority = "High"
	LogPriorityUrgent    LogPriority = "Urgent"
)

func (p LogPriority) String() string { return string(p) }

func (p LogPriority) IsValid() bool {
	switch p {
	case LogPriorityNormal, LogPriorityImportant, LogPriorityHigh, LogPriorityUrgent:
		return true
	}
	return false
}

// LogPriorities lists every priority level, lowest first.
var LogPriorities = []LogPriority{
	LogPriorityNormal, LogPriorityImportant, LogPriorityHigh, LogPriorityUrgent,
}

// ParseLogPriority accepts any casing of the four priority names.
func ParseLogPriority(raw string) (LogPriority, error) {
	for _, p := range LogPriorities {
		if strings.EqualFold(strings.TrimSpace(raw), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("log priority %q: %w", raw, ErrValidation)
}

// LogStatus is the lifecycle state of a site log.
type LogStatus string

const (
	LogStatusActive   LogStatus = "active"
	LogStatusResolved LogStatus = "resolved"
	LogStatusArchived LogStatus = "archived"
)

func (s LogStatus) String() string { return string(s) }

func (s LogStatus) IsValid() bool {
	switch s {
	case LogStatusActive, LogStatusResolved, LogStatusArchived:
		return true
	}
	return false
}

// Availability drives the team-load metric.
type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityBusy      Availability = "busy"
	AvailabilityOnLeave   Availability = "on-leave"
)

func (a Availability) String() string { return string(a) }

func (a Availability) IsValid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityOnLeave:
		return true
	}
	return false
}

// ParseAvailability maps a raw availability string to its canonical value.
func ParseAvailability(raw string) (Availability, error) {
	switch normalizeEnum(raw) {
	case "available":
		return AvailabilityAvailable, nil
	case "busy":
		return AvailabilityBusy, nil
	case "on-leave", "on_leave", "onleave", "leave":
		return AvailabilityOnLeave, nil
	}
	return "", fmt.Errorf("availability %q: %w", raw, ErrValidation)
}

// EmployeeStatus is the employment state on the roster.
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

func (s EmployeeStatus) String() string { return string(s) }

func (s EmployeeStatus) IsValid() bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusInactive:
		return true
	}
	return false
}

// TransactionType carries the sign of a ledger entry.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func (t TransactionType) String() string { return string(t) }

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	}
	return false
}

// AllocationStatus is the lifecycle state of an allocation.
type AllocationStatus string

const (
	AllocationStatusPending   AllocationStatus = "pending"
	AllocationStatusUtilized  AllocationStatus = "utilized"
	AllocationStatusCancelled AllocationStatus = "cancelled"
)

func (s AllocationStatus) String() string { return string(s) }

func (s AllocationStatus) IsValid() bool {
	switch s {
	case AllocationStatusPending, AllocationStatusUtilized, AllocationStatusCancelled:
		return true
	}
	return false
}

// ParseAllocationStatus maps a raw allocation status to its canonical value.
func ParseAllocationStatus(raw string) (AllocationStatus, error) {
	switch normalizeEnum(raw) {
	case "pending":
		return AllocationStatusPending, nil
	case "utilized", "utilised", "used":
		return AllocationStatusUtilized, nil
	case "cancelled", "canceled":
		return AllocationStatusCancelled, nil
	}
	return "", fmt.Errorf("allocation status %q: %w", raw, ErrValidation)
}

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusPlanned    ProjectStatus = "planned"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusOnHold     ProjectStatus = "on-hold"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

func (s ProjectStatus) String() string { return string(s) }

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanned, ProjectStatusInProgress, ProjectStatusOnHold, ProjectStatusCompleted:
		return true
	}
	return false
}

// AgentType names the assistant persona used for one request.
type AgentType string

const (
	AgentGeneral   AgentType = "general"
	AgentFinance   AgentType = "finance"
	AgentHR        AgentType = "hr"
	AgentReports   AgentType = "reports"
	AgentMaterials AgentType = "materials"
)

func (a AgentType) String() string { return string(a) }

func (a AgentType) IsValid() bool {
	switch a {
	case AgentGeneral, AgentFinance, AgentHR, AgentReports, AgentMaterials:
		return true
	}
	return false
}

// AlertType is the severity of a dashboard alert.
type AlertType string

const (
	AlertCritical AlertType = "CRITICAL"
	AlertWarning  AlertType = "WARNING"
	AlertInfo     AlertType = "INFO"
)

func (a AlertType) String() string { return string(a) }

func normalizeEnum(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
