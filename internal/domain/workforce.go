package domain

import "time"

// Employee is a member of the site roster.
type Employee struct {
	ID           int64
	Name         string
	Role         string
	Skills       []string
	Phone        string
	Email        string
	Availability Availability
	Status       EmployeeStatus
	JoinedDate   time.Time
	Salary       float64
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// EmployeeUpdateParams carries a partial update. Nil fields are left unchanged.
type EmployeeUpdateParams struct {
	Name         *string
	Role         *string
	Skills       *[]string
	Phone        *string
	Email        *string
	Availability *Availability
	Status       *EmployeeStatus
	Salary       *float64
	UpdatedAt    time.Time
}

// Task is a work order on the board.
type Task struct {
	ID          int64
	Title       string
	Description string
	AssignedTo  *int64
	ProjectID   *int64
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	CompletedAt *time.Time

	// Assignee is resolved from AssignedTo on read; never stored.
	Assignee *Employee
}

// IsOverdue reports whether the task has a due date in the past and is not completed.
// Tasks without a due date are never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskStatusCompleted
}

// TaskUpdateParams carries a partial update. Nil fields are left unchanged.
// AssignedTo and ProjectID pointing at 0 clear the reference;
// DueDate pointing at the zero time clears the due date.
type TaskUpdateParams struct {
	Title       *string
	Description *string
	AssignedTo  *int64
	ProjectID   *int64
	Status      *TaskStatus
	Priority    *TaskPriority
	DueDate     *time.Time
	CompletedAt *time.Time
	UpdatedAt   time.Time
}
