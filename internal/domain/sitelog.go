package domain

import "time"

// SiteLog is a diary entry recording an on-site observation, issue, or activity.
type SiteLog struct {
	ID             int64
	Caption        string
	Description    string
	Priority       LogPriority
	Status         LogStatus
	Location       string
	Tags           []string
	Notes          string
	Acknowledged   bool
	AcknowledgedAt *time.Time
	Bookmarked     bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// NeedsAttention reports whether the log raises a CRITICAL dashboard alert.
func (l *SiteLog) NeedsAttention() bool {
	return l.Priority == LogPriorityHigh && !l.Acknowledged
}

// SiteLogUpdateParams carries a partial update. Nil fields are left unchanged.
type SiteLogUpdateParams struct {
	Caption        *string
	Description    *string
	Priority       *LogPriority
	Status         *LogStatus
	Location       *string
	Tags           *[]string
	Notes          *string
	Acknowledged   *bool
	AcknowledgedAt *time.Time
	Bookmarked     *bool
	UpdatedAt      *time.Time
}

// Contact is a directory entry grouped by free-text role.
type Contact struct {
	ID        int64
	Name      string
	Role      string
	Email     string
	Phone     string
	CreatedAt time.Time
}
