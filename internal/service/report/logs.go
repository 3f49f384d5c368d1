package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ycsite/siteops/internal/domain"
	"github.com/ycsite/siteops/internal/events"
)

// DefaultRecentDays is the window RecentLogs uses when none is given.
const DefaultRecentDays = 7

// Stats summarises the diary.
type Stats struct {
	Total        int                        `json:"total"`
	Active       int                        `json:"active"`
	Acknowledged int                        `json:"acknowledged"`
	Bookmarked   int                        `json:"bookmarked"`
	ByPriority   map[domain.LogPriority]int `json:"byPriority"`
}

// ListLogs returns diary entries newest first.
func (s *Service) ListLogs(ctx context.Context, filter domain.LogFilter) ([]*domain.SiteLog, error) {
	logs, err := s.logs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return logs, nil
}

// GetLog returns one diary entry.
func (s *Service) GetLog(ctx context.Context, id int64) (*domain.SiteLog, error) {
	l, err := s.logs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	return l, nil
}

// CreateLog records a diary entry. Priority defaults to Normal and status
// to active.
func (s *Service) CreateLog(ctx context.Context, input CreateLogInput) (*domain.SiteLog, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.LogPriorityNormal
	}
	status := input.Status
	if status == "" {
		status = domain.LogStatusActive
	}

	l, err := s.logs.Create(ctx, &domain.SiteLog{
		Caption:     strings.TrimSpace(input.Caption),
		Description: strings.TrimSpace(input.Description),
		Priority:    priority,
		Status:      status,
		Location:    strings.TrimSpace(input.Location),
		Tags:        cleanTags(input.Tags),
		Notes:       input.Notes,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create log: %w", err)
	}

	s.log.InfoContext(ctx, "log created",
		slog.Int64("log_id", l.ID),
		slog.String("priority", string(l.Priority)),
	)
	s.events.Publish(ctx, events.TopicLogsRefresh)
	return l, nil
}

// UpdateLog merges the given fields and stamps updatedAt.
func (s *Service) UpdateLog(ctx context.Context, input UpdateLogInput) (*domain.SiteLog, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.SiteLogUpdateParams{
		Description: input.Description,
		Priority:    input.Priority,
		Status:      input.Status,
		Location:    input.Location,
		Notes:       input.Notes,
	}
	if input.Caption != nil {
		caption := strings.TrimSpace(*input.Caption)
		params.Caption = &caption
	}
	if input.Tags != nil {
		tags := cleanTags(*input.Tags)
		params.Tags = &tags
	}
	return s.update(ctx, input.ID, params, "log updated")
}

// ToggleBookmark flips the bookmark flag.
func (s *Service) ToggleBookmark(ctx context.Context, id int64) (*domain.SiteLog, error) {
	l, err := s.logs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	bookmarked := !l.Bookmarked
	return s.update(ctx, id, domain.SiteLogUpdateParams{Bookmarked: &bookmarked}, "log bookmark toggled")
}

// AcknowledgeLog marks the log as seen. Acknowledging twice keeps the
// first acknowledgement time.
func (s *Service) AcknowledgeLog(ctx context.Context, id int64) (*domain.SiteLog, error) {
	l, err := s.logs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	if l.Acknowledged {
		return l, nil
	}
	ack := true
	at := s.now()
	return s.update(ctx, id, domain.SiteLogUpdateParams{Acknowledged: &ack, AcknowledgedAt: &at}, "log acknowledged")
}

func (s *Service) update(ctx context.Context, id int64, params domain.SiteLogUpdateParams, msg string) (*domain.SiteLog, error) {
	now := s.now()
	params.UpdatedAt = &now

	l, err := s.logs.Update(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("update log: %w", err)
	}

	s.log.InfoContext(ctx, msg, slog.Int64("log_id", id))
	s.events.Publish(ctx, events.TopicLogsRefresh)
	return l, nil
}

// DeleteLog removes a diary entry.
func (s *Service) DeleteLog(ctx context.Context, id int64) error {
	if err := s.logs.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete log: %w", err)
	}

	s.log.InfoContext(ctx, "log deleted", slog.Int64("log_id", id))
	s.events.Publish(ctx, events.TopicLogsRefresh)
	return nil
}

// ComputeStats derives diary statistics.
func ComputeStats(logs []*domain.SiteLog) Stats {
	st := Stats{Total: len(logs), ByPriority: make(map[domain.LogPriority]int, len(domain.LogPriorities))}
	for _, p := range domain.LogPriorities {
		st.ByPriority[p] = 0
	}
	for _, l := range logs {
		if l.Status == domain.LogStatusActive {
			st.Active++
		}
		if l.Acknowledged {
			st.Acknowledged++
		}
		if l.Bookmarked {
			st.Bookmarked++
		}
		st.ByPriority[l.Priority]++
	}
	return st
}

// Stats returns diary counts.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	logs, err := s.logs.List(ctx, domain.LogFilter{})
	if err != nil {
		return Stats{}, fmt.Errorf("list logs: %w", err)
	}
	return ComputeStats(logs), nil
}

// SearchLogs matches term case-insensitively against caption, description,
// location and tags.
func (s *Service) SearchLogs(ctx context.Context, term string) ([]*domain.SiteLog, error) {
	logs, err := s.logs.List(ctx, domain.LogFilter{})
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	out := make([]*domain.SiteLog, 0, len(logs))
	for _, l := range logs {
		if domain.MatchesAny(term, l.Caption, l.Description, l.Location, strings.Join(l.Tags, " ")) {
			out = append(out, l)
		}
	}
	return out, nil
}

// RecentLogs returns entries created within the last days days.
// Non-positive days means DefaultRecentDays.
func (s *Service) RecentLogs(ctx context.Context, days int) ([]*domain.SiteLog, error) {
	if days <= 0 {
		days = DefaultRecentDays
	}
	from := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	return s.ListLogs(ctx, domain.LogFilter{CreatedFrom: &from})
}
