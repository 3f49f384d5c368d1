package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ycsite/siteops/internal/domain"
	"github.com/ycsite/siteops/internal/service/employee"
	"github.com/ycsite/siteops/internal/service/finance"
)

// Budget status values.
const (
	BudgetHealthy  = "healthy"
	BudgetCritical = "critical"
)

const recentLogCount = 5

// Metrics are the headline numbers of the dashboard.
type Metrics struct {
	TaskCompletion float64 `json:"taskCompletion"`
	ActiveTasks    int     `json:"activeTasks"`
	ReportHealth   float64 `json:"reportHealth"`
	TeamLoad       float64 `json:"teamLoad"`
	BudgetStatus   string  `json:"budgetStatus"`
	LowStockItems  int     `json:"lowStockItems"`
}

// Alert is one item of the attention feed.
type Alert struct {
	ID      string           `json:"id"`
	Type    domain.AlertType `json:"type"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Time    time.Time        `json:"time"`
}

// Dashboard is the operations overview.
type Dashboard struct {
	Metrics     Metrics           `json:"metrics"`
	Alerts      []Alert           `json:"alerts"`
	RecentLogs  []*domain.SiteLog `json:"recentLogs"`
	Employees   employee.Stats    `json:"employees"`
	Finance     finance.Summary   `json:"finance"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

// GetDashboard loads all sources concurrently and derives metrics and alerts.
// Any source failing aborts the whole refresh.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var (
		tasks    []*domain.Task
		logs     []*domain.SiteLog
		staff    employee.Stats
		lowStock []*domain.Material
		summary  finance.Summary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if tasks, err = s.tasks.ListTasks(gctx, domain.TaskFilter{}); err != nil {
			return fmt.Errorf("load tasks: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if logs, err = s.logs.ListLogs(gctx, domain.LogFilter{}); err != nil {
			return fmt.Errorf("load logs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if staff, err = s.employees.Stats(gctx); err != nil {
			return fmt.Errorf("load employee stats: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if lowStock, err = s.materials.ListMaterials(gctx, domain.MaterialFilter{LowStock: true}); err != nil {
			return fmt.Errorf("load materials: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if summary, err = s.finance.Summary(gctx, nil); err != nil {
			return fmt.Errorf("load finance summary: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.ErrorContext(ctx, "dashboard refresh failed", slog.String("error", err.Error()))
		return nil, err
	}

	now := s.now()
	d := &Dashboard{
		Metrics: Metrics{
			TaskCompletion: taskCompletion(tasks),
			ActiveTasks:    countStatus(tasks, domain.TaskStatusActive),
			ReportHealth:   reportHealth(logs, s.expected, now),
			TeamLoad:       teamLoad(staff),
			BudgetStatus:   BudgetHealthy,
			LowStockItems:  len(lowStock),
		},
		Alerts:      buildAlerts(tasks, logs, len(lowStock), now),
		RecentLogs:  logs[:min(len(logs), recentLogCount)],
		Employees:   staff,
		Finance:     summary,
		GeneratedAt: now,
	}
	if summary.IsOverBudget {
		d.Metrics.BudgetStatus = BudgetCritical
	}
	return d, nil
}

func countStatus(tasks []*domain.Task, status domain.TaskStatus) int {
	n := 0
	for _, t := range tasks {
		if t.Status == status {
			n++
		}
	}
	return n
}

func taskCompletion(tasks []*domain.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	return float64(countStatus(tasks, domain.TaskStatusCompleted)) / float64(len(tasks)) * 100
}

// reportHealth is the number of distinct locations with a log created on
// now's calendar day over the number of expected locations, capped at 100.
func reportHealth(logs []*domain.SiteLog, expected []string, now time.Time) float64 {
	if len(expected) == 0 {
		return 0
	}

	y, m, d := now.Date()
	seen := make(map[string]struct{})
	for _, l := range logs {
		ly, lm, ld := l.CreatedAt.In(now.Location()).Date()
		if ly != y || lm != m || ld != d {
			continue
		}
		seen[domain.NormalizeText(l.Location)] = struct{}{}
	}
	return math.Min(100, float64(len(seen))/float64(len(expected))*100)
}

func teamLoad(st employee.Stats) float64 {
	if st.Total == 0 {
		return 0
	}
	return float64(st.Total-st.Available) / float64(st.Total) * 100
}

// buildAlerts emits CRITICAL, WARNING and INFO alerts in that order and then
// sorts them newest first, keeping that order for equal times.
func buildAlerts(tasks []*domain.Task, logs []*domain.SiteLog, lowStock int, now time.Time) []Alert {
	alerts := []Alert{}
	for _, l := range logs {
		if !l.NeedsAttention() {
			continue
		}
		alerts = append(alerts, Alert{
			ID:      fmt.Sprintf("log-%d", l.ID),
			Type:    domain.AlertCritical,
			Title:   "High Priority Report",
			Message: l.Caption,
			Time:    l.CreatedAt,
		})
	}
	for _, t := range tasks {
		if !t.IsOverdue(now) {
			continue
		}
		alerts = append(alerts, Alert{
			ID:      fmt.Sprintf("task-%d", t.ID),
			Type:    domain.AlertWarning,
			Title:   "Overdue Task",
			Message: t.Title,
			Time:    *t.DueDate,
		})
	}
	if lowStock > 0 {
		alerts = append(alerts, Alert{
			ID:      "material-low",
			Type:    domain.AlertInfo,
			Title:   "Inventory Alert",
			Message: fmt.Sprintf("%d items are below minimum stock level", lowStock),
			Time:    now,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool { return alerts[i].Time.After(alerts[j].Time) })
	return alerts
}
