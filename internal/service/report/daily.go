package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ycsite/siteops/internal/domain"
)

// DateLayout is the calendar-day format used by daily reports.
const DateLayout = "2006-01-02"

// DailyLogs summarises one day of diary entries.
type DailyLogs struct {
	Total      int                        `json:"total"`
	ByPriority map[domain.LogPriority]int `json:"byPriority"`
	Highlights []string                   `json:"highlights"`
}

// DailyTasks summarises the tasks created on one day.
type DailyTasks struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// DailyTransactions summarises the ledger entries dated on one day.
type DailyTransactions struct {
	Count    int     `json:"count"`
	Expenses float64 `json:"expenses"`
	Income   float64 `json:"income"`
}

// DailyReport is the end-of-day site summary.
type DailyReport struct {
	Date         string            `json:"date"`
	Logs         DailyLogs         `json:"logs"`
	Tasks        DailyTasks        `json:"tasks"`
	Transactions DailyTransactions `json:"transactions"`
}

// dayBounds returns [start, end) of the UTC calendar day containing date.
func dayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// DailyReport builds the report for the calendar day containing date.
func (s *Service) DailyReport(ctx context.Context, date time.Time) (*DailyReport, error) {
	start, end := dayBounds(date)

	logs, err := s.logs.List(ctx, domain.LogFilter{CreatedFrom: &start, CreatedTo: &end})
	if err != nil {
		return nil, fmt.Errorf("list day logs: %w", err)
	}
	tasks, err := s.tasks.List(ctx, domain.TaskFilter{CreatedFrom: &start, CreatedTo: &end})
	if err != nil {
		return nil, fmt.Errorf("list day tasks: %w", err)
	}
	last := end.Add(-time.Millisecond)
	transactions, err := s.transactions.List(ctx, domain.TransactionFilter{From: &start, To: &last})
	if err != nil {
		return nil, fmt.Errorf("list day transactions: %w", err)
	}

	rep := &DailyReport{
		Date: start.Format(DateLayout),
		Logs: DailyLogs{
			Total:      len(logs),
			ByPriority: ComputeStats(logs).ByPriority,
			Highlights: []string{},
		},
		Tasks:        DailyTasks{Total: len(tasks)},
		Transactions: DailyTransactions{Count: len(transactions)},
	}
	for _, l := range logs {
		if l.Priority == domain.LogPriorityHigh || l.Priority == domain.LogPriorityUrgent {
			rep.Logs.Highlights = append(rep.Logs.Highlights, l.Caption)
		}
	}
	for _, t := range tasks {
		if t.Status == domain.TaskStatusCompleted {
			rep.Tasks.Completed++
		}
	}
	for _, t := range transactions {
		if t.Type == domain.TransactionTypeIncome {
			rep.Transactions.Income += math.Abs(t.Amount)
		} else {
			rep.Transactions.Expenses += math.Abs(t.Amount)
		}
	}
	return rep, nil
}

// SaveDailyReport builds the daily report and stores it as a JSON report.
func (s *Service) SaveDailyReport(ctx context.Context, date time.Time) (*domain.Report, error) {
	rep, err := s.DailyReport(ctx, date)
	if err != nil {
		return nil, err
	}
	content, err := json.Marshal(rep)
	if err != nil {
		return nil, fmt.Errorf("marshal daily report: %w", err)
	}

	saved, err := s.reports.Create(ctx, &domain.Report{
		Title:       "Daily Site Report " + rep.Date,
		Type:        domain.ReportTypeDaily,
		Content:     string(content),
		Period:      rep.Date,
		GeneratedBy: "siteops",
		GeneratedAt: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.log.InfoContext(ctx, "daily report saved",
		slog.Int64("report_id", saved.ID),
		slog.String("date", rep.Date),
	)
	return saved, nil
}

// ListReports returns stored reports newest first, optionally of one type.
func (s *Service) ListReports(ctx context.Context, typ string) ([]*domain.Report, error) {
	reports, err := s.reports.List(ctx, typ)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// GetReport returns one stored report.
func (s *Service) GetReport(ctx context.Context, id int64) (*domain.Report, error) {
	rep, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return rep, nil
}
