package report

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
	reportrepo "github.com/ycsite/siteops/internal/adapter/sqlite/report"
	"github.com/ycsite/siteops/internal/adapter/sqlite/sitelog"
	"github.com/ycsite/siteops/internal/adapter/sqlite/task"
	"github.com/ycsite/siteops/internal/adapter/sqlite/testhelper"
	"github.com/ycsite/siteops/internal/adapter/sqlite/transaction"
	"github.com/ycsite/siteops/internal/domain"
	"github.com/ycsite/siteops/internal/events"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

type fixture struct {
	svc       *Service
	store     *sqlite.Store
	clock     *clock
	refreshes *atomic.Int32
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := testhelper.SetupTestDB(t)
	notifier := events.NewNotifier(testhelper.Logger())
	refreshes := &atomic.Int32{}
	notifier.Subscribe(events.TopicLogsRefresh, func(context.Context, string) { refreshes.Add(1) })

	c := &clock{t: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)}
	svc := NewService(testhelper.Logger(),
		sitelog.New(store.DB()),
		task.New(store.DB()),
		transaction.New(store.DB()),
		reportrepo.New(store.DB()),
		notifier,
	)
	svc.now = c.now
	return fixture{svc: svc, store: store, clock: c, refreshes: refreshes}
}

func TestCreateLog_DefaultsAndPublishes(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	l, err := f.svc.CreateLog(context.Background(), CreateLogInput{
		Caption:  "  Crack in slab  ",
		Location: "Block A",
		Tags:     []string{" structure ", "safety"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Crack in slab", l.Caption)
	assert.Equal(t, domain.LogPriorityNormal, l.Priority)
	assert.Equal(t, domain.LogStatusActive, l.Status)
	assert.Equal(t, []string{"structure", "safety"}, l.Tags)
	assert.False(t, l.Acknowledged)
	assert.False(t, l.Bookmarked)
	assert.True(t, l.CreatedAt.Equal(f.clock.t))
	assert.EqualValues(t, 1, f.refreshes.Load())
}

func TestCreateLog_Validation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.CreateLog(context.Background(), CreateLogInput{Priority: "Meh", Tags: []string{""}})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors, 3)
	assert.EqualValues(t, 0, f.refreshes.Load())
}

func TestCreateLog_PriorityAnyCase(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	l, err := f.svc.CreateLog(context.Background(), CreateLogInput{Caption: "Loose cable", Priority: " high "})
	require.NoError(t, err)
	assert.Equal(t, domain.LogPriorityHigh, l.Priority)
}

func TestBookmarkAndAcknowledge(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	l, err := f.svc.CreateLog(ctx, CreateLogInput{Caption: "Scaffold loose", Priority: domain.LogPriorityHigh})
	require.NoError(t, err)

	got, err := f.svc.ToggleBookmark(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, got.Bookmarked)
	got, err = f.svc.ToggleBookmark(ctx, l.ID)
	require.NoError(t, err)
	assert.False(t, got.Bookmarked)

	ackAt := f.clock.t
	got, err = f.svc.AcknowledgeLog(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, got.Acknowledged)
	require.NotNil(t, got.AcknowledgedAt)
	assert.True(t, got.AcknowledgedAt.Equal(ackAt))

	f.clock.t = f.clock.t.Add(time.Hour)
	again, err := f.svc.AcknowledgeLog(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, again.AcknowledgedAt.Equal(ackAt))

	assert.EqualValues(t, 4, f.refreshes.Load())
}

func TestDeleteLog(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	l, err := f.svc.CreateLog(ctx, CreateLogInput{Caption: "Delivery"})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteLog(ctx, l.ID))
	_, err = f.svc.GetLog(ctx, l.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.svc.DeleteLog(ctx, l.ID), domain.ErrNotFound)
}

func TestStatsSearchAndRecent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	f.clock.t = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	_, err := f.svc.CreateLog(ctx, CreateLogInput{Caption: "Old survey", Location: "Gate"})
	require.NoError(t, err)

	f.clock.t = time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)
	_, err = f.svc.CreateLog(ctx, CreateLogInput{Caption: "Rebar check", Tags: []string{"Structure"}, Priority: domain.LogPriorityHigh})
	require.NoError(t, err)
	_, err = f.svc.CreateLog(ctx, CreateLogInput{Caption: "Tea break", Status: domain.LogStatusResolved})
	require.NoError(t, err)

	f.clock.t = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	st, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.Active)
	assert.Equal(t, 1, st.ByPriority[domain.LogPriorityHigh])
	assert.Equal(t, 2, st.ByPriority[domain.LogPriorityNormal])
	assert.Equal(t, 0, st.ByPriority[domain.LogPriorityUrgent])

	found, err := f.svc.SearchLogs(ctx, "STRUCTURE")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Rebar check", found[0].Caption)

	recent, err := f.svc.RecentLogs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestDailyReport(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	f.clock.t = day.Add(8 * time.Hour)
	_, err := f.svc.CreateLog(ctx, CreateLogInput{Caption: "Crane inspection", Priority: domain.LogPriorityUrgent})
	require.NoError(t, err)
	_, err = f.svc.CreateLog(ctx, CreateLogInput{Caption: "Daily briefing"})
	require.NoError(t, err)
	f.clock.t = day.Add(-time.Hour)
	_, err = f.svc.CreateLog(ctx, CreateLogInput{Caption: "Yesterday"})
	require.NoError(t, err)

	for _, status := range []string{"completed", "pending"} {
		_, err := f.store.DB().ExecContext(ctx,
			`INSERT INTO tasks (title, status, priority, created_at) VALUES (?, ?, ?, ?)`,
			"t", status, "medium", sqlite.ToMillis(day.Add(10*time.Hour)))
		require.NoError(t, err)
	}
	for _, row := range []struct {
		typ    string
		amount float64
		at     time.Time
	}{
		{"expense", 120, day.Add(23*time.Hour + 59*time.Minute)},
		{"income", 1000, day},
		{"expense", 55, day.AddDate(0, 0, 1)},
	} {
		_, err := f.store.DB().ExecContext(ctx,
			`INSERT INTO transactions (type, amount, category, date, created_at) VALUES (?, ?, ?, ?, ?)`,
			row.typ, row.amount, "Misc", sqlite.ToMillis(row.at), sqlite.ToMillis(row.at))
		require.NoError(t, err)
	}

	rep, err := f.svc.DailyReport(ctx, day.Add(15*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", rep.Date)
	assert.Equal(t, 2, rep.Logs.Total)
	assert.Equal(t, 1, rep.Logs.ByPriority[domain.LogPriorityUrgent])
	assert.Equal(t, []string{"Crane inspection"}, rep.Logs.Highlights)
	assert.Equal(t, DailyTasks{Total: 2, Completed: 1}, rep.Tasks)
	assert.Equal(t, DailyTransactions{Count: 2, Expenses: 120, Income: 1000}, rep.Transactions)
}

func TestDayBounds_UTCDay(t *testing.T) {
	t.Parallel()
	ist := time.FixedZone("IST", 5*3600+1800)

	start, end := dayBounds(time.Date(2025, 6, 10, 1, 0, 0, 0, ist))
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), end)
}

func TestSaveDailyReport(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateLog(ctx, CreateLogInput{Caption: "Pour"})
	require.NoError(t, err)

	saved, err := f.svc.SaveDailyReport(ctx, f.clock.t)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportTypeDaily, saved.Type)
	assert.Equal(t, "2025-06-10", saved.Period)

	var decoded DailyReport
	require.NoError(t, json.Unmarshal([]byte(saved.Content), &decoded))
	assert.Equal(t, 1, decoded.Logs.Total)

	reports, err := f.svc.ListReports(ctx, domain.ReportTypeDaily)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, saved.ID, reports[0].ID)
}
