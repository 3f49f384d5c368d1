package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ycsite/siteops/internal/app"
	"github.com/ycsite/siteops/internal/domain"
	"github.com/ycsite/siteops/internal/service/assistant"
	"github.com/ycsite/siteops/internal/service/dashboard"
	"github.com/ycsite/siteops/internal/service/material"
	"github.com/ycsite/siteops/internal/service/report"
	"github.com/ycsite/siteops/internal/service/task"
	"github.com/ycsite/siteops/internal/service/weather"
)

// withApp opens the store for the duration of fn.
func withApp(opts *RootOptions, cmd *cobra.Command, fn func(a *app.App) error) error {
	a, err := opts.openApp(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck
	return fn(a)
}

// NewDashboardCommand creates the dashboard command.
func NewDashboardCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show site metrics and alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, cmd, func(a *app.App) error {
				d, err := a.Dashboard.GetDashboard(cmd.Context())
				if err != nil {
					return err
				}
				return opts.formatter(cmd).Print(d, func(w io.Writer) error {
					return printDashboard(w, d)
				})
			})
		},
	}
}

func printDashboard(w io.Writer, d *dashboard.Dashboard) error {
	m := d.Metrics
	fmt.Fprintf(w, "Task completion   %.0f%%\n", m.TaskCompletion)
	fmt.Fprintf(w, "Active tasks      %d\n", m.ActiveTasks)
	fmt.Fprintf(w, "Report health     %.0f%%\n", m.ReportHealth)
	fmt.Fprintf(w, "Team load         %.0f%%\n", m.TeamLoad)
	fmt.Fprintf(w, "Budget            %s\n", m.BudgetStatus)
	fmt.Fprintf(w, "Low stock items   %d\n", m.LowStockItems)
	if len(d.Alerts) == 0 {
		_, err := fmt.Fprintln(w, "\nNo alerts.")
		return err
	}
	fmt.Fprintln(w, "\nAlerts:")
	for _, a := range d.Alerts {
		fmt.Fprintf(w, "  [%s] %s: %s\n", a.Type, a.Title, a.Message)
	}
	return nil
}

// NewReportCommand creates the report command group.
func NewReportCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Site reports",
	}

	var (
		date string
		save bool
	)
	daily := &cobra.Command{
		Use:   "daily",
		Short: "Summarise one day of logs, tasks and ledger entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now().UTC()
			if date != "" {
				parsed, err := time.ParseInLocation(report.DateLayout, date, time.UTC)
				if err != nil {
					return WrapExitError(ExitCommandError, "--date must be YYYY-MM-DD", err)
				}
				day = parsed
			}

			return withApp(opts, cmd, func(a *app.App) error {
				rep, err := a.Reports.DailyReport(cmd.Context(), day)
				if err != nil {
					return err
				}
				if save {
					if _, err := a.Reports.SaveDailyReport(cmd.Context(), day); err != nil {
						return err
					}
				}
				return opts.formatter(cmd).Print(rep, func(w io.Writer) error {
					return printDailyReport(w, rep, save)
				})
			})
		},
	}
	daily.Flags().StringVar(&date, "date", "", "day to report (YYYY-MM-DD, default today)")
	daily.Flags().BoolVar(&save, "save", false, "store the report")

	cmd.AddCommand(daily)
	return cmd
}

func printDailyReport(w io.Writer, rep *report.DailyReport, saved bool) error {
	fmt.Fprintf(w, "Daily Site Report %s\n\n", rep.Date)
	fmt.Fprintf(w, "Logs          %d\n", rep.Logs.Total)
	for _, p := range []domain.LogPriority{domain.LogPriorityUrgent, domain.LogPriorityHigh, domain.LogPriorityImportant, domain.LogPriorityNormal} {
		if n := rep.Logs.ByPriority[p]; n > 0 {
			fmt.Fprintf(w, "  %-10s  %d\n", p, n)
		}
	}
	fmt.Fprintf(w, "Tasks         %d created, %d completed\n", rep.Tasks.Total, rep.Tasks.Completed)
	fmt.Fprintf(w, "Transactions  %d (income %.2f, expenses %.2f)\n",
		rep.Transactions.Count, rep.Transactions.Income, rep.Transactions.Expenses)
	if len(rep.Logs.Highlights) > 0 {
		fmt.Fprintln(w, "\nHighlights:")
		for _, h := range rep.Logs.Highlights {
			fmt.Fprintf(w, "  - %s\n", h)
		}
	}
	if saved {
		fmt.Fprintln(w, "\nReport saved.")
	}
	return nil
}

// NewTasksCommand creates the tasks command group.
func NewTasksCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task board",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Counts per status, overdue tasks and completion rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, cmd, func(a *app.App) error {
				st, err := a.Tasks.Stats(cmd.Context())
				if err != nil {
					return err
				}
				return opts.formatter(cmd).Print(st, func(w io.Writer) error {
					return printTaskStats(w, st)
				})
			})
		},
	})
	return cmd
}

func printTaskStats(w io.Writer, st task.Stats) error {
	_, err := fmt.Fprintf(w,
		"Total %d  pending %d  active %d  scheduled %d  completed %d\nOverdue %d  completion %d%%\n",
		st.Total, st.Pending, st.Active, st.Scheduled, st.Completed, st.Overdue, st.CompletionRate)
	return err
}

// NewInventoryCommand creates the inventory command group.
func NewInventoryCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Material stock",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "low-stock",
		Short: "Materials below their minimum, largest deficit first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, cmd, func(a *app.App) error {
				alerts, err := a.Materials.LowStockAlerts(cmd.Context())
				if err != nil {
					return err
				}
				return opts.formatter(cmd).Print(alerts, func(w io.Writer) error {
					return printLowStock(w, alerts)
				})
			})
		},
	})
	return cmd
}

func printLowStock(w io.Writer, alerts []material.LowStockAlert) error {
	if len(alerts) == 0 {
		_, err := fmt.Fprintln(w, "All materials are above their minimum.")
		return err
	}
	for _, a := range alerts {
		fmt.Fprintf(w, "%-24s %8.2f / %-8.2f %-8s short %.2f\n", a.Name, a.Quantity, a.MinQuantity, a.Unit, a.Deficit)
	}
	return nil
}

// NewAskCommand creates the ask command.
func NewAskCommand(opts *RootOptions) *cobra.Command {
	var agent string
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the site assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := domain.AgentType(agent)
			if a != "" && !a.IsValid() {
				return WrapExitError(ExitCommandError, fmt.Sprintf("unknown agent %q", agent), nil)
			}

			return withApp(opts, cmd, func(ap *app.App) error {
				ap.Assistant.CheckConnection(cmd.Context())
				reply := ap.Assistant.Ask(cmd.Context(), assistant.AskInput{
					Prompt: strings.Join(args, " "),
					Agent:  a,
				})
				return opts.formatter(cmd).Print(reply, func(w io.Writer) error {
					if reply.Offline {
						fmt.Fprintf(w, "(offline, %s)\n", reply.Agent)
					}
					_, err := fmt.Fprintln(w, reply.Text)
					return err
				})
			})
		},
	}
	cmd.Flags().StringVar(&agent, "agent", "", "force a persona (general|finance|hr|reports|materials)")
	return cmd
}

// NewWeatherCommand creates the weather command.
func NewWeatherCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "weather [location]",
		Short: "Current site weather with work advice",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := ""
			if len(args) == 1 {
				location = args[0]
			}
			return withApp(opts, cmd, func(a *app.App) error {
				reading := a.Weather.GetWeather(cmd.Context(), location)
				advice := weather.Recommendations(reading)
				out := struct {
					*domain.Weather
					Recommendations []string `json:"recommendations"`
				}{reading, advice}
				return opts.formatter(cmd).Print(out, func(w io.Writer) error {
					return printWeather(w, reading, advice)
				})
			})
		},
	}
}

func printWeather(w io.Writer, r *domain.Weather, advice []string) error {
	fmt.Fprintf(w, "%s: %s", r.Location, r.Condition)
	if r.Temperature != nil {
		fmt.Fprintf(w, ", %.0f°C", *r.Temperature)
	}
	if r.WindSpeed != nil {
		fmt.Fprintf(w, ", wind %.0f km/h", *r.WindSpeed)
	}
	switch {
	case r.Offline:
		fmt.Fprint(w, " (offline)")
	case r.Expired:
		fmt.Fprint(w, " (cached)")
	}
	fmt.Fprintln(w)
	for _, a := range advice {
		fmt.Fprintf(w, "  %s\n", a)
	}
	return nil
}
