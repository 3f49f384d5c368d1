package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ycsite/siteops/internal/domain"
)

const recentTransactions = 20

// SiteContext is the store snapshot given to the model.
type SiteContext struct {
	Employees []EmployeeBrief `json:"employees"`
	Tasks     []TaskBrief     `json:"tasks"`
	Finance   FinanceBrief    `json:"financeSummary"`
	Materials []MaterialBrief `json:"materials"`
	Projects  []ProjectBrief  `json:"projects"`
}

type EmployeeBrief struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Skills       []string `json:"skills"`
	Availability string   `json:"availability"`
	Status       string   `json:"status"`
}

type TaskBrief struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	AssignedTo *int64     `json:"assignedTo,omitempty"`
	Status     string     `json:"status"`
	Priority   string     `json:"priority"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
}

type TransactionBrief struct {
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

type FinanceBrief struct {
	TotalIncome        float64            `json:"totalIncome"`
	TotalExpense       float64            `json:"totalExpense"`
	RecentTransactions []TransactionBrief `json:"recentTransactions"`
}

type MaterialBrief struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
}

type ProjectBrief struct {
	Name     string  `json:"name"`
	Status   string  `json:"status"`
	Budget   float64 `json:"budget"`
	Spent    float64 `json:"spent"`
	Location string  `json:"location"`
}

// BuildContext snapshots employees, tasks, the last 20 transactions,
// materials and projects. The five reads run concurrently; any failure aborts
// the snapshot.
func (s *Service) BuildContext(ctx context.Context) (*SiteContext, error) {
	var (
		employees    []*domain.Employee
		tasks        []*domain.Task
		transactions []*domain.Transaction
		materials    []*domain.Material
		projects     []*domain.Project
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if employees, err = s.src.Employees.List(gctx, domain.EmployeeFilter{}); err != nil {
			return fmt.Errorf("list employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if tasks, err = s.src.Tasks.List(gctx, domain.TaskFilter{}); err != nil {
			return fmt.Errorf("list tasks: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if transactions, err = s.src.Transactions.List(gctx, domain.TransactionFilter{Limit: recentTransactions}); err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if materials, err = s.src.Materials.List(gctx, domain.MaterialFilter{}); err != nil {
			return fmt.Errorf("list materials: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if projects, err = s.src.Projects.List(gctx); err != nil {
			return fmt.Errorf("list projects: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sc := &SiteContext{
		Employees: make([]EmployeeBrief, 0, len(employees)),
		Tasks:     make([]TaskBrief, 0, len(tasks)),
		Finance:   FinanceBrief{RecentTransactions: make([]TransactionBrief, 0, 5)},
		Materials: make([]MaterialBrief, 0, len(materials)),
		Projects:  make([]ProjectBrief, 0, len(projects)),
	}
	for _, e := range employees {
		sc.Employees = append(sc.Employees, EmployeeBrief{
			ID:           e.ID,
			Name:         e.Name,
			Role:         e.Role,
			Skills:       e.Skills,
			Availability: string(e.Availability),
			Status:       string(e.Status),
		})
	}
	for _, t := range tasks {
		sc.Tasks = append(sc.Tasks, TaskBrief{
			ID:         t.ID,
			Title:      t.Title,
			AssignedTo: t.AssignedTo,
			Status:     string(t.Status),
			Priority:   string(t.Priority),
			DueDate:    t.DueDate,
		})
	}
	for i, t := range transactions {
		if t.Type == domain.TransactionTypeIncome {
			sc.Finance.TotalIncome += math.Abs(t.Amount)
		} else {
			sc.Finance.TotalExpense += math.Abs(t.Amount)
		}
		if i < 5 {
			sc.Finance.RecentTransactions = append(sc.Finance.RecentTransactions, TransactionBrief{
				Type:        string(t.Type),
				Amount:      t.Amount,
				Category:    t.Category,
				Description: t.Description,
				Date:        t.Date,
			})
		}
	}
	for _, m := range materials {
		sc.Materials = append(sc.Materials, MaterialBrief{Name: m.Name, Quantity: m.Quantity, Unit: m.Unit, Category: m.Category})
	}
	for _, p := range projects {
		sc.Projects = append(sc.Projects, ProjectBrief{
			Name:     p.Name,
			Status:   string(p.Status),
			Budget:   p.Budget,
			Spent:    p.Spent,
			Location: p.Location,
		})
	}
	return sc, nil
}

const basePrompt = "You are the 'Site Brain' (AI Auditor) for Yogesh Constructions. You speak with authority, ground truth expertise, and operational gravity."

// SystemPrompt renders the persona prompt for agent over sc. A nil sc
// renders an empty site.
func SystemPrompt(agent domain.AgentType, sc *SiteContext) string {
	if sc == nil {
		sc = &SiteContext{}
	}

	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\n")

	switch agent {
	case domain.AgentFinance:
		fmt.Fprintf(&b, `You are the **Ledger Auditor**. You handle site expenses, site balance, and money out (burn rate).

Current Ledger Context:
- Site Balance: ₹%s
- Money Out: ₹%s
- Recent Ledger Entries: %s

Your role:
1. Audit expenditures against the site balance.
2. Flag potential money leaks or burn rate issues.
3. Validate "Reality Checks" for payments.
4. Ensure every rupee spent is linked to a Work Order.

Be precise, authoritative, and focused on site solvency.`,
			money(sc.Finance.TotalIncome-sc.Finance.TotalExpense),
			money(sc.Finance.TotalExpense),
			toJSON(sc.Finance.RecentTransactions))

	case domain.AgentHR:
		available := 0
		for _, e := range sc.Employees {
			if e.Availability == string(domain.AvailabilityAvailable) {
				available++
			}
		}
		fmt.Fprintf(&b, `You are the **Roster Official**. You manage the Site Roster, assigned officials, and current responsibilities.

Current Roster Context:
- Officials on Site: %d
- Available for Deployment: %d / %d

Roster Details: %s
Active Work Orders: %s

Your role:
1. Deploy officials to Work Orders based on their specific case files.
2. Monitor site responsibility distribution.
3. Identify gaps in technical authority assignments.
4. Ensure every binding order has a lead official.

Be disciplined and focused on operational accountability.`,
			len(sc.Employees), available, len(sc.Employees), toJSON(sc.Employees), toJSON(sc.Tasks))

	case domain.AgentReports:
		fmt.Fprintf(&b, `You are the **Briefing Auditor**. You monitor Site Status, Ground Truth, and Operational Realities.

Available Site Stories:
- Ongoing Orders: %s
- Ledger Status: %s

Your role:
1. Synthesize Site Diaries into "Site Stories" (narrative briefings).
2. Highlight unverified realities and "Immediate Blockers".
3. Provide a clear cause-and-effect "Decision Tunnel".
4. Ensure ground truth from the field is correctly reflected in the Morning Briefing.

Use site-native language (Ground Truth, Reality Verified, Site Diary).`,
			toJSON(sc.Tasks), toJSON(sc.Finance))

	case domain.AgentMaterials:
		fmt.Fprintf(&b, `You are the **Logistics Auditor**. You handle Material Realities and site constraints.

Material Inventory:
%s

Your role:
1. Track material usage against physical site progress.
2. Alert the supervisor to "Material Constraints".
3. Verify that payloads arrived on site (Material Reality).
4. Predict bottlenecks in the procurement cycle.

Focus on physical existence and logistical truth.`,
			toJSON(sc.Materials))

	default:
		names := make([]string, 0, len(sc.Employees))
		for _, e := range sc.Employees {
			names = append(names, e.Name)
		}
		sites := make([]string, 0, len(sc.Projects))
		for _, p := range sc.Projects {
			sites = append(sites, p.Name)
		}
		fmt.Fprintf(&b, `You are the **Site Auditor**. You coordinate the 'Site Brain'.

Current Site Context:
- Active Sites: %d
- Roster Strength: %d
- Total Work Orders: %d

You provide:
1. Quick access to Technical Authority (blueprints).
2. Verification of Site Diary entries.
3. Auditing of Site Expenses.
4. Deployment status of the Roster.

Officials currently on Roster: %s
Active Site Locations: %s

Always refer to "Work Orders", "Site Roster", and "Technical Authority". Avoid software jargon.`,
			len(sc.Projects), len(sc.Employees), len(sc.Tasks), joinOrNone(names), joinOrNone(sites))
	}
	return b.String()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func toJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
