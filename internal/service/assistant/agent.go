package assistant

import (
	"regexp"
	"strings"

	"github.com/ycsite/siteops/internal/domain"
)

var agentRoutes = []struct {
	agent domain.AgentType
	re    *regexp.Regexp
}{
	{domain.AgentFinance, regexp.MustCompile(`budget|cost|expense|income|money|financial|spend|price|payment`)},
	{domain.AgentHR, regexp.MustCompile(`employee|worker|staff|team|assign|task|who can|availability|hire|schedule`)},
	{domain.AgentReports, regexp.MustCompile(`report|summary|generate|document|progress|weekly|monthly|daily report`)},
	{domain.AgentMaterials, regexp.MustCompile(`material|inventory|stock|cement|steel|brick|supplier|order|procurement`)},
}

// DetectAgent picks the persona for a query by keyword. The first matching
// route wins; anything else is general.
func DetectAgent(query string) domain.AgentType {
	q := strings.ToLower(query)
	for _, r := range agentRoutes {
		if r.re.MatchString(q) {
			return r.agent
		}
	}
	return domain.AgentGeneral
}

const (
	offlineFinance = "Site Brain is offline. Open 'Site Expenses' for the ledger (Solvency Status)."
	offlineRoster  = "Site Brain is offline. Check the 'Site Roster' for official assignments."
	offlineReports = "Site Brain is offline. Check 'Site Status' for the Morning Briefing."
	offlineGeneral = "The Site Brain (AI) is currently offline. Ensure the site server is running. All manual modules (Diary, Roster, Authority) remain active."
	emptyReply     = "I couldn't generate a response. Please try again."
)

// FallbackReply is the canned answer used when the model cannot be reached.
func FallbackReply(query string) string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "finance"), strings.Contains(q, "budget"):
		return offlineFinance
	case strings.Contains(q, "employee"), strings.Contains(q, "staff"), strings.Contains(q, "roster"):
		return offlineRoster
	case strings.Contains(q, "report"), strings.Contains(q, "briefing"):
		return offlineReports
	}
	return offlineGeneral
}
