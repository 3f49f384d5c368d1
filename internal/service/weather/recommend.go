package weather

import (
	"strings"

	"github.com/ycsite/siteops/internal/domain"
)

// Recommendations turns a reading into work advice. Readings without a
// temperature or wind speed skip those checks.
func Recommendations(w *domain.Weather) []string {
	var out []string
	if w == nil {
		return []string{"✅ Standard conditions. Proceed with regular work schedule"}
	}

	if t := w.Temperature; t != nil {
		switch {
		case *t > 35:
			out = append(out, "⚠️ High temperature! Schedule frequent breaks and ensure adequate water supply")
		case *t < 15:
			out = append(out, "❄️ Cold weather. Ensure workers have appropriate clothing")
		}
	}
	if strings.Contains(strings.ToLower(w.Condition), "rain") {
		out = append(out, "🌧️ Rain expected. Prioritize indoor work and secure materials")
	}
	if ws := w.WindSpeed; ws != nil && *ws > 20 {
		out = append(out, "💨 High winds. Avoid working at heights, secure loose materials")
	}
	if t := w.Temperature; w.Condition == "Clear Sky" && t != nil && *t >= 20 && *t <= 30 {
		out = append(out, "✅ Ideal conditions! Perfect for all construction activities")
	}

	if len(out) == 0 {
		out = append(out, "✅ Standard conditions. Proceed with regular work schedule")
	}
	return out
}
