package notifier

import (
	"fmt"
	"strings"
	"time"

	"NiftyPulse/internal/model"
)

// Envelope wraps a message body with the timestamped alert header.
func Envelope(symbol, body string, now time.Time) string {
	return fmt.Sprintf("[%s] %s Alert:\n%s", now.Format("2006-01-02 15:04"), symbol, body)
}

// SignalMessages renders one line per fired signal, in the fixed order:
// bull cross, bear cross, bullish divergence, bearish divergence.
func SignalMessages(set *model.SignalSet) []string {
	var msgs []string
	if set.EMABullCross {
		msgs = append(msgs, fmt.Sprintf("📈 EMA Bullish Cross: EMA%d > EMA%d", set.Status.FastSpan, set.Status.SlowSpan))
	}
	if set.EMABearCross {
		msgs = append(msgs, fmt.Sprintf("📉 EMA Bearish Cross: EMA%d < EMA%d", set.Status.FastSpan, set.Status.SlowSpan))
	}
	if set.BullishDivergence {
		msgs = append(msgs, "🟢 Bullish RSI Divergence")
	}
	if set.BearishDivergence {
		msgs = append(msgs, "🔴 Bearish RSI Divergence")
	}
	return msgs
}

// FormatEMAStatus renders the debug status line for the latest bar.
func FormatEMAStatus(st *model.EMAStatus) string {
	return fmt.Sprintf("🧭 EMA Status: Close: %.2f, EMA%d: %.2f, EMA%d: %.2f, Diff: %.2f -> %s",
		st.Close, st.FastSpan, st.FastEMA, st.SlowSpan, st.SlowEMA, st.Diff, st.Trend)
}

// FormatDailySummary renders the daily trend-bias report.
func FormatDailySummary(symbol string, sum *model.TrendSummary) string {
	cond := "<"
	if sum.FastEMA > sum.SlowEMA {
		cond = ">"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s Daily EMA Summary:\n", symbol))
	b.WriteString(fmt.Sprintf("Close: %.2f\n", sum.Close))
	b.WriteString(fmt.Sprintf("EMA%d: %.2f\n", sum.FastSpan, sum.FastEMA))
	b.WriteString(fmt.Sprintf("EMA%d: %.2f\n", sum.SlowSpan, sum.SlowEMA))
	b.WriteString(fmt.Sprintf("➤ EMA%d %s EMA%d -> %s (%+.2f pts)",
		sum.FastSpan, cond, sum.SlowSpan, sum.Bias, sum.Diff))
	return b.String()
}
