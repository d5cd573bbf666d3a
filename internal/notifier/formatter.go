package notifier

import (
	"fmt"
	"strings"

	"MarketHeatmap/internal/recorder"
)

// FormatRunSummary formats a heatmap generation run into a Telegram message.
func FormatRunSummary(title string, snap *recorder.RunSnapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🗾 <b>%s</b> | %s\n\n", title, snap.GeneratedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("取得銘柄: %d/%d\n", snap.Resolved, snap.Total))
	if missing := snap.Total - snap.Resolved; missing > 0 {
		b.WriteString(fmt.Sprintf("データなし: %d銘柄\n", missing))
	}

	var hasTop bool
	var topCode, bottomCode string
	var topPct, bottomPct float64
	for _, o := range snap.Observations {
		if !o.Valid {
			continue
		}
		if !hasTop || o.ChangePct > topPct {
			topCode, topPct = o.Code, o.ChangePct
		}
		if !hasTop || o.ChangePct < bottomPct {
			bottomCode, bottomPct = o.Code, o.ChangePct
		}
		hasTop = true
	}
	if hasTop {
		b.WriteString(fmt.Sprintf("\n📈 最大上昇: %s %+.2f%%\n", topCode, topPct))
		b.WriteString(fmt.Sprintf("📉 最大下落: %s %+.2f%%\n", bottomCode, bottomPct))
	}

	b.WriteString(fmt.Sprintf("\n出力: %s", snap.OutputPath))
	return b.String()
}
