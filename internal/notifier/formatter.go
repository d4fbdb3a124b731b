package notifier

import (
	"fmt"
	"strings"

	"CryptoBuddy/internal/model"
)

// FormatCrossing renders a fired alert as a Telegram message.
func FormatCrossing(q model.PriceQuote, a *model.Alert) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔔 <b>%s crossed (%s) $%s</b>\n\n", a.Symbol, a.Direction, a.Threshold))
	b.WriteString(fmt.Sprintf("Symbol: %s\n", q.Symbol))
	b.WriteString(fmt.Sprintf("Price: $%s\n", q.Price))
	return b.String()
}

// FormatAlertList renders the pending alerts for display.
func FormatAlertList(alerts []*model.Alert) string {
	var b strings.Builder
	b.WriteString("<b>Current Alerts:</b>\n")
	for i, a := range alerts {
		b.WriteString(fmt.Sprintf("%d. %s %s $%s\n", i+1, a.Symbol, a.Direction, a.Threshold))
	}
	return b.String()
}

// FormatStartup renders the startup announcement.
func FormatStartup(symbols []string, intervalSeconds int) string {
	return fmt.Sprintf("🤖 <b>CryptoBuddy started</b>\nWatching %s every %ds",
		strings.Join(symbols, ", "), intervalSeconds)
}
