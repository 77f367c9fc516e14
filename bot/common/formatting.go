package common

import (
	"fmt"
	"strings"
	"time"

	"tpbot/models"
)

// FormatBalance formats a balance amount with thousand separators
func FormatBalance(balance int64) string {
	if balance < 0 {
		return "-" + FormatBalance(-balance)
	}

	str := fmt.Sprintf("%d", balance)

	// Add commas for thousands
	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// CurrencyLabel returns the unit shown next to an amount
func CurrencyLabel(currency models.Currency) string {
	if currency == models.CurrencyLegacy {
		return "coins"
	}
	return string(currency)
}

// FormatAmount renders an amount with its currency, e.g. "**1,500 TPB**"
func FormatAmount(amount int64, currency models.Currency) string {
	return fmt.Sprintf("**%s %s**", FormatBalance(amount), CurrencyLabel(currency))
}

// FormatDuration renders a remaining wait as "1h 2m 3s", "2m 3s" or "3s", rounding up to whole seconds
func FormatDuration(d time.Duration) string {
	seconds := int64((d + time.Second - 1) / time.Second)
	if seconds < 0 {
		seconds = 0
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	seconds %= 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
