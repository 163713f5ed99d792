package render

import (
	"fmt"
	"strconv"
)

// maxNameLength is the longest player name drawn without truncation.
const maxNameLength = 12

// TruncateName shortens names longer than 12 characters to their first 10
// plus "..".
func TruncateName(name string) string {
	r := []rune(name)
	if len(r) > maxNameLength {
		return string(r[:10]) + ".."
	}
	return name
}

// FormatStat renders large stat values compactly: 15432 -> "15.4k",
// 850 -> "850".
func FormatStat(v int) string {
	if v >= 1000 {
		return fmt.Sprintf("%.1fk", float64(v)/1000)
	}
	return strconv.Itoa(v)
}

// FormatKDA renders the kill / death / assist line.
func FormatKDA(kills, deaths, assists int) string {
	return fmt.Sprintf("%d / %d / %d", kills, deaths, assists)
}

// FormatClock renders the header subtitle, e.g. "CLASSIC • 31:07".
func FormatClock(mode string, seconds int) string {
	return fmt.Sprintf("%s • %d:%02d", mode, seconds/60, seconds%60)
}
