package catalog

import "strconv"

// RomanLevel formats a training level the way the game UI shows it.
func RomanLevel(level int) string {
	numerals := []string{"", "I", "II", "III", "IV", "V"}
	if level < 1 || level >= len(numerals) {
		return strconv.Itoa(level)
	}
	return numerals[level]
}

// TruncateName shortens a skill name to at most max runes, replacing the
// tail with an ellipsis. Counting runes keeps multibyte names intact.
func TruncateName(name string, max int) string {
	if max <= 0 {
		return name
	}
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max-1]) + "…"
}
