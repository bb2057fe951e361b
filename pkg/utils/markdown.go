package utils

import (
	"strings"
)

// EscapeMarkdown escaped spezielle Markdown-Zeichen
func EscapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		".", "\\.",
		"!", "\\!",
		"|", "\\|",
	)
	return replacer.Replace(text)
}

// TruncateText kürzt Text auf maximal maxLength Zeichen (Runes, nicht Bytes)
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}

	if maxLength <= 3 {
		return string(runes[:maxLength])
	}

	return string(runes[:maxLength-3]) + "..."
}

// SingleLine fasst Whitespace inkl. Zeilenumbrüchen zu je einem Leerzeichen zusammen
func SingleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// SanitizeFilename ersetzt Zeichen, die in Dateinamen stören
func SanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		" ", "-",
		":", "-",
	)
	return replacer.Replace(strings.TrimSpace(name))
}
