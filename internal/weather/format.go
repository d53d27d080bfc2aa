package weather

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FormatReport renders a report as a two-column block: details on the
// left, condition art on the right, separated by a box-drawing bar.
func FormatReport(r Report) string {
	unit := "°C"
	if r.Units == "imperial" {
		unit = "°F"
	}

	textLines := []string{
		fmt.Sprintf("Weather in %s, %s:", r.City, r.Country),
		fmt.Sprintf("Temperature: %g%s (feels like %g%s)", r.Temperature, unit, r.FeelsLike, unit),
		fmt.Sprintf("Humidity: %d%%", r.Humidity),
		fmt.Sprintf("Conditions: %s", r.Description),
	}

	artLines := Art(r.Icon, r.Description)

	n := len(textLines)
	if len(artLines) > n {
		n = len(artLines)
	}

	// Pad by rune count so the degree signs do not skew the column.
	width := 0
	for _, line := range textLines {
		if c := utf8.RuneCountInString(line); c > width {
			width = c
		}
	}

	var b strings.Builder
	for i := 0; i < n; i++ {
		text, art := "", ""
		if i < len(textLines) {
			text = textLines[i]
		}
		if i < len(artLines) {
			art = artLines[i]
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		pad := strings.Repeat(" ", width-utf8.RuneCountInString(text))
		fmt.Fprintf(&b, "%s%s │ %s", text, pad, art)
	}
	return b.String()
}
