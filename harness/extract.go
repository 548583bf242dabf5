package harness

import (
	"regexp"
	"strconv"
	"strings"
)

var numberPattern = regexp.MustCompile(`[0-9]+(\.[0-9]+)?`)

// ExtractMetric pulls a labeled numeric value out of the tool's
// human-readable output. The first line containing label as a literal
// substring wins; thousands separators are stripped from it before the
// first decimal token is parsed. The second return is false when no line
// carries the label, or the labeled line has no number.
//
// This is a deliberately narrow adapter over the tool's console format: if
// the tool changes its wording, extraction fails here and nowhere else.
func ExtractMetric(text, label string) (float64, bool) {
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, label) {
			continue
		}

		token := numberPattern.FindString(strings.ReplaceAll(line, ",", ""))
		if token == "" {
			return 0, false
		}

		value, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return 0, false
		}

		return value, true
	}

	return 0, false
}
