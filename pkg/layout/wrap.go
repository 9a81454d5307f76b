package layout

import "strings"

// Wrap breaks text into lines greedily. The first line may be at most first
// wide and later lines at most rest wide, as reported by measure. A word
// that does not fit on an empty line is kept whole on a line of its own.
// Text with no words yields no lines.
func Wrap(text string, first, rest float64, measure func(string) float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line, avail := words[0], first
	for _, w := range words[1:] {
		candidate := line + " " + w
		if measure(candidate) <= avail {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line, avail = w, rest
	}
	return append(lines, line)
}
