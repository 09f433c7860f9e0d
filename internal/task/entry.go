package task

import (
	"sort"
	"strings"
)

// ParseEntry splits the words of an `add` command into a title and labels.
// A word wrapped in colons is a label group: ":bug:" or ":bug:ui:".
func ParseEntry(words []string) (string, []string) {
	var titleWords []string
	var labels []string
	for _, word := range words {
		if isLabelGroup(word) {
			for _, part := range strings.Split(word, ":") {
				if part != "" {
					labels = append(labels, part)
				}
			}
			continue
		}
		titleWords = append(titleWords, strings.Fields(word)...)
	}
	return strings.Join(titleWords, " "), NormalizeLabels(labels)
}

func isLabelGroup(word string) bool {
	return len(word) > 2 &&
		strings.HasPrefix(word, ":") &&
		strings.HasSuffix(word, ":") &&
		strings.Trim(word, ":") != "" &&
		!strings.ContainsAny(word, " \t\n")
}

// NormalizeLabels trims, de-duplicates and sorts labels.
func NormalizeLabels(labels []string) []string {
	if len(labels) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}
