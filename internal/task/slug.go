package task

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/nibzard/pm-go/internal/pmdir"
)

const (
	// idWidth is the zero-padded width of the id prefix.
	idWidth = 3
	// maxTitleSlug caps the title part of a slug, in runes.
	maxTitleSlug = 48
	// fallbackSlug is used when a title has no usable characters.
	fallbackSlug = "task"
)

// Slug derives the file name stem for a task: the zero-padded id
// followed by the kebab-cased title. It is computed once, at creation.
func Slug(id int, title string) string {
	return fmt.Sprintf("%0*d-%s", idWidth, id, kebab(title))
}

// ParseFileID extracts the task id from a task file name such as
// "007-fix-login.yml". It returns false for names that are not task files.
func ParseFileID(name string) (int, bool) {
	stem, ok := strings.CutSuffix(name, pmdir.TaskExt)
	if !ok || stem == "" {
		return 0, false
	}
	digits := stem
	if i := strings.IndexByte(stem, '-'); i >= 0 {
		digits = stem[:i]
	}
	if digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(digits)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// kebab lower-cases title, folds accents and joins alphanumeric runs with '-'.
func kebab(title string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range foldMarks(title) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pendingDash = true
			continue
		}
		if pendingDash && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingDash = false
		b.WriteRune(unicode.ToLower(r))
	}

	slug := truncateSlug([]rune(b.String()), maxTitleSlug)
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// truncateSlug cuts s to at most limit runes, preferring a word boundary.
func truncateSlug(s []rune, limit int) string {
	if len(s) <= limit {
		return string(s)
	}
	cut := s[:limit]
	if s[limit] != '-' {
		for i := len(cut) - 1; i > 0; i-- {
			if cut[i] == '-' {
				cut = cut[:i]
				break
			}
		}
	}
	return strings.TrimRight(string(cut), "-")
}

// foldMarks strips combining marks so "Café" becomes "Cafe".
func foldMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
