package vocab

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// contextWindow is the number of characters kept on each side of a match.
	contextWindow = 50
	// maxSeparatorTokens caps separator-pattern translations to filter out
	// dash-joined clauses that are not translations.
	maxSeparatorTokens = 3
)

var (
	// "māja (house)"
	parenPattern = regexp.MustCompile(`([\p{L}\d]+)\s*\(([^)]+)\)`)
	// "labrīt - good morning", also with –, — and →
	separatorPattern = regexp.MustCompile(`([\p{L}\d]+)\s*[-–—→]\s*([^.,\n]+)`)
)

// Pair is a single extracted vocabulary candidate.
type Pair struct {
	Word        string
	Translation string
	Context     string
}

type match struct {
	start       int
	end         int
	word        string
	translation string
	separator   bool
}

// Extract scans tutor reply text for bilingual vocabulary pairs. It is a
// deliberately loose heuristic over free text: both patterns miss legitimate
// vocabulary and produce occasional false positives, which the deduplication
// layer above tolerates. It never fails; unmatched or empty input yields an
// empty result.
func Extract(text string) []Pair {
	matches := collectMatches(text)
	if len(matches) == 0 {
		return nil
	}

	runes := []rune(text)
	seen := make(map[string]bool, len(matches))
	res := make([]Pair, 0, len(matches))
	for _, m := range matches {
		word := strings.TrimSpace(m.word)
		translation := strings.TrimSpace(m.translation)
		if utf8.RuneCountInString(word) <= 1 || utf8.RuneCountInString(translation) <= 1 {
			continue
		}
		if m.separator && len(strings.Fields(translation)) > maxSeparatorTokens {
			continue
		}

		key := pairKey(word, translation)
		if seen[key] {
			continue
		}
		seen[key] = true

		res = append(res, Pair{
			Word:        word,
			Translation: translation,
			Context:     contextAround(text, runes, m.start, m.end),
		})
	}

	return res
}

// collectMatches runs both pattern scans and merges the results into text order.
func collectMatches(text string) []match {
	var matches []match

	for _, idx := range parenPattern.FindAllStringSubmatchIndex(text, -1) {
		matches = append(matches, match{
			start:       idx[0],
			end:         idx[1],
			word:        text[idx[2]:idx[3]],
			translation: text[idx[4]:idx[5]],
		})
	}

	for _, idx := range separatorPattern.FindAllStringSubmatchIndex(text, -1) {
		matches = append(matches, match{
			start:       idx[0],
			end:         idx[1],
			word:        text[idx[2]:idx[3]],
			translation: text[idx[4]:idx[5]],
			separator:   true,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].start < matches[j].start
	})

	return matches
}

func contextAround(text string, runes []rune, start, end int) string {
	from := utf8.RuneCountInString(text[:start]) - contextWindow
	to := utf8.RuneCountInString(text[:end]) + contextWindow

	if from < 0 {
		from = 0
	}
	if to > len(runes) {
		to = len(runes)
	}

	return strings.TrimSpace(string(runes[from:to]))
}

func pairKey(word, translation string) string {
	return strings.ToLower(word + "-" + translation)
}
