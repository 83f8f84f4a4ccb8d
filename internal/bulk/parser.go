package bulk

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tithmeassambo-coder/QCM/internal/game"
)

// FallbackSubject is used when the author leaves the bulk subject empty ("General").
const FallbackSubject = "ទូទៅ"

var (
	ErrParse      = errors.New("parse questions")
	ErrEmptyInput = errors.New("no input to import")
)

var (
	blockSep = regexp.MustCompile(`\n\s*\n`)

	// 1. / ១. / IV) / b) ...
	stemPrefix = regexp.MustCompile(`^(?:[0-9០-៩]+|([A-Za-z]+))\s*[.)](?:\s+|$)`)

	// I to CCCXCIX, in one case only, so words like "Mix" stay in the stem.
	romanNumeral = regexp.MustCompile(`^(?:C{0,3}(?:XC|XL|L?X{0,3})(?:IX|IV|V?I{0,3})|c{0,3}(?:xc|xl|l?x{0,3})(?:ix|iv|v?i{0,3}))$`)

	optionLine = regexp.MustCompile(`^([កខគឃA-Da-d])[.)]\s*(.*)$`)

	correctMarkers = []*regexp.Regexp{
		regexp.MustCompile(regexp.QuoteMeta("(ចម្លើយត្រឹមត្រូវ)")),
		regexp.MustCompile(`(?i)\(\s*correct\s*\)`),
	}
)

// Parse imports either a JSON document (when the text starts with '[' or '{')
// or free text blocks. The JSON path is all-or-nothing.
func Parse(text, defaultSubject string) ([]game.Question, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyInput
	}
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		return ParseJSON([]byte(trimmed))
	}
	return ParseText(trimmed, defaultSubject), nil
}

// ParseText converts blank-line separated blocks into questions. Blocks that
// do not look like a question are skipped rather than reported.
func ParseText(text, defaultSubject string) []game.Question {
	subject := strings.TrimSpace(defaultSubject)
	if subject == "" {
		subject = FallbackSubject
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return []game.Question{}
	}

	out := make([]game.Question, 0)
	for _, block := range blockSep.Split(text, -1) {
		q, ok := parseBlock(block, subject)
		if ok {
			out = append(out, q)
		}
	}
	return out
}

func parseBlock(block, subject string) (game.Question, bool) {
	lines := make([]string, 0)
	for _, l := range strings.Split(block, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 2 {
		return game.Question{}, false
	}

	stem := stripStemPrefix(lines[0])

	opts := make([]string, 0, game.OptionCount)
	for _, line := range lines[1:] {
		if m := optionLine.FindStringSubmatch(line); m != nil {
			opts = append(opts, strings.TrimSpace(m[2]))
			continue
		}
		if len(opts) > 0 {
			opts[len(opts)-1] += " " + line
		}
	}
	if len(opts) == 0 {
		return game.Question{}, false
	}

	if len(opts) > game.OptionCount {
		opts = opts[:game.OptionCount]
	}
	correct := 0
	for i, o := range opts {
		if stripped, found := stripMarkers(o); found {
			opts[i] = stripped
			correct = i
		}
	}

	for len(opts) < game.OptionCount {
		opts = append(opts, "")
	}

	return game.Question{
		Subject:  subject,
		Text:     stem,
		Options:  opts,
		Correct:  correct,
		IsActive: game.Bool(true),
	}, true
}

func stripMarkers(s string) (string, bool) {
	found := false
	for _, re := range correctMarkers {
		if re.MatchString(s) {
			found = true
			s = re.ReplaceAllString(s, " ")
		}
	}
	if !found {
		return s, false
	}
	return strings.Join(strings.Fields(s), " "), true
}

func parseErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}

func stripStemPrefix(line string) string {
	m := stemPrefix.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	if word := m[1]; len(word) > 1 && !romanNumeral.MatchString(word) {
		return line
	}
	return line[len(m[0]):]
}
