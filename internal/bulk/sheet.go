package bulk

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tithmeassambo-coder/QCM/internal/game"
	"github.com/xuri/excelize/v2"
)

var sheetHeaders = []string{"subject", "question", "option_1", "option_2", "option_3", "option_4", "correct", "is_active"}

var requiredColumns = []string{"question", "option_1", "correct"}

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// SheetError lists every rejected row; nothing from the workbook is imported.
type SheetError struct {
	Rows []RowError
}

func (e *SheetError) Error() string {
	parts := make([]string, 0, len(e.Rows))
	for _, r := range e.Rows {
		parts = append(parts, fmt.Sprintf("row %d: %s", r.Row, r.Error))
	}
	return fmt.Sprintf("%s: %s", ErrParse, strings.Join(parts, "; "))
}

func (e *SheetError) Unwrap() error { return ErrParse }

// ParseSheet reads the first sheet of an xlsx workbook.
func ParseSheet(r io.Reader, defaultSubject string) ([]game.Question, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, parseErr("open excel: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyInput
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, parseErr("read rows: %v", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptyInput
	}

	header := map[string]int{}
	for i, h := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := header[col]; !ok {
			return nil, parseErr("missing required column: %s", col)
		}
	}

	fallback := strings.TrimSpace(defaultSubject)
	if fallback == "" {
		fallback = FallbackSubject
	}

	out := make([]game.Question, 0, len(rows)-1)
	var bad []RowError
	for i := 1; i < len(rows); i++ {
		rowNo := i + 1
		row := rows[i]
		get := func(key string) string {
			idx, ok := header[key]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		opts := make([]string, game.OptionCount)
		filled := 0
		for k := range opts {
			opts[k] = get(fmt.Sprintf("option_%d", k+1))
			if opts[k] != "" {
				filled++
			}
		}
		if filled == 0 {
			continue
		}

		correct, err := strconv.Atoi(get("correct"))
		if err != nil || correct < 1 || correct > game.OptionCount {
			bad = append(bad, RowError{Row: rowNo, Error: "correct must be a number from 1 to 4"})
			continue
		}
		active, err := parseActive(get("is_active"))
		if err != nil {
			bad = append(bad, RowError{Row: rowNo, Error: err.Error()})
			continue
		}

		subject := get("subject")
		if subject == "" {
			subject = fallback
		}
		out = append(out, game.Question{
			Subject:  subject,
			Text:     get("question"),
			Options:  opts,
			Correct:  correct - 1,
			IsActive: active,
		})
	}
	if len(bad) > 0 {
		return nil, &SheetError{Rows: bad}
	}
	return out, nil
}

func parseActive(raw string) (*bool, error) {
	switch strings.ToLower(raw) {
	case "":
		return nil, nil
	case "true", "1", "yes":
		return game.Bool(true), nil
	case "false", "0", "no":
		return game.Bool(false), nil
	}
	return nil, fmt.Errorf("is_active must be true or false, got %q", raw)
}

// WriteSheet exports questions in the layout ParseSheet reads back.
func WriteSheet(w io.Writer, qs []game.Question) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, h := range sheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for i, q := range qs {
		values := make([]any, 0, len(sheetHeaders))
		values = append(values, q.Subject, q.Text)
		for k := 0; k < game.OptionCount; k++ {
			opt := ""
			if k < len(q.Options) {
				opt = q.Options[k]
			}
			values = append(values, opt)
		}
		values = append(values, q.Correct+1, strconv.FormatBool(q.Active()))
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	_ = f.SetColWidth(sheet, "A", "H", 22)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write excel: %w", err)
	}
	return nil
}
