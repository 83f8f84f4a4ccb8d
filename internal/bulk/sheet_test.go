package bulk

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tithmeassambo-coder/QCM/internal/game"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestWriteSheet_ReadsBack(t *testing.T) {
	in := []game.Question{
		{Subject: "ភូមិវិទ្យា", Text: "ល្បឿនពន្លឺ?", Options: []string{"a", "b", "c", "d"}, Correct: 2, IsActive: game.Bool(true)},
		{Subject: "Math", Text: "2+2?", Options: []string{"3", "4", "", ""}, Correct: 1, IsActive: game.Bool(false)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSheet(&buf, in))

	got, err := ParseSheet(&buf, "")
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestParseSheet_DefaultsAndSkips(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Question", "Option_1", "Option_2", "Correct"},
		{"Capital of France?", "Paris", "Rome", 1},
		{"", "", "", ""},
		{"Stem only", "", "", 2},
	})

	got, err := ParseSheet(buf, "Geo")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Geo", got[0].Subject)
	require.Equal(t, []string{"Paris", "Rome", "", ""}, got[0].Options)
	require.Equal(t, 0, got[0].Correct)
	require.Nil(t, got[0].IsActive)
}

func TestParseSheet_RowErrorsRejectWholeImport(t *testing.T) {
	buf := workbook(t, [][]any{
		{"subject", "question", "option_1", "option_2", "option_3", "option_4", "correct", "is_active"},
		{"Math", "ok", "a", "b", "c", "d", 1, "true"},
		{"Math", "bad correct", "a", "b", "c", "d", 7, ""},
		{"Math", "bad flag", "a", "b", "c", "d", 2, "maybe"},
	})

	got, err := ParseSheet(buf, "")
	require.Nil(t, got)
	require.ErrorIs(t, err, ErrParse)

	var se *SheetError
	require.True(t, errors.As(err, &se))
	require.Len(t, se.Rows, 2)
	require.Equal(t, 3, se.Rows[0].Row)
	require.Equal(t, 4, se.Rows[1].Row)
}

func TestParseSheet_MissingColumn(t *testing.T) {
	buf := workbook(t, [][]any{
		{"subject", "question"},
		{"Math", "Q"},
	})
	_, err := ParseSheet(buf, "")
	require.ErrorIs(t, err, ErrParse)
	require.Contains(t, err.Error(), "option_1")
}

func TestParseSheet_NotAWorkbook(t *testing.T) {
	_, err := ParseSheet(strings.NewReader("plain text"), "")
	require.ErrorIs(t, err, ErrParse)
}

func TestParseJSONReader(t *testing.T) {
	qs, err := ParseJSONReader(strings.NewReader(`[{"subject":"Bio","question":"Q","options":["a","b","c","d"],"correct":2}]`))
	require.NoError(t, err)
	require.Len(t, qs, 1)
	require.Equal(t, 2, qs[0].Correct)

	_, err = ParseJSONReader(strings.NewReader(`{"subject":"Bio"}`))
	require.ErrorIs(t, err, ErrParse)

	_, err = ParseJSONReader(strings.NewReader("   "))
	require.ErrorIs(t, err, ErrEmptyInput)
}
