package bulk

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tithmeassambo-coder/QCM/internal/game"
)

func TestParse_EnglishBlock(t *testing.T) {
	qs, err := Parse("1. What is 2+2?\nA. 3\nB. 4 (correct)\nC. 5\nD. 6", "Math")
	require.NoError(t, err)
	require.Len(t, qs, 1)

	got := qs[0]
	require.Equal(t, "Math", got.Subject)
	require.Equal(t, "What is 2+2?", got.Text)
	require.Equal(t, []string{"3", "4", "5", "6"}, got.Options)
	require.Equal(t, 1, got.Correct)
	require.True(t, got.Active())
}

func TestParse_KhmerBlocks(t *testing.T) {
	text := "១. តើ ២ + ២ ស្មើប៉ុន្មាន?\nក. ៣\nខ. ៤\nគ. ៥ (ចម្លើយត្រឹមត្រូវ)\nឃ. ៦\n\n\n" +
		"២) សំណួរទីពីរ\nក) មួយ (ចម្លើយត្រឹមត្រូវ)\nខ) ពីរ"

	qs, err := Parse(text, "")
	require.NoError(t, err)
	require.Len(t, qs, 2)

	require.Equal(t, FallbackSubject, qs[0].Subject)
	require.Equal(t, "តើ ២ + ២ ស្មើប៉ុន្មាន?", qs[0].Text)
	require.Equal(t, []string{"៣", "៤", "៥", "៦"}, qs[0].Options)
	require.Equal(t, 2, qs[0].Correct)

	require.Equal(t, "សំណួរទីពីរ", qs[1].Text)
	require.Equal(t, []string{"មួយ", "ពីរ", "", ""}, qs[1].Options)
	require.Equal(t, 0, qs[1].Correct)
}

func TestParseText_ContinuationLinesJoinPreviousOption(t *testing.T) {
	qs := ParseText("Q?\nA. first\nline two\nB. second", "S")
	require.Len(t, qs, 1)
	require.Equal(t, []string{"first line two", "second", "", ""}, qs[0].Options)
}

func TestParseText_LastMarkerWins(t *testing.T) {
	qs := ParseText("Q?\nA. x (correct)\nB. y\nC. z (CORRECT)\nD. w", "S")
	require.Len(t, qs, 1)
	require.Equal(t, 2, qs[0].Correct)
	require.Equal(t, []string{"x", "y", "z", "w"}, qs[0].Options)
}

func TestParseText_NoMarkerDefaultsToFirst(t *testing.T) {
	qs := ParseText("Q?\nA. x\nB. y", "S")
	require.Len(t, qs, 1)
	require.Equal(t, 0, qs[0].Correct)
}

func TestParseText_ExtraOptionsTruncated(t *testing.T) {
	qs := ParseText("Q?\nA. 1\nB. 2\nC. 3\nD. 4\na. 5 (correct)", "S")
	require.Len(t, qs, 1)
	require.Equal(t, []string{"1", "2", "3", "4"}, qs[0].Options)
	// a marker on a dropped option is ignored
	require.Equal(t, 0, qs[0].Correct)
}

func TestParseText_SkipsBlocksWithoutOptions(t *testing.T) {
	text := "just a heading\n\nQ?\nno options here\n\n3. Real one\nA. yes\nB. no"
	qs := ParseText(text, "S")
	require.Len(t, qs, 1)
	require.Equal(t, "Real one", qs[0].Text)
}

func TestParseText_CRLFAndStemPrefixes(t *testing.T) {
	qs := ParseText("IV) Roman\r\nA. a\r\n\r\nb. Letter stem\r\nA. a\r\n\r\n12 . Spaced\r\nA. a", "S")
	require.Len(t, qs, 3)
	require.Equal(t, "Roman", qs[0].Text)
	require.Equal(t, "Letter stem", qs[1].Text)
	require.Equal(t, "Spaced", qs[2].Text)
}

func TestParseText_StemWithoutEnumeratorKept(t *testing.T) {
	qs := ParseText("e.g. which one?\nA. a", "S")
	require.Len(t, qs, 1)
	require.Equal(t, "e.g. which one?", qs[0].Text)
}

func TestParseText_RomanNumeralsOnly(t *testing.T) {
	stems := map[string]string{
		"XII. Twelve":        "Twelve",
		"xiv) Fourteen":      "Fourteen",
		"Mix) the colors?":   "Mix) the colors?",
		"mix. the colors?":   "mix. the colors?",
		"DIV) how to divide": "DIV) how to divide",
	}
	for stem, want := range stems {
		qs := ParseText(stem+"\nA. a", "S")
		require.Len(t, qs, 1, stem)
		require.Equal(t, want, qs[0].Text, stem)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse("  \n\t ", "S")
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestParse_NothingRecognised(t *testing.T) {
	qs, err := Parse("hello\n\nworld", "S")
	require.NoError(t, err)
	require.Empty(t, qs)
}

func TestParse_JSONArray(t *testing.T) {
	qs, err := Parse(`  [{"subject":"Bio","question":"Cells?","options":["a","b","c","d"],"correct":3,"isActive":false},
		{"subject":"Bio","question":"DNA?","options":["a","b","c","d"],"correct":0}]`, "ignored")
	require.NoError(t, err)
	require.Len(t, qs, 2)
	require.Equal(t, "Bio", qs[0].Subject)
	require.Equal(t, 3, qs[0].Correct)
	require.False(t, qs[0].Active())
	require.Nil(t, qs[1].IsActive)
}

func TestParse_JSONObject(t *testing.T) {
	qs, err := Parse(`{"subject":"Bio","question":"Cells?","options":["a","b","c","d"],"correct":1}`, "")
	require.NoError(t, err)
	require.Equal(t, []game.Question{{
		Subject: "Bio",
		Text:    "Cells?",
		Options: []string{"a", "b", "c", "d"},
		Correct: 1,
	}}, qs)
}

func TestParse_MalformedJSONIsAllOrNothing(t *testing.T) {
	qs, err := Parse(`[{"subject":"Bio","question":"ok","options":["a","b","c","d"],"correct":0}, {broken`, "")
	require.ErrorIs(t, err, ErrParse)
	require.Nil(t, qs)
}
