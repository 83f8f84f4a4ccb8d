package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPartsFor(t *testing.T) {
	parts := PartsFor(makeQuestions(23))
	require.Equal(t, []Part{
		{Index: 0, Start: 1, End: 10},
		{Index: 1, Start: 11, End: 20},
		{Index: 2, Start: 21, End: 23},
	}, parts)
	require.Equal(t, 10, parts[0].Size())
	require.Equal(t, 10, parts[1].Size())
	require.Equal(t, 3, parts[2].Size())
}

func TestPartsFor_Empty(t *testing.T) {
	require.Empty(t, PartsFor(nil))
}

func TestPartsFor_ExactMultiple(t *testing.T) {
	parts := PartsFor(makeQuestions(20))
	require.Len(t, parts, 2)
	require.Equal(t, 20, parts[1].End)
}

func TestPartsFor_Deterministic(t *testing.T) {
	qs := makeQuestions(37)
	require.Equal(t, PartsFor(qs), PartsFor(qs))
}

func TestPartQuestions(t *testing.T) {
	qs := makeQuestions(23)

	require.Len(t, PartQuestions(qs, 0), 10)
	require.Equal(t, "Q11", PartQuestions(qs, 1)[0].Text)
	require.Len(t, PartQuestions(qs, 2), 3)
	require.Nil(t, PartQuestions(qs, 3))
	require.Nil(t, PartQuestions(qs, -1))
}

func TestQuestion_Active(t *testing.T) {
	require.True(t, Question{}.Active())
	require.True(t, Question{IsActive: Bool(true)}.Active())
	require.False(t, Question{IsActive: Bool(false)}.Active())
}

func TestQuestion_Validate(t *testing.T) {
	q := Question{Text: "Q", Options: []string{"a", "b", "c", "d"}, Correct: 3}
	require.NoError(t, q.Validate())

	q.Correct = 4
	require.ErrorIs(t, q.Validate(), ErrInvalidQuestion)

	q.Correct = 0
	q.Options = q.Options[:3]
	require.ErrorIs(t, q.Validate(), ErrInvalidQuestion)
}
