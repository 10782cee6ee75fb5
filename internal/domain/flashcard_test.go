package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlashcard(t *testing.T) {
	t.Parallel()

	projectID := uuid.New()

	testCases := []struct {
		name     string
		question string
		answer   string
		level    int
		wantErr  error
	}{
		{
			name:     "valid card",
			question: "What is the powerhouse of the cell?",
			answer:   "The mitochondria.",
			level:    1,
		},
		{
			name:     "trims surrounding whitespace",
			question: "  What is ATP?  ",
			answer:   "\tAdenosine triphosphate.\n",
			level:    0,
		},
		{
			name:     "empty question",
			question: "   ",
			answer:   "An answer.",
			level:    0,
			wantErr:  ErrFlashcardQuestionEmpty,
		},
		{
			name:     "empty answer",
			question: "A question?",
			answer:   "",
			level:    0,
			wantErr:  ErrFlashcardAnswerEmpty,
		},
		{
			name:     "level above range",
			question: "A question?",
			answer:   "An answer.",
			level:    4,
			wantErr:  ErrInvalidLevel,
		},
		{
			name:     "level below range",
			question: "A question?",
			answer:   "An answer.",
			level:    -1,
			wantErr:  ErrInvalidLevel,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			card, err := NewFlashcard(projectID, tc.question, tc.answer, tc.level)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, ErrValidation, "field errors must read as validation failures")
				assert.Nil(t, card)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, card)
			assert.NotEqual(t, uuid.Nil, card.ID)
			assert.Equal(t, projectID, card.ProjectID)
			assert.NotEmpty(t, card.Question)
			assert.NotEmpty(t, card.Answer)
			assert.Equal(t, tc.level, card.Level)
			assert.Zero(t, card.Important)
			assert.Zero(t, card.ReviewCount)
		})
	}
}

func TestNewFlashcardRequiresProject(t *testing.T) {
	t.Parallel()

	card, err := NewFlashcard(uuid.Nil, "Q?", "A.", 0)
	assert.ErrorIs(t, err, ErrFlashcardProjectIDEmpty)
	assert.Nil(t, card)
}

func TestFlashcardSetLevel(t *testing.T) {
	t.Parallel()

	t.Run("increments review count when not supplied", func(t *testing.T) {
		t.Parallel()

		card, err := NewFlashcard(uuid.New(), "Q?", "A.", 0)
		require.NoError(t, err)

		require.NoError(t, card.SetLevel(2, nil))
		assert.Equal(t, 2, card.Level)
		assert.Equal(t, 1, card.ReviewCount)

		require.NoError(t, card.SetLevel(3, nil))
		assert.Equal(t, 2, card.ReviewCount)
	})

	t.Run("uses explicit review count when supplied", func(t *testing.T) {
		t.Parallel()

		card, err := NewFlashcard(uuid.New(), "Q?", "A.", 0)
		require.NoError(t, err)

		count := 7
		require.NoError(t, card.SetLevel(1, &count))
		assert.Equal(t, 1, card.Level)
		assert.Equal(t, 7, card.ReviewCount)
	})

	t.Run("rejects out-of-range level", func(t *testing.T) {
		t.Parallel()

		card, err := NewFlashcard(uuid.New(), "Q?", "A.", 0)
		require.NoError(t, err)

		assert.ErrorIs(t, card.SetLevel(5, nil), ErrInvalidLevel)
		assert.Equal(t, 0, card.Level)
		assert.Equal(t, 0, card.ReviewCount)
	})

	t.Run("rejects negative explicit review count", func(t *testing.T) {
		t.Parallel()

		card, err := NewFlashcard(uuid.New(), "Q?", "A.", 0)
		require.NoError(t, err)

		count := -1
		assert.ErrorIs(t, card.SetLevel(1, &count), ErrValidation)
	})
}

func TestGeneratedFlashcardValid(t *testing.T) {
	t.Parallel()

	assert.True(t, GeneratedFlashcard{Question: "Q?", Answer: "A."}.Valid())
	assert.False(t, GeneratedFlashcard{Question: "  ", Answer: "A."}.Valid())
	assert.False(t, GeneratedFlashcard{Question: "Q?", Answer: "\n"}.Valid())
	assert.False(t, GeneratedFlashcard{}.Valid())
}

func TestTextChunkEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, TextChunk{Text: ""}.Empty())
	assert.True(t, TextChunk{Text: " \t\n"}.Empty())
	assert.False(t, TextChunk{Text: "content"}.Empty())
}
