package generation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	t.Run("recovers object wrapped in prose", func(t *testing.T) {
		t.Parallel()

		original := map[string]any{
			"concepts": []any{
				map[string]any{"id": "c1", "confidence": 0.9},
			},
		}
		embedded, err := json.Marshal(original)
		require.NoError(t, err)

		raw := "Sure! Here is the JSON you asked for:\n" + string(embedded) + "\nLet me know if you need anything else."

		extracted, err := ExtractJSON(raw)
		require.NoError(t, err)

		var roundTripped map[string]any
		require.NoError(t, json.Unmarshal(extracted, &roundTripped))
		assert.Equal(t, original, roundTripped)
	})

	t.Run("bare object", func(t *testing.T) {
		t.Parallel()

		extracted, err := ExtractJSON(`{"a":1}`)
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, string(extracted))
	})

	t.Run("markdown fenced object", func(t *testing.T) {
		t.Parallel()

		extracted, err := ExtractJSON("```json\n{\"a\": 1}\n```")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, string(extracted))
	})

	t.Run("no opening brace", func(t *testing.T) {
		t.Parallel()

		_, err := ExtractJSON("there is no JSON here }")
		assert.ErrorIs(t, err, ErrNoJSONFound)
	})

	t.Run("no closing brace", func(t *testing.T) {
		t.Parallel()

		_, err := ExtractJSON(`{"a": 1`)
		assert.ErrorIs(t, err, ErrNoJSONFound)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		_, err := ExtractJSON("")
		assert.ErrorIs(t, err, ErrNoJSONFound)
	})

	t.Run("invalid JSON between delimiters", func(t *testing.T) {
		t.Parallel()

		_, err := ExtractJSON(`{"a": }`)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("multiple disjoint objects fail the spanned parse", func(t *testing.T) {
		t.Parallel()

		// First '{' to last '}' spans both objects plus the prose between
		// them, which is not valid JSON.
		_, err := ExtractJSON(`{"a":1} and also {"b":2}`)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}

func TestAsFloat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{name: "number", raw: `0.85`, want: 0.85},
		{name: "integer", raw: `1`, want: 1},
		{name: "quoted number", raw: `"0.7"`, want: 0.7},
		{name: "quoted number with spaces", raw: `" 0.6 "`, want: 0.6},
		{name: "missing defaults to zero", raw: ``, want: 0},
		{name: "non-numeric string", raw: `"high"`, wantErr: true},
		{name: "boolean", raw: `true`, wantErr: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := asFloat(json.RawMessage(tc.raw))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}
