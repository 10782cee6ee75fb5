package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/avollmer/studydeck/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "nil stays nil",
			err:  nil,
			want: nil,
		},
		{
			name: "no rows maps to not found",
			err:  sql.ErrNoRows,
			want: store.ErrNotFound,
		},
		{
			name: "unique violation maps to duplicate",
			err:  &pgconn.PgError{Code: uniqueViolationCode},
			want: store.ErrDuplicate,
		},
		{
			name: "foreign key violation maps to invalid entity",
			err:  &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "flashcards_project_id_fkey"},
			want: store.ErrInvalidEntity,
		},
		{
			name: "check violation maps to invalid entity",
			err:  &pgconn.PgError{Code: checkViolationCode, ConstraintName: "flashcards_level_check"},
			want: store.ErrInvalidEntity,
		},
		{
			name: "not null violation maps to invalid entity",
			err:  &pgconn.PgError{Code: notNullViolationCode, ColumnName: "question"},
			want: store.ErrInvalidEntity,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tc.err)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}
}

func TestMapErrorPassesThroughUnknownErrors(t *testing.T) {
	t.Parallel()

	original := fmt.Errorf("connection refused")
	assert.Equal(t, original, MapError(original))
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	fkErr := &pgconn.PgError{Code: foreignKeyViolationCode}
	assert.True(t, IsForeignKeyViolation(fkErr))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("wrapped: %w", fkErr)))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsForeignKeyViolation(errors.New("plain error")))
}

func TestStoreConstructorsRequireDB(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewPostgresProjectStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresFileStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresFlashcardStore(nil, nil) })
}
