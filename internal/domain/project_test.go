package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	t.Parallel()

	t.Run("valid project", func(t *testing.T) {
		t.Parallel()

		project, err := NewProject("Biology 101", "Cell biology notes")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, project.ID)
		assert.Equal(t, "Biology 101", project.Title)
		assert.Equal(t, "Cell biology notes", project.Description)
		assert.False(t, project.CreatedAt.IsZero())
	})

	t.Run("empty title", func(t *testing.T) {
		t.Parallel()

		project, err := NewProject("   ", "")
		assert.ErrorIs(t, err, ErrProjectTitleEmpty)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Nil(t, project)
	})
}

func TestProjectRename(t *testing.T) {
	t.Parallel()

	project, err := NewProject("Old title", "desc")
	require.NoError(t, err)

	require.NoError(t, project.Rename("New title", "new desc"))
	assert.Equal(t, "New title", project.Title)
	assert.Equal(t, "new desc", project.Description)

	err = project.Rename("", "kept")
	assert.ErrorIs(t, err, ErrProjectTitleEmpty)
	assert.Equal(t, "New title", project.Title, "failed rename must not modify the title")
	assert.Equal(t, "new desc", project.Description, "failed rename must not modify the description")
}

func TestNewFile(t *testing.T) {
	t.Parallel()

	projectID := uuid.New()

	file, err := NewFile(projectID, "notes.pdf", "uploads/abc_notes.pdf", "application/pdf", 2048)
	require.NoError(t, err)
	assert.Equal(t, projectID, file.ProjectID)
	assert.Equal(t, "notes.pdf", file.OriginalFilename)
	assert.EqualValues(t, 2048, file.Size)

	_, err = NewFile(uuid.Nil, "notes.pdf", "uploads/x", "", 0)
	assert.ErrorIs(t, err, ErrFileProjectIDEmpty)

	_, err = NewFile(projectID, "", "uploads/x", "", 0)
	assert.ErrorIs(t, err, ErrFileNameEmpty)

	_, err = NewFile(projectID, "notes.pdf", "", "", 0)
	assert.ErrorIs(t, err, ErrFilePathEmpty)
}
