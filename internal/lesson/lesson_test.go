package lesson

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/shelltutor/internal/course"
	"github.com/verte-zerg/shelltutor/internal/progress"
	"github.com/verte-zerg/shelltutor/internal/store"
)

var testModule = &course.Module{
	ID:         course.CmdBasics,
	Title:      "CMD Basic Commands",
	Summary:    "Navigate folders.",
	Objectives: []string{"List a directory."},
	Sections: []course.Section{
		{Key: "nav", Title: "Navigation", Body: "# Navigation\n\nUse `dir`.\n"},
		{Key: "files", Title: "Files", Body: "Use `del` to delete a file.\n"},
	},
	Exercises: []course.Exercise{
		{Description: "List files", Example: "dir", Command: "dir", Dialect: "cmd"},
	},
}

func TestMarkdownIncludesEverySection(t *testing.T) {
	md, err := Markdown(testModule)
	require.NoError(t, err)
	assert.Contains(t, md, "# CMD Basic Commands")
	assert.Contains(t, md, "## Objectives")
	assert.Contains(t, md, "- List a directory.")
	assert.Contains(t, md, "# Navigation")
	assert.NotContains(t, md, "## Navigation")
	assert.Contains(t, md, "## Files")
	assert.Contains(t, md, "- List files: `dir`")
	assert.Contains(t, md, "Next module: `03_powershell_basics`")
}

func TestMarkdownSelectedSections(t *testing.T) {
	md, err := Markdown(testModule, "files")
	require.NoError(t, err)
	assert.Contains(t, md, "## Files")
	assert.NotContains(t, md, "# Navigation")
	assert.NotContains(t, md, "## Objectives")

	_, err = Markdown(testModule, "missing")
	require.Error(t, err)
}

func TestShowMarksSections(t *testing.T) {
	st, err := store.OpenFile(filepath.Join(t.TempDir(), "progress.json"))
	require.NoError(t, err)
	ctx := context.Background()
	tr, err := progress.Open(ctx, st)
	require.NoError(t, err)
	sess := progress.Session{UserID: "u1"}

	r, err := NewRenderer(60, "notty")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Show(ctx, &buf, testModule, tr, sess, "nav"))
	assert.Contains(t, buf.String(), "Navigation")

	mp, ok := tr.ModuleProgress(sess, string(course.CmdBasics))
	require.True(t, ok)
	assert.Equal(t, []string{"nav"}, mp.SectionsCompleted)

	require.NoError(t, r.Show(ctx, &buf, testModule, tr, sess))
	mp, _ = tr.ModuleProgress(sess, string(course.CmdBasics))
	assert.ElementsMatch(t, []string{"nav", "files"}, mp.SectionsCompleted)
}
