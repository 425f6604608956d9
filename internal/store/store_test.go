package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/shelltutor/internal/model"
)

func sampleDocument() model.Document {
	when := time.Date(2024, 12, 22, 14, 30, 0, 0, time.UTC)
	doc := model.NewDocument([]string{"02_cmd_basics", "03_powershell_basics"})
	doc.UserProgress["user_20241222_abcd1234"] = map[string]*model.ModuleProgress{
		"02_cmd_basics": {
			SectionsCompleted: []string{"cmd_basics_viewed", "quiz_completed"},
			QuizScores: []model.QuizResult{
				{Score: 85, MaxScore: 100, Percentage: 85, Date: when},
			},
			TimeSpent:    42.5,
			LastAccessed: &when,
		},
	}
	doc.CommandsPracticed["cmd:dir"] = []model.PracticeAttempt{
		{Timestamp: when, Success: true, Dialect: "cmd", User: "user_20241222_abcd1234"},
	}
	return doc
}

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend("")
	require.NoError(t, err)
	assert.Equal(t, BackendJSON, b)

	b, err = ParseBackend(" SQLite ")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, b)

	_, err = ParseBackend("redis")
	assert.Error(t, err)
}

func TestBackendsRoundTrip(t *testing.T) {
	for _, backend := range []Backend{BackendJSON, BackendSQLite} {
		t.Run(string(backend), func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "nested", "progress."+string(backend))
			s, err := Open(backend, path)
			require.NoError(t, err)
			defer func() {
				require.NoError(t, s.Close())
			}()
			assert.Equal(t, path, s.Path())

			empty, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, empty.UserProgress)
			assert.NotNil(t, empty.CommandsPracticed)

			want := sampleDocument()
			require.NoError(t, s.Save(ctx, want))
			got, err := s.Load(ctx)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("document mismatch (-want +got):\n%s", diff)
			}

			// A second save replaces the first.
			want.UserProgress = map[string]map[string]*model.ModuleProgress{}
			require.NoError(t, s.Save(ctx, want))
			got, err = s.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, got.UserProgress)
			assert.Len(t, got.CommandsPracticed, 1)
		})
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFile(filepath.Join(dir, "progress.json"))
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), sampleDocument()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "progress.json", entries[0].Name())
}

func TestFileStoreReadsLegacyKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	data := `{
  "user_progress": {"u1": {"cmd_basics": {"sections_completed": ["x"], "quiz_scores": [], "time_spent": 0, "last_accessed": null}}},
  "module_completion": {"01_intro": []},
  "quiz_scores": {},
  "commands_practiced": {}
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	s, err := OpenFile(path)
	require.NoError(t, err)
	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Contains(t, doc.UserProgress, "u1")
	assert.Equal(t, []string{"x"}, doc.UserProgress["u1"]["cmd_basics"].SectionsCompleted)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	s, err := OpenFile(path)
	require.NoError(t, err)
	_, err = s.Load(context.Background())
	assert.Error(t, err)
}

func TestFileStoreUnwritable(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFile(filepath.Join(dir, "progress.json"))
	require.NoError(t, err)
	// Replace the directory with a file so the temp file cannot be created.
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte("x"), 0o644))
	assert.Error(t, s.Save(context.Background(), sampleDocument()))
}

func TestSQLiteSaveCount(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, s.Close())
	}()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Save(ctx, sampleDocument()))
	}
	n, err := s.SaveCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
