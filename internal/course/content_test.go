package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/shelltutor/internal/model"
	"github.com/verte-zerg/shelltutor/internal/shell"
)

func TestLoadEmbeddedContent(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	mods := c.Modules()
	require.Len(t, mods, len(All()))
	for i, m := range mods {
		assert.Equal(t, All()[i], m.ID)
		assert.NotEmpty(t, m.Title, m.ID)
	}

	for _, id := range MainModules() {
		m, ok := c.Module(id)
		require.True(t, ok, id)
		assert.NotEmpty(t, m.Quiz, "main module %s needs a quiz", id)
	}
}

func TestExercisesRunInSimulator(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	e := shell.NewExecutor()
	for _, m := range c.Modules() {
		for _, ex := range m.Exercises {
			res := e.Execute(ex.Example, ex.ConsoleDialect())
			assert.True(t, res.Kind.Recognized(), "%s: %q", m.ID, ex.Example)
			assert.True(t, ex.Matches(ex.Example), "%s: %q", m.ID, ex.Example)
		}
	}
	assert.NotEmpty(t, c.Exercises(model.Legacy))
	assert.NotEmpty(t, c.Exercises(model.Structured))
}

func TestLookupUsesAliases(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	m, ok := c.Lookup("ps_basics")
	require.True(t, ok)
	assert.Equal(t, PowerShellBasics, m.ID)

	d, ok := m.ConsoleDialect()
	require.True(t, ok)
	assert.Equal(t, model.Structured, d)

	_, ok = c.Lookup("missing")
	assert.False(t, ok)
}

func TestParseModuleRejectsBadContent(t *testing.T) {
	cases := map[string]string{
		"unknown id":     "id: 99_nope\ntitle: x\nsummary: y\n",
		"unknown field":  "id: 01_intro\ntitle: x\nsummary: y\ncolour: red\n",
		"answer missing": "id: 01_intro\ntitle: x\nsummary: y\nquiz:\n  - question: q\n    options: [a, b]\n    answer: c\n",
		"bad exercise":   "id: 02_cmd_basics\ntitle: x\nsummary: y\nexercises:\n  - description: d\n    example: dir\n    command: cd\n    dialect: cmd\n",
		"empty":          "",
	}
	for name, doc := range cases {
		_, err := parseModule([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestExerciseMatches(t *testing.T) {
	ex := Exercise{Command: "Get-Process", Example: "Get-Process", Dialect: "powershell"}
	assert.True(t, ex.Matches("get-process | Sort-Object CPU"))
	assert.False(t, ex.Matches("Get-Service"))
	assert.False(t, ex.Matches("   "))
	assert.Equal(t, model.Structured, ex.ConsoleDialect())
}

func TestEveryContentFileParses(t *testing.T) {
	entries, err := contentFS.ReadDir("content")
	require.NoError(t, err)
	require.Len(t, entries, len(All()))
	for _, entry := range entries {
		data, err := contentFS.ReadFile("content/" + entry.Name())
		require.NoError(t, err)
		_, err = parseModule(data)
		assert.NoError(t, err, entry.Name())
	}
}

func TestHelpSwitchOptionsSurviveParsing(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	for id, option := range map[ModuleID]string{
		PowerShellBasics: "Get-Process -?",
		Evaluations:      "Get-Help -?",
	} {
		m, ok := c.Module(id)
		require.True(t, ok, id)
		found := false
		for _, q := range m.Quiz {
			for _, o := range q.Options {
				if o == option {
					found = true
				}
			}
		}
		assert.True(t, found, "%s should offer %q", id, option)
	}
}

func TestConsoleModule(t *testing.T) {
	assert.Equal(t, CmdBasics, ConsoleModule(model.Legacy))
	assert.Equal(t, PowerShellBasics, ConsoleModule(model.Structured))
}
