package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainModules(t *testing.T) {
	mains := MainModules()
	require.Len(t, mains, 9)
	assert.NotContains(t, mains, Intro)
	assert.NotContains(t, mains, Summary)
	for _, id := range mains {
		assert.True(t, id.IsMain(), id)
		assert.True(t, id.Valid(), id)
	}

	mains[0] = "mutated"
	assert.Equal(t, CmdBasics, MainModules()[0])
}

func TestNormalizeCanonical(t *testing.T) {
	for _, id := range All() {
		got, ok := Normalize(string(id))
		require.True(t, ok, id)
		assert.Equal(t, id, got)
	}
	got, ok := Normalize("  02_CMD_Basics ")
	require.True(t, ok)
	assert.Equal(t, CmdBasics, got)
}

func TestNormalizeAliases(t *testing.T) {
	want := map[string]ModuleID{
		"intro":                   Intro,
		"cmd_basics":              CmdBasics,
		"ps_basics":               PowerShellBasics,
		"powershell_basics":       PowerShellBasics,
		"cmd_intermediate":        IntermediateCmd,
		"ps_intermediate":         IntermediatePS,
		"cmd_advanced":            AdvancedCmd,
		"ps_advanced":             AdvancedPS,
		"powershell_advanced":     AdvancedPS,
		"evaluations":             Evaluations,
		"general_eval":            Evaluations,
		"evaluation_cmd_advanced": EvaluationsCmd,
		"evaluation_ps_advanced":  EvaluationsPS,
		"summary":                 Summary,
	}
	assert.Equal(t, want, Aliases())
	for raw, id := range want {
		got, ok := Normalize(raw)
		require.True(t, ok, raw)
		assert.Equal(t, id, got, raw)
	}
}

func TestNormalizeEveryAliasTargetIsCanonical(t *testing.T) {
	for raw, id := range Aliases() {
		assert.True(t, id.Valid(), raw)
		assert.False(t, ModuleID(raw).Valid(), "alias %q shadows a canonical id", raw)
	}
}

func TestNormalizeUnknown(t *testing.T) {
	for _, raw := range []string{"", "  ", "debug_test", "10_debug", "cmd", "02"} {
		_, ok := Normalize(raw)
		assert.False(t, ok, raw)
	}
}

func TestNextPrevious(t *testing.T) {
	next, ok := Next(Intro)
	require.True(t, ok)
	assert.Equal(t, CmdBasics, next)

	next, ok = Next(Evaluations)
	require.True(t, ok)
	assert.Equal(t, EvaluationsCmd, next)

	_, ok = Next(Summary)
	assert.False(t, ok)

	prev, ok := Previous(Summary)
	require.True(t, ok)
	assert.Equal(t, EvaluationsPS, prev)

	_, ok = Previous(Intro)
	assert.False(t, ok)

	_, ok = Next("nope")
	assert.False(t, ok)
}
