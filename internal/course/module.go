// Package course describes the modules of the course and their content.
package course

import "strings"

// ModuleID is the canonical identifier of a course module.
type ModuleID string

const (
	Intro            ModuleID = "01_intro"
	CmdBasics        ModuleID = "02_cmd_basics"
	PowerShellBasics ModuleID = "03_powershell_basics"
	IntermediateCmd  ModuleID = "04_intermediate_cmd"
	IntermediatePS   ModuleID = "05_intermediate_ps"
	AdvancedCmd      ModuleID = "06_advanced_cmd"
	AdvancedPS       ModuleID = "07_advanced_ps"
	Evaluations      ModuleID = "08_evaluations"
	EvaluationsCmd   ModuleID = "08_evaluations_cmd"
	EvaluationsPS    ModuleID = "08_evaluations_ps"
	Summary          ModuleID = "09_summary"
)

// PassPercentage is the quiz score at which a module counts as completed.
const PassPercentage = 70.0

// QuizSection is the section recorded when a quiz is passed.
const QuizSection = "quiz_completed"

var order = []ModuleID{
	Intro,
	CmdBasics,
	PowerShellBasics,
	IntermediateCmd,
	IntermediatePS,
	AdvancedCmd,
	AdvancedPS,
	Evaluations,
	EvaluationsCmd,
	EvaluationsPS,
	Summary,
}

var mainModules = []ModuleID{
	CmdBasics,
	PowerShellBasics,
	IntermediateCmd,
	IntermediatePS,
	AdvancedCmd,
	AdvancedPS,
	Evaluations,
	EvaluationsCmd,
	EvaluationsPS,
}

// Identifiers written by earlier releases of the course.
var aliases = map[string]ModuleID{
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

// All returns every module in course order.
func All() []ModuleID {
	return append([]ModuleID(nil), order...)
}

// MainModules returns the modules that count towards overall progress.
func MainModules() []ModuleID {
	return append([]ModuleID(nil), mainModules...)
}

// Aliases returns the historical identifiers and their canonical modules.
func Aliases() map[string]ModuleID {
	out := make(map[string]ModuleID, len(aliases))
	for k, v := range aliases {
		out[k] = v
	}
	return out
}

// IsMain reports whether id counts towards overall progress.
func (id ModuleID) IsMain() bool {
	for _, m := range mainModules {
		if m == id {
			return true
		}
	}
	return false
}

// Valid reports whether id is a canonical module.
func (id ModuleID) Valid() bool {
	return indexOf(id) >= 0
}

func (id ModuleID) String() string {
	return string(id)
}

// Normalize maps a canonical or historical identifier to its module.
// Unknown identifiers return false.
func Normalize(raw string) (ModuleID, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", false
	}
	if id := ModuleID(key); id.Valid() {
		return id, true
	}
	id, ok := aliases[key]
	return id, ok
}

// Next returns the module after id in course order.
func Next(id ModuleID) (ModuleID, bool) {
	i := indexOf(id)
	if i < 0 || i == len(order)-1 {
		return "", false
	}
	return order[i+1], true
}

// Previous returns the module before id in course order.
func Previous(id ModuleID) (ModuleID, bool) {
	i := indexOf(id)
	if i <= 0 {
		return "", false
	}
	return order[i-1], true
}

func indexOf(id ModuleID) int {
	for i, m := range order {
		if m == id {
			return i
		}
	}
	return -1
}
