package shell

import (
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/shelltutor/internal/model"
)

// ResultKind tells apart the outcomes of an executed line.
type ResultKind int

const (
	ResultOK ResultKind = iota
	ResultEmpty
	ResultUnknown
	ResultMissingArgument
)

func (k ResultKind) String() string {
	switch k {
	case ResultEmpty:
		return "empty"
	case ResultUnknown:
		return "unknown"
	case ResultMissingArgument:
		return "missing-argument"
	default:
		return "ok"
	}
}

// Recognized reports whether the head matched a catalog entry.
func (k ResultKind) Recognized() bool {
	return k == ResultOK || k == ResultMissingArgument
}

const emptyCommandMessage = "No command entered."

// Result is what the console shows for one line.
type Result struct {
	Command     model.ClassifiedCommand
	Output      string
	Kind        ResultKind
	Suggestions []string
	Description string
}

// Executor answers console lines from the static catalogs.
type Executor struct {
	now func() time.Time
}

// Option configures an Executor.
type Option func(*Executor)

// WithClock replaces time.Now for the date and time renderers.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		if now != nil {
			e.now = now
		}
	}
}

// NewExecutor returns an executor using the wall clock unless overridden.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs raw as a command of dialect d.
func (e *Executor) Execute(raw string, d model.Dialect) Result {
	cmd := parseAs(raw, d)
	res := Result{Command: cmd}
	if cmd.Head == "" {
		res.Output = emptyCommandMessage
		res.Kind = ResultEmpty
		return res
	}

	entry, ok := CatalogFor(d).Lookup(cmd.Head)
	if !ok {
		// The message quotes the head as typed.
		typed := strings.Fields(raw)[0]
		res.Kind = ResultUnknown
		res.Suggestions = Suggest(cmd.Head, d)
		res.Output = unknownMessage(typed, d)
		if len(res.Suggestions) > 0 {
			res.Output += "\nSuggestions: " + strings.Join(res.Suggestions, ", ")
		}
		return res
	}

	res.Description = entry.Description
	res.Output, res.Kind = entry.render(renderInput{entry: entry, args: cmd.Args, now: e.now()})
	return res
}

// Run executes raw and returns only the text to display.
func (e *Executor) Run(raw string, d model.Dialect) string {
	return e.Execute(raw, d).Output
}

func unknownMessage(head string, d model.Dialect) string {
	if d == model.Structured {
		return fmt.Sprintf("The term '%s' is not recognized as the name of a cmdlet, function, script file, or operable program.", head)
	}
	return fmt.Sprintf("'%s' is not recognized as an internal or external command,\noperable program or batch file.", head)
}
