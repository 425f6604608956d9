package shell

import (
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/shelltutor/internal/model"
)

type renderInput struct {
	entry Entry
	args  []string
	now   time.Time
}

type renderFunc func(in renderInput) (string, ResultKind)

// Entry is a recognised command of one dialect.
type Entry struct {
	Name        string
	Display     string
	Description string
	render      renderFunc
}

// Catalog is an immutable table of recognised commands for one dialect.
// It is built once at package init and only exposes read accessors.
type Catalog struct {
	dialect model.Dialect
	entries map[string]Entry
	names   []string
}

func newCatalog(dialect model.Dialect, entries []Entry) *Catalog {
	c := &Catalog{
		dialect: dialect,
		entries: make(map[string]Entry, len(entries)),
		names:   make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		if _, dup := c.entries[e.Name]; dup {
			panic("shell: duplicate catalog entry " + e.Name)
		}
		if e.Display == "" {
			e.Display = e.Name
		}
		if e.render == nil {
			e.render = completed
		}
		c.entries[e.Name] = e
		c.names = append(c.names, e.Name)
	}
	sort.Strings(c.names)
	return c
}

// Dialect returns the dialect the catalog belongs to.
func (c *Catalog) Dialect() model.Dialect {
	return c.dialect
}

// Lookup finds a command by its case-folded name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	e, ok := c.entries[strings.ToLower(name)]
	return e, ok
}

// Names returns the sorted command names.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of commands.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// CatalogFor returns the static catalog of a dialect.
func CatalogFor(d model.Dialect) *Catalog {
	if d == model.Structured {
		return structuredCatalog
	}
	return legacyCatalog
}

func fixed(text string) renderFunc {
	return func(renderInput) (string, ResultKind) {
		return text, ResultOK
	}
}

func silent(renderInput) (string, ResultKind) {
	return "", ResultOK
}

func echoArgs(in renderInput) (string, ResultKind) {
	return strings.Join(in.args, " "), ResultOK
}

func clock(layout string, format func(string) string) renderFunc {
	return func(in renderInput) (string, ResultKind) {
		return format(in.now.Format(layout)), ResultOK
	}
}

// firstArg renders body with the first argument, or reports missing when
// there is none.
func firstArg(missing string, body func(arg string) string) renderFunc {
	return func(in renderInput) (string, ResultKind) {
		if len(in.args) == 0 {
			return missing, ResultMissingArgument
		}
		return body(in.args[0]), ResultOK
	}
}

// silentWithArg prints nothing on success, like del or mkdir.
func silentWithArg(missing string) renderFunc {
	return firstArg(missing, func(string) string { return "" })
}

// argOr renders body with the first argument, or fallback without one.
func argOr(fallback string, body func(arg string) string) renderFunc {
	return func(in renderInput) (string, ResultKind) {
		if len(in.args) == 0 {
			return fallback, ResultOK
		}
		return body(in.args[0]), ResultOK
	}
}

func completed(in renderInput) (string, ResultKind) {
	if strings.Contains(in.entry.Display, "-") {
		return "Cmdlet " + in.entry.Display + " completed successfully.", ResultOK
	}
	return "Command " + in.entry.Display + " completed successfully.", ResultOK
}
