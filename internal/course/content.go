package course

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/shelltutor/internal/model"
	"github.com/verte-zerg/shelltutor/internal/shell"
)

//go:embed content/*.yaml
var contentFS embed.FS

// Module is the content of one course module.
type Module struct {
	ID         ModuleID   `yaml:"id"`
	Title      string     `yaml:"title"`
	Short      string     `yaml:"short"`
	Dialect    string     `yaml:"dialect,omitempty"`
	Summary    string     `yaml:"summary"`
	Objectives []string   `yaml:"objectives,omitempty"`
	Sections   []Section  `yaml:"sections,omitempty"`
	Quiz       []Question `yaml:"quiz,omitempty"`
	Exercises  []Exercise `yaml:"exercises,omitempty"`
}

// Section is one lesson page, written in markdown.
type Section struct {
	Key   string `yaml:"key"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Question is a multiple choice quiz question.
type Question struct {
	Prompt      string   `yaml:"question"`
	Options     []string `yaml:"options"`
	Answer      string   `yaml:"answer"`
	Explanation string   `yaml:"explanation,omitempty"`
}

// Exercise asks the learner to type a command into a simulated console.
type Exercise struct {
	Description string `yaml:"description"`
	Example     string `yaml:"example"`
	Command     string `yaml:"command"`
	Dialect     string `yaml:"dialect"`
	Hint        string `yaml:"hint,omitempty"`
	Solution    string `yaml:"solution,omitempty"`
}

// ConsoleDialect returns the dialect the module practices, if it has one.
func (m *Module) ConsoleDialect() (model.Dialect, bool) {
	if m.Dialect == "" {
		return model.Legacy, false
	}
	d, err := model.ParseDialect(m.Dialect)
	return d, err == nil
}

// ConsoleModule is the basics module credited with free console time in d.
func ConsoleModule(d model.Dialect) ModuleID {
	if d == model.Structured {
		return PowerShellBasics
	}
	return CmdBasics
}

// Section finds a lesson section by key.
func (m *Module) Section(key string) (Section, bool) {
	for _, s := range m.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// ConsoleDialect returns the dialect the exercise is typed in.
func (e Exercise) ConsoleDialect() model.Dialect {
	d, err := model.ParseDialect(e.Dialect)
	if err != nil {
		return shell.Classify(e.Example)
	}
	return d
}

// Matches reports whether raw runs the command the exercise asks for.
func (e Exercise) Matches(raw string) bool {
	head := shell.Parse(raw).Head
	return head != "" && head == strings.ToLower(e.Command)
}

// Catalog holds the content of every module.
type Catalog struct {
	modules map[ModuleID]*Module
}

// Load parses the embedded course content.
func Load() (*Catalog, error) {
	entries, err := contentFS.ReadDir("content")
	if err != nil {
		return nil, fmt.Errorf("failed to read course content: %w", err)
	}
	c := &Catalog{modules: make(map[ModuleID]*Module, len(entries))}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}
		data, err := contentFS.ReadFile(path.Join("content", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		m, err := parseModule(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
		if _, dup := c.modules[m.ID]; dup {
			return nil, fmt.Errorf("duplicate module %s in %s", m.ID, entry.Name())
		}
		c.modules[m.ID] = m
	}
	for _, id := range order {
		if _, ok := c.modules[id]; !ok {
			return nil, fmt.Errorf("missing content for module %s", id)
		}
	}
	return c, nil
}

func parseModule(data []byte) (*Module, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var m Module
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Module) validate() error {
	if !m.ID.Valid() {
		return fmt.Errorf("unknown module id %q", m.ID)
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("module %s has no title", m.ID)
	}
	if m.Dialect != "" {
		if _, err := model.ParseDialect(m.Dialect); err != nil {
			return fmt.Errorf("module %s: %w", m.ID, err)
		}
	}
	seen := map[string]bool{}
	for _, s := range m.Sections {
		if s.Key == "" || seen[s.Key] {
			return fmt.Errorf("module %s has an empty or duplicate section key %q", m.ID, s.Key)
		}
		seen[s.Key] = true
	}
	for i, q := range m.Quiz {
		if len(q.Options) < 2 {
			return fmt.Errorf("module %s question %d needs at least two options", m.ID, i+1)
		}
		if !contains(q.Options, q.Answer) {
			return fmt.Errorf("module %s question %d: answer %q is not an option", m.ID, i+1, q.Answer)
		}
	}
	for i, e := range m.Exercises {
		if _, err := model.ParseDialect(e.Dialect); err != nil {
			return fmt.Errorf("module %s exercise %d: %w", m.ID, i+1, err)
		}
		if !e.Matches(e.Example) {
			return fmt.Errorf("module %s exercise %d: example %q does not run %q", m.ID, i+1, e.Example, e.Command)
		}
	}
	return nil
}

// Module returns the content of id.
func (c *Catalog) Module(id ModuleID) (*Module, bool) {
	m, ok := c.modules[id]
	return m, ok
}

// Lookup resolves a canonical or historical identifier to its content.
func (c *Catalog) Lookup(raw string) (*Module, bool) {
	id, ok := Normalize(raw)
	if !ok {
		return nil, false
	}
	return c.Module(id)
}

// Modules returns all modules in course order.
func (c *Catalog) Modules() []*Module {
	out := make([]*Module, 0, len(order))
	for _, id := range order {
		if m, ok := c.modules[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Exercises returns every exercise of the given dialect across the course.
func (c *Catalog) Exercises(d model.Dialect) []Exercise {
	var out []Exercise
	for _, m := range c.Modules() {
		for _, e := range m.Exercises {
			if e.ConsoleDialect() == d {
				out = append(out, e)
			}
		}
	}
	return out
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}
