// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Dialect identifies one of the two simulated Windows shells.
type Dialect int

const (
	// Legacy is the verb-first command prompt (cmd.exe).
	Legacy Dialect = iota
	// Structured is the verb-noun cmdlet shell (PowerShell).
	Structured
)

// String returns the short name used in config files and practice keys.
func (d Dialect) String() string {
	if d == Structured {
		return "powershell"
	}
	return "cmd"
}

// Title returns a display name.
func (d Dialect) Title() string {
	if d == Structured {
		return "PowerShell"
	}
	return "CMD"
}

// ParseDialect accepts the names users type on the command line.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cmd", "legacy", "batch":
		return Legacy, nil
	case "ps", "powershell", "pwsh", "structured":
		return Structured, nil
	default:
		return Legacy, fmt.Errorf("unknown dialect %q (use cmd or powershell)", s)
	}
}

// ClassifiedCommand is a raw console line split into head and arguments.
type ClassifiedCommand struct {
	Raw     string
	Dialect Dialect
	Head    string
	Args    []string
}

// TranscriptEntry is one executed command and the text it produced.
type TranscriptEntry struct {
	Command string
	Output  string
}

// QuizResult is an immutable quiz outcome.
type QuizResult struct {
	Score      float64   `json:"score"`
	MaxScore   float64   `json:"max_score"`
	Percentage float64   `json:"percentage"`
	Date       time.Time `json:"date"`
}

// ModuleProgress tracks one user's activity in one module.
type ModuleProgress struct {
	SectionsCompleted []string     `json:"sections_completed"`
	QuizScores        []QuizResult `json:"quiz_scores"`
	TimeSpent         float64      `json:"time_spent"`
	LastAccessed      *time.Time   `json:"last_accessed"`
}

// HasSection reports whether section was already completed.
func (p ModuleProgress) HasSection(section string) bool {
	for _, s := range p.SectionsCompleted {
		if s == section {
			return true
		}
	}
	return false
}

// BestPercentage returns the highest quiz percentage and whether any quiz exists.
func (p ModuleProgress) BestPercentage() (float64, bool) {
	if len(p.QuizScores) == 0 {
		return 0, false
	}
	best := p.QuizScores[0].Percentage
	for _, q := range p.QuizScores[1:] {
		if q.Percentage > best {
			best = q.Percentage
		}
	}
	return best, true
}

// PracticeAttempt records one command typed into a simulated console.
type PracticeAttempt struct {
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
	Dialect   string    `json:"dialect"`
	User      string    `json:"user,omitempty"`
	Exercise  string    `json:"exercise,omitempty"`
}

// Document is the whole persisted progress store.
type Document struct {
	UserProgress      map[string]map[string]*ModuleProgress `json:"user_progress"`
	Modules           []string                              `json:"modules"`
	CommandsPracticed map[string][]PracticeAttempt          `json:"commands_practiced"`
}

// NewDocument returns an empty document listing the given canonical modules.
func NewDocument(modules []string) Document {
	return Document{
		UserProgress:      map[string]map[string]*ModuleProgress{},
		Modules:           append([]string(nil), modules...),
		CommandsPracticed: map[string][]PracticeAttempt{},
	}
}

// Normalize fills nil maps left by older or hand-edited files.
func (d *Document) Normalize() {
	if d.UserProgress == nil {
		d.UserProgress = map[string]map[string]*ModuleProgress{}
	}
	if d.CommandsPracticed == nil {
		d.CommandsPracticed = map[string][]PracticeAttempt{}
	}
	for user, modules := range d.UserProgress {
		if modules == nil {
			d.UserProgress[user] = map[string]*ModuleProgress{}
			continue
		}
		for id, mp := range modules {
			if mp == nil {
				modules[id] = &ModuleProgress{}
			}
		}
	}
}

// CommandStat aggregates practice attempts for one command key.
type CommandStat struct {
	Key           string
	Dialect       string
	Command       string
	Attempts      int
	Successes     int
	LastPracticed time.Time
}

// SuccessRate returns successes/attempts, 0 when there are no attempts.
func (c CommandStat) SuccessRate() float64 {
	if c.Attempts == 0 {
		return 0
	}
	return float64(c.Successes) / float64(c.Attempts)
}

// ModuleState is the per-module learning state.
type ModuleState int

const (
	StateUnseen ModuleState = iota
	StateVisited
	StateQuizzed
	StateCertified
)

func (s ModuleState) String() string {
	switch s {
	case StateVisited:
		return "in progress"
	case StateQuizzed:
		return "quizzed"
	case StateCertified:
		return "completed"
	default:
		return "not started"
	}
}

// ConsoleConfig defines console practice settings.
type ConsoleConfig struct {
	Dialect    Dialect
	Drive      string
	User       string
	FocusWeak  bool
	WeakTop    int
	WeakFactor float64
}
