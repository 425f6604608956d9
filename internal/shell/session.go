package shell

import "github.com/verte-zerg/shelltutor/internal/model"

// Session is the history of one simulated console. It is not safe for
// concurrent use.
type Session struct {
	dialect  model.Dialect
	profile  Profile
	executor *Executor
	entries  []model.TranscriptEntry
}

// NewSession starts an empty console of dialect d.
func NewSession(d model.Dialect, profile Profile, executor *Executor) *Session {
	if executor == nil {
		executor = NewExecutor()
	}
	return &Session{dialect: d, profile: profile, executor: executor}
}

// Dialect returns the console dialect.
func (s *Session) Dialect() model.Dialect {
	return s.dialect
}

// Profile returns the prompt profile.
func (s *Session) Profile() Profile {
	return s.profile
}

// Submit executes raw and appends it to the history. Blank lines are
// answered but not recorded.
func (s *Session) Submit(raw string) Result {
	res := s.executor.Execute(raw, s.dialect)
	if res.Kind == ResultEmpty {
		return res
	}
	s.entries = append(s.entries, model.TranscriptEntry{Command: raw, Output: res.Output})
	return res
}

// Reset clears the history.
func (s *Session) Reset() {
	s.entries = nil
}

// Entries returns a copy of the history.
func (s *Session) Entries() []model.TranscriptEntry {
	return append([]model.TranscriptEntry(nil), s.entries...)
}

// Len returns the number of recorded commands.
func (s *Session) Len() int {
	return len(s.entries)
}

// Render draws the current transcript.
func (s *Session) Render() string {
	return s.profile.Render(s.dialect, s.entries)
}
