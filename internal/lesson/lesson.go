// Package lesson renders module lessons as terminal markdown.
package lesson

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/verte-zerg/shelltutor/internal/course"
	"github.com/verte-zerg/shelltutor/internal/progress"
)

// DefaultWidth is the word wrap used when the terminal width is unknown.
const DefaultWidth = 80

// Renderer turns module content into styled terminal text.
type Renderer struct {
	tr *glamour.TermRenderer
}

// NewRenderer builds a renderer wrapping at width. style is a glamour
// standard style name; "" or "auto" picks one from the terminal background.
func NewRenderer(width int, style string) (*Renderer, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "", "auto":
		opts = append(opts, glamour.WithAutoStyle())
	default:
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Renderer{tr: tr}, nil
}

// Markdown returns the lesson source for m. With keys set only those
// sections are included.
func Markdown(m *course.Module, keys ...string) (string, error) {
	sections, err := pick(m, keys)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", m.Title)
	if m.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(m.Summary))
	}
	if len(keys) == 0 && len(m.Objectives) > 0 {
		b.WriteString("## Objectives\n\n")
		for _, o := range m.Objectives {
			fmt.Fprintf(&b, "- %s\n", o)
		}
		b.WriteString("\n")
	}
	for _, s := range sections {
		body := strings.TrimSpace(s.Body)
		if !strings.HasPrefix(body, "#") {
			fmt.Fprintf(&b, "## %s\n\n", s.Title)
		}
		fmt.Fprintf(&b, "%s\n\n", body)
	}
	if len(keys) == 0 && len(m.Exercises) > 0 {
		b.WriteString("## Try it\n\n")
		for _, e := range m.Exercises {
			fmt.Fprintf(&b, "- %s: `%s`\n", e.Description, e.Example)
		}
		b.WriteString("\n")
	}
	if next, ok := course.Next(m.ID); ok {
		fmt.Fprintf(&b, "---\n\nNext module: `%s`\n", next)
	}
	return b.String(), nil
}

func pick(m *course.Module, keys []string) ([]course.Section, error) {
	if len(keys) == 0 {
		return m.Sections, nil
	}
	out := make([]course.Section, 0, len(keys))
	for _, k := range keys {
		s, ok := m.Section(k)
		if !ok {
			return nil, fmt.Errorf("module %s has no section %q", m.ID, k)
		}
		out = append(out, s)
	}
	return out, nil
}

// Render returns the styled lesson for m.
func (r *Renderer) Render(m *course.Module, keys ...string) (string, error) {
	md, err := Markdown(m, keys...)
	if err != nil {
		return "", err
	}
	out, err := r.tr.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render lesson %s: %w", m.ID, err)
	}
	return out, nil
}

// Show writes the lesson to w and marks the shown sections as completed.
func (r *Renderer) Show(ctx context.Context, w io.Writer, m *course.Module, tr *progress.Tracker, sess progress.Session, keys ...string) error {
	out, err := r.Render(m, keys...)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write lesson: %w", err)
	}
	if tr == nil {
		return nil
	}
	sections, _ := pick(m, keys)
	for _, s := range sections {
		if err := tr.MarkSectionComplete(ctx, sess, string(m.ID), s.Key); err != nil {
			return err
		}
	}
	return nil
}
