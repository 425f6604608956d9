package shell

import (
	"strings"

	"github.com/verte-zerg/shelltutor/internal/model"
)

// Profile names the location shown in console prompts.
type Profile struct {
	Drive string
	User  string
}

// DefaultProfile is the prompt location used when nothing is configured.
func DefaultProfile() Profile {
	return Profile{Drive: `C:\Users`, User: "Student"}
}

func (p Profile) normalized() Profile {
	def := DefaultProfile()
	if strings.TrimSpace(p.Drive) == "" {
		p.Drive = def.Drive
	}
	if strings.TrimSpace(p.User) == "" {
		p.User = def.User
	}
	p.Drive = strings.TrimRight(p.Drive, `\`)
	return p
}

// Prompt returns the bare prompt of dialect d, without a trailing space.
func (p Profile) Prompt(d model.Dialect) string {
	p = p.normalized()
	prompt := p.Drive + `\` + p.User + ">"
	if d == model.Structured {
		return "PS " + prompt
	}
	return prompt
}

// Banner returns the lines printed when a console starts.
func Banner(d model.Dialect) []string {
	if d == model.Structured {
		return []string{
			"Windows PowerShell",
			"Copyright (C) Microsoft Corporation. All rights reserved.",
			"",
		}
	}
	return []string{
		"Microsoft Windows [Version 10.0.19045.3570]",
		"(c) Microsoft Corporation. All rights reserved.",
		"",
	}
}

// Render draws a console transcript using the default profile.
func Render(d model.Dialect, history []model.TranscriptEntry) string {
	return DefaultProfile().Render(d, history)
}

// Render draws a console transcript: the banner, one prompt line per entry
// followed by its non-blank output lines and a separator, and a final bare
// prompt.
func (p Profile) Render(d model.Dialect, history []model.TranscriptEntry) string {
	prompt := p.Prompt(d)
	lines := append([]string(nil), Banner(d)...)
	for _, entry := range history {
		lines = append(lines, prompt+entry.Command)
		for _, line := range strings.Split(entry.Output, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			lines = append(lines, strings.TrimRight(line, "\r"))
		}
		lines = append(lines, "")
	}
	lines = append(lines, prompt)
	return strings.Join(lines, "\n")
}
