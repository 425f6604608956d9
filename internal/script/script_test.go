package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLegacyFilter(t *testing.T) {
	filter := FilterFor("cmd")
	for _, line := range []string{"dir", "echo # not a comment", "remove-item x", "REMARK"} {
		if !filter(line) {
			t.Fatalf("expected %q to be kept", line)
		}
	}
	for _, line := range []string{"", "   ", "REM list files", "rem", ":: note", "# note"} {
		if filter(line) {
			t.Fatalf("expected %q to be skipped", line)
		}
	}
}

func TestStructuredFilterKeepsRem(t *testing.T) {
	filter := FilterFor("powershell")
	if !filter("rem x") {
		t.Fatalf("expected rem line to be kept in powershell")
	}
	if filter("# comment") {
		t.Fatalf("expected comment to be skipped")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lesson.cmd")
	body := "REM warm up\r\n\r\ndir\r\n  echo hello  \r\n:: done\r\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	lines, err := Load(path, FilterFor("cmd"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(lines) != 2 || lines[0] != "dir" || lines[1] != "echo hello" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestReadEmptyScript(t *testing.T) {
	if _, err := Read(strings.NewReader("# nothing\n\n"), nil); err == nil {
		t.Fatalf("expected error for empty script")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
