// Package script loads console scripts: one command per line, with
// comments and blank lines skipped.
package script

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads the commands of the script at path.
func Load(path string, keep FilterFunc) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only script.
			_ = cerr
		}
	}()
	return Read(file, keep)
}

// Read reads script commands from r.
func Read(r io.Reader, keep FilterFunc) ([]string, error) {
	if keep == nil {
		keep = FilterFor("")
	}
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !keep(line) {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("script has no commands")
	}
	return lines, nil
}
