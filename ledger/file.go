package ledger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// ReadFile parses every line of the log file, discarding lines that do not
// match the entry shape, in file order. A missing file yields an empty log
// rather than an error: no gifts have been calculated yet.
//
// The log is written elsewhere append-only, so a partially flushed last
// line simply fails to parse and is skipped.
func ReadFile(path string) ([]*Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read log %s: %w", path, err)
	}
	defer f.Close()

	var entries []*Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if e := Parse(scanner.Text()); e != nil {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log %s: %w", path, err)
	}
	return entries, nil
}

// Append writes one canonical line to the end of the log file, creating
// the file and its parent directory on first use.
func Append(path, line string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log %s: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, line); err != nil {
		return fmt.Errorf("failed to append to log %s: %w", path, err)
	}
	return nil
}
