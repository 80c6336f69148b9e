package storage

import (
	"bufio"
	"encoding/json"
	"os"
)

// maxLineSize bounds one JSONL line. A record with a long exercise history
// outgrows bufio's 64 KiB default.
const maxLineSize = 1 << 20

// ParseWarning represents a warning about a corrupted or malformed line
type ParseWarning struct {
	LineNumber int    // Line number in the file (1-indexed)
	Content    string // Raw content of the corrupted line
	Error      string // Description of the parsing error
}

// decodeFunc parses and checks one line.
type decodeFunc[T any] func(line []byte) (T, error)

// readLines decodes every non-blank line of a JSONL file. Lines that fail to
// decode become warnings. A missing file reads as empty.
func readLines[T any](path string, decode decodeFunc[T]) ([]T, []ParseWarning, int, error) {
	items := []T{}
	warnings := []ParseWarning{}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return items, warnings, 0, nil
		}
		return items, warnings, 0, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		item, err := decode(line)
		if err != nil {
			warnings = append(warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    string(line),
				Error:      err.Error(),
			})
			continue
		}
		items = append(items, item)
	}

	if err := scanner.Err(); err != nil {
		return items, warnings, lineNumber, err
	}
	return items, warnings, lineNumber, nil
}

// writeLinesAtomic writes items to a temp file next to path and renames it
// over path, so readers never see a half-written file.
func writeLinesAtomic[T any](path string, items []T) error {
	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
	}

	if err := w.Flush(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

// appendLine appends one JSON line to path, creating the file if needed.
func appendLine(path string, item any) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	line, err := json.Marshal(item)
	if err != nil {
		return err
	}

	_, err = file.Write(append(line, '\n'))
	return err
}
