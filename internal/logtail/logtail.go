package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Entry is one parsed line of the console-encoded log.
type Entry struct {
	Time    string
	Level   string
	Caller  string
	Message string
	Fields  string // trailing JSON object, if any
	Raw     string
}

// Read returns at most maxLines from the end of the file at path. A missing
// file is not an error; there is simply nothing logged yet.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Parse splits a tab-separated zap console line. Lines that do not look like
// log entries come back with only Message and Raw set.
func Parse(line string) Entry {
	parts := strings.Split(line, "\t")
	if len(parts) < 3 || !isLevel(parts[1]) {
		return Entry{Message: line, Raw: line}
	}
	e := Entry{Time: parts[0], Level: parts[1], Raw: line}
	rest := parts[2:]
	// The caller column is present only when caller annotation is enabled.
	if len(rest) > 1 && strings.Contains(rest[0], ".go:") {
		e.Caller = rest[0]
		rest = rest[1:]
	}
	if n := len(rest); n > 1 && strings.HasPrefix(rest[n-1], "{") {
		e.Fields = rest[n-1]
		rest = rest[:n-1]
	}
	e.Message = strings.Join(rest, " ")
	return e
}

// ParseAll parses lines in order.
func ParseAll(lines []string) []Entry {
	out := make([]Entry, 0, len(lines))
	for _, line := range lines {
		out = append(out, Parse(line))
	}
	return out
}

func isLevel(s string) bool {
	switch strings.ToUpper(s) {
	case "DEBUG", "INFO", "WARN", "ERROR", "DPANIC", "PANIC", "FATAL":
		return true
	}
	return false
}
