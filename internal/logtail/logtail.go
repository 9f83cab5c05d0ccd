package logtail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	chunkSize = 8 * 1024
	// maxTailBytes bounds how far back Read scans for maxLines lines.
	maxTailBytes = 1 << 20
)

// Read returns at most maxLines from the end of the file at path, oldest
// first. maxLines <= 0 returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	if maxLines <= 0 {
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return splitLines(data), nil
	}

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}

	// Walk backwards until the buffer holds maxLines complete lines.
	offset := info.Size()
	var buf []byte
	for offset > 0 && bytes.Count(bytes.TrimRight(buf, "\n"), []byte{'\n'}) < maxLines && int64(len(buf)) < maxTailBytes {
		n := min(int64(chunkSize), offset)
		offset -= n
		chunk := make([]byte, n)
		if _, err := file.ReadAt(chunk, offset); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read log: %w", err)
		}
		buf = append(chunk, buf...)
	}

	lines := splitLines(buf)
	if offset > 0 && len(lines) > 0 {
		lines = lines[1:] // starts mid-line
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines, nil
}

func splitLines(data []byte) []string {
	text := strings.TrimRight(string(data), "\r\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Level extracts the level of a logrus text-formatted line, such as
// "warning" from `level=warning msg="stats poll failed"`. It returns "" when
// the line carries no level field.
func Level(line string) string {
	for _, field := range strings.Fields(line) {
		if v, ok := strings.CutPrefix(field, "level="); ok {
			return strings.Trim(v, `"`)
		}
	}
	return ""
}

// Message returns the msg field of a logrus text-formatted line, or the
// whole line when there is none.
func Message(line string) string {
	_, rest, ok := strings.Cut(line, "msg=")
	if !ok {
		return line
	}
	if !strings.HasPrefix(rest, `"`) {
		msg, _, _ := strings.Cut(rest, " ")
		return msg
	}
	var b strings.Builder
	escaped := false
	for _, r := range rest[1:] {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			return b.String()
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
