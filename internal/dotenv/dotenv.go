// Package dotenv reads KEY=VALUE pairs from .env files so Env parents
// can resolve values that are not present in the process environment.
package dotenv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse reads KEY=VALUE pairs from r. Blank lines and lines starting
// with '#' are skipped, a leading "export " is tolerated, and single or
// double quotes around the value are stripped.
func Parse(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		text = strings.TrimPrefix(text, "export ")

		key, value, found := strings.Cut(text, "=")
		if !found {
			return nil, fmt.Errorf("dotenv: line %d: missing '=': %q", line, text)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("dotenv: line %d: empty key", line)
		}

		value = strings.TrimSpace(value)
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dotenv: read: %w", err)
	}
	return values, nil
}

// Load parses the file at path. A missing file is not an error; an
// empty map is returned instead, since .env files are optional.
func Load(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("dotenv: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}
