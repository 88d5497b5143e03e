// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// keyword-trends reads semantic-scholar-api-key; other files are loaded but unused.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets/"

// SemanticScholarKey names the file holding the Semantic Scholar API key.
const SemanticScholarKey = "semantic-scholar-api-key"

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	return LoadWithWarnings(dir, os.Stderr)
}

// LoadWithWarnings is Load with unreadable-file warnings written to warn.
func LoadWithWarnings(dir string, warn io.Writer) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Resolve returns explicit when it is non-empty, otherwise the secret named
// key from loaded.
func Resolve(explicit string, loaded map[string]string, key string) string {
	if explicit != "" {
		return explicit
	}
	return loaded[key]
}
