package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// SanitizeQuery replaces characters unsafe for filesystem paths.
// Allows alphanumeric, dots, and hyphens. Replaces everything else with underscore.
func SanitizeQuery(query string) string {
	re := regexp.MustCompile(`[^a-zA-Z0-9.\-]+`)
	return re.ReplaceAllString(query, "_")
}

// SearchDirPath generates a consistent directory path for a search
// Format: {baseDir}/{query}_{YYYYMMDD}_{HHMMSS}
func SearchDirPath(baseDir string, query string, startedAt time.Time) string {
	sanitized := SanitizeQuery(query)
	timestamp := startedAt.Format("20060102_150405")
	dirName := fmt.Sprintf("%s_%s", sanitized, timestamp)
	return filepath.Join(baseDir, dirName)
}

// CreateSearchDir creates a search output directory with subdirectories for
// reports and raw output
func CreateSearchDir(baseDir string, query string, startedAt time.Time) (string, error) {
	searchPath := SearchDirPath(baseDir, query, startedAt)

	// Create main search directory
	if err := EnsureDir(searchPath); err != nil {
		return "", err
	}

	// Create subdirectories
	reportsDir := filepath.Join(searchPath, "reports")
	if err := EnsureDir(reportsDir); err != nil {
		return "", err
	}

	rawDir := filepath.Join(searchPath, "raw")
	if err := EnsureDir(rawDir); err != nil {
		return "", err
	}

	return searchPath, nil
}

// EnsureDir creates a directory and all parent directories if they don't exist
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
