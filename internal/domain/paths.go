package domain

import (
	"path/filepath"
	"strings"
)

// StemOf returns the base name of a path without its extension.
func StemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ExtOf returns the lowercased extension of a path, including the dot.
func ExtOf(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
