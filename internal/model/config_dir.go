package model

import (
	"os"
	"path/filepath"
)

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".glean-cache"
	}
	return filepath.Join(home, ".glean", "cache")
}
