package config

import (
	"os"
	"path/filepath"
	"strings"
)

// GetVersion returns version from environment variable or the VERSION file
func GetVersion() string {
	// Version set by CI/CD takes precedence
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}

	return getBaseVersion()
}

// getBaseVersion reads the base version from the VERSION file
func getBaseVersion() string {
	candidates := []string{
		"VERSION",
		filepath.Join("..", "VERSION"),
	}

	for _, versionPath := range candidates {
		if content, err := os.ReadFile(versionPath); err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	return "0.1.0"
}
