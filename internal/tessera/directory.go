package tessera

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	tesseraDir = ".tessera"
)

// GetDataDir returns the default data directory, under the user's home directory.
func GetDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, tesseraDir), nil
}
