package core

import (
	"fmt"
	"strings"
)

// ValidateAssetPath rejects relative paths that could escape the asset root
// or carry request noise into file lookups.
func ValidateAssetPath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if strings.Contains(path, "?") {
		return fmt.Errorf("path cannot contain query string")
	}

	if strings.Contains(path, "#") {
		return fmt.Errorf("path cannot contain fragment")
	}

	if strings.Contains(path, "..") {
		return fmt.Errorf("path cannot contain parent directory references")
	}

	return nil
}
