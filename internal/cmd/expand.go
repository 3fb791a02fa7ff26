package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// expandPath applies shell-style expansion to a file path: $VAR and
// ${VAR} from the environment, and a leading ~ for the home directory.
// ~user forms are not supported and fail rather than guess.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	expanded := os.ExpandEnv(path)

	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		expanded = filepath.Join(home, strings.TrimPrefix(expanded, "~"))
	} else if strings.HasPrefix(expanded, "~") {
		return "", fmt.Errorf("cannot expand %q: ~user paths are not supported", path)
	}

	return expanded, nil
}
