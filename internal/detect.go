package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// StatePaths holds the locations of the local studymind state
type StatePaths struct {
	BasePath     string // directory holding all local state
	DatabasePath string // SQLite state database (preferences + conversation archive)
	LogPath      string // log file used while the interactive shell owns the terminal
}

// DetectStatePaths detects the default state location based on the operating system
func DetectStatePaths() (StatePaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return StatePaths{}, fmt.Errorf("failed to get home directory: %w", err)
	}

	var basePath string
	switch runtime.GOOS {
	case "darwin":
		basePath = filepath.Join(home, "Library/Application Support/StudyMind")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			basePath = filepath.Join(appData, "StudyMind")
		} else {
			basePath = filepath.Join(home, "AppData", "Roaming", "StudyMind")
		}
	default:
		// XDG_CONFIG_HOME wins over ~/.config when set
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			basePath = filepath.Join(xdg, "studymind")
		} else {
			basePath = filepath.Join(home, ".config/studymind")
		}
	}

	return statePathsFor(basePath), nil
}

// GetStatePaths resolves the state location, honouring a custom path.
// A custom path ending in ".db" is used as the database file itself;
// anything else is treated as the state directory.
func GetStatePaths(custom string) (StatePaths, error) {
	if custom == "" {
		return DetectStatePaths()
	}
	if custom == ":memory:" {
		return StatePaths{DatabasePath: custom}, nil
	}

	abs, err := filepath.Abs(custom)
	if err != nil {
		return StatePaths{}, fmt.Errorf("invalid state path %q: %w", custom, err)
	}
	if strings.HasSuffix(abs, ".db") {
		paths := statePathsFor(filepath.Dir(abs))
		paths.DatabasePath = abs
		return paths, nil
	}
	return statePathsFor(abs), nil
}

func statePathsFor(base string) StatePaths {
	return StatePaths{
		BasePath:     base,
		DatabasePath: filepath.Join(base, "state.db"),
		LogPath:      filepath.Join(base, "studymind.log"),
	}
}

// DatabaseExists checks if the state database has been created yet
func (sp StatePaths) DatabaseExists() bool {
	if sp.DatabasePath == ":memory:" {
		return false
	}
	_, err := os.Stat(sp.DatabasePath)
	return err == nil
}
