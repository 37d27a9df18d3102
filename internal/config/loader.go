package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/dingrobot/internal/common"
)

// GetConfigPath determines the configuration file path based on command-line flags,
// environment variables, and default locations.
// Priority:
// 1. -config command-line flag
// 2. DINGROBOT_CONFIG_PATH environment variable
// 3. config.yaml in the current working directory
// 4. config.json in the current working directory
// 5. config.yaml in the executable's directory
// 6. config.json in the executable's directory
// A leading "~/" in any candidate path is expanded before the file is checked.
func GetConfigPath(configFilePathFlag string) (string, error) {
	// 1. Command-line flag (highest priority if provided directly to this function)
	if configFilePathFlag != "" {
		expanded, err := ExpandHomePath(configFilePathFlag)
		if err != nil {
			return "", err
		}
		if !fileExists(expanded) {
			return "", common.NewValidationError("config_file", configFilePathFlag, "config file does not exist")
		}
		return expanded, nil
	}

	// 2. Environment variable
	if envPath := os.Getenv("DINGROBOT_CONFIG_PATH"); envPath != "" {
		expanded, err := ExpandHomePath(envPath)
		if err != nil {
			return "", err
		}
		if fileExists(expanded) {
			return expanded, nil
		}
	}

	cwd, errCwd := os.Getwd()
	exePath, errExe := os.Executable()
	exeDir := ""
	if errExe == nil {
		exeDir = filepath.Dir(exePath)
	}

	defaultFiles := []string{"config.yaml", "config.json"}
	locations := []string{}

	if errCwd == nil {
		locations = append(locations, cwd)
	}
	if errExe == nil && exeDir != "" && (errCwd != nil || exeDir != cwd) {
		locations = append(locations, exeDir)
	}

	for _, loc := range locations {
		for _, file := range defaultFiles {
			path := filepath.Join(loc, file)
			if fileExists(path) {
				return path, nil
			}
		}
	}
	return "", nil // No config file found
}

// ExpandHomePath expands a leading "~/" in path to the user's home directory.
// Paths without the prefix are returned unchanged.
func ExpandHomePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", common.WrapError(err, "failed to determine home directory")
	}
	return filepath.Join(home, path[2:]), nil
}

// readConfigFile reads a config file, rejecting directories and oversized files.
func readConfigFile(filePath string) ([]byte, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to stat config file '%s'", filePath)
	}
	if info.IsDir() {
		return nil, common.NewValidationError("config_file", filePath, "path is a directory, not a file")
	}
	if info.Size() > maxConfigFileSize {
		return nil, common.NewValidationError("config_file", filePath, "config file exceeds size limit")
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to read config file '%s'", filePath)
	}
	return data, nil
}

const maxConfigFileSize = 1 * 1024 * 1024 // 1MB is plenty for credentials

// fileExists checks if a path exists and is a regular file
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
