package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppDirName is the directory name used under the platform config dir.
const AppDirName = "traductor"

// PathResolver resolves dataset and config locations relative to the executable,
// the working directory and the user's config dir.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
	dataPatterns  []string
}

// NewPathResolver creates a resolver. dataPatterns are globs (e.g. "*.json")
// a directory must match at least once to count as a dataset dir.
func NewPathResolver(dataPatterns ...string) (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     platformConfigDir(homeDir),
		dataPatterns:  dataPatterns,
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// platformConfigDir returns the appropriate config directory for the platform
func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppDirName)
		}
		return filepath.Join(homeDir, ".config", AppDirName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppDirName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppDirName)
	default:
		return filepath.Join(homeDir, ".config", AppDirName)
	}
}

// GetDataDir resolves the directory holding the language datasets.
// Candidates, in order: the path itself if absolute, relative to the executable,
// relative to the working directory, then <exec>/data and <config>/data.
// When none matches, the working-directory candidate is returned so callers can report it.
func (pr *PathResolver) GetDataDir(userSpecifiedPath string) string {
	var candidates []string
	if filepath.IsAbs(userSpecifiedPath) {
		candidates = append(candidates, userSpecifiedPath)
	}
	candidates = append(candidates, filepath.Join(pr.executableDir, userSpecifiedPath))

	fallback := userSpecifiedPath
	if cwd, err := os.Getwd(); err == nil {
		fallback = filepath.Join(cwd, userSpecifiedPath)
		candidates = append(candidates, fallback)
	}
	candidates = append(candidates,
		filepath.Join(pr.executableDir, "data"),
		filepath.Join(pr.configDir, "data"),
	)

	for _, path := range candidates {
		if pr.isValidDataDir(path) {
			log.Debugf("Found valid data directory: %s", path)
			return path
		}
		log.Debugf("Data directory candidate not valid: %s", path)
	}
	return fallback
}

// isValidDataDir checks if a directory contains at least one dataset file
func (pr *PathResolver) isValidDataDir(path string) bool {
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return false
	}
	for _, pattern := range pr.dataPatterns {
		matches, err := filepath.Glob(filepath.Join(path, pattern))
		if err == nil && len(matches) > 0 {
			return true
		}
	}
	return false
}

// GetConfigPath returns the full path for a config file, falling back to
// ~/.traductor and the temp dir when the config dir is not writable.
func (pr *PathResolver) GetConfigPath(filename string) string {
	dirs := []string{
		pr.configDir,
		filepath.Join(pr.homeDir, "."+AppDirName),
		filepath.Join(os.TempDir(), AppDirName),
	}
	for i, dir := range dirs {
		if result := CheckDirStatus(dir); result.Writable {
			path := filepath.Join(dir, filename)
			if i > 0 {
				log.Warnf("Using fallback config location: %s", path)
			}
			return path
		}
	}
	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath
}
