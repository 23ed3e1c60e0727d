package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "hydradoc.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/hydradoc"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger
	// workDir is where the project config search starts (default: cwd)
	workDir string
	// homeDir holds the user config (default: os.UserHomeDir)
	homeDir string
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/hydradoc/config.yaml)
// 3. Project config (hydradoc.yaml in current or parent directories),
// or the explicit path when one is given
func (l *Loader) Load(explicitPath string) (*Config, error) {
	// Start with defaults
	config := DefaultConfig()

	// Load user config
	userConfigPath := l.userConfigPath()
	if userConfigPath != "" {
		if userConfig, err := LoadFromFile(userConfigPath); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
			config.Merge(userConfig)
		} else if !errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
		}
	}

	// Load project config
	projectConfigPath := explicitPath
	if projectConfigPath == "" {
		projectConfigPath = l.findProjectConfig()
	}
	if projectConfigPath != "" {
		projectConfig, err := LoadFromFile(projectConfigPath)
		if err != nil {
			if explicitPath != "" {
				return nil, err
			}
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		} else {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			projectConfig.resolvePaths(filepath.Dir(projectConfigPath))
			config.Merge(projectConfig)
		}
	} else {
		l.logger.Debug("No project config found")
	}

	// Validate final config
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// EnsureProjectConfig writes a default project config into dir if none
// exists there. It returns the config path and whether it was created.
func (l *Loader) EnsureProjectConfig(dir string) (string, bool, error) {
	path := filepath.Join(dir, ProjectConfigFile)

	// Check if it already exists
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	config := DefaultConfig()
	config.Output.Path = "server_doc.jsonld"
	if err := config.SaveToFile(path); err != nil {
		return "", false, err
	}

	l.logger.Info("Created project config", slog.String("path", path))
	return path, true, nil
}

// resolvePaths makes relative schema and output paths relative to dir.
func (c *Config) resolvePaths(dir string) {
	for i, p := range c.Schema.Paths {
		if !filepath.IsAbs(p) {
			c.Schema.Paths[i] = filepath.Join(dir, p)
		}
	}
	if c.Output.Path != "" && c.Output.Path != "-" && !filepath.IsAbs(c.Output.Path) {
		c.Output.Path = filepath.Join(dir, c.Output.Path)
	}
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	home := l.homeDir
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for hydradoc.yaml in current and parent directories
func (l *Loader) findProjectConfig() string {
	dir := l.workDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = cwd
	}

	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return ""
}
