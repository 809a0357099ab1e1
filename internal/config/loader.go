package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TuningFile is the file name searched for in the config directories.
const TuningFile = "tuning.yaml"

// DataDirName is the per-user directory holding the database and configs.
const DataDirName = ".flappy"

// LoadTuning loads gameplay tuning.
// Search order: customPath -> ~/.flappy/configs/tuning.yaml -> ./configs/tuning.yaml -> embedded default.
// Only an explicit customPath can produce an error; every other source
// that is missing or invalid is skipped.
func LoadTuning(customPath string) (Tuning, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Tuning{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseTuning(data)
		if err != nil {
			return Tuning{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := UserConfigPath(TuningFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseTuning(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", TuningFile)); err == nil {
		if cfg, err := ParseTuning(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := ParseTuning(defaultTuningYAML); err == nil {
		return cfg, nil
	}
	return DefaultTuning(), nil
}

// ParseTuning decodes YAML over the hardcoded defaults and validates the result.
func ParseTuning(data []byte) (Tuning, error) {
	cfg := DefaultTuning()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Tuning{}, fmt.Errorf("failed to parse tuning: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Tuning{}, err
	}
	return cfg, nil
}

// ResolvePath returns the tuning file LoadTuning would read from disk,
// or an empty string when only the embedded default applies.
func ResolvePath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	if p := UserConfigPath(TuningFile); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	local := filepath.Join("configs", TuningFile)
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return ""
}

// DataDir returns ~/.flappy, or an empty string if home is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DataDirName)
}

// UserConfigPath returns the path to a user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
