package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Reading ReadingFileConfig `toml:"reading"`
	Recall  RecallFileConfig  `toml:"recall"`
	Exam    ExamFileConfig    `toml:"exam"`
}

// ReadingFileConfig maps reading-related settings. Pointer fields distinguish
// absent keys from zero values so flags can override only what the file sets.
type ReadingFileConfig struct {
	Mode             *string  `toml:"mode"`
	Display          *string  `toml:"display"`
	Focus            *string  `toml:"focus"`
	CustomWidth      *int     `toml:"custom-width"`
	WPM              *int     `toml:"wpm"`
	MinWPM           *int     `toml:"min-wpm"`
	MaxWPM           *int     `toml:"max-wpm"`
	LineWidth        *int     `toml:"line-width"`
	PageSize         *int     `toml:"page-size"`
	FixationBudget   *int     `toml:"fixation-budget"`
	RampCurve        *string  `toml:"ramp-curve"`
	RampRate         *int     `toml:"ramp-rate"`
	RampIntervalSec  *float64 `toml:"ramp-interval"`
	RampStartPercent *int     `toml:"ramp-start-percent"`
	PreviewSentences *int     `toml:"preview-sentences"`
	CorpusDir        *string  `toml:"corpus-dir"`
}

// RecallFileConfig maps recall drill settings.
type RecallFileConfig struct {
	Rounds *int `toml:"rounds"`
}

// ExamFileConfig maps comprehension exam settings.
type ExamFileConfig struct {
	Model     *string `toml:"model"`
	Questions *int    `toml:"questions"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
