package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/coinquest/task-reward-engine/pkg/domain"
)

// ConfigLoader loads and validates the task catalog from a JSON file.
// It performs file reading, JSON parsing, and comprehensive validation.
type ConfigLoader struct {
	configPath string
	validator  *Validator
	logger     *slog.Logger
}

// NewConfigLoader creates a new ConfigLoader instance.
//
// Parameters:
//   - configPath: Path to the tasks.json file
//   - logger: Structured logger for operational logging
func NewConfigLoader(configPath string, logger *slog.Logger) *ConfigLoader {
	return &ConfigLoader{
		configPath: configPath,
		validator:  NewValidator(),
		logger:     logger,
	}
}

// LoadConfig loads the catalog file and returns a validated Config.
// This method performs three steps:
// 1. Read the config file from disk
// 2. Parse JSON into Config struct
// 3. Validate all business rules
//
// If any step fails, returns an error and the application should exit.
// This is a "fail fast" operation - an invalid catalog prevents startup.
func (l *ConfigLoader) LoadConfig() (*Config, error) {
	// Step 1: Read file
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Step 2: Parse JSON
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// Step 3: Link each reward definition to its owning template and default
	// the task type for catalogs written before ACHIEVEMENT support
	for _, template := range config.Templates {
		if template.Type == "" {
			template.Type = domain.TaskTypeDaily
		}
		for _, reward := range template.Rewards {
			reward.TemplateID = template.ID
		}
	}

	// Step 4: Validate
	if err := l.validator.Validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	l.logger.Info("Task catalog loaded successfully",
		"templates", len(config.Templates),
		"total_rewards", l.countRewards(&config),
		"config_path", l.configPath,
	)

	return &config, nil
}

// countRewards counts the total number of reward definitions across templates.
func (l *ConfigLoader) countRewards(config *Config) int {
	count := 0
	for _, template := range config.Templates {
		count += len(template.Rewards)
	}
	return count
}
