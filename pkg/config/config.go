package config

import "github.com/coinquest/task-reward-engine/pkg/domain"

// Config represents the top-level task catalog loaded from tasks.json.
// This structure is parsed from JSON and validated during application startup.
type Config struct {
	Templates []*domain.TaskTemplate `json:"templates"`
}
