package cache

import "github.com/coinquest/task-reward-engine/pkg/domain"

// TemplateCache provides O(1) in-memory lookups for task template configurations.
// This cache is built at application startup from the tasks.json config file.
// All lookups are read-only and thread-safe.
type TemplateCache interface {
	// GetTemplateByID retrieves a template by its unique ID.
	// Returns nil if the template does not exist.
	// Time complexity: O(1)
	GetTemplateByID(templateID string) *domain.TaskTemplate

	// GetTemplatesByAction retrieves all templates matching an action tag.
	// Multiple templates can share an action (e.g., a daily task and an
	// achievement task both tracking "LIKE_POST").
	// Returns empty slice if no templates match.
	// Time complexity: O(1)
	GetTemplatesByAction(action string) []*domain.TaskTemplate

	// GetDailyTemplates retrieves all templates of type DAILY.
	// Used by daily lifecycle initialization to determine which records a
	// user is missing for today.
	// Time complexity: O(1)
	GetDailyTemplates() []*domain.TaskTemplate

	// GetAllTemplates retrieves all configured templates in catalog order.
	// Time complexity: O(1)
	GetAllTemplates() []*domain.TaskTemplate

	// GetRewardsByTemplateID retrieves the reward definitions attached to a
	// template. Returns empty slice if the template does not exist or has no
	// rewards.
	// Time complexity: O(1)
	GetRewardsByTemplateID(templateID string) []*domain.RewardDefinition

	// Reload reloads the cache from the config file.
	// Returns error if the config file cannot be read or is invalid.
	Reload() error
}
