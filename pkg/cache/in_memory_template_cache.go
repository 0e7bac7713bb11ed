package cache

import (
	"log/slog"
	"sync"

	"github.com/coinquest/task-reward-engine/pkg/config"
	"github.com/coinquest/task-reward-engine/pkg/domain"
)

// InMemoryTemplateCache provides O(1) in-memory lookups for task templates.
// All maps are built at startup and provide thread-safe read access.
// This cache is immutable after construction except through Reload.
type InMemoryTemplateCache struct {
	templatesByID     map[string]*domain.TaskTemplate   // "template-id" -> Template
	templatesByAction map[string][]*domain.TaskTemplate // "action" -> [Templates]
	dailyTemplates    []*domain.TaskTemplate            // Templates of type DAILY (ordered)
	templates         []*domain.TaskTemplate            // All templates (ordered)
	configPath        string                            // Path to config file (for reload)
	mu                sync.RWMutex                      // Protects all maps
	logger            *slog.Logger
}

// NewInMemoryTemplateCache creates a new cache from the provided catalog.
// The cache is immediately built and ready for lookups.
//
// Parameters:
//   - cfg: Validated catalog containing task templates and rewards
//   - configPath: Path to config file (used for reload operation)
//   - logger: Structured logger for operational logging
func NewInMemoryTemplateCache(cfg *config.Config, configPath string, logger *slog.Logger) *InMemoryTemplateCache {
	cache := &InMemoryTemplateCache{
		templatesByID:     make(map[string]*domain.TaskTemplate),
		templatesByAction: make(map[string][]*domain.TaskTemplate),
		configPath:        configPath,
		logger:            logger,
	}

	cache.buildCache(cfg)

	return cache
}

// buildCache constructs all cache indexes from the catalog.
// This method is called during construction and reload.
// It replaces all existing cache data.
func (c *InMemoryTemplateCache) buildCache(cfg *config.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.templatesByID = make(map[string]*domain.TaskTemplate)
	c.templatesByAction = make(map[string][]*domain.TaskTemplate)
	c.dailyTemplates = make([]*domain.TaskTemplate, 0)
	c.templates = make([]*domain.TaskTemplate, 0, len(cfg.Templates))

	for _, template := range cfg.Templates {
		c.templatesByID[template.ID] = template
		c.templatesByAction[template.Action] = append(c.templatesByAction[template.Action], template)
		c.templates = append(c.templates, template)

		if template.Type == domain.TaskTypeDaily {
			c.dailyTemplates = append(c.dailyTemplates, template)
		}
	}

	c.logger.Info("Template cache built successfully",
		"templates", len(c.templates),
		"daily_templates", len(c.dailyTemplates),
		"actions", len(c.templatesByAction),
	)
}

// GetTemplateByID retrieves a template by its unique ID.
// Returns nil if the template does not exist.
// Time complexity: O(1)
func (c *InMemoryTemplateCache) GetTemplateByID(templateID string) *domain.TaskTemplate {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.templatesByID[templateID]
}

// GetTemplatesByAction retrieves all templates matching an action tag.
// Returns an empty slice if no templates match.
// Time complexity: O(1)
func (c *InMemoryTemplateCache) GetTemplatesByAction(action string) []*domain.TaskTemplate {
	c.mu.RLock()
	defer c.mu.RUnlock()

	templates := c.templatesByAction[action]
	if templates == nil {
		return []*domain.TaskTemplate{}
	}

	// Return the slice directly - it's safe because templates are immutable
	return templates
}

// GetDailyTemplates retrieves all templates of type DAILY in catalog order.
// Time complexity: O(1)
func (c *InMemoryTemplateCache) GetDailyTemplates() []*domain.TaskTemplate {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.dailyTemplates
}

// GetAllTemplates retrieves all configured templates in catalog order.
// Time complexity: O(1)
func (c *InMemoryTemplateCache) GetAllTemplates() []*domain.TaskTemplate {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.templates
}

// GetRewardsByTemplateID retrieves the reward definitions for a template.
// Returns an empty slice if the template does not exist or has no rewards.
// Time complexity: O(1)
func (c *InMemoryTemplateCache) GetRewardsByTemplateID(templateID string) []*domain.RewardDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	template := c.templatesByID[templateID]
	if template == nil || template.Rewards == nil {
		return []*domain.RewardDefinition{}
	}

	return template.Rewards
}

// Reload reloads the cache from the config file.
//
// Returns:
//   - error: If config file cannot be read or validation fails
func (c *InMemoryTemplateCache) Reload() error {
	loader := config.NewConfigLoader(c.configPath, c.logger)
	newConfig, err := loader.LoadConfig()
	if err != nil {
		return err
	}

	c.buildCache(newConfig)

	c.logger.Info("Template cache reloaded successfully")

	return nil
}
