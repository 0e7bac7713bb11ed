package engine

import (
	"context"

	"github.com/coinquest/task-reward-engine/pkg/domain"
)

// TemplateProvider supplies read-only task templates to the engine.
// Satisfied by cache.InMemoryTemplateCache; templates are externally
// authored and immutable during a task's lifecycle.
type TemplateProvider interface {
	// GetTemplateByID retrieves a template by ID, nil if absent.
	GetTemplateByID(templateID string) *domain.TaskTemplate

	// GetTemplatesByAction retrieves all templates matching an action tag.
	GetTemplatesByAction(action string) []*domain.TaskTemplate

	// GetDailyTemplates retrieves all templates of type DAILY.
	GetDailyTemplates() []*domain.TaskTemplate
}

// RewardProvider supplies read-only reward definitions to the engine.
// Satisfied by cache.InMemoryTemplateCache.
type RewardProvider interface {
	// GetRewardsByTemplateID retrieves the rewards attached to a template.
	GetRewardsByTemplateID(templateID string) []*domain.RewardDefinition
}

// RewardDispatcher dispatches a reward definition to the granter for its
// kind. Satisfied by granter.Dispatcher (and granter.MockGranter in tests).
type RewardDispatcher interface {
	Grant(ctx context.Context, userID string, reward *domain.RewardDefinition) error
}
