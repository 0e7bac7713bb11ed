package config

import (
	"errors"
	"fmt"

	"github.com/coinquest/task-reward-engine/pkg/domain"
)

// Validator validates task catalog files.
// It ensures all business rules are met before the application starts.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate performs comprehensive validation of the catalog.
// It checks for:
// - At least one template exists
// - All template IDs are unique
// - All reward definition IDs are globally unique
// - Task types, target counts, and reward definitions are valid
//
// Returns an error describing the first validation failure encountered.
func (v *Validator) Validate(config *Config) error {
	if len(config.Templates) == 0 {
		return errors.New("config must have at least one task template")
	}

	templateIDs := make(map[string]bool)
	rewardIDs := make(map[string]bool)

	for _, template := range config.Templates {
		if err := v.validateTemplate(template); err != nil {
			return fmt.Errorf("invalid template '%s': %w", template.ID, err)
		}

		if templateIDs[template.ID] {
			return fmt.Errorf("duplicate template ID: %s", template.ID)
		}
		templateIDs[template.ID] = true

		for _, reward := range template.Rewards {
			if err := v.validateReward(reward); err != nil {
				return fmt.Errorf("invalid reward '%s' in template '%s': %w", reward.ID, template.ID, err)
			}

			if rewardIDs[reward.ID] {
				return fmt.Errorf("duplicate reward ID: %s", reward.ID)
			}
			rewardIDs[reward.ID] = true

			if reward.TemplateID != template.ID {
				return fmt.Errorf("reward '%s' references template '%s', expected '%s'",
					reward.ID, reward.TemplateID, template.ID)
			}
		}
	}

	return nil
}

// validateTemplate validates a single task template.
func (v *Validator) validateTemplate(template *domain.TaskTemplate) error {
	if template.ID == "" {
		return errors.New("template ID cannot be empty")
	}
	if template.Name == "" {
		return errors.New("template name cannot be empty")
	}

	if !template.Type.IsValid() {
		return fmt.Errorf("invalid task type '%s' (must be 'DAILY' or 'ACHIEVEMENT')", template.Type)
	}

	// Action is the event tag progress events match against (required field)
	if template.Action == "" {
		return errors.New("action cannot be empty")
	}

	if template.TargetCount <= 0 {
		return errors.New("target_count must be positive")
	}

	return nil
}

// validateReward validates a single reward definition.
func (v *Validator) validateReward(reward *domain.RewardDefinition) error {
	if reward.ID == "" {
		return errors.New("reward ID cannot be empty")
	}

	if !reward.Type.IsValid() {
		return fmt.Errorf("unsupported reward type '%s' (must be 'coin', 'cash', 'experience', or 'item')", reward.Type)
	}

	if reward.Amount <= 0 {
		return errors.New("reward amount must be positive")
	}

	// Item grants carry their payload in data; other kinds must not
	if reward.Type == domain.RewardTypeItem && reward.Data == "" {
		return errors.New("item rewards require a data payload")
	}

	return nil
}
