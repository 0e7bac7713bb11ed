package cache

import (
	"io"
	"log/slog"
	"testing"

	"github.com/coinquest/task-reward-engine/pkg/config"
	"github.com/coinquest/task-reward-engine/pkg/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCatalog() *config.Config {
	return &config.Config{
		Templates: []*domain.TaskTemplate{
			{
				ID:          "daily-like",
				Name:        "Like a post",
				Type:        domain.TaskTypeDaily,
				Action:      "LIKE_POST",
				TargetCount: 3,
				Rewards: []*domain.RewardDefinition{
					{ID: "daily-like-coin", TemplateID: "daily-like", Type: domain.RewardTypeCoin, Amount: 100},
				},
			},
			{
				ID:          "daily-signin",
				Name:        "Sign in",
				Type:        domain.TaskTypeDaily,
				Action:      "SIGN_IN",
				TargetCount: 1,
				Rewards: []*domain.RewardDefinition{
					{ID: "daily-signin-coin", TemplateID: "daily-signin", Type: domain.RewardTypeCoin, Amount: 10},
				},
			},
			{
				ID:          "ach-like",
				Name:        "Socialite",
				Type:        domain.TaskTypeAchievement,
				Action:      "LIKE_POST",
				TargetCount: 100,
				Rewards: []*domain.RewardDefinition{
					{ID: "ach-like-coin", TemplateID: "ach-like", Type: domain.RewardTypeCoin, Amount: 1000},
					{ID: "ach-like-exp", TemplateID: "ach-like", Type: domain.RewardTypeExperience, Amount: 50},
				},
			},
		},
	}
}

func TestGetTemplateByID(t *testing.T) {
	c := NewInMemoryTemplateCache(testCatalog(), "", testLogger())

	tpl := c.GetTemplateByID("daily-like")
	if tpl == nil {
		t.Fatal("GetTemplateByID(daily-like) = nil, want template")
	}
	if tpl.Action != "LIKE_POST" {
		t.Errorf("Action = %q, want LIKE_POST", tpl.Action)
	}

	if c.GetTemplateByID("nonexistent") != nil {
		t.Error("GetTemplateByID(nonexistent) should return nil")
	}
}

func TestGetTemplatesByAction(t *testing.T) {
	c := NewInMemoryTemplateCache(testCatalog(), "", testLogger())

	// Two templates share LIKE_POST: one daily, one achievement
	templates := c.GetTemplatesByAction("LIKE_POST")
	if len(templates) != 2 {
		t.Fatalf("got %d templates for LIKE_POST, want 2", len(templates))
	}

	if got := c.GetTemplatesByAction("UNKNOWN_ACTION"); len(got) != 0 {
		t.Errorf("got %d templates for unknown action, want 0", len(got))
	}
}

func TestGetDailyTemplates(t *testing.T) {
	c := NewInMemoryTemplateCache(testCatalog(), "", testLogger())

	daily := c.GetDailyTemplates()
	if len(daily) != 2 {
		t.Fatalf("got %d daily templates, want 2", len(daily))
	}
	for _, tpl := range daily {
		if tpl.Type != domain.TaskTypeDaily {
			t.Errorf("template %s has type %q, want DAILY", tpl.ID, tpl.Type)
		}
	}
}

func TestGetAllTemplates(t *testing.T) {
	c := NewInMemoryTemplateCache(testCatalog(), "", testLogger())

	all := c.GetAllTemplates()
	if len(all) != 3 {
		t.Fatalf("got %d templates, want 3", len(all))
	}
	// Catalog order is preserved
	if all[0].ID != "daily-like" || all[2].ID != "ach-like" {
		t.Errorf("templates out of catalog order: %s, %s, %s", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestGetRewardsByTemplateID(t *testing.T) {
	c := NewInMemoryTemplateCache(testCatalog(), "", testLogger())

	rewards := c.GetRewardsByTemplateID("ach-like")
	if len(rewards) != 2 {
		t.Fatalf("got %d rewards for ach-like, want 2", len(rewards))
	}

	if got := c.GetRewardsByTemplateID("nonexistent"); len(got) != 0 {
		t.Errorf("got %d rewards for nonexistent template, want 0", len(got))
	}
}

func TestReload_InvalidPath(t *testing.T) {
	c := NewInMemoryTemplateCache(testCatalog(), "/nonexistent/tasks.json", testLogger())

	if err := c.Reload(); err == nil {
		t.Error("Reload() should fail for a missing config file")
	}

	// Cache keeps serving the previous catalog after a failed reload
	if c.GetTemplateByID("daily-like") == nil {
		t.Error("cache lost its catalog after failed reload")
	}
}
