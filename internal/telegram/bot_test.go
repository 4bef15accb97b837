package telegram

import (
	"context"
	"strings"
	"testing"

	"ai-recipe-assistant/internal/config"
	"ai-recipe-assistant/internal/recipe"
	"ai-recipe-assistant/internal/search"
	"ai-recipe-assistant/internal/settings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestFormatRecipeMarkdown(t *testing.T) {
	rec := recipe.Recipe{
		Name:          "Tomato Rice",
		Description:   "A quick one-pot meal.",
		Ingredients:   []string{"rice", "tomatoes", "cumin"},
		Steps:         []string{"Cook the rice.", "Stir in the tomatoes."},
		MissingItems:  []string{"cumin"},
		EstimatedTime: "25 minutes",
	}

	got := formatRecipeMarkdown(rec)

	if !strings.Contains(got, "*Tomato Rice*") {
		t.Errorf("expected bold title, got:\n%s", got)
	}
	if !strings.Contains(got, "25 minutes") {
		t.Errorf("expected estimated time, got:\n%s", got)
	}
	if !strings.Contains(got, "• cumin _(missing)_") {
		t.Errorf("expected cumin marked as missing, got:\n%s", got)
	}
	if strings.Contains(got, "• rice _(missing)_") {
		t.Errorf("rice should not be marked missing, got:\n%s", got)
	}
	if !strings.Contains(got, "1. Cook the rice.") || !strings.Contains(got, "2. Stir in the tomatoes.") {
		t.Errorf("expected numbered steps, got:\n%s", got)
	}
}

func TestFormatRecipeMarkdownMissingItemNotInIngredients(t *testing.T) {
	rec := recipe.Recipe{
		Name:         "Dal",
		Ingredients:  []string{"lentils"},
		MissingItems: []string{"ghee"},
	}

	got := formatRecipeMarkdown(rec)

	if !strings.Contains(got, "• ghee _(missing)_") {
		t.Errorf("missing item absent from ingredients should still appear, got:\n%s", got)
	}
	if strings.Count(got, "ghee") != 1 {
		t.Errorf("missing item should appear exactly once, got:\n%s", got)
	}
}

type noopRemote struct{}

func (noopRemote) FetchSettings(ctx context.Context) (string, error)       { return "", nil }
func (noopRemote) SaveSettings(ctx context.Context, language string) error { return nil }

type noopLocal struct{}

func (noopLocal) Language() (string, bool)          { return "", false }
func (noopLocal) SetLanguage(language string) error { return nil }

func TestCallbackQueryRequiresAllowedUser(t *testing.T) {
	settingsMgr := settings.NewManager(noopRemote{}, noopLocal{})
	b := &Bot{
		cfg:      &config.Config{TelegramAllowedUserIDs: []int64{42}},
		settings: settingsMgr,
	}

	// An unlisted user pressing a language button must be dropped before
	// any state change. b.api is nil, so reaching further would panic.
	b.handleCallbackQuery(&tgbotapi.CallbackQuery{
		ID:   "cb1",
		From: &tgbotapi.User{ID: 99, UserName: "stranger"},
		Data: "lang|Hindi",
	})

	if got := settingsMgr.Active(); got != settings.DefaultLanguage {
		t.Errorf("Expected settings untouched, got '%s'", got)
	}
}

func TestAllowed(t *testing.T) {
	b := &Bot{cfg: &config.Config{TelegramAllowedUserIDs: []int64{1, 2}}}

	if !b.allowed(2) {
		t.Error("Expected listed user to be allowed")
	}
	if b.allowed(3) {
		t.Error("Expected unlisted user to be rejected")
	}
}

func TestSearchErrorText(t *testing.T) {
	b := &Bot{}

	if got := b.searchErrorText(search.ErrEmptyInput); !strings.Contains(got, "at least one ingredient") {
		t.Errorf("unexpected empty-input text: %s", got)
	}
	if got := b.searchErrorText(search.ErrBusy); !strings.Contains(got, "previous search") {
		t.Errorf("unexpected busy text: %s", got)
	}
}
