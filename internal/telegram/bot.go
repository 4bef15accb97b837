package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"ai-recipe-assistant/internal/api"
	"ai-recipe-assistant/internal/config"
	"ai-recipe-assistant/internal/recipe"
	"ai-recipe-assistant/internal/search"
	"ai-recipe-assistant/internal/settings"
	"ai-recipe-assistant/internal/shoppinglist"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot is a Telegram front-end over the assistant's client layer. Each chat
// walks the same screens as the app: compose ingredients, pick a result,
// view the detail, manage the shopping list, change the language.
type Bot struct {
	api          *tgbotapi.BotAPI
	client       api.Client
	settings     *settings.Manager
	orchestrator *search.Orchestrator
	selection    *recipe.Selection
	list         *shoppinglist.Manager
	transcriber  search.Transcriber // nil when voice input is unavailable
	cfg          *config.Config

	mu          sync.Mutex
	drafts      map[int64]string          // per-chat dictated ingredient text
	lastResults map[int64][]recipe.Recipe // per-chat last search results
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(
	cfg *config.Config,
	client api.Client,
	settingsMgr *settings.Manager,
	orchestrator *search.Orchestrator,
	selection *recipe.Selection,
	list *shoppinglist.Manager,
	transcriber search.Transcriber,
) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          bot,
		client:       client,
		settings:     settingsMgr,
		orchestrator: orchestrator,
		selection:    selection,
		list:         list,
		transcriber:  transcriber,
		cfg:          cfg,
		drafts:       make(map[int64]string),
		lastResults:  make(map[int64][]recipe.Recipe),
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	if !b.allowed(update.Message.From.ID) {
		log.Printf("Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) allowed(userID int64) bool {
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if userID == id {
			return true
		}
	}
	return false
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	if msg.Voice != nil {
		b.handleVoiceNote(msg)
		return
	}

	switch {
	case msg.Text == "/start":
		b.sendPlain(msg.Chat.ID, "Send me the ingredients you have (e.g. \"rice, tomatoes, onions\") and I'll suggest recipes.\n\nCommands:\n/go – search with your dictated ingredients\n/list – shopping list\n/clear – empty the shopping list\n/language – choose your language\n\nYou can also send a voice note or a recipe URL.")
		return
	case msg.Text == "/language":
		b.sendLanguageKeyboard(msg.Chat.ID)
		return
	case msg.Text == "/list":
		b.handleListCommand(msg.Chat.ID)
		return
	case msg.Text == "/clear":
		b.handleClearCommand(msg.Chat.ID)
		return
	case strings.HasPrefix(msg.Text, "/del "):
		b.handleDeleteCommand(msg.Chat.ID, strings.TrimSpace(strings.TrimPrefix(msg.Text, "/del ")))
		return
	case msg.Text == "/go":
		b.searchFromDraft(msg.Chat.ID)
		return
	case msg.Text == "/metrics":
		b.handleMetricsRequest(msg)
		return
	case strings.HasPrefix(msg.Text, "http://") || strings.HasPrefix(msg.Text, "https://"):
		b.handleImportRequest(msg)
		return
	}

	b.handleSearchRequest(msg.Chat.ID, msg.Text)
}

// --- Search screen ---

func (b *Bot) handleSearchRequest(chatID int64, ingredients string) {
	statusMsg := b.sendPlain(chatID, "🧑‍🍳 Thinking... (finding recipes for your ingredients)")

	ctx := context.Background()
	recipes, err := b.orchestrator.FindRecipes(ctx, ingredients, b.settings.Active())
	if err != nil {
		b.editPlain(chatID, statusMsg, b.searchErrorText(err))
		return
	}

	if len(recipes) == 0 {
		b.editPlain(chatID, statusMsg, "No recipes found. Try different ingredients.")
		return
	}

	b.mu.Lock()
	b.lastResults[chatID] = recipes
	b.mu.Unlock()

	var sb strings.Builder
	sb.WriteString("🍽 *Recipe Suggestions*\n\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, rec := range recipes {
		sb.WriteString(fmt.Sprintf("*%d. %s*\n_%s_\n", i+1, rec.Name, rec.Description))
		if rec.EstimatedTime != "" {
			sb.WriteString(fmt.Sprintf("⏱ %s\n", rec.EstimatedTime))
		}
		sb.WriteString("\n")
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("View %d", i+1), fmt.Sprintf("pick|%d", i)),
		))
	}

	edit := tgbotapi.NewEditMessageText(chatID, statusMsg, sb.String())
	edit.ParseMode = "Markdown"
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	edit.ReplyMarkup = &keyboard
	b.api.Send(edit)
}

func (b *Bot) searchErrorText(err error) string {
	switch {
	case errors.Is(err, search.ErrEmptyInput):
		return "Please tell me at least one ingredient first."
	case errors.Is(err, search.ErrBusy):
		return "Still working on your previous search, one moment."
	default:
		return "❌ Could not fetch recipes right now. Please try again."
	}
}

// --- Voice dictation ---

func (b *Bot) handleVoiceNote(msg *tgbotapi.Message) {
	if b.transcriber == nil {
		b.sendPlain(msg.Chat.ID, "Voice input isn't set up here. Please type your ingredients instead.")
		return
	}

	audio, err := b.downloadFile(msg.Voice.FileID)
	if err != nil {
		log.Printf("Failed to download voice note: %v", err)
		b.sendPlain(msg.Chat.ID, "Couldn't fetch that voice note. Please type your ingredients instead.")
		return
	}

	phrase, err := b.transcriber.Transcribe(context.Background(), audio, msg.Voice.MimeType)
	if err != nil {
		log.Printf("Transcription failed: %v", err)
		b.sendPlain(msg.Chat.ID, "Couldn't understand that voice note. Please type your ingredients instead.")
		return
	}

	b.mu.Lock()
	draft := search.AppendTranscript(b.drafts[msg.Chat.ID], phrase)
	b.drafts[msg.Chat.ID] = draft
	b.mu.Unlock()

	b.sendPlain(msg.Chat.ID, fmt.Sprintf("🎤 Got it: %q\nYour ingredients so far: %s\n\nSend another voice note to add more, or /go to search.", phrase, draft))
}

func (b *Bot) searchFromDraft(chatID int64) {
	b.mu.Lock()
	draft := b.drafts[chatID]
	delete(b.drafts, chatID)
	b.mu.Unlock()

	b.handleSearchRequest(chatID, draft)
}

func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download failed: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// --- Recipe detail screen ---

func (b *Bot) showRecipeDetail(chatID int64, rec recipe.Recipe) {
	msg := tgbotapi.NewMessage(chatID, formatRecipeMarkdown(rec))
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌐 Translate", "translate"),
			tgbotapi.NewInlineKeyboardButtonData("🛒 Add missing items", "addmissing"),
		),
	)
	b.api.Send(msg)
}

func formatRecipeMarkdown(rec recipe.Recipe) string {
	missing := rec.MissingSet()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s*\n_%s_\n", rec.Name, rec.Description))
	if rec.EstimatedTime != "" {
		sb.WriteString(fmt.Sprintf("⏱ %s\n", rec.EstimatedTime))
	}

	sb.WriteString("\n*Ingredients*\n")
	for _, ing := range rec.Ingredients {
		if missing[ing] {
			sb.WriteString(fmt.Sprintf("• %s _(missing)_\n", ing))
			delete(missing, ing)
		} else {
			sb.WriteString(fmt.Sprintf("• %s\n", ing))
		}
	}
	// Missing items with no exact ingredient match still get shown.
	for _, item := range rec.MissingItems {
		if missing[item] {
			sb.WriteString(fmt.Sprintf("• %s _(missing)_\n", item))
		}
	}

	sb.WriteString("\n*Steps*\n")
	for i, step := range rec.Steps {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
	}

	return sb.String()
}

// --- Shopping list screen ---

func (b *Bot) handleListCommand(chatID int64) {
	if err := b.list.Refresh(context.Background()); err != nil {
		log.Printf("Shopping list refresh failed: %v", err)
	}

	items := b.list.Items()
	if len(items) == 0 {
		b.sendPlain(chatID, "🛒 Your shopping list is empty.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("• %s\n  `/del %s`\n", item.Name, item.ID))
	}

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}

func (b *Bot) handleDeleteCommand(chatID int64, id string) {
	err := b.list.Delete(context.Background(), id)
	var recErr *shoppinglist.ReconcileError
	switch {
	case err == nil:
		b.sendPlain(chatID, "✅ Removed.")
	case errors.As(err, &recErr):
		b.sendPlain(chatID, "✅ Removed, but the list could not be re-fetched and may be out of date.")
	default:
		log.Printf("Delete failed: %v", err)
		b.sendPlain(chatID, "❌ Could not remove that item. Please try again.")
	}
	b.handleListCommand(chatID)
}

func (b *Bot) handleClearCommand(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Remove every item from the shopping list?")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Yes, clear it", "clear|yes"),
		),
	)
	b.api.Send(msg)
}

// --- Settings screen ---

func (b *Bot) sendLanguageKeyboard(chatID int64) {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, lang := range settings.SupportedLanguages {
		label := lang
		if lang == b.settings.Active() {
			label = "✓ " + lang
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "lang|"+lang),
		))
	}

	msg := tgbotapi.NewMessage(chatID, "Choose your language:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.api.Send(msg)
}

// --- Callbacks ---

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	// Buttons carry the same mutations as messages; same allow-list.
	if !b.allowed(query.From.ID) {
		log.Printf("Unauthorized callback from UserID: %d (@%s)", query.From.ID, query.From.UserName)
		return
	}

	// Answer first to remove the spinner.
	b.api.Request(tgbotapi.NewCallback(query.ID, ""))

	chatID := query.Message.Chat.ID
	parts := strings.SplitN(query.Data, "|", 2)
	action := parts[0]

	switch action {
	case "pick":
		if len(parts) < 2 {
			return
		}
		idx, err := strconv.Atoi(parts[1])
		if err != nil {
			return
		}

		b.mu.Lock()
		results := b.lastResults[chatID]
		b.mu.Unlock()
		if idx < 0 || idx >= len(results) {
			b.sendPlain(chatID, "That suggestion has expired. Search again.")
			return
		}

		b.selection.Put(results[idx])
		rec, err := b.selection.Get()
		if err != nil {
			// Nothing to render; back to the search screen.
			b.sendPlain(chatID, "No recipe selected. Search again.")
			return
		}
		b.showRecipeDetail(chatID, rec)

	case "translate":
		b.handleTranslateCallback(chatID)

	case "addmissing":
		b.handleAddMissingCallback(chatID)

	case "clear":
		err := b.list.Clear(context.Background())
		var recErr *shoppinglist.ReconcileError
		switch {
		case err == nil:
			b.sendPlain(chatID, "✅ Shopping list cleared.")
		case errors.As(err, &recErr):
			b.sendPlain(chatID, "✅ Cleared, but the list could not be re-fetched and may be out of date.")
		default:
			log.Printf("Clear failed: %v", err)
			b.sendPlain(chatID, "❌ Could not clear the list. Please try again.")
		}

	case "lang":
		if len(parts) < 2 {
			return
		}
		status, err := b.settings.Save(context.Background(), parts[1])
		switch {
		case err != nil:
			b.sendPlain(chatID, "❌ That language is not supported.")
		case status == settings.SaveUnchanged:
			// Redundant selection: no alert, no network call was made.
		case status == settings.SaveLocalOnly:
			b.sendPlain(chatID, fmt.Sprintf("✅ Language set to %s (saved on this device, not yet synced).", parts[1]))
		default:
			b.sendPlain(chatID, fmt.Sprintf("✅ Language set to %s.", parts[1]))
		}
	}
}

func (b *Bot) handleTranslateCallback(chatID int64) {
	rec, err := b.selection.Get()
	if err != nil {
		b.sendPlain(chatID, "No recipe selected. Search again.")
		return
	}

	statusMsg := b.sendPlain(chatID, "🌐 Translating...")

	translated, err := b.client.Translate(context.Background(), formatRecipePlain(rec), b.settings.Active())
	if err != nil {
		log.Printf("Translation failed: %v", err)
		b.editPlain(chatID, statusMsg, "❌ Translation failed. Please try again.")
		return
	}
	b.editPlain(chatID, statusMsg, translated)
}

func (b *Bot) handleAddMissingCallback(chatID int64) {
	rec, err := b.selection.Get()
	if err != nil {
		b.sendPlain(chatID, "No recipe selected. Search again.")
		return
	}

	if len(rec.MissingItems) == 0 {
		b.sendPlain(chatID, "You already have everything for this recipe.")
		return
	}

	if err := b.list.Add(context.Background(), rec.MissingItems); err != nil {
		log.Printf("Add missing items failed: %v", err)
		b.sendPlain(chatID, "❌ Could not update the shopping list. Please try again.")
		return
	}
	b.sendPlain(chatID, fmt.Sprintf("✅ Added %d items to your shopping list. See them with /list.", len(rec.MissingItems)))
}

// --- Recipe import ---

func (b *Bot) handleImportRequest(msg *tgbotapi.Message) {
	statusMsg := b.sendPlain(msg.Chat.ID, "✂️ Clipping recipe from that page...")

	rec, err := b.client.ImportRecipe(context.Background(), msg.Text)
	if err != nil {
		log.Printf("Error importing recipe: %v", err)
		b.editPlain(msg.Chat.ID, statusMsg, "❌ Could not extract a recipe from that page.")
		return
	}

	b.selection.Put(*rec)
	b.editPlain(msg.Chat.ID, statusMsg, "✅ Recipe clipped!")
	b.showRecipeDetail(msg.Chat.ID, *rec)
}

// --- Admin ---

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.sendPlain(msg.Chat.ID, "⛔ Access Denied: Admin only.")
		return
	}
	b.handleMetricsCommand(msg.Chat.ID)
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	usage, err := b.client.FetchDailyUsage(context.Background(), 7)
	if err != nil {
		log.Printf("Error fetching metrics: %v", err)
		b.sendPlain(chatID, "❌ Error fetching metrics.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 *Usage Report*\n\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d requests, avg %dms\n", d.Date, d.Executions, d.AvgLatencyMS))
	}

	m := tgbotapi.NewMessage(chatID, sb.String())
	m.ParseMode = "Markdown"
	b.api.Send(m)
}

// --- Helpers ---

func (b *Bot) sendPlain(chatID int64, text string) int {
	sent, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		log.Printf("Failed to send message: %v", err)
		return 0
	}
	return sent.MessageID
}

func (b *Bot) editPlain(chatID int64, messageID int, text string) {
	if messageID == 0 {
		b.sendPlain(chatID, text)
		return
	}
	b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text))
}

func formatRecipePlain(rec recipe.Recipe) string {
	var sb strings.Builder
	sb.WriteString(rec.Name + "\n" + rec.Description + "\n\nIngredients:\n")
	for _, ing := range rec.Ingredients {
		sb.WriteString("- " + ing + "\n")
	}
	sb.WriteString("\nSteps:\n")
	for i, step := range rec.Steps {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
	}
	return sb.String()
}
