package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"ai-recipe-assistant/internal/api"
	"ai-recipe-assistant/internal/config"
	"ai-recipe-assistant/internal/prefs"
	"ai-recipe-assistant/internal/recipe"
	"ai-recipe-assistant/internal/search"
	"ai-recipe-assistant/internal/settings"
	"ai-recipe-assistant/internal/shoppinglist"
)

// assistant owns the interactive session state: the screens share one
// selection slot, one shopping list and one settings manager, same as the
// mobile app they mirror.
type assistant struct {
	client       api.Client
	settings     *settings.Manager
	orchestrator *search.Orchestrator
	selection    *recipe.Selection
	list         *shoppinglist.Manager

	lastResults []recipe.Recipe
}

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	client := api.NewClient(cfg)

	prefStore, err := prefs.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize preference store: %v", err)
	}

	a := &assistant{
		client:       client,
		settings:     settings.NewManager(client, prefStore),
		orchestrator: search.NewOrchestrator(client),
		selection:    recipe.NewSelection(),
		list:         shoppinglist.NewManager(client),
	}

	lang := a.settings.Load(ctx)
	fmt.Printf("Recipe Assistant (language: %s)\n", lang)
	fmt.Println("Type ingredients to search, or 'help' for commands.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		a.dispatch(ctx, line)
	}
}

func (a *assistant) dispatch(ctx context.Context, line string) {
	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case "help":
		printHelp()
	case "view":
		a.viewResult(arg)
	case "translate":
		a.translateSelected(ctx)
	case "add-missing":
		a.addMissing(ctx)
	case "list":
		a.showList(ctx)
	case "del":
		a.deleteItem(ctx, arg)
	case "clear":
		a.clearList(ctx)
	case "lang":
		a.changeLanguage(ctx, arg)
	case "import":
		a.importRecipe(ctx, arg)
	default:
		a.searchRecipes(ctx, line)
	}
}

func printHelp() {
	fmt.Println(`Commands:
  <ingredients>     search recipes (e.g. "rice, tomatoes, onions")
  view <n>          show result n from the last search
  translate         translate the selected recipe
  add-missing       add the selected recipe's missing items to the list
  import <url>      clip a recipe from a web page
  list              show the shopping list
  del <id>          remove a shopping list item
  clear             empty the shopping list
  lang [language]   show or change the language
  quit              exit`)
}

func (a *assistant) searchRecipes(ctx context.Context, ingredients string) {
	fmt.Println("Finding recipes...")
	recipes, err := a.orchestrator.FindRecipes(ctx, ingredients, a.settings.Active())
	if err != nil {
		switch {
		case errors.Is(err, search.ErrEmptyInput):
			fmt.Println("Enter at least one ingredient.")
		case errors.Is(err, search.ErrBusy):
			fmt.Println("A search is already running.")
		default:
			fmt.Println("Could not fetch recipes right now. Please try again.")
		}
		return
	}

	if len(recipes) == 0 {
		fmt.Println("No recipes found. Try different ingredients.")
		return
	}

	a.lastResults = recipes
	for i, rec := range recipes {
		fmt.Printf("%d. %s — %s\n", i+1, rec.Name, rec.Description)
	}
	fmt.Println("Use 'view <n>' to see a recipe.")
}

func (a *assistant) viewResult(arg string) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(a.lastResults) {
		fmt.Println("Pick a result number from the last search.")
		return
	}

	a.selection.Put(a.lastResults[n-1])
	rec, err := a.selection.Get()
	if err != nil {
		fmt.Println("No recipe selected.")
		return
	}
	printRecipe(rec)
}

func printRecipe(rec recipe.Recipe) {
	missing := rec.MissingSet()

	fmt.Printf("\n%s\n%s\n", rec.Name, rec.Description)
	if rec.EstimatedTime != "" {
		fmt.Printf("Time: %s\n", rec.EstimatedTime)
	}
	fmt.Println("\nIngredients:")
	for _, ing := range rec.Ingredients {
		if missing[ing] {
			fmt.Printf("  - %s (missing)\n", ing)
			delete(missing, ing)
		} else {
			fmt.Printf("  - %s\n", ing)
		}
	}
	for _, item := range rec.MissingItems {
		if missing[item] {
			fmt.Printf("  - %s (missing)\n", item)
		}
	}
	fmt.Println("\nSteps:")
	for i, step := range rec.Steps {
		fmt.Printf("  %d. %s\n", i+1, step)
	}
	fmt.Println()
}

func (a *assistant) translateSelected(ctx context.Context) {
	rec, err := a.selection.Get()
	if err != nil {
		fmt.Println("No recipe selected. Use 'view <n>' first.")
		return
	}

	var sb strings.Builder
	sb.WriteString(rec.Name + "\n" + rec.Description + "\n\nIngredients:\n")
	for _, ing := range rec.Ingredients {
		sb.WriteString("- " + ing + "\n")
	}
	sb.WriteString("\nSteps:\n")
	for i, step := range rec.Steps {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
	}

	fmt.Println("Translating...")
	translated, err := a.client.Translate(ctx, sb.String(), a.settings.Active())
	if err != nil {
		fmt.Println("Translation failed. Please try again.")
		return
	}
	fmt.Println(translated)
}

func (a *assistant) addMissing(ctx context.Context) {
	rec, err := a.selection.Get()
	if err != nil {
		fmt.Println("No recipe selected. Use 'view <n>' first.")
		return
	}
	if len(rec.MissingItems) == 0 {
		fmt.Println("You already have everything for this recipe.")
		return
	}

	if err := a.list.Add(ctx, rec.MissingItems); err != nil {
		var recErr *shoppinglist.ReconcileError
		if errors.As(err, &recErr) {
			fmt.Println("Items added, but the list could not be re-fetched and may be out of date.")
			return
		}
		fmt.Println("Could not update the shopping list. Please try again.")
		return
	}
	fmt.Printf("Added %d items to the shopping list.\n", len(rec.MissingItems))
}

func (a *assistant) importRecipe(ctx context.Context, url string) {
	url = strings.TrimSpace(url)
	if url == "" {
		fmt.Println("Usage: import <url>")
		return
	}

	fmt.Println("Clipping recipe...")
	rec, err := a.client.ImportRecipe(ctx, url)
	if err != nil {
		fmt.Println("Could not extract a recipe from that page.")
		return
	}
	a.selection.Put(*rec)
	printRecipe(*rec)
}

func (a *assistant) showList(ctx context.Context) {
	if err := a.list.Refresh(ctx); err != nil {
		fmt.Println("Could not refresh the list; showing the last known copy.")
	}

	items := a.list.Items()
	if len(items) == 0 {
		fmt.Println("The shopping list is empty.")
		return
	}
	for _, item := range items {
		fmt.Printf("  %s  (%s)\n", item.Name, item.ID)
	}
}

func (a *assistant) deleteItem(ctx context.Context, id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		fmt.Println("Usage: del <id>")
		return
	}

	if err := a.list.Delete(ctx, id); err != nil {
		var recErr *shoppinglist.ReconcileError
		if errors.As(err, &recErr) {
			fmt.Println("Removed, but the list could not be re-fetched and may be out of date.")
			return
		}
		fmt.Println("Could not remove that item. Please try again.")
		return
	}
	fmt.Println("Removed.")
}

func (a *assistant) clearList(ctx context.Context) {
	if err := a.list.Clear(ctx); err != nil {
		var recErr *shoppinglist.ReconcileError
		if errors.As(err, &recErr) {
			fmt.Println("Cleared, but the list could not be re-fetched and may be out of date.")
			return
		}
		fmt.Println("Could not clear the list. Please try again.")
		return
	}
	fmt.Println("Shopping list cleared.")
}

func (a *assistant) changeLanguage(ctx context.Context, arg string) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		fmt.Printf("Current language: %s\n", a.settings.Active())
		fmt.Printf("Supported: %s\n", strings.Join(settings.SupportedLanguages, ", "))
		return
	}

	status, err := a.settings.Save(ctx, arg)
	switch {
	case err != nil:
		fmt.Printf("Unsupported language %q. Supported: %s\n", arg, strings.Join(settings.SupportedLanguages, ", "))
	case status == settings.SaveUnchanged:
		// Redundant selection: no save happened, just re-show the state.
		fmt.Printf("Current language: %s\n", a.settings.Active())
	case status == settings.SaveLocalOnly:
		fmt.Printf("Language set to %s (saved on this device, not yet synced).\n", arg)
	default:
		fmt.Printf("Language set to %s.\n", arg)
	}
}
