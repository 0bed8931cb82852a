// ABOUTME: Root Cobra command for the fitforge CLI.
// ABOUTME: Opens config, logging, storage, session cache, and the API client in PersistentPreRunE.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/harperreed/fitforge/internal/api"
	"github.com/harperreed/fitforge/internal/appstate"
	"github.com/harperreed/fitforge/internal/cache"
	"github.com/harperreed/fitforge/internal/config"
	"github.com/harperreed/fitforge/internal/contact"
	"github.com/harperreed/fitforge/internal/logging"
	"github.com/harperreed/fitforge/internal/models"
	"github.com/harperreed/fitforge/internal/pricing"
	"github.com/harperreed/fitforge/internal/recipe"
	"github.com/harperreed/fitforge/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg          *config.Config
	logger       *log.Logger
	repo         storage.Repository
	sessionStore cache.Store
	sessionCache *cache.Cache
	apiClient    *api.Client
	state        *appstate.Store
	ingredients  recipe.Table

	stopAuthWatch func()
)

var rootCmd = &cobra.Command{
	Use:   "fitforge",
	Short: "FitForge fitness onboarding and nutrition client",
	Long: `FitForge is the command-line client for the FitForge fitness service.

GETTING STARTED:

  $ fitforge login --token <token>         # Store your API token
  $ fitforge onboard                       # Answer the 14-step questionnaire
  $ fitforge onboard --answers me.yaml     # Or submit prepared answers

RECIPES AND MEALS:

  $ fitforge recipe suggest alo            # Find reference ingredients
  $ fitforge recipe new                    # Build a recipe interactively
  $ fitforge recipe list                   # List saved recipes
  $ fitforge meal log <recipe-id> --servings 2

TOOLS:

  $ fitforge convert 180 cm in             # Unit conversion
  $ fitforge pricing --promo SAVE20        # Plans with a promo applied
  $ fitforge contact --name ... --email ... --subject ... --message ...

DATA:

  Local state (token, profile, last onboarding answers, pending saves) lives
  in SQLite at ~/.local/share/fitforge/fitforge.db, or in Charm KV when
  "backend": "charm" is set in ~/.config/fitforge/config.json.

  Session state (cached plans and recipes, promo and contact flags) lives in
  a badger store under ~/.cache/fitforge, in memory, or in Redis.

MCP INTEGRATION:

  Run 'fitforge mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "fitforge": { "command": "fitforge", "args": ["mcp"] }
    }
  }`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for commands that don't need it
		switch cmd.Name() {
		case "help", "version", "convert", "install-skill":
			return nil
		}
		return openApp()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeApp()
	},
}

// Execute runs the root command. Resources are released even when a
// command fails, since cobra skips post-run hooks on error.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeApp(); err == nil {
		err = cerr
	}
	return err
}

func openApp() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger = logging.New(cfg.GetLogLevel(), os.Stderr)

	repo, err = cfg.OpenStorage()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	sessionStore, err = cfg.OpenSession()
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	sessionCache = cache.New(sessionStore).WithLogger(logger)

	ingredients, err = cfg.LoadIngredients()
	if err != nil {
		return fmt.Errorf("failed to load ingredients: %w", err)
	}

	state = appstate.New()
	stopAuthWatch = state.SubscribeAuthPrompt(func(open bool) {
		if open {
			color.New(color.FgYellow).Fprintln(os.Stderr, "⚠ Please sign in: fitforge login --token <token>")
		}
	})
	state.SetUser(currentUser())

	apiClient = api.New(cfg.GetAPIURL(),
		api.WithTokenSource(repo),
		api.WithAuthPrompter(state),
		api.WithLogger(logger),
	)
	return nil
}

func closeApp() error {
	if stopAuthWatch != nil {
		stopAuthWatch()
		stopAuthWatch = nil
	}
	var errs []error
	if sessionStore != nil {
		errs = append(errs, sessionStore.Close())
		sessionStore = nil
	}
	if repo != nil {
		errs = append(errs, repo.Close())
		repo = nil
	}
	return errors.Join(errs...)
}

// currentUser is the signed-in user: nil without a token, otherwise the
// cached profile or a blank one.
func currentUser() *models.UserProfile {
	if _, err := repo.GetToken(); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("read token", "err", err)
		}
		return nil
	}
	p, err := repo.GetProfile()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("read cached profile", "err", err)
		}
		return models.NewUserProfile("", "")
	}
	return p
}

func recipeService() *recipe.Service {
	return recipe.NewService(apiClient, sessionCache, ingredients, logger)
}

func pricingService() *pricing.Service {
	return pricing.NewService(apiClient, sessionCache, logger, func(msg string) {
		color.New(color.FgYellow).Fprintln(os.Stderr, "⚠ "+msg)
	})
}

func contactForm() *contact.Form {
	return contact.NewForm(apiClient, sessionCache, logger)
}
