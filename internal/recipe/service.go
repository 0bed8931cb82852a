// ABOUTME: Recipe service tying drafts to the API and the session cache.
// ABOUTME: Lists are cached briefly; writes invalidate the cached list.
package recipe

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitforge/internal/api"
	"github.com/harperreed/fitforge/internal/cache"
	"github.com/harperreed/fitforge/internal/models"
)

const (
	listCacheKey = "recipes"
	listCacheTTL = time.Minute
)

// RecipeAPI is the part of the API client the service uses.
type RecipeAPI interface {
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	CreateRecipe(ctx context.Context, r models.Recipe) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
	LookupNutrition(ctx context.Context, query string) (models.Nutrition, error)
	LogMeal(ctx context.Context, meal api.MealLog) error
}

// Service manages saved recipes.
type Service struct {
	api    RecipeAPI
	cache  *cache.Cache
	table  Table
	logger *log.Logger
}

// NewService creates a recipe service.
func NewService(client RecipeAPI, c *cache.Cache, table Table, logger *log.Logger) *Service {
	return &Service{api: client, cache: c, table: table, logger: logger}
}

// Table returns the reference table in use.
func (s *Service) Table() Table {
	return s.table
}

// List returns saved recipes, from the session cache when fresh.
func (s *Service) List(ctx context.Context) ([]models.Recipe, error) {
	return cache.GetOrFetch(ctx, s.cache, listCacheKey, listCacheTTL, s.api.ListRecipes)
}

// Get finds a saved recipe by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Recipe, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("recipe %s not found", id)
}

// Save validates and stores a draft.
func (s *Service) Save(ctx context.Context, d *Draft) (*models.Recipe, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	saved, err := s.api.CreateRecipe(ctx, d.Recipe())
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return saved, nil
}

// Delete removes a saved recipe.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Lookup returns per-100g nutrition for name, preferring the reference
// table and falling back to the external lookup.
func (s *Service) Lookup(ctx context.Context, name string) (models.Nutrition, bool, error) {
	if ref, ok := Find(s.table, name); ok {
		return ref.Per100g(), true, nil
	}
	n, err := s.api.LookupNutrition(ctx, "100g "+name)
	if err != nil {
		return models.Nutrition{}, false, err
	}
	return n, false, nil
}

// LogServings posts servings portions of a saved recipe as a meal.
func (s *Service) LogServings(ctx context.Context, id, mealType string, servings float64) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if servings <= 0 {
		return models.Invalid("servings", "must be positive")
	}
	per := FromSaved(*r).PerServing()
	eaten := Round(per.Scale(servings))
	meal := api.MealLog{
		MealType: mealType,
		Items: []api.MealItem{{
			Name:     r.Name,
			Quantity: servings,
			Calories: eaten.Calories,
			Protein:  eaten.Protein,
			Carbs:    eaten.Carbs,
			Fats:     eaten.Fats,
		}},
	}
	return s.api.LogMeal(ctx, meal)
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.PrefixTTL+listCacheKey); err != nil {
		s.logger.Warn("invalidate recipe cache", "err", err)
	}
}
