// ABOUTME: Typed wrappers for each FitForge API endpoint.
// ABOUTME: Onboarding, recipes, nutrition, pricing, promos, and contact.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/harperreed/fitforge/internal/models"
)

// SaveOnboarding posts the onboarding submission.
func (c *Client) SaveOnboarding(ctx context.Context, submission any) error {
	if err := c.do(ctx, http.MethodPost, "/user/onboarding", nil, submission, nil, true); err != nil {
		return fmt.Errorf("save onboarding: %w", err)
	}
	return nil
}

// ListRecipes returns the user's saved recipes. The endpoint may answer with
// a bare array or with {"recipes": [...]}.
func (c *Client) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/recipes", nil, nil, &raw, true); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var list []models.Recipe
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Recipes []models.Recipe `json:"recipes"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}
	return wrapped.Recipes, nil
}

// CreateRecipe saves a recipe and returns it as stored.
func (c *Client) CreateRecipe(ctx context.Context, r models.Recipe) (*models.Recipe, error) {
	var saved models.Recipe
	if err := c.do(ctx, http.MethodPost, "/recipes", nil, r, &saved, true); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	if saved.Name == "" {
		saved = r
	}
	return &saved, nil
}

// DeleteRecipe removes a recipe by id.
func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/recipes/"+url.PathEscape(id), nil, nil, nil, true); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

// MealItem is one line of a logged meal.
type MealItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// MealLog is the body of POST /nutrition.
type MealLog struct {
	MealType string     `json:"mealType"`
	Items    []MealItem `json:"items"`
}

// LogMeal records eaten food.
func (c *Client) LogMeal(ctx context.Context, meal MealLog) error {
	if err := c.do(ctx, http.MethodPost, "/nutrition", nil, meal, nil, true); err != nil {
		return fmt.Errorf("log meal: %w", err)
	}
	return nil
}

type nutrient struct {
	Quantity float64 `json:"quantity"`
}

type lookupResponse struct {
	Calories       float64 `json:"calories"`
	TotalNutrients struct {
		Protein nutrient `json:"PROCNT"`
		Carbs   nutrient `json:"CHOCDF"`
		Fat     nutrient `json:"FAT"`
	} `json:"totalNutrients"`
}

// LookupNutrition asks the external lookup about a free-text ingredient
// such as "100g paneer".
func (c *Client) LookupNutrition(ctx context.Context, query string) (models.Nutrition, error) {
	var resp lookupResponse
	q := url.Values{"ingr": {query}}
	if err := c.do(ctx, http.MethodGet, "/nutrition-lookup", q, nil, &resp, true); err != nil {
		return models.Nutrition{}, fmt.Errorf("lookup nutrition: %w", err)
	}
	return models.Nutrition{
		Calories: resp.Calories,
		Protein:  resp.TotalNutrients.Protein.Quantity,
		Carbs:    resp.TotalNutrients.Carbs.Quantity,
		Fats:     resp.TotalNutrients.Fat.Quantity,
	}, nil
}

// Pricing returns the subscription plans. No auth is required.
func (c *Client) Pricing(ctx context.Context) ([]models.Plan, error) {
	var resp struct {
		Plans []models.Plan `json:"plans"`
	}
	if err := c.do(ctx, http.MethodGet, "/pricing", nil, nil, &resp, false); err != nil {
		return nil, fmt.Errorf("get pricing: %w", err)
	}
	return resp.Plans, nil
}

// ActivePromo returns the current promo, or nil when there is none.
func (c *Client) ActivePromo(ctx context.Context) (*models.Promo, error) {
	var resp struct {
		Promo *models.Promo `json:"promo"`
	}
	err := c.do(ctx, http.MethodGet, "/promo/active", nil, nil, &resp, false)
	var aerr *APIError
	if errors.As(err, &aerr) && aerr.Status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active promo: %w", err)
	}
	if resp.Promo == nil || resp.Promo.Code == "" {
		return nil, nil
	}
	return resp.Promo, nil
}

// PromoValidation is the answer from POST /promo/validate.
type PromoValidation struct {
	Valid   bool          `json:"valid"`
	Promo   *models.Promo `json:"promo,omitempty"`
	Message string        `json:"message,omitempty"`
}

// ValidatePromo checks a code against a plan.
func (c *Client) ValidatePromo(ctx context.Context, code, planID string) (*PromoValidation, error) {
	body := map[string]string{"code": code, "planId": planID}
	var resp PromoValidation
	if err := c.do(ctx, http.MethodPost, "/promo/validate", nil, body, &resp, false); err != nil {
		return nil, fmt.Errorf("validate promo: %w", err)
	}
	return &resp, nil
}

// SubmitContact sends the contact form.
func (c *Client) SubmitContact(ctx context.Context, msg models.ContactMessage) error {
	if err := c.do(ctx, http.MethodPost, "/contact/submit", nil, msg, nil, false); err != nil {
		return fmt.Errorf("submit contact: %w", err)
	}
	return nil
}
