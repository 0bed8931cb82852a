// ABOUTME: MCP tool implementations for fitforge.
// ABOUTME: Ingredient suggestions and scaling, unit conversion, promo pricing, and onboarding state.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/fitforge/internal/models"
	"github.com/harperreed/fitforge/internal/onboarding"
	"github.com/harperreed/fitforge/internal/pricing"
	"github.com/harperreed/fitforge/internal/recipe"
	"github.com/harperreed/fitforge/internal/storage"
	"github.com/harperreed/fitforge/internal/units"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "suggest_ingredients",
		Description: "Suggest reference ingredients whose name or alias contains the text (at least 2 characters, up to 5 results)",
	}, s.handleSuggestIngredients)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "scale_ingredient",
		Description: "Compute calories and macros for a quantity of a reference ingredient",
	}, s.handleScaleIngredient)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "convert_units",
		Description: "Convert a length or mass between cm, in, ft, kg, and lbs (rounded to one decimal)",
	}, s.handleConvertUnits)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "estimate_one_rep_max",
		Description: "Estimate a one-rep max from a weight or a 'weight x reps' set using the Epley formula",
	}, s.handleEstimateOneRM)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "price_with_promo",
		Description: "Apply a percentage or fixed promo discount to a price",
	}, s.handlePriceWithPromo)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_onboarding_answers",
		Description: "Get the last completed onboarding answers stored on this machine",
	}, s.handleGetOnboardingAnswers)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_pending_saves",
		Description: "List onboarding saves that failed and are waiting to be retried",
	}, s.handleListPendingSaves)

	if s.prices != nil {
		mcp.AddTool(s.mcpServer, &mcp.Tool{
			Name:        "list_plans",
			Description: "List subscription plans with their annual savings",
		}, s.handleListPlans)
	}
}

// Tool input/output types

type suggestInput struct {
	Text string `json:"text" jsonschema:"Part of an ingredient name or alias"`
}

type scaleInput struct {
	Name     string  `json:"name" jsonschema:"Ingredient name or alias from the reference table"`
	Quantity float64 `json:"quantity" jsonschema:"Amount in the given unit"`
	Unit     string  `json:"unit,omitempty" jsonschema:"Unit (g, kg, ml, l, cup, tbsp, tsp, piece, slice); defaults to g"`
}

type scaleOutput struct {
	Ingredient string           `json:"ingredient"`
	Grams      float64          `json:"grams"`
	Nutrition  models.Nutrition `json:"nutrition"`
}

type convertInput struct {
	Value float64 `json:"value" jsonschema:"Value to convert"`
	From  string  `json:"from" jsonschema:"Source unit (cm, in, ft, kg, lbs)"`
	To    string  `json:"to" jsonschema:"Target unit (cm, in, ft, kg, lbs)"`
}

type convertOutput struct {
	Value   float64 `json:"value"`
	Unit    string  `json:"unit"`
	Message string  `json:"message"`
}

type oneRMInput struct {
	Lift string `json:"lift" jsonschema:"A weight such as '100' or a set such as '80x5'"`
}

type oneRMOutput struct {
	OneRM   float64 `json:"one_rep_max"`
	Message string  `json:"message"`
}

type promoInput struct {
	Price        float64 `json:"price" jsonschema:"Price before the discount"`
	DiscountType string  `json:"discount_type" jsonschema:"percentage or fixed"`
	Discount     float64 `json:"discount" jsonschema:"Percent off for percentage promos, amount off for fixed promos"`
}

type promoOutput struct {
	FinalPrice float64 `json:"final_price"`
	Display    string  `json:"display"`
}

type emptyInput struct{}

type planOutput struct {
	models.Plan
	AnnualSavingsPercent int `json:"annual_savings_percent"`
}

// Tool handlers

func (s *Server) handleSuggestIngredients(ctx context.Context, req *mcp.CallToolRequest, input suggestInput) (*mcp.CallToolResult, any, error) {
	matches := recipe.Suggest(s.table, input.Text)
	if len(matches) == 0 {
		return nil, map[string]interface{}{"message": "No matching ingredients."}, nil
	}
	return nil, map[string]interface{}{"ingredients": matches}, nil
}

func (s *Server) handleScaleIngredient(ctx context.Context, req *mcp.CallToolRequest, input scaleInput) (*mcp.CallToolResult, scaleOutput, error) {
	ref, ok := recipe.Find(s.table, input.Name)
	if !ok {
		return nil, scaleOutput{}, fmt.Errorf("ingredient not in reference table: %s", input.Name)
	}
	if input.Quantity <= 0 {
		return nil, scaleOutput{}, fmt.Errorf("quantity must be positive")
	}
	unit := input.Unit
	if unit == "" {
		unit = "g"
	}
	grams, err := recipe.ToGrams(input.Quantity, unit)
	if err != nil {
		return nil, scaleOutput{}, err
	}
	n, err := recipe.Scale(ref.Per100g(), input.Quantity, unit)
	if err != nil {
		return nil, scaleOutput{}, err
	}
	return nil, scaleOutput{Ingredient: ref.Name, Grams: grams, Nutrition: n}, nil
}

func (s *Server) handleConvertUnits(ctx context.Context, req *mcp.CallToolRequest, input convertInput) (*mcp.CallToolResult, convertOutput, error) {
	v, err := units.Convert(input.Value, input.From, input.To)
	if err != nil {
		return nil, convertOutput{}, err
	}
	return nil, convertOutput{
		Value:   v,
		Unit:    input.To,
		Message: fmt.Sprintf("%s %s = %s %s", units.FormatValue(input.Value), input.From, units.FormatValue(v), input.To),
	}, nil
}

func (s *Server) handleEstimateOneRM(ctx context.Context, req *mcp.CallToolRequest, input oneRMInput) (*mcp.CallToolResult, oneRMOutput, error) {
	v, ok := onboarding.EstimateOneRM(input.Lift)
	if !ok {
		return nil, oneRMOutput{}, fmt.Errorf("could not read lift %q", input.Lift)
	}
	return nil, oneRMOutput{
		OneRM:   v,
		Message: fmt.Sprintf("Estimated one-rep max: %s", units.FormatValue(v)),
	}, nil
}

func (s *Server) handlePriceWithPromo(ctx context.Context, req *mcp.CallToolRequest, input promoInput) (*mcp.CallToolResult, promoOutput, error) {
	dt := models.DiscountType(input.DiscountType)
	if dt != models.DiscountPercentage && dt != models.DiscountFixed {
		return nil, promoOutput{}, fmt.Errorf("unknown discount type: %s", input.DiscountType)
	}
	final := pricing.FinalPrice(input.Price, &models.Promo{DiscountType: dt, Discount: input.Discount})
	return nil, promoOutput{FinalPrice: final, Display: pricing.FormatPrice(final)}, nil
}

func (s *Server) handleGetOnboardingAnswers(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	answers, err := s.repo.GetOnboardingAnswers()
	if errors.Is(err, storage.ErrNotFound) {
		return nil, map[string]interface{}{"message": "Onboarding has not been completed on this machine."}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read onboarding answers: %w", err)
	}
	return nil, answers, nil
}

func (s *Server) handleListPendingSaves(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	entries, err := s.repo.ListOutbox()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list outbox: %w", err)
	}
	if len(entries) == 0 {
		return nil, map[string]interface{}{"message": "Nothing waiting to be retried."}, nil
	}
	return nil, map[string]interface{}{"pending": entries}, nil
}

func (s *Server) handleListPlans(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	plans := s.prices.Plans(ctx)
	if len(plans) == 0 {
		return nil, map[string]interface{}{"message": "No plans available."}, nil
	}
	out := make([]planOutput, 0, len(plans))
	for _, p := range plans {
		out = append(out, planOutput{Plan: p, AnnualSavingsPercent: pricing.AnnualSavingsPercent(p)})
	}
	return nil, map[string]interface{}{"plans": out}, nil
}
