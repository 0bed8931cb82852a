// ABOUTME: CLI commands for recipes and meal logging.
// ABOUTME: Suggest ingredients, build and save recipes, list/show/delete them, and log servings.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitforge/internal/models"
	"github.com/harperreed/fitforge/internal/recipe"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	recipeName     string
	recipeServings int
	recipeCategory string
	recipeFile     string

	mealType     string
	mealServings float64
)

var recipeCmd = &cobra.Command{
	Use:     "recipe",
	Aliases: []string{"r"},
	Short:   "Build and manage recipes",
	Long: `Build recipes from the ingredient reference table and manage saved ones.

Nutrition is computed from per-100g reference values. Quantities are
converted to grams with: g, kg, ml, l, cup (240), tbsp (15), tsp (5),
piece (100), slice (30).

COMMANDS:

  suggest <text>    ingredients whose name or alias contains text
  lookup <name>     per-100g nutrition (reference table, then online lookup)
  new               build a recipe interactively, or from --file
  list              saved recipes
  show <id>         one recipe with totals and per-serving values
  delete <id>       delete a saved recipe`,
}

var recipeSuggestCmd = &cobra.Command{
	Use:   "suggest <text>",
	Short: "Suggest reference ingredients",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		matches := recipe.Suggest(ingredients, strings.Join(args, " "))
		if len(matches) == 0 {
			fmt.Fprintln(out, "No matching ingredients.")
			return nil
		}
		printReferences(out, matches)
		return nil
	},
}

var recipeLookupCmd = &cobra.Command{
	Use:   "lookup <name>",
	Short: "Look up per-100g nutrition",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		n, fromTable, err := recipeService().Lookup(cmdContext(cmd), name)
		if err != nil {
			return err
		}
		source := "online lookup"
		if fromTable {
			source = "reference table"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s per 100g: %s", name, formatNutrition(recipe.Round(n)))
		color.New(color.Faint).Fprintf(cmd.OutOrStdout(), "  (%s)\n", source)
		return nil
	},
}

var recipeNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Build and save a recipe",
	Long: `Build a recipe and save it to FitForge.

Without --file you are prompted for ingredients one at a time. Type part
of a name to see suggestions, then pick a number. Unknown ingredients are
looked up online, or you can type their nutrition in.

With --file, a JSON or YAML recipe (name, servings, category, ingredients,
instructions) is validated and saved.

EXAMPLES:

  fitforge recipe new --name "Aloo sabzi" --servings 2 --category dinner
  fitforge recipe new --file sabzi.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		out := cmd.OutOrStdout()
		svc := recipeService()

		var d *recipe.Draft
		if recipeFile != "" {
			r, err := loadRecipe(recipeFile)
			if err != nil {
				return err
			}
			d = recipe.FromSaved(r)
		} else {
			d = recipe.NewDraft()
			d.Name = recipeName
			d.SetServings(recipeServings)
			if recipeCategory != "" {
				d.Category = models.RecipeCategory(recipeCategory)
			}
			if err := buildRecipe(ctx, newPrompter(cmd.InOrStdin(), out), svc, d); err != nil {
				return err
			}
		}

		printDraft(out, d)
		saved, err := svc.Save(ctx, d)
		if err != nil {
			return err
		}
		color.Green("✓ Saved recipe %s (ID: %s)", saved.Name, saved.ID)
		return nil
	},
}

var recipeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		list, err := recipeService().List(cmdContext(cmd))
		if err != nil {
			logger.Warn("list recipes", "err", err)
			color.New(color.FgYellow).Fprintln(os.Stderr, "⚠ "+errorMessage(err))
			list = nil
		}
		if len(list) == 0 {
			fmt.Fprintln(out, "No recipes found.")
			return nil
		}
		faint := color.New(color.Faint)
		for _, r := range list {
			per := recipe.FromSaved(r).PerServing()
			fmt.Fprintf(out, "%s %s %s %.0f kcal/serving\n",
				faint.Sprint(padRight(r.ID, 10)),
				padRight(truncate(r.Name, 28), 28),
				padRight(string(r.Category), 10),
				per.Calories)
		}
		return nil
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := recipeService().Get(cmdContext(cmd), args[0])
		if err != nil {
			return err
		}
		d := recipe.FromSaved(*r)
		printDraft(cmd.OutOrStdout(), d)
		if d.Instructions != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", d.Instructions)
		}
		return nil
	},
}

var recipeDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved recipe",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := recipeService().Delete(cmdContext(cmd), args[0]); err != nil {
			return err
		}
		color.Green("✓ Deleted recipe %s", args[0])
		return nil
	},
}

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log meals",
}

var mealLogCmd = &cobra.Command{
	Use:   "log <recipe-id>",
	Short: "Log servings of a saved recipe as a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := recipeService().LogServings(cmdContext(cmd), args[0], mealType, mealServings); err != nil {
			return err
		}
		color.Green("✓ Logged %g serving(s) for %s", mealServings, mealType)
		return nil
	},
}

// buildRecipe prompts for the draft's name and ingredient rows.
func buildRecipe(ctx context.Context, p *prompter, svc *recipe.Service, d *recipe.Draft) error {
	for strings.TrimSpace(d.Name) == "" {
		name, err := p.ask("Recipe name: ")
		if err != nil {
			return err
		}
		d.Name = name
	}

	for {
		query, err := p.ask("Ingredient (blank to finish): ")
		if err != nil {
			return err
		}
		if query == "" {
			break
		}
		if err := addIngredient(ctx, p, svc, d, query); err != nil {
			p.warn(errorMessage(err))
			continue
		}
		fmt.Fprintf(p.out, "  total: %s\n", formatNutrition(d.Totals()))
	}

	instructions, err := p.ask("Instructions (optional): ")
	if err != nil {
		return err
	}
	d.Instructions = instructions
	return nil
}

func addIngredient(ctx context.Context, p *prompter, svc *recipe.Service, d *recipe.Draft, query string) error {
	ref, found := recipe.Find(svc.Table(), query)
	if !found {
		matches := recipe.Suggest(svc.Table(), query)
		if len(matches) > 0 {
			printReferences(p.out, matches)
			pick, err := p.ask("Pick a number, or Enter to use your text: ")
			if err != nil {
				return err
			}
			if i, err := strconv.Atoi(pick); err == nil && i >= 1 && i <= len(matches) {
				ref, found = matches[i-1], true
			}
		}
	}

	qty, err := askFloat(p, "  Quantity: ")
	if err != nil {
		return err
	}
	unit, err := p.ask("  Unit [g]: ")
	if err != nil {
		return err
	}
	if unit == "" {
		unit = "g"
	}

	if found {
		_, err := d.AddFromReference(ref, qty, unit)
		return err
	}

	per100, _, err := svc.Lookup(ctx, query)
	if err == nil && per100.Calories > 0 {
		_, err := d.AddFromReference(recipe.Reference{
			Name: query, Calories: per100.Calories, Protein: per100.Protein, Carbs: per100.Carbs, Fats: per100.Fats,
		}, qty, unit)
		return err
	}

	p.warn("no nutrition found, please enter it for this quantity")
	var n models.Nutrition
	for _, f := range []struct {
		label string
		dest  *float64
	}{
		{"  Calories: ", &n.Calories}, {"  Protein (g): ", &n.Protein},
		{"  Carbs (g): ", &n.Carbs}, {"  Fats (g): ", &n.Fats},
	} {
		v, err := askFloat(p, f.label)
		if err != nil {
			return err
		}
		*f.dest = v
	}
	if _, err := recipe.ToGrams(qty, unit); err != nil {
		return err
	}
	d.AddManual(query, qty, unit, n)
	return nil
}

func askFloat(p *prompter, label string) (float64, error) {
	for {
		s, err := p.ask(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err == nil && v >= 0 {
			return v, nil
		}
		p.warn("please enter a number")
	}
}

func printReferences(out io.Writer, refs []recipe.Reference) {
	faint := color.New(color.Faint)
	for i, r := range refs {
		name := r.Name
		if r.Alias != "" {
			name += " (" + r.Alias + ")"
		}
		fmt.Fprintf(out, "%d. %s %s\n", i+1, padRight(truncate(name, 30), 30), formatNutrition(r.Per100g()))
	}
	faint.Fprintln(out, "   values per 100g")
}

func printDraft(out io.Writer, d *recipe.Draft) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	bold.Fprintf(out, "%s", d.Name)
	faint.Fprintf(out, "  %s · %d serving(s)\n", d.Category, d.Servings)
	for _, ing := range d.Ingredients {
		fmt.Fprintf(out, "  %s %s %s\n",
			padRight(truncate(ing.Name, 24), 24),
			padRight(fmt.Sprintf("%g %s", ing.Quantity, ing.Unit), 12),
			formatNutrition(ing.Nutrition()))
	}
	fmt.Fprintf(out, "  %s %s\n", padRight("Total", 37), formatNutrition(d.Totals()))
	fmt.Fprintf(out, "  %s %s\n", padRight("Per serving", 37), formatNutrition(d.PerServing()))
}

// loadRecipe reads a recipe from JSON or YAML, chosen by extension.
func loadRecipe(path string) (models.Recipe, error) {
	var r models.Recipe
	data, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("failed to read recipe: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &r)
	default:
		err = json.Unmarshal(data, &r)
	}
	if err != nil {
		return r, fmt.Errorf("failed to parse recipe %s: %w", path, err)
	}
	return r, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	recipeNewCmd.Flags().StringVar(&recipeName, "name", "", "recipe name")
	recipeNewCmd.Flags().IntVar(&recipeServings, "servings", 1, "number of servings")
	recipeNewCmd.Flags().StringVar(&recipeCategory, "category", "", "breakfast, lunch, dinner, snack, dessert, or beverage")
	recipeNewCmd.Flags().StringVarP(&recipeFile, "file", "f", "", "recipe file (.json, .yaml)")

	mealLogCmd.Flags().StringVarP(&mealType, "type", "t", "lunch", "meal type")
	mealLogCmd.Flags().Float64VarP(&mealServings, "servings", "s", 1, "servings eaten")

	recipeCmd.AddCommand(recipeSuggestCmd, recipeLookupCmd, recipeNewCmd, recipeListCmd, recipeShowCmd, recipeDeleteCmd)
	mealCmd.AddCommand(mealLogCmd)
	rootCmd.AddCommand(recipeCmd)
	rootCmd.AddCommand(mealCmd)
}
