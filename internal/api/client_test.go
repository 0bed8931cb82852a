// ABOUTME: Tests for the FitForge API client against an httptest server.
// ABOUTME: Covers auth headers, error classification, and endpoint decoding.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harperreed/fitforge/internal/models"
	"github.com/harperreed/fitforge/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) GetToken() (string, error) {
	if s == "" {
		return "", storage.ErrNotFound
	}
	return string(s), nil
}

type promptRecorder struct{ opened int }

func (p *promptRecorder) OpenAuthPrompt() { p.opened++ }

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (*Client, *promptRecorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	prompts := &promptRecorder{}
	c := New(srv.URL+"/", WithTokenSource(staticToken(token)), WithAuthPrompter(prompts))
	return c, prompts
}

func TestSaveOnboardingSendsBearerToken(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}, "tok-123")

	err := c.SaveOnboarding(context.Background(), map[string]any{"gender": "male"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "/user/onboarding", gotPath)
	assert.Equal(t, "male", gotBody["gender"])
}

func TestMissingTokenOpensAuthPrompt(t *testing.T) {
	called := false
	c, prompts := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, "")

	err := c.SaveOnboarding(context.Background(), struct{}{})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, called, "request must not be sent without a token")
	assert.Equal(t, 1, prompts.opened)
}

func TestUnauthorizedResponse(t *testing.T) {
	c, prompts := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "expired")

	_, err := c.ListRecipes(context.Background())
	assert.Equal(t, KindAuth, Classify(err))
	assert.Equal(t, 1, prompts.opened)
}

func TestServerErrorMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"message":"servings must be positive"}`)
	}, "tok")

	_, err := c.CreateRecipe(context.Background(), models.Recipe{Name: "x"})
	var aerr *APIError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, http.StatusUnprocessableEntity, aerr.Status)
	assert.Equal(t, "servings must be positive", aerr.Message)
	assert.Equal(t, KindServer, Classify(err))
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url)
	_, err := c.Pricing(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, KindNetwork, Classify(err))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindUnknown},
		{models.Invalid("email", "is invalid"), KindValidation},
		{fmt.Errorf("wrap: %w", ErrUnauthorized), KindAuth},
		{fmt.Errorf("wrap: %w", ErrNetwork), KindNetwork},
		{&APIError{Status: 500}, KindServer},
		{errors.New("boom"), KindUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.err), "Classify(%v)", tt.err)
	}
}

func TestListRecipesShapes(t *testing.T) {
	bodies := map[string]string{
		"array":   `[{"id":"r1","name":"Dal","servings":2,"category":"dinner","ingredients":[]}]`,
		"wrapped": `{"recipes":[{"id":"r1","name":"Dal","servings":2,"category":"dinner","ingredients":[]}]}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, body)
			}, "tok")
			list, err := c.ListRecipes(context.Background())
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, "Dal", list[0].Name)
		})
	}
}

func TestDeleteRecipeEscapesID(t *testing.T) {
	var gotPath, gotMethod string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}, "tok")

	require.NoError(t, c.DeleteRecipe(context.Background(), "a/b"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/recipes/a%2Fb", gotPath)
}

func TestLookupNutrition(t *testing.T) {
	var gotQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("ingr")
		_, _ = io.WriteString(w, `{"calories":265,"totalNutrients":{"PROCNT":{"quantity":18.3},"CHOCDF":{"quantity":1.2},"FAT":{"quantity":20.8}}}`)
	}, "tok")

	n, err := c.LookupNutrition(context.Background(), "100g paneer")
	require.NoError(t, err)
	assert.Equal(t, "100g paneer", gotQuery)
	assert.Equal(t, models.Nutrition{Calories: 265, Protein: 18.3, Carbs: 1.2, Fats: 20.8}, n)
}

func TestPricingAndPromos(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pricing", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"plans":[{"planId":"pro","name":"Pro","monthlyPrice":19.99,"annualPrice":191.9}]}`)
	})
	mux.HandleFunc("/promo/active", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/promo/validate", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "SAVE20", body["code"])
		assert.Equal(t, "pro", body["planId"])
		_, _ = io.WriteString(w, `{"valid":true,"promo":{"code":"SAVE20","discountType":"percentage","discount":20}}`)
	})
	c, _ := newTestClient(t, mux.ServeHTTP, "")

	plans, err := c.Pricing(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, 19.99, plans[0].MonthlyPrice)

	promo, err := c.ActivePromo(context.Background())
	require.NoError(t, err)
	assert.Nil(t, promo)

	v, err := c.ValidatePromo(context.Background(), "SAVE20", "pro")
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Equal(t, models.DiscountPercentage, v.Promo.DiscountType)
}

func TestLogMealBody(t *testing.T) {
	var got MealLog
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
	}, "tok")

	meal := MealLog{MealType: "lunch", Items: []MealItem{{Name: "Dal", Quantity: 1, Calories: 230}}}
	require.NoError(t, c.LogMeal(context.Background(), meal))
	assert.Equal(t, meal, got)
}
