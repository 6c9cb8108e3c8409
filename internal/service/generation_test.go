package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrichef/nutrichef/backend/internal/types"
)

func TestEstimatedCookingTime(t *testing.T) {
	assert.Equal(t, 15, EstimatedCookingTime(CookingTimeQuick))
	assert.Equal(t, 45, EstimatedCookingTime(CookingTimeMedium))
	assert.Equal(t, 90, EstimatedCookingTime(CookingTimeLong))
	assert.Equal(t, 0, EstimatedCookingTime(""))
	assert.Equal(t, 0, EstimatedCookingTime("instant"))
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(&types.GenerateRecipeRequest{
		Ingredients:           []string{"rice", "beans"},
		DietaryRestrictions:   []string{"vegan", "gluten-free"},
		Servings:              4,
		CuisineType:           "mexican",
		CookingTimePreference: CookingTimeQuick,
	})

	assert.Contains(t, prompt, "rice, beans")
	assert.Contains(t, prompt, "mexican cuisine")
	assert.Contains(t, prompt, "vegan, gluten-free")
	assert.Contains(t, prompt, "serve 4 people")
	assert.Contains(t, prompt, "around 15 minutes")
	assert.Contains(t, prompt, "Numbered instructions")
}

func TestBuildPromptOmitsAbsentClauses(t *testing.T) {
	prompt := BuildPrompt(&types.GenerateRecipeRequest{
		Ingredients: []string{"eggs"},
	})

	assert.Contains(t, prompt, "eggs")
	assert.NotContains(t, prompt, "cuisine.")
	assert.NotContains(t, prompt, "dietary restrictions")
	assert.NotContains(t, prompt, "people")
	assert.NotContains(t, prompt, "cooking time should be around")
}

func TestGenerateRecipe(t *testing.T) {
	var gotAuth string
	var gotReq Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"A lovely recipe"}}]}`))
	}))
	defer server.Close()

	svc := NewGenerationService("secret-key", server.URL)
	text, err := svc.GenerateRecipe(context.Background(), &types.GenerateRecipeRequest{
		Ingredients: []string{"rice"},
	})
	require.NoError(t, err)
	assert.Equal(t, "A lovely recipe", text)

	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, "deepseek-chat", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "rice")
}

func TestGenerateRecipeNoAPIKey(t *testing.T) {
	svc := NewGenerationService("", "http://localhost:0")

	_, err := svc.GenerateRecipe(context.Background(), &types.GenerateRecipeRequest{Ingredients: []string{"rice"}})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGenerateRecipeProviderStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrProviderAuth},
		{"forbidden", http.StatusForbidden, ErrProviderAuth},
		{"rate limited", http.StatusTooManyRequests, ErrProviderQuota},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			svc := NewGenerationService("key", server.URL)
			_, err := svc.GenerateRecipe(context.Background(), &types.GenerateRecipeRequest{Ingredients: []string{"rice"}})
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestGenerateRecipeProviderUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := NewGenerationService("key", server.URL)
	_, err := svc.GenerateRecipe(context.Background(), &types.GenerateRecipeRequest{Ingredients: []string{"rice"}})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestGenerateRecipeEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	svc := NewGenerationService("key", server.URL)
	_, err := svc.GenerateRecipe(context.Background(), &types.GenerateRecipeRequest{Ingredients: []string{"rice"}})
	assert.Error(t, err)
}
