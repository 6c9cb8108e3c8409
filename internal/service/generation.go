package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/nutrichef/nutrichef/backend/internal/types"
)

// Sentinel errors for mapping provider failures to HTTP status codes.
var (
	ErrNoAPIKey            = errors.New("generation API key is not configured")
	ErrProviderAuth        = errors.New("generation provider rejected credentials")
	ErrProviderQuota       = errors.New("generation provider rate limit exceeded")
	ErrProviderUnavailable = errors.New("generation provider is unreachable")
)

// Cooking-time preference values accepted on generation requests.
const (
	CookingTimeQuick  = "quick"
	CookingTimeMedium = "medium"
	CookingTimeLong   = "long"
)

// GenerationService handles interactions with the DeepSeek API
type GenerationService struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewGenerationService creates a new GenerationService instance. An empty
// apiKey is tolerated; GenerateRecipe then fails with ErrNoAPIKey before
// any network call.
func NewGenerationService(apiKey, apiURL string) *GenerationService {
	return &GenerationService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the DeepSeek API
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// EstimatedCookingTime converts the preference enum to a minute estimate.
// Returns 0 for an absent preference.
func EstimatedCookingTime(pref string) int {
	switch pref {
	case CookingTimeQuick:
		return 15
	case CookingTimeMedium:
		return 45
	case CookingTimeLong:
		return 90
	default:
		return 0
	}
}

// BuildPrompt composes the natural-language instruction sent to the provider:
// the ingredient list, the optional clauses, and the 7-part reply structure.
func BuildPrompt(req *types.GenerateRecipeRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a recipe using the following ingredients: %s.", strings.Join(req.Ingredients, ", "))

	if req.CuisineType != "" {
		fmt.Fprintf(&b, " The recipe should be %s cuisine.", req.CuisineType)
	}
	if len(req.DietaryRestrictions) > 0 {
		fmt.Fprintf(&b, " It must respect these dietary restrictions: %s.", strings.Join(req.DietaryRestrictions, ", "))
	}
	if req.Servings > 0 {
		fmt.Fprintf(&b, " It should serve %d people.", req.Servings)
	}
	if minutes := EstimatedCookingTime(req.CookingTimePreference); minutes > 0 {
		fmt.Fprintf(&b, " Total cooking time should be around %d minutes.", minutes)
	}

	b.WriteString(" Structure the reply with: 1. Recipe name. 2. Ingredients with quantities. 3. Numbered instructions. 4. Estimated nutrition per serving. 5. Tips. 6. Preparation time estimate. 7. Difficulty level.")

	return b.String()
}

// GenerateRecipe submits one prompt to the provider and returns the raw
// generated text. Provider failures are wrapped in the sentinel errors above
// so the handler can map them to status codes.
func (s *GenerationService) GenerateRecipe(ctx context.Context, genReq *types.GenerateRecipeRequest) (string, error) {
	if s.apiKey == "" {
		return "", ErrNoAPIKey
	}

	reqBody := Request{
		Model: "deepseek-chat",
		Messages: []Message{
			{
				Role:    "system",
				Content: "You are a professional chef and nutritionist. Reply with a complete, practical recipe in plain text.",
			},
			{
				Role:    "user",
				Content: BuildPrompt(genReq),
			},
		},
		Temperature: 0.9,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		// Refused connections and timeouts both surface here
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", fmt.Errorf("%w: status %d", ErrProviderAuth, resp.StatusCode)
	case http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: status %d", ErrProviderQuota, resp.StatusCode)
	default:
		log.Printf("generation API request failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Choices[0].Message.Content, nil
}
