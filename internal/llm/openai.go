package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"covidcast/internal/logger"
	"covidcast/internal/models"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient handles OpenAI API interactions
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// GenerateCommentary asks the model for a short epidemiological commentary
// in markdown, based on the normalized summary figures
func (c *OpenAIClient) GenerateCommentary(ctx context.Context, summary *models.PandemicSummary) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	logger.Infof("Generating commentary for %s", summary.LatestDate.Format("2006-01-02"))

	prompt, err := c.buildPrompt(summary)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   4000,
			Temperature: 0.3,
		},
	)

	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	commentary := resp.Choices[0].Message.Content
	logger.Infof("Generated commentary with %d characters", len(commentary))
	return commentary, nil
}

const systemPrompt = "You are an epidemiology data analyst. Write a concise, factual markdown commentary on the provided COVID-19 figures. Describe trends and notable country-level outcomes. Do not speculate beyond the data and do not give medical advice."

// buildPrompt embeds the headline figures and the country ranking as JSON
func (c *OpenAIClient) buildPrompt(summary *models.PandemicSummary) (string, error) {
	figures, err := json.MarshalIndent(summary.TopCountries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary figures: %w", err)
	}

	prompt := fmt.Sprintf(`## COVID-19 Summary Data (as of %s)

Countries reporting: %d

### Hardest-hit countries (cumulative cases, descending):
`+"```json\n%s\n```"+`

### Instructions:
Write 2-3 short markdown paragraphs covering:
1. The global picture on the latest reporting day
2. Which countries dominate the cumulative figures
3. Anything notable about the relationship between GDP per capita and outcomes

Keep it under 250 words.`,
		summary.LatestDate.Format("2006-01-02"),
		len(summary.Countries),
		string(figures))

	return prompt, nil
}
