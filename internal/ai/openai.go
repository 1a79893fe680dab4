package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ObiAU/prospectpulse/internal/apperrors"
	"github.com/ObiAU/prospectpulse/internal/models"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// Prompt and output bounds.
const (
	maxPromptResults = 8
	maxOutputTokens  = 1500
	temperature      = 0.2
)

const fallbackSummary = "Unable to analyze search results properly"

type OpenAIClient struct {
	client openai.Client
	apiKey string
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{client: client, apiKey: apiKey, model: model}
}

// Analyze classifies the search results for one prospect. Malformed model
// output is never an error: it yields a fallback verdict tagged as such.
func (c *OpenAIClient) Analyze(ctx context.Context, prospect string, keywords []string, results []models.SearchResult) (*models.Analysis, error) {
	if prospect == "" {
		return nil, apperrors.NewValidation("prospect", "must not be empty")
	}
	if keywords == nil {
		return nil, apperrors.NewValidation("keywords", "must be provided")
	}
	if results == nil {
		return nil, apperrors.NewValidation("searchResults", "must be provided")
	}
	if c.apiKey == "" {
		return nil, apperrors.NewConfiguration("analysis API key")
	}

	prompt := buildAnalysisPrompt(prospect, keywords, results)

	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a B2B sales intelligence analyst. You classify prospect news and respond with JSON only."),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxOutputTokens),
	})
	if err != nil {
		return nil, apperrors.NewUpstream("openai", err)
	}

	if len(response.Choices) == 0 {
		return nil, apperrors.NewUpstream("openai", errors.New("no choices in response"))
	}

	content := response.Choices[0].Message.Content

	verdict, err := decodeVerdict(content)
	if err != nil {
		return &models.Analysis{
			Verdict: fallbackVerdict(prospect, results),
			Source:  models.SourceFallback,
		}, nil
	}

	return &models.Analysis{Verdict: verdict, Source: models.SourceModel}, nil
}

// rawVerdict distinguishes an absent hasNews from an explicit false.
type rawVerdict struct {
	Company      string `json:"company"`
	HasNews      *bool  `json:"hasNews"`
	Summary      string `json:"summary"`
	NewsType     string `json:"newsType"`
	Urgency      string `json:"urgency"`
	AlertMessage string `json:"alertMessage"`
	SourceURL    string `json:"sourceUrl"`
	Confidence   string `json:"confidence"`
}

func decodeVerdict(content string) (models.AnalysisVerdict, error) {
	cleaned := stripCodeFences(content)

	var raw rawVerdict
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return models.AnalysisVerdict{}, fmt.Errorf("decode verdict: %w", err)
	}
	if raw.Company == "" {
		return models.AnalysisVerdict{}, errors.New("verdict missing company")
	}
	if raw.HasNews == nil {
		return models.AnalysisVerdict{}, errors.New("verdict missing hasNews")
	}

	verdict := models.AnalysisVerdict{
		Company:      raw.Company,
		HasNews:      *raw.HasNews,
		Summary:      raw.Summary,
		NewsType:     raw.NewsType,
		Urgency:      raw.Urgency,
		AlertMessage: raw.AlertMessage,
		SourceURL:    raw.SourceURL,
		Confidence:   raw.Confidence,
	}
	if !verdict.Valid() {
		return models.AnalysisVerdict{}, errors.New("verdict failed schema validation")
	}

	return verdict, nil
}

// stripCodeFences removes a leading ```json (or bare ```) line and a trailing
// ``` line; models frequently wrap JSON replies that way.
func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)

	if strings.HasPrefix(trimmed, "```") {
		if idx := strings.Index(trimmed, "\n"); idx >= 0 {
			trimmed = trimmed[idx+1:]
		} else {
			trimmed = strings.TrimPrefix(trimmed, "```")
		}
	}

	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")

	return strings.TrimSpace(trimmed)
}

func fallbackVerdict(prospect string, results []models.SearchResult) models.AnalysisVerdict {
	verdict := models.AnalysisVerdict{
		Company:      prospect,
		HasNews:      false,
		Summary:      fallbackSummary,
		NewsType:     models.NewsTypeOther,
		Urgency:      models.LevelLow,
		AlertMessage: fmt.Sprintf("⚠️ Could not analyze recent news for %s - manual review recommended", prospect),
		Confidence:   models.LevelLow,
	}
	if len(results) > 0 {
		verdict.SourceURL = results[0].URL
	}
	return verdict
}

func buildAnalysisPrompt(prospect string, keywords []string, results []models.SearchResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Analyze these web search results for the company %q and decide whether they contain genuinely new, sales-relevant news.\n\n", prospect))

	sb.WriteString("Mark hasNews true ONLY for new developments a sales team would act on: funding rounds, executive changes, acquisitions, partnerships, product launches, expansion. ")
	sb.WriteString("Ignore routine coverage, stock commentary, old news, and generic company profiles.\n\n")

	sb.WriteString(fmt.Sprintf("Keywords being monitored: %s\n\n", strings.Join(keywords, ", ")))

	sb.WriteString("Search results:\n\n")
	for i, result := range results {
		if i >= maxPromptResults {
			break
		}
		sb.WriteString(fmt.Sprintf("Result %d:\n", i+1))
		sb.WriteString(fmt.Sprintf("Title: %s\n", result.Title))
		sb.WriteString(fmt.Sprintf("URL: %s\n", result.URL))
		sb.WriteString(fmt.Sprintf("Description: %s\n", result.Description))
		sb.WriteString(fmt.Sprintf("Published: %s\n\n", result.Published))
	}

	sb.WriteString("Respond with ONLY a JSON object, no prose and no code fences:\n")
	sb.WriteString(`{"company": "name", "hasNews": true/false, "summary": "1-2 sentences", "newsType": "funding|executive|acquisition|partnership|expansion|other", "urgency": "high|medium|low", "alertMessage": "chat-ready alert", "sourceUrl": "best source url", "confidence": "high|medium|low"}`)
	sb.WriteString("\n\nFor alertMessage, write a short human-readable alert and lead with an emphasis marker matching the news type: ")
	sb.WriteString("🚀 funding, 👔 executive, 🤝 acquisition or partnership, 📈 expansion or launch, 📰 other.\n")

	return sb.String()
}
