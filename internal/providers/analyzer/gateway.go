package analyzer

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/entrevistaja/backend/internal/models"
	"github.com/entrevistaja/backend/internal/utils"
)

// Gateway talks to an OpenAI-compatible chat completions endpoint.
type Gateway struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	model   string
}

func NewGateway() *Gateway {
	baseURL := os.Getenv("AI_GATEWAY_URL")
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	model := os.Getenv("AI_GATEWAY_MODEL")
	if model == "" {
		model = "openai/gpt-4o-mini"
	}
	return &Gateway{
		client:  resty.New().SetTimeout(90 * time.Second),
		baseURL: baseURL,
		apiKey:  os.Getenv("AI_GATEWAY_KEY"),
		model:   model,
	}
}

func (g *Gateway) Close() error { return nil }

func (g *Gateway) Analyze(ctx context.Context, resumeText, jobText string) (models.AnalysisResult, error) {
	const op = "Gateway.Analyze"

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+g.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": g.model,
			"messages": []map[string]string{
				{"role": "system", "content": "Você é um assistente de otimização de currículos. Responda apenas JSON válido."},
				{"role": "user", "content": buildPrompt(resumeText, jobText)},
			},
		}).
		Post(g.baseURL + "/chat/completions")
	if err != nil {
		return models.AnalysisResult{}, utils.E(utils.CodeUnavailable, op, "analysis provider unreachable", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return models.AnalysisResult{}, utils.E(utils.CodeRateLimited, op, "analysis provider rate limit exceeded", nil)
	case http.StatusPaymentRequired:
		return models.AnalysisResult{}, utils.E(utils.CodePaymentRequired, op, "analysis provider quota exhausted", nil)
	default:
		return models.AnalysisResult{}, utils.E(utils.CodeUnavailable, op, "analysis provider returned "+resp.Status(), nil)
	}

	content := gjson.Get(resp.String(), "choices.0.message.content").String()
	if content == "" {
		return models.AnalysisResult{}, utils.E(utils.CodeUnavailable, op, "empty completion from analysis provider", nil)
	}

	return parseResult(op, content)
}
