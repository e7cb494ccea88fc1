package analyzer

import (
	"context"
	"strings"

	vertexgenai "cloud.google.com/go/vertexai/genai"

	"github.com/entrevistaja/backend/internal/models"
	"github.com/entrevistaja/backend/internal/utils"
)

type VertexGemini struct {
	client *vertexgenai.Client
	model  *vertexgenai.GenerativeModel
}

func NewVertexGemini(ctx context.Context, projectID, location, modelName string) (*VertexGemini, error) {
	c, err := vertexgenai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	m := c.GenerativeModel(modelName)
	m.GenerationConfig.ResponseMIMEType = "application/json"
	return &VertexGemini{client: c, model: m}, nil
}

func (v *VertexGemini) Close() error { return v.client.Close() }

func (v *VertexGemini) Analyze(ctx context.Context, resumeText, jobText string) (models.AnalysisResult, error) {
	const op = "VertexGemini.Analyze"

	resp, err := v.model.GenerateContent(ctx, vertexgenai.Text(buildPrompt(resumeText, jobText)))
	if err != nil {
		return models.AnalysisResult{}, utils.E(utils.CodeUnavailable, op, "vertex generation failed", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(vertexgenai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	if sb.Len() == 0 {
		return models.AnalysisResult{}, utils.E(utils.CodeUnavailable, op, "empty completion from vertex", nil)
	}

	return parseResult(op, sb.String())
}
