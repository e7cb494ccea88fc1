package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/entrevistaja/backend/internal/models"
	"github.com/entrevistaja/backend/internal/utils"
)

// Provider scores a resume against a job posting.
type Provider interface {
	Analyze(ctx context.Context, resumeText, jobText string) (models.AnalysisResult, error)
	Close() error
}

func buildPrompt(resumeText, jobText string) string {
	return fmt.Sprintf(`Você é um especialista em recrutamento e otimização de currículos.
Compare o currículo abaixo com a vaga de emprego e responda ESTRITAMENTE em JSON com este formato:
{
  "placar": <número inteiro de 0 a 100 indicando a aderência do currículo à vaga>,
  "palavrasChaveFaltando": "<palavras-chave importantes da vaga ausentes no currículo, separadas por vírgula>",
  "resumoOtimizado": "<versão reescrita do resumo profissional, otimizada para esta vaga>",
  "sugestoesMelhoria": "<sugestões objetivas de melhoria, em texto corrido>"
}

CURRÍCULO:
%s

VAGA:
%s
`, resumeText, jobText)
}

// parseResult decodes the model's JSON answer, tolerating markdown code
// fences that some models wrap around it.
func parseResult(op, content string) (models.AnalysisResult, error) {
	var res models.AnalysisResult

	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	if err := json.Unmarshal([]byte(content), &res); err != nil {
		return res, utils.E(utils.CodeUnavailable, op, "model returned unparseable analysis", err)
	}
	if res.Score < 0 {
		res.Score = 0
	}
	if res.Score > 100 {
		res.Score = 100
	}
	return res, nil
}
