package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrevistaja/backend/internal/models"
)

func renderDoc() models.ResumeDocument {
	return models.ResumeDocument{
		Name:    "Ana Souza",
		Title:   "Engenheira de Software",
		Summary: "Resumo profissional.",
		Contact: models.ResumeContact{Email: "ana@example.com", Location: "São Paulo"},
		Experiences: []models.ResumeExperience{{
			ID: "1", Company: "Acme", Position: "Dev Backend",
			StartDate: "03/2021", Current: true, Description: "APIs em Go.",
		}},
		Education: []models.ResumeEducation{{
			ID: "1", Institution: "USP", Degree: "Bacharelado", Field: "Computação",
			StartDate: "02/2016", EndDate: "12/2020",
		}},
		Skills:    []models.ResumeItem{{ID: "1", Name: "Go"}, {ID: "2", Name: "Redis"}},
		Languages: []models.ResumeLanguage{{ID: "1", Name: "Inglês", Level: "Profissional"}},
	}
}

func TestRenderTextSections(t *testing.T) {
	out := RenderText(renderDoc())

	assert.Contains(t, out, "Ana Souza\n")
	assert.Contains(t, out, "RESUMO PROFISSIONAL\n")
	assert.Contains(t, out, "EXPERIÊNCIA PROFISSIONAL\n")
	assert.Contains(t, out, "Dev Backend | Acme")
	assert.Contains(t, out, "03/2021 - Atual")
	assert.Contains(t, out, "FORMAÇÃO ACADÊMICA\n")
	assert.Contains(t, out, "Bacharelado em Computação")
	assert.Contains(t, out, "02/2016 - 12/2020")
	assert.Contains(t, out, "HABILIDADES\nGo, Redis")
	assert.Contains(t, out, "IDIOMAS\nInglês - Profissional")

	// no certifications in the document, no section in the output
	assert.NotContains(t, out, "CERTIFICAÇÕES")
}

func TestRenderTextDeterministic(t *testing.T) {
	doc := renderDoc()
	assert.Equal(t, RenderText(doc), RenderText(doc))
}

func TestRenderTextEmptyDocument(t *testing.T) {
	out := RenderText(EmptyDocument())
	assert.NotContains(t, out, "RESUMO")
	assert.NotContains(t, out, "EXPERIÊNCIA")
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(renderDoc())
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Ana Souza</h1>")
	assert.Contains(t, html, "Dev Backend")
	assert.Contains(t, html, "Go, Redis")
	assert.Contains(t, html, `lang="pt-BR"`)
}

func TestRenderHTMLEscapes(t *testing.T) {
	doc := EmptyDocument()
	doc.Name = `<script>alert("x")</script>`
	html, err := RenderHTML(doc)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert")
}

func TestPeriodLine(t *testing.T) {
	assert.Equal(t, "", periodLine("", "", false))
	assert.Equal(t, "03/2021", periodLine("03/2021", "", false))
	assert.Equal(t, "03/2021 - Atual", periodLine("03/2021", "08/2023", true), "current wins over end date")
	assert.Equal(t, "03/2021 - 08/2023", periodLine("03/2021", "08/2023", false))
}
