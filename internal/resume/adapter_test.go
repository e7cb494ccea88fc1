package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrevistaja/backend/internal/models"
)

func sampleProfile() *models.UserProfile {
	return &models.UserProfile{
		UID:               "uid-1",
		Email:             "ana@example.com",
		DisplayName:       "Ana Souza",
		ProfessionalTitle: "Engenheira de Software",
		Phone:             "+55 11 99999-0000",
		Location:          "São Paulo, SP",
		LinkedIn:          "linkedin.com/in/anasouza",
		About:             "Resumo profissional.",
		Experiences: []models.Experience{{
			ID:          "exp-1",
			Company:     "Acme",
			Position:    "Dev Backend",
			StartDate:   "2021-03",
			EndDate:     "2023-08",
			Description: "APIs em Go.",
		}},
		Education: []models.Education{{
			ID:          "edu-1",
			Institution: "USP",
			Degree:      "Bacharelado",
			FieldOfStudy: "Ciência da Computação",
			StartDate:   "2016-02",
			EndDate:     "2020-12",
		}},
		Languages: []models.Language{{ID: "lang-1", Name: "Inglês", Proficiency: models.ProficiencyProfessional}},
		Skills:    []string{"Go", "PostgreSQL"},
	}
}

func TestFromProfileDisplayMapping(t *testing.T) {
	doc := FromProfile(sampleProfile(), "")

	assert.Equal(t, "Ana Souza", doc.Name)
	assert.Equal(t, "ana@example.com", doc.Contact.Email)

	require.Len(t, doc.Experiences, 1)
	assert.Equal(t, "03/2021", doc.Experiences[0].StartDate)
	assert.Equal(t, "08/2023", doc.Experiences[0].EndDate)

	require.Len(t, doc.Education, 1)
	assert.Equal(t, "02/2016", doc.Education[0].StartDate)

	require.Len(t, doc.Languages, 1)
	assert.Equal(t, "Profissional", doc.Languages[0].Level)

	require.Len(t, doc.Skills, 2)
	assert.NotEmpty(t, doc.Skills[0].ID, "list items get ids minted")
}

func TestFromProfileEmailOverride(t *testing.T) {
	doc := FromProfile(sampleProfile(), "token@example.com")
	assert.Equal(t, "token@example.com", doc.Contact.Email)
}

func TestFromProfileNil(t *testing.T) {
	doc := FromProfile(nil, "x@example.com")
	assert.Empty(t, doc.Name)
	assert.NotNil(t, doc.Experiences)
	assert.NotNil(t, doc.Skills)
}

func TestProfileRoundTrip(t *testing.T) {
	orig := sampleProfile()
	doc := FromProfile(orig, "")
	back := ToProfile(doc)

	assert.Equal(t, orig.DisplayName, back.DisplayName)
	assert.Equal(t, orig.ProfessionalTitle, back.ProfessionalTitle)
	assert.Equal(t, orig.About, back.About)

	require.Len(t, back.Experiences, 1)
	assert.Equal(t, "exp-1", back.Experiences[0].ID, "item ids survive the round trip")
	assert.Equal(t, "2021-03", back.Experiences[0].StartDate, "dates return to storage form")
	assert.Equal(t, "2023-08", back.Experiences[0].EndDate)

	require.Len(t, back.Languages, 1)
	assert.Equal(t, models.ProficiencyProfessional, back.Languages[0].Proficiency)

	assert.Equal(t, orig.Skills, back.Skills)
}

func TestProficiencyLabelFallbacks(t *testing.T) {
	assert.Equal(t, "Intermediário", proficiencyLabel(""))
	assert.Equal(t, "Fluente", proficiencyLabel("Fluente"), "unknown values pass through")
	assert.Equal(t, models.ProficiencyIntermediate, labelToProficiency("Fluente"), "unknown labels default")
}
