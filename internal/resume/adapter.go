package resume

import (
	"github.com/google/uuid"

	"github.com/entrevistaja/backend/internal/models"
)

var proficiencyLabels = map[string]string{
	models.ProficiencyBasic:        "Básico",
	models.ProficiencyIntermediate: "Intermediário",
	models.ProficiencyProfessional: "Profissional",
	models.ProficiencyNative:       "Nativo",
}

var labelProficiencies = map[string]string{
	"Básico":        models.ProficiencyBasic,
	"Intermediário": models.ProficiencyIntermediate,
	"Profissional":  models.ProficiencyProfessional,
	"Nativo":        models.ProficiencyNative,
}

func proficiencyLabel(p string) string {
	if l, ok := proficiencyLabels[p]; ok {
		return l
	}
	if p == "" {
		return proficiencyLabels[models.ProficiencyIntermediate]
	}
	return p
}

func labelToProficiency(l string) string {
	if p, ok := labelProficiencies[l]; ok {
		return p
	}
	return models.ProficiencyIntermediate
}

func itemID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// FromProfile projects a stored profile into the editable resume document.
// Dates flip from YYYY-MM to MM/YYYY and list items get stable ids minted
// once, so later edits can address them.
func FromProfile(p *models.UserProfile, userEmail string) models.ResumeDocument {
	if p == nil {
		return EmptyDocument()
	}

	email := userEmail
	if email == "" {
		email = p.Email
	}

	doc := models.ResumeDocument{
		Name:    p.DisplayName,
		Title:   p.ProfessionalTitle,
		Summary: p.About,
		Contact: models.ResumeContact{
			Email:    email,
			Phone:    p.Phone,
			LinkedIn: p.LinkedIn,
			GitHub:   p.GitHub,
			Location: p.Location,
		},
		Skills:         []models.ResumeItem{},
		Languages:      []models.ResumeLanguage{},
		Certifications: []models.ResumeItem{},
		Experiences:    []models.ResumeExperience{},
		Education:      []models.ResumeEducation{},
	}

	for _, exp := range p.Experiences {
		doc.Experiences = append(doc.Experiences, models.ResumeExperience{
			ID:          itemID(exp.ID),
			Company:     exp.Company,
			Position:    exp.Position,
			StartDate:   ToDisplayDate(exp.StartDate),
			EndDate:     ToDisplayDate(exp.EndDate),
			Current:     exp.IsCurrent,
			Description: exp.Description,
			Location:    exp.Location,
		})
	}
	for _, edu := range p.Education {
		doc.Education = append(doc.Education, models.ResumeEducation{
			ID:          itemID(edu.ID),
			Institution: edu.Institution,
			Degree:      edu.Degree,
			Field:       edu.FieldOfStudy,
			StartDate:   ToDisplayDate(edu.StartDate),
			EndDate:     ToDisplayDate(edu.EndDate),
		})
	}
	for _, skill := range p.Skills {
		doc.Skills = append(doc.Skills, models.ResumeItem{ID: uuid.NewString(), Name: skill})
	}
	for _, lang := range p.Languages {
		doc.Languages = append(doc.Languages, models.ResumeLanguage{
			ID:    itemID(lang.ID),
			Name:  lang.Name,
			Level: proficiencyLabel(lang.Proficiency),
		})
	}
	for _, cert := range p.Certifications {
		doc.Certifications = append(doc.Certifications, models.ResumeItem{ID: uuid.NewString(), Name: cert})
	}

	return doc
}

// ToProfile is the inverse mapping. Identity fields (uid, email,
// profileCompleted, attachment refs) are owned by the save path, not the
// document, so they are left zero here.
func ToProfile(doc models.ResumeDocument) models.UserProfile {
	p := models.UserProfile{
		DisplayName:       doc.Name,
		ProfessionalTitle: doc.Title,
		About:             doc.Summary,
		Phone:             doc.Contact.Phone,
		Location:          doc.Contact.Location,
		LinkedIn:          doc.Contact.LinkedIn,
		GitHub:            doc.Contact.GitHub,
	}

	for _, exp := range doc.Experiences {
		p.Experiences = append(p.Experiences, models.Experience{
			ID:          exp.ID,
			Company:     exp.Company,
			Position:    exp.Position,
			Location:    exp.Location,
			StartDate:   ToStorageDate(exp.StartDate),
			EndDate:     ToStorageDate(exp.EndDate),
			IsCurrent:   exp.Current,
			Description: exp.Description,
		})
	}
	for _, edu := range doc.Education {
		p.Education = append(p.Education, models.Education{
			ID:           edu.ID,
			Institution:  edu.Institution,
			Degree:       edu.Degree,
			FieldOfStudy: edu.Field,
			StartDate:    ToStorageDate(edu.StartDate),
			EndDate:      ToStorageDate(edu.EndDate),
		})
	}
	for _, skill := range doc.Skills {
		p.Skills = append(p.Skills, skill.Name)
	}
	for _, lang := range doc.Languages {
		p.Languages = append(p.Languages, models.Language{
			ID:          lang.ID,
			Name:        lang.Name,
			Proficiency: labelToProficiency(lang.Level),
		})
	}
	for _, cert := range doc.Certifications {
		p.Certifications = append(p.Certifications, cert.Name)
	}

	return p
}

func EmptyDocument() models.ResumeDocument {
	return models.ResumeDocument{
		Skills:         []models.ResumeItem{},
		Languages:      []models.ResumeLanguage{},
		Certifications: []models.ResumeItem{},
		Experiences:    []models.ResumeExperience{},
		Education:      []models.ResumeEducation{},
	}
}
