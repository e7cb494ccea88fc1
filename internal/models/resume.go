package models

// ResumeDocument is the display-oriented projection of a UserProfile plus any
// unsaved edits. It is never persisted directly: it is derived from the
// profile on load and mapped back on save. Dates are MM/YYYY here.
type ResumeDocument struct {
	Name           string             `json:"name"`
	Title          string             `json:"title"`
	Summary        string             `json:"summary"`
	Contact        ResumeContact      `json:"contact"`
	Skills         []ResumeItem       `json:"skills"`
	Languages      []ResumeLanguage   `json:"languages"`
	Certifications []ResumeItem       `json:"certifications"`
	Experiences    []ResumeExperience `json:"experiences"`
	Education      []ResumeEducation  `json:"education"`
}

type ResumeContact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Location string `json:"location"`
}

// ResumeItem carries a stable id so list entries keep identity across edits.
type ResumeItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ResumeLanguage struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"` // localized label, e.g. "Profissional"
}

type ResumeExperience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"` // MM/YYYY
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type ResumeEducation struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"` // MM/YYYY
	EndDate     string `json:"endDate"`
}
