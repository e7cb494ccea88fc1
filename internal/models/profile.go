package models

import "time"

// Proficiency levels accepted for a profile language entry.
const (
	ProficiencyBasic        = "basic"
	ProficiencyIntermediate = "intermediate"
	ProficiencyProfessional = "professional"
	ProficiencyNative       = "native"
)

type Experience struct {
	ID          string `bson:"id" json:"id"`
	Company     string `bson:"company" json:"company"`
	Position    string `bson:"position" json:"position"`
	Location    string `bson:"location,omitempty" json:"location,omitempty"`
	StartDate   string `bson:"start_date" json:"startDate"` // YYYY-MM
	EndDate     string `bson:"end_date,omitempty" json:"endDate,omitempty"`
	IsCurrent   bool   `bson:"is_current" json:"isCurrent"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

type Education struct {
	ID           string `bson:"id" json:"id"`
	Institution  string `bson:"institution" json:"institution"`
	Degree       string `bson:"degree,omitempty" json:"degree,omitempty"`
	FieldOfStudy string `bson:"field_of_study,omitempty" json:"fieldOfStudy,omitempty"`
	StartDate    string `bson:"start_date,omitempty" json:"startDate,omitempty"` // YYYY-MM
	EndDate      string `bson:"end_date,omitempty" json:"endDate,omitempty"`
}

type Language struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Proficiency string `bson:"proficiency" json:"proficiency"` // basic|intermediate|professional|native
}

// UserProfile is the persisted profile document, one per authenticated user.
// Dates are stored in YYYY-MM form; the resume projection renders MM/YYYY.
type UserProfile struct {
	UID               string       `bson:"_id" json:"uid"`
	Email             string       `bson:"email" json:"email"`
	DisplayName       string       `bson:"display_name" json:"displayName"`
	ProfessionalTitle string       `bson:"professional_title" json:"professionalTitle"`
	Phone             string       `bson:"phone,omitempty" json:"phone,omitempty"`
	Location          string       `bson:"location,omitempty" json:"location,omitempty"`
	LinkedIn          string       `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	GitHub            string       `bson:"github,omitempty" json:"github,omitempty"`
	About             string       `bson:"about,omitempty" json:"about,omitempty"`
	Experiences       []Experience `bson:"experiences,omitempty" json:"experiences,omitempty"`
	Education         []Education  `bson:"education,omitempty" json:"education,omitempty"`
	Languages         []Language   `bson:"languages,omitempty" json:"languages,omitempty"`
	Skills            []string     `bson:"skills,omitempty" json:"skills,omitempty"`
	Certifications    []string     `bson:"certifications,omitempty" json:"certifications,omitempty"`
	ResumeURL         string       `bson:"resume_url,omitempty" json:"resumeURL,omitempty"`
	ResumeName        string       `bson:"resume_name,omitempty" json:"resumeName,omitempty"`
	ProfileCompleted  bool         `bson:"profile_completed" json:"profileCompleted"`
	UpdatedAt         time.Time    `bson:"updated_at" json:"updatedAt"`
}
