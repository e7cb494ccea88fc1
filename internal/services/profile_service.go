package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/entrevistaja/backend/internal/models"
	mongorepo "github.com/entrevistaja/backend/internal/repositories/mongo"
	"github.com/entrevistaja/backend/internal/resume"
	"github.com/entrevistaja/backend/internal/utils"
)

type ProfileService interface {
	Get(ctx context.Context, uid string) (*models.UserProfile, error)
	// Save persists the resume document as the user's profile. Until the
	// profile has been completed once, an incomplete document is rejected
	// without writing; the first accepted save flips profileCompleted.
	Save(ctx context.Context, uid, email string, doc models.ResumeDocument) (*models.UserProfile, error)
}

type profileService struct {
	profiles mongorepo.ProfileRepository
}

func NewProfileService(profiles mongorepo.ProfileRepository) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) Get(ctx context.Context, uid string) (*models.UserProfile, error) {
	const op = "ProfileService.Get"

	if uid == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "uid is required", nil)
	}

	p, err := s.profiles.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}
	return p, nil
}

func (s *profileService) Save(ctx context.Context, uid, email string, doc models.ResumeDocument) (*models.UserProfile, error) {
	const op = "ProfileService.Save"

	if uid == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "uid is required", nil)
	}

	existing, err := s.profiles.Get(ctx, uid)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to load profile", err)
	}

	firstSave := existing == nil || !existing.ProfileCompleted
	if err := validateDocument(op, doc, firstSave); err != nil {
		return nil, err
	}

	p := resume.ToProfile(doc)
	p.UID = uid
	p.Email = email
	p.UpdatedAt = time.Now().UTC()

	if existing != nil {
		if p.Email == "" {
			p.Email = existing.Email
		}
		p.ResumeURL = existing.ResumeURL
		p.ResumeName = existing.ResumeName
	}

	// An incomplete document never got past validation on a first save, so
	// the flag only moves one way: once set it survives later partial edits.
	p.ProfileCompleted = true

	if err := s.profiles.Upsert(ctx, &p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save profile", err)
	}
	return &p, nil
}

// validateDocument rejects a save before any write happens. Until the
// profile has been completed once, the document must also carry at least one
// usable experience and one education entry.
func validateDocument(op string, doc models.ResumeDocument, firstSave bool) error {
	if strings.TrimSpace(doc.Name) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}
	if strings.TrimSpace(doc.Title) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "professional title is required", nil)
	}
	if firstSave {
		if !hasValidExperience(doc) {
			return utils.E(utils.CodeInvalidArgument, op, "at least one experience with company, position and start date is required", nil)
		}
		if !hasValidEducation(doc) {
			return utils.E(utils.CodeInvalidArgument, op, "at least one education entry with an institution is required", nil)
		}
	}
	for _, exp := range doc.Experiences {
		if exp.StartDate != "" && !resume.ValidateMonthYear(exp.StartDate) {
			return utils.E(utils.CodeInvalidArgument, op, "experience start date must be MM/YYYY", nil)
		}
		if exp.EndDate != "" && !resume.ValidateMonthYear(exp.EndDate) {
			return utils.E(utils.CodeInvalidArgument, op, "experience end date must be MM/YYYY", nil)
		}
	}
	for _, edu := range doc.Education {
		if edu.StartDate != "" && !resume.ValidateMonthYear(edu.StartDate) {
			return utils.E(utils.CodeInvalidArgument, op, "education start date must be MM/YYYY", nil)
		}
		if edu.EndDate != "" && !resume.ValidateMonthYear(edu.EndDate) {
			return utils.E(utils.CodeInvalidArgument, op, "education end date must be MM/YYYY", nil)
		}
	}
	return nil
}

func hasValidExperience(doc models.ResumeDocument) bool {
	for _, exp := range doc.Experiences {
		if strings.TrimSpace(exp.Company) != "" &&
			strings.TrimSpace(exp.Position) != "" &&
			strings.TrimSpace(exp.StartDate) != "" {
			return true
		}
	}
	return false
}

func hasValidEducation(doc models.ResumeDocument) bool {
	for _, edu := range doc.Education {
		if strings.TrimSpace(edu.Institution) != "" {
			return true
		}
	}
	return false
}
