package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/entrevistaja/backend/internal/models"
	"github.com/entrevistaja/backend/internal/utils"
)

type ProfileRepository interface {
	Get(ctx context.Context, uid string) (*models.UserProfile, error)
	Upsert(ctx context.Context, p *models.UserProfile) error
	FindUIDByEmail(ctx context.Context, email string) (string, error)
	SetResumeFile(ctx context.Context, uid, url, name string) error
	ClearResumeFile(ctx context.Context, uid string) error
}

type profileRepo struct {
	col *mongo.Collection
}

func NewProfileRepo(db *mongo.Database) ProfileRepository {
	return &profileRepo{col: db.Collection("profiles")}
}

func (r *profileRepo) Get(ctx context.Context, uid string) (*models.UserProfile, error) {
	var p models.UserProfile
	err := r.col.FindOne(ctx, bson.M{"_id": uid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

// Upsert merge-writes every profile field. The document is created lazily on
// the first save; fields absent from $set are left untouched on replays.
func (r *profileRepo) Upsert(ctx context.Context, p *models.UserProfile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	set := bson.M{
		"email":              p.Email,
		"display_name":       p.DisplayName,
		"professional_title": p.ProfessionalTitle,
		"phone":              p.Phone,
		"location":           p.Location,
		"linkedin":           p.LinkedIn,
		"github":             p.GitHub,
		"about":              p.About,
		"experiences":        p.Experiences,
		"education":          p.Education,
		"languages":          p.Languages,
		"skills":             p.Skills,
		"certifications":     p.Certifications,
		"profile_completed":  p.ProfileCompleted,
		"updated_at":         p.UpdatedAt,
	}
	if p.ResumeURL != "" {
		set["resume_url"] = p.ResumeURL
		set["resume_name"] = p.ResumeName
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": p.UID},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *profileRepo) FindUIDByEmail(ctx context.Context, email string) (string, error) {
	var doc struct {
		UID string `bson:"_id"`
	}
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", utils.ErrNotFound
	}
	return doc.UID, err
}

func (r *profileRepo) SetResumeFile(ctx context.Context, uid, url, name string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$set": bson.M{
			"resume_url":  url,
			"resume_name": name,
			"updated_at":  time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *profileRepo) ClearResumeFile(ctx context.Context, uid string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{
			"$unset": bson.M{"resume_url": "", "resume_name": ""},
			"$set":   bson.M{"updated_at": time.Now().UTC()},
		},
	)
	return err
}
