package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/entrevistaja/backend/internal/models"
	mongorepo "github.com/entrevistaja/backend/internal/repositories/mongo"
	pgrepo "github.com/entrevistaja/backend/internal/repositories/postgres"
	"github.com/entrevistaja/backend/internal/storage"
	"github.com/entrevistaja/backend/internal/utils"
)

const maxResumeFileSize = 5 << 20 // 5 MiB

var allowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ResumeFileService manages the uploaded résumé attachment: the blob in
// object storage, its metadata row, and the reference on the profile.
type ResumeFileService interface {
	Upload(ctx context.Context, uid, fileName, mimeType string, fileSize int, r io.Reader) (*models.ResumeFile, error)
	Latest(ctx context.Context, uid string) (*models.ResumeFile, error)
	Remove(ctx context.Context, uid string) error
}

type resumeFileService struct {
	files    pgrepo.ResumeFileRepository
	profiles mongorepo.ProfileRepository
	store    storage.ObjectStore
	log      *logrus.Logger
}

func NewResumeFileService(files pgrepo.ResumeFileRepository, profiles mongorepo.ProfileRepository, store storage.ObjectStore, log *logrus.Logger) ResumeFileService {
	return &resumeFileService{files: files, profiles: profiles, store: store, log: log}
}

func (s *resumeFileService) Upload(ctx context.Context, uid, fileName, mimeType string, fileSize int, r io.Reader) (*models.ResumeFile, error) {
	const op = "ResumeFileService.Upload"

	if uid == "" || fileName == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "uid and file name are required", nil)
	}
	if !allowedResumeTypes[mimeType] {
		return nil, utils.E(utils.CodeInvalidArgument, op, "only PDF and Word documents are accepted", nil)
	}
	if fileSize <= 0 || fileSize > maxResumeFileSize {
		return nil, utils.E(utils.CodeInvalidArgument, op, "file size must be between 1 byte and 5 MiB", nil)
	}
	if s.store == nil {
		return nil, utils.E(utils.CodeInternal, op, "object storage is not configured", nil)
	}

	// Replacing an existing attachment: remember the old blob so it can be
	// cleaned up after the new one is in place.
	var oldPath string
	if prev, err := s.files.LatestByUser(ctx, uid); err == nil {
		oldPath = prev.FilePath
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check existing resume file", err)
	}

	objectName := fmt.Sprintf("resumes/%s/%s_%s", uid, uuid.NewString(), fileName)
	storedURL, err := s.store.Upload(ctx, objectName, mimeType, r)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to upload resume file", err)
	}

	row := &models.ResumeFile{
		ID:       uuid.NewString(),
		UserID:   uid,
		FileName: fileName,
		FilePath: storedURL,
		FileSize: fileSize,
		MimeType: mimeType,
		UploadAt: time.Now().UTC(),
	}
	if err := s.files.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist resume file metadata", err)
	}

	if err := s.profiles.SetResumeFile(ctx, uid, storedURL, fileName); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to attach resume file to profile", err)
	}

	// Old blob removal is best effort; an orphaned object is harmless.
	if oldPath != "" && oldPath != storedURL {
		if err := s.store.Delete(ctx, oldPath); err != nil {
			s.log.WithError(err).WithField("uid", uid).Warn("failed to delete replaced resume file")
		}
	}

	return row, nil
}

func (s *resumeFileService) Latest(ctx context.Context, uid string) (*models.ResumeFile, error) {
	const op = "ResumeFileService.Latest"

	if uid == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "uid is required", nil)
	}
	row, err := s.files.LatestByUser(ctx, uid)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "no resume file uploaded", err)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load resume file", err)
	}
	return row, nil
}

func (s *resumeFileService) Remove(ctx context.Context, uid string) error {
	const op = "ResumeFileService.Remove"

	if uid == "" {
		return utils.E(utils.CodeInvalidArgument, op, "uid is required", nil)
	}

	row, err := s.files.LatestByUser(ctx, uid)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeInternal, op, "failed to load resume file", err)
	}
	// A metadata row can survive from before object storage was configured;
	// without a store there is no blob to delete.
	if row != nil && s.store != nil {
		if err := s.store.Delete(ctx, row.FilePath); err != nil {
			s.log.WithError(err).WithField("uid", uid).Warn("failed to delete resume file blob")
		}
	}

	if err := s.files.DeleteByUser(ctx, uid); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete resume file metadata", err)
	}
	if err := s.profiles.ClearResumeFile(ctx, uid); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to detach resume file from profile", err)
	}
	return nil
}
