package match

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/entrevistaja/backend/internal/cache"
	"github.com/entrevistaja/backend/internal/models"
	"github.com/entrevistaja/backend/internal/providers/analyzer"
	"github.com/entrevistaja/backend/internal/utils"
)

const (
	// Job identity only considers the first 2000 normalized characters, so
	// trailing boilerplate does not split the history of one posting.
	jobHashWindow = 2000
	historyTTL    = 30 * 24 * time.Hour

	optimizedViewMinAnalyses = 2
	optimizedViewMinScore    = 75
)

// Analysis is the full answer returned to the client: the provider result
// plus history-derived progress data.
type Analysis struct {
	models.AnalysisResult
	Improvement       *models.ImprovementData `json:"improvement,omitempty"`
	ShowOptimizedView bool                    `json:"showOptimizedView"`
}

// Orchestrator runs one resume-versus-job analysis end to end: input
// validation, provider call, and per-job history bookkeeping.
type Orchestrator struct {
	provider analyzer.Provider
	history  cache.Cache
	log      *logrus.Logger
}

func NewOrchestrator(provider analyzer.Provider, history cache.Cache, log *logrus.Logger) *Orchestrator {
	return &Orchestrator{provider: provider, history: history, log: log}
}

// Analyze scores resumeText against jobText for the given user. Invalid or
// near-duplicate inputs are rejected before any provider call is made.
func (o *Orchestrator) Analyze(ctx context.Context, uid, resumeText, jobText string) (*Analysis, error) {
	const op = "Orchestrator.Analyze"

	resumeText = strings.TrimSpace(resumeText)
	jobText = strings.TrimSpace(jobText)
	if resumeText == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "resume text is required", nil)
	}
	if jobText == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job description is required", nil)
	}
	if NearDuplicate(resumeText, jobText) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job description appears to be a copy of the resume", nil)
	}

	res, err := o.provider.Analyze(ctx, resumeText, jobText)
	if err != nil {
		return nil, err
	}

	out := &Analysis{AnalysisResult: res}

	hash := JobHash(jobText)
	hist, err := o.loadHistory(ctx, uid, hash)
	if err != nil {
		// History is best effort: an unreachable cache must not fail an
		// analysis the user already paid a provider call for.
		o.log.WithError(err).WithField("uid", uid).Warn("analysis history unavailable")
		hist = nil
	}

	count := 1
	if hist != nil {
		count = hist.AnalysisCount + 1
		out.Improvement = &models.ImprovementData{
			PreviousScore: hist.LastScore,
			CurrentScore:  res.Score,
			Improvement:   res.Score - hist.LastScore,
			AnalysisCount: count,
		}
	}
	out.ShowOptimizedView = count >= optimizedViewMinAnalyses && res.Score >= optimizedViewMinScore

	if err := o.saveHistory(ctx, uid, &models.JobHistory{
		JobHash:       hash,
		LastScore:     res.Score,
		AnalysisCount: count,
		UpdatedAt:     time.Now().UTC(),
	}); err != nil {
		o.log.WithError(err).WithField("uid", uid).Warn("failed to persist analysis history")
	}

	return out, nil
}

func historyKey(uid, jobHash string) string {
	return fmt.Sprintf("analysis:%s:%s", uid, jobHash)
}

func (o *Orchestrator) loadHistory(ctx context.Context, uid, jobHash string) (*models.JobHistory, error) {
	var h models.JobHistory
	hit, err := o.history.GetJSON(ctx, historyKey(uid, jobHash), &h)
	if err != nil || !hit {
		return nil, err
	}
	return &h, nil
}

func (o *Orchestrator) saveHistory(ctx context.Context, uid string, h *models.JobHistory) error {
	return o.history.SetJSON(ctx, historyKey(uid, h.JobHash), h, historyTTL)
}

// JobHash derives a stable identity for a job posting from its normalized
// text. Two postings that differ only in casing or whitespace hash the same.
func JobHash(jobText string) string {
	n := Normalize(jobText)
	if len(n) > jobHashWindow {
		n = n[:jobHashWindow]
	}
	sum := sha256.Sum256([]byte(n))
	return hex.EncodeToString(sum[:])[:16]
}

// Normalize lowercases and collapses all whitespace runs to single spaces.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NearDuplicate reports whether the two texts are effectively the same
// content: exact normalized equality, or either normalized text containing
// the leading 80 percent of the other. Padding a copy with extra text does
// not get it past the check.
func NearDuplicate(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	return containsMostOf(na, nb) || containsMostOf(nb, na)
}

func containsMostOf(haystack, needle string) bool {
	prefix := needle[:len(needle)*8/10]
	return prefix != "" && strings.Contains(haystack, prefix)
}
